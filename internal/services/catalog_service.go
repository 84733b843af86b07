package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/repositories"
)

// EventPublisher publishes catalog change events to a message broker.
// Publishing is best-effort: failures are logged and never fail the
// originating operation.
type EventPublisher interface {
	PublishCatalogEvent(event string, payload map[string]interface{}) error
}

// AddProductInput carries the fields for creating a product.
type AddProductInput struct {
	Name        string
	Description string
	Price       float64
}

// UpdateProductInput carries the optional fields for a product update.
// A nil field means "leave unchanged"; a non-nil zero value (price of
// 0) is a legitimate update.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
}

// AddVariantInput carries the fields for creating a variant.
type AddVariantInput struct {
	ProductID      string
	Name           string
	SKUID          string
	AdditionalCost float64
	StockCount     int
}

// UpdateVariantInput carries the optional fields for a variant update.
type UpdateVariantInput struct {
	Name           *string
	AdditionalCost *float64
	StockCount     *int
}

// CatalogService handles business logic for products and variants,
// enforcing the cross-entity invariants: SKU uniqueness, variant
// creation only against an existing product, and no product deletion
// while variants remain. Writes that touch both entities run inside a
// single store transaction.
type CatalogService struct {
	products repositories.ProductRepository
	variants repositories.VariantRepository
	tx       repositories.TxManager
	events   EventPublisher
}

// NewCatalogService creates a new CatalogService. events may be nil,
// in which case no change events are published.
func NewCatalogService(products repositories.ProductRepository, variants repositories.VariantRepository, tx repositories.TxManager, events EventPublisher) *CatalogService {
	return &CatalogService{
		products: products,
		variants: variants,
		tx:       tx,
		events:   events,
	}
}

// ListProducts retrieves all products with their variants resolved.
func (s *CatalogService) ListProducts() ([]models.Product, error) {
	return s.products.GetAll()
}

// GetProduct retrieves a single product by its ID.
func (s *CatalogService) GetProduct(id string) (*models.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: product ID is required", apperrors.ErrInvalidInput)
	}
	return s.products.GetByID(id)
}

// AddProduct creates a new product with an empty variants list.
func (s *CatalogService) AddProduct(in AddProductInput) (*models.Product, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: name and description are required", apperrors.ErrInvalidInput)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", apperrors.ErrInvalidInput)
	}

	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Variants:    []models.Variant{},
	}
	if err := s.products.Create(product); err != nil {
		return nil, err
	}

	s.publishEvent("product.created", map[string]interface{}{
		"productID": product.ID,
		"name":      product.Name,
	})
	return product, nil
}

// UpdateProduct overwrites the supplied fields of an existing product.
// At least one field must be supplied.
func (s *CatalogService) UpdateProduct(id string, in UpdateProductInput) (*models.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: product ID is required", apperrors.ErrInvalidInput)
	}
	if in.Name == nil && in.Description == nil && in.Price == nil {
		return nil, fmt.Errorf("%w: at least one field must be provided", apperrors.ErrInvalidInput)
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", apperrors.ErrInvalidInput)
	}

	product, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if err := s.products.Update(product); err != nil {
		return nil, err
	}

	s.publishEvent("product.updated", map[string]interface{}{
		"productID": product.ID,
	})
	return product, nil
}

// DeleteProduct removes a product and returns the removed record. The
// deletion is refused while the product still has variants.
func (s *CatalogService) DeleteProduct(id string) (*models.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: product ID is required", apperrors.ErrInvalidInput)
	}

	var deleted *models.Product
	err := s.tx.WithinTransaction(func(products repositories.ProductRepository, variants repositories.VariantRepository) error {
		product, err := products.GetByID(id)
		if err != nil {
			return err
		}
		if len(product.Variants) > 0 {
			return fmt.Errorf("%w: product %s still has %d variants", apperrors.ErrInvalidState, id, len(product.Variants))
		}
		if err := products.Delete(id); err != nil {
			return err
		}
		deleted = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent("product.deleted", map[string]interface{}{
		"productID": deleted.ID,
	})
	return deleted, nil
}

// AddVariant creates a variant linked to an existing product. The SKU
// uniqueness check, the product lookup and the insert commit as one
// transaction, so a variant can never reference a missing product.
func (s *CatalogService) AddVariant(in AddVariantInput) (*models.Variant, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: product ID is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.SKUID) == "" {
		return nil, fmt.Errorf("%w: name and sku_id are required", apperrors.ErrInvalidInput)
	}

	var created *models.Variant
	err := s.tx.WithinTransaction(func(products repositories.ProductRepository, variants repositories.VariantRepository) error {
		_, err := variants.GetBySKU(in.SKUID)
		if err == nil {
			return fmt.Errorf("%w: SKU %s already exists", apperrors.ErrConflict, in.SKUID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		if _, err := products.GetByID(in.ProductID); err != nil {
			return err
		}

		variant := &models.Variant{
			Name:           in.Name,
			SKUID:          in.SKUID,
			AdditionalCost: in.AdditionalCost,
			StockCount:     in.StockCount,
			ProductID:      in.ProductID,
		}
		if err := variants.Create(variant); err != nil {
			return err
		}
		created = variant
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent("variant.created", map[string]interface{}{
		"variantID": created.ID,
		"productID": created.ProductID,
		"skuID":     created.SKUID,
	})
	return created, nil
}

// UpdateVariant overwrites the supplied fields of an existing variant.
// At least one field must be supplied; the owning product is immutable.
func (s *CatalogService) UpdateVariant(id string, in UpdateVariantInput) (*models.Variant, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: variant ID is required", apperrors.ErrInvalidInput)
	}
	if in.Name == nil && in.AdditionalCost == nil && in.StockCount == nil {
		return nil, fmt.Errorf("%w: at least one field must be provided", apperrors.ErrInvalidInput)
	}

	variant, err := s.variants.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		variant.Name = *in.Name
	}
	if in.AdditionalCost != nil {
		variant.AdditionalCost = *in.AdditionalCost
	}
	if in.StockCount != nil {
		variant.StockCount = *in.StockCount
	}
	if err := s.variants.Update(variant); err != nil {
		return nil, err
	}

	s.publishEvent("variant.updated", map[string]interface{}{
		"variantID": variant.ID,
		"productID": variant.ProductID,
	})
	return variant, nil
}

// DeleteVariant removes a variant and returns the removed record.
// Because the owning reference lives on the variant row, the product's
// variants list reflects the removal as soon as the transaction commits.
func (s *CatalogService) DeleteVariant(id string) (*models.Variant, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: variant ID is required", apperrors.ErrInvalidInput)
	}

	var deleted *models.Variant
	err := s.tx.WithinTransaction(func(products repositories.ProductRepository, variants repositories.VariantRepository) error {
		variant, err := variants.GetByID(id)
		if err != nil {
			return err
		}
		if err := variants.Delete(id); err != nil {
			return err
		}
		deleted = variant
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent("variant.deleted", map[string]interface{}{
		"variantID": deleted.ID,
		"productID": deleted.ProductID,
	})
	return deleted, nil
}

func (s *CatalogService) publishEvent(event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishCatalogEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
