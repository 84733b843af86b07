package repositories

import (
	"errors"
	"fmt"
	"strings"

	"catalog/internal/apperrors"
	"catalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// withVariants preloads the variants association in insertion order.
func (r *GORMProductRepository) withVariants() *gorm.DB {
	return r.db.Preload("Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("variants.created_at ASC")
	})
}

// GetAll retrieves all products with their variants resolved.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := r.withVariants().Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID with variants resolved.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.withVariants().First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product with ID %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product, generating an ID when none is set.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update overwrites an existing product record.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Omit("Variants").Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Save does not report ErrRecordNotFound for a missing row,
		// so RowsAffected is the only signal.
		return fmt.Errorf("%w: product with ID %s", apperrors.ErrNotFound, product.ID)
	}
	return nil
}

// Delete removes a product by its ID.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product with ID %s", apperrors.ErrNotFound, id)
	}
	return nil
}

// Search matches products by case-insensitive substring on name or
// description, or by ownership of the given variant ID.
func (r *GORMProductRepository) Search(query string, variantID string) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	cond := r.db.Where("LOWER(name) LIKE ?", pattern).
		Or("LOWER(description) LIKE ?", pattern)
	if variantID != "" {
		sub := r.db.Model(&models.Variant{}).Select("product_id").Where("id = ?", variantID)
		cond = cond.Or("id IN (?)", sub)
	}

	products := make([]models.Product, 0)
	if err := r.withVariants().Where(cond).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}
