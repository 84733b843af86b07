package services

import (
	"errors"
	"fmt"
	"strings"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/repositories"
)

// SearchService handles read-only keyword search over the catalog.
type SearchService struct {
	products repositories.ProductRepository
	variants repositories.VariantRepository
}

// NewSearchService creates a new SearchService.
func NewSearchService(products repositories.ProductRepository, variants repositories.VariantRepository) *SearchService {
	return &SearchService{
		products: products,
		variants: variants,
	}
}

// Search returns every product whose name or description contains the
// query as a case-insensitive substring, or that owns the variant whose
// name exactly equals the query. An empty result set is reported as
// not found.
func (s *SearchService) Search(query string) ([]models.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query is required", apperrors.ErrInvalidInput)
	}

	variantID := ""
	variant, err := s.variants.GetByName(query)
	if err == nil {
		variantID = variant.ID
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	products, err := s.products.Search(query, variantID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: no products matching %q", apperrors.ErrNotFound, query)
	}
	return products, nil
}
