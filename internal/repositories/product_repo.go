package repositories

import (
	"catalog/internal/models"
)

// ProductRepository defines the interface for product data access.
// Lookups return results with variants resolved in insertion order.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	// Search returns every product whose name or description contains
	// the query case-insensitively, or that owns the variant with the
	// given ID. An empty variantID disables the ownership clause.
	Search(query string, variantID string) ([]models.Product, error)
}
