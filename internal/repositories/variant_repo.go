package repositories

import (
	"catalog/internal/models"
)

// VariantRepository defines the interface for variant data access.
type VariantRepository interface {
	GetByID(id string) (*models.Variant, error)
	GetBySKU(skuID string) (*models.Variant, error)
	GetByName(name string) (*models.Variant, error)
	Create(variant *models.Variant) error
	Update(variant *models.Variant) error
	Delete(id string) error
}
