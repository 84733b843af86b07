package repositories

import (
	"errors"
	"fmt"

	"catalog/internal/apperrors"
	"catalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMVariantRepository is a GORM implementation of VariantRepository.
type GORMVariantRepository struct {
	db *gorm.DB
}

// NewGORMVariantRepository creates a new instance of GORMVariantRepository.
func NewGORMVariantRepository(db *gorm.DB) *GORMVariantRepository {
	return &GORMVariantRepository{
		db: db,
	}
}

// GetByID retrieves a single variant by its ID.
func (r *GORMVariantRepository) GetByID(id string) (*models.Variant, error) {
	var variant models.Variant
	if err := r.db.First(&variant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: variant with ID %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get variant by ID %s: %w", id, err)
	}
	return &variant, nil
}

// GetBySKU retrieves the variant carrying the given SKU id.
func (r *GORMVariantRepository) GetBySKU(skuID string) (*models.Variant, error) {
	var variant models.Variant
	if err := r.db.First(&variant, "sku_id = ?", skuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: variant with SKU %s", apperrors.ErrNotFound, skuID)
		}
		return nil, fmt.Errorf("failed to get variant by SKU %s: %w", skuID, err)
	}
	return &variant, nil
}

// GetByName retrieves a variant whose name exactly equals name.
func (r *GORMVariantRepository) GetByName(name string) (*models.Variant, error) {
	var variant models.Variant
	if err := r.db.First(&variant, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: variant named %q", apperrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to get variant by name %q: %w", name, err)
	}
	return &variant, nil
}

// Create creates a new variant, generating an ID when none is set.
func (r *GORMVariantRepository) Create(variant *models.Variant) error {
	if variant.ID == "" {
		variant.ID = uuid.New().String()
	}
	if err := r.db.Create(variant).Error; err != nil {
		return fmt.Errorf("failed to create variant: %w", err)
	}
	return nil
}

// Update overwrites an existing variant record.
func (r *GORMVariantRepository) Update(variant *models.Variant) error {
	res := r.db.Save(variant)
	if res.Error != nil {
		return fmt.Errorf("failed to update variant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: variant with ID %s", apperrors.ErrNotFound, variant.ID)
	}
	return nil
}

// Delete removes a variant by its ID.
func (r *GORMVariantRepository) Delete(id string) error {
	res := r.db.Delete(&models.Variant{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete variant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: variant with ID %s", apperrors.ErrNotFound, id)
	}
	return nil
}
