package repositories

import (
	"gorm.io/gorm"
)

// TxManager runs a function against transaction-scoped repositories.
// Everything the function does commits or rolls back as a unit, so
// cross-entity writes (variant creation against its owning product,
// guarded product deletion) never leave the store half-updated.
type TxManager interface {
	WithinTransaction(fn func(products ProductRepository, variants VariantRepository) error) error
}

// GormTxManager is a TxManager backed by GORM's native transactions.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new GormTxManager.
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// WithinTransaction opens a transaction and hands fn repositories bound
// to it. A non-nil error from fn rolls the transaction back.
func (m *GormTxManager) WithinTransaction(fn func(products ProductRepository, variants VariantRepository) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMProductRepository(tx), NewGORMVariantRepository(tx))
	})
}
