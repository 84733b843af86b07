package models

import "time"

// Product represents a sellable catalog item. Its variants are owned
// records: each Variant carries the product's ID as a foreign key, and
// the slice here is populated by preloading in insertion order.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:varchar(500);not null"`
	Price       float64   `json:"price" gorm:"not null"`
	Variants    []Variant `json:"variants" gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
