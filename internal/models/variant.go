package models

import "time"

// Variant is one purchasable configuration of a Product (e.g. a size
// or color) with its own SKU, cost delta and stock count. The owning
// product is set at creation and never changes.
type Variant struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name           string    `json:"name" gorm:"type:varchar(255);not null"`
	SKUID          string    `json:"sku_id" gorm:"column:sku_id;type:varchar(100);uniqueIndex;not null"`
	AdditionalCost float64   `json:"additional_cost" gorm:"not null"`
	StockCount     int       `json:"stock_count" gorm:"not null"`
	ProductID      string    `json:"product" gorm:"type:varchar(36);index;not null"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
