package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
)

// Product represents a catalog listing whose quantity backs the stock ledger.
// Status is derived from quantity unless an administrator overrides it; the
// override is recorded through the same activity trail as automatic changes.
type Product struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	SKU         string              `gorm:"column:sku;not null;uniqueIndex"`
	Name        string              `gorm:"column:name;not null"`
	Description *string             `gorm:"column:description"`
	Price       decimal.Decimal     `gorm:"column:price;type:numeric(12,2);not null"`
	Quantity    int                 `gorm:"column:quantity;not null;default:0"`
	Status      enums.ProductStatus `gorm:"column:status;not null"`
	CategoryID  *uuid.UUID          `gorm:"column:category_id;type:uuid"`
	CreatedByID *uuid.UUID          `gorm:"column:created_by;type:uuid"`
	UpdatedByID *uuid.UUID          `gorm:"column:updated_by;type:uuid"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table used by GORM.
func (Product) TableName() string {
	return "products"
}
