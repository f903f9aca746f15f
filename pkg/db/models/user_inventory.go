package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
)

// UserInventory is an accumulator row per (user, product) or per manual entry.
// ProductID is nil for manual rows that never referenced a catalog product and
// becomes nil when the referenced product is deleted.
type UserInventory struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID             `gorm:"column:user_id;type:uuid;not null"`
	ProductID *uuid.UUID            `gorm:"column:product_id;type:uuid"`
	Name      string                `gorm:"column:name;not null"`
	Quantity  int                   `gorm:"column:quantity;not null;default:0"`
	Source    enums.InventorySource `gorm:"column:source;not null"`
	Notes     *string               `gorm:"column:notes"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table used by GORM.
func (UserInventory) TableName() string {
	return "user_inventory"
}
