package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
)

// Order captures a user's request to purchase a product quantity. Quantity is
// fixed at creation; only the status moves, and only out of PENDING.
type Order struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID         `gorm:"column:user_id;type:uuid;not null"`
	ProductID uuid.UUID         `gorm:"column:product_id;type:uuid;not null"`
	Quantity  int               `gorm:"column:quantity;not null"`
	Status    enums.OrderStatus `gorm:"column:status;not null;default:'PENDING'"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table used by GORM.
func (Order) TableName() string {
	return "orders"
}
