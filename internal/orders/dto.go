package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sreenuraj/postqode-nexus/pkg/db/models"
	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
)

// OrderDTO is the transport shape for order reads.
type OrderDTO struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"user_id"`
	ProductID uuid.UUID         `json:"product_id"`
	Quantity  int               `json:"quantity"`
	Status    enums.OrderStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CreateOrderInput holds the validated payload to place an order.
type CreateOrderInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// ListOrdersInput narrows and paginates order listings. A nil UserID lists
// every user's orders and is reserved for admin callers.
type ListOrdersInput struct {
	UserID *uuid.UUID
	Status *enums.OrderStatus
	Limit  int
	Cursor string
}

// OrderListResult wraps a page of orders.
type OrderListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// NewOrderDTO maps the persisted model into its transport shape.
func NewOrderDTO(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	return &OrderDTO{
		ID:        o.ID,
		UserID:    o.UserID,
		ProductID: o.ProductID,
		Quantity:  o.Quantity,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
