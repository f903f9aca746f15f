package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sreenuraj/postqode-nexus/pkg/db/models"
	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
)

// ProductDTO is the transport shape for catalog reads.
type ProductDTO struct {
	ID          uuid.UUID           `json:"id"`
	SKU         string              `json:"sku"`
	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	Price       decimal.Decimal     `json:"price"`
	Quantity    int                 `json:"quantity"`
	Status      enums.ProductStatus `json:"status"`
	CategoryID  *uuid.UUID          `json:"category_id,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	SKU         string
	Name        string
	Description *string
	Price       decimal.Decimal
	Quantity    int
	Status      *enums.ProductStatus
	CategoryID  *uuid.UUID
}

// UpdateProductInput holds optional mutation values for a product. A nil
// field leaves the stored value untouched.
type UpdateProductInput struct {
	SKU         *string
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Quantity    *int
	Status      *enums.ProductStatus
	CategoryID  *uuid.UUID
}

// ListProductsInput narrows and paginates catalog listings.
type ListProductsInput struct {
	Status *enums.ProductStatus
	Search string
	Limit  int
	Cursor string
}

// ProductListResult wraps a page of products.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// NewProductDTO maps the persisted model into its transport shape.
func NewProductDTO(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Status:      p.Status,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
