package activity

import (
	"github.com/Sreenuraj/postqode-nexus/pkg/db/models"
	"github.com/Sreenuraj/postqode-nexus/pkg/types"
)

// ProductSnapshot captures the audit-relevant fields of a product at a point
// in time. The returned snapshot does not alias the model.
func ProductSnapshot(p *models.Product) *types.Snapshot {
	if p == nil {
		return nil
	}
	fields := map[string]any{
		"sku":      p.SKU,
		"name":     p.Name,
		"price":    p.Price.String(),
		"quantity": p.Quantity,
		"status":   string(p.Status),
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	return types.NewSnapshot(fields)
}

// OrderSnapshot captures an order's state for audit entries.
func OrderSnapshot(o *models.Order) *types.Snapshot {
	if o == nil {
		return nil
	}
	return types.NewSnapshot(map[string]any{
		"order_id":   o.ID.String(),
		"user_id":    o.UserID.String(),
		"product_id": o.ProductID.String(),
		"quantity":   o.Quantity,
		"status":     string(o.Status),
	})
}
