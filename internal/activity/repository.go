package activity

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sreenuraj/postqode-nexus/pkg/db/models"
	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
	"github.com/Sreenuraj/postqode-nexus/pkg/pagination"
)

// Repository persists and reads append-only audit entries.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an activity repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create appends a single audit entry.
func (r *Repository) Create(ctx context.Context, entry *models.ActivityLog) (*models.ActivityLog, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// UnlinkProduct clears the product reference on every audit entry pointing at
// the given product. Runs before product deletion so history outlives the row.
func (r *Repository) UnlinkProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ActivityLog{}).
		Where("product_id = ?", productID).
		UpdateColumn("product_id", nil).Error
}

// ListFilters narrows audit listings.
type ListFilters struct {
	ProductID  *uuid.UUID
	UserID     *uuid.UUID
	ActionType *enums.ActionType
}

// List returns audit entries newest first using cursor pagination.
func (r *Repository) List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.ActivityLog, string, error) {
	limit := pagination.LimitWithBuffer(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.ActivityLog{})
	if filters.ProductID != nil {
		query = query.Where("product_id = ?", *filters.ProductID)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.ActionType != nil {
		query = query.Where("action_type = ?", *filters.ActionType)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var entries []models.ActivityLog
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(entries) == limit {
		entries = entries[:limit-1]
		last := entries[len(entries)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return entries, nextCursor, nil
}
