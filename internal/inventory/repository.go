package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sreenuraj/postqode-nexus/pkg/db/models"
	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
	"github.com/Sreenuraj/postqode-nexus/pkg/pagination"
)

// purchaseNote marks rows created by order approval.
const purchaseNote = "Purchased via order"

// Repository persists per-user inventory rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an inventory repository bound to the provided DB.
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

// Create inserts a new inventory row.
func (r *Repository) Create(ctx context.Context, entry *models.UserInventory) (*models.UserInventory, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// FindByID loads a single inventory row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.UserInventory, error) {
	var entry models.UserInventory
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update persists the full inventory row.
func (r *Repository) Update(ctx context.Context, entry *models.UserInventory) (*models.UserInventory, error) {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes the inventory row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.UserInventory{}, "id = ?", id).Error
}

// CreditPurchase merges quantity into the user's purchased row for the
// product, creating the row when absent. The product name is copied so the
// entry stays readable after the product is deleted.
func (r *Repository) CreditPurchase(ctx context.Context, userID uuid.UUID, product *models.Product, quantity int) (*models.UserInventory, error) {
	var entry models.UserInventory
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND source = ?", userID, product.ID, enums.InventorySourcePurchased).
		First(&entry).Error
	switch {
	case err == nil:
		entry.Quantity += quantity
		entry.Name = product.Name
		return r.Update(ctx, &entry)
	case errors.Is(err, gorm.ErrRecordNotFound):
		productID := product.ID
		notes := purchaseNote
		created := &models.UserInventory{
			UserID:    userID,
			ProductID: &productID,
			Name:      product.Name,
			Quantity:  quantity,
			Source:    enums.InventorySourcePurchased,
			Notes:     &notes,
		}
		return r.Create(ctx, created)
	default:
		return nil, err
	}
}

// UnlinkProduct clears the product reference on rows pointing at the given
// product. Runs before product deletion; the rows themselves survive.
func (r *Repository) UnlinkProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.UserInventory{}).
		Where("product_id = ?", productID).
		UpdateColumn("product_id", nil).Error
}

// List returns a user's inventory newest first using cursor pagination.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.UserInventory, string, error) {
	limit := pagination.LimitWithBuffer(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.UserInventory{}).
		Where("user_id = ?", userID)

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

	var rows []models.UserInventory
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) == limit {
		rows = rows[:limit-1]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return rows, nextCursor, nil
}
