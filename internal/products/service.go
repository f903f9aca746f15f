package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sreenuraj/postqode-nexus/internal/activity"
	"github.com/Sreenuraj/postqode-nexus/internal/inventory"
	"github.com/Sreenuraj/postqode-nexus/pkg/db"
	"github.com/Sreenuraj/postqode-nexus/pkg/db/models"
	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
	pkgerrors "github.com/Sreenuraj/postqode-nexus/pkg/errors"
	"github.com/Sreenuraj/postqode-nexus/pkg/types"
)

// Service exposes catalog management operations. Every mutation runs in one
// transaction together with its audit entry.
type Service interface {
	CreateProduct(ctx context.Context, actorID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, actorID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, actorID, productID uuid.UUID) error
	UpdateProductStatus(ctx context.Context, actorID, productID uuid.UUID, status enums.ProductStatus) (*ProductDTO, error)
	AdjustStock(ctx context.Context, actorID, productID uuid.UUID, delta int) (*ProductDTO, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
}

type service struct {
	repo          *Repository
	dbClient      *db.Client
	activityRepo  *activity.Repository
	inventoryRepo *inventory.Repository
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client, activityRepo *activity.Repository, inventoryRepo *inventory.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if activityRepo == nil {
		return nil, fmt.Errorf("activity repository required")
	}
	if inventoryRepo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{
		repo:          repo,
		dbClient:      dbClient,
		activityRepo:  activityRepo,
		inventoryRepo: inventoryRepo,
	}, nil
}

// CreateProduct inserts the product and its CREATE audit entry. An explicit
// status wins over the quantity-derived one.
func (s *service) CreateProduct(ctx context.Context, actorID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	sku := strings.TrimSpace(input.SKU)
	name := strings.TrimSpace(input.Name)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	status, err := resolveStatus(input.Status, input.Quantity)
	if err != nil {
		return nil, err
	}

	var created *models.Product
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if _, err := txRepo.FindBySKU(ctx, sku); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "sku already in use")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check sku")
		}

		actor := actorID
		product := &models.Product{
			SKU:         sku,
			Name:        name,
			Description: input.Description,
			Price:       input.Price,
			Quantity:    input.Quantity,
			Status:      status,
			CategoryID:  input.CategoryID,
			CreatedByID: &actor,
			UpdatedByID: &actor,
		}
		var err error
		created, err = txRepo.Create(ctx, product)
		if err != nil {
			// Concurrent create can slip past the pre-check and hit the index.
			if db.IsUniqueViolation(err, "idx_products_sku") {
				return pkgerrors.New(pkgerrors.CodeConflict, "sku already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}

		return s.audit(ctx, tx, actorID, &created.ID, enums.ActionTypeCreate, nil, activity.ProductSnapshot(created))
	})
	if err != nil {
		return nil, err
	}
	return NewProductDTO(created), nil
}

// UpdateProduct applies partial changes. An explicit status wins; otherwise a
// quantity change re-derives it and an untouched quantity keeps the stored
// status.
func (s *service) UpdateProduct(ctx context.Context, actorID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if input.SKU != nil && strings.TrimSpace(*input.SKU) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku cannot be empty")
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	var updated *models.Product
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := s.load(ctx, txRepo, productID)
		if err != nil {
			return err
		}
		oldSnap := activity.ProductSnapshot(product)

		if input.SKU != nil {
			sku := strings.TrimSpace(*input.SKU)
			if sku != product.SKU {
				if _, err := txRepo.FindBySKU(ctx, sku); err == nil {
					return pkgerrors.New(pkgerrors.CodeConflict, "sku already in use")
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check sku")
				}
				product.SKU = sku
			}
		}
		if input.Name != nil {
			product.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			product.Description = input.Description
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.CategoryID != nil {
			product.CategoryID = input.CategoryID
		}

		quantityChanged := input.Quantity != nil && *input.Quantity != product.Quantity
		if input.Quantity != nil {
			product.Quantity = *input.Quantity
		}
		switch {
		case input.Status != nil:
			product.Status = *input.Status
		case quantityChanged:
			product.Status = enums.DeriveProductStatus(product.Quantity)
		}

		actor := actorID
		product.UpdatedByID = &actor

		updated, err = txRepo.Update(ctx, product)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}

		return s.audit(ctx, tx, actorID, &updated.ID, enums.ActionTypeUpdate, oldSnap, activity.ProductSnapshot(updated))
	})
	if err != nil {
		return nil, err
	}
	return NewProductDTO(updated), nil
}

// DeleteProduct unlinks dependent rows, removes the product, then appends a
// DELETE audit entry that intentionally carries no product reference.
func (s *service) DeleteProduct(ctx context.Context, actorID, productID uuid.UUID) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := s.load(ctx, txRepo, productID)
		if err != nil {
			return err
		}
		oldSnap := activity.ProductSnapshot(product)

		if err := s.activityRepo.WithTx(tx).UnlinkProduct(ctx, productID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: unlink audit entries")
		}
		if err := s.inventoryRepo.WithTx(tx).UnlinkProduct(ctx, productID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: unlink inventory entries")
		}
		if err := txRepo.Delete(ctx, productID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
		}

		return s.audit(ctx, tx, actorID, nil, enums.ActionTypeDelete, oldSnap, nil)
	})
}

// UpdateProductStatus sets an explicit availability status. The override holds
// until the next quantity-changing write re-derives it, and is audited exactly
// like an automatic change.
func (s *service) UpdateProductStatus(ctx context.Context, actorID, productID uuid.UUID, status enums.ProductStatus) (*ProductDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	var updated *models.Product
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := s.load(ctx, txRepo, productID)
		if err != nil {
			return err
		}
		oldSnap := activity.ProductSnapshot(product)

		product.Status = status
		actor := actorID
		product.UpdatedByID = &actor

		updated, err = txRepo.Update(ctx, product)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product status")
		}

		return s.audit(ctx, tx, actorID, &updated.ID, enums.ActionTypeStateChange, oldSnap, activity.ProductSnapshot(updated))
	})
	if err != nil {
		return nil, err
	}
	return NewProductDTO(updated), nil
}

// AdjustStock shifts quantity by delta through the guarded update, re-derives
// the availability status, and audits the move.
func (s *service) AdjustStock(ctx context.Context, actorID, productID uuid.UUID, delta int) (*ProductDTO, error) {
	if delta == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delta cannot be zero")
	}

	var updated *models.Product
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := s.load(ctx, txRepo, productID)
		if err != nil {
			return err
		}
		oldSnap := activity.ProductSnapshot(product)

		ok, err := txRepo.ApplyStockDelta(ctx, productID, delta)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: adjust stock")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
				WithDetails(map[string]any{
					"available": product.Quantity,
					"requested": -delta,
				})
		}

		updated, err = txRepo.FindByID(ctx, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload product")
		}
		updated.Status = enums.DeriveProductStatus(updated.Quantity)
		if err := txRepo.UpdateStatus(ctx, productID, updated.Status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update status")
		}

		return s.audit(ctx, tx, actorID, &productID, enums.ActionTypeUpdate, oldSnap, activity.ProductSnapshot(updated))
	})
	if err != nil {
		return nil, err
	}
	return NewProductDTO(updated), nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.load(ctx, s.repo, productID)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(product), nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	rows, nextCursor, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewProductDTO(&rows[i]))
	}
	return &ProductListResult{Products: dtos, NextCursor: nextCursor}, nil
}

func (s *service) load(ctx context.Context, repo *Repository, productID uuid.UUID) (*models.Product, error) {
	product, err := repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return product, nil
}

func (s *service) audit(ctx context.Context, tx *gorm.DB, actorID uuid.UUID, productID *uuid.UUID, action enums.ActionType, oldSnap, newSnap *types.Snapshot) error {
	entry := &models.ActivityLog{
		UserID:     actorID,
		ProductID:  productID,
		ActionType: action,
		OldValue:   oldSnap,
		NewValue:   newSnap,
	}
	if _, err := s.activityRepo.WithTx(tx).Create(ctx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert audit entry")
	}
	return nil
}

func resolveStatus(explicit *enums.ProductStatus, quantity int) (enums.ProductStatus, error) {
	if explicit != nil {
		if !explicit.IsValid() {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
		return *explicit, nil
	}
	return enums.DeriveProductStatus(quantity), nil
}
