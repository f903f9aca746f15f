package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sreenuraj/postqode-nexus/internal/activity"
	"github.com/Sreenuraj/postqode-nexus/internal/inventory"
	product "github.com/Sreenuraj/postqode-nexus/internal/products"
	"github.com/Sreenuraj/postqode-nexus/pkg/db"
	"github.com/Sreenuraj/postqode-nexus/pkg/db/models"
	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
	pkgerrors "github.com/Sreenuraj/postqode-nexus/pkg/errors"
	"github.com/Sreenuraj/postqode-nexus/pkg/metrics"
	"github.com/Sreenuraj/postqode-nexus/pkg/types"
)

// Service drives the order lifecycle. Orders start PENDING and move exactly
// once, to APPROVED, REJECTED, or CANCELLED. Approval is the only transition
// that touches stock, and everything it writes commits in one transaction.
type Service interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*OrderDTO, error)
	ApproveOrder(ctx context.Context, adminID, orderID uuid.UUID) (*OrderDTO, error)
	RejectOrder(ctx context.Context, adminID, orderID uuid.UUID) (*OrderDTO, error)
	CancelOrder(ctx context.Context, actorID, orderID uuid.UUID) (*OrderDTO, error)
	GetOrder(ctx context.Context, actorID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*OrderDTO, error)
	ListOrders(ctx context.Context, input ListOrdersInput) (*OrderListResult, error)
}

type service struct {
	repo          *Repository
	productRepo   *product.Repository
	inventoryRepo *inventory.Repository
	activityRepo  *activity.Repository
	dbClient      *db.Client
	metrics       *metrics.OrderMetrics
}

// NewService constructs the order service.
func NewService(repo *Repository, productRepo *product.Repository, inventoryRepo *inventory.Repository, activityRepo *activity.Repository, dbClient *db.Client, m *metrics.OrderMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if productRepo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if inventoryRepo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if activityRepo == nil {
		return nil, fmt.Errorf("activity repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:          repo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		activityRepo:  activityRepo,
		dbClient:      dbClient,
		metrics:       m,
	}, nil
}

// CreateOrder places a PENDING order. Stock is not touched or reserved here;
// availability is only decided at approval time.
func (s *service) CreateOrder(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*OrderDTO, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	var created *models.Order
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.productRepo.WithTx(tx).FindByID(ctx, input.ProductID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}

		order := &models.Order{
			UserID:    userID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			Status:    enums.OrderStatusPending,
		}
		var err error
		created, err = s.repo.WithTx(tx).Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncTransition(string(enums.OrderStatusPending))
	return NewOrderDTO(created), nil
}

// ApproveOrder decrements stock through the guarded update, credits the
// buyer's inventory, and flips the order to APPROVED, all in one transaction.
func (s *service) ApproveOrder(ctx context.Context, adminID, orderID uuid.UUID) (*OrderDTO, error) {
	started := time.Now()

	var approved *models.Order
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		txProducts := s.productRepo.WithTx(tx)

		order, err := s.loadPending(ctx, txRepo, orderID)
		if err != nil {
			return err
		}
		oldSnap := activity.OrderSnapshot(order)

		prod, err := txProducts.FindByID(ctx, order.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product no longer exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}

		ok, err := txProducts.ApplyStockDelta(ctx, prod.ID, -order.Quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: decrement stock")
		}
		if !ok {
			s.metrics.IncStockConflict()
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock to approve order").
				WithDetails(map[string]any{
					"available": prod.Quantity,
					"requested": order.Quantity,
				})
		}

		reloaded, err := txProducts.FindByID(ctx, prod.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload product")
		}
		if err := txProducts.UpdateStatus(ctx, prod.ID, enums.DeriveProductStatus(reloaded.Quantity)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product status")
		}

		moved, err := txRepo.UpdateStatus(ctx, order.ID, enums.OrderStatusPending, enums.OrderStatusApproved)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order status")
		}
		if !moved {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is no longer pending")
		}
		order.Status = enums.OrderStatusApproved

		if _, err := s.inventoryRepo.WithTx(tx).CreditPurchase(ctx, order.UserID, reloaded, order.Quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: credit inventory")
		}

		productID := prod.ID
		if err := s.audit(ctx, tx, adminID, &productID, oldSnap, activity.OrderSnapshot(order)); err != nil {
			return err
		}

		approved = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncTransition(string(enums.OrderStatusApproved))
	s.metrics.ObserveApproval(time.Since(started))
	return NewOrderDTO(approved), nil
}

// RejectOrder flips a pending order to REJECTED. Stock never moves.
func (s *service) RejectOrder(ctx context.Context, adminID, orderID uuid.UUID) (*OrderDTO, error) {
	return s.terminate(ctx, adminID, orderID, enums.OrderStatusRejected, nil)
}

// CancelOrder flips a pending order to CANCELLED. Only the buyer may cancel,
// admins included.
func (s *service) CancelOrder(ctx context.Context, actorID, orderID uuid.UUID) (*OrderDTO, error) {
	return s.terminate(ctx, actorID, orderID, enums.OrderStatusCancelled, &actorID)
}

func (s *service) terminate(ctx context.Context, actorID, orderID uuid.UUID, toStatus enums.OrderStatus, requiredOwner *uuid.UUID) (*OrderDTO, error) {
	var terminated *models.Order
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		order, err := s.loadOrder(ctx, txRepo, orderID)
		if err != nil {
			return err
		}
		// Ownership before terminality, so non-owners cannot learn the
		// state of someone else's resolved order.
		if requiredOwner != nil && order.UserID != *requiredOwner {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
		}
		if order.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order already resolved").
				WithDetails(map[string]any{"status": string(order.Status)})
		}
		oldSnap := activity.OrderSnapshot(order)

		moved, err := txRepo.UpdateStatus(ctx, order.ID, enums.OrderStatusPending, toStatus)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order status")
		}
		if !moved {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is no longer pending")
		}
		order.Status = toStatus

		if err := s.audit(ctx, tx, actorID, nil, oldSnap, activity.OrderSnapshot(order)); err != nil {
			return err
		}

		terminated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncTransition(string(toStatus))
	return NewOrderDTO(terminated), nil
}

func (s *service) GetOrder(ctx context.Context, actorID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}
	if !isAdmin && order.UserID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	return NewOrderDTO(order), nil
}

func (s *service) ListOrders(ctx context.Context, input ListOrdersInput) (*OrderListResult, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	rows, nextCursor, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}

	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewOrderDTO(&rows[i]))
	}
	return &OrderListResult{Orders: dtos, NextCursor: nextCursor}, nil
}

func (s *service) loadOrder(ctx context.Context, repo *Repository, orderID uuid.UUID) (*models.Order, error) {
	order, err := repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}
	return order, nil
}

func (s *service) loadPending(ctx context.Context, repo *Repository, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.loadOrder(ctx, repo, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order already resolved").
			WithDetails(map[string]any{"status": string(order.Status)})
	}
	return order, nil
}

func (s *service) audit(ctx context.Context, tx *gorm.DB, actorID uuid.UUID, productID *uuid.UUID, oldSnap, newSnap *types.Snapshot) error {
	entry := &models.ActivityLog{
		UserID:     actorID,
		ProductID:  productID,
		ActionType: enums.ActionTypeStateChange,
		OldValue:   oldSnap,
		NewValue:   newSnap,
	}
	if _, err := s.activityRepo.WithTx(tx).Create(ctx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert audit entry")
	}
	return nil
}
