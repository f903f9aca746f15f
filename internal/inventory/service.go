package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sreenuraj/postqode-nexus/pkg/db"
	"github.com/Sreenuraj/postqode-nexus/pkg/db/models"
	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
	pkgerrors "github.com/Sreenuraj/postqode-nexus/pkg/errors"
	"github.com/Sreenuraj/postqode-nexus/pkg/pagination"
)

// Service exposes per-user inventory operations. Purchased rows are written
// only by order approval; the mutation surface here is limited to manual
// entries plus consumption, which applies to both sources.
type Service interface {
	AddManual(ctx context.Context, userID uuid.UUID, input AddManualInput) (*EntryDTO, error)
	UpdateManual(ctx context.Context, userID, entryID uuid.UUID, input UpdateManualInput) (*EntryDTO, error)
	DeleteManual(ctx context.Context, userID, entryID uuid.UUID) error
	Consume(ctx context.Context, userID, entryID uuid.UUID, amount int) (*EntryDTO, bool, error)
	List(ctx context.Context, userID uuid.UUID, input ListInput) (*ListResult, error)
}

// AddManualInput holds the payload for a manual inventory entry.
type AddManualInput struct {
	Name     string
	Quantity int
	Notes    *string
}

// UpdateManualInput holds optional mutations for a manual entry.
type UpdateManualInput struct {
	Name     *string
	Quantity *int
	Notes    *string
}

// ListInput paginates a user's inventory listing.
type ListInput struct {
	Limit  int
	Cursor string
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs the inventory service.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) AddManual(ctx context.Context, userID uuid.UUID, input AddManualInput) (*EntryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	entry := &models.UserInventory{
		UserID:   userID,
		Name:     name,
		Quantity: input.Quantity,
		Source:   enums.InventorySourceManual,
		Notes:    input.Notes,
	}
	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert inventory entry")
	}
	return NewEntryDTO(created), nil
}

func (s *service) UpdateManual(ctx context.Context, userID, entryID uuid.UUID, input UpdateManualInput) (*EntryDTO, error) {
	// Rows never sit at zero; draining happens through Consume, which deletes.
	if input.Quantity != nil && *input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
	}

	var updated *models.UserInventory
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		entry, err := s.loadOwned(ctx, txRepo, userID, entryID)
		if err != nil {
			return err
		}
		if entry.Source != enums.InventorySourceManual {
			return pkgerrors.New(pkgerrors.CodeInvalidSource, "purchased entries cannot be edited")
		}

		if input.Name != nil {
			entry.Name = strings.TrimSpace(*input.Name)
		}
		if input.Quantity != nil {
			entry.Quantity = *input.Quantity
		}
		if input.Notes != nil {
			entry.Notes = input.Notes
		}

		updated, err = txRepo.Update(ctx, entry)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update inventory entry")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewEntryDTO(updated), nil
}

func (s *service) DeleteManual(ctx context.Context, userID, entryID uuid.UUID) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		entry, err := s.loadOwned(ctx, txRepo, userID, entryID)
		if err != nil {
			return err
		}
		if entry.Source != enums.InventorySourceManual {
			return pkgerrors.New(pkgerrors.CodeInvalidSource, "purchased entries cannot be deleted")
		}

		if err := txRepo.Delete(ctx, entry.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete inventory entry")
		}
		return nil
	})
}

// Consume decrements the entry by amount. Draining the entry to zero deletes
// the row; the second return value reports that removal.
func (s *service) Consume(ctx context.Context, userID, entryID uuid.UUID, amount int) (*EntryDTO, bool, error) {
	if amount < 1 {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "amount must be at least 1")
	}

	var (
		remaining *models.UserInventory
		removed   bool
	)
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		entry, err := s.loadOwned(ctx, txRepo, userID, entryID)
		if err != nil {
			return err
		}
		if amount > entry.Quantity {
			return pkgerrors.New(pkgerrors.CodeValidation, "not enough quantity to consume").
				WithDetails(map[string]any{
					"available": entry.Quantity,
					"requested": amount,
				})
		}

		entry.Quantity -= amount
		if entry.Quantity == 0 {
			if err := txRepo.Delete(ctx, entry.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete drained entry")
			}
			removed = true
			return nil
		}

		remaining, err = txRepo.Update(ctx, entry)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update inventory entry")
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if removed {
		return nil, true, nil
	}
	return NewEntryDTO(remaining), false, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, input ListInput) (*ListResult, error) {
	rows, nextCursor, err := s.repo.List(ctx, userID, pagination.Params{
		Limit:  input.Limit,
		Cursor: input.Cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list inventory")
	}

	entries := make([]EntryDTO, 0, len(rows))
	for i := range rows {
		entries = append(entries, *NewEntryDTO(&rows[i]))
	}
	return &ListResult{Entries: entries, NextCursor: nextCursor}, nil
}

func (s *service) loadOwned(ctx context.Context, repo *Repository, userID, entryID uuid.UUID) (*models.UserInventory, error) {
	entry, err := repo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory entry not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load inventory entry")
	}
	if entry.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "inventory entry belongs to another user")
	}
	return entry, nil
}

// EntryDTO is the transport shape of one inventory row.
type EntryDTO struct {
	ID        uuid.UUID             `json:"id"`
	UserID    uuid.UUID             `json:"user_id"`
	ProductID *uuid.UUID            `json:"product_id,omitempty"`
	Name      string                `json:"name"`
	Quantity  int                   `json:"quantity"`
	Source    enums.InventorySource `json:"source"`
	Notes     *string               `json:"notes,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// ListResult wraps a page of inventory rows.
type ListResult struct {
	Entries    []EntryDTO `json:"entries"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// NewEntryDTO maps the persisted model into its transport shape.
func NewEntryDTO(e *models.UserInventory) *EntryDTO {
	if e == nil {
		return nil
	}
	return &EntryDTO{
		ID:        e.ID,
		UserID:    e.UserID,
		ProductID: e.ProductID,
		Name:      e.Name,
		Quantity:  e.Quantity,
		Source:    e.Source,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
