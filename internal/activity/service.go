package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Sreenuraj/postqode-nexus/pkg/db/models"
	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
	pkgerrors "github.com/Sreenuraj/postqode-nexus/pkg/errors"
	"github.com/Sreenuraj/postqode-nexus/pkg/pagination"
	"github.com/Sreenuraj/postqode-nexus/pkg/types"
)

// Service exposes read access to the audit trail.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListResult, error)
}

// ListInput holds the validated listing parameters.
type ListInput struct {
	ProductID  *uuid.UUID
	UserID     *uuid.UUID
	ActionType *string
	Limit      int
	Cursor     string
}

// EntryDTO is the transport shape of one audit entry.
type EntryDTO struct {
	ID         uuid.UUID        `json:"id"`
	UserID     uuid.UUID        `json:"user_id"`
	ProductID  *uuid.UUID       `json:"product_id,omitempty"`
	ActionType enums.ActionType `json:"action_type"`
	OldValue   *types.Snapshot  `json:"old_value,omitempty"`
	NewValue   *types.Snapshot  `json:"new_value,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// ListResult wraps a page of audit entries.
type ListResult struct {
	Entries    []EntryDTO `json:"entries"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

type service struct {
	repo *Repository
}

// NewService constructs the audit read service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("activity repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	filters := ListFilters{
		ProductID: input.ProductID,
		UserID:    input.UserID,
	}
	if input.ActionType != nil {
		action, err := enums.ParseActionType(*input.ActionType)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid action_type")
		}
		filters.ActionType = &action
	}

	entries, nextCursor, err := s.repo.List(ctx, pagination.Params{
		Limit:  input.Limit,
		Cursor: input.Cursor,
	}, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list activity")
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, fromModel(entry))
	}
	return &ListResult{Entries: dtos, NextCursor: nextCursor}, nil
}

func fromModel(entry models.ActivityLog) EntryDTO {
	return EntryDTO{
		ID:         entry.ID,
		UserID:     entry.UserID,
		ProductID:  entry.ProductID,
		ActionType: entry.ActionType,
		OldValue:   entry.OldValue,
		NewValue:   entry.NewValue,
		CreatedAt:  entry.CreatedAt,
	}
}
