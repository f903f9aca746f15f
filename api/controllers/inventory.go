package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Sreenuraj/postqode-nexus/api/responses"
	"github.com/Sreenuraj/postqode-nexus/api/validators"
	"github.com/Sreenuraj/postqode-nexus/internal/inventory"
	pkgerrors "github.com/Sreenuraj/postqode-nexus/pkg/errors"
	"github.com/Sreenuraj/postqode-nexus/pkg/logger"
	"github.com/Sreenuraj/postqode-nexus/pkg/pagination"
)

type addInventoryRequest struct {
	Name     string  `json:"name" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
	Notes    *string `json:"notes,omitempty"`
}

type updateInventoryRequest struct {
	Name     *string `json:"name,omitempty"`
	Quantity *int    `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Notes    *string `json:"notes,omitempty"`
}

type consumeInventoryRequest struct {
	Amount int `json:"amount" validate:"required,min=1"`
}

type consumeInventoryResponse struct {
	Entry   *inventory.EntryDTO `json:"entry,omitempty"`
	Removed bool                `json:"removed"`
}

// AddInventoryEntry records a manual inventory entry for the caller.
func AddInventoryEntry(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.AddManual(r.Context(), actor, inventory.AddManualInput{
			Name:     validators.SanitizeString(payload.Name, maxNameLen),
			Quantity: payload.Quantity,
			Notes:    sanitizeOptional(payload.Notes, maxFreeTextLen),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// UpdateInventoryEntry edits a manual entry. Purchased rows are immutable here.
func UpdateInventoryEntry(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entryID, err := pathID(chi.URLParam(r, "entryID"), "entryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.UpdateManual(r.Context(), actor, entryID, inventory.UpdateManualInput{
			Name:     sanitizeOptional(payload.Name, maxNameLen),
			Quantity: payload.Quantity,
			Notes:    sanitizeOptional(payload.Notes, maxFreeTextLen),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entry)
	}
}

// DeleteInventoryEntry removes a manual entry.
func DeleteInventoryEntry(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entryID, err := pathID(chi.URLParam(r, "entryID"), "entryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteManual(r.Context(), actor, entryID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ConsumeInventory decrements an entry's quantity, dropping the row at zero.
func ConsumeInventory(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entryID, err := pathID(chi.URLParam(r, "entryID"), "entryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload consumeInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, removed, err := svc.Consume(r.Context(), actor, entryID, payload.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, consumeInventoryResponse{Entry: entry, Removed: removed})
	}
}

// ListInventory pages through the caller's inventory entries.
func ListInventory(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), actor, inventory.ListInput{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}
