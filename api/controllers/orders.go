package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Sreenuraj/postqode-nexus/api/responses"
	"github.com/Sreenuraj/postqode-nexus/api/validators"
	"github.com/Sreenuraj/postqode-nexus/internal/orders"
	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
	pkgerrors "github.com/Sreenuraj/postqode-nexus/pkg/errors"
	"github.com/Sreenuraj/postqode-nexus/pkg/logger"
	"github.com/Sreenuraj/postqode-nexus/pkg/pagination"
)

type createOrderRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CreateOrder places a new pending order for the authenticated user.
func CreateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathID(payload.ProductID, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateOrder(r.Context(), actor, orders.CreateOrderInput{
			ProductID: productID,
			Quantity:  payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ApproveOrder resolves a pending order, moving stock and crediting inventory.
func ApproveOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return orderDecisionHandler(svc, logg, func(r *http.Request, actor, orderID uuid.UUID) (*orders.OrderDTO, error) {
		return svc.ApproveOrder(r.Context(), actor, orderID)
	})
}

// RejectOrder resolves a pending order without touching stock.
func RejectOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return orderDecisionHandler(svc, logg, func(r *http.Request, actor, orderID uuid.UUID) (*orders.OrderDTO, error) {
		return svc.RejectOrder(r.Context(), actor, orderID)
	})
}

// CancelOrder lets the buyer cancel their own pending order.
func CancelOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return orderDecisionHandler(svc, logg, func(r *http.Request, actor, orderID uuid.UUID) (*orders.OrderDTO, error) {
		return svc.CancelOrder(r.Context(), actor, orderID)
	})
}

// GetOrder returns a single order, scoped to its owner unless the caller is admin.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return orderDecisionHandler(svc, logg, func(r *http.Request, actor, orderID uuid.UUID) (*orders.OrderDTO, error) {
		return svc.GetOrder(r.Context(), actor, isAdmin(r), orderID)
	})
}

// ListOrders pages through orders. Regular users see only their own; admins
// may pass user_id to inspect any account or omit it to see everything.
func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
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

		input := orders.ListOrdersInput{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		if isAdmin(r) {
			if raw := strings.TrimSpace(r.URL.Query().Get("user_id")); raw != "" {
				userID, err := pathID(raw, "user_id")
				if err != nil {
					responses.WriteError(r.Context(), logg, w, err)
					return
				}
				input.UserID = &userID
			}
		} else {
			input.UserID = &actor
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			input.Status = &status
		}

		page, err := svc.ListOrders(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

func orderDecisionHandler(svc orders.Service, logg *logger.Logger, fn func(r *http.Request, actor, orderID uuid.UUID) (*orders.OrderDTO, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := pathID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := fn(r, actor, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
