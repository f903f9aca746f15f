package controllers

import (
	"net/http"
	"strings"

	"github.com/Sreenuraj/postqode-nexus/api/responses"
	"github.com/Sreenuraj/postqode-nexus/api/validators"
	"github.com/Sreenuraj/postqode-nexus/internal/activity"
	pkgerrors "github.com/Sreenuraj/postqode-nexus/pkg/errors"
	"github.com/Sreenuraj/postqode-nexus/pkg/logger"
	"github.com/Sreenuraj/postqode-nexus/pkg/pagination"
)

// ListActivity pages through the audit trail for admin callers. Entries can
// be narrowed by product, user, or action type.
func ListActivity(svc activity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "activity service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := activity.ListInput{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("product_id")); raw != "" {
			productID, err := pathID(raw, "product_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.ProductID = &productID
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("user_id")); raw != "" {
			userID, err := pathID(raw, "user_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.UserID = &userID
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("action_type")); raw != "" {
			input.ActionType = &raw
		}

		page, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}
