package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Sreenuraj/postqode-nexus/api/middleware"
	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
	pkgerrors "github.com/Sreenuraj/postqode-nexus/pkg/errors"
)

// actorID extracts the authenticated user's UUID from the request context.
func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

func isAdmin(r *http.Request) bool {
	return middleware.RoleFromContext(r.Context()) == string(enums.UserRoleAdmin)
}

// pathID parses a UUID route parameter already extracted by the router.
func pathID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid identifier").
			WithDetails(map[string]any{"field": field})
	}
	return id, nil
}
