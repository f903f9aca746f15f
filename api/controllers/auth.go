package controllers

import (
	"net/http"

	"github.com/Sreenuraj/postqode-nexus/api/responses"
	"github.com/Sreenuraj/postqode-nexus/api/validators"
	"github.com/Sreenuraj/postqode-nexus/internal/auth"
	pkgerrors "github.com/Sreenuraj/postqode-nexus/pkg/errors"
	"github.com/Sreenuraj/postqode-nexus/pkg/logger"
)

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
