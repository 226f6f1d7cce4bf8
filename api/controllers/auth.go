package controllers

import (
	"net/http"

	"github.com/flockfilms/flockfilms-backend/api/responses"
	"github.com/flockfilms/flockfilms-backend/api/validators"
	"github.com/flockfilms/flockfilms-backend/internal/auth"
	pkgerrors "github.com/flockfilms/flockfilms-backend/pkg/errors"
	"github.com/flockfilms/flockfilms-backend/pkg/logger"
)

// AuthLogin authenticates a user and returns session tokens.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
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
