package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/flockfilms/flockfilms-backend/api/middleware"
	"github.com/flockfilms/flockfilms-backend/api/responses"
	"github.com/flockfilms/flockfilms-backend/internal/users"
	"github.com/flockfilms/flockfilms-backend/pkg/db/models"
	pkgerrors "github.com/flockfilms/flockfilms-backend/pkg/errors"
	"github.com/flockfilms/flockfilms-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Me returns the profile of the authenticated caller.
func Me(finder userFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		if finder == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user store unavailable"))
			return
		}

		user, err := finder.FindByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user"))
			return
		}

		responses.WriteSuccess(w, users.FromModel(user))
	}
}
