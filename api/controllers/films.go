package controllers

import (
	"net/http"
	"strings"

	"github.com/flockfilms/flockfilms-backend/api/responses"
	"github.com/flockfilms/flockfilms-backend/api/validators"
	"github.com/flockfilms/flockfilms-backend/internal/films"
	pkgerrors "github.com/flockfilms/flockfilms-backend/pkg/errors"
	"github.com/flockfilms/flockfilms-backend/pkg/logger"
	"github.com/flockfilms/flockfilms-backend/pkg/pagination"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FilmsList returns a page of the catalog ordered newest first.
func FilmsList(svc films.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "film service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// FilmsSearch matches the q parameter against title, director, and synopsis.
func FilmsSearch(svc films.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "film service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := strings.TrimSpace(r.URL.Query().Get("q"))
		matches, err := svc.Search(r.Context(), query, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"films": matches})
	}
}

// FilmsGet returns a single film by its identifier.
func FilmsGet(svc films.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "film service unavailable"))
			return
		}

		filmID, err := uuid.Parse(chi.URLParam(r, "filmId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "film id must be a uuid"))
			return
		}

		film, err := svc.Get(r.Context(), filmID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, film)
	}
}
