package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flockfilms/flockfilms-backend/internal/films"
	pkgerrors "github.com/flockfilms/flockfilms-backend/pkg/errors"
	"github.com/flockfilms/flockfilms-backend/pkg/pagination"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type stubFilmService struct {
	listResult   *films.FilmListResult
	getResult    *films.FilmDTO
	searchResult []films.FilmDTO
	err          error

	lastParams pagination.Params
	lastQuery  string
	lastID     uuid.UUID
}

func (s *stubFilmService) List(ctx context.Context, params pagination.Params) (*films.FilmListResult, error) {
	s.lastParams = params
	return s.listResult, s.err
}

func (s *stubFilmService) Get(ctx context.Context, id uuid.UUID) (*films.FilmDTO, error) {
	s.lastID = id
	return s.getResult, s.err
}

func (s *stubFilmService) Search(ctx context.Context, query string, limit int) ([]films.FilmDTO, error) {
	s.lastQuery = query
	return s.searchResult, s.err
}

func TestFilmsListPassesPagination(t *testing.T) {
	svc := &stubFilmService{listResult: &films.FilmListResult{Films: []films.FilmDTO{}}}
	handler := FilmsList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/films?limit=5&cursor=abc", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastParams.Limit != 5 || svc.lastParams.Cursor != "abc" {
		t.Fatalf("unexpected params: %+v", svc.lastParams)
	}
}

func TestFilmsListRejectsBadLimit(t *testing.T) {
	svc := &stubFilmService{}
	handler := FilmsList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/films?limit=nope", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestFilmsGetRejectsMalformedID(t *testing.T) {
	svc := &stubFilmService{}
	router := chi.NewRouter()
	router.Get("/films/{filmId}", FilmsGet(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/films/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestFilmsGetNotFound(t *testing.T) {
	svc := &stubFilmService{err: pkgerrors.New(pkgerrors.CodeNotFound, "film not found")}
	router := chi.NewRouter()
	router.Get("/films/{filmId}", FilmsGet(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/films/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestFilmsSearchTrimsQuery(t *testing.T) {
	svc := &stubFilmService{searchResult: []films.FilmDTO{{Title: "Heat"}}}
	handler := FilmsSearch(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/films/search?q=%20heat%20", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastQuery != "heat" {
		t.Fatalf("expected trimmed query, got %q", svc.lastQuery)
	}

	var payload struct {
		Data struct {
			Films []films.FilmDTO `json:"films"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Data.Films) != 1 || payload.Data.Films[0].Title != "Heat" {
		t.Fatalf("unexpected payload: %+v", payload.Data.Films)
	}
}
