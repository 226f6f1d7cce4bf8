package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flockfilms/flockfilms-backend/api/middleware"
	"github.com/flockfilms/flockfilms-backend/internal/users"
	"github.com/flockfilms/flockfilms-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubUserFinder struct {
	user *models.User
	err  error
}

func (s stubUserFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func TestMeRequiresIdentity(t *testing.T) {
	handler := Me(stubUserFinder{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMeHandlesDeletedUser(t *testing.T) {
	handler := Me(stubUserFinder{err: gorm.ErrRecordNotFound}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing backing user, got %d", rec.Code)
	}
}

func TestMeReturnsProfile(t *testing.T) {
	userID := uuid.New()
	handler := Me(stubUserFinder{user: &models.User{ID: userID, Email: "viewer@example.com"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Data users.UserDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Data.ID != userID || payload.Data.Email != "viewer@example.com" {
		t.Fatalf("unexpected profile: %+v", payload.Data)
	}
}
