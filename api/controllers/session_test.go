package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/flockfilms/flockfilms-backend/pkg/auth"
	"github.com/flockfilms/flockfilms-backend/pkg/auth/session"
	"github.com/flockfilms/flockfilms-backend/pkg/config"
	"github.com/google/uuid"
)

type stubRotator struct {
	newAccessID string
	newToken    string
	rotateErr   error
	revokeErr   error

	revokedID string
	rotatedID string
	provided  string
}

func (s *stubRotator) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	s.rotatedID = oldAccessID
	s.provided = provided
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return s.newAccessID, s.newToken, nil
}

func (s *stubRotator) Revoke(ctx context.Context, accessID string) error {
	s.revokedID = accessID
	return s.revokeErr
}

func sessionTestJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "flockfilms", ExpirationMinutes: 60}
}

func mintSessionToken(t *testing.T, cfg config.JWTConfig, jti string) string {
	t.Helper()
	token, err := auth.MintAccessToken(cfg, time.Now(), auth.AccessTokenPayload{
		UserID: uuid.New(),
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthLogoutRevokesSession(t *testing.T) {
	cfg := sessionTestJWTConfig()
	jti := session.NewAccessID()
	rotator := &stubRotator{}
	handler := AuthLogout(cfg, rotator, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+mintSessionToken(t, cfg, jti))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rotator.revokedID != jti {
		t.Fatalf("expected revocation of %s, got %s", jti, rotator.revokedID)
	}
}

func TestAuthLogoutRequiresBearerToken(t *testing.T) {
	handler := AuthLogout(sessionTestJWTConfig(), &stubRotator{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRefreshRotatesAndMints(t *testing.T) {
	cfg := sessionTestJWTConfig()
	jti := session.NewAccessID()
	rotator := &stubRotator{newAccessID: session.NewAccessID(), newToken: "fresh-refresh"}
	handler := AuthRefresh(cfg, rotator, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refresh_token":"old-refresh"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+mintSessionToken(t, cfg, jti))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rotator.rotatedID != jti || rotator.provided != "old-refresh" {
		t.Fatalf("unexpected rotation call: id=%s provided=%s", rotator.rotatedID, rotator.provided)
	}

	var payload struct {
		Data refreshResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Data.RefreshToken != "fresh-refresh" {
		t.Fatalf("unexpected refresh token %q", payload.Data.RefreshToken)
	}

	claims, err := auth.ParseAccessToken(cfg, payload.Data.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.ID != rotator.newAccessID {
		t.Fatalf("expected jti %s, got %s", rotator.newAccessID, claims.ID)
	}
}

func TestAuthRefreshRejectsInvalidToken(t *testing.T) {
	cfg := sessionTestJWTConfig()
	rotator := &stubRotator{rotateErr: session.ErrInvalidRefreshToken}
	handler := AuthRefresh(cfg, rotator, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refresh_token":"stolen"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+mintSessionToken(t, cfg, session.NewAccessID()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
