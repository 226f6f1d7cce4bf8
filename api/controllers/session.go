package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/flockfilms/flockfilms-backend/api/responses"
	"github.com/flockfilms/flockfilms-backend/api/validators"
	"github.com/flockfilms/flockfilms-backend/pkg/auth"
	"github.com/flockfilms/flockfilms-backend/pkg/auth/session"
	"github.com/flockfilms/flockfilms-backend/pkg/config"
	pkgerrors "github.com/flockfilms/flockfilms-backend/pkg/errors"
	"github.com/flockfilms/flockfilms-backend/pkg/logger"
)

type sessionTokenRotator interface {
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthLogout revokes the refresh session tied to the caller's access token.
// Expired access tokens are accepted so a stale client can still log out.
func AuthLogout(cfg config.JWTConfig, sessions sessionTokenRotator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		claims, err := claimsFromRequest(cfg, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := sessions.Revoke(r.Context(), claims.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged out"})
	}
}

// AuthRefresh rotates the refresh token and mints a fresh access token.
func AuthRefresh(cfg config.JWTConfig, sessions sessionTokenRotator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		claims, err := claimsFromRequest(cfg, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body refreshRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		newAccessID, newRefresh, err := sessions.Rotate(r.Context(), claims.ID, body.RefreshToken)
		if err != nil {
			if errors.Is(err, session.ErrInvalidRefreshToken) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session"))
			return
		}

		accessToken, err := auth.MintAccessToken(cfg, time.Now(), auth.AccessTokenPayload{
			UserID: claims.UserID,
			JTI:    newAccessID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token"))
			return
		}

		responses.WriteSuccess(w, refreshResponse{
			AccessToken:  accessToken,
			RefreshToken: newRefresh,
		})
	}
}

func claimsFromRequest(cfg config.JWTConfig, r *http.Request) (*auth.AccessTokenClaims, error) {
	token, err := parseBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return nil, err
	}
	claims, err := auth.ParseAccessTokenAllowExpired(cfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid access token")
	}
	if strings.TrimSpace(claims.ID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}
	return claims, nil
}

func parseBearerToken(header string) (string, error) {
	const prefix = "Bearer "
	if header == "" || !strings.HasPrefix(header, prefix) {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing bearer token")
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing bearer token")
	}
	return token, nil
}
