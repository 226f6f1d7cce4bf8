package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/flockfilms/flockfilms-backend/pkg/config"
	"github.com/flockfilms/flockfilms-backend/pkg/db"
	"github.com/flockfilms/flockfilms-backend/pkg/db/models"
	pkgerrors "github.com/flockfilms/flockfilms-backend/pkg/errors"
)

func buildRegisterService(t *testing.T) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             &db.Client{},
		PasswordConfig: config.PasswordConfig{},
		SessionManager: &stubSessionManager{refreshToken: "refresh-token"},
		JWTConfig:      testServiceJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build register service: %v", err)
	}
	return svc
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	svc := buildRegisterService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		FirstName:            "Vera",
		LastName:             "Viewer",
		Email:                "viewer@example.com",
		Password:             "first choice",
		PasswordConfirmation: "second choice",
	})
	if err == nil {
		t.Fatalf("expected mismatch to fail")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterRejectsBlankEmail(t *testing.T) {
	svc := buildRegisterService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		FirstName:            "Vera",
		LastName:             "Viewer",
		Email:                "   ",
		Password:             "long enough",
		PasswordConfirmation: "long enough",
	})
	if err == nil {
		t.Fatalf("expected blank email to fail")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// setupRegisterDB opens a throwaway sqlite database with the same shape the
// users migration produces, including the unique index on LOWER(email).
func setupRegisterDB(t *testing.T) *db.Client {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		DSN:    filepath.Join(t.TempDir(), "register.db"),
		Driver: "sqlite",
	}, nil)
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	usersTable := `
CREATE TABLE users (
  id TEXT PRIMARY KEY DEFAULT (
    lower(hex(randomblob(4))) || '-' ||
    lower(hex(randomblob(2))) || '-4' ||
    substr(lower(hex(randomblob(2))), 2) || '-a' ||
    substr(lower(hex(randomblob(2))), 2) || '-' ||
    lower(hex(randomblob(6)))
  ),
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	if err := client.DB().Exec(usersTable).Error; err != nil {
		t.Fatalf("create users table: %v", err)
	}
	if err := client.DB().Exec("CREATE UNIQUE INDEX users_email_lower_uidx ON users (LOWER(email))").Error; err != nil {
		t.Fatalf("create unique index: %v", err)
	}
	return client
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	client := setupRegisterDB(t)
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             client,
		PasswordConfig: config.PasswordConfig{},
		SessionManager: &stubSessionManager{refreshToken: "refresh-token"},
		JWTConfig:      testServiceJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build register service: %v", err)
	}

	first, err := svc.Register(context.Background(), RegisterRequest{
		FirstName:            "Vera",
		LastName:             "Viewer",
		Email:                "viewer@example.com",
		Password:             "long enough",
		PasswordConfirmation: "long enough",
	})
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	if first.AccessToken == "" || first.User == nil {
		t.Fatalf("expected first registration to issue a session, got %+v", first)
	}

	// Same address with different casing must hit the lower(email) index.
	_, err = svc.Register(context.Background(), RegisterRequest{
		FirstName:            "Vera",
		LastName:             "Viewer",
		Email:                "Viewer@Example.COM",
		Password:             "long enough",
		PasswordConfirmation: "long enough",
	})
	if err == nil {
		t.Fatalf("expected duplicate email to fail")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}

	var count int64
	if err := client.DB().Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single persisted user, got %d", count)
	}
}

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"  Viewer@Example.COM ": "viewer@example.com",
		"plain@example.com":     "plain@example.com",
		"   ":                   "",
	}
	for in, want := range cases {
		if got := NormalizeEmail(in); got != want {
			t.Fatalf("NormalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}
