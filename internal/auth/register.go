package auth

import (
	"context"
	"time"

	"github.com/flockfilms/flockfilms-backend/internal/users"
	"github.com/flockfilms/flockfilms-backend/pkg/config"
	"github.com/flockfilms/flockfilms-backend/pkg/db"
	"github.com/flockfilms/flockfilms-backend/pkg/db/models"
	pkgerrors "github.com/flockfilms/flockfilms-backend/pkg/errors"
	"github.com/flockfilms/flockfilms-backend/pkg/security"
	"gorm.io/gorm"
)

// Unique index on lower(email), created in the users migration. Insert and
// map the violation instead of check-then-insert so concurrent registrations
// cannot both succeed.
const emailUniqueConstraint = "users_email_lower_uidx"

// RegisterService handles account creation.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
}

type registerService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
	session     sessionManager
	jwtCfg      config.JWTConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if params.SessionManager == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session manager required")
	}
	return &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
		session:     params.SessionManager,
		jwtCfg:      params.JWTConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := NormalizeEmail(req.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if req.Password != req.PasswordConfirmation {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var user *models.User
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		created, err := users.NewRepository(tx).Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
		})
		if err != nil {
			if db.IsUniqueViolation(err, emailUniqueConstraint) {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}
		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return issueSession(ctx, s.session, s.jwtCfg, user, time.Now().UTC())
}
