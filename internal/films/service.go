package films

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flockfilms/flockfilms-backend/pkg/db/models"
	pkgerrors "github.com/flockfilms/flockfilms-backend/pkg/errors"
	"github.com/flockfilms/flockfilms-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the catalog read operations used by controllers.
type Service interface {
	List(ctx context.Context, params pagination.Params) (*FilmListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*FilmDTO, error)
	Search(ctx context.Context, query string, limit int) ([]FilmDTO, error)
}

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Film, error)
	List(ctx context.Context, params pagination.Params) ([]models.Film, string, error)
	Search(ctx context.Context, query string, limit int) ([]models.Film, error)
}

type service struct {
	repo repository
}

// NewService constructs a catalog service over the provided repository.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("films repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*FilmListResult, error) {
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, nextCursor, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list films")
	}
	return &FilmListResult{
		Films:      fromModels(rows),
		NextCursor: nextCursor,
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*FilmDTO, error) {
	film, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "film not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch film")
	}
	return FromModel(film), nil
}

// Search returns an empty result for blank queries without touching the store.
func (s *service) Search(ctx context.Context, query string, limit int) ([]FilmDTO, error) {
	if strings.TrimSpace(query) == "" {
		return []FilmDTO{}, nil
	}
	rows, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search films")
	}
	return fromModels(rows), nil
}
