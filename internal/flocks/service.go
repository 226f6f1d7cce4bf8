package flocks

import (
	"context"
	"errors"
	"strings"

	films "github.com/flockfilms/flockfilms-backend/internal/films"
	"github.com/flockfilms/flockfilms-backend/pkg/db/models"
	pkgerrors "github.com/flockfilms/flockfilms-backend/pkg/errors"
	"github.com/flockfilms/flockfilms-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes collection management to the controllers.
type Service interface {
	Create(ctx context.Context, creatorID uuid.UUID, req CreateFlockRequest) (*FlockDetailDTO, error)
	ListOwn(ctx context.Context, creatorID uuid.UUID, params pagination.Params) (*FlockListResult, error)
	ListAll(ctx context.Context, params pagination.Params) (*FlockListResult, error)
	GetWithFilms(ctx context.Context, id uuid.UUID) (*FlockDetailDTO, error)
}

type flockRepository interface {
	Create(ctx context.Context, creatorID uuid.UUID, name string, filmIDs []uuid.UUID) (*models.Flock, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Flock, error)
	ListFilmRefs(ctx context.Context, flockID uuid.UUID) ([]models.FlockFilm, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID, params pagination.Params) ([]FlockDTO, string, error)
	ListAll(ctx context.Context, params pagination.Params) ([]FlockDTO, string, error)
}

type filmFinder interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Film, error)
}

// ServiceParams groups dependencies for the flocks service.
type ServiceParams struct {
	FlockRepo flockRepository
	FilmRepo  filmFinder
}

type service struct {
	flocks flockRepository
	films  filmFinder
}

// NewService builds a flocks service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.FlockRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "flock repo is required")
	}
	if params.FilmRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "film repo is required")
	}
	return &service{
		flocks: params.FlockRepo,
		films:  params.FilmRepo,
	}, nil
}

// Create persists a new flock owned by creatorID. Positions follow the
// request order; repeated film ids keep their first position.
func (s *service) Create(ctx context.Context, creatorID uuid.UUID, req CreateFlockRequest) (*FlockDetailDTO, error) {
	if creatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	filmIDs := dedupeIDs(req.FilmIDs)
	flock, err := s.flocks.Create(ctx, creatorID, name, filmIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create flock")
	}

	return s.expand(ctx, flock)
}

// ListOwn returns only the flocks whose creator matches the caller.
func (s *service) ListOwn(ctx context.Context, creatorID uuid.UUID, params pagination.Params) (*FlockListResult, error) {
	if creatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, nextCursor, err := s.flocks.ListByCreator(ctx, creatorID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list own flocks")
	}
	return &FlockListResult{Flocks: rows, NextCursor: nextCursor}, nil
}

// ListAll returns the discovery feed across every creator.
func (s *service) ListAll(ctx context.Context, params pagination.Params) (*FlockListResult, error) {
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	rows, nextCursor, err := s.flocks.ListAll(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list flocks")
	}
	return &FlockListResult{Flocks: rows, NextCursor: nextCursor}, nil
}

// GetWithFilms reads the flock, then batch-fetches the referenced films and
// reassembles them in stored position order. References that no longer exist
// in the catalog are dropped from the result.
func (s *service) GetWithFilms(ctx context.Context, id uuid.UUID) (*FlockDetailDTO, error) {
	flock, err := s.flocks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "flock not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch flock")
	}
	return s.expand(ctx, flock)
}

func (s *service) expand(ctx context.Context, flock *models.Flock) (*FlockDetailDTO, error) {
	refs, err := s.flocks.ListFilmRefs(ctx, flock.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list film refs")
	}

	ids := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.FilmID)
	}

	rows, err := s.films.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch films")
	}
	byID := make(map[uuid.UUID]*models.Film, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	expanded := make([]films.FilmDTO, 0, len(refs))
	for _, ref := range refs {
		film, ok := byID[ref.FilmID]
		if !ok {
			continue
		}
		expanded = append(expanded, *films.FromModel(film))
	}

	return &FlockDetailDTO{
		ID:        flock.ID,
		CreatorID: flock.CreatorID,
		Name:      flock.Name,
		Films:     expanded,
		CreatedAt: flock.CreatedAt,
		UpdatedAt: flock.UpdatedAt,
	}, nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
