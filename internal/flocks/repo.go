package flocks

import (
	"context"
	"strings"
	"time"

	"github.com/flockfilms/flockfilms-backend/pkg/db/models"
	"github.com/flockfilms/flockfilms-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const filmCountClause = "(SELECT COUNT(*) FROM flock_films ff WHERE ff.flock_id = f.id)"

// Repository encapsulates flock persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a flocks repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the flock and its film references in one transaction.
// Positions follow the order of filmIDs.
func (r *Repository) Create(ctx context.Context, creatorID uuid.UUID, name string, filmIDs []uuid.UUID) (*models.Flock, error) {
	flock := &models.Flock{
		CreatorID: creatorID,
		Name:      name,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(flock).Error; err != nil {
			return err
		}
		if len(filmIDs) == 0 {
			return nil
		}
		refs := make([]models.FlockFilm, 0, len(filmIDs))
		for i, filmID := range filmIDs {
			refs = append(refs, models.FlockFilm{
				FlockID:  flock.ID,
				FilmID:   filmID,
				Position: i,
			})
		}
		return tx.Create(&refs).Error
	})
	if err != nil {
		return nil, err
	}
	return flock, nil
}

// FindByID loads a flock without its film references.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Flock, error) {
	var flock models.Flock
	if err := r.db.WithContext(ctx).First(&flock, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &flock, nil
}

// ListFilmRefs returns the flock's film references in stored position order.
func (r *Repository) ListFilmRefs(ctx context.Context, flockID uuid.UUID) ([]models.FlockFilm, error) {
	var refs []models.FlockFilm
	err := r.db.WithContext(ctx).
		Where("flock_id = ?", flockID).
		Order("position ASC").
		Find(&refs).
		Error
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// ListByCreator returns one page of the creator's flocks, newest first.
func (r *Repository) ListByCreator(ctx context.Context, creatorID uuid.UUID, params pagination.Params) ([]FlockDTO, string, error) {
	return r.list(ctx, &creatorID, params)
}

// ListAll returns one page of every flock for the discovery feed.
func (r *Repository) ListAll(ctx context.Context, params pagination.Params) ([]FlockDTO, string, error) {
	return r.list(ctx, nil, params)
}

func (r *Repository) list(ctx context.Context, creatorID *uuid.UUID, params pagination.Params) ([]FlockDTO, string, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).
		Table("flocks f").
		Select(strings.Join([]string{
			"f.id",
			"f.creator_id",
			"f.name",
			"f.created_at",
			"f.updated_at",
			filmCountClause + " AS film_count",
		}, ", "))

	if creatorID != nil {
		qb = qb.Where("f.creator_id = ?", *creatorID)
	}
	if cursor != nil {
		qb = qb.Where("(f.created_at < ?) OR (f.created_at = ? AND f.id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}
	qb = qb.Order("f.created_at DESC").Order("f.id DESC").Limit(limitWithBuffer)

	var records []flockSummaryRecord
	if err := qb.Scan(&records).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(records) > pageSize {
		records = records[:pageSize]
		last := records[len(records)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	dtos := make([]FlockDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, record.toDTO())
	}
	return dtos, nextCursor, nil
}

type flockSummaryRecord struct {
	ID        uuid.UUID `gorm:"column:id"`
	CreatorID uuid.UUID `gorm:"column:creator_id"`
	Name      string    `gorm:"column:name"`
	FilmCount int       `gorm:"column:film_count"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (r flockSummaryRecord) toDTO() FlockDTO {
	return FlockDTO{
		ID:        r.ID,
		CreatorID: r.CreatorID,
		Name:      r.Name,
		FilmCount: r.FilmCount,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
