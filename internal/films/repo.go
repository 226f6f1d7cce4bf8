package films

import (
	"context"
	"strings"

	"github.com/flockfilms/flockfilms-backend/pkg/db/models"
	"github.com/flockfilms/flockfilms-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes read-only catalog persistence. The API never mutates
// films; cmd/seed owns writes.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a single film.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Film, error) {
	var film models.Film
	if err := r.db.WithContext(ctx).First(&film, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &film, nil
}

// FindByIDs batch-loads the films matching the provided ids. Missing ids are
// simply absent from the result.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Film, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Film
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// List returns one page of the catalog in stable insertion order
// (created_at DESC, id DESC) plus the cursor for the next page.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Film, string, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).Model(&models.Film{})
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}
	qb = qb.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer)

	var rows []models.Film
	if err := qb.Find(&rows).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, nextCursor, nil
}

// Search matches the query case-insensitively against title, director, and
// synopsis. Callers filter out blank queries before reaching the repo.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]models.Film, error) {
	pattern := "%" + escapeLikePattern(strings.ToLower(strings.TrimSpace(query))) + "%"
	var rows []models.Film
	err := r.db.WithContext(ctx).
		Where("(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(COALESCE(director, '')) LIKE ? ESCAPE '\\' OR LOWER(COALESCE(synopsis, '')) LIKE ? ESCAPE '\\')", pattern, pattern, pattern).
		Order("title ASC").
		Limit(pagination.NormalizeLimit(limit)).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern neutralizes LIKE metacharacters so user input matches
// literally instead of turning into a wildcard.
func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}
