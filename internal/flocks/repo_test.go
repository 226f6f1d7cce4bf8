package flocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flockfilms/flockfilms-backend/pkg/db/models"
	"github.com/flockfilms/flockfilms-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFlocksTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	flocksTable := `
CREATE TABLE IF NOT EXISTS flocks (
  id TEXT PRIMARY KEY,
  creator_id TEXT NOT NULL,
  name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	flockFilmsTable := `
CREATE TABLE IF NOT EXISTS flock_films (
  flock_id TEXT NOT NULL,
  film_id TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  PRIMARY KEY (flock_id, film_id)
);`
	require.NoError(t, db.Exec(flocksTable).Error)
	require.NoError(t, db.Exec(flockFilmsTable).Error)

	t.Cleanup(func() {
		db.Exec("DELETE FROM flock_films")
		db.Exec("DELETE FROM flocks")
	})

	return db
}

func insertFlock(t *testing.T, db *gorm.DB, creatorID uuid.UUID, name string, createdAt time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := db.Create(&models.Flock{
		ID:        id,
		CreatorID: creatorID,
		Name:      name,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}).Error
	require.NoError(t, err)
	return id
}

func TestRepoFindByIDMissing(t *testing.T) {
	repo := NewRepository(setupFlocksTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepoListFilmRefsOrdersByPosition(t *testing.T) {
	db := setupFlocksTestDB(t)
	repo := NewRepository(db)

	flockID := insertFlock(t, db, uuid.New(), "watchlist", time.Now().UTC())
	first, second, third := uuid.New(), uuid.New(), uuid.New()
	for i, filmID := range []uuid.UUID{third, first, second} {
		require.NoError(t, db.Create(&models.FlockFilm{
			FlockID:  flockID,
			FilmID:   filmID,
			Position: 2 - i,
		}).Error)
	}

	refs, err := repo.ListFilmRefs(context.Background(), flockID)
	require.NoError(t, err)
	require.Len(t, refs, 3)
	assert.Equal(t, first, refs[0].FilmID)
	assert.Equal(t, second, refs[1].FilmID)
	assert.Equal(t, third, refs[2].FilmID)
}

func TestRepoListAllPaginates(t *testing.T) {
	db := setupFlocksTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	creator := uuid.New()
	for i := 0; i < 3; i++ {
		insertFlock(t, db, creator, "flock", base.Add(time.Duration(i)*time.Hour))
	}

	page1, cursor, err := repo.ListAll(context.Background(), pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.NotEmpty(t, cursor)

	page2, cursor2, err := repo.ListAll(context.Background(), pagination.Params{Limit: 2, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Empty(t, cursor2)

	seen := map[uuid.UUID]bool{}
	for _, f := range append(page1, page2...) {
		assert.False(t, seen[f.ID], "flock %s returned twice", f.ID)
		seen[f.ID] = true
	}
	assert.True(t, page1[0].CreatedAt.After(page1[1].CreatedAt))
}

func TestRepoListByCreatorFilters(t *testing.T) {
	db := setupFlocksTestDB(t)
	repo := NewRepository(db)

	mine := uuid.New()
	other := uuid.New()
	now := time.Now().UTC()
	mineID := insertFlock(t, db, mine, "mine", now)
	insertFlock(t, db, other, "theirs", now.Add(time.Minute))

	rows, _, err := repo.ListByCreator(context.Background(), mine, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, mineID, rows[0].ID)
}

func TestRepoListIncludesFilmCount(t *testing.T) {
	db := setupFlocksTestDB(t)
	repo := NewRepository(db)

	creator := uuid.New()
	flockID := insertFlock(t, db, creator, "counted", time.Now().UTC())
	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.FlockFilm{
			FlockID:  flockID,
			FilmID:   uuid.New(),
			Position: i,
		}).Error)
	}

	rows, _, err := repo.ListByCreator(context.Background(), creator, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].FilmCount)
}
