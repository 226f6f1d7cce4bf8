package models

import (
	"time"

	"github.com/google/uuid"
)

// FlockFilm links a flock to one of its films. Position preserves the order in
// which films were added. FilmID is intentionally not foreign-keyed: the
// catalog may be re-seeded underneath existing flocks, and expansion drops
// references that no longer resolve.
type FlockFilm struct {
	FlockID   uuid.UUID `gorm:"column:flock_id;type:uuid;not null;primaryKey;index:flock_films_flock_id_idx"`
	FilmID    uuid.UUID `gorm:"column:film_id;type:uuid;not null;primaryKey"`
	Position  int       `gorm:"column:position;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
