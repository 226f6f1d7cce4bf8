package models

import (
	"time"

	"github.com/google/uuid"
)

// Film is read-only reference data seeded by cmd/seed; the API never mutates it.
type Film struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string    `gorm:"type:text;not null;index"`
	Year      *int      `gorm:"column:year"`
	Director  *string   `gorm:"column:director"`
	Synopsis  *string   `gorm:"column:synopsis"`
	PosterURL *string   `gorm:"column:poster_url"`
	Genres    *string   `gorm:"column:genres"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
