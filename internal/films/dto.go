package films

import (
	"time"

	"github.com/google/uuid"

	"github.com/flockfilms/flockfilms-backend/pkg/db/models"
)

// FilmDTO is the catalog entry shape returned to clients.
type FilmDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Year      *int      `json:"year,omitempty"`
	Director  *string   `json:"director,omitempty"`
	Synopsis  *string   `json:"synopsis,omitempty"`
	PosterURL *string   `json:"poster_url,omitempty"`
	Genres    *string   `json:"genres,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FilmListResult carries one catalog page plus the cursor for the next.
type FilmListResult struct {
	Films      []FilmDTO `json:"films"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

func FromModel(f *models.Film) *FilmDTO {
	if f == nil {
		return nil
	}
	return &FilmDTO{
		ID:        f.ID,
		Title:     f.Title,
		Year:      f.Year,
		Director:  f.Director,
		Synopsis:  f.Synopsis,
		PosterURL: f.PosterURL,
		Genres:    f.Genres,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func fromModels(rows []models.Film) []FilmDTO {
	dtos := make([]FilmDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos
}
