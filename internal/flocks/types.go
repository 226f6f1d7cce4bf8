package flocks

import (
	"time"

	films "github.com/flockfilms/flockfilms-backend/internal/films"
	"github.com/google/uuid"
)

// CreateFlockRequest is the payload for creating a collection. Duplicate
// names are allowed; film_ids may be empty.
type CreateFlockRequest struct {
	Name    string      `json:"name" validate:"required,max=200"`
	FilmIDs []uuid.UUID `json:"film_ids"`
}

// FlockDTO is the list-view shape of a collection.
type FlockDTO struct {
	ID        uuid.UUID `json:"id"`
	CreatorID uuid.UUID `json:"creator_id"`
	Name      string    `json:"name"`
	FilmCount int       `json:"film_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FlockDetailDTO is the expanded view: film references resolved into full
// catalog documents, in stored position order.
type FlockDetailDTO struct {
	ID        uuid.UUID       `json:"id"`
	CreatorID uuid.UUID       `json:"creator_id"`
	Name      string          `json:"name"`
	Films     []films.FilmDTO `json:"films"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// FlockListResult carries one page of flocks plus the cursor for the next.
type FlockListResult struct {
	Flocks     []FlockDTO `json:"flocks"`
	NextCursor string     `json:"next_cursor,omitempty"`
}
