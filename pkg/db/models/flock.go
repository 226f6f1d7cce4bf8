package models

import (
	"time"

	"github.com/google/uuid"
)

// Flock is a user-curated, named collection of film references. Names are not
// unique; a user may create two flocks called "Favorites".
type Flock struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CreatorID uuid.UUID `gorm:"column:creator_id;type:uuid;not null;index:flocks_creator_id_idx"`
	Name      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
