package domain

import (
	"time"

	"github.com/google/uuid"
)

// Group is an entity being scored. DisplayOrder is a manually maintained
// ordinal used only for listing; it carries no ranking meaning.
type Group struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}
