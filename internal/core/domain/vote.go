package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a single 1..5 score cast for a group from a device-scoped
// identity. Votes are immutable once stored; administrators may delete them.
type Vote struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"group_id"`
	GroupName string    `json:"group_name"`
	Score     int       `json:"score"`
	DeviceID  string    `json:"device_id"`
	CreatedAt time.Time `json:"created_at"`
}
