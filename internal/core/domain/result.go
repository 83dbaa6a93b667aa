package domain

import (
	"time"

	"github.com/google/uuid"
)

// Result is the cached per-group aggregate. One row per group, keyed by
// GroupID. Entirely derived from votes and groups; safe to drop and
// regenerate at any time.
type Result struct {
	GroupID      uuid.UUID `json:"group_id"`
	GroupName    string    `json:"group_name"`
	TotalScore   int       `json:"total_score"`
	VoteCount    int       `json:"vote_count"`
	AverageScore float64   `json:"average_score"`
	Rank         int       `json:"rank"`
	UpdatedAt    time.Time `json:"updated_at"`
}
