package domain

import (
	"time"

	"github.com/google/uuid"
)

// Settings is the singleton system configuration row, created with defaults
// on first read.
type Settings struct {
	VotingEnabled      bool       `json:"voting_enabled"`
	ResultsVisible     bool       `json:"results_visible"`
	UpdateInterval     int        `json:"update_interval"`
	AggregationEnabled bool       `json:"aggregation_enabled"`
	CurrentGroup       *uuid.UUID `json:"current_group,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// DefaultSettings returns the values used when the settings row is absent.
func DefaultSettings() Settings {
	return Settings{
		VotingEnabled:      true,
		ResultsVisible:     true,
		UpdateInterval:     60,
		AggregationEnabled: true,
	}
}
