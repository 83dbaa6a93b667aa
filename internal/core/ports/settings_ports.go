package ports

import (
	"context"

	"github.com/form-live/api/internal/core/domain"
	"github.com/google/uuid"
)

// SettingsPatch is a partial settings update; nil fields are left unchanged.
type SettingsPatch struct {
	VotingEnabled      *bool
	ResultsVisible     *bool
	UpdateInterval     *int
	AggregationEnabled *bool
	CurrentGroup       *uuid.UUID
}

// Empty reports whether the patch would change nothing.
func (p SettingsPatch) Empty() bool {
	return p.VotingEnabled == nil && p.ResultsVisible == nil &&
		p.UpdateInterval == nil && p.AggregationEnabled == nil && p.CurrentGroup == nil
}

type SettingsRepository interface {
	// Get returns the singleton settings row, creating it with defaults
	// when absent.
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, patch SettingsPatch) error
}

type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, patch SettingsPatch) error
	SetVotingEnabled(ctx context.Context, enabled bool) error
	SetResultsVisible(ctx context.Context, visible bool) error
	SetUpdateInterval(ctx context.Context, seconds int) error
	SetCurrentGroup(ctx context.Context, groupID uuid.UUID) error
	IsVotingEnabled(ctx context.Context) (bool, error)
	AreResultsVisible(ctx context.Context) (bool, error)
}
