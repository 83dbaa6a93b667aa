package services

import (
	"context"
	"fmt"

	"github.com/form-live/api/internal/core/domain"
	"github.com/form-live/api/internal/core/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type settingsService struct {
	repo ports.SettingsRepository
	log  *zap.Logger
}

func NewSettingsService(repo ports.SettingsRepository, log *zap.Logger) ports.SettingsService {
	return &settingsService{
		repo: repo,
		log:  log,
	}
}

func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		s.log.Error("failed to fetch settings", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, patch ports.SettingsPatch) error {
	if patch.Empty() {
		return nil
	}
	if patch.UpdateInterval != nil && *patch.UpdateInterval < 1 {
		return domain.ErrInvalidInterval
	}

	if err := s.repo.Update(ctx, patch); err != nil {
		s.log.Error("failed to update settings", zap.Error(err))
		return fmt.Errorf("failed to update settings: %w", err)
	}

	s.log.Info("settings updated")
	return nil
}

func (s *settingsService) SetVotingEnabled(ctx context.Context, enabled bool) error {
	return s.Update(ctx, ports.SettingsPatch{VotingEnabled: &enabled})
}

func (s *settingsService) SetResultsVisible(ctx context.Context, visible bool) error {
	return s.Update(ctx, ports.SettingsPatch{ResultsVisible: &visible})
}

// SetUpdateInterval changes the aggregation interval in seconds. Values
// below one second are rejected with domain.ErrInvalidInterval.
func (s *settingsService) SetUpdateInterval(ctx context.Context, seconds int) error {
	return s.Update(ctx, ports.SettingsPatch{UpdateInterval: &seconds})
}

func (s *settingsService) SetCurrentGroup(ctx context.Context, groupID uuid.UUID) error {
	return s.Update(ctx, ports.SettingsPatch{CurrentGroup: &groupID})
}

func (s *settingsService) IsVotingEnabled(ctx context.Context) (bool, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return settings.VotingEnabled, nil
}

func (s *settingsService) AreResultsVisible(ctx context.Context) (bool, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return settings.ResultsVisible, nil
}
