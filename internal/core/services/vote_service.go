package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/form-live/api/internal/core/domain"
	"github.com/form-live/api/internal/core/ports"
	"github.com/form-live/api/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type voteService struct {
	voteRepo  ports.VoteRepository
	groupRepo ports.GroupRepository
	settings  ports.SettingsService
	log       *zap.Logger
}

func NewVoteService(voteRepo ports.VoteRepository, groupRepo ports.GroupRepository, settings ports.SettingsService, log *zap.Logger) ports.VoteService {
	return &voteService{
		voteRepo:  voteRepo,
		groupRepo: groupRepo,
		settings:  settings,
		log:       log,
	}
}

// SubmitVote validates and stores one vote. The duplicate pre-check is the
// authoritative rejection path; the repository's uniqueness constraint
// closes the remaining race between check and insert.
func (s *voteService) SubmitVote(ctx context.Context, input ports.SubmitVoteInput) (uuid.UUID, error) {
	if !validation.IsValidScore(float64(input.Score)) {
		return uuid.Nil, domain.ErrInvalidScore
	}
	if !validation.IsValidDeviceID(input.DeviceID) {
		return uuid.Nil, domain.ErrInvalidDeviceID
	}

	enabled, err := s.settings.IsVotingEnabled(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check voting settings: %w", err)
	}
	if !enabled {
		return uuid.Nil, domain.ErrVotingDisabled
	}

	group, err := s.groupRepo.Get(ctx, input.GroupID)
	if err != nil {
		s.log.Error("failed to fetch group for vote", zap.String("group_id", input.GroupID.String()), zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to fetch group: %w", err)
	}
	if group == nil {
		return uuid.Nil, domain.ErrGroupNotFound
	}

	voted, err := s.voteRepo.ExistsFor(ctx, input.DeviceID, input.GroupID)
	if err != nil {
		s.log.Error("failed to check vote existence", zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to check existing vote: %w", err)
	}
	if voted {
		return uuid.Nil, domain.ErrAlreadyVoted
	}

	vote := &domain.Vote{
		ID:        uuid.New(),
		GroupID:   group.ID,
		GroupName: group.Name,
		Score:     input.Score,
		DeviceID:  input.DeviceID,
		CreatedAt: time.Now(),
	}

	if err := s.voteRepo.Insert(ctx, vote); err != nil {
		if errors.Is(err, domain.ErrAlreadyVoted) {
			return uuid.Nil, domain.ErrAlreadyVoted
		}
		s.log.Error("failed to save vote", zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to save vote: %w", err)
	}

	s.log.Info("vote submitted",
		zap.String("group_id", group.ID.String()),
		zap.Int("score", input.Score))
	return vote.ID, nil
}

func (s *voteService) HasVoted(ctx context.Context, deviceID string, groupID uuid.UUID) (bool, error) {
	if deviceID == "" || groupID == uuid.Nil {
		return false, nil
	}

	voted, err := s.voteRepo.ExistsFor(ctx, deviceID, groupID)
	if err != nil {
		s.log.Error("failed to check vote status", zap.Error(err))
		return false, fmt.Errorf("failed to check vote status: %w", err)
	}
	return voted, nil
}

func (s *voteService) GetVotesByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Vote, error) {
	if groupID == uuid.Nil {
		return []domain.Vote{}, nil
	}

	votes, err := s.voteRepo.ListByGroup(ctx, groupID)
	if err != nil {
		s.log.Error("failed to fetch votes by group", zap.String("group_id", groupID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch votes for group: %w", err)
	}
	return votes, nil
}

// GetVoteHistory returns one device's votes, newest first.
func (s *voteService) GetVoteHistory(ctx context.Context, deviceID string) ([]domain.Vote, error) {
	if deviceID == "" {
		return []domain.Vote{}, nil
	}

	votes, err := s.voteRepo.ListByDevice(ctx, deviceID)
	if err != nil {
		s.log.Error("failed to fetch vote history", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch vote history: %w", err)
	}
	return votes, nil
}

func (s *voteService) GetAllVotes(ctx context.Context) ([]domain.Vote, error) {
	votes, err := s.voteRepo.ListAll(ctx)
	if err != nil {
		s.log.Error("failed to fetch all votes", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch votes: %w", err)
	}
	return votes, nil
}

func (s *voteService) GetVotesByDateRange(ctx context.Context, start, end time.Time) ([]domain.Vote, error) {
	votes, err := s.voteRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		s.log.Error("failed to fetch votes by date range", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch votes by date range: %w", err)
	}
	return votes, nil
}

func (s *voteService) DeleteVote(ctx context.Context, id uuid.UUID) error {
	if err := s.voteRepo.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete vote", zap.String("vote_id", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return nil
}

func (s *voteService) DeleteAllVotes(ctx context.Context) error {
	if err := s.voteRepo.DeleteAll(ctx); err != nil {
		s.log.Error("failed to delete all votes", zap.Error(err))
		return fmt.Errorf("failed to delete all votes: %w", err)
	}
	s.log.Info("all votes deleted")
	return nil
}
