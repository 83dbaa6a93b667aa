package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/form-live/api/internal/core/domain"
	"github.com/form-live/api/internal/core/ports"
	"github.com/form-live/api/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type groupService struct {
	groupRepo ports.GroupRepository
	voteRepo  ports.VoteRepository
	log       *zap.Logger
}

func NewGroupService(groupRepo ports.GroupRepository, voteRepo ports.VoteRepository, log *zap.Logger) ports.GroupService {
	return &groupService{
		groupRepo: groupRepo,
		voteRepo:  voteRepo,
		log:       log,
	}
}

func (s *groupService) GetAllGroups(ctx context.Context) ([]domain.Group, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		s.log.Error("failed to list groups", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch group list: %w", err)
	}
	return groups, nil
}

func (s *groupService) GetGroupByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	group, err := s.groupRepo.Get(ctx, id)
	if err != nil {
		s.log.Error("failed to get group", zap.String("group_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch group: %w", err)
	}
	return group, nil
}

// AddGroup creates a group with a display order of current-count+1. The
// name is trimmed before validation and storage.
func (s *groupService) AddGroup(ctx context.Context, name string) (uuid.UUID, error) {
	if !validation.IsValidGroupName(name) {
		return uuid.Nil, domain.ErrInvalidGroupName
	}

	count, err := s.groupRepo.Count(ctx)
	if err != nil {
		s.log.Error("failed to count groups", zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to add group: %w", err)
	}

	group := &domain.Group{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		DisplayOrder: count + 1,
		CreatedAt:    time.Now(),
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		s.log.Error("failed to create group", zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to add group: %w", err)
	}

	s.log.Info("group created", zap.String("group_id", group.ID.String()), zap.String("name", group.Name))
	return group.ID, nil
}

func (s *groupService) UpdateGroup(ctx context.Context, id uuid.UUID, name string) error {
	if !validation.IsValidGroupName(name) {
		return domain.ErrInvalidGroupName
	}

	group, err := s.groupRepo.Get(ctx, id)
	if err != nil {
		s.log.Error("failed to fetch group for update", zap.Error(err))
		return fmt.Errorf("failed to update group: %w", err)
	}
	if group == nil {
		return domain.ErrGroupNotFound
	}

	if err := s.groupRepo.UpdateName(ctx, id, strings.TrimSpace(name)); err != nil {
		s.log.Error("failed to update group", zap.String("group_id", id.String()), zap.Error(err))
		return fmt.Errorf("failed to update group: %w", err)
	}
	return nil
}

// DeleteGroup removes a group. Groups referenced by at least one vote are
// protected; the caller gets domain.ErrGroupHasVotes.
func (s *groupService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	group, err := s.groupRepo.Get(ctx, id)
	if err != nil {
		s.log.Error("failed to fetch group for delete", zap.Error(err))
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if group == nil {
		return domain.ErrGroupNotFound
	}

	hasVotes, err := s.voteRepo.ExistsForGroup(ctx, id)
	if err != nil {
		s.log.Error("failed to check votes before group delete", zap.Error(err))
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if hasVotes {
		return domain.ErrGroupHasVotes
	}

	if err := s.groupRepo.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete group", zap.String("group_id", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete group: %w", err)
	}

	s.log.Info("group deleted", zap.String("group_id", id.String()))
	return nil
}

func (s *groupService) UpdateGroupOrders(ctx context.Context, orders map[uuid.UUID]int) error {
	for id, order := range orders {
		if err := s.groupRepo.UpdateOrder(ctx, id, order); err != nil {
			s.log.Error("failed to update group order",
				zap.String("group_id", id.String()),
				zap.Int("order", order),
				zap.Error(err))
			return fmt.Errorf("failed to update group orders: %w", err)
		}
	}
	return nil
}

func (s *groupService) BulkCreateGroups(ctx context.Context, names []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		id, err := s.AddGroup(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to bulk create groups: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
