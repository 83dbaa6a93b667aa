package ports

import (
	"context"
	"time"

	"github.com/form-live/api/internal/core/domain"
	"github.com/google/uuid"
)

type VoteRepository interface {
	// ExistsFor reports whether a vote by deviceID for groupID exists.
	ExistsFor(ctx context.Context, deviceID string, groupID uuid.UUID) (bool, error)
	// ExistsForGroup reports whether any vote references groupID.
	ExistsForGroup(ctx context.Context, groupID uuid.UUID) (bool, error)
	// Insert stores a vote. The (deviceID, groupID) uniqueness invariant is
	// enforced here; a conflicting insert returns domain.ErrAlreadyVoted.
	Insert(ctx context.Context, vote *domain.Vote) error
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Vote, error)
	ListByDevice(ctx context.Context, deviceID string) ([]domain.Vote, error)
	ListAll(ctx context.Context) ([]domain.Vote, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Vote, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
}

type SubmitVoteInput struct {
	GroupID  uuid.UUID
	Score    int
	DeviceID string
}

type VoteService interface {
	SubmitVote(ctx context.Context, input SubmitVoteInput) (uuid.UUID, error)
	HasVoted(ctx context.Context, deviceID string, groupID uuid.UUID) (bool, error)
	GetVotesByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Vote, error)
	GetVoteHistory(ctx context.Context, deviceID string) ([]domain.Vote, error)
	GetAllVotes(ctx context.Context) ([]domain.Vote, error)
	GetVotesByDateRange(ctx context.Context, start, end time.Time) ([]domain.Vote, error)
	DeleteVote(ctx context.Context, id uuid.UUID) error
	DeleteAllVotes(ctx context.Context) error
}
