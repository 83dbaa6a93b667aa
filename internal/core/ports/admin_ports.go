package ports

import (
	"context"
	"time"

	"github.com/form-live/api/internal/core/domain"
	"github.com/google/uuid"
)

type AdminService interface {
	GetAllVotes(ctx context.Context) ([]domain.Vote, error)
	GetVotesByDateRange(ctx context.Context, start, end time.Time) ([]domain.Vote, error)
	GetVotesByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Vote, error)
	DeleteVote(ctx context.Context, id uuid.UUID) error
	ResetAllVotes(ctx context.Context) error
	ExportVotesToCSV(ctx context.Context) (string, error)

	CreateGroup(ctx context.Context, name string) (uuid.UUID, error)
	UpdateGroup(ctx context.Context, id uuid.UUID, name string) error
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	BulkCreateGroups(ctx context.Context, names []string) ([]uuid.UUID, error)

	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, patch SettingsPatch) error
}
