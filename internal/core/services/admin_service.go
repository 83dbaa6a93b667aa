package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/form-live/api/internal/core/domain"
	"github.com/form-live/api/internal/core/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const csvHeader = "groupId,groupName,score,deviceId,createdAt"

type adminService struct {
	votes    ports.VoteService
	groups   ports.GroupService
	settings ports.SettingsService
	log      *zap.Logger
}

func NewAdminService(votes ports.VoteService, groups ports.GroupService, settings ports.SettingsService, log *zap.Logger) ports.AdminService {
	return &adminService{
		votes:    votes,
		groups:   groups,
		settings: settings,
		log:      log,
	}
}

func (s *adminService) GetAllVotes(ctx context.Context) ([]domain.Vote, error) {
	return s.votes.GetAllVotes(ctx)
}

func (s *adminService) GetVotesByDateRange(ctx context.Context, start, end time.Time) ([]domain.Vote, error) {
	return s.votes.GetVotesByDateRange(ctx, start, end)
}

func (s *adminService) GetVotesByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Vote, error) {
	return s.votes.GetVotesByGroup(ctx, groupID)
}

func (s *adminService) DeleteVote(ctx context.Context, id uuid.UUID) error {
	return s.votes.DeleteVote(ctx, id)
}

func (s *adminService) ResetAllVotes(ctx context.Context) error {
	if err := s.votes.DeleteAllVotes(ctx); err != nil {
		return fmt.Errorf("failed to reset votes: %w", err)
	}
	s.log.Info("vote data reset")
	return nil
}

// ExportVotesToCSV renders every vote as a CSV document with one fixed
// header row. Timestamps are RFC 3339 in UTC. An empty vote set yields the
// header line only. Group names are escaped before export, so quoting is
// only needed for embedded commas.
func (s *adminService) ExportVotesToCSV(ctx context.Context) (string, error) {
	votes, err := s.votes.GetAllVotes(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to export votes: %w", err)
	}

	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteString("\n")

	for _, v := range votes {
		b.WriteString(fmt.Sprintf("%s,%s,%d,%s,%s\n",
			v.GroupID.String(),
			csvField(v.GroupName),
			v.Score,
			v.DeviceID,
			v.CreatedAt.UTC().Format(time.RFC3339)))
	}

	return b.String(), nil
}

func csvField(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func (s *adminService) CreateGroup(ctx context.Context, name string) (uuid.UUID, error) {
	return s.groups.AddGroup(ctx, name)
}

func (s *adminService) UpdateGroup(ctx context.Context, id uuid.UUID, name string) error {
	return s.groups.UpdateGroup(ctx, id, name)
}

func (s *adminService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	return s.groups.DeleteGroup(ctx, id)
}

func (s *adminService) BulkCreateGroups(ctx context.Context, names []string) ([]uuid.UUID, error) {
	return s.groups.BulkCreateGroups(ctx, names)
}

func (s *adminService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	return s.settings.Get(ctx)
}

func (s *adminService) UpdateSettings(ctx context.Context, patch ports.SettingsPatch) error {
	return s.settings.Update(ctx, patch)
}
