package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/form-live/api/internal/core/domain"
	"github.com/form-live/api/internal/core/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type resultService struct {
	repo ports.ResultRepository
	log  *zap.Logger
}

func NewResultService(repo ports.ResultRepository, log *zap.Logger) ports.ResultService {
	return &resultService{
		repo: repo,
		log:  log,
	}
}

func (s *resultService) ListResults(ctx context.Context) ([]domain.Result, error) {
	results, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list results", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}
	return results, nil
}

func (s *resultService) GetResultByGroup(ctx context.Context, groupID uuid.UUID) (*domain.Result, error) {
	result, err := s.repo.Get(ctx, groupID)
	if err != nil {
		s.log.Error("failed to get result", zap.String("group_id", groupID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch result: %w", err)
	}
	return result, nil
}

// CalculateRanking sorts results by average score descending and assigns
// competition ranks: tied entries share a rank and the next distinct score
// takes its 1-based position ("1,1,3", never "1,1,2"). Ties are detected by
// exact equality of the already-rounded averages. The input slice is not
// mutated.
func (s *resultService) CalculateRanking(results []domain.Result) []domain.Result {
	if len(results) == 0 {
		return []domain.Result{}
	}

	ranked := make([]domain.Result, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AverageScore > ranked[j].AverageScore
	})

	currentRank := 1
	for i := range ranked {
		if i > 0 && ranked[i].AverageScore < ranked[i-1].AverageScore {
			currentRank = i + 1
		}
		ranked[i].Rank = currentRank
	}

	return ranked
}

// CacheResults merge-upserts every ranked result, stamping a fresh update
// time. Empty input performs zero writes. Writes are independent per group;
// the first failure aborts with an error.
func (s *resultService) CacheResults(ctx context.Context, results []domain.Result) error {
	if len(results) == 0 {
		return nil
	}

	now := time.Now()
	for i := range results {
		result := results[i]
		result.UpdatedAt = now
		if err := s.repo.Upsert(ctx, &result); err != nil {
			s.log.Error("failed to cache result",
				zap.String("group_id", result.GroupID.String()),
				zap.Error(err))
			return fmt.Errorf("failed to cache result for group %q: %w", result.GroupName, err)
		}
	}

	return nil
}

// GetLatestUpdateTime returns the newest updatedAt over all cached results,
// or nil when the cache is empty.
func (s *resultService) GetLatestUpdateTime(ctx context.Context) (*time.Time, error) {
	latest, err := s.repo.LatestUpdateTime(ctx)
	if err != nil {
		s.log.Error("failed to fetch latest update time", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch latest update time: %w", err)
	}
	return latest, nil
}
