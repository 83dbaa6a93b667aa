package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/form-live/api/internal/core/domain"
	"github.com/form-live/api/internal/core/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AggregationResult is one group's statistics before ranking.
type AggregationResult struct {
	GroupID      uuid.UUID
	GroupName    string
	TotalScore   int
	VoteCount    int
	AverageScore float64
}

type AggregationService struct {
	groupRepo ports.GroupRepository
	voteRepo  ports.VoteRepository
	results   ports.ResultService
	log       *zap.Logger
}

func NewAggregationService(groupRepo ports.GroupRepository, voteRepo ports.VoteRepository, results ports.ResultService, log *zap.Logger) *AggregationService {
	return &AggregationService{
		groupRepo: groupRepo,
		voteRepo:  voteRepo,
		results:   results,
		log:       log,
	}
}

// AggregateGroupVotes reduces one group's votes to its statistics. A group
// with no votes yields all-zero statistics, never NaN.
func AggregateGroupVotes(groupID uuid.UUID, groupName string, votes []domain.Vote) AggregationResult {
	total := 0
	for _, v := range votes {
		total += v.Score
	}

	return AggregationResult{
		GroupID:      groupID,
		GroupName:    groupName,
		TotalScore:   total,
		VoteCount:    len(votes),
		AverageScore: CalculateAverageScore(votes),
	}
}

// CalculateAverageScore returns the mean score rounded to two decimal
// places: round(total/count*100)/100, half away from zero. Zero votes
// yield 0.
func CalculateAverageScore(votes []domain.Vote) float64 {
	if len(votes) == 0 {
		return 0
	}

	total := 0
	for _, v := range votes {
		total += v.Score
	}

	avg := float64(total) / float64(len(votes))
	return math.Round(avg*100) / 100
}

// AggregateAllVotes aggregates every group. Groups with zero votes are
// included with zero statistics. Any per-group fetch error aborts the whole
// run; partial results are never returned.
func (s *AggregationService) AggregateAllVotes(ctx context.Context) ([]AggregationResult, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group list: %w", err)
	}

	if len(groups) == 0 {
		return []AggregationResult{}, nil
	}

	results := make([]AggregationResult, 0, len(groups))
	for _, group := range groups {
		votes, err := s.voteRepo.ListByGroup(ctx, group.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate votes for group %q: %w", group.Name, err)
		}
		results = append(results, AggregateGroupVotes(group.ID, group.Name, votes))
	}

	return results, nil
}

// BatchAggregate runs the full pipeline: aggregate all groups, rank, and
// cache. Returns the number of groups processed.
func (s *AggregationService) BatchAggregate(ctx context.Context) (int, error) {
	aggregated, err := s.AggregateAllVotes(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	results := make([]domain.Result, 0, len(aggregated))
	for _, ar := range aggregated {
		results = append(results, domain.Result{
			GroupID:      ar.GroupID,
			GroupName:    ar.GroupName,
			TotalScore:   ar.TotalScore,
			VoteCount:    ar.VoteCount,
			AverageScore: ar.AverageScore,
			UpdatedAt:    now,
		})
	}

	ranked := s.results.CalculateRanking(results)

	if err := s.results.CacheResults(ctx, ranked); err != nil {
		return 0, fmt.Errorf("failed to cache aggregation results: %w", err)
	}

	s.log.Info("batch aggregation completed", zap.Int("groups", len(ranked)))
	return len(ranked), nil
}
