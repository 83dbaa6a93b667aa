package ports

import (
	"context"
	"time"

	"github.com/form-live/api/internal/core/domain"
	"github.com/google/uuid"
)

type ResultRepository interface {
	List(ctx context.Context) ([]domain.Result, error)
	Get(ctx context.Context, groupID uuid.UUID) (*domain.Result, error)
	// Upsert merge-writes one result keyed by its group id.
	Upsert(ctx context.Context, result *domain.Result) error
	LatestUpdateTime(ctx context.Context) (*time.Time, error)
}

type ResultService interface {
	ListResults(ctx context.Context) ([]domain.Result, error)
	GetResultByGroup(ctx context.Context, groupID uuid.UUID) (*domain.Result, error)
	CalculateRanking(results []domain.Result) []domain.Result
	CacheResults(ctx context.Context, results []domain.Result) error
	GetLatestUpdateTime(ctx context.Context) (*time.Time, error)
}
