package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/form-live/api/internal/core/domain"
	"github.com/form-live/api/internal/core/ports"
	"github.com/google/uuid"
)

type resultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) ports.ResultRepository {
	return &resultRepository{
		db: db,
	}
}

func (r *resultRepository) List(ctx context.Context) ([]domain.Result, error) {
	query := `
		SELECT group_id, group_name, total_score, vote_count, average_score, rank, updated_at
		FROM results
		ORDER BY rank, group_name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}
	defer rows.Close()

	results := []domain.Result{}
	for rows.Next() {
		var res domain.Result
		if err := rows.Scan(&res.GroupID, &res.GroupName, &res.TotalScore, &res.VoteCount, &res.AverageScore, &res.Rank, &res.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}

	return results, nil
}

func (r *resultRepository) Get(ctx context.Context, groupID uuid.UUID) (*domain.Result, error) {
	query := `
		SELECT group_id, group_name, total_score, vote_count, average_score, rank, updated_at
		FROM results
		WHERE group_id = $1
	`
	var res domain.Result
	err := r.db.QueryRowContext(ctx, query, groupID).Scan(&res.GroupID, &res.GroupName, &res.TotalScore, &res.VoteCount, &res.AverageScore, &res.Rank, &res.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch result: %w", err)
	}
	return &res, nil
}

func (r *resultRepository) Upsert(ctx context.Context, result *domain.Result) error {
	query := `
		INSERT INTO results (group_id, group_name, total_score, vote_count, average_score, rank, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (group_id) DO UPDATE
		SET group_name = EXCLUDED.group_name,
		    total_score = EXCLUDED.total_score,
		    vote_count = EXCLUDED.vote_count,
		    average_score = EXCLUDED.average_score,
		    rank = EXCLUDED.rank,
		    updated_at = EXCLUDED.updated_at;
	`
	_, err := r.db.ExecContext(ctx, query,
		result.GroupID, result.GroupName, result.TotalScore,
		result.VoteCount, result.AverageScore, result.Rank, result.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert result for group %s: %w", result.GroupID, err)
	}
	return nil
}

func (r *resultRepository) LatestUpdateTime(ctx context.Context) (*time.Time, error) {
	var latest sql.NullTime
	err := r.db.QueryRowContext(ctx, `SELECT MAX(updated_at) FROM results`).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest update time: %w", err)
	}
	if !latest.Valid {
		return nil, nil
	}
	return &latest.Time, nil
}
