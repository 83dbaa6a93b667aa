package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/form-live/api/internal/core/domain"
	"github.com/form-live/api/internal/core/ports"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) ExistsFor(ctx context.Context, deviceID string, groupID uuid.UUID) (bool, error) {
	query := `SELECT 1 FROM votes WHERE device_id = $1 AND group_id = $2 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, deviceID, groupID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return true, nil
}

func (r *voteRepository) ExistsForGroup(ctx context.Context, groupID uuid.UUID) (bool, error) {
	query := `SELECT 1 FROM votes WHERE group_id = $1 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, groupID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check votes for group: %w", err)
	}
	return true, nil
}

// Insert stores one vote, re-checking for an existing (device, group) pair
// inside the same transaction. The UNIQUE (device_id, group_id) constraint
// turns the remaining concurrent race into domain.ErrAlreadyVoted.
func (r *voteRepository) Insert(ctx context.Context, vote *domain.Vote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin vote transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM votes WHERE device_id = $1 AND group_id = $2 LIMIT 1`,
		vote.DeviceID, vote.GroupID).Scan(&exists)
	if err == nil {
		return domain.ErrAlreadyVoted
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check existing vote: %w", err)
	}

	// group_name is a snapshot of the name at vote time; renaming the group
	// later must not rewrite vote history.
	query := `
		INSERT INTO votes (id, group_id, group_name, score, device_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.ExecContext(ctx, query, vote.ID, vote.GroupID, vote.GroupName, vote.Score, vote.DeviceID, vote.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrAlreadyVoted
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

func (r *voteRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]domain.Vote, error) {
	query := `
		SELECT id, group_id, group_name, score, device_id, created_at
		FROM votes
		WHERE group_id = $1
		ORDER BY created_at DESC
	`
	return r.queryVotes(ctx, query, groupID)
}

func (r *voteRepository) ListByDevice(ctx context.Context, deviceID string) ([]domain.Vote, error) {
	query := `
		SELECT id, group_id, group_name, score, device_id, created_at
		FROM votes
		WHERE device_id = $1
		ORDER BY created_at DESC
	`
	return r.queryVotes(ctx, query, deviceID)
}

func (r *voteRepository) ListAll(ctx context.Context) ([]domain.Vote, error) {
	query := `
		SELECT id, group_id, group_name, score, device_id, created_at
		FROM votes
		ORDER BY created_at DESC
	`
	return r.queryVotes(ctx, query)
}

func (r *voteRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Vote, error) {
	query := `
		SELECT id, group_id, group_name, score, device_id, created_at
		FROM votes
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at DESC
	`
	return r.queryVotes(ctx, query, start, end)
}

func (r *voteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return nil
}

func (r *voteRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM votes`)
	if err != nil {
		return fmt.Errorf("failed to delete votes: %w", err)
	}
	return nil
}

func (r *voteRepository) queryVotes(ctx context.Context, query string, args ...any) ([]domain.Vote, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch votes: %w", err)
	}
	defer rows.Close()

	votes := []domain.Vote{}
	for rows.Next() {
		var v domain.Vote
		if err := rows.Scan(&v.ID, &v.GroupID, &v.GroupName, &v.Score, &v.DeviceID, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}

	return votes, nil
}
