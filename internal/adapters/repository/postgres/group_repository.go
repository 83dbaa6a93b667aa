package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/form-live/api/internal/core/domain"
	"github.com/form-live/api/internal/core/ports"
	"github.com/google/uuid"
)

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) ports.GroupRepository {
	return &groupRepository{
		db: db,
	}
}

func (r *groupRepository) List(ctx context.Context) ([]domain.Group, error) {
	query := `
		SELECT id, name, display_order, created_at
		FROM groups
		ORDER BY display_order, created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch groups: %w", err)
	}
	defer rows.Close()

	groups := []domain.Group{}
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.DisplayOrder, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}

	return groups, nil
}

func (r *groupRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	query := `
		SELECT id, name, display_order, created_at
		FROM groups
		WHERE id = $1
	`
	var g domain.Group
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Name, &g.DisplayOrder, &g.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch group: %w", err)
	}
	return &g, nil
}

func (r *groupRepository) Create(ctx context.Context, group *domain.Group) error {
	query := `
		INSERT INTO groups (id, name, display_order, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.db.ExecContext(ctx, query, group.ID, group.Name, group.DisplayOrder, group.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

func (r *groupRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM groups`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count groups: %w", err)
	}
	return count, nil
}

func (r *groupRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	query := `UPDATE groups SET name = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, name)
	if err != nil {
		return fmt.Errorf("failed to update group name: %w", err)
	}
	return nil
}

func (r *groupRepository) UpdateOrder(ctx context.Context, id uuid.UUID, order int) error {
	query := `UPDATE groups SET display_order = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, order)
	if err != nil {
		return fmt.Errorf("failed to update group order: %w", err)
	}
	return nil
}

func (r *groupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}
