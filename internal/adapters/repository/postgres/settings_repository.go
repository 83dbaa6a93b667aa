package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/form-live/api/internal/core/domain"
	"github.com/form-live/api/internal/core/ports"
	"github.com/google/uuid"
)

// settingsID pins the settings table to a single row.
const settingsID = 1

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) ports.SettingsRepository {
	return &settingsRepository{
		db: db,
	}
}

// Get reads the singleton settings row, inserting the defaults first when
// the row does not exist yet.
func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	query := `
		SELECT voting_enabled, results_visible, update_interval, aggregation_enabled, current_group, updated_at
		FROM settings
		WHERE id = $1
	`
	var s domain.Settings
	var currentGroup uuid.NullUUID
	err := r.db.QueryRowContext(ctx, query, settingsID).Scan(
		&s.VotingEnabled, &s.ResultsVisible, &s.UpdateInterval,
		&s.AggregationEnabled, &currentGroup, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return r.insertDefaults(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}

	if currentGroup.Valid {
		id := currentGroup.UUID
		s.CurrentGroup = &id
	}
	return &s, nil
}

func (r *settingsRepository) insertDefaults(ctx context.Context) (*domain.Settings, error) {
	defaults := domain.DefaultSettings()
	defaults.UpdatedAt = time.Now()

	query := `
		INSERT INTO settings (id, voting_enabled, results_visible, update_interval, aggregation_enabled, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING;
	`
	_, err := r.db.ExecContext(ctx, query, settingsID,
		defaults.VotingEnabled, defaults.ResultsVisible,
		defaults.UpdateInterval, defaults.AggregationEnabled, defaults.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize settings: %w", err)
	}

	return &defaults, nil
}

// Update applies only the fields set in the patch. The row is created with
// defaults first when absent so a patch never fails on an empty table.
func (r *settingsRepository) Update(ctx context.Context, patch ports.SettingsPatch) error {
	if patch.Empty() {
		return nil
	}
	if _, err := r.Get(ctx); err != nil {
		return err
	}

	set := []string{"updated_at = NOW()"}
	args := []any{settingsID}

	appendField := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.VotingEnabled != nil {
		appendField("voting_enabled", *patch.VotingEnabled)
	}
	if patch.ResultsVisible != nil {
		appendField("results_visible", *patch.ResultsVisible)
	}
	if patch.UpdateInterval != nil {
		appendField("update_interval", *patch.UpdateInterval)
	}
	if patch.AggregationEnabled != nil {
		appendField("aggregation_enabled", *patch.AggregationEnabled)
	}
	if patch.CurrentGroup != nil {
		appendField("current_group", *patch.CurrentGroup)
	}

	query := fmt.Sprintf(`UPDATE settings SET %s WHERE id = $1`, strings.Join(set, ", "))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
