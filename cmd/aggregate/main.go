package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/form-live/api/internal/adapters/repository/postgres"
	"github.com/form-live/api/internal/config"
	"github.com/form-live/api/internal/core/services"
	"github.com/form-live/api/pkg/logger"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// One-shot aggregation run, for cron-style setups that do not keep the
// in-process scheduler running.
func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	db, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		zlog.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		zlog.Fatal("failed to reach database", zap.Error(err))
	}

	groupRepo := postgres.NewGroupRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	resultRepo := postgres.NewResultRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)

	settingsService := services.NewSettingsService(settingsRepo, zlog)
	resultService := services.NewResultService(resultRepo, zlog)
	aggregationService := services.NewAggregationService(groupRepo, voteRepo, resultService, zlog)
	batchService := services.NewBatchService(aggregationService, settingsService, resultService, zlog)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if !batchService.IsProcessingEnabled(ctx) {
		zlog.Warn("aggregation is disabled, nothing to do")
		return
	}

	zlog.Info("starting aggregation run")

	result := batchService.ProcessBatchAggregation(ctx)
	if !result.Success {
		zlog.Fatal("aggregation run failed", zap.String("error", result.Error))
	}

	zlog.Info("aggregation run completed",
		zap.Int("groups", result.ProcessedGroups),
		zap.Duration("elapsed", result.ProcessingTime))
}
