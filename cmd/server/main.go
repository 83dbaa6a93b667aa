package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/form-live/api/internal/adapters/handler/http"
	"github.com/form-live/api/internal/adapters/repository/postgres"
	"github.com/form-live/api/internal/config"
	"github.com/form-live/api/internal/core/services"
	"github.com/form-live/api/pkg/logger"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

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
	groupService := services.NewGroupService(groupRepo, voteRepo, zlog)
	voteService := services.NewVoteService(voteRepo, groupRepo, settingsService, zlog)
	adminService := services.NewAdminService(voteService, groupService, settingsService, zlog)

	aggregationService := services.NewAggregationService(groupRepo, voteRepo, resultService, zlog)
	batchService := services.NewBatchService(aggregationService, settingsService, resultService, zlog)
	schedulerService := services.NewSchedulerService(batchService, zlog)

	if cfg.SchedulerAutostart {
		if result := schedulerService.Start(cfg.SchedulerInterval); !result.Success {
			zlog.Warn("scheduler autostart failed", zap.String("error", result.Error))
		}
	}

	voteHandler := http.NewVoteHandler(voteService)
	groupHandler := http.NewGroupHandler(groupService)
	resultHandler := http.NewResultHandler(resultService, settingsService)
	adminHandler := http.NewAdminHandler(adminService, groupService, batchService, schedulerService)

	handler := http.NewHandler(voteHandler, groupHandler, resultHandler, adminHandler)
	server := &stdhttp.Server{Addr: "0.0.0.0:" + cfg.Port, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("server listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("gracefully shutting down")

	schedulerService.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("shutdown failed", zap.Error(err))
	}
}
