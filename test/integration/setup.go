package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	handler "github.com/form-live/api/internal/adapters/handler/http"
	repo "github.com/form-live/api/internal/adapters/repository/postgres"
	"github.com/form-live/api/internal/core/ports"
	"github.com/form-live/api/internal/core/services"
)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	BatchSvc    ports.BatchProcessor
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	zlog := zap.NewNop()

	groupRepo := repo.NewGroupRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	resultRepo := repo.NewResultRepository(db)
	settingsRepo := repo.NewSettingsRepository(db)

	settingsSvc := services.NewSettingsService(settingsRepo, zlog)
	resultSvc := services.NewResultService(resultRepo, zlog)
	groupSvc := services.NewGroupService(groupRepo, voteRepo, zlog)
	voteSvc := services.NewVoteService(voteRepo, groupRepo, settingsSvc, zlog)
	adminSvc := services.NewAdminService(voteSvc, groupSvc, settingsSvc, zlog)

	aggregationSvc := services.NewAggregationService(groupRepo, voteRepo, resultSvc, zlog)
	batchSvc := services.NewBatchService(aggregationSvc, settingsSvc, resultSvc, zlog)
	schedulerSvc := services.NewSchedulerService(batchSvc, zlog)

	voteHandler := handler.NewVoteHandler(voteSvc)
	groupHandler := handler.NewGroupHandler(groupSvc)
	resultHandler := handler.NewResultHandler(resultSvc, settingsSvc)
	adminHandler := handler.NewAdminHandler(adminSvc, groupSvc, batchSvc, schedulerSvc)

	router := handler.NewHandler(voteHandler, groupHandler, resultHandler, adminHandler)
	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		BatchSvc:    batchSvc,
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}
