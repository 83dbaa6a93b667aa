package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/form-live/api/internal/core/ports"
	"go.uber.org/zap"
)

const maxBatchHistory = 10

// BatchService runs the aggregate-rank-cache pipeline at most once at a
// time within the process. The guard is an atomic try-acquire, not a
// distributed lock: two instances of the application can still race on the
// shared result cache.
type BatchService struct {
	aggregator ports.Aggregator
	settings   ports.SettingsService
	results    ports.ResultService
	log        *zap.Logger

	running atomic.Bool

	mu      sync.Mutex
	history []ports.BatchHistoryEntry
}

func NewBatchService(aggregator ports.Aggregator, settings ports.SettingsService, results ports.ResultService, log *zap.Logger) *BatchService {
	return &BatchService{
		aggregator: aggregator,
		settings:   settings,
		results:    results,
		log:        log,
	}
}

// ProcessBatchAggregation runs one pipeline cycle. If a run is already in
// flight the call returns immediately with Skipped=true and records
// nothing. The guard is released even when the pipeline fails.
func (s *BatchService) ProcessBatchAggregation(ctx context.Context) ports.BatchProcessResult {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Info("batch aggregation already running, skipping")
		return ports.BatchProcessResult{
			Success: false,
			Skipped: true,
			Error:   "batch aggregation is already running",
		}
	}
	defer s.running.Store(false)

	start := time.Now()
	s.log.Info("starting batch aggregation")

	processed, err := s.aggregator.BatchAggregate(ctx)
	elapsed := time.Since(start)

	if err != nil {
		s.addToHistory(ports.BatchHistoryEntry{
			Timestamp:      time.Now(),
			Success:        false,
			ProcessingTime: elapsed,
			Error:          err.Error(),
		})
		s.log.Error("batch aggregation failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		return ports.BatchProcessResult{
			Success:        false,
			ProcessingTime: elapsed,
			Error:          err.Error(),
		}
	}

	s.addToHistory(ports.BatchHistoryEntry{
		Timestamp:       time.Now(),
		Success:         true,
		ProcessedGroups: processed,
		ProcessingTime:  elapsed,
	})
	s.log.Info("batch aggregation succeeded",
		zap.Int("groups", processed),
		zap.Duration("elapsed", elapsed))

	return ports.BatchProcessResult{
		Success:         true,
		ProcessedGroups: processed,
		ProcessingTime:  elapsed,
	}
}

// IsProcessingEnabled reads Settings.AggregationEnabled. Unreadable
// settings fail closed.
func (s *BatchService) IsProcessingEnabled(ctx context.Context) bool {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.log.Error("failed to read settings, disabling batch processing", zap.Error(err))
		return false
	}
	return settings.AggregationEnabled
}

// GetProcessingStatus reports the guard state and when the result cache was
// last refreshed (nil when the cache is empty or unreadable).
func (s *BatchService) GetProcessingStatus(ctx context.Context) ports.ProcessingStatus {
	status := ports.ProcessingStatus{IsProcessing: s.running.Load()}

	lastProcessed, err := s.results.GetLatestUpdateTime(ctx)
	if err != nil {
		s.log.Error("failed to read last processed time", zap.Error(err))
		return status
	}

	status.LastProcessed = lastProcessed
	return status
}

// History returns a copy of the run history, most recent first.
func (s *BatchService) History() []ports.BatchHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ports.BatchHistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

func (s *BatchService) addToHistory(entry ports.BatchHistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append([]ports.BatchHistoryEntry{entry}, s.history...)
	if len(s.history) > maxBatchHistory {
		s.history = s.history[:maxBatchHistory]
	}
}
