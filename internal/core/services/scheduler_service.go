package services

import (
	"context"
	"sync"
	"time"

	"github.com/form-live/api/internal/core/ports"
	"go.uber.org/zap"
)

const maxExecutionHistory = 50

// SchedulerService drives the batch runner on a wall-clock interval: once
// immediately on start, then on every tick. One instance owns one timeline;
// construct it at the composition root and share it.
type SchedulerService struct {
	batch ports.BatchRunner
	log   *zap.Logger

	mu            sync.Mutex
	stop          chan struct{}
	interval      int
	nextExecution *time.Time
	history       []ports.ExecutionEntry
}

func NewSchedulerService(batch ports.BatchRunner, log *zap.Logger) *SchedulerService {
	return &SchedulerService{
		batch: batch,
		log:   log,
	}
}

// Start arms the scheduler with the given interval in seconds and triggers
// an immediate first run. Starting while running, or with a non-positive
// interval, fails without side effects.
func (s *SchedulerService) Start(intervalSeconds int) ports.SchedulerResult {
	s.mu.Lock()

	if s.stop != nil {
		s.mu.Unlock()
		return ports.SchedulerResult{
			Success: false,
			Error:   "scheduler is already running",
		}
	}

	if intervalSeconds <= 0 {
		s.mu.Unlock()
		return ports.SchedulerResult{
			Success: false,
			Error:   "interval must be greater than zero",
		}
	}

	stop := make(chan struct{})
	s.stop = stop
	s.interval = intervalSeconds
	next := time.Now().Add(time.Duration(intervalSeconds) * time.Second)
	s.nextExecution = &next
	s.mu.Unlock()

	go s.run(time.Duration(intervalSeconds)*time.Second, stop)

	s.log.Info("scheduler started", zap.Int("interval_seconds", intervalSeconds))
	return ports.SchedulerResult{
		Success:  true,
		Interval: intervalSeconds,
	}
}

// Stop cancels the timer and clears interval state. Idempotent: stopping a
// stopped scheduler succeeds with no effect.
func (s *SchedulerService) Stop() ports.SchedulerResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		close(s.stop)
		s.stop = nil
		s.interval = 0
		s.nextExecution = nil
		s.log.Info("scheduler stopped")
	}

	return ports.SchedulerResult{Success: true}
}

// Restart stops the scheduler (if running) and starts it with the new
// interval, reporting both the previous and the new interval.
func (s *SchedulerService) Restart(intervalSeconds int) ports.SchedulerResult {
	s.mu.Lock()
	previous := s.interval
	s.mu.Unlock()

	s.Stop()

	result := s.Start(intervalSeconds)
	if !result.Success {
		return result
	}

	return ports.SchedulerResult{
		Success:          true,
		PreviousInterval: previous,
		NewInterval:      intervalSeconds,
	}
}

// IsRunning reports whether the timer is armed.
func (s *SchedulerService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

// Status returns a snapshot of the scheduler state with a copy of the
// execution history, most recent first.
func (s *SchedulerService) Status() ports.SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]ports.ExecutionEntry, len(s.history))
	copy(history, s.history)

	status := ports.SchedulerStatus{
		IsRunning:        s.stop != nil,
		Interval:         s.interval,
		ExecutionHistory: history,
	}
	if s.nextExecution != nil {
		next := *s.nextExecution
		status.NextExecution = &next
	}
	return status
}

func (s *SchedulerService) run(interval time.Duration, stop chan struct{}) {
	s.executeTask()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.executeTask()
		}
	}
}

// executeTask runs one batch cycle and records it. A failing run never
// stops the timer; the error only lands in the history.
func (s *SchedulerService) executeTask() {
	start := time.Now()

	result := s.batch.ProcessBatchAggregation(context.Background())
	elapsed := time.Since(start)

	s.addToHistory(ports.ExecutionEntry{
		Timestamp:      time.Now(),
		Success:        result.Success,
		ProcessingTime: elapsed,
		Error:          result.Error,
	})

	if result.Success {
		s.log.Info("scheduled batch run completed", zap.Duration("elapsed", elapsed))
	} else {
		s.log.Warn("scheduled batch run failed",
			zap.Duration("elapsed", elapsed),
			zap.Bool("skipped", result.Skipped),
			zap.String("error", result.Error))
	}

	s.advanceNextExecution()
}

func (s *SchedulerService) advanceNextExecution() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop == nil || s.interval <= 0 {
		return
	}
	next := time.Now().Add(time.Duration(s.interval) * time.Second)
	s.nextExecution = &next
}

func (s *SchedulerService) addToHistory(entry ports.ExecutionEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append([]ports.ExecutionEntry{entry}, s.history...)
	if len(s.history) > maxExecutionHistory {
		s.history = s.history[:maxExecutionHistory]
	}
}
