package ports

import (
	"context"
	"time"
)

// Aggregator runs one full aggregate-rank-cache cycle and reports how many
// groups were processed.
type Aggregator interface {
	BatchAggregate(ctx context.Context) (int, error)
}

// BatchRunner is the single-flight entry point driven by the scheduler and
// by the manual admin trigger.
type BatchRunner interface {
	ProcessBatchAggregation(ctx context.Context) BatchProcessResult
}

// BatchProcessor is the full admin-facing surface of the batch runner.
type BatchProcessor interface {
	BatchRunner
	IsProcessingEnabled(ctx context.Context) bool
	GetProcessingStatus(ctx context.Context) ProcessingStatus
	History() []BatchHistoryEntry
}

// Scheduler controls the interval timer that drives the batch runner.
type Scheduler interface {
	Start(intervalSeconds int) SchedulerResult
	Stop() SchedulerResult
	Restart(intervalSeconds int) SchedulerResult
	IsRunning() bool
	Status() SchedulerStatus
}

type BatchProcessResult struct {
	Success         bool          `json:"success"`
	Skipped         bool          `json:"skipped,omitempty"`
	ProcessedGroups int           `json:"processed_groups,omitempty"`
	ProcessingTime  time.Duration `json:"processing_time"`
	Error           string        `json:"error,omitempty"`
}

type BatchHistoryEntry struct {
	Timestamp       time.Time     `json:"timestamp"`
	Success         bool          `json:"success"`
	ProcessedGroups int           `json:"processed_groups,omitempty"`
	ProcessingTime  time.Duration `json:"processing_time"`
	Error           string        `json:"error,omitempty"`
}

type ProcessingStatus struct {
	IsProcessing  bool       `json:"is_processing"`
	LastProcessed *time.Time `json:"last_processed,omitempty"`
}

type SchedulerResult struct {
	Success          bool   `json:"success"`
	Interval         int    `json:"interval,omitempty"`
	PreviousInterval int    `json:"previous_interval,omitempty"`
	NewInterval      int    `json:"new_interval,omitempty"`
	Error            string `json:"error,omitempty"`
}

type ExecutionEntry struct {
	Timestamp      time.Time     `json:"timestamp"`
	Success        bool          `json:"success"`
	ProcessingTime time.Duration `json:"processing_time"`
	Error          string        `json:"error,omitempty"`
}

type SchedulerStatus struct {
	IsRunning        bool             `json:"is_running"`
	Interval         int              `json:"interval,omitempty"`
	NextExecution    *time.Time       `json:"next_execution,omitempty"`
	ExecutionHistory []ExecutionEntry `json:"execution_history"`
}
