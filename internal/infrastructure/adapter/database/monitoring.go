package database

import (
	"context"
	"sync/atomic"
	"time"

	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
)

// defaultSlowThreshold marks a unit of work as slow
const defaultSlowThreshold = 200 * time.Millisecond

// QueryMetrics holds metrics about a database operation
type QueryMetrics struct {
	Operation    string
	Duration     time.Duration
	RowsAffected int64
	Failed       bool
	ErrorMessage string
}

// MetricsSnapshot is a point-in-time copy of the collector counters
type MetricsSnapshot struct {
	Total  int64 `json:"total"`
	Failed int64 `json:"failed"`
	Slow   int64 `json:"slow"`
}

// MetricsCollector counts database operations and reports slow ones
type MetricsCollector struct {
	logger        coreport.Logger
	timeProvider  coreport.TimeProvider
	slowThreshold time.Duration

	total  atomic.Int64
	failed atomic.Int64
	slow   atomic.Int64
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(logger coreport.Logger, timeProvider coreport.TimeProvider) *MetricsCollector {
	return &MetricsCollector{
		logger:        logger,
		timeProvider:  timeProvider,
		slowThreshold: defaultSlowThreshold,
	}
}

// SetSlowThreshold changes the duration above which operations are logged
func (c *MetricsCollector) SetSlowThreshold(threshold time.Duration) {
	if threshold > 0 {
		c.slowThreshold = threshold
	}
}

// MeasureQuery measures the execution time of a database operation
func (c *MetricsCollector) MeasureQuery(ctx context.Context, operation string, fn func() (int64, error)) (*QueryMetrics, error) {
	start := c.timeProvider.Now()

	rowsAffected, err := fn()

	metrics := &QueryMetrics{
		Operation:    operation,
		Duration:     c.timeProvider.Since(start).Std(),
		RowsAffected: rowsAffected,
		Failed:       err != nil,
	}

	c.total.Add(1)
	if err != nil {
		metrics.ErrorMessage = err.Error()
		c.failed.Add(1)
	}

	if metrics.Duration > c.slowThreshold {
		c.slow.Add(1)
		c.logger.Warn("Slow database operation detected", map[string]any{
			"operation":     operation,
			"duration_ms":   metrics.Duration.Milliseconds(),
			"rows_affected": rowsAffected,
			"failed":        metrics.Failed,
			"error_message": metrics.ErrorMessage,
			"request_id":    coreport.RequestIDFromContext(ctx),
		})
	}

	return metrics, err
}

// Snapshot returns the current counters
func (c *MetricsCollector) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Total:  c.total.Load(),
		Failed: c.failed.Load(),
		Slow:   c.slow.Load(),
	}
}
