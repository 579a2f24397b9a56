package database

import (
	"context"
	"sync/atomic"
	"time"

	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
)

// OperationStats is a point-in-time view of the wallet store counters
type OperationStats struct {
	Total     int64
	Failed    int64
	Slow      int64
	Cancelled int64
}

// MetricsCollector counts wallet store operations and reports slow ones.
// One collector is shared by every store built on the same Manager.
type MetricsCollector struct {
	logger        coreport.Logger
	timeProvider  coreport.TimeProvider
	slowThreshold time.Duration

	total     atomic.Int64
	failed    atomic.Int64
	slow      atomic.Int64
	cancelled atomic.Int64
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(logger coreport.Logger, timeProvider coreport.TimeProvider, slowThreshold time.Duration) *MetricsCollector {
	if slowThreshold <= 0 {
		slowThreshold = 100 * time.Millisecond
	}
	return &MetricsCollector{
		logger:        logger,
		timeProvider:  timeProvider,
		slowThreshold: slowThreshold,
	}
}

// MeasureQuery runs fn and records its outcome against operation
func (c *MetricsCollector) MeasureQuery(ctx context.Context, operation, walletID string, fn func() error) error {
	start := c.timeProvider.Now()

	err := fn()
	duration := c.timeProvider.Since(start).Std()

	c.total.Add(1)
	if err != nil {
		c.failed.Add(1)
		if ctx.Err() != nil {
			c.cancelled.Add(1)
		}
	}

	if duration > c.slowThreshold {
		c.slow.Add(1)

		fields := map[string]any{
			"operation":   operation,
			"wallet_id":   walletID,
			"duration_ms": duration.Milliseconds(),
			"failed":      err != nil,
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		c.logger.Warn("Slow database operation detected", fields)
	}

	return err
}

// Snapshot returns the counters collected so far
func (c *MetricsCollector) Snapshot() OperationStats {
	return OperationStats{
		Total:     c.total.Load(),
		Failed:    c.failed.Load(),
		Slow:      c.slow.Load(),
		Cancelled: c.cancelled.Load(),
	}
}
