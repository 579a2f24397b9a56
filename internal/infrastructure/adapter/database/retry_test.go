package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/wallet-ledger/internal/infrastructure/adapter/time"
)

func newTestRetrier(maxRetries int) (*Retrier, *timeprovider.ManualTimeProvider) {
	clock := timeprovider.NewManualTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	cfg := DefaultRetryConfig()
	cfg.MaxRetries = maxRetries
	return NewRetrier(cfg, NewErrorMapper(), clock, logger.NewNoopLogger()), clock
}

func TestRetrierRetriesTransientErrors(t *testing.T) {
	retrier, clock := newTestRetrier(3)
	start := clock.Now()

	calls := 0
	err := retrier.Do(context.Background(), "upsert", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: sqlStateSerializationFailure, Message: "could not serialize access"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Greater(t, clock.Since(start).Std(), time.Duration(0), "backoff should advance the clock")
}

func TestRetrierStopsOnPermanentError(t *testing.T) {
	retrier, _ := newTestRetrier(5)
	permanent := errors.New("syntax error at or near")

	calls := 0
	err := retrier.Do(context.Background(), "upsert", func(ctx context.Context) error {
		calls++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestRetrierGivesUpAfterMaxRetries(t *testing.T) {
	retrier, _ := newTestRetrier(2)
	deadlock := &pgconn.PgError{Code: sqlStateDeadlockDetected}

	calls := 0
	err := retrier.Do(context.Background(), "upsert", func(ctx context.Context) error {
		calls++
		return deadlock
	})

	assert.Equal(t, 2, calls)
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
}

func TestRetrierStopsWhenContextIsDone(t *testing.T) {
	retrier, _ := newTestRetrier(5)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := retrier.Do(ctx, "read", func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("connection reset by peer")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	cfg := RetryConfig{RetryInterval: 10 * time.Millisecond, MaxInterval: 50 * time.Millisecond}

	assert.Equal(t, 10*time.Millisecond, calculateBackoffWithJitter(0, cfg))
	assert.Equal(t, 20*time.Millisecond, calculateBackoffWithJitter(1, cfg))
	assert.Equal(t, 50*time.Millisecond, calculateBackoffWithJitter(5, cfg))

	cfg.JitterFactor = 0.5
	for i := 0; i < 20; i++ {
		b := calculateBackoffWithJitter(0, cfg)
		assert.GreaterOrEqual(t, b, 10*time.Millisecond)
		assert.LessOrEqual(t, b, 15*time.Millisecond)
	}
}
