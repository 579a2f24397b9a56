package database

import (
	"context"
	"math/rand"
	"time"

	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
)

// RetryConfig holds configuration for retry operations
type RetryConfig struct {
	MaxRetries    int
	RetryInterval time.Duration
	MaxInterval   time.Duration
	JitterFactor  float64 // Factor to add randomness to retry intervals (0.0-1.0)
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		RetryInterval: 25 * time.Millisecond,
		MaxInterval:   500 * time.Millisecond,
		JitterFactor:  0.2,
	}
}

// Retrier re-runs whole transactions that failed for transient reasons
type Retrier struct {
	config       RetryConfig
	errorMapper  *ErrorMapper
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewRetrier creates a new Retrier
func NewRetrier(config RetryConfig, errorMapper *ErrorMapper, timeProvider coreport.TimeProvider, logger coreport.Logger) *Retrier {
	if config.MaxRetries < 1 {
		config.MaxRetries = 1
	}
	return &Retrier{
		config:       config,
		errorMapper:  errorMapper,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Do runs operation until it succeeds, fails permanently, attempts run out or ctx is done.
// operation must be safe to repeat: each attempt is a fresh transaction.
func (r *Retrier) Do(ctx context.Context, name string, operation func(ctx context.Context) error) error {
	var err error
	var attempt int

	for attempt = 0; attempt < r.config.MaxRetries; attempt++ {
		err = operation(ctx)
		if err == nil {
			return nil
		}

		if !r.errorMapper.IsTransient(err) || ctx.Err() != nil {
			return err
		}
		if attempt == r.config.MaxRetries-1 {
			break
		}

		backoff := calculateBackoffWithJitter(attempt, r.config)
		r.logger.Warn("Transient database error, retrying operation", map[string]any{
			"operation":   name,
			"attempt":     attempt + 1,
			"max_retries": r.config.MaxRetries,
			"error":       err.Error(),
			"retry_after": backoff.String(),
		})

		if sleepErr := r.timeProvider.Sleep(ctx, coreport.Duration(backoff)); sleepErr != nil {
			r.logger.Warn("Retry operation canceled by context", map[string]any{
				"operation": name,
				"attempts":  attempt + 1,
				"error":     sleepErr.Error(),
			})
			return err
		}
	}

	r.logger.Error("All retry attempts failed", map[string]any{
		"operation":   name,
		"attempts":    attempt + 1,
		"max_retries": r.config.MaxRetries,
		"error":       err.Error(),
	})

	return err
}

// calculateBackoffWithJitter computes the backoff duration with exponential increase and jitter
func calculateBackoffWithJitter(attempt int, config RetryConfig) time.Duration {
	backoff := config.RetryInterval * (1 << uint(attempt))

	if backoff > config.MaxInterval {
		backoff = config.MaxInterval
	}

	if config.JitterFactor > 0 {
		jitter := time.Duration(float64(backoff) * config.JitterFactor * rand.Float64())
		backoff += jitter
	}

	return backoff
}
