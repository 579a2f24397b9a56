package time

import (
	"context"
	"sync"
	"time"

	"github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
)

// ManualTimeProvider is a clock that only moves when told to.
// Sleep advances the clock instead of blocking.
type ManualTimeProvider struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualTimeProvider creates a clock frozen at start
func NewManualTimeProvider(start time.Time) *ManualTimeProvider {
	return &ManualTimeProvider{now: start}
}

// Now returns the current manual time
func (p *ManualTimeProvider) Now() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.now
}

// Since returns the manual time elapsed since t
func (p *ManualTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(p.Now().Sub(t))
}

// Advance moves the clock forward by d
func (p *ManualTimeProvider) Advance(d time.Duration) {
	p.mu.Lock()
	p.now = p.now.Add(d)
	p.mu.Unlock()
}

// Sleep advances the clock by d unless ctx is already done
func (p *ManualTimeProvider) Sleep(ctx context.Context, d core.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.Advance(d.Std())
	return nil
}

// WithTimeout uses a real timer; deadlines are not simulated
func (p *ManualTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}
