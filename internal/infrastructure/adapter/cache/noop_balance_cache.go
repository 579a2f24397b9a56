package cache

import (
	"context"

	"github.com/google/uuid"

	cacheport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/cache"
)

// NoopBalanceCache never stores anything; every Get is a miss
type NoopBalanceCache struct{}

var _ cacheport.BalanceCache = NoopBalanceCache{}

// NewNoopBalanceCache creates a new NoopBalanceCache
func NewNoopBalanceCache() NoopBalanceCache {
	return NoopBalanceCache{}
}

func (NoopBalanceCache) Put(context.Context, uuid.UUID, int64) {}

func (NoopBalanceCache) Get(context.Context, uuid.UUID) (int64, bool) { return 0, false }

func (NoopBalanceCache) Invalidate(context.Context, uuid.UUID) {}
