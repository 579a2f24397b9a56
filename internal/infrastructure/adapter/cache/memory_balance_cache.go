package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	cacheport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/cache"
	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
)

type memoryEntry struct {
	balance   int64
	expiresAt time.Time
}

// MemoryBalanceCache keeps balances in process memory with a TTL
type MemoryBalanceCache struct {
	mu           sync.RWMutex
	entries      map[uuid.UUID]memoryEntry
	ttl          time.Duration
	timeProvider coreport.TimeProvider
}

var _ cacheport.BalanceCache = (*MemoryBalanceCache)(nil)

// NewMemoryBalanceCache creates a new MemoryBalanceCache
func NewMemoryBalanceCache(ttl time.Duration, timeProvider coreport.TimeProvider) *MemoryBalanceCache {
	return &MemoryBalanceCache{
		entries:      make(map[uuid.UUID]memoryEntry),
		ttl:          ttl,
		timeProvider: timeProvider,
	}
}

// Put stores the balance until the TTL elapses
func (c *MemoryBalanceCache) Put(_ context.Context, walletID uuid.UUID, balance int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[walletID] = memoryEntry{
		balance:   balance,
		expiresAt: c.timeProvider.Now().Add(c.ttl),
	}
}

// Get returns the balance when present and not expired
func (c *MemoryBalanceCache) Get(_ context.Context, walletID uuid.UUID) (int64, bool) {
	c.mu.RLock()
	entry, ok := c.entries[walletID]
	c.mu.RUnlock()

	if !ok {
		return 0, false
	}

	if !c.timeProvider.Now().Before(entry.expiresAt) {
		c.mu.Lock()
		// Another Put may have refreshed the entry in between
		if current, still := c.entries[walletID]; still && current == entry {
			delete(c.entries, walletID)
		}
		c.mu.Unlock()
		return 0, false
	}

	return entry.balance, true
}

// Invalidate removes the balance
func (c *MemoryBalanceCache) Invalidate(_ context.Context, walletID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, walletID)
}

// Len returns the number of stored entries, expired ones included
func (c *MemoryBalanceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
