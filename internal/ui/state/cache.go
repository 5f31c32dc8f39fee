package state

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rovshanmuradov/gmx-stake-form/internal/domain"
	"go.uber.org/zap"
)

type chainBalances struct {
	entries   []domain.TokenAmount
	updatedAt time.Time
}

// BalanceCache keeps the last known balances per chain. Balance reload
// commands write to it from their own goroutines, the form reads snapshots.
type BalanceCache struct {
	chains map[domain.ChainKey]chainBalances
	loaded bool
	mu     sync.RWMutex
	logger *zap.Logger

	// Statistics (accessed atomically)
	reads  uint64
	writes uint64
}

// NewBalanceCache creates an empty cache
func NewBalanceCache(logger *zap.Logger) *BalanceCache {
	return &BalanceCache{
		chains: make(map[domain.ChainKey]chainBalances),
		logger: logger,
	}
}

// Set replaces the balances of a single chain
func (c *BalanceCache) Set(chain domain.ChainKey, entries []domain.TokenAmount) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.chains[chain] = chainBalances{
		entries:   append([]domain.TokenAmount(nil), entries...),
		updatedAt: time.Now(),
	}
	c.loaded = true
	atomic.AddUint64(&c.writes, 1)
}

// Merge stores every chain of table. Chains absent from table keep their
// previous balances. A nil table is ignored.
func (c *BalanceCache) Merge(table domain.BalanceTable) {
	if table == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for chain, entries := range table {
		c.chains[chain] = chainBalances{
			entries:   append([]domain.TokenAmount(nil), entries...),
			updatedAt: now,
		}
	}
	c.loaded = true
	atomic.AddUint64(&c.writes, 1)
}

// Snapshot returns a copy of all balances, or nil if nothing was ever loaded
func (c *BalanceCache) Snapshot() domain.BalanceTable {
	c.mu.RLock()
	defer c.mu.RUnlock()

	atomic.AddUint64(&c.reads, 1)
	if !c.loaded {
		return nil
	}

	// Return copy, not reference
	snapshot := make(domain.BalanceTable, len(c.chains))
	for chain, cb := range c.chains {
		snapshot[chain] = append([]domain.TokenAmount(nil), cb.entries...)
	}
	return snapshot
}

// UpdatedAt reports when chain balances were last stored
func (c *BalanceCache) UpdatedAt(chain domain.ChainKey) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	atomic.AddUint64(&c.reads, 1)
	cb, ok := c.chains[chain]
	return cb.updatedAt, ok
}

// GetStats returns cache statistics
func (c *BalanceCache) GetStats() (chains, reads, writes uint64) {
	c.mu.RLock()
	chains = uint64(len(c.chains))
	c.mu.RUnlock()

	reads = atomic.LoadUint64(&c.reads)
	writes = atomic.LoadUint64(&c.writes)
	return chains, reads, writes
}

// CleanupStale drops chains whose balances are older than maxAge. The form
// then treats their tokens as having no known balance.
func (c *BalanceCache) CleanupStale(maxAge time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for chain, cb := range c.chains {
		if cb.updatedAt.Before(cutoff) {
			delete(c.chains, chain)
			removed++
		}
	}

	if removed > 0 {
		c.logger.Info("Cleaned up stale balances",
			zap.Int("removed", removed),
			zap.Int("remaining", len(c.chains)))
	}

	return removed
}
