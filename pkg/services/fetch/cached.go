package fetch

import (
	"context"
	"sync"
	"time"

	"github.com/rcm-tools/denial-atlas/pkg/models/domain"
	"github.com/rcm-tools/denial-atlas/pkg/models/source"
)

// DefaultTTL matches the upstream dashboard's ten minute memoization window.
const DefaultTTL = 10 * time.Minute

type cacheEntry struct {
	records     []source.PaymentRecord
	diagnostics []domain.Diagnostic
	storedAt    time.Time
}

// CachedFetcher memoizes an inner Fetcher per distinct filter tuple for a
// bounded time window. Expired entries are never returned.
type CachedFetcher struct {
	inner Fetcher
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCached wraps a Fetcher with TTL-bounded memoization. A non-positive ttl
// falls back to DefaultTTL.
func NewCached(inner Fetcher, ttl time.Duration) *CachedFetcher {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedFetcher{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *CachedFetcher) FetchPayments(
	ctx context.Context,
	params domain.FilterParams,
) ([]source.PaymentRecord, []domain.Diagnostic, error) {
	key := params.Key()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().Sub(entry.storedAt) < c.ttl {
		return entry.records, entry.diagnostics, nil
	}

	records, diagnostics, err := c.inner.FetchPayments(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{
		records:     records,
		diagnostics: diagnostics,
		storedAt:    c.now(),
	}
	c.mu.Unlock()

	return records, diagnostics, nil
}

// Invalidate drops the cached entry for one filter tuple.
func (c *CachedFetcher) Invalidate(params domain.FilterParams) {
	c.mu.Lock()
	delete(c.entries, params.Key())
	c.mu.Unlock()
}

// Expire sweeps out all entries past their TTL and reports how many were
// removed.
func (c *CachedFetcher) Expire() int {
	cutoff := c.now().Add(-c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if entry.storedAt.Before(cutoff) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}
