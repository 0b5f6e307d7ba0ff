package mood

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	expiry time.Time
	result Result
}

// resultCache keeps successful classifications keyed by a hash of the
// normalized input text, so edits and retries of the same wording do not hit
// the external service again.
type resultCache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
}

func newResultCache(ttl time.Duration) *resultCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	cache := &resultCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}
	go cache.sweep()
	return cache
}

// CacheKey hashes text after lowercasing and collapsing whitespace, so
// trivially reformatted input shares one cache slot.
func CacheKey(text string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(text), " "))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

func (cache *resultCache) get(key string) (Result, bool) {
	cache.mu.RLock()
	defer cache.mu.RUnlock()

	entry, exists := cache.entries[key]
	if !exists || time.Now().After(entry.expiry) {
		return Result{}, false
	}
	return entry.result, true
}

func (cache *resultCache) set(key string, result Result) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.entries[key] = cacheEntry{result: result, expiry: time.Now().Add(cache.ttl)}
}

func (cache *resultCache) size() int {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	return len(cache.entries)
}

func (cache *resultCache) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-cache.stopCh:
			return
		case <-ticker.C:
			cache.mu.Lock()
			now := time.Now()
			for key, entry := range cache.entries {
				if now.After(entry.expiry) {
					delete(cache.entries, key)
				}
			}
			cache.mu.Unlock()
		}
	}
}

func (cache *resultCache) Close() {
	close(cache.stopCh)
}
