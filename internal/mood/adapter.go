package mood

import (
	"context"
	"log"
	"time"
)

// Adapter is the classification entry point used by the journal service. It
// bounds the call with a timeout, caches successful results by content hash,
// and degrades to the neutral fallback instead of returning an error.
type Adapter struct {
	classifier Classifier
	cache      *resultCache
	timeout    time.Duration
}

func NewAdapter(classifier Classifier, timeout time.Duration, cacheTTL time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{
		classifier: classifier,
		cache:      newResultCache(cacheTTL),
		timeout:    timeout,
	}
}

// Classify never fails from the caller's point of view: any classifier error
// or timeout yields the degraded fallback result, to be recorded as data.
func (adapter *Adapter) Classify(ctx context.Context, text string) Result {
	key := CacheKey(text)
	if cached, found := adapter.cache.get(key); found {
		return cached
	}

	callCtx, cancel := context.WithTimeout(ctx, adapter.timeout)
	defer cancel()

	result, err := adapter.classifier.Classify(callCtx, text)
	if err != nil {
		log.Printf("mood classification unavailable: %v", err)
		return Fallback()
	}

	adapter.cache.set(key, result)
	return result
}

func (adapter *Adapter) CachedResults() int {
	return adapter.cache.size()
}

func (adapter *Adapter) Close() {
	adapter.cache.Close()
}
