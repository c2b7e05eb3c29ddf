package cache

import (
	"context"
	"sync"

	"bankrag/internal/port"
)

// EmbeddingCache memoizes query embeddings for the process lifetime.
// Keys are exact query strings with no normalization, and there is no
// eviction: growth is bounded only by the query cardinality of a
// demo-scale deployment. Size is exposed so callers can watch it.
type EmbeddingCache struct {
	embedder port.Embedder

	mu      sync.RWMutex
	entries map[string][]float32
}

func NewEmbeddingCache(embedder port.Embedder) *EmbeddingCache {
	return &EmbeddingCache{
		embedder: embedder,
		entries:  make(map[string][]float32),
	}
}

// GetOrCompute returns the embedding for query, calling the embedder on
// a cache miss. The embedder call runs outside the lock, so two
// concurrent misses on the same unseen query may both call the
// provider; both compute the same value and the last write wins.
// Failed and empty embeddings are not cached, so a transient provider
// error is retried on the next call.
func (c *EmbeddingCache) GetOrCompute(ctx context.Context, query string) (vec []float32, hit bool, err error) {
	c.mu.RLock()
	vec, ok := c.entries[query]
	c.mu.RUnlock()
	if ok {
		return vec, true, nil
	}

	vec, err = c.embedder.EmbedOne(ctx, query)
	if err != nil {
		return nil, false, err
	}
	if len(vec) == 0 {
		return nil, false, nil
	}

	c.mu.Lock()
	c.entries[query] = vec
	c.mu.Unlock()

	return vec, false, nil
}

// Size returns the number of cached query embeddings.
func (c *EmbeddingCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
