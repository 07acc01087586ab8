// Package embcache decorates the query embedder with an in-memory
// bounded cache. The query path must not touch external services more
// than once per distinct query text.
package embcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stellarpress/biolit/internal/domain"
)

// CachedEmbedder caches query embeddings keyed by text hash.
type CachedEmbedder struct {
	inner      domain.Embedder
	cacheTotal *prometheus.CounterVec

	mu      sync.RWMutex
	entries map[string][]float32
	maxSize int
}

// New creates a caching decorator holding at most maxSize vectors.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"); nil
// disables metrics.
func New(inner domain.Embedder, maxSize int, cacheTotal *prometheus.CounterVec) *CachedEmbedder {
	if maxSize <= 0 {
		maxSize = 1024
	}
	return &CachedEmbedder{
		inner:      inner,
		cacheTotal: cacheTotal,
		entries:    make(map[string][]float32),
		maxSize:    maxSize,
	}
}

// Embed returns a cached embedding or calls the inner embedder.
// Cache hit: TotalTokens = 0 (no real tokens consumed).
func (c *CachedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	key := cacheKey(text)

	c.mu.RLock()
	vec, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.incCache("hit")
		return domain.EmbeddingResult{Embedding: vec}, nil
	}

	c.incCache("miss")

	result, err := c.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed text: %w", err)
	}

	c.mu.Lock()
	if len(c.entries) >= c.maxSize {
		// Evict an arbitrary entry; map iteration order is good enough
		// for a cache this small.
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}
	c.entries[key] = result.Embedding
	c.mu.Unlock()

	return result, nil
}

func (c *CachedEmbedder) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}
