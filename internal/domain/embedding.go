package domain

import "context"

// Embedder maps text into the dense vector space used by the corpus
// embeddings. The corpus itself is embedded offline; at query time the
// engine only consumes this capability, it never computes embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage through
// the decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}
