package health

import "context"

// Corpus exposes the loaded snapshot facts the health check needs.
type Corpus interface {
	Len() int
	HasEmbeddings() bool
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
