package search

import (
	"context"

	"github.com/stellarpress/biolit/internal/domain"
)

// Embedder vectorizes query text into the corpus embedding space. The
// mapping is an injected capability of the offline pipeline; the engine
// never computes embeddings itself.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
