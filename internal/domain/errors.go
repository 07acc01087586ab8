package domain

import "errors"

var (
	// ErrDataUnavailable signals a missing or shape-mismatched corpus artifact.
	// Fatal at startup; the process must not serve queries.
	ErrDataUnavailable = errors.New("corpus data unavailable")
	// ErrEmbeddingUnavailable signals that semantic scoring cannot run.
	// Recoverable; callers degrade to lexical-only ranking.
	ErrEmbeddingUnavailable = errors.New("embeddings unavailable")
	// ErrInvalidQuery signals a caller error in query parameters.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrRecordNotFound signals an unknown record id.
	ErrRecordNotFound = errors.New("record not found")
	// ErrUnknownNetworkType signals an unsupported network graph type.
	ErrUnknownNetworkType = errors.New("unknown network type")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
