package request

import (
	"fmt"

	"github.com/stellarpress/biolit/internal/domain"
	"github.com/stellarpress/biolit/internal/domain/search/filter"
	"github.com/stellarpress/biolit/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultLimit   = 20
	// MaxLimit bounds result-set size regardless of what the caller asks for.
	MaxLimit = 50
)

// Request is a validated search query. An empty query is accepted here;
// the search service answers it with an empty result set rather than an
// error.
type Request struct {
	query          string
	searchMode     mode.Mode
	filters        filter.Set
	limit          int
	minScore       float64
	dropZeroScores bool
}

// New validates and normalizes search parameters.
// Defaults: mode=hybrid, limit=20. Limit is clamped to MaxLimit;
// a negative limit is a caller error, not a value to repair.
func New(
	query string,
	m mode.Mode,
	filters filter.Set,
	limit int,
	minScore float64,
	dropZeroScores bool,
) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if m == "" {
		m = mode.Hybrid
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("%w: invalid search mode %q", domain.ErrInvalidQuery, m)
	}
	if limit < 0 {
		return Request{}, fmt.Errorf("%w: limit must be non-negative, got %d", domain.ErrInvalidQuery, limit)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if minScore < 0 || minScore > 1 {
		return Request{}, fmt.Errorf("%w: min_score must be between 0 and 1", domain.ErrInvalidQuery)
	}

	return Request{
		query:          query,
		searchMode:     m,
		filters:        filters,
		limit:          limit,
		minScore:       minScore,
		dropZeroScores: dropZeroScores,
	}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Mode returns the ranking strategy.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// Filters returns the structured pre-filter set.
func (r *Request) Filters() filter.Set { return r.filters }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }

// MinScore returns the minimum similarity threshold (0 = disabled).
func (r *Request) MinScore() float64 { return r.minScore }

// DropZeroScores reports whether zero-score candidates should be excluded
// instead of ranked last.
func (r *Request) DropZeroScores() bool { return r.dropZeroScores }
