package request

import (
	"fmt"

	"github.com/stellarpress/biolit/internal/domain"
	"github.com/stellarpress/biolit/internal/domain/search/filter"
)

// SimilarRequest is a validated "find similar articles" query.
type SimilarRequest struct {
	recordID int
	filters  filter.Set
	limit    int
	minScore float64
}

// NewSimilar validates and normalizes similar-request parameters.
func NewSimilar(recordID int, filters filter.Set, limit int, minScore float64) (SimilarRequest, error) {
	if recordID < 0 {
		return SimilarRequest{}, fmt.Errorf("%w: record id must be non-negative, got %d", domain.ErrInvalidQuery, recordID)
	}
	if limit < 0 {
		return SimilarRequest{}, fmt.Errorf("%w: limit must be non-negative, got %d", domain.ErrInvalidQuery, limit)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if minScore < 0 || minScore > 1 {
		return SimilarRequest{}, fmt.Errorf("%w: min_score must be between 0 and 1", domain.ErrInvalidQuery)
	}
	return SimilarRequest{recordID: recordID, filters: filters, limit: limit, minScore: minScore}, nil
}

// RecordID returns the source record id. The source is never part of
// the result set.
func (r *SimilarRequest) RecordID() int { return r.recordID }

// Filters returns the structured pre-filter set.
func (r *SimilarRequest) Filters() filter.Set { return r.filters }

// Limit returns the maximum results to return.
func (r *SimilarRequest) Limit() int { return r.limit }

// MinScore returns the minimum similarity threshold (0 = disabled).
func (r *SimilarRequest) MinScore() float64 { return r.minScore }
