// Package filter holds the structured predicate set applied before ranking.
package filter

import (
	"fmt"

	"github.com/stellarpress/biolit/internal/domain/record"
)

// MaxSetValues is the maximum number of values per membership filter.
const MaxSetValues = 64

// Set is a conjunction of structured predicates over record metadata.
// An absent dimension constrains nothing; it does not exclude records
// that are missing the field. The one exception is the year range: a
// record with no year cannot satisfy a range test and is excluded
// whenever a year range is present.
type Set struct {
	topics    map[int]struct{}
	yearRange *Range
	wordRange *Range
	journals  map[string]struct{}
}

// Range is an inclusive [min, max] interval; either bound may be open.
type Range struct {
	min *int
	max *int
}

// NewRange validates and creates a Range. At least one bound is required
// and min must not exceed max.
func NewRange(min, max *int) (Range, error) {
	if min == nil && max == nil {
		return Range{}, fmt.Errorf("at least one range bound is required")
	}
	if min != nil && max != nil && *min > *max {
		return Range{}, fmt.Errorf("range min %d exceeds max %d", *min, *max)
	}
	return Range{min: min, max: max}, nil
}

// Contains reports whether v falls inside the range.
func (r Range) Contains(v int) bool {
	if r.min != nil && v < *r.min {
		return false
	}
	if r.max != nil && v > *r.max {
		return false
	}
	return true
}

// Min returns the inclusive lower bound.
func (r Range) Min() *int { return r.min }

// Max returns the inclusive upper bound.
func (r Range) Max() *int { return r.max }

// Params holds the raw filter inputs.
type Params struct {
	Topics    []int
	YearRange *Range
	WordRange *Range
	Journals  []string
}

// New validates and creates a filter Set.
func New(p Params) (Set, error) {
	if len(p.Topics) > MaxSetValues {
		return Set{}, fmt.Errorf("too many topic filters (max %d)", MaxSetValues)
	}
	if len(p.Journals) > MaxSetValues {
		return Set{}, fmt.Errorf("too many journal filters (max %d)", MaxSetValues)
	}
	s := Set{yearRange: p.YearRange, wordRange: p.WordRange}
	if len(p.Topics) > 0 {
		s.topics = make(map[int]struct{}, len(p.Topics))
		for _, id := range p.Topics {
			s.topics[id] = struct{}{}
		}
	}
	if len(p.Journals) > 0 {
		s.journals = make(map[string]struct{}, len(p.Journals))
		for _, j := range p.Journals {
			s.journals[j] = struct{}{}
		}
	}
	return s, nil
}

// IsEmpty reports whether the set constrains nothing.
func (s Set) IsEmpty() bool {
	return s.topics == nil && s.yearRange == nil && s.wordRange == nil && s.journals == nil
}

// YearRange returns the year constraint, nil when absent.
func (s Set) YearRange() *Range { return s.yearRange }

// Matches applies the conjunction to a single record.
func (s Set) Matches(r *record.Record) bool {
	if s.topics != nil {
		id, ok := r.Topic()
		if !ok {
			return false
		}
		if _, want := s.topics[id]; !want {
			return false
		}
	}
	if s.yearRange != nil {
		year, ok := r.Year()
		if !ok || !s.yearRange.Contains(year) {
			return false
		}
	}
	if s.wordRange != nil && !s.wordRange.Contains(r.WordCount()) {
		return false
	}
	if s.journals != nil {
		if _, want := s.journals[r.Journal()]; !want {
			return false
		}
	}
	return true
}
