package result

import "github.com/stellarpress/biolit/internal/domain/record"

// Item is a single ranked search hit. The underlying record is
// referenced from the snapshot, never copied mutably.
type Item struct {
	rec          *record.Record
	score        float64
	rank         int
	matchedTerms []string
}

// New creates a result item. Rank is assigned later, after truncation.
func New(rec *record.Record, score float64) Item {
	return Item{rec: rec, score: score}
}

// Record returns the matched record.
func (i *Item) Record() *record.Record { return i.rec }

// Score returns the relevance score in [0, 1].
func (i *Item) Score() float64 { return i.score }

// Rank returns the 1-based position in the final result set.
func (i *Item) Rank() int { return i.rank }

// MatchedTerms returns shared title terms for similarity results.
func (i *Item) MatchedTerms() []string { return i.matchedTerms }

// WithRank returns a copy with the 1-based rank set.
func (i Item) WithRank(rank int) Item {
	i.rank = rank
	return i
}

// WithMatchedTerms returns a copy carrying shared title terms.
func (i Item) WithMatchedTerms(terms []string) Item {
	i.matchedTerms = terms
	return i
}

// WithScore returns a copy with a replaced score. Used by hybrid fusion.
func (i Item) WithScore(score float64) Item {
	i.score = score
	return i
}
