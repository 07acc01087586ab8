// Package search implements the filter & sort engine: structured
// pre-filtering, lexical and semantic ranking, hybrid fusion, and
// deterministic truncation.
package search

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/stellarpress/biolit/internal/domain"
	"github.com/stellarpress/biolit/internal/domain/search/filter"
	"github.com/stellarpress/biolit/internal/domain/search/mode"
	"github.com/stellarpress/biolit/internal/domain/search/request"
	"github.com/stellarpress/biolit/internal/domain/search/result"
	"github.com/stellarpress/biolit/internal/snapshot"
	"github.com/stellarpress/biolit/internal/text"
)

// Weights are the fixed hybrid fusion weights. They come from
// configuration, not from the caller.
type Weights struct {
	Lexical  float64
	Semantic float64
}

// DefaultWeights favors semantic similarity when embeddings are loaded.
var DefaultWeights = Weights{Lexical: 0.4, Semantic: 0.6}

// Service ranks corpus records against queries. It holds only read-only
// state and is safe for concurrent use.
type Service struct {
	snap    *snapshot.Snapshot
	embed   Embedder
	weights Weights
	logger  *zap.Logger
}

// New creates a search service. embed may be nil when no query-embedding
// capability is configured; semantic ranking then degrades to lexical.
// Weights are normalized to sum to 1 so fused scores stay in [0,1].
func New(snap *snapshot.Snapshot, embed Embedder, weights Weights, logger *zap.Logger) *Service {
	if weights.Lexical < 0 || weights.Semantic < 0 || weights.Lexical+weights.Semantic == 0 {
		weights = DefaultWeights
	}
	if sum := weights.Lexical + weights.Semantic; sum != 1 {
		weights.Lexical /= sum
		weights.Semantic /= sum
	}
	return &Service{snap: snap, embed: embed, weights: weights, logger: logger}
}

// Response is a ranked result set with pre-truncation match count and a
// degradation flag for callers that asked for semantic scoring the
// snapshot could not provide.
type Response struct {
	Items    []result.Item
	Total    int
	Degraded bool
	Warning  string
}

// Search filters the corpus, scores the survivors per the requested
// mode, and returns the top results with 1-based ranks.
func (s *Service) Search(ctx context.Context, req *request.Request) (Response, error) {
	// A query that normalizes to nothing has nothing to rank against.
	if len(text.Tokenize(req.Query())) == 0 {
		return Response{Items: []result.Item{}}, nil
	}

	candidates := s.filterPositions(req.Filters())
	if len(candidates) == 0 {
		return Response{Items: []result.Item{}}, nil
	}

	var (
		scores   []float64
		degraded bool
		warning  string
	)
	switch req.Mode() {
	case mode.Lexical:
		scores = s.lexicalScores(req.Query(), candidates)
	case mode.Semantic:
		sem, err := s.semanticScores(ctx, req.Query(), candidates)
		if err != nil {
			// Recoverable: fall back to lexical-only and tell the caller.
			s.logger.Warn("semantic ranking degraded to lexical", zap.Error(err))
			scores = s.lexicalScores(req.Query(), candidates)
			degraded = true
			warning = "semantic ranking unavailable, results are lexical-only"
		} else {
			scores = sem
		}
	case mode.Hybrid:
		scores = s.lexicalScores(req.Query(), candidates)
		sem, err := s.semanticScores(ctx, req.Query(), candidates)
		if err != nil {
			s.logger.Warn("hybrid ranking degraded to lexical", zap.Error(err))
			degraded = true
			warning = "semantic ranking unavailable, results are lexical-only"
		} else {
			for i := range scores {
				scores[i] = s.weights.Lexical*scores[i] + s.weights.Semantic*sem[i]
				// Rounding can nudge the blend past 1.
				if scores[i] > 1 {
					scores[i] = 1
				}
			}
		}
	default:
		return Response{}, fmt.Errorf("%w: unsupported mode %q", domain.ErrInvalidQuery, req.Mode())
	}

	items := s.collect(candidates, scores, req.MinScore(), req.DropZeroScores())
	total := len(items)
	items = truncateAndRank(items, req.Limit())

	return Response{Items: items, Total: total, Degraded: degraded, Warning: warning}, nil
}

// Similar ranks records by embedding similarity to the source record,
// which is never part of the result set. Without embeddings the term
// index row stands in for the vector (degraded, not an error).
func (s *Service) Similar(ctx context.Context, req *request.SimilarRequest) (Response, error) {
	source := s.snap.Get(req.RecordID())
	if source == nil {
		return Response{}, fmt.Errorf("%w: id %d", domain.ErrRecordNotFound, req.RecordID())
	}
	sourcePos, _ := s.snap.Position(req.RecordID())

	var (
		sourceVec []float64
		degraded  bool
		warning   string
	)
	if s.snap.HasEmbeddings() {
		sourceVec = source.Vector()
	} else {
		sourceVec = s.snap.TermIndex().Row(sourcePos)
		degraded = true
		warning = "embeddings unavailable, similarity is lexical-only"
	}

	sourceTerms := titleTermSet(source.Title())
	items := make([]result.Item, 0)
	for _, pos := range s.filterPositions(req.Filters()) {
		if pos == sourcePos {
			continue
		}
		rec := s.snap.At(pos)
		var score float64
		if s.snap.HasEmbeddings() {
			score = cosine(sourceVec, rec.Vector())
		} else {
			score = cosineSparse(sourceVec, s.snap.TermIndex().Row(pos))
		}
		if score < req.MinScore() {
			continue
		}
		item := result.New(rec, score).
			WithMatchedTerms(sharedTerms(sourceTerms, rec.Title()))
		items = append(items, item)
	}

	sortByScore(items)
	total := len(items)
	items = truncateAndRank(items, req.Limit())

	return Response{Items: items, Total: total, Degraded: degraded, Warning: warning}, nil
}

// filterPositions returns the table positions whose records satisfy the
// filter conjunction, in ascending id order.
func (s *Service) filterPositions(f filter.Set) []int {
	positions := make([]int, 0, s.snap.Len())
	for i := 0; i < s.snap.Len(); i++ {
		if f.Matches(s.snap.At(i)) {
			positions = append(positions, i)
		}
	}
	sort.Slice(positions, func(a, b int) bool {
		return s.snap.At(positions[a]).ID() < s.snap.At(positions[b]).ID()
	})
	return positions
}

// lexicalScores scores candidates against the query through the term
// index. An empty-after-normalization query scores every candidate 0.
func (s *Service) lexicalScores(query string, candidates []int) []float64 {
	scores := make([]float64, len(candidates))
	qv := s.snap.TermIndex().QueryVector(query)
	if qv == nil {
		return scores
	}
	for i, pos := range candidates {
		scores[i] = s.snap.TermIndex().Score(pos, qv)
	}
	return scores
}

// semanticScores embeds the query and scores candidates against their
// stored vectors. Both missing embeddings and a failing embedder map to
// ErrEmbeddingUnavailable so callers degrade uniformly.
func (s *Service) semanticScores(ctx context.Context, query string, candidates []int) ([]float64, error) {
	if !s.snap.HasEmbeddings() {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.embed == nil {
		return nil, fmt.Errorf("%w: no query embedder configured", domain.ErrEmbeddingUnavailable)
	}
	embRes, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	qv := make([]float64, len(embRes.Embedding))
	for i, v := range embRes.Embedding {
		qv[i] = float64(v)
	}
	if len(qv) != s.snap.Dim() {
		return nil, fmt.Errorf(
			"%w: query vector has %d dimensions, corpus has %d",
			domain.ErrEmbeddingUnavailable, len(qv), s.snap.Dim(),
		)
	}
	if norm := floats.Norm(qv, 2); norm > 0 {
		floats.Scale(1/norm, qv)
	}

	scores := make([]float64, len(candidates))
	for i, pos := range candidates {
		scores[i] = cosine(qv, s.snap.At(pos).Vector())
	}
	return scores, nil
}

// collect pairs candidates with scores, applying the min-score and
// zero-score post-filters, then sorts by descending score with ascending
// id tie-break.
func (s *Service) collect(candidates []int, scores []float64, minScore float64, dropZero bool) []result.Item {
	items := make([]result.Item, 0, len(candidates))
	for i, pos := range candidates {
		if scores[i] < minScore {
			continue
		}
		if dropZero && scores[i] == 0 {
			continue
		}
		items = append(items, result.New(s.snap.At(pos), scores[i]))
	}
	sortByScore(items)
	return items
}

// sortByScore orders items by strictly non-increasing score, ties broken
// by ascending record id so identical queries return identical rankings.
func sortByScore(items []result.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score() != items[j].Score() {
			return items[i].Score() > items[j].Score()
		}
		return items[i].Record().ID() < items[j].Record().ID()
	})
}

// truncateAndRank cuts to limit and assigns 1-based ranks.
func truncateAndRank(items []result.Item, limit int) []result.Item {
	if len(items) > limit {
		items = items[:limit]
	}
	for i := range items {
		items[i] = items[i].WithRank(i + 1)
	}
	return items
}

// cosine is the dot product of two unit vectors, clamped to [0, 1].
func cosine(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	s := floats.Dot(a, b)
	if s > 1 {
		s = 1
	}
	if s < 0 {
		s = 0
	}
	return s
}

// cosineSparse tolerates nil rows from the term index.
func cosineSparse(a, b []float64) float64 {
	if a == nil || b == nil {
		return 0
	}
	return cosine(a, b)
}

// titleTermSet normalizes a title into a term lookup set.
func titleTermSet(title string) map[string]struct{} {
	terms := text.Tokenize(title)
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return set
}

// sharedTerms returns up to five title terms common to both records,
// sorted for determinism.
func sharedTerms(sourceTerms map[string]struct{}, title string) []string {
	shared := make([]string, 0, 5)
	seen := make(map[string]struct{})
	for _, t := range text.Tokenize(title) {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := sourceTerms[t]; ok {
			shared = append(shared, t)
		}
	}
	sort.Strings(shared)
	if len(shared) > 5 {
		shared = shared[:5]
	}
	return shared
}
