// Package term builds the lexical term index: a capped vocabulary with
// smoothed idf weights and L2-normalized tf-idf document rows. The index
// is built once at snapshot load and never mutated afterward.
package term

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/stellarpress/biolit/internal/text"
)

// DefaultMaxVocabulary caps the vocabulary to the most frequent corpus terms.
const DefaultMaxVocabulary = 1000

// Index is the derived lexical structure over the corpus. Row i holds the
// tf-idf vector of document i; row order matches the record table order
// the index was built from.
type Index struct {
	vocab map[string]int
	idf   []float64
	rows  [][]float64
}

// Build constructs the index over the cleaned document texts.
// maxVocabulary <= 0 falls back to DefaultMaxVocabulary.
func Build(docs []string, maxVocabulary int) *Index {
	if maxVocabulary <= 0 {
		maxVocabulary = DefaultMaxVocabulary
	}

	tokenized := make([][]string, len(docs))
	corpusFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for i, doc := range docs {
		terms := text.Tokenize(doc)
		tokenized[i] = terms
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			corpusFreq[t]++
			seen[t] = struct{}{}
		}
		for t := range seen {
			docFreq[t]++
		}
	}

	vocab := selectVocabulary(corpusFreq, maxVocabulary)

	// Smoothed idf, matching the offline vectorizer:
	// idf = ln((1+N)/(1+df)) + 1.
	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for term, col := range vocab {
		idf[col] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	rows := make([][]float64, len(docs))
	for i, terms := range tokenized {
		rows[i] = project(terms, vocab, idf)
	}

	return &Index{vocab: vocab, idf: idf, rows: rows}
}

// selectVocabulary keeps the top-k corpus terms by frequency, breaking
// frequency ties lexicographically so the column layout is deterministic.
func selectVocabulary(corpusFreq map[string]int, k int) map[string]int {
	terms := make([]string, 0, len(corpusFreq))
	for t := range corpusFreq {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if corpusFreq[terms[i]] != corpusFreq[terms[j]] {
			return corpusFreq[terms[i]] > corpusFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > k {
		terms = terms[:k]
	}
	vocab := make(map[string]int, len(terms))
	for col, t := range terms {
		vocab[t] = col
	}
	return vocab
}

// project maps terms into a L2-normalized tf-idf vector over the
// vocabulary. Returns nil when nothing falls inside the vocabulary.
func project(terms []string, vocab map[string]int, idf []float64) []float64 {
	if len(terms) == 0 {
		return nil
	}
	vec := make([]float64, len(idf))
	hit := false
	for _, t := range terms {
		if col, ok := vocab[t]; ok {
			vec[col] += idf[col]
			hit = true
		}
	}
	if !hit {
		return nil
	}
	norm := floats.Norm(vec, 2)
	if norm == 0 {
		return nil
	}
	floats.Scale(1/norm, vec)
	return vec
}

// QueryVector projects a query through the same normalization and idf
// weights used for document rows. Returns nil for a query that is empty
// after normalization or has no vocabulary overlap.
func (x *Index) QueryVector(query string) []float64 {
	return project(text.Tokenize(query), x.vocab, x.idf)
}

// Score returns the cosine similarity between a query vector and document
// row i. Both sides are unit vectors, so the dot product is the cosine;
// a document with no vocabulary overlap scores 0.
func (x *Index) Score(i int, queryVec []float64) float64 {
	if queryVec == nil || i < 0 || i >= len(x.rows) || x.rows[i] == nil {
		return 0
	}
	s := floats.Dot(queryVec, x.rows[i])
	// Guard against floating-point drift above 1.
	if s > 1 {
		s = 1
	}
	if s < 0 {
		s = 0
	}
	return s
}

// Row returns document row i, nil when the document had no vocabulary
// overlap. The returned slice must not be mutated.
func (x *Index) Row(i int) []float64 {
	if i < 0 || i >= len(x.rows) {
		return nil
	}
	return x.rows[i]
}

// Rows returns the number of document rows.
func (x *Index) Rows() int { return len(x.rows) }

// VocabularySize returns the number of indexed terms.
func (x *Index) VocabularySize() int { return len(x.vocab) }
