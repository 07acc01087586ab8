package analytics

import (
	"fmt"
	"sort"

	"github.com/stellarpress/biolit/internal/domain"
	"github.com/stellarpress/biolit/internal/domain/topic"
	"github.com/stellarpress/biolit/internal/text"
)

// allTopics requests a cloud over the whole classified-or-not corpus.
const allTopics = topic.All

// TermFrequency is one word-cloud entry.
type TermFrequency struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Cloud is a term-frequency table for one topic or the whole corpus.
type Cloud struct {
	TopicID *int            `json:"topic_id,omitempty"`
	Label   string          `json:"label"`
	Terms   []TermFrequency `json:"terms"`
}

// WordCloud tallies term frequencies over the cleaned text of records in
// the given topic (topic.All for the whole corpus). Stop terms are
// excluded by normalization; ties break lexicographically so the table
// is deterministic. maxTerms is clamped to the configured bound.
func (s *Service) WordCloud(topicID, maxTerms int) (Cloud, error) {
	if maxTerms <= 0 || maxTerms > s.limits.MaxCloudTerms {
		maxTerms = s.limits.MaxCloudTerms
	}

	cloud := Cloud{Label: "All Topics"}
	if topicID != allTopics {
		t, ok := s.snap.Catalog().Get(topicID)
		if !ok {
			return Cloud{}, fmt.Errorf("%w: unknown topic id %d", domain.ErrInvalidQuery, topicID)
		}
		id := topicID
		cloud.TopicID = &id
		cloud.Label = t.Label()
	}

	freq := make(map[string]int)
	for i := 0; i < s.snap.Len(); i++ {
		rec := s.snap.At(i)
		if topicID != allTopics {
			tid, ok := rec.Topic()
			if !ok || tid != topicID {
				continue
			}
		}
		for _, term := range text.Tokenize(rec.CleanText()) {
			freq[term]++
		}
	}

	cloud.Terms = topTerms(freq, maxTerms)
	return cloud, nil
}

// topTerms sorts by descending count, ties lexicographic, and truncates.
func topTerms(freq map[string]int, n int) []TermFrequency {
	terms := make([]TermFrequency, 0, len(freq))
	for t, c := range freq {
		terms = append(terms, TermFrequency{Term: t, Count: c})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}
