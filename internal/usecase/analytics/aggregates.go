package analytics

import (
	"math"
	"sort"

	"github.com/stellarpress/biolit/internal/domain/search/filter"
)

// TopicSummary is one topic's share of the classified corpus.
type TopicSummary struct {
	TopicID      int      `json:"topic_id"`
	Label        string   `json:"label"`
	ArticleCount int      `json:"article_count"`
	Percentage   float64  `json:"percentage"`
	TopWords     []string `json:"top_words"`
}

// TopicDistribution counts records per topic. Percentages are relative
// to records that have a topic; unclassified records are excluded from
// both numerator and denominator. Ordered by ascending topic id. Empty
// when no record is classified.
func (s *Service) TopicDistribution() []TopicSummary {
	counts := make(map[int]int)
	classified := 0
	for i := 0; i < s.snap.Len(); i++ {
		if tid, ok := s.snap.At(i).Topic(); ok {
			counts[tid]++
			classified++
		}
	}
	if classified == 0 {
		return []TopicSummary{}
	}

	out := make([]TopicSummary, 0, len(counts))
	for _, tid := range s.snap.Catalog().IDs() {
		count, ok := counts[tid]
		if !ok {
			continue
		}
		t, _ := s.snap.Catalog().Get(tid)
		out = append(out, TopicSummary{
			TopicID:      tid,
			Label:        t.Label(),
			ArticleCount: count,
			Percentage:   round1(float64(count) / float64(classified) * 100),
			TopWords:     firstN(t.TopWords(), 5),
		})
	}
	return out
}

// YearBucket is the per-year article count with a per-topic breakdown.
type YearBucket struct {
	Year         int         `json:"year"`
	ArticleCount int         `json:"article_count"`
	Topics       map[int]int `json:"topics"`
}

// TemporalTrends groups records by year, ascending. Records without a
// year never contribute to any bucket; a corpus with no year data yields
// an empty slice, which is a valid outcome, not an error.
func (s *Service) TemporalTrends(yearRange *filter.Range) []YearBucket {
	buckets := make(map[int]*YearBucket)
	for i := 0; i < s.snap.Len(); i++ {
		rec := s.snap.At(i)
		year, ok := rec.Year()
		if !ok {
			continue
		}
		if yearRange != nil && !yearRange.Contains(year) {
			continue
		}
		b, ok := buckets[year]
		if !ok {
			b = &YearBucket{Year: year, Topics: make(map[int]int)}
			buckets[year] = b
		}
		b.ArticleCount++
		if tid, hasTopic := rec.Topic(); hasTopic {
			b.Topics[tid]++
		}
	}

	out := make([]YearBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Statistics is the comprehensive corpus summary. Optional fields are
// nil when the corpus carries no data for them; sub-aggregates that fail
// are omitted rather than failing the bundle.
type Statistics struct {
	TotalRecords      int             `json:"total_records"`
	RecordsWithTopic  int             `json:"records_with_topic"`
	RecordsWithYear   int             `json:"records_with_year"`
	DistinctTopics    int             `json:"distinct_topics"`
	MeanWordCount     float64         `json:"mean_word_count"`
	MinYear           *int            `json:"min_year,omitempty"`
	MaxYear           *int            `json:"max_year,omitempty"`
	TopicDistribution []TopicSummary  `json:"topic_distribution,omitempty"`
	TemporalTrends    []YearBucket    `json:"temporal_trends,omitempty"`
	WordCloud         []TermFrequency `json:"word_cloud,omitempty"`
}

// Statistics bundles the scalar counts with the three main aggregates,
// degrading field by field.
func (s *Service) Statistics() Statistics {
	st := Statistics{TotalRecords: s.snap.Len()}

	topics := make(map[int]struct{})
	totalWords := 0
	for i := 0; i < s.snap.Len(); i++ {
		rec := s.snap.At(i)
		totalWords += rec.WordCount()
		if tid, ok := rec.Topic(); ok {
			st.RecordsWithTopic++
			topics[tid] = struct{}{}
		}
		if year, ok := rec.Year(); ok {
			st.RecordsWithYear++
			if st.MinYear == nil || year < *st.MinYear {
				y := year
				st.MinYear = &y
			}
			if st.MaxYear == nil || year > *st.MaxYear {
				y := year
				st.MaxYear = &y
			}
		}
	}
	st.DistinctTopics = len(topics)
	if s.snap.Len() > 0 {
		st.MeanWordCount = round1(float64(totalWords) / float64(s.snap.Len()))
	}

	s.guard("topic_distribution", func() { st.TopicDistribution = s.TopicDistribution() })
	s.guard("temporal_trends", func() { st.TemporalTrends = s.TemporalTrends(nil) })
	s.guard("word_cloud", func() {
		cloud, err := s.WordCloud(allTopics, s.limits.MaxCloudTerms)
		if err == nil {
			st.WordCloud = cloud.Terms
		}
	})
	return st
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func firstN(words []string, n int) []string {
	if len(words) > n {
		return words[:n]
	}
	return words
}
