package analytics

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// TopicOption is one topic filter choice with its record count.
type TopicOption struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// YearOption is one year filter choice with its record count.
type YearOption struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// JournalOption is one journal filter choice with its record count.
type JournalOption struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FilterOptions lists the populated values of every filter dimension.
type FilterOptions struct {
	Topics   []TopicOption   `json:"topics"`
	Years    []YearOption    `json:"years"`
	Journals []JournalOption `json:"journals"`
}

// AvailableFilters scans the snapshot for the filter values that would
// actually match something, with per-value counts.
func (s *Service) AvailableFilters() FilterOptions {
	topicCounts := make(map[int]int)
	yearCounts := make(map[int]int)
	journalCounts := make(map[string]int)
	for i := 0; i < s.snap.Len(); i++ {
		rec := s.snap.At(i)
		if tid, ok := rec.Topic(); ok {
			topicCounts[tid]++
		}
		if year, ok := rec.Year(); ok {
			yearCounts[year]++
		}
		if j := rec.Journal(); j != "" {
			journalCounts[j]++
		}
	}

	opts := FilterOptions{
		Topics:   make([]TopicOption, 0, len(topicCounts)),
		Years:    make([]YearOption, 0, len(yearCounts)),
		Journals: make([]JournalOption, 0, len(journalCounts)),
	}
	for _, id := range s.snap.Catalog().IDs() {
		if count, ok := topicCounts[id]; ok {
			t, _ := s.snap.Catalog().Get(id)
			opts.Topics = append(opts.Topics, TopicOption{ID: id, Label: t.Label(), Count: count})
		}
	}
	for year, count := range yearCounts {
		opts.Years = append(opts.Years, YearOption{Year: year, Count: count})
	}
	sort.Slice(opts.Years, func(i, j int) bool { return opts.Years[i].Year < opts.Years[j].Year })
	for name, count := range journalCounts {
		opts.Journals = append(opts.Journals, JournalOption{Name: name, Count: count})
	}
	sort.Slice(opts.Journals, func(i, j int) bool {
		if opts.Journals[i].Count != opts.Journals[j].Count {
			return opts.Journals[i].Count > opts.Journals[j].Count
		}
		return opts.Journals[i].Name < opts.Journals[j].Name
	})
	return opts
}

// minSuggestionQuery is the shortest prefix worth suggesting for.
const minSuggestionQuery = 2

// Suggestions returns title fragments around matches of the partial
// query, for autocomplete. Deterministic: titles are scanned in table
// order and duplicates dropped.
func (s *Service) Suggestions(query string, limit int) []string {
	if utf8.RuneCountInString(query) < minSuggestionQuery || limit <= 0 {
		return []string{}
	}
	q := strings.ToLower(query)

	suggestions := make([]string, 0, limit)
	seen := make(map[string]struct{})
	for i := 0; i < s.snap.Len() && len(suggestions) < limit; i++ {
		title := s.snap.At(i).Title()
		if !strings.Contains(strings.ToLower(title), q) {
			continue
		}
		fragment := titleFragment(title, q)
		if fragment == "" {
			continue
		}
		if _, dup := seen[fragment]; dup {
			continue
		}
		seen[fragment] = struct{}{}
		suggestions = append(suggestions, fragment)
	}
	return suggestions
}

// titleFragment extracts the matched word with up to two words of
// context on each side.
func titleFragment(title, q string) string {
	words := strings.Fields(title)
	for i, w := range words {
		if !strings.Contains(strings.ToLower(w), q) {
			continue
		}
		start := i - 2
		if start < 0 {
			start = 0
		}
		end := i + 3
		if end > len(words) {
			end = len(words)
		}
		return strings.Join(words[start:end], " ")
	}
	return ""
}

// TopicDetail is the full per-topic summary for topic browsing.
type TopicDetail struct {
	ID           int      `json:"id"`
	Label        string   `json:"label"`
	TopWords     []string `json:"top_words"`
	ArticleCount int      `json:"article_count"`
}

// TopicInfo lists every catalog topic with its article count, most
// covered first, ties by ascending id.
func (s *Service) TopicInfo() []TopicDetail {
	counts := make(map[int]int)
	for i := 0; i < s.snap.Len(); i++ {
		if tid, ok := s.snap.At(i).Topic(); ok {
			counts[tid]++
		}
	}

	details := make([]TopicDetail, 0, s.snap.Catalog().Len())
	for _, id := range s.snap.Catalog().IDs() {
		t, _ := s.snap.Catalog().Get(id)
		details = append(details, TopicDetail{
			ID:           id,
			Label:        t.Label(),
			TopWords:     firstN(t.TopWords(), 10),
			ArticleCount: counts[id],
		})
	}
	sort.SliceStable(details, func(i, j int) bool {
		if details[i].ArticleCount != details[j].ArticleCount {
			return details[i].ArticleCount > details[j].ArticleCount
		}
		return details[i].ID < details[j].ID
	})
	return details
}
