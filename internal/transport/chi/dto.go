package chi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/stellarpress/biolit/internal/domain"
	"github.com/stellarpress/biolit/internal/domain/record"
	"github.com/stellarpress/biolit/internal/domain/search/filter"
	"github.com/stellarpress/biolit/internal/domain/search/result"
)

// articleDTO is the JSON shape of one record.
type articleDTO struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Link      string `json:"link,omitempty"`
	Journal   string `json:"journal,omitempty"`
	WordCount int    `json:"word_count"`
	Topic     *int   `json:"topic,omitempty"`
	Year      *int   `json:"year,omitempty"`
}

func articleToDTO(rec *record.Record) articleDTO {
	dto := articleDTO{
		ID:        rec.ID(),
		Title:     rec.Title(),
		Link:      rec.Link(),
		Journal:   rec.Journal(),
		WordCount: rec.WordCount(),
	}
	if tid, ok := rec.Topic(); ok {
		dto.Topic = &tid
	}
	if year, ok := rec.Year(); ok {
		dto.Year = &year
	}
	return dto
}

// resultItemDTO is one ranked hit.
type resultItemDTO struct {
	Rank         int        `json:"rank"`
	Score        float64    `json:"score"`
	MatchedTerms []string   `json:"matched_terms,omitempty"`
	Article      articleDTO `json:"article"`
}

// searchResponseDTO is the ranked result envelope.
type searchResponseDTO struct {
	Items   []resultItemDTO `json:"items"`
	Total   int             `json:"total"`
	Warning string          `json:"warning,omitempty"`
}

func itemsToDTO(items []result.Item) []resultItemDTO {
	out := make([]resultItemDTO, len(items))
	for i := range items {
		out[i] = resultItemDTO{
			Rank:         items[i].Rank(),
			Score:        items[i].Score(),
			MatchedTerms: items[i].MatchedTerms(),
			Article:      articleToDTO(items[i].Record()),
		}
	}
	return out
}

// parseFilters builds the structured filter set from query parameters:
// topics (csv ids), year_from/year_to, min_words/max_words, journals (csv).
func parseFilters(q url.Values) (filter.Set, error) {
	var p filter.Params

	if raw := q.Get("topics"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return filter.Set{}, fmt.Errorf("%w: bad topic id %q", domain.ErrInvalidQuery, part)
			}
			p.Topics = append(p.Topics, id)
		}
	}
	if raw := q.Get("journals"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if j := strings.TrimSpace(part); j != "" {
				p.Journals = append(p.Journals, j)
			}
		}
	}

	yearRange, err := parseRange(q, "year_from", "year_to")
	if err != nil {
		return filter.Set{}, err
	}
	p.YearRange = yearRange

	wordRange, err := parseRange(q, "min_words", "max_words")
	if err != nil {
		return filter.Set{}, err
	}
	p.WordRange = wordRange

	set, err := filter.New(p)
	if err != nil {
		return filter.Set{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}
	return set, nil
}

func parseRange(q url.Values, loKey, hiKey string) (*filter.Range, error) {
	lo, err := optionalInt(q, loKey)
	if err != nil {
		return nil, err
	}
	hi, err := optionalInt(q, hiKey)
	if err != nil {
		return nil, err
	}
	if lo == nil && hi == nil {
		return nil, nil
	}
	r, err := filter.NewRange(lo, hi)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}
	return &r, nil
}

func optionalInt(q url.Values, key string) (*int, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer, got %q", domain.ErrInvalidQuery, key, raw)
	}
	return &v, nil
}

func intParam(q url.Values, key string, fallback int) (int, error) {
	v, err := optionalInt(q, key)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return fallback, nil
	}
	return *v, nil
}

func floatParam(q url.Values, key string, fallback float64) (float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", domain.ErrInvalidQuery, key, raw)
	}
	return v, nil
}
