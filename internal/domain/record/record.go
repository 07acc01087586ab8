// Package record defines the corpus entry value type.
package record

import "fmt"

// Record is one corpus article. Topic and year are optional: parts of the
// corpus were never classified or carry no recoverable publication year,
// and aggregation logic must branch on presence explicitly.
type Record struct {
	id        int
	title     string
	text      string
	cleanText string
	wordCount int
	topic     *int
	year      *int
	journal   string
	link      string
	vector    []float64
}

// Params holds the attributes for constructing a Record.
type Params struct {
	ID        int
	Title     string
	Text      string
	CleanText string
	WordCount int
	Topic     *int
	Year      *int
	Journal   string
	Link      string
	// Vector is the record's dense embedding row, attached at snapshot
	// construction so the record and its embedding can never be resorted
	// independently. Nil when the corpus has no embeddings artifact.
	Vector []float64
}

// New validates and creates a Record.
func New(p Params) (Record, error) {
	if p.ID < 0 {
		return Record{}, fmt.Errorf("record id must be non-negative, got %d", p.ID)
	}
	if p.Title == "" {
		return Record{}, fmt.Errorf("record %d: title is required", p.ID)
	}
	if p.WordCount < 0 {
		return Record{}, fmt.Errorf("record %d: word count must be non-negative", p.ID)
	}
	return Record{
		id:        p.ID,
		title:     p.Title,
		text:      p.Text,
		cleanText: p.CleanText,
		wordCount: p.WordCount,
		topic:     p.Topic,
		year:      p.Year,
		journal:   p.Journal,
		link:      p.Link,
		vector:    p.Vector,
	}, nil
}

// ID returns the stable record identifier.
func (r *Record) ID() int { return r.id }

// Title returns the article title.
func (r *Record) Title() string { return r.title }

// Text returns the raw article text.
func (r *Record) Text() string { return r.text }

// CleanText returns the offline-cleaned article text.
func (r *Record) CleanText() string { return r.cleanText }

// WordCount returns the article word count.
func (r *Record) WordCount() int { return r.wordCount }

// Topic returns the precomputed topic id and whether the record was classified.
func (r *Record) Topic() (int, bool) {
	if r.topic == nil {
		return 0, false
	}
	return *r.topic, true
}

// Year returns the publication year and whether one is known.
func (r *Record) Year() (int, bool) {
	if r.year == nil {
		return 0, false
	}
	return *r.year, true
}

// Journal returns the journal name, empty when unknown.
func (r *Record) Journal() string { return r.journal }

// Link returns the article URI.
func (r *Record) Link() string { return r.link }

// Vector returns the record's dense embedding, nil when absent.
func (r *Record) Vector() []float64 { return r.vector }

// HasVector reports whether the record carries an embedding.
func (r *Record) HasVector() bool { return len(r.vector) > 0 }
