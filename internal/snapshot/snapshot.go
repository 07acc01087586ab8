// Package snapshot loads the corpus artifacts produced by the offline
// preparation pipeline and holds them as immutable process-wide state.
// A snapshot is constructed once, fully, before it is published; it is
// never patched incrementally and is safe for concurrent readers.
package snapshot

import (
	"fmt"

	"github.com/stellarpress/biolit/internal/domain/record"
	"github.com/stellarpress/biolit/internal/domain/topic"
	"github.com/stellarpress/biolit/internal/index/term"
)

// Snapshot is the loaded corpus: records with their embeddings attached,
// the topic catalog, and the derived term index.
type Snapshot struct {
	records []record.Record
	byID    map[int]int
	catalog *topic.Catalog
	index   *term.Index
	dim     int
}

// New assembles and validates a snapshot from records and a catalog,
// building the term index over the records' cleaned text. Embeddings, if
// present, must be attached to every record with a single dimensionality;
// a partially embedded corpus is a construction error, not a query-time
// surprise.
func New(records []record.Record, catalog *topic.Catalog, maxVocabulary int) (*Snapshot, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("snapshot requires at least one record")
	}
	if catalog == nil {
		return nil, fmt.Errorf("snapshot requires a topic catalog")
	}

	byID := make(map[int]int, len(records))
	texts := make([]string, len(records))
	dim := len(records[0].Vector())
	for i := range records {
		id := records[i].ID()
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("duplicate record id %d", id)
		}
		byID[id] = i
		texts[i] = records[i].CleanText()

		if tid, ok := records[i].Topic(); ok {
			if _, known := catalog.Get(tid); !known {
				return nil, fmt.Errorf("record %d references unknown topic %d", id, tid)
			}
		}
		if len(records[i].Vector()) != dim {
			return nil, fmt.Errorf(
				"record %d embedding has %d dimensions, want %d",
				id, len(records[i].Vector()), dim,
			)
		}
	}

	return &Snapshot{
		records: records,
		byID:    byID,
		catalog: catalog,
		index:   term.Build(texts, maxVocabulary),
		dim:     dim,
	}, nil
}

// Get returns the record with the given id, nil when absent.
func (s *Snapshot) Get(id int) *record.Record {
	i, ok := s.byID[id]
	if !ok {
		return nil
	}
	return &s.records[i]
}

// Position returns the table position of the record with the given id.
func (s *Snapshot) Position(id int) (int, bool) {
	i, ok := s.byID[id]
	return i, ok
}

// At returns the record at table position i.
func (s *Snapshot) At(i int) *record.Record { return &s.records[i] }

// Len returns the number of records.
func (s *Snapshot) Len() int { return len(s.records) }

// Catalog returns the topic catalog.
func (s *Snapshot) Catalog() *topic.Catalog { return s.catalog }

// TermIndex returns the lexical term index. Row i corresponds to the
// record at table position i.
func (s *Snapshot) TermIndex() *term.Index { return s.index }

// HasEmbeddings reports whether the embeddings artifact was loaded.
func (s *Snapshot) HasEmbeddings() bool { return s.dim > 0 }

// Dim returns the embedding dimensionality, 0 without embeddings.
func (s *Snapshot) Dim() int { return s.dim }
