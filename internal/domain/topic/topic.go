// Package topic defines the precomputed topic catalog. Topics are fitted
// offline; the engine only reads the catalog, it never recomputes clusters.
package topic

import (
	"fmt"
	"sort"
)

// All is the sentinel topic id meaning "all topics combined".
const All = -1

// Topic is one catalog entry: a cluster label with its representative terms.
type Topic struct {
	id       int
	label    string
	topWords []string
}

// New validates and creates a Topic.
func New(id int, label string, topWords []string) (Topic, error) {
	if id < 0 {
		return Topic{}, fmt.Errorf("topic id must be non-negative, got %d", id)
	}
	if label == "" {
		label = fmt.Sprintf("Topic %d", id)
	}
	return Topic{id: id, label: label, topWords: topWords}, nil
}

// ID returns the topic identifier.
func (t *Topic) ID() int { return t.id }

// Label returns the human-readable topic label.
func (t *Topic) Label() string { return t.label }

// TopWords returns the ordered representative terms.
func (t *Topic) TopWords() []string { return t.topWords }

// Catalog is the read-only topic id to Topic mapping.
type Catalog struct {
	topics map[int]Topic
	ids    []int
}

// NewCatalog creates a Catalog from topics, rejecting duplicate ids.
func NewCatalog(topics []Topic) (*Catalog, error) {
	byID := make(map[int]Topic, len(topics))
	ids := make([]int, 0, len(topics))
	for _, t := range topics {
		if _, dup := byID[t.id]; dup {
			return nil, fmt.Errorf("duplicate topic id %d", t.id)
		}
		byID[t.id] = t
		ids = append(ids, t.id)
	}
	sort.Ints(ids)
	return &Catalog{topics: byID, ids: ids}, nil
}

// Get returns the topic for id.
func (c *Catalog) Get(id int) (Topic, bool) {
	t, ok := c.topics[id]
	return t, ok
}

// IDs returns all topic ids in ascending order.
func (c *Catalog) IDs() []int { return c.ids }

// Len returns the number of topics.
func (c *Catalog) Len() int { return len(c.topics) }
