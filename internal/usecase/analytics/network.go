package analytics

import (
	"fmt"
	"sort"

	"github.com/stellarpress/biolit/internal/domain"
	"github.com/stellarpress/biolit/internal/text"
)

// Network graph kinds.
const (
	NetworkWordCooccurrence = "word_cooccurrence"
	NetworkTopicSimilarity  = "topic_similarity"
)

// cooccurrenceWindow pairs a term with up to this many following terms
// in the same title.
const cooccurrenceWindow = 4

// jaccardFloor is the minimum topic top-word overlap considered significant.
const jaccardFloor = 0.1

// Node is one graph vertex.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Size  int    `json:"size"`
}

// Edge is one weighted, undirected graph edge.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// Network is a capped node/edge graph for visualization.
type Network struct {
	Kind  string `json:"kind"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// BuildNetwork builds the requested graph kind with node and edge counts
// bounded by configuration.
func (s *Service) BuildNetwork(kind string, minFrequency, maxNodes int) (Network, error) {
	if minFrequency <= 0 {
		minFrequency = s.limits.MinEdgeFrequency
	}
	if maxNodes <= 0 || maxNodes > s.limits.MaxNodes {
		maxNodes = s.limits.MaxNodes
	}
	switch kind {
	case NetworkWordCooccurrence:
		return s.wordCooccurrence(minFrequency, maxNodes), nil
	case NetworkTopicSimilarity:
		return s.topicSimilarity(maxNodes), nil
	default:
		return Network{}, fmt.Errorf("%w: %q", domain.ErrUnknownNetworkType, kind)
	}
}

type termPair struct{ a, b string }

// wordCooccurrence links the most frequent title terms when they appear
// within the co-occurrence window of the same title.
func (s *Service) wordCooccurrence(minFrequency, maxNodes int) Network {
	termFreq := make(map[string]int)
	pairFreq := make(map[termPair]int)

	for i := 0; i < s.snap.Len(); i++ {
		terms := text.Tokenize(s.snap.At(i).Title())
		for _, t := range terms {
			termFreq[t]++
		}
		for j, a := range terms {
			end := j + 1 + cooccurrenceWindow
			if end > len(terms) {
				end = len(terms)
			}
			for _, b := range terms[j+1 : end] {
				if a == b {
					continue
				}
				p := termPair{a: a, b: b}
				if b < a {
					p = termPair{a: b, b: a}
				}
				pairFreq[p]++
			}
		}
	}

	frequent := make(map[string]int, len(termFreq))
	for t, c := range termFreq {
		if c >= minFrequency {
			frequent[t] = c
		}
	}
	top := topTerms(frequent, maxNodes)

	nodes := make([]Node, len(top))
	nodeSet := make(map[string]struct{}, len(top))
	for i, tf := range top {
		nodes[i] = Node{ID: tf.Term, Label: tf.Term, Size: tf.Count}
		nodeSet[tf.Term] = struct{}{}
	}

	edges := make([]Edge, 0, len(pairFreq))
	for p, count := range pairFreq {
		if _, ok := nodeSet[p.a]; !ok {
			continue
		}
		if _, ok := nodeSet[p.b]; !ok {
			continue
		}
		edges = append(edges, Edge{Source: p.a, Target: p.b, Weight: float64(count)})
	}
	edges = capEdges(edges, s.limits.MaxEdges)

	return Network{Kind: NetworkWordCooccurrence, Nodes: nodes, Edges: edges}
}

// topicSimilarity links catalog topics by Jaccard overlap of their
// representative terms.
func (s *Service) topicSimilarity(maxNodes int) Network {
	ids := s.snap.Catalog().IDs()
	if len(ids) > maxNodes {
		ids = ids[:maxNodes]
	}

	nodes := make([]Node, 0, len(ids))
	words := make(map[int]map[string]struct{}, len(ids))
	for _, id := range ids {
		t, _ := s.snap.Catalog().Get(id)
		set := make(map[string]struct{}, len(t.TopWords()))
		for _, w := range t.TopWords() {
			set[w] = struct{}{}
		}
		words[id] = set
		nodes = append(nodes, Node{
			ID:    fmt.Sprintf("topic_%d", id),
			Label: t.Label(),
			Size:  len(set),
		})
	}

	edges := make([]Edge, 0)
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			sim := jaccard(words[a], words[b])
			if sim > jaccardFloor {
				edges = append(edges, Edge{
					Source: fmt.Sprintf("topic_%d", a),
					Target: fmt.Sprintf("topic_%d", b),
					Weight: sim,
				})
			}
		}
	}
	edges = capEdges(edges, s.limits.MaxEdges)

	return Network{Kind: NetworkTopicSimilarity, Nodes: nodes, Edges: edges}
}

// capEdges keeps the heaviest edges, deterministic on weight ties.
func capEdges(edges []Edge, max int) []Edge {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Weight != edges[j].Weight {
			return edges[i].Weight > edges[j].Weight
		}
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	if len(edges) > max {
		edges = edges[:max]
	}
	return edges
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
