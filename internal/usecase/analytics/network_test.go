package analytics

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/stellarpress/biolit/internal/domain"
	"github.com/stellarpress/biolit/internal/domain/record"
	"github.com/stellarpress/biolit/internal/domain/topic"
	"github.com/stellarpress/biolit/internal/snapshot"
)

func TestBuildNetwork_UnknownKind(t *testing.T) {
	svc := testService(t)

	_, err := svc.BuildNetwork("friendship", 0, 0)
	if !errors.Is(err, domain.ErrUnknownNetworkType) {
		t.Fatalf("expected ErrUnknownNetworkType, got %v", err)
	}
}

func TestBuildNetwork_WordCooccurrence(t *testing.T) {
	svc := testService(t)

	net, err := svc.BuildNetwork(NetworkWordCooccurrence, 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if net.Kind != NetworkWordCooccurrence {
		t.Errorf("unexpected kind %q", net.Kind)
	}
	if len(net.Nodes) == 0 {
		t.Fatal("expected nodes")
	}

	nodeSet := make(map[string]struct{}, len(net.Nodes))
	for _, n := range net.Nodes {
		nodeSet[n.ID] = struct{}{}
		if n.Size <= 0 {
			t.Errorf("node %q has non-positive size", n.ID)
		}
	}
	// "bone" appears in three titles and must be the largest node.
	if net.Nodes[0].ID != "bone" || net.Nodes[0].Size != 3 {
		t.Errorf("expected leading node bone/3, got %s/%d", net.Nodes[0].ID, net.Nodes[0].Size)
	}

	if len(net.Edges) == 0 {
		t.Fatal("expected edges between co-occurring title terms")
	}
	for _, e := range net.Edges {
		if _, ok := nodeSet[e.Source]; !ok {
			t.Errorf("edge source %q is not a node", e.Source)
		}
		if _, ok := nodeSet[e.Target]; !ok {
			t.Errorf("edge target %q is not a node", e.Target)
		}
		if e.Weight <= 0 {
			t.Errorf("edge %s-%s has non-positive weight", e.Source, e.Target)
		}
	}
}

func TestBuildNetwork_MinFrequencyPrunes(t *testing.T) {
	svc := testService(t)

	net, err := svc.BuildNetwork(NetworkWordCooccurrence, 3, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Only "bone" reaches frequency 3 in titles; a single node can have
	// no edges.
	if len(net.Nodes) != 1 || net.Nodes[0].ID != "bone" {
		t.Fatalf("expected single node bone, got %+v", net.Nodes)
	}
	if len(net.Edges) != 0 {
		t.Errorf("expected no edges, got %d", len(net.Edges))
	}
}

func TestBuildNetwork_MaxNodesCap(t *testing.T) {
	svc := testService(t)

	net, err := svc.BuildNetwork(NetworkWordCooccurrence, 1, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(net.Nodes) > 4 {
		t.Errorf("expected at most 4 nodes, got %d", len(net.Nodes))
	}
}

func TestBuildNetwork_TopicSimilarity(t *testing.T) {
	// Topics with overlapping representative terms.
	t0, _ := topic.New(0, "Bone Loss", []string{"bone", "density", "loss", "calcium"})
	t1, _ := topic.New(1, "Bone Recovery", []string{"bone", "density", "recovery", "exercise"})
	t2, _ := topic.New(2, "Plant Science", []string{"plant", "root", "seed", "light"})
	cat, err := topic.NewCatalog([]topic.Topic{t0, t1, t2})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	recs := []record.Record{
		mustRecord(t, record.Params{ID: 1, Title: "a", CleanText: "alpha", Topic: intPtr(0)}),
	}
	snap, err := snapshot.New(recs, cat, 0)
	if err != nil {
		t.Fatalf("snapshot.New: %v", err)
	}
	svc := New(snap, DefaultLimits, zap.NewNop())

	net, err := svc.BuildNetwork(NetworkTopicSimilarity, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(net.Nodes) != 3 {
		t.Fatalf("expected one node per catalog topic, got %d", len(net.Nodes))
	}
	// Topics 0 and 1 share 2 of 6 distinct terms (Jaccard 1/3); topic 2
	// overlaps nothing.
	if len(net.Edges) != 1 {
		t.Fatalf("expected a single edge, got %d", len(net.Edges))
	}
	e := net.Edges[0]
	if e.Source != "topic_0" || e.Target != "topic_1" {
		t.Errorf("unexpected edge %s-%s", e.Source, e.Target)
	}
	if e.Weight <= 0.1 {
		t.Errorf("expected weight above the overlap floor, got %f", e.Weight)
	}
}
