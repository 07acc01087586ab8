package search

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/stellarpress/biolit/internal/domain"
	"github.com/stellarpress/biolit/internal/domain/record"
	"github.com/stellarpress/biolit/internal/domain/topic"
	"github.com/stellarpress/biolit/internal/snapshot"
)

// --- Fixtures ---

func intPtr(v int) *int { return &v }

func mustRecord(t *testing.T, p record.Params) record.Record {
	t.Helper()
	r, err := record.New(p)
	if err != nil {
		t.Fatalf("record.New: %v", err)
	}
	return r
}

func testCatalog(t *testing.T) *topic.Catalog {
	t.Helper()
	t0, _ := topic.New(0, "Bone Biology", []string{"bone", "density", "loss"})
	t1, _ := topic.New(1, "Spaceflight Biology", []string{"plant", "growth", "radiation"})
	cat, err := topic.NewCatalog([]topic.Topic{t0, t1})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return cat
}

// testSnapshot builds a five-record corpus with 3-dimensional unit
// embeddings. Record 1 is the (1,0,0) anchor; record 2 is closest to it.
func testSnapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	recs := []record.Record{
		mustRecord(t, record.Params{
			ID: 1, Title: "Microgravity bone loss",
			CleanText: "microgravity bone loss density",
			WordCount: 1200, Topic: intPtr(0), Year: intPtr(2018), Journal: "PLOS ONE",
			Vector: []float64{1, 0, 0},
		}),
		mustRecord(t, record.Params{
			ID: 2, Title: "Bone density recovery",
			CleanText: "bone density recovery exercise",
			WordCount: 800, Topic: intPtr(0), Year: intPtr(2020), Journal: "Bone",
			Vector: []float64{0.8, 0.6, 0},
		}),
		mustRecord(t, record.Params{
			ID: 3, Title: "Radiation shielding materials",
			CleanText: "radiation shielding materials dose",
			WordCount: 1500, Topic: intPtr(1), Year: intPtr(2019), Journal: "Life Sciences",
			Vector: []float64{0, 1, 0},
		}),
		mustRecord(t, record.Params{
			ID: 4, Title: "Plant growth in spaceflight",
			CleanText: "plant growth spaceflight light",
			WordCount: 600, Topic: intPtr(1), Year: intPtr(2021), Journal: "PLOS ONE",
			Vector: []float64{0, 0, 1},
		}),
		mustRecord(t, record.Params{
			ID: 5, Title: "Unclassified microgravity notes",
			CleanText: "microgravity notes assorted",
			WordCount: 300,
			Vector:    []float64{0.6, 0, 0.8},
		}),
	}
	snap, err := snapshot.New(recs, testCatalog(t), 0)
	if err != nil {
		t.Fatalf("snapshot.New: %v", err)
	}
	return snap
}

// lexicalSnapshot has no embeddings artifact at all.
func lexicalSnapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	recs := []record.Record{
		mustRecord(t, record.Params{
			ID: 1, Title: "Microgravity bone loss",
			CleanText: "microgravity bone loss density",
			WordCount: 1200, Topic: intPtr(0), Year: intPtr(2018),
		}),
		mustRecord(t, record.Params{
			ID: 2, Title: "Bone density recovery",
			CleanText: "bone density recovery exercise",
			WordCount: 800, Topic: intPtr(0), Year: intPtr(2020),
		}),
		mustRecord(t, record.Params{
			ID: 3, Title: "Radiation shielding materials",
			CleanText: "radiation shielding materials dose",
			WordCount: 1500, Topic: intPtr(1), Year: intPtr(2019),
		}),
	}
	snap, err := snapshot.New(recs, testCatalog(t), 0)
	if err != nil {
		t.Fatalf("snapshot.New: %v", err)
	}
	return snap
}

// --- Mocks ---

type mockEmbedder struct {
	vec    []float32
	err    error
	called int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.called++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

func newTestService(t *testing.T, snap *snapshot.Snapshot, embed Embedder) *Service {
	t.Helper()
	return New(snap, embed, DefaultWeights, zap.NewNop())
}
