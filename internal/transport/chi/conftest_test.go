package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/stellarpress/biolit/internal/domain"
	"github.com/stellarpress/biolit/internal/domain/record"
	"github.com/stellarpress/biolit/internal/domain/topic"
	"github.com/stellarpress/biolit/internal/snapshot"
	analyticsuc "github.com/stellarpress/biolit/internal/usecase/analytics"
	healthuc "github.com/stellarpress/biolit/internal/usecase/health"
	searchuc "github.com/stellarpress/biolit/internal/usecase/search"
)

func intPtr(v int) *int { return &v }

func mustRecord(t *testing.T, p record.Params) record.Record {
	t.Helper()
	r, err := record.New(p)
	if err != nil {
		t.Fatalf("record.New: %v", err)
	}
	return r
}

func testSnapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	t0, _ := topic.New(0, "Bone Biology", []string{"bone", "density", "loss"})
	t1, _ := topic.New(1, "Radiation", []string{"radiation", "shielding", "dose"})
	cat, err := topic.NewCatalog([]topic.Topic{t0, t1})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	recs := []record.Record{
		mustRecord(t, record.Params{
			ID: 1, Title: "Microgravity bone loss",
			CleanText: "microgravity bone loss density",
			WordCount: 1200, Topic: intPtr(0), Year: intPtr(2018), Journal: "PLOS ONE",
			Link:   "https://example.org/1",
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
	}
	snap, err := snapshot.New(recs, cat, 0)
	if err != nil {
		t.Fatalf("snapshot.New: %v", err)
	}
	return snap
}

type stubEmbedder struct {
	vec []float32
	err error
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if s.err != nil {
		return domain.EmbeddingResult{}, s.err
	}
	return domain.EmbeddingResult{Embedding: s.vec}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	snap := testSnapshot(t)
	logger := zap.NewNop()

	searchSvc := searchuc.New(snap, &stubEmbedder{vec: []float32{1, 0, 0}}, searchuc.DefaultWeights, logger)
	analyticsSvc := analyticsuc.New(snap, analyticsuc.DefaultLimits, logger)
	healthSvc := healthuc.New(snap, nil)

	srv := NewServer(snap, searchSvc, analyticsSvc, healthSvc, logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, ts *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.StatusCode
}
