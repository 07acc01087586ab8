package analytics

import (
	"testing"

	"go.uber.org/zap"

	"github.com/stellarpress/biolit/internal/domain/record"
	"github.com/stellarpress/biolit/internal/domain/topic"
	"github.com/stellarpress/biolit/internal/snapshot"
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

func testCatalog(t *testing.T) *topic.Catalog {
	t.Helper()
	t0, _ := topic.New(0, "Bone Biology", []string{"bone", "density", "loss", "recovery", "exercise", "calcium"})
	t1, _ := topic.New(1, "Radiation", []string{"radiation", "shielding", "dose", "exposure", "cosmic", "particle"})
	t2, _ := topic.New(2, "Plant Science", []string{"plant", "growth", "root", "light", "seed", "gravitropism"})
	cat, err := topic.NewCatalog([]topic.Topic{t0, t1, t2})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return cat
}

// testService builds an eight-record corpus: five classified across
// topics 0 and 1 (topic 2 has no articles), five with years, three with
// neither topic nor year.
func testService(t *testing.T) *Service {
	t.Helper()
	recs := []record.Record{
		mustRecord(t, record.Params{
			ID: 1, Title: "Bone loss in microgravity",
			CleanText: "bone loss microgravity bone density",
			WordCount: 1000, Topic: intPtr(0), Year: intPtr(2018), Journal: "PLOS ONE",
		}),
		mustRecord(t, record.Params{
			ID: 2, Title: "Bone density recovery after flight",
			CleanText: "bone density recovery exercise",
			WordCount: 800, Topic: intPtr(0), Year: intPtr(2018), Journal: "Bone",
		}),
		mustRecord(t, record.Params{
			ID: 3, Title: "Calcium signaling in bone cells",
			CleanText: "calcium signaling bone cells",
			WordCount: 1200, Topic: intPtr(0), Year: intPtr(2020), Journal: "PLOS ONE",
		}),
		mustRecord(t, record.Params{
			ID: 4, Title: "Radiation shielding for deep space",
			CleanText: "radiation shielding deep space dose",
			WordCount: 1500, Topic: intPtr(1), Year: intPtr(2020), Journal: "Life Sciences",
		}),
		mustRecord(t, record.Params{
			ID: 5, Title: "Cosmic radiation exposure limits",
			CleanText: "cosmic radiation exposure limits",
			WordCount: 500, Topic: intPtr(1), Year: intPtr(2021), Journal: "Life Sciences",
		}),
		mustRecord(t, record.Params{
			ID: 6, Title: "Assorted mission notes",
			CleanText: "assorted mission notes",
			WordCount: 200, Journal: "PLOS ONE",
		}),
		mustRecord(t, record.Params{
			ID: 7, Title: "Archive fragment",
			CleanText: "archive fragment bone",
			WordCount: 100,
		}),
		mustRecord(t, record.Params{
			ID: 8, Title: "Unprocessed scan",
			CleanText: "unprocessed scan",
			WordCount: 300,
		}),
	}
	snap, err := snapshot.New(recs, testCatalog(t), 0)
	if err != nil {
		t.Fatalf("snapshot.New: %v", err)
	}
	return New(snap, DefaultLimits, zap.NewNop())
}
