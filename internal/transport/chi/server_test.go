package chi

import (
	"net/http"
	"testing"
)

func TestHandleSearch_OK(t *testing.T) {
	ts := newTestServer(t)

	var body searchResponseDTO
	status := getJSON(t, ts, "/api/v1/search?q=bone+loss&mode=lexical&limit=5", &body)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(body.Items) == 0 {
		t.Fatal("expected results")
	}
	if body.Items[0].Rank != 1 {
		t.Errorf("expected rank 1 first, got %d", body.Items[0].Rank)
	}
	if body.Items[0].Article.ID != 1 {
		t.Errorf("expected article 1 first, got %d", body.Items[0].Article.ID)
	}
	if body.Total < len(body.Items) {
		t.Errorf("total %d smaller than item count %d", body.Total, len(body.Items))
	}
}

func TestHandleSearch_Filters(t *testing.T) {
	ts := newTestServer(t)

	var body searchResponseDTO
	status := getJSON(t, ts, "/api/v1/search?q=bone&mode=lexical&topics=0&year_from=2019", &body)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	for _, item := range body.Items {
		if item.Article.ID != 2 {
			t.Errorf("unexpected article %d for topic 0 from 2019", item.Article.ID)
		}
	}
}

func TestHandleSearch_InvalidMode(t *testing.T) {
	ts := newTestServer(t)

	var body errorResponse
	status := getJSON(t, ts, "/api/v1/search?q=bone&mode=fuzzy", &body)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body.Code != "invalid_query" {
		t.Errorf("unexpected error code %q", body.Code)
	}
}

func TestHandleSearch_BadLimit(t *testing.T) {
	ts := newTestServer(t)

	status := getJSON(t, ts, "/api/v1/search?q=bone&limit=abc", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}

	status = getJSON(t, ts, "/api/v1/search?q=bone&limit=-1", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative limit, got %d", status)
	}
}

func TestHandleArticle(t *testing.T) {
	ts := newTestServer(t)

	var body articleDTO
	status := getJSON(t, ts, "/api/v1/articles/1", &body)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body.ID != 1 || body.Title != "Microgravity bone loss" {
		t.Errorf("unexpected article: %+v", body)
	}
	if body.Topic == nil || *body.Topic != 0 {
		t.Errorf("expected topic 0, got %v", body.Topic)
	}
}

func TestHandleArticle_NotFound(t *testing.T) {
	ts := newTestServer(t)

	var body errorResponse
	status := getJSON(t, ts, "/api/v1/articles/999", &body)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if body.Code != "record_not_found" {
		t.Errorf("unexpected error code %q", body.Code)
	}
}

func TestHandleArticle_BadID(t *testing.T) {
	ts := newTestServer(t)

	status := getJSON(t, ts, "/api/v1/articles/abc", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestHandleSimilar(t *testing.T) {
	ts := newTestServer(t)

	var body searchResponseDTO
	status := getJSON(t, ts, "/api/v1/articles/1/similar", &body)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	for _, item := range body.Items {
		if item.Article.ID == 1 {
			t.Error("source article appeared in its own similarity results")
		}
	}
	if len(body.Items) == 0 || body.Items[0].Article.ID != 2 {
		t.Errorf("expected article 2 first, got %+v", body.Items)
	}
}

func TestHandleSimilar_NotFound(t *testing.T) {
	ts := newTestServer(t)

	status := getJSON(t, ts, "/api/v1/articles/999/similar", nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestHandleStatistics(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]any
	status := getJSON(t, ts, "/api/v1/statistics", &body)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["total_records"] != float64(3) {
		t.Errorf("expected total_records 3, got %v", body["total_records"])
	}
}

func TestHandleTopics(t *testing.T) {
	ts := newTestServer(t)

	var body []map[string]any
	status := getJSON(t, ts, "/api/v1/topics", &body)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(body) != 2 {
		t.Errorf("expected 2 topics, got %d", len(body))
	}
}

func TestHandleTrends_BadRange(t *testing.T) {
	ts := newTestServer(t)

	status := getJSON(t, ts, "/api/v1/trends?year_from=2020&year_to=2010", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", status)
	}
}

func TestHandleWordCloud(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]any
	status := getJSON(t, ts, "/api/v1/wordcloud", &body)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["label"] != "All Topics" {
		t.Errorf("expected all-topics cloud, got %v", body["label"])
	}

	status = getJSON(t, ts, "/api/v1/wordcloud?topic_id=42", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown topic, got %d", status)
	}
}

func TestHandleNetwork(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]any
	status := getJSON(t, ts, "/api/v1/network?min_frequency=1", &body)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["kind"] != "word_cooccurrence" {
		t.Errorf("expected default network kind, got %v", body["kind"])
	}

	status = getJSON(t, ts, "/api/v1/network?type=friendship", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown network type, got %d", status)
	}
}

func TestHandleFilters(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]any
	status := getJSON(t, ts, "/api/v1/filters", &body)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	for _, key := range []string{"topics", "years", "journals"} {
		if _, ok := body[key]; !ok {
			t.Errorf("missing %q in filter options", key)
		}
	}
}

func TestHandleSuggestions(t *testing.T) {
	ts := newTestServer(t)

	var body suggestionsDTO
	status := getJSON(t, ts, "/api/v1/suggestions?q=bone", &body)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body.Query != "bone" {
		t.Errorf("expected echoed query, got %q", body.Query)
	}
	if len(body.Suggestions) == 0 {
		t.Error("expected suggestions")
	}
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]any
	status := getJSON(t, ts, "/healthz", &body)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["status"] == "" {
		t.Error("expected health status")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	status := getJSON(t, ts, "/metrics", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
}
