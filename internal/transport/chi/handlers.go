package chi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stellarpress/biolit/internal/domain"
	"github.com/stellarpress/biolit/internal/domain/search/mode"
	"github.com/stellarpress/biolit/internal/domain/search/request"
	"github.com/stellarpress/biolit/internal/metrics"
)

// handleSearch serves GET /api/v1/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters, err := parseFilters(q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	limit, err := intParam(q, "limit", 0)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	minScore, err := floatParam(q, "min_score", 0)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	req, err := request.New(
		q.Get("q"),
		mode.Mode(q.Get("mode")),
		filters,
		limit,
		minScore,
		q.Get("drop_zero") == "true",
	)
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues(q.Get("mode"), "rejected").Inc()
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.search.Search(r.Context(), &req)
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues(string(req.Mode()), "error").Inc()
		s.handleDomainError(w, err)
		return
	}
	metrics.SearchQueriesTotal.WithLabelValues(string(req.Mode()), "ok").Inc()
	if resp.Degraded {
		metrics.SearchDegradedTotal.Inc()
	}

	writeJSON(w, http.StatusOK, searchResponseDTO{
		Items:   itemsToDTO(resp.Items),
		Total:   resp.Total,
		Warning: resp.Warning,
	})
}

// handleArticle serves GET /api/v1/articles/{id}.
func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_query", "article id must be an integer")
		return
	}
	rec := s.snap.Get(id)
	if rec == nil {
		writeError(w, http.StatusNotFound, "record_not_found", domain.ErrRecordNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, articleToDTO(rec))
}

// handleSimilar serves GET /api/v1/articles/{id}/similar.
func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_query", "article id must be an integer")
		return
	}
	q := r.URL.Query()

	filters, err := parseFilters(q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	limit, err := intParam(q, "limit", 0)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	minScore, err := floatParam(q, "min_score", 0)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	req, err := request.NewSimilar(id, filters, limit, minScore)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp, err := s.search.Similar(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if resp.Degraded {
		metrics.SearchDegradedTotal.Inc()
	}

	writeJSON(w, http.StatusOK, searchResponseDTO{
		Items:   itemsToDTO(resp.Items),
		Total:   resp.Total,
		Warning: resp.Warning,
	})
}
