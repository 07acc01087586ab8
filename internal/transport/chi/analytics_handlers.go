package chi

import (
	"net/http"

	"github.com/stellarpress/biolit/internal/domain/topic"
	analyticsuc "github.com/stellarpress/biolit/internal/usecase/analytics"
)

// handleStatistics serves GET /api/v1/statistics.
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.analytics.Statistics())
}

// handleTopicDistribution serves GET /api/v1/topics.
func (s *Server) handleTopicDistribution(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.analytics.TopicDistribution())
}

// handleTopicInfo serves GET /api/v1/topics/info.
func (s *Server) handleTopicInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.analytics.TopicInfo())
}

// handleTrends serves GET /api/v1/trends.
func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	yearRange, err := parseRange(r.URL.Query(), "year_from", "year_to")
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.analytics.TemporalTrends(yearRange))
}

// handleWordCloud serves GET /api/v1/wordcloud. topic_id defaults to the
// all-topics sentinel.
func (s *Server) handleWordCloud(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	topicID, err := intParam(q, "topic_id", topic.All)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	maxTerms, err := intParam(q, "max_terms", 0)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	cloud, err := s.analytics.WordCloud(topicID, maxTerms)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cloud)
}

// handleNetwork serves GET /api/v1/network.
func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind := q.Get("type")
	if kind == "" {
		kind = analyticsuc.NetworkWordCooccurrence
	}
	minFreq, err := intParam(q, "min_frequency", 0)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	maxNodes, err := intParam(q, "max_nodes", 0)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	network, err := s.analytics.BuildNetwork(kind, minFreq, maxNodes)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, network)
}

// handleFilters serves GET /api/v1/filters.
func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.analytics.AvailableFilters())
}

// suggestionsDTO is the autocomplete envelope.
type suggestionsDTO struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// handleSuggestions serves GET /api/v1/suggestions.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam(q, "limit", 10)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	query := q.Get("q")
	writeJSON(w, http.StatusOK, suggestionsDTO{
		Query:       query,
		Suggestions: s.analytics.Suggestions(query, limit),
	})
}
