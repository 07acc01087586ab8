// Package chi exposes the engine over HTTP. Routing is a thin wrapper:
// handlers parse parameters, call a usecase service, and serialize the
// answer; every decision lives below this layer.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/stellarpress/biolit/internal/domain"
	"github.com/stellarpress/biolit/internal/metrics"
	"github.com/stellarpress/biolit/internal/snapshot"
	analyticsuc "github.com/stellarpress/biolit/internal/usecase/analytics"
	healthuc "github.com/stellarpress/biolit/internal/usecase/health"
	searchuc "github.com/stellarpress/biolit/internal/usecase/search"
)

// Server handles the HTTP API.
type Server struct {
	snap      *snapshot.Snapshot
	search    *searchuc.Service
	analytics *analyticsuc.Service
	health    *healthuc.Service
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	snap *snapshot.Snapshot,
	search *searchuc.Service,
	analytics *analyticsuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		snap:      snap,
		search:    search,
		analytics: analytics,
		health:    health,
		logger:    logger,
	}
}

// Router assembles the chi router with middleware and all routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(metrics.Middleware())

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/articles/{id}", s.handleArticle)
		r.Get("/articles/{id}/similar", s.handleSimilar)
		r.Get("/statistics", s.handleStatistics)
		r.Get("/topics", s.handleTopicDistribution)
		r.Get("/topics/info", s.handleTopicInfo)
		r.Get("/trends", s.handleTrends)
		r.Get("/wordcloud", s.handleWordCloud)
		r.Get("/network", s.handleNetwork)
		r.Get("/filters", s.handleFilters)
		r.Get("/suggestions", s.handleSuggestions)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	status := http.StatusOK
	if report.Checks["corpus"] != healthuc.CheckOK {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// handleDomainError maps sentinel errors to HTTP statuses. Caller-fixable
// conditions carry their message through; everything else is opaque.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, "invalid_query", err.Error())
	case errors.Is(err, domain.ErrUnknownNetworkType):
		writeError(w, http.StatusBadRequest, "unknown_network_type", err.Error())
	case errors.Is(err, domain.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "record_not_found", domain.ErrRecordNotFound.Error())
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
