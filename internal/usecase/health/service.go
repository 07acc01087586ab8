// Package health reports engine readiness: the corpus snapshot and the
// optional query-embedding provider.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates semantic ranking is unavailable.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Service coordinates health checks.
type Service struct {
	snap      Corpus
	embedding EmbeddingChecker
}

// New creates a Service. embedding can be nil when no provider is
// configured.
func New(snap Corpus, embedding EmbeddingChecker) *Service {
	return &Service{snap: snap, embedding: embedding}
}

// Check runs health checks against all components. A missing embedding
// capability degrades service, it does not fail it: queries still run
// lexical-only.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if s.snap != nil && s.snap.Len() > 0 {
		checks["corpus"] = CheckOK
	} else {
		checks["corpus"] = CheckError
		status = Degraded
	}

	if s.snap == nil || !s.snap.HasEmbeddings() {
		checks["embeddings"] = CheckError
		status = Degraded
	} else {
		checks["embeddings"] = CheckOK
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding_provider"] = CheckError
			status = Degraded
		} else {
			checks["embedding_provider"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
