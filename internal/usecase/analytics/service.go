// Package analytics computes corpus-wide aggregates from the snapshot:
// topic distribution, temporal trends, term frequencies, co-occurrence
// networks, and the bundled statistics endpoint.
package analytics

import (
	"go.uber.org/zap"

	"github.com/stellarpress/biolit/internal/snapshot"
)

// Limits bound analytics response sizes.
type Limits struct {
	MaxCloudTerms    int
	MaxNodes         int
	MaxEdges         int
	MinEdgeFrequency int
}

// DefaultLimits are the response-size bounds used when none are configured.
var DefaultLimits = Limits{
	MaxCloudTerms:    50,
	MaxNodes:         50,
	MaxEdges:         200,
	MinEdgeFrequency: 3,
}

// Service derives aggregates from the read-only snapshot. Safe for
// concurrent use.
type Service struct {
	snap   *snapshot.Snapshot
	limits Limits
	logger *zap.Logger
}

// New creates an analytics service.
func New(snap *snapshot.Snapshot, limits Limits, logger *zap.Logger) *Service {
	if limits.MaxCloudTerms <= 0 {
		limits.MaxCloudTerms = DefaultLimits.MaxCloudTerms
	}
	if limits.MaxNodes <= 0 {
		limits.MaxNodes = DefaultLimits.MaxNodes
	}
	if limits.MaxEdges <= 0 {
		limits.MaxEdges = DefaultLimits.MaxEdges
	}
	if limits.MinEdgeFrequency <= 0 {
		limits.MinEdgeFrequency = DefaultLimits.MinEdgeFrequency
	}
	return &Service{snap: snap, limits: limits, logger: logger}
}

// guard runs one sub-aggregate and converts a panic into a logged,
// omitted field instead of blanking the whole response.
func (s *Service) guard(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("analytics sub-aggregate failed",
				zap.String("aggregate", name), zap.Any("panic", r))
		}
	}()
	fn()
}
