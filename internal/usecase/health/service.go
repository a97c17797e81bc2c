// Package health aggregates dependency checks for the health endpoint.
package health

import "context"

// DBPinger checks storage connectivity.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// Report is one health snapshot. Status is "healthy" only when every
// component is up; individual component values are "up" or the error text.
type Report struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Healthy reports whether all components passed.
func (r Report) Healthy() bool { return r.Status == "healthy" }

// Service runs the checks.
type Service struct {
	db    DBPinger
	embed EmbeddingChecker
}

// New creates a health service. Either dependency may be nil, in which
// case its check is skipped.
func New(db DBPinger, embed EmbeddingChecker) *Service {
	return &Service{db: db, embed: embed}
}

// Check pings every registered component and aggregates the result.
func (s *Service) Check(ctx context.Context) Report {
	components := make(map[string]string)
	healthy := true

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			components["database"] = err.Error()
			healthy = false
		} else {
			components["database"] = "up"
		}
	}
	if s.embed != nil {
		if err := s.embed.HealthCheck(ctx); err != nil {
			components["embeddings"] = err.Error()
			healthy = false
		} else {
			components["embeddings"] = "up"
		}
	}

	status := "healthy"
	if !healthy {
		status = "degraded"
	}
	return Report{Status: status, Components: components}
}
