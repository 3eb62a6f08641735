package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
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
	catalog    CatalogChecker
	vectorizer VectorizerChecker
}

// New creates a Service. vectorizer can be nil when the process runs
// on the local hashing vectorizer, which has nothing to probe.
func New(catalog CatalogChecker, vectorizer VectorizerChecker) *Service {
	return &Service{catalog: catalog, vectorizer: vectorizer}
}

// Check runs health checks against all components. An empty catalog
// counts as failing; the process can accept traffic but has nothing
// to search.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if scenarios, err := s.catalog.All(ctx); err != nil || len(scenarios) == 0 {
		checks["catalog"] = CheckError
	} else {
		checks["catalog"] = CheckOK
	}

	if s.vectorizer != nil {
		if err := s.vectorizer.HealthCheck(ctx); err != nil {
			checks["vectorizer"] = CheckError
		} else {
			checks["vectorizer"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
