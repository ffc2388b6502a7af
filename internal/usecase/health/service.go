package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the engine answers but some indexes cannot be hydrated.
	Degraded Status = "degraded"
	// Unhealthy indicates the engine is unreachable.
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

// Component names used as Report.Checks keys.
const (
	ComponentEngine    = "engine"
	ComponentFactories = "factories"
)

// Report aggregates health check results.
type Report struct {
	Status           Status
	Checks           map[string]CheckResult
	MissingFactories []string
}

// Service coordinates health checks.
type Service struct {
	engine    EnginePinger
	factories FactoryAuditor
}

// New creates a Service. factories can be nil.
func New(engine EnginePinger, factories FactoryAuditor) *Service {
	return &Service{engine: engine, factories: factories}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)
	report := Report{Status: Healthy, Checks: checks}

	if s.factories != nil {
		report.MissingFactories = s.factories.MissingFactories()
		if len(report.MissingFactories) > 0 {
			checks[ComponentFactories] = CheckError
			report.Status = Degraded
		} else {
			checks[ComponentFactories] = CheckOK
		}
	}

	if err := s.engine.Ping(ctx); err != nil {
		checks[ComponentEngine] = CheckError
		report.Status = Unhealthy
	} else {
		checks[ComponentEngine] = CheckOK
	}

	return report
}
