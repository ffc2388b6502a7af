package health

import "context"

// EnginePinger checks search engine availability.
type EnginePinger interface {
	Ping(ctx context.Context) error
}

// FactoryAuditor reports mapped domain keys that cannot be hydrated.
type FactoryAuditor interface {
	MissingFactories() []string
}
