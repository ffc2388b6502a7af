package hydrex

import (
	"context"

	"github.com/kailas-cloud/hydrex/internal/domain"
	"github.com/kailas-cloud/hydrex/internal/domain/mapping"
	"github.com/kailas-cloud/hydrex/internal/hydrate"
)

type (
	// RawDocument is a document as the engine stores it.
	RawDocument = domain.RawDocument
	// RawHit is one ranked match of a search response.
	RawHit = domain.Hit
	// Response is an engine search response, hits in ranking order.
	Response = domain.Response
	// Result pairs a hydrated model with the hit it came from.
	Result = domain.Result
	// SearchOptions carries paging passed through to the engine.
	SearchOptions = domain.SearchOptions
	// MappingEntry binds an index name to a domain key.
	MappingEntry = mapping.Entry
	// Registry is the index <-> domain key table.
	Registry = mapping.Registry
	// Factory builds a domain object from a raw payload.
	Factory = hydrate.Factory
	// Builder hydrates documents through a Registry and a factory table.
	Builder = hydrate.Builder
	// RawBuilder returns source maps instead of hydrated models.
	RawBuilder = hydrate.RawBuilder
)

// Transport fetches raw documents and executes engine-native searches.
// FetchDocument must return an error matching ErrDocumentNotFound when absent.
type Transport interface {
	FetchDocument(ctx context.Context, index, id string) (*RawDocument, error)
	ExecuteSearch(ctx context.Context, index, query string, opts SearchOptions) (*Response, error)
}

// ResultSetBuilder turns a search response into ordered results.
// *Builder and RawBuilder both implement it.
type ResultSetBuilder interface {
	BuildResultSet(resp *Response) ([]Result, error)
}

// NewRegistry creates a standalone mapping table, e.g. for tooling that
// resolves names without an engine connection.
func NewRegistry(entries ...MappingEntry) *Registry {
	return mapping.NewRegistry(entries...)
}

// DecodeFactory returns a Factory decoding payloads into T by `json` tags.
func DecodeFactory[T any]() Factory {
	return hydrate.DecodeFactory[T]()
}
