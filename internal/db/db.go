package db

import (
	"context"
	"time"

	"github.com/kailas-cloud/hydrex/internal/domain"
)

// Store is a search-engine connection: documents by id plus ranked search.
type Store interface {
	Pinger
	DocumentFetcher
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks engine connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DocumentFetcher loads a single raw document.
// Implementations return an error matching domain.ErrDocumentNotFound when absent.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, index, id string) (*domain.RawDocument, error)
}

// Searcher executes an engine-native query against one index.
// Hits must be returned in the engine's ranking order.
type Searcher interface {
	ExecuteSearch(ctx context.Context, index, query string, opts domain.SearchOptions) (*domain.Response, error)
}
