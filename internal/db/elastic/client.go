// Package elastic implements db.Store on top of Elasticsearch.
//
// Logical index names are mapped to physical ones with an optional prefix;
// hits coming back from time-suffixed physical indexes (`todo_2025-03-01-101500`)
// are reported under their logical name so they resolve in the mapping registry.
package elastic

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/kailas-cloud/hydrex/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for an Elasticsearch cluster.
type Config struct {
	Addrs       []string
	Username    string
	Password    string
	APIKey      string
	CloudID     string
	IndexPrefix string            // prepended to every logical index name
	Transport   http.RoundTripper // optional, defaults to http.DefaultTransport
}

// Store fetches documents and runs searches through the Elasticsearch REST API.
type Store struct {
	es     *elasticsearch.Client
	prefix string
}

// NewStore creates an Elasticsearch store.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 && cfg.CloudID == "" {
		return nil, fmt.Errorf("addrs or cloud id is required")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addrs,
		Username:  cfg.Username,
		Password:  cfg.Password,
		APIKey:    cfg.APIKey,
		CloudID:   cfg.CloudID,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{es: es, prefix: cfg.IndexPrefix}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	res, err := s.es.Ping(s.es.Ping.WithContext(ctx))
	if err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		return &db.Error{Op: db.OpPing, Err: fmt.Errorf("status %d", res.StatusCode)}
	}
	return nil
}

// Close is a no-op: the underlying HTTP transport owns no long-lived resources.
func (s *Store) Close() {}

// WaitForReady polls Ping until the cluster responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for elasticsearch: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
