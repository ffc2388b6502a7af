package valkey

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/hydrex/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// DefaultKeyPrefix namespaces document keys and FT indexes.
const DefaultKeyPrefix = "hydrex:"

// Config holds connection parameters for a Valkey or Redis store.
type Config struct {
	Addrs      []string
	Username   string
	Password   string
	DB         int
	KeyPrefix  string // default DefaultKeyPrefix
	Standalone bool   // disable cluster topology discovery
}

// Store reads JSON documents and runs FT.SEARCH via rueidis.
// Works against Valkey with valkey-search/valkey-json and Redis 8+.
type Store struct {
	client rueidis.Client
	prefix string
}

// NewStore creates a store via rueidis.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:       cfg.Addrs,
		Username:          cfg.Username,
		Password:          cfg.Password,
		SelectDB:          cfg.DB,
		DisableCache:      true,
		AlwaysRESP2:       true, // FT.SEARCH result parsing expects RESP2 array format
		ForceSingleClient: cfg.Standalone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, prefix: prefixOrDefault(cfg.KeyPrefix)}, nil
}

func prefixOrDefault(p string) string {
	if p == "" {
		return DefaultKeyPrefix
	}
	return p
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	cmd := s.b().Ping().Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// documentKey returns the key of document id in index.
func (s *Store) documentKey(index, id string) string {
	return s.prefix + index + ":" + id
}

// indexName returns the FT index backing a logical index.
func (s *Store) indexName(index string) string {
	return s.prefix + index + ":idx"
}

func (s *Store) do(ctx context.Context, cmd rueidis.Completed) rueidis.RedisResult {
	return s.client.Do(ctx, cmd)
}

func (s *Store) b() rueidis.Builder {
	return s.client.B()
}

// isRedisErr checks if err is a server error containing substr (case-insensitive).
func isRedisErr(err error, substr string) bool {
	re, ok := rueidis.IsRedisErr(err)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(re.Error()), strings.ToLower(substr))
}
