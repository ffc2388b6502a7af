package hydrex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/hydrex/internal/db"
	"github.com/kailas-cloud/hydrex/internal/db/elastic"
	dbValkey "github.com/kailas-cloud/hydrex/internal/db/valkey"
	"github.com/kailas-cloud/hydrex/internal/domain/mapping"
	"github.com/kailas-cloud/hydrex/internal/hydrate"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the hydrex SDK entry point.
// It owns the mapping registry, the factory table and the engine transport.
type Client struct {
	transport Transport
	store     db.Store // nil when a custom Transport is used
	registry  *mapping.Registry
	factories *hydrate.Factories
	obs       *observer
}

// New creates a hydrex Client.
// Built-in drivers are pinged until ready; a custom Transport is used as is.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{readinessTimeout: defaultReadinessTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	if cfg.transport != nil {
		return wireClient(cfg.transport, nil, cfg, obs), nil
	}
	if cfg.driver == "" {
		return nil, errors.New("hydrex: transport required (use WithElasticsearch, WithValkey, WithRedis or WithTransport)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("hydrex: engine not ready: %w", err)
	}

	return wireClient(store, store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "elasticsearch":
		s, err := elastic.NewStore(elastic.Config{
			Addrs:       cfg.addrs,
			Username:    cfg.username,
			Password:    cfg.password,
			APIKey:      cfg.apiKey,
			CloudID:     cfg.cloudID,
			IndexPrefix: cfg.indexPrefix,
			Transport:   cfg.httpTransport,
		})
		if err != nil {
			return nil, fmt.Errorf("hydrex: create elasticsearch store: %w", err)
		}
		return s, nil
	case "valkey", "redis":
		s, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:      cfg.addrs,
			Username:   cfg.username,
			Password:   cfg.password,
			KeyPrefix:  cfg.keyPrefix,
			Standalone: cfg.standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("hydrex: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("hydrex: %w %q", db.ErrUnknownDriver, cfg.driver)
	}
}

func wireClient(t Transport, store db.Store, cfg *clientConfig, obs *observer) *Client {
	registry := mapping.NewRegistry(cfg.mappings...)

	factories := hydrate.NewFactories()
	for _, f := range cfg.factories {
		factories.Register(f.domainKey, f.fn)
	}

	return &Client{
		transport: t,
		store:     store,
		registry:  registry,
		factories: factories,
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks engine connectivity.
// Custom transports are pinged only when they implement Ping(ctx) error.
func (c *Client) Ping(ctx context.Context) error {
	p, ok := c.transport.(db.Pinger)
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Registry returns the client's index <-> domain key table.
func (c *Client) Registry() *Registry {
	return c.registry
}

// MissingFactories lists mapped domain keys without a registered factory,
// in mapping order. Documents of their indexes fail with ErrMissingFactory.
func (c *Client) MissingFactories() []string {
	var missing []string
	seen := make(map[string]struct{})
	for _, e := range c.registry.Entries() {
		if _, ok := seen[e.DomainKey]; ok {
			continue
		}
		seen[e.DomainKey] = struct{}{}
		if _, ok := c.factories.Lookup(e.DomainKey); !ok {
			missing = append(missing, e.DomainKey)
		}
	}
	return missing
}

// IndexNameFor returns the index mapped to domainKey.
// A single leading `\` on domainKey is ignored.
func (c *Client) IndexNameFor(domainKey string) (string, error) {
	index, err := c.registry.ResolveIndex(domainKey)
	if err != nil {
		return "", fmt.Errorf("index name for %q: %w", domainKey, err)
	}
	return index, nil
}

// NewBuilder returns a fresh Builder over the client's registry and factories.
func (c *Client) NewBuilder() *Builder {
	return hydrate.NewBuilder(c.registry, c.factories)
}

// Index returns a facade bound to the logical index name.
// Each call returns a new facade with its own lazily built Builder.
func (c *Client) Index(name string) *Index {
	return &Index{
		name:       name,
		transport:  c.transport,
		newBuilder: c.NewBuilder,
		registry:   c.registry,
		obs:        c.obs,
	}
}
