package hydrex

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type factoryEntry struct {
	domainKey string
	fn        Factory
}

type clientConfig struct {
	driver   string // "elasticsearch", "valkey" or "redis"
	addrs    []string
	username string
	password string

	// elasticsearch
	apiKey        string
	cloudID       string
	indexPrefix   string
	httpTransport http.RoundTripper

	// valkey / redis
	keyPrefix  string
	standalone bool

	transport        Transport
	readinessTimeout time.Duration

	mappings  []MappingEntry
	factories []factoryEntry

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithElasticsearch configures the client to talk to an Elasticsearch cluster.
func WithElasticsearch(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "elasticsearch"
		c.addrs = addrs
	})
}

// WithElasticCloud configures an Elastic Cloud deployment by cloud id and API key.
func WithElasticCloud(cloudID, apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "elasticsearch"
		c.cloudID = cloudID
		c.apiKey = apiKey
	})
}

// WithBasicAuth sets the username and password sent to the engine.
func WithBasicAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithAPIKey sets the Elasticsearch API key.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = key
	})
}

// WithIndexPrefix prepends prefix to every Elasticsearch index name.
func WithIndexPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.indexPrefix = prefix
	})
}

// WithHTTPTransport replaces the HTTP round tripper of the Elasticsearch client.
func WithHTTPTransport(rt http.RoundTripper) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpTransport = rt
	})
}

// WithValkey configures the client to connect to a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithStandalone disables cluster topology discovery.
// Use for standalone Valkey/Redis instances (not managed by cluster operator).
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithKeyPrefix sets the Valkey/Redis key namespace. Default: "hydrex:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithTransport plugs in a custom engine client.
// It takes precedence over driver options and is never pinged at construction.
func WithTransport(t Transport) Option {
	return optionFunc(func(c *clientConfig) {
		c.transport = t
	})
}

// WithReadinessTimeout bounds the wait for the engine at construction. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithMapping maps index to domainKey.
// Later mappings for the same index overwrite earlier ones.
func WithMapping(index, domainKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.mappings = append(c.mappings, MappingEntry{Index: index, DomainKey: domainKey})
	})
}

// WithMappings maps several indexes at once, in order.
func WithMappings(entries ...MappingEntry) Option {
	return optionFunc(func(c *clientConfig) {
		c.mappings = append(c.mappings, entries...)
	})
}

// WithFactory registers fn as the hydration factory of domainKey.
func WithFactory(domainKey string, fn Factory) Option {
	return optionFunc(func(c *clientConfig) {
		c.factories = append(c.factories, factoryEntry{domainKey: domainKey, fn: fn})
	})
}

// WithType registers a factory decoding domainKey payloads into T.
// T follows `json` struct tags.
func WithType[T any](domainKey string) Option {
	return WithFactory(domainKey, DecodeFactory[T]())
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
