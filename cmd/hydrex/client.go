package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/hydrex"
	"github.com/kailas-cloud/hydrex/internal/config"
)

// newClient builds the SDK client from configuration. Tests swap it for a
// client backed by an in-memory transport.
var newClient = clientFromConfig

// clientFromConfig connects to the configured engine. Every mapped domain
// key gets a passthrough factory: the CLI has no domain types of its own,
// so hydrated models are the decoded source maps.
func clientFromConfig(c config.Config, reg prometheus.Registerer) (*hydrex.Client, error) {
	opts := engineOptions(c.Engine)
	opts = append(opts,
		hydrex.WithReadinessTimeout(time.Duration(c.Engine.ReadinessTimeout)*time.Second),
		hydrex.WithMappings(c.Mappings...),
	)
	for _, key := range c.Mappings.DomainKeys() {
		opts = append(opts, hydrex.WithType[map[string]any](key))
	}
	if reg != nil {
		opts = append(opts, hydrex.WithPrometheus(reg))
	}
	return hydrex.New(opts...)
}

func engineOptions(e config.EngineConfig) []hydrex.Option {
	var opts []hydrex.Option
	switch e.Driver {
	case config.DriverElasticsearch:
		if e.CloudID != "" {
			opts = append(opts, hydrex.WithElasticCloud(e.CloudID, e.APIKey))
		} else {
			opts = append(opts, hydrex.WithElasticsearch(e.Addrs...))
			if e.APIKey != "" {
				opts = append(opts, hydrex.WithAPIKey(e.APIKey))
			}
		}
		if e.Username != "" {
			opts = append(opts, hydrex.WithBasicAuth(e.Username, e.Password))
		}
		if e.IndexPrefix != "" {
			opts = append(opts, hydrex.WithIndexPrefix(e.IndexPrefix))
		}
	case config.DriverValkey, config.DriverRedis:
		var addr string
		if len(e.Addrs) > 0 {
			addr = e.Addrs[0]
		}
		if e.Driver == config.DriverRedis {
			opts = append(opts, hydrex.WithRedis(addr, e.Password))
		} else {
			opts = append(opts, hydrex.WithValkey(addr, e.Password))
		}
		if e.Standalone {
			opts = append(opts, hydrex.WithStandalone())
		}
		if e.KeyPrefix != "" {
			opts = append(opts, hydrex.WithKeyPrefix(e.KeyPrefix))
		}
	}
	return opts
}
