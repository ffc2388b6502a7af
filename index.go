package hydrex

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Index binds one logical index to a transport and a Builder.
// It is safe for concurrent use.
type Index struct {
	name       string
	transport  Transport
	newBuilder func() *Builder
	registry   *Registry
	obs        *observer

	once    sync.Once
	builder *Builder
}

// Name returns the logical index name.
func (idx *Index) Name() string {
	return idx.name
}

// Builder returns the facade's Builder, constructing it on first use.
func (idx *Index) Builder() *Builder {
	idx.once.Do(func() {
		idx.builder = idx.newBuilder()
	})
	return idx.builder
}

// metricLabel is the index name of mapped indexes and unmappedIndexLabel
// otherwise, so caller-supplied names cannot grow metric series.
func (idx *Index) metricLabel() string {
	if idx.registry == nil {
		return idx.name
	}
	if _, err := idx.registry.ResolveDomainKey(idx.name); err != nil {
		return unmappedIndexLabel
	}
	return idx.name
}

// GetModel fetches document id and hydrates it.
// A missing document matches ErrDocumentNotFound; mapping and factory
// failures are returned as the typed errors of this package.
func (idx *Index) GetModel(ctx context.Context, id string) (any, error) {
	start := time.Now()
	model, err := idx.getModel(ctx, id)
	idx.obs.observe(opGetModel, idx.name, idx.metricLabel(), start, err)
	return model, err
}

func (idx *Index) getModel(ctx context.Context, id string) (any, error) {
	doc, err := idx.transport.FetchDocument(ctx, idx.name, id)
	if err != nil {
		return nil, fmt.Errorf("get model %s/%s: %w", idx.name, id, err)
	}

	index := doc.Index
	if index == "" {
		index = idx.name
	}
	return idx.Builder().BuildModel(index, doc.Data) //nolint:wrapcheck // typed hydration errors are the contract
}

// CreateSearch returns a search bound to this index.
// Results are hydrated by the facade's Builder unless builder overrides it.
func (idx *Index) CreateSearch(query string, opts SearchOptions, builder ...ResultSetBuilder) *Search {
	var b ResultSetBuilder
	if len(builder) > 0 && builder[0] != nil {
		b = builder[0]
	} else {
		b = idx.Builder()
	}
	return &Search{index: idx, query: query, opts: opts, builder: b}
}
