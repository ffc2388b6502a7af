// Package hydrate turns raw search documents into domain objects.
//
// Dispatch goes index -> domain key (through the mapping registry) -> factory,
// so several indexes may share one domain type without duplicate factories.
package hydrate

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/hydrex/internal/domain"
)

var errNilModel = errors.New("factory returned nil model")

// resolver is the consumer interface for index -> domain key lookups (ISP).
type resolver interface {
	ResolveDomainKey(index string) (string, error)
}

// Builder hydrates raw documents and search responses.
// It holds no state besides its collaborators and is safe for concurrent use.
type Builder struct {
	registry  resolver
	factories *Factories
}

// NewBuilder creates a Builder over a registry and a factory table.
func NewBuilder(r resolver, f *Factories) *Builder {
	return &Builder{registry: r, factories: f}
}

// BuildModel hydrates data stored in index.
func (b *Builder) BuildModel(index string, data map[string]any) (any, error) {
	key, err := b.registry.ResolveDomainKey(index)
	if err != nil {
		return nil, err //nolint:wrapcheck // typed registry error is the contract
	}

	fn, ok := b.factories.Lookup(key)
	if !ok {
		return nil, &domain.MissingFactoryError{Index: index, DomainKey: key}
	}

	model, err := invoke(fn, data)
	if err != nil {
		return nil, &domain.HydrationError{Index: index, DomainKey: key, Err: err}
	}
	return model, nil
}

// BuildResultSet hydrates every hit of resp in engine order.
// A single failing hit fails the whole call; no partial slice is returned.
func (b *Builder) BuildResultSet(resp *domain.Response) ([]domain.Result, error) {
	if resp == nil || len(resp.Hits) == 0 {
		return nil, nil
	}

	out := make([]domain.Result, len(resp.Hits))
	for i := range resp.Hits {
		h := resp.Hits[i]
		model, err := b.BuildModel(h.Document.Index, h.Document.Data)
		if err != nil {
			return nil, fmt.Errorf("hit %d (%s/%s): %w", i, h.Document.Index, h.Document.ID, err)
		}
		out[i] = domain.Result{Model: model, Hit: h}
	}
	return out, nil
}

// invoke calls fn, converting a panic into an error.
func invoke(fn Factory, data map[string]any) (model any, err error) {
	defer func() {
		if r := recover(); r != nil {
			model = nil
			err = fmt.Errorf("factory panic: %v", r)
		}
	}()

	model, err = fn(data)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, errNilModel
	}
	return model, nil
}
