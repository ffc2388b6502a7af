package hydrex

import (
	"context"
	"fmt"
)

// Hit is a hydrated search result of a TypedIndex.
type Hit[T any] struct {
	ID        string
	Index     string
	Item      T
	Score     float64
	Highlight map[string][]string
}

// TypedIndex is a generic facade for indexes whose factory produces T.
type TypedIndex[T any] struct {
	idx *Index
}

// NewIndex creates a typed index handle for the given index name.
// The index must be mapped to a domain key whose factory returns T,
// typically registered with WithType[T].
func NewIndex[T any](client *Client, name string) *TypedIndex[T] {
	return &TypedIndex[T]{idx: client.Index(name)}
}

// Index returns the untyped facade.
func (t *TypedIndex[T]) Index() *Index {
	return t.idx
}

// Get retrieves a typed item by ID.
func (t *TypedIndex[T]) Get(ctx context.Context, id string) (T, error) {
	model, err := t.idx.GetModel(ctx, id)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("get: %w", err)
	}
	item, err := as[T](model)
	if err != nil {
		return item, fmt.Errorf("get %s/%s: %w", t.idx.name, id, err)
	}
	return item, nil
}

// Search runs query and returns typed hits in ranking order.
func (t *TypedIndex[T]) Search(ctx context.Context, query string, opts SearchOptions) ([]Hit[T], error) {
	results, err := t.idx.CreateSearch(query, opts).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	out := make([]Hit[T], len(results))
	for i := range results {
		r := &results[i]
		item, err := as[T](r.Model)
		if err != nil {
			return nil, fmt.Errorf("search: hit %d (%s): %w", i, r.Hit.Document.ID, err)
		}
		out[i] = Hit[T]{
			ID:        r.Hit.Document.ID,
			Index:     r.Hit.Document.Index,
			Item:      item,
			Score:     r.Hit.Score,
			Highlight: r.Hit.Highlight,
		}
	}
	return out, nil
}

func as[T any](model any) (T, error) {
	item, ok := model.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: got %T, want %T", ErrModelType, model, zero)
	}
	return item, nil
}
