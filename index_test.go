package hydrex

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestGetModel(t *testing.T) {
	m := &mockTransport{
		fetchFn: func(_ context.Context, index, id string) (*RawDocument, error) {
			if index != "todo" || id != "42" {
				t.Errorf("fetch(%q, %q)", index, id)
			}
			return &RawDocument{ID: "42", Index: "todo", Data: map[string]any{"id": "42", "title": "x"}}, nil
		},
	}

	model, err := newTestClient(m).Index("todo").GetModel(context.Background(), "42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := model.(todo)
	if !ok {
		t.Fatalf("model type = %T, want todo", model)
	}
	if got != (todo{ID: "42", Title: "x"}) {
		t.Errorf("model = %+v", got)
	}
}

func TestGetModel_UsesDocumentIndex(t *testing.T) {
	// The facade is named after an alias; the document reports its real index.
	m := &mockTransport{
		fetchFn: func(context.Context, string, string) (*RawDocument, error) {
			return todoDoc("1"), nil
		},
	}

	c := newTestClient(m)
	if _, err := c.Index("todo-alias").GetModel(context.Background(), "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetModel_EmptyDocumentIndexFallsBack(t *testing.T) {
	m := &mockTransport{
		fetchFn: func(context.Context, string, string) (*RawDocument, error) {
			return &RawDocument{ID: "1", Data: map[string]any{"id": "1"}}, nil
		},
	}

	if _, err := newTestClient(m).Index("todo").GetModel(context.Background(), "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetModel_NotFound(t *testing.T) {
	m := &mockTransport{
		fetchFn: func(context.Context, string, string) (*RawDocument, error) {
			return nil, ErrDocumentNotFound
		},
	}

	_, err := newTestClient(m).Index("todo").GetModel(context.Background(), "nope")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestGetModel_UnmappedIndex(t *testing.T) {
	m := &mockTransport{
		fetchFn: func(_ context.Context, index, id string) (*RawDocument, error) {
			return &RawDocument{ID: id, Index: index, Data: map[string]any{}}, nil
		},
	}

	_, err := newTestClient(m).Index("nonexistent").GetModel(context.Background(), "1")
	var uie *UnmappedIndexError
	if !errors.As(err, &uie) {
		t.Fatalf("expected *UnmappedIndexError, got %v", err)
	}
	if uie.Index != "nonexistent" {
		t.Errorf("Index = %q, want nonexistent", uie.Index)
	}
}

func TestGetModel_MissingFactory(t *testing.T) {
	m := &mockTransport{
		fetchFn: func(context.Context, string, string) (*RawDocument, error) {
			return &RawDocument{ID: "1", Index: "note", Data: map[string]any{}}, nil
		},
	}

	c := newTestClient(m, WithMapping("note", `App\Note`))
	_, err := c.Index("note").GetModel(context.Background(), "1")
	if !errors.Is(err, ErrMissingFactory) {
		t.Fatalf("expected ErrMissingFactory, got %v", err)
	}
}

func TestGetModel_Hydration(t *testing.T) {
	m := &mockTransport{
		fetchFn: func(context.Context, string, string) (*RawDocument, error) {
			return &RawDocument{ID: "1", Index: "todo", Data: map[string]any{"id": []int{1}}}, nil
		},
	}

	_, err := newTestClient(m).Index("todo").GetModel(context.Background(), "1")
	var he *HydrationError
	if !errors.As(err, &he) {
		t.Fatalf("expected *HydrationError, got %v", err)
	}
	if he.DomainKey != todoKey {
		t.Errorf("DomainKey = %q, want %q", he.DomainKey, todoKey)
	}
}

func TestBuilder_ConstructedOnce(t *testing.T) {
	var built atomic.Int32
	c := newTestClient(&mockTransport{})
	idx := c.Index("todo")
	idx.newBuilder = func() *Builder {
		built.Add(1)
		return c.NewBuilder()
	}

	var wg sync.WaitGroup
	builders := make([]*Builder, 16)
	for i := range builders {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			builders[i] = idx.Builder()
		}(i)
	}
	wg.Wait()

	if n := built.Load(); n != 1 {
		t.Errorf("builder constructed %d times, want 1", n)
	}
	for i, b := range builders {
		if b != builders[0] {
			t.Errorf("builders[%d] differs from builders[0]", i)
		}
	}
}

func TestCreateSearch_PreservesOrder(t *testing.T) {
	m := &mockTransport{
		searchFn: func(_ context.Context, index, query string, opts SearchOptions) (*Response, error) {
			if index != "todo" || query != "@title:milk" {
				t.Errorf("search(%q, %q)", index, query)
			}
			if opts.From != 10 || opts.Size != 3 {
				t.Errorf("opts = %+v", opts)
			}
			return todoHits(5, 3, 9), nil
		},
	}

	s := newTestClient(m).Index("todo").CreateSearch("@title:milk", SearchOptions{From: 10, Size: 3})
	results, err := s.Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{5, 3, 9}
	if len(results) != len(want) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(want))
	}
	for i, r := range results {
		if r.Hit.Score != want[i] {
			t.Errorf("results[%d].Score = %v, want %v", i, r.Hit.Score, want[i])
		}
		if _, ok := r.Model.(todo); !ok {
			t.Errorf("results[%d].Model type = %T, want todo", i, r.Model)
		}
	}
}

func TestCreateSearch_DefaultBuilderIsCached(t *testing.T) {
	idx := newTestClient(&mockTransport{}).Index("todo")
	s := idx.CreateSearch("", SearchOptions{})
	if s.builder != ResultSetBuilder(idx.Builder()) {
		t.Error("search must use the facade's cached builder")
	}
}

func TestCreateSearch_BuilderOverride(t *testing.T) {
	m := &mockTransport{
		searchFn: func(context.Context, string, string, SearchOptions) (*Response, error) {
			return todoHits(1, 2), nil
		},
	}

	results, err := newTestClient(m).Index("todo").
		CreateSearch("", SearchOptions{}, RawBuilder{}).
		Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, r := range results {
		data, ok := r.Model.(map[string]any)
		if !ok {
			t.Fatalf("results[%d].Model type = %T, want map", i, r.Model)
		}
		if data["id"] != r.Hit.Document.ID {
			t.Errorf("results[%d] id = %v, want %s", i, data["id"], r.Hit.Document.ID)
		}
	}
}

func TestSearch_PartialFailure(t *testing.T) {
	resp := todoHits(5, 3, 9)
	resp.Hits[1].Document.Data = map[string]any{"id": 7.5}
	m := &mockTransport{
		searchFn: func(context.Context, string, string, SearchOptions) (*Response, error) {
			return resp, nil
		},
	}

	c := newTestClient(m)
	results, err := c.Index("todo").CreateSearch("", SearchOptions{}).Do(context.Background())
	if !errors.Is(err, ErrHydration) {
		t.Fatalf("expected ErrHydration, got %v", err)
	}
	if results != nil {
		t.Errorf("expected no partial results, got %d", len(results))
	}

	// The first hit still hydrates on its own.
	first := resp.Hits[0].Document
	if _, err := c.NewBuilder().BuildModel(first.Index, first.Data); err != nil {
		t.Errorf("first hit: %v", err)
	}
}

func TestSearch_TransportError(t *testing.T) {
	boom := errors.New("boom")
	m := &mockTransport{
		searchFn: func(context.Context, string, string, SearchOptions) (*Response, error) {
			return nil, boom
		},
	}

	_, err := newTestClient(m).Index("todo").CreateSearch("", SearchOptions{}).Do(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
