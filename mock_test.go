package hydrex

import (
	"context"
	"fmt"
)

// --- Transport mock ---

type mockTransport struct {
	fetchFn  func(ctx context.Context, index, id string) (*RawDocument, error)
	searchFn func(ctx context.Context, index, query string, opts SearchOptions) (*Response, error)
}

func (m *mockTransport) FetchDocument(ctx context.Context, index, id string) (*RawDocument, error) {
	return m.fetchFn(ctx, index, id)
}

func (m *mockTransport) ExecuteSearch(
	ctx context.Context, index, query string, opts SearchOptions,
) (*Response, error) {
	return m.searchFn(ctx, index, query, opts)
}

// pingTransport additionally implements Ping.
type pingTransport struct {
	mockTransport
	pingFn func(ctx context.Context) error
}

func (m *pingTransport) Ping(ctx context.Context) error {
	return m.pingFn(ctx)
}

// --- fixtures ---

type todo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

const todoKey = `App\Todo`

func todoDoc(id string) *RawDocument {
	return &RawDocument{
		ID:    id,
		Index: "todo",
		Data:  map[string]any{"id": id, "title": fmt.Sprintf("todo %s", id)},
	}
}

func todoHits(scores ...float64) *Response {
	resp := &Response{Total: len(scores)}
	for i, s := range scores {
		resp.Hits = append(resp.Hits, RawHit{
			Document: *todoDoc(fmt.Sprintf("%d", i+1)),
			Score:    s,
		})
	}
	return resp
}

// newTestClient builds a client over m with "todo" mapped to a todo factory.
func newTestClient(m Transport, opts ...Option) *Client {
	base := []Option{
		WithTransport(m),
		WithMapping("todo", todoKey),
		WithType[todo](`\` + todoKey),
	}
	c, err := New(append(base, opts...)...)
	if err != nil {
		panic(err)
	}
	return c
}
