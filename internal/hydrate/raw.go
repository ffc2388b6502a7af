package hydrate

import "github.com/kailas-cloud/hydrex/internal/domain"

// RawBuilder skips hydration: each result's Model is the hit's source map.
type RawBuilder struct{}

// BuildResultSet pairs every hit with its own source payload, in engine order.
func (RawBuilder) BuildResultSet(resp *domain.Response) ([]domain.Result, error) {
	if resp == nil || len(resp.Hits) == 0 {
		return nil, nil
	}
	out := make([]domain.Result, len(resp.Hits))
	for i, h := range resp.Hits {
		out[i] = domain.Result{Model: h.Document.Data, Hit: h}
	}
	return out, nil
}
