package elastic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/hydrex/internal/db"
	"github.com/kailas-cloud/hydrex/internal/domain"
)

// searchResponse is the subset of the _search body the store needs.
type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
	Error *errorCause `json:"error,omitempty"`
}

type searchHit struct {
	Index     string              `json:"_index"`
	ID        string              `json:"_id"`
	Score     *float64            `json:"_score"` // null when sorting by field
	Source    map[string]any      `json:"_source"`
	Highlight map[string][]string `json:"highlight,omitempty"`
}

// ExecuteSearch posts query as the _search request body of index.
// An empty query lets the cluster apply its default match_all.
func (s *Store) ExecuteSearch(
	ctx context.Context, index, query string, opts domain.SearchOptions,
) (*domain.Response, error) {
	if index == "" {
		return nil, fmt.Errorf("index name is required")
	}

	reqOpts := []func(*esapi.SearchRequest){
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(s.physicalName(index)),
	}
	if strings.TrimSpace(query) != "" {
		reqOpts = append(reqOpts, s.es.Search.WithBody(strings.NewReader(query)))
	}
	if opts.From > 0 {
		reqOpts = append(reqOpts, s.es.Search.WithFrom(opts.From))
	}
	if opts.Size > 0 {
		reqOpts = append(reqOpts, s.es.Search.WithSize(opts.Size))
	}

	res, err := s.es.Search(reqOpts...)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("read body: %w", err)}
	}

	var sr searchResponse
	decodeErr := json.Unmarshal(body, &sr)

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("%w: %s", db.ErrIndexNotFound, index)}
	case res.IsError():
		return nil, &db.Error{Op: db.OpSearch, Err: statusError(res.StatusCode, sr.Error)}
	case decodeErr != nil:
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("%w: %w", db.ErrBadResponse, decodeErr)}
	}

	return s.toResponse(&sr), nil
}

// toResponse keeps the cluster's hit order.
func (s *Store) toResponse(sr *searchResponse) *domain.Response {
	hits := make([]domain.Hit, len(sr.Hits.Hits))
	for i, h := range sr.Hits.Hits {
		var score float64
		if h.Score != nil {
			score = *h.Score
		}
		hits[i] = domain.Hit{
			Document: domain.RawDocument{
				ID:    h.ID,
				Index: LogicalName(s.prefix, h.Index),
				Data:  h.Source,
			},
			Score:     score,
			Highlight: h.Highlight,
		}
	}
	return &domain.Response{Total: sr.Hits.Total.Value, Hits: hits}
}
