package valkey

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/hydrex/internal/db"
	"github.com/kailas-cloud/hydrex/internal/domain"
)

// FetchDocument loads the JSON document id of index.
func (s *Store) FetchDocument(ctx context.Context, index, id string) (*domain.RawDocument, error) {
	if index == "" || id == "" {
		return nil, fmt.Errorf("index and id are required")
	}

	cmd := s.b().Arbitrary("JSON.GET").Keys(s.documentKey(index, id)).Args("$").Build()
	raw, err := s.do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.NotFound(index, id)
		}
		return nil, &db.Error{Op: db.OpJSONGet, Err: err}
	}
	if raw == "" {
		return nil, db.NotFound(index, id)
	}

	data, found, err := decodeSource(raw)
	if err != nil {
		return nil, &db.Error{Op: db.OpJSONGet, Err: err}
	}
	if !found {
		return nil, db.NotFound(index, id)
	}
	return &domain.RawDocument{ID: id, Index: index, Data: data}, nil
}

// decodeSource parses a stored JSON document. JSON.GET with the `$` path
// wraps the root object in an array; FT.SEARCH returns it bare.
func decodeSource(raw string) (map[string]any, bool, error) {
	if len(raw) > 0 && raw[0] == '[' {
		var docs []map[string]any
		if err := json.Unmarshal([]byte(raw), &docs); err != nil {
			return nil, false, fmt.Errorf("%w: %w", db.ErrBadResponse, err)
		}
		if len(docs) == 0 {
			return nil, false, nil
		}
		return docs[0], true, nil
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, false, fmt.Errorf("%w: %w", db.ErrBadResponse, err)
	}
	return doc, true, nil
}
