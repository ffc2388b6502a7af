package valkey

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/hydrex/internal/db"
	"github.com/kailas-cloud/hydrex/internal/domain"
)

const defaultSearchSize = 10

// ExecuteSearch runs query via FT.SEARCH against the JSON index of index.
// An empty query matches every document.
func (s *Store) ExecuteSearch(
	ctx context.Context, index, query string, opts domain.SearchOptions,
) (*domain.Response, error) {
	if index == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if query == "" {
		query = "*"
	}
	from := max(opts.From, 0)
	size := opts.Size
	if size <= 0 {
		size = defaultSearchSize
	}

	args := []string{
		s.indexName(index), query,
		"WITHSCORES",
		"LIMIT", strconv.Itoa(from), strconv.Itoa(size),
		"DIALECT", "2",
	}

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index") {
			return nil, &db.Error{Op: db.OpFTSearch, Err: fmt.Errorf("%w: %s", db.ErrIndexNotFound, index)}
		}
		return nil, &db.Error{Op: db.OpFTSearch, Err: err}
	}

	resp, err := s.parseSearchResult(index, raw)
	if err != nil {
		return nil, &db.Error{Op: db.OpFTSearch, Err: err}
	}
	return resp, nil
}

// parseSearchResult converts a RESP2 WITHSCORES reply, keeping reply order.
// Layout: [total, key1, score1, fields1, key2, score2, fields2, ...].
func (s *Store) parseSearchResult(index string, raw []rueidis.RedisMessage) (*domain.Response, error) {
	if len(raw) == 0 {
		return &domain.Response{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if (len(raw)-1)%3 != 0 {
		return nil, fmt.Errorf("%w: %d trailing elements", db.ErrBadResponse, (len(raw)-1)%3)
	}

	keyPrefix := s.documentKey(index, "")
	hits := make([]domain.Hit, 0, (len(raw)-1)/3)
	for i := 1; i+2 < len(raw); i += 3 {
		key, err := raw[i].ToString()
		if err != nil {
			return nil, fmt.Errorf("parse key at %d: %w", i, err)
		}

		scoreStr, err := raw[i+1].ToString()
		if err != nil {
			return nil, fmt.Errorf("parse score of %s: %w", key, err)
		}
		score, err := strconv.ParseFloat(scoreStr, 64)
		if err != nil {
			return nil, fmt.Errorf("parse score of %s: %w", key, err)
		}

		fields, err := raw[i+2].ToArray()
		if err != nil {
			return nil, fmt.Errorf("parse fields of %s: %w", key, err)
		}
		data, err := sourceFromFields(parseFieldPairs(fields))
		if err != nil {
			return nil, fmt.Errorf("parse source of %s: %w", key, err)
		}

		hits = append(hits, domain.Hit{
			Document: domain.RawDocument{
				ID:    strings.TrimPrefix(key, keyPrefix),
				Index: index,
				Data:  data,
			},
			Score: score,
		})
	}

	return &domain.Response{Total: int(total), Hits: hits}, nil
}

// sourceFromFields prefers the whole JSON document under `$`; otherwise the
// returned fields become the source as plain strings.
func sourceFromFields(fields map[string]string) (map[string]any, error) {
	if raw, ok := fields["$"]; ok {
		data, _, err := decodeSource(raw)
		return data, err
	}
	data := make(map[string]any, len(fields))
	for k, v := range fields {
		data[k] = v
	}
	return data, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		k, err := fields[j].ToString()
		if err != nil {
			continue
		}
		v, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[k] = v
	}
	return m
}
