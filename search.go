package hydrex

import (
	"context"
	"fmt"
	"time"
)

// Search is a query bound to one index and one hydration strategy.
// It may be executed any number of times.
type Search struct {
	index   *Index
	query   string
	opts    SearchOptions
	builder ResultSetBuilder
}

// Query returns the engine-native query.
func (s *Search) Query() string { return s.query }

// Options returns the paging options.
func (s *Search) Options() SearchOptions { return s.opts }

// Do executes the search and hydrates every hit in ranking order.
// One failing hit fails the whole call.
func (s *Search) Do(ctx context.Context) ([]Result, error) {
	start := time.Now()
	results, err := s.do(ctx)
	s.index.obs.observe(opSearch, s.index.name, s.index.metricLabel(), start, err)
	return results, err
}

func (s *Search) do(ctx context.Context) ([]Result, error) {
	resp, err := s.index.transport.ExecuteSearch(ctx, s.index.name, s.query, s.opts)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.index.name, err)
	}

	results, err := s.builder.BuildResultSet(resp)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.index.name, err)
	}
	return results, nil
}
