package chi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hydrex"
	logpkg "github.com/kailas-cloud/hydrex/internal/logger"
	"github.com/kailas-cloud/hydrex/internal/metrics"
	"github.com/kailas-cloud/hydrex/internal/usecase/health"
	"github.com/kailas-cloud/hydrex/internal/version"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	maxQueryBytes   = 1 << 20
)

// hydrator is the consumer interface of the SDK client (ISP).
type hydrator interface {
	Index(name string) *hydrex.Index
	IndexNameFor(domainKey string) (string, error)
	Registry() *hydrex.Registry
	Ping(ctx context.Context) error
	MissingFactories() []string
}

// Server serves hydrated documents and searches over HTTP.
type Server struct {
	client          hydrator
	logger          *zap.Logger
	defaultPageSize int
	maxPageSize     int
	errorHandlers   []errorHandler
	health          *health.Service

	facades sync.Map // mapped index name -> *hydrex.Index
}

// NewServer creates an HTTP API server over client.
func NewServer(client hydrator, logger *zap.Logger) *Server {
	metrics.RegisterHydrationMetrics()
	return &Server{
		client:          client,
		logger:          logger,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		errorHandlers:   defaultErrorHandlers(),
		health:          health.New(client, client),
	}
}

// WithPagination overrides the default and maximum search page sizes.
func (s *Server) WithPagination(defaultSize, maxSize int) *Server {
	if defaultSize > 0 {
		s.defaultPageSize = defaultSize
	}
	if maxSize > 0 {
		s.maxPageSize = maxSize
	}
	return s
}

// facade returns the cached facade of a mapped index.
// Unmapped names get a throwaway facade so arbitrary paths cannot grow the cache.
func (s *Server) facade(index string) *hydrex.Index {
	if v, ok := s.facades.Load(index); ok {
		return v.(*hydrex.Index) //nolint:forcetypeassert // only *hydrex.Index is stored
	}
	idx := s.client.Index(index)
	if _, err := s.client.Registry().ResolveDomainKey(index); err != nil {
		return idx
	}
	v, _ := s.facades.LoadOrStore(index, idx)
	return v.(*hydrex.Index) //nolint:forcetypeassert // only *hydrex.Index is stored
}

// metricIndex returns index when it is mapped and metrics.UnmappedIndex otherwise.
func (s *Server) metricIndex(index string) string {
	if _, err := s.client.Registry().ResolveDomainKey(index); err != nil {
		return metrics.UnmappedIndex
	}
	return index
}

type mappingResponse struct {
	Index     string `json:"index"`
	DomainKey string `json:"domain_key"`
}

type documentResponse struct {
	Index string `json:"index"`
	ID    string `json:"id"`
	Model any    `json:"model"`
}

type hitResponse struct {
	ID        string              `json:"id"`
	Index     string              `json:"index"`
	Score     float64             `json:"score"`
	Highlight map[string][]string `json:"highlight,omitempty"`
	Model     any                 `json:"model"`
}

type searchResponse struct {
	Index string        `json:"index"`
	From  int           `json:"from"`
	Size  int           `json:"size"`
	Hits  []hitResponse `json:"hits"`
}

type healthResponse struct {
	Status           health.Status                 `json:"status"`
	Checks           map[string]health.CheckResult `json:"checks"`
	MissingFactories []string                      `json:"missing_factories,omitempty"`
	Version          string                        `json:"version"`
}

// ListMappings handles GET /mappings.
func (s *Server) ListMappings(w http.ResponseWriter, _ *http.Request) {
	entries := s.client.Registry().Entries()
	out := make([]mappingResponse, len(entries))
	for i, e := range entries {
		out[i] = mappingResponse{Index: e.Index, DomainKey: e.DomainKey}
	}
	writeJSON(w, http.StatusOK, out)
}

// ResolveMapping handles GET /mappings/resolve?domain_key= or ?index=.
func (s *Server) ResolveMapping(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	switch {
	case q.Get("domain_key") != "":
		key := q.Get("domain_key")
		index, err := s.client.IndexNameFor(key)
		if err != nil {
			s.handleDomainError(w, r, "", err)
			return
		}
		writeJSON(w, http.StatusOK, mappingResponse{Index: index, DomainKey: key})
	case q.Get("index") != "":
		index := q.Get("index")
		key, err := s.client.Registry().ResolveDomainKey(index)
		if err != nil {
			s.handleDomainError(w, r.WithContext(logpkg.WithIndex(r.Context(), index)), index, err)
			return
		}
		writeJSON(w, http.StatusOK, mappingResponse{Index: index, DomainKey: key})
	default:
		writeError(w, http.StatusBadRequest, codeBadRequest, "domain_key or index query parameter is required")
	}
}

// GetDocument handles GET /indexes/{index}/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	index, id := chi.URLParam(r, "index"), chi.URLParam(r, "id")
	r = r.WithContext(logpkg.WithIndex(r.Context(), index))

	model, err := s.facade(index).GetModel(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, index, err)
		return
	}

	writeJSON(w, http.StatusOK, documentResponse{Index: index, ID: id, Model: model})
}

// Search handles GET /indexes/{index}/search?q=&from=&size=&raw=
// and POST /indexes/{index}/search with the query as request body.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	index := chi.URLParam(r, "index")
	r = r.WithContext(logpkg.WithIndex(r.Context(), index))

	query, err := readQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	opts, err := s.pageOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	var builders []hydrex.ResultSetBuilder
	raw, _ := strconv.ParseBool(r.URL.Query().Get("raw"))
	if raw {
		builders = append(builders, hydrex.RawBuilder{})
	}

	results, err := s.facade(index).CreateSearch(query, opts, builders...).Do(r.Context())
	if err != nil {
		s.handleDomainError(w, r, index, err)
		return
	}
	if !raw {
		metrics.HydratedHitsTotal.WithLabelValues(s.metricIndex(index)).Add(float64(len(results)))
	}

	hits := make([]hitResponse, len(results))
	for i := range results {
		res := &results[i]
		hits[i] = hitResponse{
			ID:        res.Hit.Document.ID,
			Index:     res.Hit.Document.Index,
			Score:     res.Hit.Score,
			Highlight: res.Hit.Highlight,
			Model:     res.Model,
		}
	}

	writeJSON(w, http.StatusOK, searchResponse{Index: index, From: opts.From, Size: opts.Size, Hits: hits})
}

// HealthCheck handles GET /health.
// Missing factories degrade the report but keep 200; an unreachable engine is 503.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	resp := healthResponse{
		Status:           report.Status,
		Checks:           report.Checks,
		MissingFactories: report.MissingFactories,
		Version:          version.Version,
	}

	status := http.StatusOK
	if report.Status == health.Unhealthy {
		status = http.StatusServiceUnavailable
		logpkg.FromContext(r.Context()).Warn("health check failed", zap.Any("checks", report.Checks))
	}
	writeJSON(w, status, resp)
}

func readQuery(r *http.Request) (string, error) {
	if r.Method != http.MethodPost {
		return r.URL.Query().Get("q"), nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxQueryBytes+1))
	if err != nil {
		return "", fmt.Errorf("read query body: %w", err)
	}
	if len(body) > maxQueryBytes {
		return "", fmt.Errorf("query body exceeds %d bytes", maxQueryBytes)
	}
	return strings.TrimSpace(string(body)), nil
}

func (s *Server) pageOptions(r *http.Request) (hydrex.SearchOptions, error) {
	q := r.URL.Query()
	opts := hydrex.SearchOptions{Size: s.defaultPageSize}

	if v := q.Get("from"); v != "" {
		from, err := strconv.Atoi(v)
		if err != nil || from < 0 {
			return opts, fmt.Errorf("from must be a non-negative integer, got %q", v)
		}
		opts.From = from
	}
	if v := q.Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 || size > s.maxPageSize {
			return opts, fmt.Errorf("size must be between 1 and %d, got %q", s.maxPageSize, v)
		}
		opts.Size = size
	}
	return opts, nil
}
