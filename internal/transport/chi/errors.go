package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/hydrex"
	"github.com/kailas-cloud/hydrex/internal/db"
	logpkg "github.com/kailas-cloud/hydrex/internal/logger"
	"github.com/kailas-cloud/hydrex/internal/metrics"
)

// Error codes of the JSON error body.
const (
	codeBadRequest        = "bad_request"
	codeValidationFailed  = "validation_failed"
	codeUnauthorized      = "unauthorized"
	codeNotFound          = "not_found"
	codeMethodNotAllowed  = "method_not_allowed"
	codeIndexNotMapped    = "index_not_mapped"
	codeDomainKeyNotFound = "domain_key_not_mapped"
	codeDocumentNotFound  = "document_not_found"
	codeIndexNotFound     = "index_not_found"
	codeMissingFactory    = "missing_factory"
	codeHydrationFailed   = "hydration_failed"
	codeModelType         = "model_type_mismatch"
	codeBadEngineResponse = "bad_engine_response"
	codeInternalError     = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error.
// Returns the written code and true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) (string, bool)

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(hydrex.ErrUnmappedIndex, http.StatusNotFound, codeIndexNotMapped),
		sentinelHandler(hydrex.ErrUnmappedClass, http.StatusNotFound, codeDomainKeyNotFound),
		sentinelHandler(hydrex.ErrDocumentNotFound, http.StatusNotFound, codeDocumentNotFound),
		sentinelHandler(db.ErrIndexNotFound, http.StatusNotFound, codeIndexNotFound),
		sentinelHandler(hydrex.ErrMissingFactory, http.StatusInternalServerError, codeMissingFactory),
		sentinelHandler(hydrex.ErrHydration, http.StatusInternalServerError, codeHydrationFailed),
		sentinelHandler(hydrex.ErrModelType, http.StatusInternalServerError, codeModelType),
		sentinelHandler(db.ErrBadResponse, http.StatusBadGateway, codeBadEngineResponse),
	}
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) (string, bool) {
		if !errors.Is(err, sentinel) {
			return "", false
		}
		writeError(w, status, code, msg)
		return code, true
	}
}

// handleDomainError maps err to a response. Handlers scope the request
// logger to the index beforehand, see logger.WithIndex.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, index string, err error) {
	log := logpkg.FromContext(r.Context())
	label := s.metricIndex(index)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if code, ok := h(w, err, msg); ok {
			log.Warn("domain error", zap.String("code", code), zap.Error(err))
			metrics.HydrationFailuresTotal.WithLabelValues(label, code).Inc()
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	metrics.HydrationFailuresTotal.WithLabelValues(label, codeInternalError).Inc()
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// safeDomainMessage returns a client-safe message.
// Mapping errors name the offending index or domain key; engine errors
// collapse to their sentinel text.
func safeDomainMessage(err error) string {
	var (
		uie *hydrex.UnmappedIndexError
		uce *hydrex.UnmappedClassError
		mfe *hydrex.MissingFactoryError
		he  *hydrex.HydrationError
	)
	switch {
	case errors.As(err, &uie):
		return uie.Error()
	case errors.As(err, &uce):
		return uce.Error()
	case errors.As(err, &mfe):
		return mfe.Error()
	case errors.As(err, &he):
		return he.Error()
	}

	sentinels := []error{
		hydrex.ErrDocumentNotFound,
		hydrex.ErrModelType,
		db.ErrIndexNotFound,
		db.ErrBadResponse,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
