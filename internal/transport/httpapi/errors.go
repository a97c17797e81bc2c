package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hirelens/jobsearch/internal/domain"
)

// Error codes returned to API clients.
const (
	codeBadRequest          = "bad_request"
	codeInvalidQuery        = "invalid_query"
	codeInvalidPage         = "invalid_page"
	codeJobNotFound         = "job_not_found"
	codeValidationFailed    = "validation_failed"
	codeEmbeddingProvider   = "embedding_provider_error"
	codeUpstreamUnavailable = "upstream_unavailable"
	codeInternalError       = "internal_error"
)

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// domainErrorHandlers maps sentinels to HTTP responses, in match order.
func domainErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeInvalidQuery),
		sentinelHandler(domain.ErrInvalidPage, http.StatusBadRequest, codeInvalidPage),
		sentinelHandler(domain.ErrJobNotFound, http.StatusNotFound, codeJobNotFound),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProvider),
		sentinelHandler(domain.ErrUpstreamUnavailable, http.StatusServiceUnavailable, codeUpstreamUnavailable),
	}
}

// safeDomainMessage returns a client-facing message for a known sentinel
// without exposing internals. Validation and request errors keep their full
// text because the wrapped detail is the useful part for callers.
func safeDomainMessage(err error) string {
	clientVisible := []error{
		domain.ErrInvalidQuery,
		domain.ErrInvalidPage,
		domain.ErrValidation,
	}
	for _, s := range clientVisible {
		if errors.Is(err, s) {
			return err.Error()
		}
	}

	sentinels := []error{
		domain.ErrJobNotFound,
		domain.ErrEmbeddingProviderError,
		domain.ErrUpstreamUnavailable,
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
