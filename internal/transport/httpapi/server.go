// Package httpapi exposes the job search service over HTTP with chi.
package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hirelens/jobsearch/internal/domain"
	"github.com/hirelens/jobsearch/internal/domain/search/mode"
	"github.com/hirelens/jobsearch/internal/domain/search/request"
	"github.com/hirelens/jobsearch/internal/metrics"
	batchuc "github.com/hirelens/jobsearch/internal/usecase/batch"
	healthuc "github.com/hirelens/jobsearch/internal/usecase/health"
	jobsuc "github.com/hirelens/jobsearch/internal/usecase/jobs"
	searchuc "github.com/hirelens/jobsearch/internal/usecase/search"
)

// Config holds request-shaping defaults the handlers apply before validation.
type Config struct {
	DefaultThreshold float64
	CandidateLimit   int
	DefaultPageSize  int
	MaxPageSize      int
}

// Server wires the use case services to HTTP handlers.
type Server struct {
	search        *searchuc.Service
	jobs          *jobsuc.Service
	batch         *batchuc.Service
	health        *healthuc.Service
	cfg           Config
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	jobs *jobsuc.Service,
	batch *batchuc.Service,
	health *healthuc.Service,
	cfg Config,
	logger *zap.Logger,
) *Server {
	if cfg.DefaultThreshold <= 0 {
		cfg.DefaultThreshold = request.DefaultThreshold
	}
	if cfg.CandidateLimit <= 0 {
		cfg.CandidateLimit = request.DefaultCandidateLimit
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = request.DefaultPageSize
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = request.MaxPageSize
	}
	return &Server{
		search:        search,
		jobs:          jobs,
		batch:         batch,
		health:        health,
		cfg:           cfg,
		logger:        logger,
		errorHandlers: domainErrorHandlers(),
	}
}

// Routes registers all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/jobs/search", s.searchJobs)
	r.Get("/jobs/hybrid_search", s.hybridSearch)
	r.Get("/jobs", s.listJobs)
	r.Post("/jobs", s.createJob)
	r.Post("/jobs/batch", s.batchCreate)
	r.Get("/jobs/{id}", s.getJob)
	r.Put("/jobs/{id}", s.updateJob)
	r.Delete("/jobs/{id}", s.deleteJob)
	r.Get("/health", s.healthCheck)
	r.Get("/metrics", s.metricsHandler)
}

// searchJobs handles GET /jobs/search. Default mode is semantic; keyword is
// available via ?mode=keyword.
func (s *Server) searchJobs(w http.ResponseWriter, r *http.Request) {
	m := mode.Semantic
	if v := r.URL.Query().Get("mode"); v != "" {
		m = mode.Mode(v)
		if !m.IsValid() || m == mode.Hybrid {
			writeError(w, http.StatusBadRequest, codeInvalidQuery,
				fmt.Sprintf("mode must be %q or %q", mode.Semantic, mode.Keyword))
			return
		}
	}
	s.runSearch(w, r, m, false)
}

// hybridSearch handles GET /jobs/hybrid_search.
func (s *Server) hybridSearch(w http.ResponseWriter, r *http.Request) {
	s.runSearch(w, r, mode.Hybrid, true)
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, m mode.Mode, includeMode bool) {
	q := r.URL.Query()

	pageNum, err := parseIntParam(q.Get("page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidPage, "page must be an integer")
		return
	}
	pageSize, err := parseIntParam(q.Get("page_size"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidPage, "page_size must be an integer")
		return
	}
	pageSize, ok := s.resolvePageSize(pageSize)
	if !ok {
		metrics.SearchRequestsTotal.WithLabelValues(string(m), "error").Inc()
		writeError(w, http.StatusBadRequest, codeInvalidPage,
			fmt.Sprintf("page_size must be between 1 and %d", s.cfg.MaxPageSize))
		return
	}

	threshold := s.cfg.DefaultThreshold
	if v := q.Get("threshold"); v != "" {
		threshold, err = strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidQuery, "threshold must be a number")
			return
		}
	}
	if !m.UsesVector() || m == mode.Hybrid {
		// Hybrid and keyword rankings are threshold-free.
		threshold = 0
	}

	req, err := request.New(q.Get("q"), m, pageNum, pageSize, threshold)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(m), "error").Inc()
		s.handleDomainError(w, err)
		return
	}
	req = req.WithCandidateLimit(s.cfg.CandidateLimit)

	resp, err := s.search.Search(r.Context(), &req)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(m), "error").Inc()
		s.handleDomainError(w, err)
		return
	}

	metrics.SearchRequestsTotal.WithLabelValues(string(m), "success").Inc()
	writeJSON(w, http.StatusOK, searchEnvelope(req.Query(), &resp, includeMode))
}

// listJobs handles GET /jobs. Newest first; ?is_active=false includes
// inactive records.
func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	pageNum, err := parseIntParam(q.Get("page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidPage, "page must be an integer")
		return
	}
	pageSize, err := parseIntParam(q.Get("page_size"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidPage, "page_size must be an integer")
		return
	}
	pageSize, ok := s.resolvePageSize(pageSize)
	if !ok {
		writeError(w, http.StatusBadRequest, codeInvalidPage,
			fmt.Sprintf("page_size must be between 1 and %d", s.cfg.MaxPageSize))
		return
	}

	activeOnly := true
	if v := q.Get("is_active"); v != "" {
		activeOnly, err = strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "is_active must be a boolean")
			return
		}
	}

	meta, listed, err := s.jobs.List(r.Context(), pageNum, pageSize, activeOnly)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]jobResponse, len(listed))
	for i := range listed {
		items[i] = toJobResponse(&listed[i])
	}
	writeJSON(w, http.StatusOK, pagedResponse{
		Page:         meta.Page,
		PageSize:     meta.PageSize,
		TotalResults: meta.TotalResults,
		TotalPages:   meta.TotalPages,
		HasNext:      meta.HasNext,
		HasPrevious:  meta.HasPrevious,
		Results:      items,
	})
}

// getJob handles GET /jobs/{id}.
func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	j, err := s.jobs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJobResponse(&j))
}

// createJob handles POST /jobs.
func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	var payload jobPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	j, err := s.jobs.Create(r.Context(), payload.toJob())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/jobs/"+j.ID)
	writeJSON(w, http.StatusCreated, toJobResponse(&j))
}

// updateJob handles PUT /jobs/{id}.
func (s *Server) updateJob(w http.ResponseWriter, r *http.Request) {
	var payload jobPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	j, err := s.jobs.Update(r.Context(), chi.URLParam(r, "id"), payload.toJob())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJobResponse(&j))
}

// deleteJob handles DELETE /jobs/{id}.
func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request) {
	if err := s.jobs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// batchCreate handles POST /jobs/batch.
func (s *Server) batchCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Jobs []jobPayload `json:"jobs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	toCreate := make([]domain.Job, len(payload.Jobs))
	for i := range payload.Jobs {
		toCreate[i] = payload.Jobs[i].toJob()
	}

	created, err := s.batch.Create(r.Context(), toCreate)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]jobResponse, len(created))
	for i := range created {
		items[i] = toJobResponse(&created[i])
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"created": len(items),
		"jobs":    items,
	})
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// metricsHandler handles GET /metrics.
func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// resolvePageSize applies the configured default when the parameter was
// omitted and rejects sizes over the configured cap.
func (s *Server) resolvePageSize(pageSize int) (int, bool) {
	if pageSize == 0 {
		return s.cfg.DefaultPageSize, true
	}
	if pageSize > s.cfg.MaxPageSize {
		return 0, false
	}
	return pageSize, true
}

// parseIntParam parses an optional integer query parameter. Empty means
// "not set" and returns 0 so the request layer applies its default.
func parseIntParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse int param: %w", err)
	}
	return n, nil
}
