package request

import (
	"fmt"
	"strings"

	"github.com/hirelens/jobsearch/internal/domain"
	"github.com/hirelens/jobsearch/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	// DefaultPageSize matches the client application's result grid.
	DefaultPageSize = 25
	MaxPageSize     = 100
	// DefaultCandidateLimit is how many candidates each source contributes.
	// Deliberately larger than any page size so fusion can reorder beyond
	// page boundaries.
	DefaultCandidateLimit = 100
	// DefaultThreshold is the minimum similarity for semantic results.
	DefaultThreshold = 0.7
)

// Request is a validated search query.
type Request struct {
	query          string
	searchMode     mode.Mode
	page           int
	pageSize       int
	threshold      float64
	candidateLimit int
}

// New validates and normalizes search parameters. The query must contain
// non-whitespace text; page and pageSize must be positive when supplied
// (zero means "use the default"); threshold must lie in [0,1].
func New(query string, m mode.Mode, page, pageSize int, threshold float64) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, fmt.Errorf("%w: query is required", domain.ErrInvalidQuery)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("%w: invalid search mode %q", domain.ErrInvalidQuery, m)
	}
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		return Request{}, fmt.Errorf("%w: page must be >= 1", domain.ErrInvalidPage)
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return Request{}, fmt.Errorf("%w: page_size must be between 1 and %d", domain.ErrInvalidPage, MaxPageSize)
	}
	if threshold < 0 || threshold > 1 {
		return Request{}, fmt.Errorf("%w: threshold must be between 0 and 1", domain.ErrInvalidQuery)
	}

	return Request{
		query:          query,
		searchMode:     m,
		page:           page,
		pageSize:       pageSize,
		threshold:      threshold,
		candidateLimit: DefaultCandidateLimit,
	}, nil
}

// WithCandidateLimit overrides the per-source candidate cap (config-driven).
func (r Request) WithCandidateLimit(limit int) Request {
	if limit > 0 {
		r.candidateLimit = limit
	}
	return r
}

// Query returns the normalized search text.
func (r Request) Query() string { return r.query }

// Mode returns the search strategy.
func (r Request) Mode() mode.Mode { return r.searchMode }

// Page returns the 1-based page number.
func (r Request) Page() int { return r.page }

// PageSize returns the page size.
func (r Request) PageSize() int { return r.pageSize }

// Threshold returns the minimum similarity for vector candidates.
func (r Request) Threshold() float64 { return r.threshold }

// CandidateLimit returns the per-source candidate cap.
func (r Request) CandidateLimit() int { return r.candidateLimit }
