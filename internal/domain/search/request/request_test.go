package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/hirelens/jobsearch/internal/domain"
	"github.com/hirelens/jobsearch/internal/domain/search/mode"
)

func TestNew_Defaults(t *testing.T) {
	req, err := New("golang", mode.Semantic, 0, 0, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Page() != 1 {
		t.Errorf("page = %d, want default 1", req.Page())
	}
	if req.PageSize() != DefaultPageSize {
		t.Errorf("page_size = %d, want default %d", req.PageSize(), DefaultPageSize)
	}
	if req.CandidateLimit() != DefaultCandidateLimit {
		t.Errorf("candidate limit = %d, want %d", req.CandidateLimit(), DefaultCandidateLimit)
	}
}

func TestNew_TrimsQuery(t *testing.T) {
	req, err := New("  rust engineer  ", mode.Keyword, 1, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Query() != "rust engineer" {
		t.Errorf("query = %q, want trimmed", req.Query())
	}
}

func TestNew_InvalidQuery(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"empty", ""},
		{"whitespace only", "   \t\n "},
		{"too long", strings.Repeat("a", MaxQueryLength+1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.query, mode.Semantic, 1, 25, 0.7)
			if !errors.Is(err, domain.ErrInvalidQuery) {
				t.Errorf("expected ErrInvalidQuery, got %v", err)
			}
		})
	}
}

func TestNew_InvalidMode(t *testing.T) {
	_, err := New("q", mode.Mode("fuzzy"), 1, 25, 0.7)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestNew_InvalidPagination(t *testing.T) {
	cases := []struct {
		name     string
		page     int
		pageSize int
	}{
		{"negative page", -1, 25},
		{"negative size", 1, -1},
		{"size above max", 1, MaxPageSize + 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New("q", mode.Semantic, tc.page, tc.pageSize, 0.7)
			if !errors.Is(err, domain.ErrInvalidPage) {
				t.Errorf("expected ErrInvalidPage, got %v", err)
			}
		})
	}
}

func TestNew_InvalidThreshold(t *testing.T) {
	for _, threshold := range []float64{-0.1, 1.01} {
		_, err := New("q", mode.Semantic, 1, 25, threshold)
		if !errors.Is(err, domain.ErrInvalidQuery) {
			t.Errorf("threshold %v: expected ErrInvalidQuery, got %v", threshold, err)
		}
	}
}

func TestWithCandidateLimit(t *testing.T) {
	req, err := New("q", mode.Hybrid, 1, 25, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := req.WithCandidateLimit(250).CandidateLimit(); got != 250 {
		t.Errorf("candidate limit = %d, want 250", got)
	}
	// Non-positive override keeps the default.
	if got := req.WithCandidateLimit(0).CandidateLimit(); got != DefaultCandidateLimit {
		t.Errorf("candidate limit = %d, want default %d", got, DefaultCandidateLimit)
	}
}
