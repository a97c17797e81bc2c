package search

import (
	"context"
	"errors"
	"testing"

	"github.com/hirelens/jobsearch/internal/db"
	"github.com/hirelens/jobsearch/internal/domain"
	"github.com/hirelens/jobsearch/internal/repository/jobs"
)

// --- FetchVector ---

func TestFetchVector_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchKNNFn = func(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
		if q.IndexName != jobs.IndexName {
			t.Errorf("unexpected index: %s", q.IndexName)
		}
		if q.Filter != jobs.ActiveFilter {
			t.Errorf("unexpected filter: %s", q.Filter)
		}
		if q.K != 10 {
			t.Errorf("unexpected K: %d", q.K)
		}
		return knnResult(
			db.SearchEntry{Key: "jobsearch:jobs:job-1", Score: 0.1},
			db.SearchEntry{Key: "jobsearch:jobs:job-2", Score: 0.4},
		), nil
	}

	entries, err := repo.FetchVector(ctx, testVector(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "job-1" {
		t.Errorf("expected ID job-1, got %s", entries[0].ID)
	}
	// Cosine distance 0.1 maps to similarity 0.9.
	if diff := entries[0].Score - 0.9; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected similarity 0.9, got %f", entries[0].Score)
	}
}

func TestFetchVector_ThresholdCutsTail(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return knnResult(
			db.SearchEntry{Key: "jobsearch:jobs:job-1", Score: 0.1},
			db.SearchEntry{Key: "jobsearch:jobs:job-2", Score: 0.35},
			db.SearchEntry{Key: "jobsearch:jobs:job-3", Score: 0.8},
		), nil
	}

	entries, err := repo.FetchVector(ctx, testVector(), 10, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry above threshold, got %d", len(entries))
	}
	if entries[0].ID != "job-1" {
		t.Errorf("expected job-1, got %s", entries[0].ID)
	}
}

func TestFetchVector_SimilarityClamped(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	// Distances outside [0,1] happen with normalization drift.
	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return knnResult(
			db.SearchEntry{Key: "jobsearch:jobs:job-1", Score: -0.01},
			db.SearchEntry{Key: "jobsearch:jobs:job-2", Score: 1.7},
		), nil
	}

	entries, err := repo.FetchVector(ctx, testVector(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Score != 1 {
		t.Errorf("similarity above 1 must clamp, got %f", entries[0].Score)
	}
	if entries[1].Score != 0 {
		t.Errorf("negative similarity must clamp to 0, got %f", entries[1].Score)
	}
}

func TestFetchVector_EmptyResults(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return &db.SearchResult{Total: 0}, nil
	}

	entries, err := repo.FetchVector(context.Background(), testVector(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestFetchVector_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return nil, errors.New("connection refused")
	}

	_, err := repo.FetchVector(context.Background(), testVector(), 10, 0)
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

// --- FetchKeyword ---

func TestFetchKeyword_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchBM25Fn = func(_ context.Context, q *db.TextQuery) (*db.SearchResult, error) {
		if q.IndexName != jobs.IndexName {
			t.Errorf("unexpected index: %s", q.IndexName)
		}
		if q.Field != "search_text" {
			t.Errorf("unexpected field: %s", q.Field)
		}
		if q.Query != "golang berlin" {
			t.Errorf("unexpected query: %s", q.Query)
		}
		if q.Filter != jobs.ActiveFilter {
			t.Errorf("unexpected filter: %s", q.Filter)
		}
		return knnResult(
			db.SearchEntry{Key: "jobsearch:jobs:job-2", Score: 7.3},
			db.SearchEntry{Key: "jobsearch:jobs:job-1", Score: 2.1},
		), nil
	}

	entries, err := repo.FetchKeyword(ctx, "golang berlin", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// BM25 scores pass through untransformed.
	if entries[0].ID != "job-2" || entries[0].Score != 7.3 {
		t.Errorf("entry 0 = %+v", entries[0])
	}
}

func TestFetchKeyword_EmptyResults(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchBM25Fn = func(_ context.Context, _ *db.TextQuery) (*db.SearchResult, error) {
		return &db.SearchResult{Total: 0}, nil
	}

	entries, err := repo.FetchKeyword(context.Background(), "nothing", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestFetchKeyword_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)

	ms.searchBM25Fn = func(_ context.Context, _ *db.TextQuery) (*db.SearchResult, error) {
		return nil, errors.New("connection refused")
	}

	_, err := repo.FetchKeyword(context.Background(), "golang", 10)
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestExtractID_UnprefixedKeyPassesThrough(t *testing.T) {
	if got := extractID("job-1"); got != "job-1" {
		t.Errorf("extractID = %q", got)
	}
	if got := extractID("jobsearch:jobs:abc"); got != "abc" {
		t.Errorf("extractID = %q", got)
	}
}
