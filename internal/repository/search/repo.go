// Package search adapts the Redis FT.SEARCH primitives into the candidate
// source contracts consumed by the ranking core.
package search

import (
	"context"
	"fmt"

	"github.com/hirelens/jobsearch/internal/db"
	"github.com/hirelens/jobsearch/internal/domain"
	"github.com/hirelens/jobsearch/internal/domain/search/candidate"
	"github.com/hirelens/jobsearch/internal/repository/jobs"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchBM25(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Repo implements the VectorSource and KeywordSource contracts of
// usecase/search over one FT index.
type Repo struct {
	store store
}

// New creates a candidate source repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// FetchVector returns up to limit candidates nearest to the query vector,
// best first. Cosine distance maps to similarity as 1-distance clamped to
// [0,1]; candidates below minSimilarity are filtered here, at the source, so
// fusion never sees them.
func (r *Repo) FetchVector(
	ctx context.Context, vector []float32, limit int, minSimilarity float64,
) ([]candidate.Entry, error) {
	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName: jobs.IndexName,
		Filter:    jobs.ActiveFilter,
		Vector:    vector,
		K:         limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search knn: %w: %w", domain.ErrUpstreamUnavailable, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	entries := make([]candidate.Entry, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		similarity := max(0, min(1, 1-e.Score))
		if similarity < minSimilarity {
			// Entries arrive nearest first, so everything after this
			// point is below the threshold too.
			break
		}
		entries = append(entries, candidate.Entry{
			ID:    extractID(e.Key),
			Score: similarity,
		})
	}
	return entries, nil
}

// FetchKeyword returns up to limit candidates ranked by BM25 relevance to
// the query text, best first.
func (r *Repo) FetchKeyword(ctx context.Context, query string, limit int) ([]candidate.Entry, error) {
	sr, err := r.store.SearchBM25(ctx, &db.TextQuery{
		IndexName: jobs.IndexName,
		Field:     "search_text",
		Query:     query,
		Filter:    jobs.ActiveFilter,
		TopK:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search bm25: %w: %w", domain.ErrUpstreamUnavailable, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	entries := make([]candidate.Entry, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		entries = append(entries, candidate.Entry{
			ID:    extractID(e.Key),
			Score: e.Score,
		})
	}
	return entries, nil
}

func extractID(key string) string {
	const prefix = domain.KeyPrefix + "jobs:"
	if len(key) > len(prefix) && key[:len(prefix)] == prefix {
		return key[len(prefix):]
	}
	return key
}
