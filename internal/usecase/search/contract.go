package search

import (
	"context"

	"github.com/hirelens/jobsearch/internal/domain"
	"github.com/hirelens/jobsearch/internal/domain/search/candidate"
)

// VectorSource returns candidates nearest to a query vector, best first.
// Entries whose similarity falls below minSimilarity are excluded at the
// source, before the limit applies, so fusion never has to special-case
// filtered-out candidates.
type VectorSource interface {
	FetchVector(ctx context.Context, vector []float32, limit int, minSimilarity float64) ([]candidate.Entry, error)
}

// KeywordSource returns candidates ranked by lexical relevance, best first.
type KeywordSource interface {
	FetchKeyword(ctx context.Context, query string, limit int) ([]candidate.Entry, error)
}

// JobStore hydrates a page of ranked ids in one batched lookup. Ids that no
// longer resolve are skipped; remaining jobs keep input order.
type JobStore interface {
	FetchMany(ctx context.Context, ids []string) ([]domain.Job, error)
}

// Embedder vectorizes the query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
