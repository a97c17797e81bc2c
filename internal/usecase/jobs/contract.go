package jobs

import (
	"context"

	"github.com/hirelens/jobsearch/internal/domain"
)

// Repository defines the persistence contract for job records.
type Repository interface {
	Upsert(ctx context.Context, j *domain.Job) (bool, error)
	Get(ctx context.Context, id string) (domain.Job, error)
	List(ctx context.Context, offset, limit int, activeOnly bool) ([]domain.Job, int, error)
}

// Embedder vectorizes job text for persistence.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
