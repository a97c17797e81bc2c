// Package batch handles bulk job ingestion. All texts in a request are
// vectorized with a single provider call when the embedder supports it.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hirelens/jobsearch/internal/domain"
)

// MaxBatchSize is the default cap for one bulk request.
const MaxBatchSize = 100

// Repository persists job records.
type Repository interface {
	Upsert(ctx context.Context, j *domain.Job) (bool, error)
}

// Service ingests jobs in bulk.
type Service struct {
	repo    Repository
	embed   domain.Embedder
	maxSize int
}

// New creates a batch ingestion service. When embed also implements
// domain.BatchEmbedder the whole batch goes out as one provider call.
func New(repo Repository, embed domain.Embedder) *Service {
	return &Service{repo: repo, embed: embed, maxSize: MaxBatchSize}
}

// WithMaxSize overrides the per-request job cap (config-driven).
func (s *Service) WithMaxSize(n int) *Service {
	if n > 0 {
		s.maxSize = n
	}
	return s
}

// Create validates and persists one batch of jobs. The whole batch is
// embedded before anything is written, so a provider failure leaves the
// store untouched. Validation failures name the offending index.
func (s *Service) Create(ctx context.Context, jobs []domain.Job) ([]domain.Job, error) {
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: batch is empty", domain.ErrValidation)
	}
	if len(jobs) > s.maxSize {
		return nil, fmt.Errorf("%w: batch exceeds %d jobs", domain.ErrValidation, s.maxSize)
	}

	now := time.Now().UTC()
	texts := make([]string, len(jobs))
	for i := range jobs {
		if jobs[i].JobType == "" {
			jobs[i].JobType = domain.FullTime
		}
		if jobs[i].SalaryCurrency == "" {
			jobs[i].SalaryCurrency = "USD"
		}
		if err := jobs[i].Validate(); err != nil {
			return nil, fmt.Errorf("job [%d]: %w", i, err)
		}
		jobs[i].ID = uuid.NewString()
		jobs[i].CreatedAt = now
		jobs[i].UpdatedAt = now
		texts[i] = jobs[i].EmbeddingText()
	}

	res, err := s.batchEmbed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed batch: %w", err)
	}
	if len(res.Embeddings) != len(jobs) {
		return nil, fmt.Errorf("embed batch: got %d vectors for %d jobs", len(res.Embeddings), len(jobs))
	}

	for i := range jobs {
		jobs[i].Vector = res.Embeddings[i]
		if _, err := s.repo.Upsert(ctx, &jobs[i]); err != nil {
			return nil, fmt.Errorf("persist job [%d]: %w", i, err)
		}
	}
	return jobs, nil
}

func (s *Service) batchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := s.embed.(domain.BatchEmbedder); ok {
		return be.BatchEmbed(ctx, texts)
	}
	return domain.BatchFallback(ctx, s.embed, texts)
}
