// Package jobs owns the job record lifecycle: creation, updates with
// embedding regeneration, soft deletion, and the unranked listing.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hirelens/jobsearch/internal/domain"
	"github.com/hirelens/jobsearch/internal/domain/search/page"
	"github.com/hirelens/jobsearch/internal/domain/search/request"
)

// Service handles job CRUD and listing.
type Service struct {
	repo  Repository
	embed Embedder
}

// New creates a job service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{repo: repo, embed: embed}
}

// Create validates the payload, assigns an id and timestamps, generates the
// embedding from the composed text, and persists the job.
func (s *Service) Create(ctx context.Context, j domain.Job) (domain.Job, error) {
	applyDefaults(&j)
	if err := j.Validate(); err != nil {
		return domain.Job{}, err
	}

	j.ID = uuid.NewString()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now

	if err := s.embedJob(ctx, &j); err != nil {
		return domain.Job{}, err
	}

	if _, err := s.repo.Upsert(ctx, &j); err != nil {
		return domain.Job{}, fmt.Errorf("persist job: %w", err)
	}
	return j, nil
}

// Update replaces a job's mutable fields. The embedding is regenerated only
// when a field feeding EmbeddingText changed; otherwise the stored vector is
// carried over untouched.
func (s *Service) Update(ctx context.Context, id string, j domain.Job) (domain.Job, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Job{}, err
	}

	applyDefaults(&j)
	if err := j.Validate(); err != nil {
		return domain.Job{}, err
	}

	j.ID = current.ID
	j.CreatedAt = current.CreatedAt
	j.UpdatedAt = time.Now().UTC()

	if current.TextFieldsEqual(&j) {
		j.Vector = current.Vector
	} else if err := s.embedJob(ctx, &j); err != nil {
		return domain.Job{}, err
	}

	if _, err := s.repo.Upsert(ctx, &j); err != nil {
		return domain.Job{}, fmt.Errorf("persist job: %w", err)
	}
	return j, nil
}

// Get returns a single job by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Job, error) {
	j, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Job{}, err
	}
	return j, nil
}

// Delete soft-deletes a job. The record stays in the store but drops out of
// every search, listing, and lookup.
func (s *Service) Delete(ctx context.Context, id string) error {
	j, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	j.IsDeleted = true
	j.UpdatedAt = time.Now().UTC()

	if _, err := s.repo.Upsert(ctx, &j); err != nil {
		return fmt.Errorf("persist delete: %w", err)
	}
	return nil
}

// List returns one page of jobs ordered newest first, with the same
// pagination envelope the search endpoints use. Zero page/pageSize mean the
// defaults.
func (s *Service) List(ctx context.Context, pageNum, pageSize int, activeOnly bool) (page.Meta, []domain.Job, error) {
	if pageNum == 0 {
		pageNum = 1
	}
	if pageSize == 0 {
		pageSize = request.DefaultPageSize
	}
	if pageNum < 1 {
		return page.Meta{}, nil, fmt.Errorf("%w: page must be >= 1", domain.ErrInvalidPage)
	}
	if pageSize < 1 || pageSize > request.MaxPageSize {
		return page.Meta{}, nil, fmt.Errorf("%w: page_size must be between 1 and %d",
			domain.ErrInvalidPage, request.MaxPageSize)
	}

	offset := (pageNum - 1) * pageSize
	listed, total, err := s.repo.List(ctx, offset, pageSize, activeOnly)
	if err != nil {
		return page.Meta{}, nil, fmt.Errorf("list jobs: %w", err)
	}

	return page.NewMeta(pageNum, pageSize, total), listed, nil
}

func (s *Service) embedJob(ctx context.Context, j *domain.Job) error {
	res, err := s.embed.Embed(ctx, j.EmbeddingText())
	if err != nil {
		return fmt.Errorf("embed job text: %w", err)
	}
	j.Vector = res.Embedding
	return nil
}

func applyDefaults(j *domain.Job) {
	if j.JobType == "" {
		j.JobType = domain.FullTime
	}
	if j.SalaryCurrency == "" {
		j.SalaryCurrency = "USD"
	}
}
