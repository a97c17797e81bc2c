// Package jobs persists job listings as JSON documents and serves the
// batched lookups the ranking core hydrates pages from.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hirelens/jobsearch/internal/db"
	"github.com/hirelens/jobsearch/internal/domain"
)

// store is the consumer interface for job persistence (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string, path string) ([][]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo implements the job persistence contracts of the usecase layer.
type Repo struct {
	store store
}

// New creates a job repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert creates or updates a job document. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, j *domain.Job) (bool, error) {
	key := jobKey(j.ID)

	data, err := json.Marshal(docFromJob(j))
	if err != nil {
		return false, fmt.Errorf("marshal job: %w", err)
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, upstream("check exists", err)
	}

	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return false, upstream("json.set", err)
	}

	return !exists, nil
}

// Get returns a job by id. Soft-deleted jobs are reported as missing.
func (r *Repo) Get(ctx context.Context, id string) (domain.Job, error) {
	raw, err := r.store.JSONGet(ctx, jobKey(id), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Job{}, domain.ErrJobNotFound
		}
		return domain.Job{}, upstream("json.get", err)
	}

	j, err := parseJob(raw)
	if err != nil {
		return domain.Job{}, fmt.Errorf("job %s: %w", id, err)
	}
	if j.IsDeleted {
		return domain.Job{}, domain.ErrJobNotFound
	}
	return j, nil
}

// FetchMany loads the given jobs in one pipelined round trip. Ids that no
// longer resolve are skipped; the result keeps the input order of the ids
// that do.
func (r *Repo) FetchMany(ctx context.Context, ids []string) ([]domain.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = jobKey(id)
	}

	raws, err := r.store.JSONGetMulti(ctx, keys, "$")
	if err != nil {
		return nil, upstream("json.get multi", err)
	}

	out := make([]domain.Job, 0, len(ids))
	for i, raw := range raws {
		if raw == nil {
			continue
		}
		j, err := parseJob(raw)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", ids[i], err)
		}
		if j.IsDeleted {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

// List returns one page of jobs ordered newest first, plus the total count
// of the filtered corpus. activeOnly narrows the listing to active jobs.
func (r *Repo) List(ctx context.Context, offset, limit int, activeOnly bool) ([]domain.Job, int, error) {
	filter := VisibleFilter
	if activeOnly {
		filter = ActiveFilter
	}

	sr, err := r.store.SearchList(ctx, &db.ListQuery{
		IndexName: IndexName,
		Query:     filter,
		SortBy:    "created_at",
		SortDesc:  true,
		Offset:    offset,
		Limit:     limit,
	})
	if err != nil {
		return nil, 0, upstream("search list", err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, 0, nil
	}

	out := make([]domain.Job, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		raw := entry.Fields["$"]
		if raw == "" {
			continue
		}
		j, err := parseJob([]byte(raw))
		if err != nil {
			return nil, 0, fmt.Errorf("job %s: %w", extractID(entry.Key), err)
		}
		out = append(out, j)
	}

	return out, sr.Total, nil
}

// Count returns the number of visible jobs.
func (r *Repo) Count(ctx context.Context, activeOnly bool) (int, error) {
	filter := VisibleFilter
	if activeOnly {
		filter = ActiveFilter
	}
	n, err := r.store.SearchCount(ctx, IndexName, filter)
	if err != nil {
		return 0, upstream("search count", err)
	}
	return n, nil
}

func extractID(key string) string {
	return strings.TrimPrefix(key, keyPrefix)
}

// upstream tags store failures so transport maps them to 503 rather than a
// generic 500.
func upstream(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrUpstreamUnavailable, err)
}
