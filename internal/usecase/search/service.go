// Package search is the ranking core: it orchestrates candidate retrieval,
// Reciprocal Rank Fusion, pagination, and hydration for one request.
package search

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hirelens/jobsearch/internal/domain"
	"github.com/hirelens/jobsearch/internal/domain/search/candidate"
	"github.com/hirelens/jobsearch/internal/domain/search/fused"
	"github.com/hirelens/jobsearch/internal/domain/search/mode"
	"github.com/hirelens/jobsearch/internal/domain/search/page"
	"github.com/hirelens/jobsearch/internal/domain/search/request"
)

// Item is one hydrated search hit. Similarity and Distance are set only when
// the job reached the ranking through the vector source; for hybrid results
// Score is the fused RRF value, otherwise it equals the source score.
type Item struct {
	Job        domain.Job
	Score      float64
	Similarity *float64
	Distance   *float64
}

// Response is one page of ranked, hydrated results.
type Response struct {
	Mode          mode.Mode
	Meta          page.Meta
	Items         []Item
	SemanticCount int
	KeywordCount  int
}

// Service handles job search across semantic, keyword, and hybrid modes.
// Stateless across requests; safe for concurrent use.
type Service struct {
	vector  VectorSource
	keyword KeywordSource
	store   JobStore
	embed   Embedder
	rrfK    int
}

// New creates a search service with the default RRF constant.
func New(vector VectorSource, keyword KeywordSource, store JobStore, embed Embedder) *Service {
	return &Service{
		vector:  vector,
		keyword: keyword,
		store:   store,
		embed:   embed,
		rrfK:    DefaultRRFK,
	}
}

// WithRRFK overrides the RRF smoothing constant (config-driven).
func (s *Service) WithRRFK(k int) *Service {
	if k > 0 {
		s.rrfK = k
	}
	return s
}

// Search executes one request: fetch candidates per mode, fuse or pass
// through, paginate, hydrate. A failed candidate fetch fails the whole
// request; there is no degraded single-source fallback, because a silently
// degraded fused ranking would be indistinguishable from a correct one.
func (s *Service) Search(ctx context.Context, req *request.Request) (Response, error) {
	var (
		ranked                      []fused.Entry
		semanticCount, keywordCount int
	)

	switch req.Mode() {
	case mode.Semantic:
		entries, err := s.fetchVector(ctx, req, req.Threshold())
		if err != nil {
			return Response{}, err
		}
		ranked = passThroughVector(entries)
		semanticCount = len(entries)

	case mode.Keyword:
		entries, err := s.keyword.FetchKeyword(ctx, req.Query(), req.CandidateLimit())
		if err != nil {
			return Response{}, fmt.Errorf("fetch keyword candidates: %w", err)
		}
		ranked = passThroughKeyword(entries)
		keywordCount = len(entries)

	case mode.Hybrid:
		vec, kw, err := s.fetchBoth(ctx, req)
		if err != nil {
			return Response{}, err
		}
		ranked = fuseRRF(vec, kw, s.rrfK)
		semanticCount, keywordCount = len(vec), len(kw)

	default:
		return Response{}, fmt.Errorf("%w: unsupported search mode %q", domain.ErrInvalidQuery, req.Mode())
	}

	pageEntries, meta, err := paginate(ranked, req.Page(), req.PageSize())
	if err != nil {
		return Response{}, err
	}

	items, err := s.hydrate(ctx, pageEntries)
	if err != nil {
		return Response{}, err
	}

	return Response{
		Mode:          req.Mode(),
		Meta:          meta,
		Items:         items,
		SemanticCount: semanticCount,
		KeywordCount:  keywordCount,
	}, nil
}

// fetchVector embeds the query and runs the KNN source.
func (s *Service) fetchVector(
	ctx context.Context, req *request.Request, threshold float64,
) ([]candidate.Entry, error) {
	emb, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	entries, err := s.vector.FetchVector(ctx, emb.Embedding, req.CandidateLimit(), threshold)
	if err != nil {
		return nil, fmt.Errorf("fetch vector candidates: %w", err)
	}
	return entries, nil
}

// fetchBoth runs the two candidate fetches concurrently so hybrid latency is
// bounded by the slower source, not their sum. Fusion is commutative in its
// inputs, so the join order doesn't matter; ctx cancellation abandons both.
// Hybrid mode applies no similarity threshold: RRF already discounts weak
// vector ranks, and the keyword list anchors lexical matches.
func (s *Service) fetchBoth(
	ctx context.Context, req *request.Request,
) (vec, kw []candidate.Entry, err error) {
	emb, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		return nil, nil, fmt.Errorf("vectorize query: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var ferr error
		vec, ferr = s.vector.FetchVector(gctx, emb.Embedding, req.CandidateLimit(), 0)
		if ferr != nil {
			return fmt.Errorf("fetch vector candidates: %w", ferr)
		}
		return nil
	})

	g.Go(func() error {
		var ferr error
		kw, ferr = s.keyword.FetchKeyword(gctx, req.Query(), req.CandidateLimit())
		if ferr != nil {
			return fmt.Errorf("fetch keyword candidates: %w", ferr)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return vec, kw, nil
}

// hydrate fetches the page's jobs in one batched lookup and reattaches the
// rank-derived fields. FetchMany preserves the ranked id order and drops ids
// deleted since ranking, so no re-sorting is needed here.
func (s *Service) hydrate(ctx context.Context, entries []fused.Entry) ([]Item, error) {
	if len(entries) == 0 {
		return []Item{}, nil
	}

	jobsByID := make(map[string]fused.Entry, len(entries))
	for _, e := range entries {
		jobsByID[e.ID] = e
	}

	hydrated, err := s.store.FetchMany(ctx, fused.IDs(entries))
	if err != nil {
		return nil, fmt.Errorf("hydrate page: %w", err)
	}

	items := make([]Item, 0, len(hydrated))
	for _, j := range hydrated {
		e := jobsByID[j.ID]
		item := Item{Job: j, Score: e.Score}
		if e.VectorRank > 0 {
			sim := e.Similarity
			dist := 1 - sim
			item.Similarity = &sim
			item.Distance = &dist
		}
		items = append(items, item)
	}
	return items, nil
}
