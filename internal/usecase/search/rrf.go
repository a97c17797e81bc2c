package search

import (
	"sort"

	"github.com/hirelens/jobsearch/internal/domain/search/candidate"
	"github.com/hirelens/jobsearch/internal/domain/search/fused"
)

// DefaultRRFK is the Reciprocal Rank Fusion smoothing constant (standard
// value from Cormack et al. 2009). It dampens the advantage of rank-1 items
// so a strong showing in one list cannot drown out moderate agreement
// between both.
const DefaultRRFK = 60

// fuseRRF merges the vector and keyword candidate lists via Reciprocal Rank
// Fusion: score(id) = sum over contributing lists of 1/(k + rank), with
// 1-based ranks. The result is the FULL fused ranking, never truncated here,
// ordered score descending with ties broken by ascending id so identical
// inputs always produce identical orderings. An id absent from one list
// simply contributes nothing for that list; one empty input degenerates to
// the other list's order.
func fuseRRF(vector, keyword []candidate.Entry, k int) []fused.Entry {
	if k <= 0 {
		k = DefaultRRFK
	}

	merged := make(map[string]*fused.Entry, len(vector)+len(keyword))

	for i, c := range vector {
		rank := i + 1
		merged[c.ID] = &fused.Entry{
			ID:         c.ID,
			Score:      1.0 / float64(k+rank),
			VectorRank: rank,
			Similarity: c.Score,
		}
	}

	for i, c := range keyword {
		rank := i + 1
		if e, ok := merged[c.ID]; ok {
			e.Score += 1.0 / float64(k+rank)
			e.KeywordRank = rank
		} else {
			merged[c.ID] = &fused.Entry{
				ID:          c.ID,
				Score:       1.0 / float64(k+rank),
				KeywordRank: rank,
			}
		}
	}

	out := make([]fused.Entry, 0, len(merged))
	for _, e := range merged {
		out = append(out, *e)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})

	return out
}

// passThroughVector lifts a single-source vector ranking into fused entries
// so pagination and hydration treat all modes uniformly.
func passThroughVector(entries []candidate.Entry) []fused.Entry {
	out := make([]fused.Entry, len(entries))
	for i, c := range entries {
		out[i] = fused.Entry{
			ID:         c.ID,
			Score:      c.Score,
			VectorRank: i + 1,
			Similarity: c.Score,
		}
	}
	return out
}

// passThroughKeyword lifts a single-source keyword ranking into fused entries.
func passThroughKeyword(entries []candidate.Entry) []fused.Entry {
	out := make([]fused.Entry, len(entries))
	for i, c := range entries {
		out[i] = fused.Entry{
			ID:          c.ID,
			Score:       c.Score,
			KeywordRank: i + 1,
		}
	}
	return out
}
