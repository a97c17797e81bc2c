// Package fused holds the output entries of rank fusion.
package fused

// Entry is one job in the fused ranking. Score is the RRF sum of the
// reciprocal contributing ranks. VectorRank and KeywordRank are 1-based
// positions in the source lists, 0 when the job was absent from that source.
// Similarity carries the vector source's similarity for jobs that appeared
// there, so hydration can surface it without re-querying.
type Entry struct {
	ID          string
	Score       float64
	VectorRank  int
	KeywordRank int
	Similarity  float64
}

// IDs extracts the ranked id sequence.
func IDs(entries []Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
