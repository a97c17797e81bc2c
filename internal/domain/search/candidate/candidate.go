// Package candidate holds the transient entries produced by the vector and
// keyword candidate sources. Entries live for one request only; they are
// consumed by the fuser and never persisted.
package candidate

// Entry pairs a job id with the raw score its source assigned. For vector
// candidates the score is a similarity in [0,1] (higher = closer); for
// keyword candidates it is the BM25 relevance (higher = more relevant).
// Either way the producing source orders entries best first.
type Entry struct {
	ID    string
	Score float64
}
