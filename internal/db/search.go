package db

// KNNQuery is the input for vector similarity search. Filter is a raw
// FT.SEARCH pre-filter expression applied before the KNN clause ("*" when
// empty); this service only ever pre-filters on its own status flags, so no
// filter AST is needed.
type KNNQuery struct {
	IndexName    string
	Filter       string
	Vector       []float32
	K            int
	ReturnFields []string
}

// TextQuery is the input for BM25 text search over the given text field.
type TextQuery struct {
	IndexName    string
	Field        string
	Query        string
	Filter       string
	TopK         int
	ReturnFields []string
}

// ListQuery is the input for plain paginated search (unranked listing).
type ListQuery struct {
	IndexName    string
	Query        string
	SortBy       string
	SortDesc     bool
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit. For KNN searches Score is the raw
// cosine distance (lower = closer); for BM25 it is the relevance score
// (higher = better). Callers own any further mapping.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
