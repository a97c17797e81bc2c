package mode

// Mode is the search strategy.
type Mode string

// Search mode constants.
const (
	// Semantic ranks by vector similarity alone.
	Semantic Mode = "semantic"
	// Keyword ranks by BM25 lexical relevance alone.
	Keyword Mode = "keyword"
	// Hybrid fuses both rankings via Reciprocal Rank Fusion.
	Hybrid Mode = "hybrid"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Semantic || m == Keyword || m == Hybrid
}

// UsesVector reports whether the mode needs the query embedded.
func (m Mode) UsesVector() bool {
	return m == Semantic || m == Hybrid
}

// UsesKeyword reports whether the mode needs the full-text index.
func (m Mode) UsesKeyword() bool {
	return m == Keyword || m == Hybrid
}
