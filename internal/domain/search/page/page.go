// Package page defines the pagination envelope shared by search and listing
// responses.
package page

// Meta describes one page of a ranked result set.
type Meta struct {
	Page         int
	PageSize     int
	TotalResults int
	TotalPages   int
	HasNext      bool
	HasPrevious  bool
}

// NewMeta computes the envelope for a page over totalResults items.
// totalPages is ceil(totalResults/pageSize), 0 for an empty set. A page
// beyond totalPages is legal and yields HasNext=false with HasPrevious
// reporting whether any earlier page exists.
func NewMeta(pageNum, pageSize, totalResults int) Meta {
	totalPages := 0
	if totalResults > 0 {
		totalPages = (totalResults + pageSize - 1) / pageSize
	}
	return Meta{
		Page:         pageNum,
		PageSize:     pageSize,
		TotalResults: totalResults,
		TotalPages:   totalPages,
		HasNext:      pageNum < totalPages,
		HasPrevious:  pageNum > 1 && totalPages > 0,
	}
}

// Bounds returns the [start, end) slice offsets for this page, clamped to
// the set size. An out-of-range page returns an empty interval.
func (m Meta) Bounds() (start, end int) {
	start = (m.Page - 1) * m.PageSize
	if start > m.TotalResults {
		return m.TotalResults, m.TotalResults
	}
	end = start + m.PageSize
	if end > m.TotalResults {
		end = m.TotalResults
	}
	return start, end
}
