package search

import (
	"fmt"

	"github.com/hirelens/jobsearch/internal/domain"
	"github.com/hirelens/jobsearch/internal/domain/search/fused"
	"github.com/hirelens/jobsearch/internal/domain/search/page"
)

// paginate slices one page out of a fused ranking. Pure slicing: the input
// is assumed final, nothing is re-sorted. Consecutive page numbers partition
// the ranking exactly; a page beyond the end yields an empty slice with the
// envelope still describing the full set.
func paginate(ranked []fused.Entry, pageNum, pageSize int) ([]fused.Entry, page.Meta, error) {
	if pageNum < 1 {
		return nil, page.Meta{}, fmt.Errorf("%w: page must be >= 1", domain.ErrInvalidPage)
	}
	if pageSize < 1 {
		return nil, page.Meta{}, fmt.Errorf("%w: page_size must be >= 1", domain.ErrInvalidPage)
	}

	meta := page.NewMeta(pageNum, pageSize, len(ranked))
	start, end := meta.Bounds()
	return ranked[start:end], meta, nil
}
