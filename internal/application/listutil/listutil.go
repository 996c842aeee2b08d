package listutil

import (
	"net/url"
	"strconv"
)

// Params carries the list view parameters parsed from a request.
type Params struct {
	Page    int    // 1-indexed page number
	PerPage int    // rows per page
	Sort    string // column name, empty for default order
	Desc    bool
	Search  string // free-text search query
}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// DefaultPerPage is the default number of rows per page.
const DefaultPerPage = 25

// maxPerPage caps the rows a single page may request.
const maxPerPage = 200

// Parse extracts list parameters from URL query values. Sort columns
// outside the allowed set are dropped.
// POST: Page >= 1, 1 <= PerPage <= maxPerPage
func Parse(q url.Values, allowedSortCols []string) Params {
	p := Params{
		Page:    1,
		PerPage: DefaultPerPage,
		Search:  q.Get("q"),
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(q.Get("per_page")); err == nil && n >= 1 && n <= maxPerPage {
		p.PerPage = n
	}
	sortCol := q.Get("sort")
	for _, col := range allowedSortCols {
		if sortCol == col {
			p.Sort = col
			break
		}
	}
	p.Desc = q.Get("dir") == "desc"
	return p
}

// NewPageInfo computes pagination metadata with the page clamped into
// the valid range.
// PRE: total >= 0
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the first index on the current page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Slice returns the [start, end) bounds of the current page for a list
// of the given length.
func (p PageInfo) Slice(length int) (int, int) {
	start := p.Offset()
	if start > length {
		start = length
	}
	end := start + p.PerPage
	if end > length {
		end = length
	}
	return start, end
}

// ShowPagination reports whether pagination controls are needed.
func (p PageInfo) ShowPagination() bool {
	return p.Total > p.PerPage
}
