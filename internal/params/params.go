package params

import "math"

const (
	DefaultLimit = 15
	MaxLimit     = 30
)

// Pagination holds pagination info and computed metadata.
type Pagination struct {
	Limit      int  `json:"limit"`  // items per page
	Offset     int  `json:"offset"` // index of the first item on the page
	Page       int  `json:"page"`   // current page number, 1-based
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// New normalizes the --page and --limit flags. Non-positive values fall back
// to the defaults, the limit is capped at MaxLimit and the page at the
// largest one whose offset fits in an int.
func New(page, limit int) Pagination {
	p := Pagination{Limit: DefaultLimit, Page: 1}

	switch {
	case limit <= 0:
	case limit > MaxLimit:
		p.Limit = MaxLimit
	default:
		p.Limit = limit
	}
	if page > 0 {
		// keeps Offset from overflowing
		p.Page = min(page, math.MaxInt/p.Limit)
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// ComputeMeta fills the totals once the item count is known.
func (p *Pagination) ComputeMeta(total int) {
	p.Total = total
	if p.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	p.HasPrev = p.Page > 1
	p.HasNext = (p.Page * p.Limit) < total
}

// Paginate cuts the current page out of items and computes the metadata.
func Paginate[T any](items []T, p Pagination) ([]T, Pagination) {
	p.ComputeMeta(len(items))
	if p.Offset < 0 || p.Offset >= len(items) {
		return []T{}, p
	}
	end := min(p.Offset+p.Limit, len(items))
	return items[p.Offset:end], p
}
