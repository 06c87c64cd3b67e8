package domain

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the item offset for the current page (0-based).
// Formula: (Page - 1) * PageSize.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Paginate returns the window of items selected by p, and the total count.
// Out-of-range pages yield an empty, non-nil slice.
func Paginate[T any](items []T, p PaginationParams) ([]T, int) {
	total := len(items)
	if p.PageSize <= 0 {
		return items, total
	}
	start := p.Offset()
	if start >= total {
		return []T{}, total
	}
	end := min(start+p.PageSize, total)
	return items[start:end], total
}
