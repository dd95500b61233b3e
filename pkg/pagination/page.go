package pagination

// Page is the visible window over a full result set.
type Page[T any] struct {
	// Items are the records visible on this page, in source order.
	Items []T

	// Index is the zero-based page index the window was computed for.
	Index int

	// Size is the fixed page size.
	Size int

	// TotalItems is the length of the full result set.
	TotalItems int

	// TotalPages is ceil(TotalItems/Size), or 0 for an empty set.
	TotalPages int
}

// HasPrevious reports whether a page exists before this one.
func (p Page[T]) HasPrevious() bool {
	return p.TotalPages > 0 && p.Index > 0 && p.Index < p.TotalPages
}

// HasNext reports whether a page exists after this one.
func (p Page[T]) HasNext() bool {
	return p.Index >= 0 && p.Index < p.TotalPages-1
}

// InRange reports whether Index addresses an existing page.
func (p Page[T]) InRange() bool {
	return p.Index >= 0 && p.Index < p.TotalPages
}

// TotalPages returns the number of pages needed to show n items.
// Returns 0 when there is nothing to show or the page size is not positive.
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Clamp keeps pageIndex within [0, totalPages-1].
// Returns 0 when there are no pages.
func Clamp(pageIndex, totalPages int) int {
	if totalPages <= 0 || pageIndex < 0 {
		return 0
	}
	if pageIndex >= totalPages {
		return totalPages - 1
	}
	return pageIndex
}

// Slice computes the page at pageIndex over items.
//
// Items of the returned page share the backing array with items but are
// capacity-limited, so appending to them never writes into the source.
func Slice[T any](items []T, pageIndex, pageSize int) Page[T] {
	page := Page[T]{
		Items:      []T{},
		Index:      pageIndex,
		Size:       pageSize,
		TotalItems: len(items),
		TotalPages: TotalPages(len(items), pageSize),
	}

	if !page.InRange() {
		return page
	}

	start := pageIndex * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	page.Items = items[start:end:end]

	return page
}
