package helpers

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultPage     = 1 // pages are 1-based
)

// CalculateSkipLimit turns a 1-based page request into cursor skip and limit.
// When both page and size are zero the caller asked for no paging and both
// results are zero, meaning "everything".
func CalculateSkipLimit(page, size int) (skip, limit int64) {
	if page == 0 && size == 0 {
		return 0, 0
	}

	if size <= 0 {
		size = DefaultPageSize
	} else if size > MaxPageSize {
		size = MaxPageSize
	}

	if page < 1 {
		page = DefaultPage
	}

	return int64((page - 1) * size), int64(size)
}
