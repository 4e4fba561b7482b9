// Package paging turns raw page/size parameters into the request the data layer understands.
package paging

const (
	// FirstPage is the lowest one-based page number a caller may ask for.
	FirstPage = 1
	// MinPerPage and MaxPerPage bound the page size.
	MinPerPage = 5
	MaxPerPage = 50

	// SortCreatedAt is the only sort key the catalog exposes.
	SortCreatedAt = "created_at"
)

// Request is a normalized, zero-based page request.
type Request struct {
	Page int
	Size int
	Sort string
	Desc bool
}

// Offset is the number of rows to skip.
func (r Request) Offset() int {
	return r.Page * r.Size
}

// Normalize clamps one-based page and perPage values into a Request sorted by creation
// time, newest first. Out-of-range values are coerced, never rejected.
func Normalize(page, perPage int) Request {
	if page < FirstPage {
		page = FirstPage
	}

	switch {
	case perPage < MinPerPage:
		perPage = MinPerPage
	case perPage > MaxPerPage:
		perPage = MaxPerPage
	}

	return Request{
		Page: page - 1,
		Size: perPage,
		Sort: SortCreatedAt,
		Desc: true,
	}
}

// Page is a slice of results together with the total row count.
type Page[T any] struct {
	Items []T
	Total int64
	// Number is zero-based.
	Number int
}
