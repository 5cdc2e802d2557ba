package domain

// Listing limits for business directories and the admin review queue.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PaginationParams selects one page of a business listing.
// Page is 1-indexed; Limit never exceeds MaxPageLimit.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams reads the optional ?page= and ?limit= values.
// Missing or non-positive values use page 1 and DefaultPageLimit.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page > 0 {
		p.Page = *page
	}
	if limit != nil && *limit > 0 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset is the row offset of the first business on the page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
