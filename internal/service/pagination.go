package service

// PageSize is the fixed number of posts per page across all listings.
const PageSize = 10

// Page is the pagination envelope returned by every listing operation.
type Page[T any] struct {
	Items       []T   `json:"items"`
	PageNumber  int   `json:"page_number"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
	TotalCount  int64 `json:"total_count"`
}

// NewPage builds the envelope for a already-sliced item set.
func NewPage[T any](items []T, pageNumber int, totalCount int64) *Page[T] {
	totalPages := totalPagesFor(totalCount)
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:       items,
		PageNumber:  pageNumber,
		TotalPages:  totalPages,
		HasNext:     pageNumber < totalPages,
		HasPrevious: pageNumber > 1,
		TotalCount:  totalCount,
	}
}

// pageBounds clamps a requested page number into the valid range and returns
// the normalized page and its offset. A page below 1 becomes 1; a page past
// the end becomes the last page rather than an error.
func pageBounds(page int, totalCount int64) (pageNumber, offset int) {
	if page < 1 {
		page = 1
	}
	if last := totalPagesFor(totalCount); page > last {
		page = last
	}
	return page, (page - 1) * PageSize
}

func totalPagesFor(totalCount int64) int {
	pages := int((totalCount + PageSize - 1) / PageSize)
	if pages < 1 {
		pages = 1
	}
	return pages
}
