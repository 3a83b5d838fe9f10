package dto

// Pagination is the envelope metadata attached to paginated list responses.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewPagination computes the page count (ceil of total/limit) for a listing.
func NewPagination(total int64, page, limit int) Pagination {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	return Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: int((total + int64(limit) - 1) / int64(limit)),
	}
}
