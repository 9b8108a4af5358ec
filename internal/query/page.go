package query

import "strconv"

// Page is a clamped, 1-based pagination request.
type Page struct {
	Number int
	Limit  int
}

// ParsePage reads page/limit query values, falling back to page 1 and
// defaultLimit on absent, malformed or non-positive input.
func ParsePage(pageStr, limitStr string, defaultLimit int) Page {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	return Page{Number: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Pagination summarizes a listing result set.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

func Paginate(total int64, p Page) Pagination {
	return Pagination{
		Total: total,
		Page:  p.Number,
		Limit: p.Limit,
		Pages: (total + int64(p.Limit) - 1) / int64(p.Limit),
	}
}
