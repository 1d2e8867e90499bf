package pagination

import "gorm.io/gorm"

// Pagination carries 1-based page selection parsed from query parameters.
type Pagination struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}

type PageInfo struct {
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}

// Normalize clamps out-of-range values back to the defaults.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Apply adds LIMIT/OFFSET to the statement.
func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	return stmt.Limit(p.Limit).Offset(p.Offset())
}

// BuildPageInfo computes the page count from the unpaginated row total.
func BuildPageInfo(total int64, p Pagination) PageInfo {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return PageInfo{
		TotalPages:  pages,
		CurrentPage: p.Page,
	}
}
