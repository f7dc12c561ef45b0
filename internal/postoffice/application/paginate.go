package application

import "github.com/hkopendata/mobile-post-services/api/internal/postoffice/domain"

// Paging is a validated page/limit pair.
type Paging struct {
	Page  int
	Limit int
}

// NewPaging validates the bounds and returns the pair.
func NewPaging(page, limit int) (Paging, error) {
	if err := domain.ValidatePagination(page, limit); err != nil {
		return Paging{}, err
	}
	return Paging{Page: page, Limit: limit}, nil
}

// Offset is the index of the first record in the window.
func (p Paging) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta describes the window relative to the filtered total.
type PageMeta struct {
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// NewPageMeta computes totalPages as ceil(total/limit), zero for an empty
// result set.
func NewPageMeta(total int, paging Paging) PageMeta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + paging.Limit - 1) / paging.Limit
	}
	return PageMeta{
		Total:      total,
		Page:       paging.Page,
		Limit:      paging.Limit,
		TotalPages: totalPages,
	}
}

// Window clips [offset, offset+limit) to the slice bounds.
func Window(posts []domain.MobilePost, paging Paging) []domain.MobilePost {
	start := paging.Offset()
	if start >= len(posts) {
		return []domain.MobilePost{}
	}
	end := start + paging.Limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[start:end]
}
