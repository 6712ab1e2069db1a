// Package pagination pages list queries and shapes list responses.
package pagination

import (
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest is bound from the page and page_size query parameters.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Defaults replaces missing values and clamps the page size.
func (p *PageRequest) Defaults() {
	if p.Page <= 0 {
		p.Page = 1
	}
	switch {
	case p.PageSize <= 0:
		p.PageSize = DefaultPageSize
	case p.PageSize > MaxPageSize:
		p.PageSize = MaxPageSize
	}
}

// Offset is the number of rows before the requested page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse is the envelope of every list endpoint.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResponse wraps one page of data. Data is never null in JSON.
func NewPageResponse[T any](data []T, page, pageSize int, totalItems int64) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	resp := PageResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
	}
	if pageSize > 0 {
		resp.TotalPages = int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	}
	return resp
}

// MapPage converts the items of a page and keeps its counters.
func MapPage[T, U any](p PageResponse[T], fn func(T) U) PageResponse[U] {
	out := make([]U, 0, len(p.Data))
	for _, item := range p.Data {
		out = append(out, fn(item))
	}
	return PageResponse[U]{
		Data:       out,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

// Paginate is a GORM scope applying OFFSET and LIMIT for req.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}

// Find counts the rows matched by query, then loads the requested page in
// the given order. query must already carry its model and filters.
func Find[T any](query *gorm.DB, order string, req PageRequest) (PageResponse[T], error) {
	req.Defaults()

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return PageResponse[T]{}, err
	}

	var rows []T
	if total > int64(req.Offset()) {
		if err := query.Session(&gorm.Session{}).Order(order).Scopes(Paginate(req)).Find(&rows).Error; err != nil {
			return PageResponse[T]{}, err
		}
	}
	return NewPageResponse(rows, req.Page, req.PageSize, total), nil
}
