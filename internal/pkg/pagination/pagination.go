package pagination

import (
	"math"
	"net/http"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params is the requested page, 1-based.
type Params struct {
	Page     int
	PageSize int
}

// Normalize clamps page and page size into their accepted ranges.
func (p *Params) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// FromQuery reads page and pageSize query parameters. Unparseable values fall back to defaults.
func FromQuery(r *http.Request) Params {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("pageSize"))
	p := Params{Page: page, PageSize: size}
	p.Normalize()
	return p
}

// Page is the list envelope returned by every paginated endpoint.
type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

func NewPage[T any](data []T, params Params, total int64) Page[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if params.PageSize > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(params.PageSize)))
	}
	return Page[T]{
		Data:       data,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}
}

// Map converts the items of a page, keeping its counters.
func Map[T, R any](p Page[T], fn func(T) R) Page[R] {
	out := make([]R, len(p.Data))
	for i, v := range p.Data {
		out[i] = fn(v)
	}
	return Page[R]{
		Data:       out,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
	}
}
