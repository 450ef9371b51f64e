// Package pagination turns raw query parameters into canonical paging options
// and wraps result pages with navigation metadata. Every list endpoint goes
// through this package so paging behaves identically across entities.
package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage   = 1
	DefaultLimit  = 10
	DefaultSortBy = "createdAt"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Options is the canonical, validated form of the paging query parameters.
type Options struct {
	Page      int
	Limit     int
	SortBy    string // JSON field name; repositories map it to a column
	SortOrder string // "asc" or "desc"
}

// Skip returns the row offset for the current page.
func (o Options) Skip() int {
	return (o.Page - 1) * o.Limit
}

// OrderClause builds a SQL ORDER BY fragment using the given JSON-name to
// column allowlist. Unknown sort keys fall back to created_at so callers can
// never inject arbitrary column expressions.
func (o Options) OrderClause(columns map[string]string) string {
	col, ok := columns[o.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if o.SortOrder == SortAsc {
		dir = "ASC"
	}
	return col + " " + dir
}

// FromQuery normalizes raw query parameters. Non-numeric or non-positive
// page/limit fall back to the defaults silently; limit is clamped to maxLimit
// to bound result size. Unknown sort orders fall back to descending.
func FromQuery(q url.Values, maxLimit int) Options {
	opts := Options{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    DefaultSortBy,
		SortOrder: SortDesc,
	}

	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		opts.Page = n
	}

	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		opts.Limit = n
	}
	if maxLimit > 0 && opts.Limit > maxLimit {
		opts.Limit = maxLimit
	}

	if s := strings.TrimSpace(q.Get("sortBy")); s != "" {
		opts.SortBy = s
	}

	if order := strings.ToLower(q.Get("sortOrder")); order == SortAsc {
		opts.SortOrder = SortAsc
	}

	return opts
}

// Meta describes the page of a Result.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// Result is a page of records plus its metadata.
type Result struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data"`
}

// NewResult wraps items with paging metadata. totalPages = ceil(total/limit),
// 0 when total is 0. Skip is deliberately not recomputed here; that belongs
// to Options.
func NewResult(items interface{}, total int64, page, limit int) Result {
	var pages int64
	if total > 0 && limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Result{
		Meta: Meta{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: pages,
		},
		Data: items,
	}
}
