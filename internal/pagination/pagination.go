// Package pagination parses the uniform list controls shared by every
// collection endpoint: page, page_size, sort_by, sort_order.
package pagination

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params holds parsed list controls. SortBy is the raw query value; stores
// map it to a column through OrderBy so unknown values never reach SQL.
type Params struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// FromRequest reads list controls from the request query. Missing or
// malformed values fall back to defaults; page_size is clamped to MaxPageSize.
func FromRequest(r *http.Request) Params {
	q := r.URL.Query()

	p := Params{
		Page:      1,
		PageSize:  DefaultPageSize,
		SortBy:    q.Get("sort_by"),
		SortOrder: "desc",
	}

	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		p.Page = n
	}

	if n, err := strconv.Atoi(q.Get("page_size")); err == nil && n > 0 {
		p.PageSize = min(n, MaxPageSize)
	}

	if strings.EqualFold(q.Get("sort_order"), "asc") {
		p.SortOrder = "asc"
	}

	return p
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// OrderBy resolves SortBy against a whitelist of sortable columns and returns
// an ORDER BY clause body. Unknown sort keys fall back to fallback, so query
// text never contains caller input.
func (p Params) OrderBy(columns map[string]string, fallback string) string {
	column, ok := columns[p.SortBy]
	if !ok {
		column = fallback
	}

	direction := "DESC"
	if p.SortOrder == "asc" {
		direction = "ASC"
	}

	return fmt.Sprintf("%s %s", column, direction)
}
