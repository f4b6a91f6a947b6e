// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/url"
	"strconv"
)

// Pagination holds template data for the server-driven paging contract.
// Page indexes are 0-based to match the remote API; Display renders
// them 1-based.
type Pagination struct {
	Page       int
	TotalPages int
	TotalItems int64
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
	Display    string // "Page 2 of 7"
}

// ParsePageParam reads the 0-based "page" query parameter. Missing,
// malformed, or negative values fall back to page 0.
func ParsePageParam(query url.Values) int {
	raw := query.Get("page")
	if raw == "" {
		return 0
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0
	}
	return page
}

// ClampPage bounds a 0-based page index to [0, totalPages-1]. Requests
// past either end are treated as the nearest valid page, mirroring the
// disabled prev/next buttons.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		return 0
	}
	if page < 0 {
		return 0
	}
	if page > totalPages-1 {
		return totalPages - 1
	}
	return page
}

// BuildPagination creates template pagination data. baseURL is the path
// without query string; extra query parameters (category, search) are
// preserved on the prev/next links.
func BuildPagination(page, totalPages int, totalItems int64, baseURL string, queryParams url.Values) Pagination {
	if totalPages < 1 {
		totalPages = 1
	}
	page = ClampPage(page, totalPages)

	params := make(url.Values)
	for k, v := range queryParams {
		if k != "page" && len(v) > 0 && v[0] != "" {
			params[k] = v
		}
	}

	pageURL := func(p int) string {
		q := make(url.Values, len(params)+1)
		for k, v := range params {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(p))
		return baseURL + "?" + q.Encode()
	}

	pagination := Pagination{
		Page:       page,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasPrev:    page > 0,
		HasNext:    page < totalPages-1,
		Display:    fmt.Sprintf("Page %d of %d", page+1, totalPages),
	}
	if pagination.HasPrev {
		pagination.PrevURL = pageURL(page - 1)
	}
	if pagination.HasNext {
		pagination.NextURL = pageURL(page + 1)
	}

	return pagination
}
