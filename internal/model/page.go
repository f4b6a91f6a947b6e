// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Paged is the server-driven pagination envelope shared by all list
// endpoints. Page indexes are 0-based; the client holds only the current
// page's items and refetches on every page or filter change.
type Paged[T any] struct {
	Content    []T   `json:"content"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"totalPages"`
	TotalItems int64 `json:"totalItems"`
}

// HasPrev reports whether a previous page exists.
func (p Paged[T]) HasPrev() bool {
	return p.Page > 0
}

// HasNext reports whether a next page exists.
func (p Paged[T]) HasNext() bool {
	return p.Page < p.TotalPages-1
}
