// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the transport DTOs mirrored from remote API
// responses. None of these entities are owned or persisted locally; they
// exist for the lifetime of a request.
package model

import "time"

// Author identifies the writer of a post or comment as returned by the API.
type Author struct {
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Post is a published post or a draft; Published=false marks a draft.
// Both shapes come from the same API representation.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"` // Markdown source
	Category  string    `json:"category"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	Views     int64     `json:"views"`
	Claps     int64     `json:"claps"`
	Published bool      `json:"published"`
}

// Comment belongs to a post. Ordering is newest-first as returned by the
// server.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// Category is a paginated aggregate derived from post categories by the
// backend; it is never created directly.
type Category struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
