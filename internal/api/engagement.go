// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/inkwellhq/inkwell/internal/model"
)

// ListComments returns a post's comments, newest first as ordered by the
// server.
func (c *Client) ListComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	var comments []model.Comment
	err := c.getJSON(ctx, fmt.Sprintf("/api/posts/%d/comments", postID), nil, "", &comments)
	return comments, err
}

// commentCreate is the JSON body for comment submission.
type commentCreate struct {
	Content string `json:"content"`
}

// CreateComment posts a comment on behalf of the authenticated user.
func (c *Client) CreateComment(ctx context.Context, bearer string, postID int64, content string) (model.Comment, error) {
	var comment model.Comment
	err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), nil, bearer,
		commentCreate{Content: content}, &comment)
	return comment, err
}

// IncrementView records one view of a post. Callers treat this as fire
// and forget: failures are logged, never surfaced, never retried.
func (c *Client) IncrementView(ctx context.Context, postID int64) error {
	return c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/view", postID), nil, "", nil, nil)
}

// clapResponse is the counter echo from the claps endpoint.
type clapResponse struct {
	Claps int64 `json:"claps"`
}

// Clap adds amount claps to a post and returns the new total.
func (c *Client) Clap(ctx context.Context, postID, amount int64) (int64, error) {
	q := url.Values{}
	q.Set("amount", strconv.FormatInt(amount, 10))
	var resp clapResponse
	err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/claps", postID), q, "", nil, &resp)
	return resp.Claps, err
}
