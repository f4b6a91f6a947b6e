// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/inkwellhq/inkwell/internal/model"
)

// Drafts share the Post shape with Published=false and are visible only
// to their owner; every operation here requires the owner's bearer token.
//
// Publishing is a single operation: PublishDraft. The UI path that lets
// the author edit and publish in one action saves the edits with
// UpdateDraft first and then publishes, so the creation endpoint never
// sees a draft id.

// GetDraft fetches one of the caller's drafts.
func (c *Client) GetDraft(ctx context.Context, bearer string, id int64) (model.Post, error) {
	var draft model.Post
	err := c.getJSON(ctx, fmt.Sprintf("/api/posts/drafts/%d", id), nil, bearer, &draft)
	return draft, err
}

// ListDrafts returns the drafts owned by the given account.
func (c *Client) ListDrafts(ctx context.Context, bearer, email string, p ListParams) (model.Paged[model.Post], error) {
	var page model.Paged[model.Post]
	err := c.getJSON(ctx, "/api/posts/drafts/user/"+url.PathEscape(email), p.values(), bearer, &page)
	return page, err
}

// UpdateDraft resaves a draft's fields, keeping it unpublished.
func (c *Client) UpdateDraft(ctx context.Context, bearer string, id int64, form *PostForm) (model.Post, error) {
	var draft model.Post
	form.Published = false
	err := c.sendMultipart(ctx, http.MethodPut, fmt.Sprintf("/api/posts/drafts/%d", id), bearer, form, &draft)
	return draft, err
}

// PublishDraft turns a draft into a published post. The transition is
// one-way; the server flips the published flag and the client only
// reflects the response.
func (c *Client) PublishDraft(ctx context.Context, bearer string, id int64) (model.Post, error) {
	var post model.Post
	err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/api/posts/drafts/%d/publish", id), nil, bearer, nil, &post)
	return post, err
}

// DeleteDraft discards a draft.
func (c *Client) DeleteDraft(ctx context.Context, bearer string, id int64) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/drafts/%d", id), nil, bearer, nil, nil)
}
