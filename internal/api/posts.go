// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/inkwellhq/inkwell/internal/model"
)

// ListParams is the server-driven page/size/sort contract shared by the
// paginated post endpoints. Page indexes are 0-based.
type ListParams struct {
	Page      int
	Size      int
	SortBy    string
	Direction string
}

// values encodes the params as query parameters.
func (p ListParams) values() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("size", strconv.Itoa(p.Size))
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}
	if p.Direction != "" {
		q.Set("direction", p.Direction)
	}
	return q
}

// PostForm carries the authoring fields for post and draft submissions.
// When Image is nil the form has no new cover image.
type PostForm struct {
	Title     string
	Content   string
	Category  string
	Published bool
	ImageName string
	Image     io.Reader
}

// encode builds the multipart body the creation and update endpoints
// expect.
func (f *PostForm) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := map[string]string{
		"title":     f.Title,
		"content":   f.Content,
		"category":  f.Category,
		"published": strconv.FormatBool(f.Published),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", name, err)
		}
	}

	if f.Image != nil {
		part, err := w.CreateFormFile("image", f.ImageName)
		if err != nil {
			return nil, "", fmt.Errorf("creating image part: %w", err)
		}
		if _, err := io.Copy(part, f.Image); err != nil {
			return nil, "", fmt.Errorf("copying image data: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

// postUpdate is the JSON body for image-less post updates.
type postUpdate struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// ListPosts returns a page of published posts.
func (c *Client) ListPosts(ctx context.Context, p ListParams) (model.Paged[model.Post], error) {
	var page model.Paged[model.Post]
	err := c.getJSON(ctx, "/api/posts/paginated", p.values(), "", &page)
	return page, err
}

// ListPostsByCategory returns a page of published posts in a category.
func (c *Client) ListPostsByCategory(ctx context.Context, category string, p ListParams) (model.Paged[model.Post], error) {
	var page model.Paged[model.Post]
	err := c.getJSON(ctx, "/api/posts/category/"+url.PathEscape(category), p.values(), "", &page)
	return page, err
}

// ListPostsByAuthor returns a page of an author's published posts.
func (c *Client) ListPostsByAuthor(ctx context.Context, email string, p ListParams) (model.Paged[model.Post], error) {
	var page model.Paged[model.Post]
	err := c.getJSON(ctx, "/api/posts/user/"+url.PathEscape(email), p.values(), "", &page)
	return page, err
}

// CategoryCounts returns the paged category aggregate with post counts.
func (c *Client) CategoryCounts(ctx context.Context, page, size int, search string) (model.Paged[model.Category], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if search != "" {
		q.Set("search", search)
	}
	var counts model.Paged[model.Category]
	err := c.getJSON(ctx, "/api/posts/categories/counts", q, "", &counts)
	return counts, err
}

// GetPost fetches a single published post.
func (c *Client) GetPost(ctx context.Context, id int64) (model.Post, error) {
	var post model.Post
	err := c.getJSON(ctx, fmt.Sprintf("/api/posts/%d", id), nil, "", &post)
	return post, err
}

// CreatePost submits a new post. form.Published distinguishes "publish
// now" from "save as draft"; the server assigns ownership from the bearer
// token.
func (c *Client) CreatePost(ctx context.Context, bearer string, form *PostForm) (model.Post, error) {
	var post model.Post
	err := c.sendMultipart(ctx, http.MethodPost, "/api/posts/create", bearer, form, &post)
	return post, err
}

// UpdatePost updates an existing published post. A form with a new cover
// image goes out as multipart; without one, as JSON. Ownership is
// enforced server-side.
func (c *Client) UpdatePost(ctx context.Context, bearer string, id int64, form *PostForm) (model.Post, error) {
	var post model.Post
	path := fmt.Sprintf("/api/posts/%d", id)
	if form.Image != nil {
		err := c.sendMultipart(ctx, http.MethodPut, path, bearer, form, &post)
		return post, err
	}
	body := postUpdate{Title: form.Title, Content: form.Content, Category: form.Category}
	err := c.sendJSON(ctx, http.MethodPut, path, nil, bearer, body, &post)
	return post, err
}

// DeletePost removes a published post.
func (c *Client) DeletePost(ctx context.Context, bearer string, id int64) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), nil, bearer, nil, nil)
}
