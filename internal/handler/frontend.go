// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/inkwell/internal/api"
	"github.com/inkwellhq/inkwell/internal/cache"
	"github.com/inkwellhq/inkwell/internal/markdown"
	"github.com/inkwellhq/inkwell/internal/model"
	"github.com/inkwellhq/inkwell/internal/render"
	"github.com/inkwellhq/inkwell/internal/session"
	"github.com/inkwellhq/inkwell/internal/util"
)

// FrontendHandler serves the public pages: home, blog list, category
// filter, category index, and the post page.
type FrontendHandler struct {
	api      *api.Client
	renderer *render.Renderer
	sess     *session.Session
	cats     *cache.Categories
}

// NewFrontendHandler creates a FrontendHandler.
func NewFrontendHandler(client *api.Client, renderer *render.Renderer, sess *session.Session, cats *cache.Categories) *FrontendHandler {
	return &FrontendHandler{api: client, renderer: renderer, sess: sess, cats: cats}
}

// PostCard is a list-view entry: the post plus its derived excerpt and
// vanity URL.
type PostCard struct {
	model.Post
	Excerpt string
	URL     string
}

// PostURL returns the canonical vanity URL for a post.
func PostURL(p model.Post) string {
	slug := util.Slugify(p.Title)
	if slug == "" {
		return fmt.Sprintf("/post/%d", p.ID)
	}
	return fmt.Sprintf("/post/%d/%s", p.ID, slug)
}

// cards derives list entries from a page of posts.
func cards(posts []model.Post) []PostCard {
	out := make([]PostCard, 0, len(posts))
	for _, p := range posts {
		out = append(out, PostCard{
			Post:    p,
			Excerpt: markdown.Excerpt(p.Content, markdown.DefaultExcerptLength),
			URL:     PostURL(p),
		})
	}
	return out
}

// baseData fills the session display fields shared by every page.
func baseData(sess *session.Session, r *http.Request, title string) render.TemplateData {
	return render.TemplateData{
		Title:     title,
		SignedIn:  sess.IsAuthenticated(r),
		UserName:  sess.Name(r),
		UserEmail: sess.Email(r),
		UserImage: sess.ProfileImage(r),
	}
}

// HomeData is the template payload for the home page.
type HomeData struct {
	Posts []PostCard
}

// Home renders the landing page with the most recent posts.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.api.ListPosts(r.Context(), api.ListParams{
		Page: 0, Size: 6, SortBy: DefaultSortBy, Direction: DefaultSortOrder,
	})
	if err != nil {
		slog.Error("failed to load recent posts", "error", err)
	}

	data := baseData(h.sess, r, "Inkwell")
	data.Data = HomeData{Posts: cards(page.Content)}
	if err := h.renderer.Render(w, r, "home", data); err != nil {
		logAndInternalError(w, "failed to render home", "error", err)
	}
}

// BlogData is the template payload for the blog list page.
type BlogData struct {
	Posts      []PostCard
	Category   string
	Pagination Pagination
}

// Blog renders the paginated post list, optionally filtered by category.
// Category links always point at page 0; the client holds only the
// current page and refetches on every page or filter change.
func (h *FrontendHandler) Blog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	pageIdx := ParsePageParam(query)
	category := query.Get("category")

	params := api.ListParams{
		Page: pageIdx, Size: PostsPerPage,
		SortBy: DefaultSortBy, Direction: DefaultSortOrder,
	}

	var (
		page model.Paged[model.Post]
		err  error
	)
	if category != "" {
		page, err = h.api.ListPostsByCategory(r.Context(), category, params)
	} else {
		page, err = h.api.ListPosts(r.Context(), params)
	}
	if err != nil {
		slog.Error("failed to load blog list", "error", err, "category", category, "page", pageIdx)
		flashError(w, r, h.renderer, RouteRoot, apiErrorMessage(err))
		return
	}

	data := baseData(h.sess, r, "Blog")
	data.Data = BlogData{
		Posts:      cards(page.Content),
		Category:   category,
		Pagination: BuildPagination(page.Page, page.TotalPages, page.TotalItems, RouteBlog, query),
	}
	if err := h.renderer.Render(w, r, "blog", data); err != nil {
		logAndInternalError(w, "failed to render blog", "error", err)
	}
}

// CategoriesData is the template payload for the category index.
type CategoriesData struct {
	Categories []model.Category
	Search     string
	Pagination Pagination
}

// Categories renders the paged category aggregate. This is the one
// cached read: pages are served from the category cache until a post
// mutation invalidates it.
func (h *FrontendHandler) Categories(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	pageIdx := ParsePageParam(query)
	search := query.Get("search")

	counts, ok := h.cats.Get(r.Context(), pageIdx, CategoriesPerPage, search)
	if !ok {
		var err error
		counts, err = h.api.CategoryCounts(r.Context(), pageIdx, CategoriesPerPage, search)
		if err != nil {
			slog.Error("failed to load category counts", "error", err)
			flashError(w, r, h.renderer, RouteRoot, apiErrorMessage(err))
			return
		}
		h.cats.Put(r.Context(), pageIdx, CategoriesPerPage, search, counts)
	}

	data := baseData(h.sess, r, "Categories")
	data.Data = CategoriesData{
		Categories: counts.Content,
		Search:     search,
		Pagination: BuildPagination(counts.Page, counts.TotalPages, counts.TotalItems, RouteCategories, query),
	}
	if err := h.renderer.Render(w, r, "categories", data); err != nil {
		logAndInternalError(w, "failed to render categories", "error", err)
	}
}

// PostData is the template payload for the post page.
type PostData struct {
	Post     model.Post
	Content  template.HTML
	Comments []model.Comment
	URL      string
}

// Post renders a single post: markdown converted to HTML (raw HTML
// passes through on the live page), comments newest first, and a view
// increment fired at most once per session per post.
func (h *FrontendHandler) Post(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	post, err := h.api.GetPost(r.Context(), id)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		slog.Error("failed to load post", "error", err, "post_id", id)
		flashError(w, r, h.renderer, RouteBlog, apiErrorMessage(err))
		return
	}

	// One increment per session per post. The guard is set before the
	// call: a failed increment is logged, never surfaced, never retried.
	if !h.sess.HasViewed(r, id) {
		h.sess.MarkViewed(r, id)
		if err := h.api.IncrementView(r.Context(), id); err != nil {
			slog.Warn("view increment failed", "error", err, "post_id", id)
		}
	}

	content, err := markdown.Render(post.Content)
	if err != nil {
		slog.Error("failed to render post content", "error", err, "post_id", id)
		content = template.HTML(template.HTMLEscapeString(post.Content))
	}

	comments, err := h.api.ListComments(r.Context(), id)
	if err != nil {
		// The post still renders; the comment section shows empty.
		slog.Warn("failed to load comments", "error", err, "post_id", id)
	}

	data := baseData(h.sess, r, post.Title)
	data.Data = PostData{
		Post:     post,
		Content:  content,
		Comments: comments,
		URL:      PostURL(post),
	}
	if err := h.renderer.Render(w, r, "post", data); err != nil {
		logAndInternalError(w, "failed to render post", "error", err)
	}
}

// NotFound renders the themed 404 page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	data := baseData(h.sess, r, "Not Found")
	if err := h.renderer.Render(w, r, "notfound", data); err != nil {
		http.Error(w, "404 page not found", http.StatusNotFound)
	}
}
