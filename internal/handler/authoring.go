// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/inkwell/internal/api"
	"github.com/inkwellhq/inkwell/internal/cache"
	"github.com/inkwellhq/inkwell/internal/imaging"
	"github.com/inkwellhq/inkwell/internal/markdown"
	"github.com/inkwellhq/inkwell/internal/model"
	"github.com/inkwellhq/inkwell/internal/render"
	"github.com/inkwellhq/inkwell/internal/session"
)

// maxFormMemory bounds the in-memory portion of multipart parsing;
// larger parts spill to temp files.
const maxFormMemory = 4 << 20

// AuthoringHandler handles post creation, editing, drafts, and the
// editor's JSON helpers (import, preview, suggestions). All routes here
// sit behind the auth middleware.
type AuthoringHandler struct {
	api      *api.Client
	renderer *render.Renderer
	sess     *session.Session
	cats     *cache.Categories
}

// NewAuthoringHandler creates an AuthoringHandler.
func NewAuthoringHandler(client *api.Client, renderer *render.Renderer, sess *session.Session, cats *cache.Categories) *AuthoringHandler {
	return &AuthoringHandler{api: client, renderer: renderer, sess: sess, cats: cats}
}

// EditorData is the template payload for the write and edit pages.
type EditorData struct {
	Post    model.Post
	IsEdit  bool
	IsDraft bool
	Action  string
}

// WriteForm renders the empty editor.
func (h *AuthoringHandler) WriteForm(w http.ResponseWriter, r *http.Request) {
	data := baseData(h.sess, r, "Write")
	data.Data = EditorData{Action: RouteWrite}
	if err := h.renderer.Render(w, r, "editor", data); err != nil {
		logAndInternalError(w, "failed to render editor", "error", err)
	}
}

// postForm reads the editor fields and the optional cover upload from a
// multipart submission. The cover is decoded, orientation-fixed, and
// re-encoded before it goes anywhere near the network.
func (h *AuthoringHandler) postForm(r *http.Request) (*api.PostForm, string) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, "Invalid form submission"
	}

	form := &api.PostForm{
		Title:    strings.TrimSpace(r.PostFormValue("title")),
		Content:  markdown.Normalize(r.PostFormValue("content")),
		Category: strings.TrimSpace(r.PostFormValue("category")),
	}
	if msg := ValidatePostForm(form.Title, form.Content); msg != "" {
		return nil, msg
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return form, ""
		}
		return nil, "Could not read the cover image"
	}
	defer file.Close()

	cover, err := imaging.PrepareCover(file)
	if err != nil {
		slog.Warn("cover image rejected", "error", err)
		return nil, "Cover image must be a valid image under 10MB"
	}
	form.Image = bytes.NewReader(cover.Data)
	form.ImageName = cover.Filename
	return form, ""
}

// Create submits the editor as a new post or a new draft, depending on
// which button was pressed. A mutation that changes the published set
// invalidates the category cache.
func (h *AuthoringHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, msg := h.postForm(r)
	if msg != "" {
		flashError(w, r, h.renderer, RouteWrite, msg)
		return
	}
	form.Published = r.PostFormValue("submit") == "publish"

	post, err := h.api.CreatePost(r.Context(), h.sess.Token(r), form)
	if err != nil {
		slog.Error("failed to create post", "error", err)
		flashError(w, r, h.renderer, RouteWrite, apiErrorMessage(err))
		return
	}

	if form.Published {
		h.cats.Invalidate(r.Context())
		flashSuccess(w, r, h.renderer, PostURL(post), "Post published")
		return
	}
	flashSuccess(w, r, h.renderer, RouteDrafts, "Draft saved")
}

// EditForm renders the editor loaded with an existing published post.
func (h *AuthoringHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	post, err := h.api.GetPost(r.Context(), id)
	if err != nil {
		slog.Error("failed to load post for editing", "error", err, "post_id", id)
		flashError(w, r, h.renderer, RouteBlog, apiErrorMessage(err))
		return
	}
	if post.Author.Email != h.sess.Email(r) {
		flashError(w, r, h.renderer, PostURL(post), "You can only edit your own posts")
		return
	}

	data := baseData(h.sess, r, "Edit: "+post.Title)
	data.Data = EditorData{
		Post:   post,
		IsEdit: true,
		Action: fmt.Sprintf("/post/%d/edit", id),
	}
	if err := h.renderer.Render(w, r, "editor", data); err != nil {
		logAndInternalError(w, "failed to render editor", "error", err)
	}
}

// Update saves edits to a published post.
func (h *AuthoringHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	editURL := fmt.Sprintf("/post/%d/edit", id)

	form, msg := h.postForm(r)
	if msg != "" {
		flashError(w, r, h.renderer, editURL, msg)
		return
	}

	post, err := h.api.UpdatePost(r.Context(), h.sess.Token(r), id, form)
	if err != nil {
		slog.Error("failed to update post", "error", err, "post_id", id)
		flashError(w, r, h.renderer, editURL, apiErrorMessage(err))
		return
	}

	h.cats.Invalidate(r.Context())
	flashSuccess(w, r, h.renderer, PostURL(post), "Post updated")
}

// Delete removes a published post.
func (h *AuthoringHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.api.DeletePost(r.Context(), h.sess.Token(r), id); err != nil {
		slog.Error("failed to delete post", "error", err, "post_id", id)
		flashError(w, r, h.renderer, fmt.Sprintf("/post/%d", id), apiErrorMessage(err))
		return
	}

	h.cats.Invalidate(r.Context())
	flashSuccess(w, r, h.renderer, RouteBlog, "Post deleted")
}

// DraftsData is the template payload for the drafts list.
type DraftsData struct {
	Drafts     []PostCard
	Pagination Pagination
}

// Drafts renders the signed-in user's drafts.
func (h *AuthoringHandler) Drafts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	pageIdx := ParsePageParam(query)

	page, err := h.api.ListDrafts(r.Context(), h.sess.Token(r), h.sess.Email(r), api.ListParams{
		Page: pageIdx, Size: DraftsPerPage,
		SortBy: DefaultSortBy, Direction: DefaultSortOrder,
	})
	if err != nil {
		slog.Error("failed to load drafts", "error", err)
		flashError(w, r, h.renderer, RouteRoot, apiErrorMessage(err))
		return
	}

	drafts := make([]PostCard, 0, len(page.Content))
	for _, d := range page.Content {
		drafts = append(drafts, PostCard{
			Post:    d,
			Excerpt: markdown.Excerpt(d.Content, markdown.DefaultExcerptLength),
			URL:     fmt.Sprintf("/drafts/%d", d.ID),
		})
	}

	data := baseData(h.sess, r, "Drafts")
	data.Data = DraftsData{
		Drafts:     drafts,
		Pagination: BuildPagination(page.Page, page.TotalPages, page.TotalItems, RouteDrafts, query),
	}
	if err := h.renderer.Render(w, r, "drafts", data); err != nil {
		logAndInternalError(w, "failed to render drafts", "error", err)
	}
}

// DraftEditForm renders the editor loaded with a draft.
func (h *AuthoringHandler) DraftEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	draft, err := h.api.GetDraft(r.Context(), h.sess.Token(r), id)
	if err != nil {
		slog.Error("failed to load draft", "error", err, "draft_id", id)
		flashError(w, r, h.renderer, RouteDrafts, apiErrorMessage(err))
		return
	}

	data := baseData(h.sess, r, "Edit Draft: "+draft.Title)
	data.Data = EditorData{
		Post:    draft,
		IsEdit:  true,
		IsDraft: true,
		Action:  fmt.Sprintf("/drafts/%d", id),
	}
	if err := h.renderer.Render(w, r, "editor", data); err != nil {
		logAndInternalError(w, "failed to render editor", "error", err)
	}
}

// UpdateDraft saves draft edits. When the publish button was pressed the
// edits are saved first and the saved draft is then published, so
// publishing always goes through the one publish endpoint.
func (h *AuthoringHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	draftURL := fmt.Sprintf("/drafts/%d", id)

	form, msg := h.postForm(r)
	if msg != "" {
		flashError(w, r, h.renderer, draftURL, msg)
		return
	}

	if _, err := h.api.UpdateDraft(r.Context(), h.sess.Token(r), id, form); err != nil {
		slog.Error("failed to update draft", "error", err, "draft_id", id)
		flashError(w, r, h.renderer, draftURL, apiErrorMessage(err))
		return
	}

	if r.PostFormValue("submit") != "publish" {
		flashSuccess(w, r, h.renderer, draftURL, "Draft saved")
		return
	}

	post, err := h.api.PublishDraft(r.Context(), h.sess.Token(r), id)
	if err != nil {
		slog.Error("failed to publish draft", "error", err, "draft_id", id)
		flashError(w, r, h.renderer, draftURL, apiErrorMessage(err))
		return
	}

	h.cats.Invalidate(r.Context())
	flashSuccess(w, r, h.renderer, PostURL(post), "Post published")
}

// DeleteDraft discards a draft.
func (h *AuthoringHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.api.DeleteDraft(r.Context(), h.sess.Token(r), id); err != nil {
		slog.Error("failed to delete draft", "error", err, "draft_id", id)
		flashError(w, r, h.renderer, RouteDrafts, apiErrorMessage(err))
		return
	}

	flashSuccess(w, r, h.renderer, RouteDrafts, "Draft deleted")
}

// importResult is the JSON reply to a markdown file import.
type importResult struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Import accepts a .md upload and returns its normalized content for
// the editor to load. The filename, minus extension, seeds the title.
func (h *AuthoringHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	if !IsMarkdownFilename(header.Filename) {
		writeJSONError(w, http.StatusBadRequest, "only .md files can be imported")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(file, 1<<20))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "could not read file")
		return
	}

	title := strings.TrimSuffix(header.Filename, ".md")
	title = strings.TrimSuffix(title, ".MD")
	writeJSON(w, http.StatusOK, importResult{
		Title:   title,
		Content: markdown.Normalize(string(raw)),
	})
}

// previewRequest and previewResult carry the live-preview exchange.
type previewRequest struct {
	Content string `json:"content"`
}

type previewResult struct {
	HTML string `json:"html"`
}

// Preview converts editor markdown to sanitized HTML. Unlike the live
// post page, preview output is run through the sanitizer since the
// content has not been saved by its author yet.
func (h *AuthoringHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	html, err := markdown.RenderPreview(markdown.Normalize(req.Content))
	if err != nil {
		slog.Error("preview render failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "could not render preview")
		return
	}
	writeJSON(w, http.StatusOK, previewResult{HTML: string(html)})
}

// suggestRequest and suggestResult carry the suggestion exchange with
// the editor.
type suggestRequest struct {
	Topic string `json:"topic"`
}

type suggestResult struct {
	Suggestions []string `json:"suggestions"`
}

// Suggest proxies a topic to the backend's suggestion endpoint.
func (h *AuthoringHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 64<<10)).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeJSONError(w, http.StatusBadRequest, "topic is required")
		return
	}

	suggestions, err := h.api.Suggest(r.Context(), h.sess.Token(r), req.Topic)
	if err != nil {
		slog.Error("suggestion request failed", "error", err)
		writeJSONError(w, http.StatusBadGateway, apiErrorMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, suggestResult{Suggestions: suggestions})
}
