// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/inkwell/internal/api"
	"github.com/inkwellhq/inkwell/internal/render"
	"github.com/inkwellhq/inkwell/internal/session"
)

// EngagementHandler handles claps and comments.
type EngagementHandler struct {
	api      *api.Client
	renderer *render.Renderer
	sess     *session.Session
}

// NewEngagementHandler creates an EngagementHandler.
func NewEngagementHandler(client *api.Client, renderer *render.Renderer, sess *session.Session) *EngagementHandler {
	return &EngagementHandler{api: client, renderer: renderer, sess: sess}
}

// clapResult is the JSON reply to the clap widget. Claps is the count
// the widget should show after the request settles.
type clapResult struct {
	Claps int64  `json:"claps"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Clap applies a batch of claps to a post. The form carries the count
// the widget showed before any pending claps ("current"); on failure
// that count is echoed back so the widget reverts its optimistic
// increments instead of compounding them.
func (h *EngagementHandler) Clap(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := r.ParseForm(); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid form")
		return
	}

	amount, err := strconv.ParseInt(r.PostFormValue("amount"), 10, 64)
	if err != nil || amount < 1 {
		writeJSONError(w, http.StatusBadRequest, "invalid clap amount")
		return
	}
	current, err := strconv.ParseInt(r.PostFormValue("current"), 10, 64)
	if err != nil || current < 0 {
		current = 0
	}

	claps, err := h.api.Clap(r.Context(), id, amount)
	if err != nil {
		slog.Warn("clap batch failed", "error", err, "post_id", id, "amount", amount)
		writeJSON(w, http.StatusOK, clapResult{Claps: current, OK: false, Error: apiErrorMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, clapResult{Claps: claps, OK: true})
}

// CreateComment posts a comment on behalf of the signed-in user. An
// unauthenticated submit redirects to the login page without touching
// the remote API.
func (h *EngagementHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	postURL := fmt.Sprintf("/post/%d", id)

	if !h.sess.IsAuthenticated(r) {
		flashError(w, r, h.renderer, RouteLogin, "Sign in to join the conversation")
		return
	}

	content := strings.TrimSpace(r.PostFormValue("content"))
	if content == "" {
		flashError(w, r, h.renderer, postURL, "Comment cannot be empty")
		return
	}

	if _, err := h.api.CreateComment(r.Context(), h.sess.Token(r), id, content); err != nil {
		slog.Error("failed to create comment", "error", err, "post_id", id)
		flashError(w, r, h.renderer, postURL, apiErrorMessage(err))
		return
	}

	flashSuccess(w, r, h.renderer, postURL, "Comment posted")
}
