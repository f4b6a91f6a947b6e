// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/inkwellhq/inkwell/internal/api"
	"github.com/inkwellhq/inkwell/internal/render"
)

// NewsletterHandler handles newsletter subscription forms. The footer
// form posts here from whichever page it sits on.
type NewsletterHandler struct {
	api      *api.Client
	renderer *render.Renderer
}

// NewNewsletterHandler creates a NewsletterHandler.
func NewNewsletterHandler(client *api.Client, renderer *render.Renderer) *NewsletterHandler {
	return &NewsletterHandler{api: client, renderer: renderer}
}

// returnURL resolves where to send the visitor back to. Only local
// paths are honored.
func returnURL(r *http.Request) string {
	ret := r.PostFormValue("return")
	if strings.HasPrefix(ret, "/") && !strings.HasPrefix(ret, "//") {
		return ret
	}
	return RouteRoot
}

// Subscribe adds an email to the newsletter list.
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("email"))
	back := returnURL(r)

	if !IsValidEmail(email) {
		flashError(w, r, h.renderer, back, "Enter a valid email address")
		return
	}

	if err := h.api.SubscribeNewsletter(r.Context(), email); err != nil {
		slog.Error("newsletter subscribe failed", "error", err)
		flashError(w, r, h.renderer, back, apiErrorMessage(err))
		return
	}

	flashSuccess(w, r, h.renderer, back, "You are subscribed")
}

// Unsubscribe removes an email from the newsletter list.
func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("email"))
	back := returnURL(r)

	if !IsValidEmail(email) {
		flashError(w, r, h.renderer, back, "Enter a valid email address")
		return
	}

	if err := h.api.UnsubscribeNewsletter(r.Context(), email); err != nil {
		slog.Error("newsletter unsubscribe failed", "error", err)
		flashError(w, r, h.renderer, back, apiErrorMessage(err))
		return
	}

	flashSuccess(w, r, h.renderer, back, "You are unsubscribed")
}
