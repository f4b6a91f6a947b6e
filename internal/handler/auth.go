// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/inkwellhq/inkwell/internal/api"
	"github.com/inkwellhq/inkwell/internal/render"
	"github.com/inkwellhq/inkwell/internal/session"
)

// AuthHandler handles login, registration, and logout.
type AuthHandler struct {
	api      *api.Client
	renderer *render.Renderer
	sess     *session.Session
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(client *api.Client, renderer *render.Renderer, sess *session.Session) *AuthHandler {
	return &AuthHandler{api: client, renderer: renderer, sess: sess}
}

// LoginForm renders the login page. Signed-in visitors go home.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sess.IsAuthenticated(r) {
		http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
		return
	}
	data := baseData(h.sess, r, "Sign In")
	if err := h.renderer.Render(w, r, "login", data); err != nil {
		logAndInternalError(w, "failed to render login", "error", err)
	}
}

// Login exchanges the submitted credentials for a bearer token and
// starts the session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	if !IsValidEmail(email) {
		flashError(w, r, h.renderer, RouteLogin, "Enter a valid email address")
		return
	}
	if password == "" {
		flashError(w, r, h.renderer, RouteLogin, "Password is required")
		return
	}

	bearer, err := h.api.Login(r.Context(), email, password)
	if err != nil {
		slog.Warn("login failed", "error", err, "email", email)
		flashError(w, r, h.renderer, RouteLogin, apiErrorMessage(err))
		return
	}

	h.sess.SignIn(r, bearer)
	http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if h.sess.IsAuthenticated(r) {
		http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
		return
	}
	data := baseData(h.sess, r, "Join Inkwell")
	if err := h.renderer.Render(w, r, "register", data); err != nil {
		logAndInternalError(w, "failed to render register", "error", err)
	}
}

// Register creates an account and signs the new user in with the token
// the API issues on registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PostFormValue("name"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	if name == "" {
		flashError(w, r, h.renderer, RouteRegister, "Name is required")
		return
	}
	if !IsValidEmail(email) {
		flashError(w, r, h.renderer, RouteRegister, "Enter a valid email address")
		return
	}
	if len(password) < 8 {
		flashError(w, r, h.renderer, RouteRegister, "Password must be at least 8 characters")
		return
	}

	bearer, err := h.api.Register(r.Context(), name, email, password)
	if err != nil {
		slog.Warn("registration failed", "error", err, "email", email)
		flashError(w, r, h.renderer, RouteRegister, apiErrorMessage(err))
		return
	}

	h.sess.SignIn(r, bearer)
	flashSuccess(w, r, h.renderer, RouteRoot, "Welcome to Inkwell")
}

// Logout destroys the session and returns to the home page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sess.SignOut(r); err != nil {
		slog.Error("failed to destroy session", "error", err)
	}
	http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
}
