// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/inkwell/internal/api"
	"github.com/inkwellhq/inkwell/internal/model"
	"github.com/inkwellhq/inkwell/internal/render"
	"github.com/inkwellhq/inkwell/internal/session"
)

// ProfileHandler serves member profiles, the member directory, and the
// signed-in user's settings page.
type ProfileHandler struct {
	api      *api.Client
	renderer *render.Renderer
	sess     *session.Session
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(client *api.Client, renderer *render.Renderer, sess *session.Session) *ProfileHandler {
	return &ProfileHandler{api: client, renderer: renderer, sess: sess}
}

// ProfileData is the template payload for a member profile page.
type ProfileData struct {
	User       model.User
	Posts      []PostCard
	Pagination Pagination
	IsSelf     bool
}

// Show renders a member's profile with their published posts. The
// profile header is served from the session cache when the visitor
// arrives from the member directory; the fetch still runs to refresh
// bio and avatar.
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil || !IsValidEmail(email) {
		http.NotFound(w, r)
		return
	}

	var user model.User
	if cached, ok := h.sess.ViewedProfile(r); ok && cached.Email == email {
		user = cached
	}

	users, err := h.api.SearchUsers(r.Context(), email)
	if err != nil {
		slog.Error("failed to load profile", "error", err, "email", email)
		if user.Email == "" {
			flashError(w, r, h.renderer, RouteRoot, apiErrorMessage(err))
			return
		}
	} else {
		found := false
		for _, u := range users {
			if u.Email == email {
				user = u
				found = true
				break
			}
		}
		if !found && user.Email == "" {
			http.NotFound(w, r)
			return
		}
	}
	h.sess.CacheViewedProfile(r, user)

	query := r.URL.Query()
	pageIdx := ParsePageParam(query)
	posts, err := h.api.ListPostsByAuthor(r.Context(), email, api.ListParams{
		Page: pageIdx, Size: PostsPerPage,
		SortBy: DefaultSortBy, Direction: DefaultSortOrder,
	})
	if err != nil {
		slog.Warn("failed to load author posts", "error", err, "email", email)
	}

	data := baseData(h.sess, r, user.Name)
	data.Data = ProfileData{
		User:       user,
		Posts:      cards(posts.Content),
		Pagination: BuildPagination(posts.Page, posts.TotalPages, posts.TotalItems, "/profile/"+url.PathEscape(email), query),
		IsSelf:     h.sess.Email(r) == email,
	}
	if err := h.renderer.Render(w, r, "profile", data); err != nil {
		logAndInternalError(w, "failed to render profile", "error", err)
	}
}

// SettingsData is the template payload for the settings page.
type SettingsData struct {
	User model.User
}

// SettingsForm renders the signed-in user's profile settings.
func (h *ProfileHandler) SettingsForm(w http.ResponseWriter, r *http.Request) {
	user, err := h.api.Profile(r.Context(), h.sess.Token(r))
	if err != nil {
		slog.Error("failed to load own profile", "error", err)
		flashError(w, r, h.renderer, RouteRoot, apiErrorMessage(err))
		return
	}

	data := baseData(h.sess, r, "Settings")
	data.Data = SettingsData{User: user}
	if err := h.renderer.Render(w, r, "settings", data); err != nil {
		logAndInternalError(w, "failed to render settings", "error", err)
	}
}

// UpdateSettings saves profile edits and refreshes the session display
// fields so the header picks up the new name and avatar immediately.
func (h *ProfileHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	form := model.User{
		Name:         strings.TrimSpace(r.PostFormValue("name")),
		Bio:          strings.TrimSpace(r.PostFormValue("bio")),
		ProfileImage: strings.TrimSpace(r.PostFormValue("profile_image")),
	}
	if form.Name == "" {
		flashError(w, r, h.renderer, RouteSettings, "Name is required")
		return
	}

	updated, err := h.api.UpdateProfile(r.Context(), h.sess.Token(r), form)
	if err != nil {
		slog.Error("failed to update profile", "error", err)
		flashError(w, r, h.renderer, RouteSettings, apiErrorMessage(err))
		return
	}

	h.sess.RefreshDisplay(r, updated)
	flashSuccess(w, r, h.renderer, RouteSettings, "Profile updated")
}

// MembersData is the template payload for the member directory.
type MembersData struct {
	Members []model.User
	Search  string
}

// Members renders the member directory, filtered by the search query.
func (h *ProfileHandler) Members(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	var members []model.User
	if search != "" {
		var err error
		members, err = h.api.SearchUsers(r.Context(), search)
		if err != nil {
			slog.Error("member search failed", "error", err, "search", search)
			flashError(w, r, h.renderer, RouteMembers, apiErrorMessage(err))
			return
		}
	}

	data := baseData(h.sess, r, "Members")
	data.Data = MembersData{Members: members, Search: search}
	if err := h.renderer.Render(w, r, "members", data); err != nil {
		logAndInternalError(w, "failed to render members", "error", err)
	}
}
