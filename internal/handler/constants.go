// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the page and form handlers. Each handler
// fetches what it needs from the remote API per request; nothing is
// shared across requests except the session and the category cache.
package handler

// Route paths.
const (
	RouteRoot       = "/"
	RouteBlog       = "/blog"
	RouteCategories = "/categories"
	RoutePostID     = "/post/{id}"
	RoutePostVanity = "/post/{id}/{slug}"
	RouteLogin      = "/login"
	RouteRegister   = "/register"
	RouteLogout     = "/logout"
	RouteProfile    = "/profile/{email}"
	RouteSettings   = "/settings"
	RouteMembers    = "/members"
	RouteDrafts     = "/drafts"
	RouteDraftID    = "/drafts/{id}"
	RouteWrite      = "/write"
)

// Common header names and values.
const (
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json; charset=utf-8"
)

// Default page sizes for list views.
const (
	PostsPerPage      = 9
	CategoriesPerPage = 20
	DraftsPerPage     = 10
)

// Default sort for post lists.
const (
	DefaultSortBy    = "createdAt"
	DefaultSortOrder = "desc"
)

// ErrGenericAPI is the user-visible message for remote API failures that
// carry no message of their own.
const ErrGenericAPI = "Something went wrong. Please try again."
