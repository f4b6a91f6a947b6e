// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/inkwellhq/inkwell/internal/model"
)

// credentials is the JSON body for login and registration.
type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse carries the bearer token issued by the API.
type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. The token is opaque to
// this client; only internal/token reads its payload, and only for
// display.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	err := c.sendJSON(ctx, http.MethodPost, "/api/users/login", nil, "",
		credentials{Email: email, Password: password}, &resp)
	return resp.Token, err
}

// Register creates an account and returns the issued bearer token.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	var resp tokenResponse
	err := c.sendJSON(ctx, http.MethodPost, "/api/users/register", nil, "",
		credentials{Name: name, Email: email, Password: password}, &resp)
	return resp.Token, err
}

// Profile returns the authenticated user's profile.
func (c *Client) Profile(ctx context.Context, bearer string) (model.User, error) {
	var user model.User
	err := c.getJSON(ctx, "/api/users/profile", nil, bearer, &user)
	return user, err
}

// UpdateProfile saves changes to the authenticated user's profile.
func (c *Client) UpdateProfile(ctx context.Context, bearer string, user model.User) (model.User, error) {
	var updated model.User
	err := c.sendJSON(ctx, http.MethodPut, "/api/users/profile", nil, bearer, user, &updated)
	return updated, err
}

// SearchUsers finds members by name or email.
func (c *Client) SearchUsers(ctx context.Context, search string) ([]model.User, error) {
	q := url.Values{}
	q.Set("search", search)
	var users []model.User
	err := c.getJSON(ctx, "/api/users", q, "", &users)
	return users, err
}
