// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
)

// newsletterRequest is the JSON body for subscription changes.
type newsletterRequest struct {
	Email string `json:"email"`
}

// SubscribeNewsletter adds an email to the newsletter list.
func (c *Client) SubscribeNewsletter(ctx context.Context, email string) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/newsletter/subscribe", nil, "",
		newsletterRequest{Email: email}, nil)
}

// UnsubscribeNewsletter removes an email from the newsletter list.
func (c *Client) UnsubscribeNewsletter(ctx context.Context, email string) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/newsletter/unsubscribe", nil, "",
		newsletterRequest{Email: email}, nil)
}
