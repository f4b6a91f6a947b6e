// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
)

// suggestionRequest asks the backend for AI content suggestions. The
// generation itself happens behind the API; this client never talks to a
// model provider directly.
type suggestionRequest struct {
	Topic string `json:"topic"`
}

// suggestionResponse carries the generated suggestions.
type suggestionResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Suggest requests AI content suggestions for a topic. Requires
// authentication.
func (c *Client) Suggest(ctx context.Context, bearer, topic string) ([]string, error) {
	var resp suggestionResponse
	err := c.sendJSON(ctx, http.MethodPost, "/api/posts/suggestions", nil, bearer,
		suggestionRequest{Topic: topic}, &resp)
	return resp.Suggestions, err
}
