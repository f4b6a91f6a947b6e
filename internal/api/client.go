// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api is the HTTP client for the remote blog API. It is the only
// data source in the application: posts, drafts, comments, users,
// categories, and newsletter subscriptions are all fetched and mutated
// through it. No response is cached here and no request is retried;
// failure handling is the caller's concern.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds every request to the remote API.
const DefaultTimeout = 30 * time.Second

const userAgent = "Inkwell/1.0"

// Client talks to the remote blog API. The zero value is not usable;
// construct with New.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the API at baseURL. A zero timeout falls back
// to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// APIError is a non-2xx response from the remote API. Message carries the
// optional JSON `message` field from the response body, if any.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// apiMessage is the error body shape the API uses for failures.
type apiMessage struct {
	Message string `json:"message"`
}

// endpoint joins the base URL with a request path and optional query.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// newRequest builds a request with the standard headers. An empty token
// leaves the Authorization header unset.
func (c *Client) newRequest(ctx context.Context, method, rawurl, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawurl, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do executes a request, maps non-2xx responses to *APIError, and decodes
// a JSON body into out when out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msg apiMessage
		if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&msg); err == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// getJSON performs a GET and decodes the response.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, token string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, c.endpoint(path, query), token, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// sendJSON performs a request with a JSON body and decodes the response.
func (c *Client) sendJSON(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, c.endpoint(path, query), token, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// sendMultipart performs a request with a multipart form body and decodes
// the response.
func (c *Client) sendMultipart(ctx context.Context, method, path, token string, form *PostForm, out any) error {
	body, contentType, err := form.encode()
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, method, c.endpoint(path, nil), token, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req, out)
}
