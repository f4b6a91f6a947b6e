// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/inkwell/internal/api"
	"github.com/inkwellhq/inkwell/internal/cache"
	"github.com/inkwellhq/inkwell/internal/render"
	"github.com/inkwellhq/inkwell/internal/session"
)

// testEnv bundles the pieces a handler needs, with the remote API
// replaced by a recording stub.
type testEnv struct {
	sm       *scs.SessionManager
	sess     *session.Session
	renderer *render.Renderer
	client   *api.Client
	cats     *cache.Categories
	requests *[]string // method+path of every API call
}

// newTestEnv starts a stub API server driven by handler and wires the
// session, renderer, and client around it.
func newTestEnv(t *testing.T, apiHandler http.HandlerFunc) *testEnv {
	t.Helper()

	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.Path)
		apiHandler(w, r)
	}))
	t.Cleanup(srv.Close)

	sm := scs.New()

	templates := fstest.MapFS{
		"layouts/base.html":     &fstest.MapFile{Data: []byte(`{{define "base"}}page:{{.Title}}{{end}}`)},
		"pages/post.html":       &fstest.MapFile{Data: []byte(`{{define "content"}}{{end}}`)},
		"pages/categories.html": &fstest.MapFile{Data: []byte(`{{define "content"}}{{end}}`)},
	}
	renderer, err := render.New(render.Config{TemplatesFS: templates, SessionManager: sm})
	if err != nil {
		t.Fatalf("creating renderer: %v", err)
	}

	cats := cache.NewCategories(cache.Config{TTL: time.Minute})
	t.Cleanup(func() { _ = cats.Close() })

	return &testEnv{
		sm:       sm,
		sess:     session.New(sm),
		renderer: renderer,
		client:   api.New(srv.URL, 5*time.Second),
		cats:     cats,
		requests: &requests,
	}
}

// serve runs a request through the session middleware and the given
// router, carrying over cookies from a previous response.
func (e *testEnv) serve(t *testing.T, router chi.Router, req *http.Request, prev *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	t.Helper()
	if prev != nil {
		for _, c := range prev.Result().Cookies() {
			req.AddCookie(c)
		}
	}
	rec := httptest.NewRecorder()
	e.sm.LoadAndSave(router).ServeHTTP(rec, req)
	return rec
}

func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestCreateCommentUnauthenticatedRedirectsWithoutAPICall(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("remote API must not be called for an unauthenticated comment")
	})
	h := NewEngagementHandler(env.client, env.renderer, env.sess)

	router := chi.NewRouter()
	router.Post("/post/{id}/comments", h.CreateComment)

	req := formRequest("/post/7/comments", url.Values{"content": {"hello"}})
	rec := env.serve(t, router, req, nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != RouteLogin {
		t.Errorf("Location = %q, want %q", loc, RouteLogin)
	}
	if len(*env.requests) != 0 {
		t.Errorf("API received %d requests, want 0", len(*env.requests))
	}
}

func TestClapSuccessReturnsServerCount(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"claps":13}`))
	})
	h := NewEngagementHandler(env.client, env.renderer, env.sess)

	router := chi.NewRouter()
	router.Post("/post/{id}/claps", h.Clap)

	req := formRequest("/post/7/claps", url.Values{"amount": {"3"}, "current": {"10"}})
	rec := env.serve(t, router, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var result struct {
		Claps int64 `json:"claps"`
		OK    bool  `json:"ok"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !result.OK || result.Claps != 13 {
		t.Errorf("result = %+v, want ok with 13 claps", result)
	}
}

func TestClapFailureEchoesPreClapCount(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	})
	h := NewEngagementHandler(env.client, env.renderer, env.sess)

	router := chi.NewRouter()
	router.Post("/post/{id}/claps", h.Clap)

	// The widget optimistically showed 10+3; on failure it must get 10
	// back so the pending claps are rolled back, not compounded.
	req := formRequest("/post/7/claps", url.Values{"amount": {"3"}, "current": {"10"}})
	rec := env.serve(t, router, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var result struct {
		Claps int64  `json:"claps"`
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.OK {
		t.Error("OK = true, want false")
	}
	if result.Claps != 10 {
		t.Errorf("Claps = %d, want the pre-clap count 10", result.Claps)
	}
	if result.Error != "boom" {
		t.Errorf("Error = %q, want %q", result.Error, "boom")
	}
}

func TestClapRejectsBadAmount(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	h := NewEngagementHandler(env.client, env.renderer, env.sess)

	router := chi.NewRouter()
	router.Post("/post/{id}/claps", h.Clap)

	for _, amount := range []string{"", "0", "-2", "abc"} {
		req := formRequest("/post/7/claps", url.Values{"amount": {amount}, "current": {"10"}})
		rec := env.serve(t, router, req, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("amount %q: status = %d, want 400", amount, rec.Code)
		}
	}
	if len(*env.requests) != 0 {
		t.Errorf("API received %d requests, want 0", len(*env.requests))
	}
}

func TestPostViewIncrementedOncePerSession(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/view"):
			w.WriteHeader(http.StatusNoContent)
		case strings.HasSuffix(r.URL.Path, "/comments"):
			_, _ = w.Write([]byte(`[]`))
		default:
			_, _ = w.Write([]byte(`{"id":7,"title":"T","content":"body","author":{"name":"A","email":"a@example.com"}}`))
		}
	})
	h := NewFrontendHandler(env.client, env.renderer, env.sess, env.cats)

	router := chi.NewRouter()
	router.Get(RoutePostID, h.Post)

	first := env.serve(t, router, httptest.NewRequest(http.MethodGet, "/post/7", nil), nil)
	if first.Code != http.StatusOK {
		t.Fatalf("first visit status = %d, want 200", first.Code)
	}
	second := env.serve(t, router, httptest.NewRequest(http.MethodGet, "/post/7", nil), first)
	if second.Code != http.StatusOK {
		t.Fatalf("second visit status = %d, want 200", second.Code)
	}

	views := 0
	for _, line := range *env.requests {
		if strings.HasSuffix(line, "/view") {
			views++
		}
	}
	if views != 1 {
		t.Errorf("view increments = %d, want exactly 1 across the session", views)
	}
}

func TestPostNotFound(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := NewFrontendHandler(env.client, env.renderer, env.sess, env.cats)

	router := chi.NewRouter()
	router.Get(RoutePostID, h.Post)

	rec := env.serve(t, router, httptest.NewRequest(http.MethodGet, "/post/999", nil), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCategoriesServedFromCacheUntilInvalidated(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"name":"Go","count":3}],"page":0,"size":20,"totalPages":1,"totalItems":1}`))
	})
	h := NewFrontendHandler(env.client, env.renderer, env.sess, env.cats)

	router := chi.NewRouter()
	router.Get(RouteCategories, h.Categories)

	for range 3 {
		rec := env.serve(t, router, httptest.NewRequest(http.MethodGet, "/categories", nil), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	}
	if got := len(*env.requests); got != 1 {
		t.Fatalf("API calls before invalidation = %d, want 1", got)
	}

	env.cats.Invalidate(httptest.NewRequest(http.MethodGet, "/", nil).Context())

	rec := env.serve(t, router, httptest.NewRequest(http.MethodGet, "/categories", nil), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := len(*env.requests); got != 2 {
		t.Errorf("API calls after invalidation = %d, want 2", got)
	}
}
