// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/inkwellhq/inkwell/internal/session"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityHeaders(t *testing.T) {
	mw := SecurityHeaders(DefaultSecurityHeadersConfig(true))
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Errorf("X-Frame-Options = %q, want SAMEORIGIN", got)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("Content-Security-Policy"); got == "" {
		t.Error("Content-Security-Policy is empty")
	}
	// HSTS only in production
	if got := rec.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("dev mode set HSTS: %q", got)
	}
}

func TestSecurityHeadersHSTSInProduction(t *testing.T) {
	mw := SecurityHeaders(DefaultSecurityHeadersConfig(false))
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Get("Strict-Transport-Security"); got == "" {
		t.Error("production mode did not set HSTS")
	}
}

func TestStripTrailingSlash(t *testing.T) {
	rec := httptest.NewRecorder()
	StripTrailingSlash(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blog/", nil))

	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/blog" {
		t.Errorf("Location = %q, want /blog", got)
	}
}

func TestStripTrailingSlashKeepsRoot(t *testing.T) {
	rec := httptest.NewRecorder()
	StripTrailingSlash(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("root path: status = %d, want 200", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	mw := rl.Middleware()

	status := func() int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		mw(okHandler()).ServeHTTP(rec, req)
		return rec.Code
	}

	// Burst of 2 passes, the third is limited
	if got := status(); got != http.StatusOK {
		t.Errorf("request 1: status = %d, want 200", got)
	}
	if got := status(); got != http.StatusOK {
		t.Errorf("request 2: status = %d, want 200", got)
	}
	if got := status(); got != http.StatusTooManyRequests {
		t.Errorf("request 3: status = %d, want 429", got)
	}
}

func TestRateLimiterPerIP(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	mw := rl.Middleware()

	for i, addr := range []string{"203.0.113.1:1", "203.0.113.2:1", "203.0.113.3:1"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		mw(okHandler()).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("ip %d: status = %d, want 200", i, rec.Code)
		}
	}
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	sm := scs.New()
	sess := session.New(sm)
	mw := RequireAuth(sess)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/write", nil)
	sm.LoadAndSave(mw(okHandler())).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/login" {
		t.Errorf("Location = %q, want /login", got)
	}
}

func TestRequireAuthPassesSignedIn(t *testing.T) {
	sm := scs.New()
	sess := session.New(sm)
	mw := RequireAuth(sess)

	handler := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess.SignIn(r, "token")
		mw(okHandler()).ServeHTTP(w, r)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/write", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
