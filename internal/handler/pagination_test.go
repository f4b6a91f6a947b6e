// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/url"
	"testing"
)

func TestParsePageParam(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing", "", 0},
		{"zero", "page=0", 0},
		{"positive", "page=3", 3},
		{"negative falls back", "page=-1", 0},
		{"garbage falls back", "page=abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, _ := url.ParseQuery(tt.query)
			got := ParsePageParam(query)
			if got != tt.want {
				t.Errorf("ParsePageParam(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       int
	}{
		{"in range", 2, 5, 2},
		{"first page", 0, 5, 0},
		{"last page", 4, 5, 4},
		{"past the end", 7, 5, 4},
		{"below zero", -3, 5, 0},
		{"no pages", 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampPage(tt.page, tt.totalPages)
			if got != tt.want {
				t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.totalPages, got, tt.want)
			}
		})
	}
}

func TestBuildPagination(t *testing.T) {
	query, _ := url.ParseQuery("category=go&page=2")
	p := BuildPagination(2, 7, 61, "/blog", query)

	if !p.HasPrev || !p.HasNext {
		t.Fatalf("HasPrev = %v, HasNext = %v, want both true", p.HasPrev, p.HasNext)
	}
	// 0-based internally, 1-based on screen
	if p.Display != "Page 3 of 7" {
		t.Errorf("Display = %q, want %q", p.Display, "Page 3 of 7")
	}
	if p.PrevURL != "/blog?category=go&page=1" {
		t.Errorf("PrevURL = %q, want %q", p.PrevURL, "/blog?category=go&page=1")
	}
	if p.NextURL != "/blog?category=go&page=3" {
		t.Errorf("NextURL = %q, want %q", p.NextURL, "/blog?category=go&page=3")
	}
}

func TestBuildPaginationBounds(t *testing.T) {
	first := BuildPagination(0, 4, 30, "/blog", nil)
	if first.HasPrev {
		t.Error("first page: HasPrev = true, want false")
	}
	if first.PrevURL != "" {
		t.Errorf("first page: PrevURL = %q, want empty", first.PrevURL)
	}

	last := BuildPagination(3, 4, 30, "/blog", nil)
	if last.HasNext {
		t.Error("last page: HasNext = true, want false")
	}

	past := BuildPagination(9, 4, 30, "/blog", nil)
	if past.Page != 3 {
		t.Errorf("past-the-end page clamped to %d, want 3", past.Page)
	}

	empty := BuildPagination(0, 0, 0, "/blog", nil)
	if empty.Display != "Page 1 of 1" {
		t.Errorf("empty result Display = %q, want %q", empty.Display, "Page 1 of 1")
	}
	if empty.HasPrev || empty.HasNext {
		t.Error("empty result: expected no prev/next")
	}
}

func TestBuildPaginationDropsEmptyParams(t *testing.T) {
	query, _ := url.ParseQuery("category=&page=1")
	p := BuildPagination(1, 3, 20, "/blog", query)
	if p.NextURL != "/blog?page=2" {
		t.Errorf("NextURL = %q, want %q", p.NextURL, "/blog?page=2")
	}
}
