// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package markdown

import (
	"strings"
	"testing"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name   string
		source string
		max    int
		want   string
	}{
		{
			name:   "strips markdown syntax",
			source: "# Heading\n\nSome **bold** text",
			max:    100,
			want:   "Heading Some bold text",
		},
		{
			name:   "strips inline html",
			source: "before <script>alert(1)</script> after",
			max:    100,
			want:   "before after",
		},
		{
			name:   "short text unchanged",
			source: "short",
			max:    10,
			want:   "short",
		},
		{
			name:   "long text truncated with ellipsis",
			source: strings.Repeat("word ", 100),
			max:    20,
			want:   strings.Repeat("word ", 4)[:20] + "...",
		},
		{
			name:   "collapses internal whitespace",
			source: "one\n\ntwo   three",
			max:    100,
			want:   "one two three",
		},
		{
			name:   "empty source",
			source: "",
			max:    100,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Excerpt(tt.source, tt.max)
			if got != tt.want {
				t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.source, tt.max, got, tt.want)
			}
		})
	}
}

func TestExcerptRuneTruncation(t *testing.T) {
	// Truncation must not split multi-byte runes
	source := strings.Repeat("é", 50)
	got := Excerpt(source, 10)
	want := strings.Repeat("é", 10) + "..."
	if got != want {
		t.Errorf("Excerpt = %q, want %q", got, want)
	}
}
