// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package markdown implements the import normalizer, the display
// rendering pipeline, and excerpt generation for post content.
package markdown

import (
	"regexp"
	"strings"
)

var (
	// Backslash-escaped Markdown punctuation produced by exporters
	// (Notion, Google Docs) that should read as plain Markdown again.
	escapedPunct = regexp.MustCompile(`\\([#*_\-!\[\]()>])`)

	// Three or more consecutive newlines collapse to a single blank line.
	excessNewlines = regexp.MustCompile(`\n{3,}`)
)

// Normalize prepares raw text from an imported .md file for the content
// editor. Transformations, in order: line endings to LF, unescape
// backslash-escaped punctuation, replace &nbsp; with a space, collapse
// runs of 3+ newlines to exactly two, trim trailing whitespace.
//
// Empty input passes through unchanged.
func Normalize(raw string) string {
	if raw == "" {
		return raw
	}

	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	s = escapedPunct.ReplaceAllString(s, "$1")

	s = strings.ReplaceAll(s, "&nbsp;", " ")

	s = excessNewlines.ReplaceAllString(s, "\n\n")

	return strings.TrimRight(s, " \t\n")
}
