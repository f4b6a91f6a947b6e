// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"regexp"
	"strings"
)

// emailRegex is a pragmatic format check; deliverability is the
// backend's problem.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsMarkdownFilename reports whether an uploaded filename carries the
// .md extension required by the import flow.
func IsMarkdownFilename(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".md")
}

// ValidatePostForm checks the authoring fields that must block
// submission before any network call. Returns an error message, or ""
// when valid.
func ValidatePostForm(title, content string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required"
	}
	if strings.TrimSpace(content) == "" {
		return "Content is required"
	}
	return ""
}
