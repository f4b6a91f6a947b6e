// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.co.uk",
		"user+tag@example.io",
	}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{
		"",
		"plain",
		"@example.com",
		"user@",
		"user@host",
		"user @example.com",
		"user@exa mple.com",
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsMarkdownFilename(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"notes.md", true},
		{"NOTES.MD", true},
		{"mixed.Md", true},
		{"script.sh", false},
		{"md", false},
		{"archive.md.zip", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsMarkdownFilename(tt.name); got != tt.want {
			t.Errorf("IsMarkdownFilename(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValidatePostForm(t *testing.T) {
	if msg := ValidatePostForm("Title", "Content"); msg != "" {
		t.Errorf("valid form returned %q", msg)
	}
	if msg := ValidatePostForm("", "Content"); msg == "" {
		t.Error("missing title passed validation")
	}
	if msg := ValidatePostForm("Title", "   \n"); msg == "" {
		t.Error("whitespace content passed validation")
	}
}
