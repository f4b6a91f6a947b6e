// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package markdown

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// md is the shared converter for post content: GFM (tables,
// strikethrough, task lists) with raw HTML passed through. The live post
// page renders the author's own content, so embedded HTML is allowed
// there.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(ghtml.WithUnsafe()),
)

// previewSanitizer strips dangerous markup from authoring previews.
// UGCPolicy keeps safe user-generated tags while removing scripts and
// event handlers.
var previewSanitizer = bluemonday.UGCPolicy()

// Render converts stored Markdown to HTML for the live post page.
// Embedded raw HTML passes through untouched. Malformed Markdown degrades
// per goldmark's recovery behavior rather than erroring.
func Render(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // author-owned content on the live page
}

// RenderPreview converts Markdown for the authoring preview. Unlike
// Render, embedded HTML is sanitized before display since the preview
// shows content that has not been through the publish flow yet.
func RenderPreview(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown preview: %w", err)
	}
	return template.HTML(previewSanitizer.SanitizeBytes(buf.Bytes())), nil //nolint:gosec // sanitized above
}
