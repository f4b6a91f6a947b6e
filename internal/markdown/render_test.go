// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBasicMarkdown(t *testing.T) {
	html, err := Render("# Title\n\nSome **bold** text")
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>Title</h1>")
	assert.Contains(t, string(html), "<strong>bold</strong>")
}

func TestRenderGFMTable(t *testing.T) {
	src := "| a | b |\n|---|---|\n| 1 | 2 |"
	html, err := Render(src)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<table>")
}

func TestRenderKeepsRawHTML(t *testing.T) {
	// The live post page shows the author's own content; embedded HTML
	// passes through
	html, err := Render(`<div class="aside">note</div>`)
	require.NoError(t, err)
	assert.Contains(t, string(html), `<div class="aside">`)
}

func TestRenderPreviewStripsScripts(t *testing.T) {
	html, err := RenderPreview("hello <script>alert(1)</script> world")
	require.NoError(t, err)
	out := string(html)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "world")
}

func TestRenderPreviewStripsEventHandlers(t *testing.T) {
	html, err := RenderPreview(`<img src="x.png" onerror="alert(1)">`)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(html), "onerror"), "event handler survived sanitization")
}

func TestRenderPreviewKeepsSafeMarkup(t *testing.T) {
	html, err := RenderPreview("**bold** and [a link](https://example.com)")
	require.NoError(t, err)
	assert.Contains(t, string(html), "<strong>bold</strong>")
	assert.Contains(t, string(html), `href="https://example.com"`)
}
