// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package markdown

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultExcerptLength is the excerpt budget used by list views.
const DefaultExcerptLength = 200

// textOnly removes every tag, leaving plain text.
var textOnly = bluemonday.StrictPolicy()

// Excerpt returns a Markdown-stripped, length-truncated preview of post
// content. Content longer than max is cut at max runes and suffixed with
// "..."; shorter content is returned stripped, with no suffix.
func Excerpt(source string, max int) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		// Fall back to the raw source if the parser chokes.
		buf.Reset()
		buf.WriteString(source)
	}

	text := html.UnescapeString(textOnly.Sanitize(buf.String()))
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
