// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render converts article markdown into sanitized HTML.
package render

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// htmlSanitizer strips dangerous elements like <script> and event
// handlers while keeping the tags goldmark emits for article content.
var htmlSanitizer = bluemonday.UGCPolicy()

// markdown is the shared converter. GFM covers tables, strikethrough
// and autolinks used in article bodies.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Markdown converts markdown source to sanitized HTML. The output is
// safe to store and serve to anonymous visitors.
func Markdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return htmlSanitizer.Sanitize(buf.String()), nil
}
