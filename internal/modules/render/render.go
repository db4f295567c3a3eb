// Package render turns markdown article content into standalone HTML
// pages, for the reader view and for admin previews.
package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Table,
		extension.Strikethrough,
		extension.Linkify,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

// Markdown converts markdown text to an HTML fragment. Falls back to
// escaped plain text if conversion fails.
func Markdown(markdownText string) string {
	text := strings.TrimSpace(markdownText)
	if text == "" {
		return ""
	}
	var out bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &out); err != nil {
		return "<pre>" + template.HTMLEscapeString(text) + "</pre>"
	}
	return out.String()
}

// Document wraps a rendered fragment into a full HTML page.
func Document(title, bodyHTML string) string {
	escapedTitle := template.HTMLEscapeString(strings.TrimSpace(title))
	if escapedTitle == "" {
		escapedTitle = "NexusMena"
	}

	var b strings.Builder
	b.Grow(2048 + len(bodyHTML))
	b.WriteString(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <meta name="referrer" content="no-referrer" />
  <title>`)
	b.WriteString(escapedTitle)
	b.WriteString(`</title>
  <style>
    body { margin: 0; padding: 24px; font: 16px/1.7 -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; color: #222; background: #fff; }
    article { max-width: 860px; margin: 0 auto; }
    h1 { margin: 0 0 20px; font-size: 28px; }
    img { max-width: 100%; }
    pre { white-space: pre-wrap; word-break: break-word; border: 1px solid #eee; border-radius: 8px; padding: 16px; background: #fafafa; }
    blockquote { margin: 0; padding: 0 1em; color: #555; border-left: 4px solid #ddd; }
    table { border-collapse: collapse; }
    th, td { border: 1px solid #ddd; padding: 6px 12px; }
  </style>
</head>
<body>
  <article>
    <h1>`)
	b.WriteString(escapedTitle)
	b.WriteString("</h1>\n")
	b.WriteString(bodyHTML)
	b.WriteString(`
  </article>
</body>
</html>`)
	return b.String()
}
