package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ibneal/PersonalWebsite/core"
)

// GFMRenderer renders GitHub Flavored Markdown with goldmark. It covers
// tables, task lists and nested blocks that the built-in renderer does not,
// and serves as a reference when comparing output.
type GFMRenderer struct {
	md goldmark.Markdown
}

// NewGFMRenderer creates a GFMRenderer. Raw HTML in the source is kept only
// when unsafe is set.
func NewGFMRenderer(unsafe bool) *GFMRenderer {
	opts := []goldmark.Option{
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}
	if unsafe {
		opts = append(opts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	return &GFMRenderer{md: goldmark.New(opts...)}
}

// Render converts markdown to HTML.
func (r *GFMRenderer) Render(md string, meta core.PageMetadata) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(md), &buf); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", meta.URL, err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *GFMRenderer) Extension() string {
	return ".html"
}
