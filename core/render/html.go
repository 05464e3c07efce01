// Package render provides output renderers for the portfolio pipeline.
// This file implements the HTML fragment renderer, backed by the markdown
// package. Its output is meant to be injected into a page as-is.
package render

import (
	"github.com/ibneal/PersonalWebsite/core"
	"github.com/ibneal/PersonalWebsite/core/links"
	"github.com/ibneal/PersonalWebsite/core/markdown"
)

// HTMLRenderer renders markdown to an HTML fragment.
type HTMLRenderer struct {
	// EscapeHTML escapes raw HTML in the source. Leave it off only for
	// self-authored documents.
	EscapeHTML bool
}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer(escapeHTML bool) *HTMLRenderer {
	return &HTMLRenderer{EscapeHTML: escapeHTML}
}

// Render converts markdown into an HTML fragment. Relative links resolve
// against meta.URL when it is a web address.
func (r *HTMLRenderer) Render(md string, meta core.PageMetadata) ([]byte, error) {
	return []byte(r.renderer(meta).Render(md)), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

func (r *HTMLRenderer) renderer(meta core.PageMetadata) *markdown.Renderer {
	return markdown.New(
		markdown.WithEscapeHTML(r.EscapeHTML),
		markdown.WithBaseURL(links.Base(meta.URL)),
	)
}
