// Package core defines the shared types and pipeline interfaces of the
// portfolio renderer. Each stage of the pipeline is a small, testable
// interface: fetch → extract → normalize → render.
package core

import (
	"context"
	"mime"
	"strings"
)

// Document is a fetched source document.
type Document struct {
	URL         string
	ContentType string
	Body        string
}

// MediaType returns the document's media type without parameters.
func (d *Document) MediaType() string {
	mt, _, err := mime.ParseMediaType(d.ContentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.SplitN(d.ContentType, ";", 2)[0]))
	}
	return mt
}

// IsHTML reports whether the document is an HTML page rather than markdown
// or plain text.
func (d *Document) IsHTML() bool {
	switch d.MediaType() {
	case "text/html", "application/xhtml+xml":
		return true
	}
	return false
}

// PageMetadata describes the document being rendered.
type PageMetadata struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	FetchedAt string `json:"fetched_at"` // RFC 3339
}

// Heading represents a single heading found in the content.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink found in the content.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// DocumentStructure holds structural counts parsed from markdown.
type DocumentStructure struct {
	Headings   []Heading `json:"headings"`
	Links      []Link    `json:"links"`
	CodeBlocks int       `json:"code_blocks"`
	ListItems  int       `json:"list_items"`
}

// DocumentJSON is the JSON output for a single document.
type DocumentJSON struct {
	Metadata  PageMetadata      `json:"metadata"`
	Markdown  string            `json:"markdown"`
	HTML      string            `json:"html"`
	Structure DocumentStructure `json:"structure"`
}

// Project is one entry of the portfolio's project showcase.
type Project struct {
	ID           int      `json:"id" mapstructure:"id"`
	Title        string   `json:"title" mapstructure:"title"`
	Description  string   `json:"description" mapstructure:"description"`
	Technologies []string `json:"technologies" mapstructure:"technologies"`
	LiveURL      string   `json:"live_url" mapstructure:"live_url"`
	GitHubURL    string   `json:"github_url" mapstructure:"github_url"`
	// EmbedURL is shown in an embedded frame when DocURL is empty.
	EmbedURL string `json:"embed_url,omitempty" mapstructure:"embed_url"`
	// DocURL points at markdown (or an HTML page) rendered in the panel.
	DocURL string `json:"doc_url,omitempty" mapstructure:"doc_url"`
}

// HasDocs reports whether the project is shown as rendered documentation.
func (p Project) HasDocs() bool {
	return strings.TrimSpace(p.DocURL) != ""
}

// Fetcher retrieves a document from a URL or path.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Document, error)
}

// Extractor pulls the main content from raw HTML, stripping noise.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts cleaned HTML into markdown. Relative links are
// resolved against baseURL when it is not empty.
type Normalizer interface {
	Normalize(html string, baseURL string) (string, error)
}

// Renderer converts markdown (and metadata) into a final output format.
type Renderer interface {
	Render(markdown string, meta PageMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".html", ".pdf").
	Extension() string
}
