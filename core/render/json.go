package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ibneal/PersonalWebsite/core"
)

// JSONRenderer produces a JSON description of a document: its metadata,
// the source markdown, the rendered HTML and the structure the renderer
// recognises (headings, links, fenced code blocks, list items).
type JSONRenderer struct {
	html *HTMLRenderer
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer(escapeHTML bool) *JSONRenderer {
	return &JSONRenderer{html: NewHTMLRenderer(escapeHTML)}
}

var (
	// fencedBlockRe matches whole fenced blocks so their content is not
	// mistaken for headings or list items.
	fencedBlockRe = regexp.MustCompile("(?s)```.*?```")
	headingLineRe = regexp.MustCompile(`(?m)^(#{1,3}) (.+)$`)
	linkRefRe     = regexp.MustCompile(`\[([^\]\n]*)\]\(([^()\s]+)\)`)
	listLineRe    = regexp.MustCompile(`(?m)^[ \t]*(?:[-*]|\d+\.) `)
)

// Render converts markdown and metadata into the JSON document.
func (r *JSONRenderer) Render(md string, meta core.PageMetadata) ([]byte, error) {
	html, err := r.html.Render(md, meta)
	if err != nil {
		return nil, err
	}

	page := core.DocumentJSON{
		Metadata:  meta,
		Markdown:  md,
		HTML:      string(html),
		Structure: Structure(md),
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// Structure lists what the markdown renderer will recognise in md.
func Structure(md string) core.DocumentStructure {
	md = strings.ReplaceAll(md, "\r\n", "\n")
	codeBlocks := len(fencedBlockRe.FindAllString(md, -1))
	prose := fencedBlockRe.ReplaceAllString(md, "")

	headings := make([]core.Heading, 0)
	for _, m := range headingLineRe.FindAllStringSubmatch(prose, -1) {
		headings = append(headings, core.Heading{
			Level: len(m[1]),
			Text:  strings.TrimSpace(m[2]),
		})
	}

	links := make([]core.Link, 0)
	for _, m := range linkRefRe.FindAllStringSubmatch(prose, -1) {
		links = append(links, core.Link{Text: m[1], Href: m[2]})
	}

	return core.DocumentStructure{
		Headings:   headings,
		Links:      links,
		CodeBlocks: codeBlocks,
		ListItems:  len(listLineRe.FindAllString(prose, -1)),
	}
}
