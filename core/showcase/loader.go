package showcase

import (
	"context"
	"fmt"
	"time"

	"github.com/ibneal/PersonalWebsite/core"
	"github.com/ibneal/PersonalWebsite/core/extract"
	"github.com/ibneal/PersonalWebsite/core/links"
)

// Source is a document ready for the markdown renderer.
type Source struct {
	Markdown string
	Meta     core.PageMetadata
}

// Loader turns a document location into markdown. HTML pages are reduced to
// their main content and converted; markdown and plain text pass through.
type Loader struct {
	Fetcher    core.Fetcher
	Extractor  core.Extractor
	Normalizer core.Normalizer

	now func() time.Time
}

// NewLoader creates a Loader from the three pipeline stages.
func NewLoader(f core.Fetcher, e core.Extractor, n core.Normalizer) *Loader {
	return &Loader{Fetcher: f, Extractor: e, Normalizer: n, now: time.Now}
}

// Load fetches location and returns its markdown.
func (l *Loader) Load(ctx context.Context, location string) (*Source, error) {
	doc, err := l.Fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	now := time.Now
	if l.now != nil {
		now = l.now
	}
	meta := core.PageMetadata{
		URL:       doc.URL,
		FetchedAt: now().UTC().Format(time.RFC3339),
	}

	if !doc.IsHTML() {
		return &Source{Markdown: doc.Body, Meta: meta}, nil
	}

	meta.Title = extract.Title(doc.Body)

	content, err := l.Extractor.Extract(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	var base string
	if links.Base(doc.URL) != nil {
		base = doc.URL
	}
	md, err := l.Normalizer.Normalize(content, base)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	return &Source{Markdown: md, Meta: meta}, nil
}
