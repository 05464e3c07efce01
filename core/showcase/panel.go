// Package showcase implements the project showcase panel. Selecting a
// project either points the panel at an embedded page or loads and renders
// the project's markdown documentation.
//
// Selections may overlap. Every selection takes a new generation and only
// the newest one is committed; older loads finish and are discarded.
package showcase

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"log"
	"sync"

	"github.com/ibneal/PersonalWebsite/core"
	"github.com/ibneal/PersonalWebsite/core/extract"
	"github.com/ibneal/PersonalWebsite/core/links"
	"github.com/ibneal/PersonalWebsite/core/markdown"
	"github.com/ibneal/PersonalWebsite/core/normalize"
)

// DefaultFallback is shown in place of documentation that failed to load.
const DefaultFallback = "Unable to load project documentation. Please try again later."

// ErrNoProject is returned when selecting an index with no project.
var ErrNoProject = errors.New("no such project")

// Kind says how a view is displayed.
type Kind string

const (
	KindEmbed Kind = "embed"
	KindDocs  Kind = "docs"
)

// View is what the panel shows for the selected project.
type View struct {
	Index      int          `json:"index"`
	Project    core.Project `json:"project"`
	Kind       Kind         `json:"kind"`
	EmbedURL   string       `json:"embed_url,omitempty"`
	Content    string       `json:"content,omitempty"`
	Failed     bool         `json:"failed,omitempty"`
	Generation uint64       `json:"generation"`
}

// Fragment returns the markup to place in the panel.
func (v View) Fragment() string {
	if v.Kind == KindEmbed {
		return fmt.Sprintf(`<iframe src="%s" title="%s" loading="lazy"></iframe>`,
			html.EscapeString(v.EmbedURL), html.EscapeString(v.Project.Title))
	}
	return v.Content
}

// Panel holds the project list and the committed view.
type Panel struct {
	projects   []core.Project
	fetcher    core.Fetcher
	extractor  core.Extractor
	normalizer core.Normalizer
	fallback   string
	escapeHTML bool
	logger     *log.Logger

	mu         sync.Mutex
	generation uint64
	current    *View
}

// Option configures a Panel.
type Option func(*Panel)

// WithExtractor replaces the HTML content extractor.
func WithExtractor(e core.Extractor) Option {
	return func(p *Panel) { p.extractor = e }
}

// WithNormalizer replaces the HTML to markdown normalizer.
func WithNormalizer(n core.Normalizer) Option {
	return func(p *Panel) { p.normalizer = n }
}

// WithFallback sets the message shown when documentation fails to load.
// An empty message keeps DefaultFallback.
func WithFallback(msg string) Option {
	return func(p *Panel) {
		if msg != "" {
			p.fallback = msg
		}
	}
}

// WithEscapeHTML escapes raw HTML in fetched documents before rendering.
func WithEscapeHTML(escape bool) Option {
	return func(p *Panel) { p.escapeHTML = escape }
}

// WithLogger logs failed and discarded loads.
func WithLogger(l *log.Logger) Option {
	return func(p *Panel) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Panel over projects. Nothing is selected until Select is
// called.
func New(projects []core.Project, f core.Fetcher, opts ...Option) *Panel {
	p := &Panel{
		projects:   append([]core.Project(nil), projects...),
		fetcher:    f,
		extractor:  extract.New(),
		normalizer: normalize.New(),
		fallback:   DefaultFallback,
		logger:     log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Projects returns a copy of the project list.
func (p *Panel) Projects() []core.Project {
	return append([]core.Project(nil), p.projects...)
}

// Fallback returns the message shown for failed loads.
func (p *Panel) Fallback() string {
	return p.fallback
}

// Current returns the last committed view.
func (p *Panel) Current() (View, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return View{}, false
	}
	return *p.current, true
}

// Select makes project index active and loads what it shows. The returned
// view is always complete; committed is false when a later selection
// superseded this one while it was loading.
func (p *Panel) Select(ctx context.Context, index int) (view View, committed bool, err error) {
	if index < 0 || index >= len(p.projects) {
		return View{}, false, fmt.Errorf("%w: %d", ErrNoProject, index)
	}

	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.mu.Unlock()

	project := p.projects[index]
	view = View{Index: index, Project: project, Generation: gen}
	if project.HasDocs() {
		view.Kind = KindDocs
		view.Content, view.Failed = p.load(ctx, project)
	} else {
		view.Kind = KindEmbed
		view.EmbedURL = project.EmbedURL
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		p.logger.Printf("showcase: discarding stale load of %q (generation %d, latest %d)", project.Title, gen, p.generation)
		return view, false, nil
	}
	p.current = &view
	return view, true, nil
}

// load renders the project's documentation, or the fallback message.
func (p *Panel) load(ctx context.Context, project core.Project) (string, bool) {
	loader := NewLoader(p.fetcher, p.extractor, p.normalizer)
	src, err := loader.Load(ctx, project.DocURL)
	if err != nil {
		p.logger.Printf("showcase: loading %s: %v", project.DocURL, err)
		return p.fallback, true
	}

	r := markdown.New(
		markdown.WithEscapeHTML(p.escapeHTML),
		markdown.WithBaseURL(links.Base(src.Meta.URL)),
	)
	return r.Render(src.Markdown), false
}
