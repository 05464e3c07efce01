package fetch

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ibneal/PersonalWebsite/core"
	"github.com/ibneal/PersonalWebsite/core/links"
)

// FileFetcher reads documents from the local filesystem.
type FileFetcher struct {
	// Root, when set, is joined in front of relative paths.
	Root string
}

// NewFile creates a FileFetcher rooted at root.
func NewFile(root string) *FileFetcher {
	return &FileFetcher{Root: root}
}

// Fetch reads the file at path. A file:// URL is accepted too.
func (f *FileFetcher) Fetch(ctx context.Context, path string) (*core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.HasPrefix(path, "file://") {
		u, err := url.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		path = u.Path
	}
	if f.Root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(f.Root, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &core.Document{
		URL:         path,
		ContentType: contentTypeFor(path),
		Body:        string(data),
	}, nil
}

func contentTypeFor(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case links.IsMarkdown(path):
		return "text/markdown; charset=utf-8"
	case ext == ".html" || ext == ".htm":
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Auto dispatches http(s) locations to an HTTP fetcher and everything else
// to a file fetcher.
type Auto struct {
	HTTP core.Fetcher
	File core.Fetcher
}

// NewAuto creates an Auto fetcher from the two backends.
func NewAuto(http, file core.Fetcher) *Auto {
	return &Auto{HTTP: http, File: file}
}

// Fetch retrieves location with the matching backend.
func (a *Auto) Fetch(ctx context.Context, location string) (*core.Document, error) {
	if links.IsRemote(location) {
		return a.HTTP.Fetch(ctx, location)
	}
	return a.File.Fetch(ctx, location)
}
