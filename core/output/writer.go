// Package output writes rendered documents to disk.
// Remote documents are named after their host and path (for example
// github_com_ibneal_TensorTradeGMI_blob_main_README.html); local files keep their base
// name with the renderer's extension.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ibneal/PersonalWebsite/core/links"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data for the document at source and returns the file path.
func (w *Writer) Write(source string, data []byte, ext string) (string, error) {
	out := filepath.Join(w.OutputDir, Filename(source)+ext)

	if err := os.WriteFile(out, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", out, err)
	}
	return out, nil
}

// Filename derives an output name, without extension, for source.
func Filename(source string) string {
	if !links.IsRemote(source) {
		base := filepath.Base(source)
		if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" && name != "." {
			return sanitize(name)
		}
		return "index"
	}

	parsed, err := url.Parse(source)
	if err != nil {
		return sanitize(source)
	}

	parts := []string{sanitize(parsed.Host)}
	trimmed := strings.Trim(parsed.Path, "/")
	if trimmed != "" {
		segs := strings.Split(trimmed, "/")
		last := len(segs) - 1
		segs[last] = strings.TrimSuffix(segs[last], path.Ext(segs[last]))
		for _, seg := range segs {
			if seg == "" {
				continue
			}
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
