// Package extract implements the Extractor interface.
// It isolates the documentation body of an HTML page by:
//  1. Finding the best content container (a rendered README, <main>, <article> or <body>)
//  2. Removing navigation, scripts, forms and other page chrome
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// containers are tried in order; the first one present wins.
var containers = []string{
	"article.markdown-body", // repository README pages
	"#readme",
	"main",
	"article",
	"body",
}

// noiseSelectors are removed before extraction.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "header",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
	".anchor", // heading permalinks
}

// HTMLExtractor strips noise from HTML and returns the main content fragment.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract takes raw HTML and returns a cleaned HTML fragment containing
// only the main content.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	var content *goquery.Selection
	for _, sel := range containers {
		found := doc.Find(sel)
		if found.Length() > 0 {
			content = found.First()
			break
		}
	}
	if content == nil {
		return "", fmt.Errorf("no content container found in HTML")
	}

	for _, sel := range noiseSelectors {
		content.Find(sel).Remove()
	}

	result, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return result, nil
}

// Title returns the page's <title>, or its first <h1> when there is none.
func Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}
