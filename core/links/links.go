// Package links provides URL helpers shared by the fetchers and renderers:
// resolving document-relative links, normalizing URLs and classifying paths.
package links

import (
	"net/url"
	"path"
	"strings"
)

// staticExtensions are file extensions that never hold a renderable document.
var staticExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".bmp": true,
	".css": true, ".js": true, ".mjs": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	".zip": true, ".tar": true, ".gz": true,
	".pdf": true,
}

var markdownExtensions = map[string]bool{
	".md": true, ".markdown": true, ".mdown": true, ".mkd": true,
}

// Resolve resolves href against base. Absolute URLs, fragments, mailto: and
// similar links are returned unchanged, as is everything when base is nil.
func Resolve(base *url.URL, href string) string {
	if base == nil || href == "" {
		return href
	}
	if strings.HasPrefix(href, "#") || strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "javascript:") {
		return href
	}

	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() || ref.Host != "" {
		return href
	}
	return base.ResolveReference(ref).String()
}

// Base parses rawURL as the base for relative links. It returns nil unless
// rawURL is an absolute http(s) URL.
func Base(rawURL string) *url.URL {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil
	}
	return parsed
}

// IsRemote reports whether rawURL should be fetched over HTTP.
func IsRemote(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// IsMarkdown reports whether the path of rawURL has a markdown extension.
func IsMarkdown(rawURL string) bool {
	return markdownExtensions[ext(rawURL)]
}

// IsStaticAsset reports whether rawURL points to an image, script, font or
// other asset that cannot be rendered as a document.
func IsStaticAsset(rawURL string) bool {
	return staticExtensions[ext(rawURL)]
}

// NormalizeURL strips the fragment, which servers never see.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.Fragment = ""
	parsed.RawFragment = ""
	return parsed.String()
}

func ext(rawURL string) string {
	p := rawURL
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Path != "" {
		p = parsed.Path
	}
	return strings.ToLower(path.Ext(p))
}
