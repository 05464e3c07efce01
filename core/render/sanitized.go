package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ibneal/PersonalWebsite/core"
)

// SanitizedHTMLRenderer renders markdown with the HTMLRenderer and then
// filters the result through a user-generated-content policy. Use it for
// documents the site owner did not write.
type SanitizedHTMLRenderer struct {
	html   *HTMLRenderer
	policy *bluemonday.Policy
}

// NewSanitizedHTMLRenderer creates a SanitizedHTMLRenderer.
func NewSanitizedHTMLRenderer() *SanitizedHTMLRenderer {
	return &SanitizedHTMLRenderer{
		html:   NewHTMLRenderer(false),
		policy: showcasePolicy(),
	}
}

// showcasePolicy is the UGC policy plus what the markdown renderer emits:
// language classes on code and new-context links without an opener.
func showcasePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w+#.-]+$`)).OnElements("code")
	p.RequireNoFollowOnLinks(false)
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Render converts markdown into sanitized HTML.
func (r *SanitizedHTMLRenderer) Render(md string, meta core.PageMetadata) ([]byte, error) {
	out, err := r.html.Render(md, meta)
	if err != nil {
		return nil, err
	}
	return r.policy.SanitizeBytes(out), nil
}

// Extension returns the file extension for HTML output.
func (r *SanitizedHTMLRenderer) Extension() string {
	return ".html"
}
