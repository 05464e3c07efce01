package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

// tokenMark is a private-use rune. Markdown authors do not type it, so a
// placeholder built from it cannot be confused with surrounding prose.
const tokenMark = "\uE000"

// tokenRe matches placeholders produced by fragments.hold. A placeholder
// starts with '<' so the paragraph stage treats it like existing markup.
var tokenRe = regexp.MustCompile("<" + tokenMark + `(\d+)` + tokenMark + ">")

type fragmentKind int

const (
	// fencedCode holds the body of a ``` block, fences and tag removed.
	fencedCode fragmentKind = iota
	// markup holds finished HTML that later stages must not touch.
	markup
)

type fragment struct {
	kind fragmentKind
	lang string
	text string
}

// fragments is the per-render placeholder table. Entries are addressed by
// insertion index and never shared between renders.
type fragments struct {
	items []fragment
}

// hold stores f and returns the placeholder that stands in for it.
func (t *fragments) hold(f fragment) string {
	t.items = append(t.items, f)
	return "<" + tokenMark + strconv.Itoa(len(t.items)-1) + tokenMark + ">"
}

// restore substitutes every placeholder in text with its fragment's HTML.
// Placeholders that do not resolve to an entry are left as they are.
func (t *fragments) restore(text string) string {
	if len(t.items) == 0 {
		return text
	}
	return tokenRe.ReplaceAllStringFunc(text, func(tok string) string {
		m := tokenRe.FindStringSubmatch(tok)
		if m == nil {
			return tok
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil || idx < 0 || idx >= len(t.items) {
			return tok
		}
		return t.items[idx].html()
	})
}

func (f fragment) html() string {
	if f.kind == markup {
		return f.text
	}

	var b strings.Builder
	b.WriteString("<pre><code")
	if f.lang != "" {
		b.WriteString(` class="language-`)
		b.WriteString(f.lang)
		b.WriteString(`"`)
	}
	b.WriteString(">")
	b.WriteString(f.text)
	b.WriteString("</code></pre>")
	return b.String()
}
