// Package markdown converts a forgiving subset of markdown into HTML.
//
// Rendering is a fixed sequence of whole-document substitutions:
//
//  1. fenced code blocks are lifted into a placeholder table
//  2. inline code spans
//  3. headings (levels 1 to 3)
//  4. links, opened in a new browsing context without an opener reference
//  5. bold
//  6. italic
//  7. horizontal rules
//  8. list grouping and paragraphs
//  9. fenced code blocks are restored
//
// The order matters: each stage assumes the ones before it have run.
// Unrecognised or malformed syntax is left in place. Render never fails.
//
// Input is trusted: angle brackets outside recognised constructs are passed
// through. Use WithEscapeHTML for text that was not written by the site owner.
package markdown

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ibneal/PersonalWebsite/core/links"
)

var (
	// An info string is only taken as a language tag when a newline follows
	// it, so ```inline``` keeps its text as code.
	fenceRe = regexp.MustCompile("(?s)```(?:[ \\t]*([\\w+#.-]+)[ \\t]*\\n|[ \\t]*\\n?)(.*?)```")

	inlineCodeRe = regexp.MustCompile("`([^`\\n]+)`")

	headingRe = regexp.MustCompile(`(?m)^(#{1,3}) (.*)$`)

	linkRe = regexp.MustCompile(`\[([^\]\n]*)\]\(([^()\s]+)\)`)

	boldStarRe       = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
	boldUnderscoreRe = regexp.MustCompile(`__([^_\n]+)__`)

	// Italic delimiters may not touch another copy of themselves, and the
	// text may not start or end with a space, so "* item" stays a bullet.
	// Underscores inside words (snake_case) are left alone.
	italicStarRe       = regexp.MustCompile(`(^|[^*])\*([^*\s](?:[^*\n]*[^*\s])?)\*([^*]|$)`)
	italicUnderscoreRe = regexp.MustCompile(`(^|[^\w])_([^_\s](?:[^_\n]*[^_\s])?)_([^\w]|$)`)

	ruleRe = regexp.MustCompile(`(?m)^---$`)
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithEscapeHTML escapes HTML special characters in the source before any
// markdown is interpreted. Fenced code is escaped as well.
func WithEscapeHTML(escape bool) Option {
	return func(r *Renderer) {
		r.escapeHTML = escape
	}
}

// WithBaseURL resolves relative link targets against base.
func WithBaseURL(base *url.URL) Option {
	return func(r *Renderer) {
		r.base = base
	}
}

// Renderer renders markdown with a fixed set of options. It holds no state
// between calls and is safe for concurrent use.
type Renderer struct {
	escapeHTML bool
	base       *url.URL
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRenderer = New()

// Render converts markdown text to HTML with the default options.
func Render(text string) string {
	return defaultRenderer.Render(text)
}

// Render converts markdown text to HTML.
func (r *Renderer) Render(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if r.escapeHTML {
		text = escaper.Replace(text)
	}

	table := &fragments{}

	text = extractFences(text, table)
	text = inlineCode(text, table)
	text = headings(text)
	text = r.links(text, table)
	text = bold(text)
	text = italic(text)
	text = ruleRe.ReplaceAllString(text, "<hr>")
	text = groupLines(text)

	return table.restore(text)
}

func extractFences(text string, table *fragments) string {
	return fenceRe.ReplaceAllStringFunc(text, func(block string) string {
		m := fenceRe.FindStringSubmatch(block)
		if m == nil {
			return block
		}
		return table.hold(fragment{
			kind: fencedCode,
			lang: m[1],
			text: strings.TrimSuffix(m[2], "\n"),
		})
	})
}

// inlineCode converts code spans and parks them in the table so that the
// emphasis stages do not reach into them.
func inlineCode(text string, table *fragments) string {
	return inlineCodeRe.ReplaceAllStringFunc(text, func(span string) string {
		m := inlineCodeRe.FindStringSubmatch(span)
		if m == nil {
			return span
		}
		return table.hold(fragment{kind: markup, text: "<code>" + m[1] + "</code>"})
	})
}

func headings(text string) string {
	return headingRe.ReplaceAllStringFunc(text, func(line string) string {
		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			return line
		}
		tag := "h" + string(rune('0'+len(m[1])))
		return "<" + tag + ">" + m[2] + "</" + tag + ">"
	})
}

// links converts [label](url). The opening tag is parked in the table so
// that underscores in target="_blank" and in URLs are not read as emphasis.
// The label stays in the text and is still subject to bold and italic.
func (r *Renderer) links(text string, table *fragments) string {
	return linkRe.ReplaceAllStringFunc(text, func(link string) string {
		m := linkRe.FindStringSubmatch(link)
		if m == nil {
			return link
		}
		href := links.Resolve(r.base, m[2])
		open := `<a href="` + href + `" target="_blank" rel="noopener noreferrer">`
		return table.hold(fragment{kind: markup, text: open}) + m[1] + "</a>"
	})
}

func bold(text string) string {
	text = boldStarRe.ReplaceAllString(text, "<strong>$1</strong>")
	return boldUnderscoreRe.ReplaceAllString(text, "<strong>$1</strong>")
}

func italic(text string) string {
	text = replaceUntilStable(italicStarRe, text, "${1}<em>${2}</em>${3}")
	return replaceUntilStable(italicUnderscoreRe, text, "${1}<em>${2}</em>${3}")
}

// replaceUntilStable reapplies re until the text stops changing. The italic
// patterns consume the character after a closing delimiter, which hides an
// adjacent span from the same pass. Every pass that changes the text removes
// two delimiters, so the loop ends.
func replaceUntilStable(re *regexp.Regexp, text, repl string) string {
	for {
		next := re.ReplaceAllString(text, repl)
		if next == text {
			return text
		}
		text = next
	}
}
