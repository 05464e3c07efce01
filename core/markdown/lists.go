package markdown

import (
	"regexp"
	"strings"
)

// listState is the grouping stage's only state.
type listState int

const (
	notInList listState = iota
	inList
)

func (s listState) String() string {
	if s == inList {
		return "InList"
	}
	return "NotInList"
}

var (
	bulletItemRe  = regexp.MustCompile(`^\s*[-*] (.*)$`)
	orderedItemRe = regexp.MustCompile(`^\s*\d+\. (.*)$`)
)

// listItem reports whether line is a list item. It returns the item text and
// the wrapper tag a list starting with this item would use.
func listItem(line string) (text, tag string, ok bool) {
	if m := bulletItemRe.FindStringSubmatch(line); m != nil {
		return m[1], "ul", true
	}
	if m := orderedItemRe.FindStringSubmatch(line); m != nil {
		return m[1], "ol", true
	}
	return "", "", false
}

// lineGrouper wraps runs of list items in a single list element and every
// other prose line in a paragraph.
type lineGrouper struct {
	state   listState
	wrapper string
	out     []string
}

// enter opens a list wrapper. Only valid from notInList.
func (g *lineGrouper) enter(tag string) {
	g.state = inList
	g.wrapper = tag
	g.out = append(g.out, "<"+tag+">")
}

// leave closes the open wrapper, if any.
func (g *lineGrouper) leave() {
	if g.state != inList {
		return
	}
	g.out = append(g.out, "</"+g.wrapper+">")
	g.state = notInList
	g.wrapper = ""
}

func (g *lineGrouper) line(line string, last bool) {
	if text, tag, ok := listItem(line); ok {
		if g.state == notInList {
			g.enter(tag)
		}
		g.out = append(g.out, "<li>"+text+"</li>")
		return
	}

	g.leave()

	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		if !last {
			g.out = append(g.out, "<br>")
		}
	case strings.HasPrefix(trimmed, "<"):
		g.out = append(g.out, line)
	default:
		g.out = append(g.out, "<p>"+line+"</p>")
	}
}

// groupLines runs the grouping stage over the whole document.
func groupLines(text string) string {
	lines := strings.Split(text, "\n")
	g := &lineGrouper{out: make([]string, 0, len(lines)+2)}
	for i, line := range lines {
		g.line(line, i == len(lines)-1)
	}
	g.leave()
	return strings.Join(g.out, "\n")
}
