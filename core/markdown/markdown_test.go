package markdown

import (
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestRender_Exact(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "plain", "<p>plain</p>"},
		{"trailing newline", "a\n", "<p>a</p>"},
		{"h1", "# Title", "<h1>Title</h1>"},
		{"h2", "## Section", "<h2>Section</h2>"},
		{"h3", "### Sub", "<h3>Sub</h3>"},
		{"four hashes", "#### Deep", "<p>#### Deep</p>"},
		{"hash without space", "#NoSpace", "<p>#NoSpace</p>"},
		{"heading keeps text verbatim", "# Hello World!", "<h1>Hello World!</h1>"},
		{"rule", "---", "<hr>"},
		{"rule between paragraphs", "a\n---\nb", "<p>a</p>\n<hr>\n<p>b</p>"},
		{"blank line between paragraphs", "a\n\nb", "<p>a</p>\n<br>\n<p>b</p>"},
		{"bold and italic", "**bold** and *italic*", "<p><strong>bold</strong> and <em>italic</em></p>"},
		{"underscore emphasis", "__b__ _i_", "<p><strong>b</strong> <em>i</em></p>"},
		{"adjacent italics", "*a* *b*", "<p><em>a</em> <em>b</em></p>"},
		{"snake case untouched", "snake_case_name", "<p>snake_case_name</p>"},
		{"lone asterisk", "2 * 3 = 6", "<p>2 * 3 = 6</p>"},
		{"unmatched bracket", "[broken(link", "<p>[broken(link</p>"},
		{"raw html passes through", "<div>hi</div>", "<div>hi</div>"},
		{"inline code", "Use `x` here", "<p>Use <code>x</code> here</p>"},
		{"inline code protects emphasis", "Use `x*y*z` here", "<p>Use <code>x*y*z</code> here</p>"},
		{
			"link",
			"[text](http://x)",
			`<a href="http://x" target="_blank" rel="noopener noreferrer">text</a>`,
		},
		{
			"link with underscores in url",
			"[docs](https://x.io/a_b_c/d_e)",
			`<a href="https://x.io/a_b_c/d_e" target="_blank" rel="noopener noreferrer">docs</a>`,
		},
		{
			"bold link label",
			"see [**this**](http://x)",
			`<p>see <a href="http://x" target="_blank" rel="noopener noreferrer"><strong>this</strong></a></p>`,
		},
		{"bullet list", "* item", "<ul>\n<li>item</li>\n</ul>"},
		{"ordered list", "1. one\n2. two", "<ol>\n<li>one</li>\n<li>two</li>\n</ol>"},
		{"list item emphasis", "- *a*", "<ul>\n<li><em>a</em></li>\n</ul>"},
		{"list then paragraph", "- a\n- b\n\nc", "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n<br>\n<p>c</p>"},
		{"crlf line endings", "# T\r\n- a\r\n", "<h1>T</h1>\n<ul>\n<li>a</li>\n</ul>"},
		{
			"fenced code with language",
			"```go\nx := a*b*c\n```",
			`<pre><code class="language-go">x := a*b*c</code></pre>`,
		},
		{
			"fenced code without language",
			"```\n# not a heading\n- not a list\n```",
			"<pre><code># not a heading\n- not a list</code></pre>",
		},
		{"single line fence", "```inline```", "<pre><code>inline</code></pre>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.input))
		})
	}
}

func TestRender_CodeBlockContentIsVerbatim(t *testing.T) {
	body := "**not bold** _x_ `y` [a](b)\n# no\n- nope\n---\n1. never"
	input := "Intro *text*\n\n```md\n" + body + "\n```\n\nOutro"

	out := Render(input)

	assert.Contains(t, out, `<pre><code class="language-md">`+body+"</code></pre>")
	assert.Contains(t, out, "<p>Intro <em>text</em></p>")
	assert.Contains(t, out, "<p>Outro</p>")
}

func TestRender_MultipleCodeBlocksKeepOrder(t *testing.T) {
	input := "```\nfirst\n```\ntext\n```py\nsecond\n```"

	out := Render(input)

	first := strings.Index(out, "<pre><code>first</code></pre>")
	second := strings.Index(out, `<pre><code class="language-py">second</code></pre>`)
	require.NotEqual(t, -1, first, out)
	require.NotEqual(t, -1, second, out)
	assert.Less(t, first, second)
	assert.Contains(t, out, "<p>text</p>")
}

func TestRender_UnterminatedFence(t *testing.T) {
	out := Render("```go\nfmt.Println()")

	assert.NotContains(t, out, "<pre>")
	assert.Contains(t, out, "```go")
	assert.Contains(t, out, "fmt.Println()")
}

func TestRender_ListGrouping(t *testing.T) {
	doc := parse(t, Render("- a\n- b\n\nc"))

	require.Equal(t, 1, doc.Find("ul").Length())
	items := doc.Find("ul > li")
	require.Equal(t, 2, items.Length())
	assert.Equal(t, "a", items.Eq(0).Text())
	assert.Equal(t, "b", items.Eq(1).Text())
	assert.Equal(t, 0, doc.Find("ul p").Length(), "list must be closed before the paragraph")
	assert.Equal(t, "c", doc.Find("p").Last().Text())
}

func TestRender_SeparateListsForSeparateRuns(t *testing.T) {
	doc := parse(t, Render("- a\ntext\n- b"))

	assert.Equal(t, 2, doc.Find("ul").Length())
	assert.Equal(t, 1, doc.Find("ul").First().Find("li").Length())
}

func TestRender_MixedMarkersShareWrapper(t *testing.T) {
	out := Render("- a\n1. b\n* c")

	assert.Equal(t, "<ul>\n<li>a</li>\n<li>b</li>\n<li>c</li>\n</ul>", out)
}

func TestRender_ListClosedAtEndOfInput(t *testing.T) {
	out := Render("intro\n- last")

	assert.True(t, strings.HasSuffix(out, "</ul>"), out)
}

func TestRender_LinkAttributes(t *testing.T) {
	doc := parse(t, Render("[text](http://x)"))

	a := doc.Find("a")
	require.Equal(t, 1, a.Length())
	href, _ := a.Attr("href")
	target, _ := a.Attr("target")
	rel, _ := a.Attr("rel")
	assert.Equal(t, "http://x", href)
	assert.Equal(t, "_blank", target)
	assert.Contains(t, rel, "noopener")
	assert.Contains(t, rel, "noreferrer")
	assert.Equal(t, "text", a.Text())
}

func TestRender_UnknownPlaceholderLeftIntact(t *testing.T) {
	input := "<" + tokenMark + "9" + tokenMark + ">"

	assert.Equal(t, input, Render(input))
}

func TestRender_Deterministic(t *testing.T) {
	input := "# T\n\n```sh\necho *hi*\n```\n- [a](b)\n- **c**"

	assert.Equal(t, Render(input), Render(input))
}

func TestRender_Concurrent(t *testing.T) {
	input := "# Title\n\n```go\nfunc main() {}\n```\n\n- one\n- two\n\n**done**"
	want := Render(input)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Render(input)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestRenderer_EscapeHTML(t *testing.T) {
	r := New(WithEscapeHTML(true))

	t.Run("raw tags are neutralised", func(t *testing.T) {
		out := r.Render("<script>alert(1)</script>")
		assert.Equal(t, "<p>&lt;script&gt;alert(1)&lt;/script&gt;</p>", out)
	})

	t.Run("code is escaped too", func(t *testing.T) {
		out := r.Render("```\nif a < b && c {}\n```")
		assert.Equal(t, "<pre><code>if a &lt; b &amp;&amp; c {}</code></pre>", out)
	})

	t.Run("markdown still renders", func(t *testing.T) {
		out := r.Render("# Title\n**b**")
		assert.Equal(t, "<h1>Title</h1>\n<p><strong>b</strong></p>", out)
	})

	t.Run("quotes cannot break out of href", func(t *testing.T) {
		doc := parse(t, r.Render(`[x](http://a"onclick="alert)`))
		a := doc.Find("a")
		require.Equal(t, 1, a.Length())
		_, hasOnclick := a.Attr("onclick")
		assert.False(t, hasOnclick)
		href, _ := a.Attr("href")
		assert.Equal(t, `http://a"onclick="alert`, href)
	})
}

func TestRenderer_BaseURL(t *testing.T) {
	base, err := url.Parse("https://github.com/ibneal/TensorTradeGMI/blob/main/README.md")
	require.NoError(t, err)
	r := New(WithBaseURL(base))

	tests := []struct {
		name  string
		input string
		href  string
	}{
		{"relative", "[setup](docs/setup.md)", "https://github.com/ibneal/TensorTradeGMI/blob/main/docs/setup.md"},
		{"root relative", "[home](/ibneal)", "https://github.com/ibneal"},
		{"absolute", "[x](https://example.com/a)", "https://example.com/a"},
		{"fragment", "[top](#install)", "#install"},
		{"mailto", "[mail](mailto:me@example.com)", "mailto:me@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, r.Render(tt.input))
			href, ok := doc.Find("a").Attr("href")
			require.True(t, ok)
			assert.Equal(t, tt.href, href)
		})
	}
}

func TestListState_String(t *testing.T) {
	assert.Equal(t, "NotInList", notInList.String())
	assert.Equal(t, "InList", inList.String())
}

func FuzzRender(f *testing.F) {
	seeds := []string{
		"",
		"# a\n## b\n### c\n#### d",
		"```go\nx\n```",
		"```unterminated",
		"[a](b) **c** __d__ *e* _f_ `g`",
		"- a\n* b\n1. c\n\n---",
		"<" + tokenMark + "0" + tokenMark + ">",
		"***\n___\n**\n__",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		out := Render(input)
		if strings.TrimSpace(input) != "" && out == "" {
			t.Fatalf("non-blank input %q rendered to nothing", input)
		}
	})
}

func BenchmarkRender(b *testing.B) {
	input := strings.Repeat("# Heading\n\nParagraph with **bold** and *italic* text.\n\n- List item 1\n- List item 2\n\n```go\nfunc main() {}\n```\n", 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Render(input)
	}
}
