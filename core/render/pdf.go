package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/ibneal/PersonalWebsite/core"
)

// PDFRenderer renders project documentation as a printable PDF. It follows
// the same block rules as the HTML pipeline: headings up to level 3, bullet
// and ordered items, rules and fenced code.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

var (
	pdfHeadingRe = regexp.MustCompile(`^(#{1,3}) (.*)$`)
	pdfBulletRe  = regexp.MustCompile(`^\s*[-*] (.*)$`)
	pdfOrderedRe = regexp.MustCompile(`^\s*(\d+)\. (.*)$`)
	pdfFenceRe   = regexp.MustCompile("^\\s*```\\s*([\\w+#.-]*)")

	inlineBoldRe   = regexp.MustCompile(`\*\*([^*\n]+)\*\*|__([^_\n]+)__`)
	inlineItalicRe = regexp.MustCompile(`(^|[^*\w])[*_]([^*_\s](?:[^*_\n]*[^*_\s])?)[*_]([^*\w]|$)`)
	inlineCodeSpan = regexp.MustCompile("`([^`\n]+)`")
	inlineLinkRe   = regexp.MustCompile(`\[([^\]\n]*)\]\(([^()\s]+)\)`)
)

var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13}

// Render converts markdown into PDF bytes.
func (r *PDFRenderer) Render(md string, meta core.PageMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, tr(meta.Title), "", "L", false)
		pdf.Ln(4)
	}
	if meta.URL != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, tr("Source: "+meta.URL), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	inCode := false
	for _, line := range strings.Split(strings.ReplaceAll(md, "\r\n", "\n"), "\n") {
		if m := pdfFenceRe.FindStringSubmatch(line); m != nil {
			inCode = !inCode
			pdf.Ln(2)
			if inCode && m[1] != "" {
				pdf.SetFont("Helvetica", "I", 8)
				pdf.SetTextColor(100, 100, 100)
				pdf.MultiCell(0, 4, m[1], "", "L", false)
				pdf.SetTextColor(0, 0, 0)
			}
			continue
		}

		if inCode {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, tr(line), "", "L", true)
			continue
		}

		switch {
		case strings.TrimSpace(line) == "":
			pdf.Ln(3)
		case line == "---":
			pdf.Ln(2)
			y := pdf.GetY()
			left, _, right, _ := pdf.GetMargins()
			pageW, _ := pdf.GetPageSize()
			pdf.Line(left, y, pageW-right, y)
			pdf.Ln(3)
		case pdfHeadingRe.MatchString(line):
			m := pdfHeadingRe.FindStringSubmatch(line)
			renderHeading(pdf, tr(cleanInlineMarkdown(m[2])), len(m[1]))
		case pdfBulletRe.MatchString(line):
			m := pdfBulletRe.FindStringSubmatch(line)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr("• "+cleanInlineMarkdown(m[1])), "", "L", false)
		case pdfOrderedRe.MatchString(line):
			m := pdfOrderedRe.FindStringSubmatch(line)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(m[1]+". "+cleanInlineMarkdown(m[2])), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(line)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	size := headingSizes[level]
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}

// cleanInlineMarkdown strips inline markdown so that only the text remains.
// Links keep their label.
func cleanInlineMarkdown(text string) string {
	text = inlineCodeSpan.ReplaceAllString(text, "$1")
	text = inlineLinkRe.ReplaceAllString(text, "$1")
	text = inlineBoldRe.ReplaceAllString(text, "$1$2")
	text = inlineItalicRe.ReplaceAllString(text, "$1$2$3")
	return strings.TrimSpace(text)
}
