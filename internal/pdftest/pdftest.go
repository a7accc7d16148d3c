// Package pdftest writes small, valid PDF files with known text for tests.
// Text is set in Helvetica with WinAnsiEncoding and uniform glyph widths
// (500/1000 em, 250 for the space), so a 12pt line advances 6pt per letter.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// Text is one string shown at (X, Y) with font size Size.
type Text struct {
	X, Y float64
	Size float64
	S    string
}

// Page lists the strings shown on one page. A page with no Texts carries
// only a graphics state push/pop, like an image-only page.
type Page struct {
	Texts []Text
}

const (
	leftMargin = 72
	topLine    = 720
	lineGap    = 14
	fontSize   = 12
)

// TextPage returns a page with lines set at the left margin, one per 14pt.
func TextPage(lines ...string) Page {
	var p Page
	for i, l := range lines {
		p.Texts = append(p.Texts, Text{X: leftMargin, Y: topLine - float64(i*lineGap), Size: fontSize, S: l})
	}
	return p
}

// BlankPage returns a page without text.
func BlankPage() Page {
	return Page{}
}

// Build serializes pages into a complete PDF with a classic xref table.
func Build(pages ...Page) []byte {
	var objs []string

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs = append(objs,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		fontDict(),
	)
	for i, p := range pages {
		content := contentStream(p)
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(content), content),
		)
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objs)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return b.Bytes()
}

// WriteFile builds pages into name under tb.TempDir and returns the path.
func WriteFile(tb testing.TB, name string, pages ...Page) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, Build(pages...), 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

func fontDict() string {
	widths := make([]string, 0, 95)
	for c := 32; c <= 126; c++ {
		if c == ' ' {
			widths = append(widths, "250")
			continue
		}
		widths = append(widths, "500")
	}
	return "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding" +
		" /FirstChar 32 /LastChar 126 /Widths [" + strings.Join(widths, " ") + "] >>"
}

func contentStream(p Page) string {
	if len(p.Texts) == 0 {
		return "q Q\n"
	}
	var b strings.Builder
	for _, t := range p.Texts {
		fmt.Fprintf(&b, "BT /F1 %s Tf %s %s Td (%s) Tj ET\n", num(t.Size), num(t.X), num(t.Y), escape(t.S))
	}
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var escaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

func escape(s string) string {
	return escaper.Replace(s)
}
