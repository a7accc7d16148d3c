package native

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/joseph-ayodele/pdftext/constants"
	"github.com/joseph-ayodele/pdftext/internal/extract"
	"github.com/joseph-ayodele/pdftext/internal/layout"
	"github.com/joseph-ayodele/pdftext/internal/pdftest"
)

func parse(t *testing.T, data []byte) extract.Document {
	t.Helper()
	p := NewParser(layout.Options{}, nil)
	doc, err := p.Parse(context.Background(), extract.Source{
		Path: "test.pdf",
		File: bytes.NewReader(data),
		Size: int64(len(data)),
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestParsePagesInOrder(t *testing.T) {
	doc := parse(t, pdftest.Build(
		pdftest.TextPage("Hello Page 1"),
		pdftest.BlankPage(),
		pdftest.TextPage("Hello Page 3"),
	))
	if got := doc.NumPages(); got != 3 {
		t.Fatalf("NumPages() = %d, want 3", got)
	}

	want := []string{"Hello Page 1", "", "Hello Page 3"}
	for i, w := range want {
		got, err := doc.Page(i+1).ExtractText(context.Background(), constants.ModeLayout)
		if err != nil {
			t.Fatalf("page %d: %v", i+1, err)
		}
		if got != w {
			t.Errorf("page %d = %q, want %q", i+1, got, w)
		}
	}
}

func TestLayoutKeepsLinesAndIndent(t *testing.T) {
	page := pdftest.Page{Texts: []pdftest.Text{
		{X: 72, Y: 720, Size: 12, S: "Name"},
		{X: 252, Y: 720, Size: 12, S: "Total"},
		{X: 96, Y: 706, Size: 12, S: "widget"},
	}}
	doc := parse(t, pdftest.Build(page))

	got, err := doc.Page(1).ExtractText(context.Background(), constants.ModeLayout)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	want := "Name" + strings.Repeat(" ", 26) + "Total\n    widget"
	if got != want {
		t.Fatalf("ExtractText() =\n%q\nwant\n%q", got, want)
	}
}

func TestLayoutIgnoresTextOffPage(t *testing.T) {
	page := pdftest.Page{Texts: []pdftest.Text{
		{X: 72, Y: 720, Size: 12, S: "A"},
		{X: 3e9, Y: 720, Size: 12, S: "B"},
	}}
	doc := parse(t, pdftest.Build(page))

	got, err := doc.Page(1).ExtractText(context.Background(), constants.ModeLayout)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if got != "A" {
		t.Fatalf("ExtractText() = %q, want %q", got, "A")
	}
}

func TestPlainMode(t *testing.T) {
	doc := parse(t, pdftest.Build(pdftest.TextPage("Hello Page 1")))
	got, err := doc.Page(1).ExtractText(context.Background(), constants.ModePlain)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if !strings.Contains(got, "Hello Page 1") {
		t.Fatalf("plain text %q does not contain page text", got)
	}
}

func TestEmptyDocument(t *testing.T) {
	doc := parse(t, pdftest.Build())
	if got := doc.NumPages(); got != 0 {
		t.Fatalf("NumPages() = %d, want 0", got)
	}
}

func TestPageOutOfRangeHasNoText(t *testing.T) {
	doc := parse(t, pdftest.Build(pdftest.TextPage("only")))
	got, err := doc.Page(5).ExtractText(context.Background(), constants.ModeLayout)
	if err != nil || got != "" {
		t.Fatalf("ExtractText() = %q, %v; want empty", got, err)
	}
}

func TestParseRejectsNonPDF(t *testing.T) {
	data := []byte(strings.Repeat("this is not a pdf\n", 10))
	p := NewParser(layout.Options{}, nil)
	_, err := p.Parse(context.Background(), extract.Source{File: bytes.NewReader(data), Size: int64(len(data))})
	if err == nil {
		t.Fatal("expected error for non-PDF input")
	}
	if !strings.Contains(err.Error(), "not a PDF") {
		t.Fatalf("unexpected error: %v", err)
	}
}
