package poppler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/joseph-ayodele/pdftext/constants"
	"github.com/joseph-ayodele/pdftext/internal/extract"
)

type call struct {
	name string
	args []string
}

type stubRunner struct {
	calls   []call
	respond func(name string, args []string) ([]byte, []byte, error)
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls = append(s.calls, call{name: name, args: args})
	return s.respond(name, args)
}

func newTestParser(r Runner) *Parser {
	p := NewParser(Config{}, nil)
	p.runner = r
	return p
}

const pdfinfoOut = `Title:          report
Producer:       test
Pages:          3
Encrypted:      no
`

func TestParseAndExtractLayout(t *testing.T) {
	r := &stubRunner{respond: func(name string, args []string) ([]byte, []byte, error) {
		switch name {
		case "pdfinfo":
			return []byte(pdfinfoOut), nil, nil
		case "pdftotext":
			return []byte("   Hello Page 2   \n\n\f"), nil, nil
		}
		return nil, nil, errors.New("unexpected command " + name)
	}}
	p := newTestParser(r)

	doc, err := p.Parse(context.Background(), extract.Source{Path: "/tmp/in.pdf"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := doc.NumPages(); got != 3 {
		t.Fatalf("NumPages() = %d, want 3", got)
	}

	text, err := doc.Page(2).ExtractText(context.Background(), constants.ModeLayout)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if text != "   Hello Page 2" {
		t.Fatalf("ExtractText() = %q", text)
	}

	if len(r.calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(r.calls))
	}
	if got := r.calls[0]; got.name != "pdfinfo" || strings.Join(got.args, " ") != "/tmp/in.pdf" {
		t.Fatalf("pdfinfo call = %+v", got)
	}
	want := "-layout -enc UTF-8 -eol unix -f 2 -l 2 /tmp/in.pdf -"
	if got := strings.Join(r.calls[1].args, " "); got != want {
		t.Fatalf("pdftotext args = %q, want %q", got, want)
	}
}

func TestExtractPlainOmitsLayoutFlag(t *testing.T) {
	r := &stubRunner{respond: func(name string, args []string) ([]byte, []byte, error) {
		return []byte("text\f"), nil, nil
	}}
	doc := &document{p: newTestParser(r), path: "a.pdf", pages: 1}

	if _, err := doc.Page(1).ExtractText(context.Background(), constants.ModePlain); err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	for _, a := range r.calls[0].args {
		if a == "-layout" {
			t.Fatalf("plain mode passed -layout: %v", r.calls[0].args)
		}
	}
}

func TestToolFailureCarriesStderr(t *testing.T) {
	exitErr := errors.New("exit status 1")
	r := &stubRunner{respond: func(name string, args []string) ([]byte, []byte, error) {
		return nil, []byte("\nSyntax Error: Couldn't find trailer dictionary\nmore\n"), exitErr
	}}
	_, err := newTestParser(r).Parse(context.Background(), extract.Source{Path: "bad.pdf"})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Syntax Error: Couldn't find trailer dictionary" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !errors.Is(err, exitErr) {
		t.Fatal("cause not wrapped")
	}
	var te *ToolError
	if !errors.As(err, &te) || te.Tool != "pdfinfo" {
		t.Fatalf("want *ToolError for pdfinfo, got %#v", err)
	}
}

func TestToolFailureWithoutStderr(t *testing.T) {
	r := &stubRunner{respond: func(name string, args []string) ([]byte, []byte, error) {
		return nil, nil, errors.New(`exec: "pdfinfo": executable file not found in $PATH`)
	}}
	_, err := newTestParser(r).Parse(context.Background(), extract.Source{Path: "x.pdf"})
	if err == nil || !strings.HasPrefix(err.Error(), "pdfinfo: exec:") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParsePageCount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{"present", pdfinfoOut, 3, false},
		{"zero", "Pages: 0\n", 0, false},
		{"missing", "Title: x\n", 0, true},
		{"garbage", "Pages: many\n", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePageCount([]byte(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abc", 5); got != "abc" {
		t.Fatalf("truncate short = %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc...(truncated)" {
		t.Fatalf("truncate long = %q", got)
	}
	if got := truncate("a\u00e9", 2); got != "a...(truncated)" {
		t.Fatalf("truncate split rune = %q", got)
	}
}

func TestToolErrorCapsStderr(t *testing.T) {
	line := strings.Repeat("x", maxStderrBytes+100)
	r := &stubRunner{respond: func(name string, args []string) ([]byte, []byte, error) {
		return nil, []byte(line + "\n"), errors.New("exit status 1")
	}}
	_, err := newTestParser(r).Parse(context.Background(), extract.Source{Path: "x.pdf"})
	var te *ToolError
	if !errors.As(err, &te) {
		t.Fatalf("want *ToolError, got %#v", err)
	}
	if want := line[:maxStderrBytes] + "...(truncated)"; te.Stderr != want {
		t.Fatalf("Stderr has %d bytes, want %d", len(te.Stderr), len(want))
	}
}
