// Package poppler parses PDFs with the poppler command line tools:
// pdfinfo for the page count and pdftotext, one page at a time, for text.
package poppler

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/pdftext/constants"
	"github.com/joseph-ayodele/pdftext/internal/extract"
	"github.com/joseph-ayodele/pdftext/internal/layout"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdfinfo   string // binary name or absolute path; if empty -> "pdfinfo"
}

type Parser struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewParser(cfg Config, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdfinfo == "" {
		cfg.Pdfinfo = "pdfinfo"
	}
	return &Parser{cfg: cfg, runner: ExecRunner{Logger: logger}, logger: logger}
}

// ToolError is a failed poppler invocation. Its message is the tool's own
// diagnostic when it printed one.
type ToolError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

func toolError(tool string, stderr []byte, err error) error {
	return &ToolError{Tool: tool, Stderr: truncate(firstLine(stderr), maxStderrBytes), Err: err}
}

// Parse asks pdfinfo for the page count. The file itself is read again by
// pdftotext for every page, by path.
func (p *Parser) Parse(ctx context.Context, src extract.Source) (extract.Document, error) {
	// pdfinfo <path>
	out, errb, err := p.runner.Run(ctx, p.cfg.Pdfinfo, src.Path)
	if err != nil {
		return nil, toolError(p.cfg.Pdfinfo, errb, err)
	}
	pages, err := parsePageCount(out)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("pdfinfo ok", "path", src.Path, "pages", pages)
	return &document{p: p, path: src.Path, pages: pages}, nil
}

type document struct {
	p     *Parser
	path  string
	pages int
}

func (d *document) NumPages() int {
	return d.pages
}

func (d *document) Page(num int) extract.Page {
	return &page{d: d, num: num}
}

type page struct {
	d   *document
	num int
}

func (pg *page) ExtractText(ctx context.Context, mode constants.Mode) (string, error) {
	// pdftotext [-layout] -enc UTF-8 -eol unix -f N -l N <path> -
	n := strconv.Itoa(pg.num)
	args := []string{"-enc", "UTF-8", "-eol", "unix", "-f", n, "-l", n, pg.d.path, "-"}
	if mode != constants.ModePlain {
		args = append([]string{"-layout"}, args...)
	}
	p := pg.d.p
	out, errb, err := p.runner.Run(ctx, p.cfg.Pdftotext, args...)
	if err != nil {
		return "", toolError(p.cfg.Pdftotext, errb, err)
	}
	// A form-feed \f closes every page; Normalize drops it.
	return layout.Normalize(string(out)), nil
}

func parsePageCount(info []byte) (int, error) {
	sc := bufio.NewScanner(bytes.NewReader(info))
	for sc.Scan() {
		rest, ok := strings.CutPrefix(sc.Text(), "Pages:")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return 0, fmt.Errorf("pdfinfo: bad page count %q", strings.TrimSpace(rest))
		}
		return n, nil
	}
	return 0, fmt.Errorf("pdfinfo: page count not reported")
}

func firstLine(b []byte) string {
	for _, l := range strings.Split(string(b), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	return ""
}
