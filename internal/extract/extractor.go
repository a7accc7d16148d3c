package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joseph-ayodele/pdftext/constants"
	"github.com/joseph-ayodele/pdftext/internal/common"
)

// PageMarker formats the line that precedes the text of page num.
func PageMarker(num int) string {
	return fmt.Sprintf("--- Page %d ---\n", num)
}

type Extractor struct {
	parser  Parser
	backend constants.Backend
	mode    constants.Mode
	logger  *slog.Logger
}

func NewExtractor(parser Parser, backend constants.Backend, mode constants.Mode, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if mode == "" {
		mode = constants.ModeLayout
	}
	return &Extractor{parser: parser, backend: backend, mode: mode, logger: logger}
}

// Extract opens path, parses it and returns the text of every page that has
// any, each block preceded by its page marker and followed by a blank line.
// Errors are *common.AppError values wrapping one of the common.Err* kinds.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	log := e.logger.With("run_id", common.RunIDFromContext(ctx), "path", path, "backend", e.backend, "mode", e.mode)
	log.Debug("starting extraction")

	f, err := os.Open(path)
	if err != nil {
		log.Debug("open failed", "error", err)
		return Result{}, common.FileNotFoundError(path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Warn("close pdf", "error", cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return Result{}, common.ParseError(err.Error(), err)
	}

	var doc Document
	err = guard(func() error {
		var perr error
		doc, perr = e.parser.Parse(ctx, Source{Path: path, File: f, Size: info.Size()})
		return perr
	})
	if err != nil {
		log.Error("parse failed", "error", err)
		return Result{}, common.ParseError(err.Error(), err)
	}

	var pages int
	if err := guard(func() error { pages = doc.NumPages(); return nil }); err != nil {
		log.Error("page count failed", "error", err)
		return Result{}, common.ParseError(err.Error(), err)
	}
	if pages == 0 {
		return Result{}, common.EmptyDocumentError()
	}
	log.Debug("document parsed", "pages", pages)

	var b strings.Builder
	withText := 0
	for num := 1; num <= pages; num++ {
		if err := ctx.Err(); err != nil {
			return Result{}, common.ParseError(err.Error(), err)
		}
		var text string
		err := guard(func() error {
			var terr error
			text, terr = doc.Page(num).ExtractText(ctx, e.mode)
			return terr
		})
		if err != nil {
			log.Error("page extraction failed", "page", num, "error", err)
			return Result{}, common.ParseError(err.Error(), err)
		}
		if strings.TrimSpace(text) == "" {
			log.Debug("page has no text", "page", num)
			continue
		}
		b.WriteString(PageMarker(num))
		b.WriteString(text)
		b.WriteString("\n\n")
		withText++
	}

	out := b.String()
	if strings.TrimSpace(out) == "" {
		return Result{}, common.NoExtractableTextError()
	}

	res := Result{
		Text:          out,
		Pages:         pages,
		PagesWithText: withText,
		Backend:       e.backend,
		Mode:          e.mode,
		Duration:      time.Since(start),
	}
	log.Info("extraction ok", "pages", res.Pages, "pages_with_text", res.PagesWithText, "bytes", len(res.Text), "duration_ms", res.Duration.Milliseconds())
	return res, nil
}

// guard runs fn and turns a panic raised inside the parsing collaborator
// into an error carrying the panic value's text.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = rerr
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn()
}
