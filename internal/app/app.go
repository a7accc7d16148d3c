// Package app is the command line boundary of pdftext: it validates
// arguments, runs one extraction and turns its outcome into output and an
// exit status.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/pdftext/constants"
	"github.com/joseph-ayodele/pdftext/internal/common"
	"github.com/joseph-ayodele/pdftext/internal/extract"
	"github.com/joseph-ayodele/pdftext/internal/layout"
	"github.com/joseph-ayodele/pdftext/internal/native"
	"github.com/joseph-ayodele/pdftext/internal/poppler"
)

const (
	ExitOK      = 0
	ExitFailure = 1
)

// Usage is printed when the argument count is wrong.
const Usage = "Usage: pdftext <pdf_file_path>"

// Run extracts the PDF named by the single element of args. On success the
// text goes to stdout and Run returns ExitOK; otherwise one line goes to
// stderr, nothing to stdout, and Run returns ExitFailure. Both streams
// replace ill-formed UTF-8 instead of failing.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, cfg *common.Config, logger *slog.Logger) int {
	errw := common.NewSafeWriter(stderr)
	defer func() { _ = errw.Close() }()

	if logger == nil {
		logger = slog.Default()
	}

	if len(args) != 1 {
		return fail(errw, common.UsageError(Usage))
	}
	if cfg == nil {
		cfg = common.LoadConfig()
	}
	if err := cfg.Validate(); err != nil {
		return fail(errw, err)
	}

	runID := uuid.NewString()
	ctx = common.WithRunID(ctx, runID)
	ctx, cancel := common.WithOptionalTimeout(ctx, cfg.Extract.Timeout)
	defer cancel()

	ex := extract.NewExtractor(newParser(cfg, logger), cfg.Extract.Backend, cfg.Extract.Mode, logger)
	res, err := ex.Extract(ctx, args[0])
	if err != nil {
		logger.Debug("extraction failed", "run_id", runID, "error", err)
		return fail(errw, err)
	}

	if err := writeText(stdout, res.Text); err != nil {
		return fail(errw, common.WrapError(err, "write output"))
	}
	return ExitOK
}

// newParser is replaced in tests.
var newParser = NewParser

// writeText writes s through a SafeWriter. The flush on Close can be the
// write that fails, so its error counts too.
func writeText(w io.Writer, s string) error {
	out := common.NewSafeWriter(w)
	if _, err := io.WriteString(out, s); err != nil {
		return err
	}
	return out.Close()
}

// NewParser returns the parsing collaborator selected by cfg.
func NewParser(cfg *common.Config, logger *slog.Logger) extract.Parser {
	if cfg.Extract.Backend == constants.BackendPoppler {
		return poppler.NewParser(poppler.Config{
			Pdftotext: cfg.Poppler.Pdftotext,
			Pdfinfo:   cfg.Poppler.Pdfinfo,
		}, logger)
	}
	return native.NewParser(layout.Options{}, logger)
}

// Message renders err as the single stderr line for a failed run.
func Message(err error) string {
	appErr, ok := common.AsAppError(err)
	if !ok {
		return "Error: " + oneLine(err.Error())
	}
	switch {
	case errors.Is(err, common.ErrUsage):
		return appErr.Message
	case errors.Is(err, common.ErrFileNotFound):
		return "Error: File not found - " + oneLine(appErr.Message)
	default:
		return "Error: " + oneLine(appErr.Message)
	}
}

func fail(w io.Writer, err error) int {
	fmt.Fprintln(w, Message(err))
	return ExitFailure
}

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func oneLine(s string) string {
	return newlines.Replace(strings.TrimSpace(s))
}
