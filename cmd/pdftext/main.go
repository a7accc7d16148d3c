package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joseph-ayodele/pdftext/internal/app"
	"github.com/joseph-ayodele/pdftext/internal/common"
)

func main() {
	cfg := common.LoadConfig()

	// stdout carries the extracted text; logs, when enabled, go to stderr.
	logger := common.NewLogger(os.Stderr, cfg.Log)
	slog.SetDefault(logger)

	os.Exit(app.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, cfg, logger))
}
