package common

import (
	"io"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// SafeWriter replaces ill-formed UTF-8 with U+FFFD on its way to the
// underlying writer. Close flushes buffered bytes; it does not close the
// underlying writer.
type SafeWriter struct {
	w *transform.Writer
}

// NewSafeWriter wraps w.
func NewSafeWriter(w io.Writer) *SafeWriter {
	return &SafeWriter{w: transform.NewWriter(w, runes.ReplaceIllFormed())}
}

func (s *SafeWriter) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s *SafeWriter) Close() error {
	return s.w.Close()
}
