package extract

import (
	"context"
	"io"
	"time"

	"github.com/joseph-ayodele/pdftext/constants"
)

// Source is an opened PDF file handed to a Parser. The extractor owns the
// handle and closes it; parsers must not.
type Source struct {
	Path string
	File io.ReaderAt
	Size int64
}

// Parser is the PDF parsing collaborator: bytes -> Document.
type Parser interface {
	Parse(ctx context.Context, src Source) (Document, error)
}

// Document is a parsed, read-only PDF.
type Document interface {
	NumPages() int
	// Page returns page num, 1-based, in physical order.
	Page(num int) Page
}

// Page extracts its own text. An empty string means the page has no text.
type Page interface {
	ExtractText(ctx context.Context, mode constants.Mode) (string, error)
}

type Result struct {
	Text          string
	Pages         int
	PagesWithText int
	Backend       constants.Backend
	Mode          constants.Mode
	Duration      time.Duration
}
