// Package native parses PDFs in-process with github.com/ledongthuc/pdf.
package native

import (
	"context"
	"log/slog"
	"math"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/pdftext/constants"
	"github.com/joseph-ayodele/pdftext/internal/extract"
	"github.com/joseph-ayodele/pdftext/internal/layout"
)

type Parser struct {
	opts   layout.Options
	logger *slog.Logger
}

func NewParser(opts layout.Options, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{opts: opts, logger: logger}
}

// Parse reads the cross-reference table and trailer of src. The reader keeps
// src.File for lazy object loads, so the file must stay open while the
// document is in use.
func (p *Parser) Parse(_ context.Context, src extract.Source) (extract.Document, error) {
	r, err := pdf.NewReader(src.File, src.Size)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("pdf reader ready", "path", src.Path, "size", src.Size, "pages", r.NumPage())
	return &document{r: r, opts: p.opts}, nil
}

type document struct {
	r    *pdf.Reader
	opts layout.Options
}

func (d *document) NumPages() int {
	return d.r.NumPage()
}

func (d *document) Page(num int) extract.Page {
	return &page{p: d.r.Page(num), opts: d.opts}
}

type page struct {
	p    pdf.Page
	opts layout.Options
}

func (pg *page) ExtractText(_ context.Context, mode constants.Mode) (string, error) {
	if pg.p.V.IsNull() {
		return "", nil
	}
	if mode == constants.ModePlain {
		s, err := pg.p.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		return layout.Normalize(s), nil
	}

	content := pg.p.Content()
	glyphs := make([]layout.Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, layout.Glyph{
			X:        t.X,
			Y:        t.Y,
			W:        t.W,
			FontSize: t.FontSize,
			S:        t.S,
		})
	}
	opts := pg.opts
	opts.Page = mediaBox(pg.p.V)
	return layout.Render(glyphs, opts), nil
}

// maxTreeDepth bounds the walk up the page tree for inherited attributes.
const maxTreeDepth = 32

// mediaBox returns the page's MediaBox, inherited from an ancestor when the
// page has none. A missing or malformed box yields the zero Box.
func mediaBox(v pdf.Value) layout.Box {
	for i := 0; i < maxTreeDepth && !v.IsNull(); i++ {
		if mb := v.Key("MediaBox"); mb.Kind() == pdf.Array && mb.Len() == 4 {
			x0, y0 := mb.Index(0).Float64(), mb.Index(1).Float64()
			x1, y1 := mb.Index(2).Float64(), mb.Index(3).Float64()
			return layout.Box{
				LLX: math.Min(x0, x1), LLY: math.Min(y0, y1),
				URX: math.Max(x0, x1), URY: math.Max(y0, y1),
			}
		}
		v = v.Key("Parent")
	}
	return layout.Box{}
}
