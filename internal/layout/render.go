// Package layout turns positioned glyphs into text that keeps the visual
// arrangement of a page: lines top to bottom, horizontal position mapped to
// a fixed character grid, vertical gaps kept as blank lines.
package layout

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Glyph is one shown string with its position in PDF user space
// (y grows upward). W is the advance width and may be 0 when the font
// carries no metrics.
type Glyph struct {
	X, Y     float64
	W        float64
	FontSize float64
	S        string
}

// Options tunes Render. Zero fields take the defaults.
type Options struct {
	// LineTolerance is the baseline distance, as a fraction of font size,
	// under which two glyphs share a line.
	LineTolerance float64
	// WordGap is the horizontal gap, as a fraction of font size, above
	// which two glyphs on a line are separate runs.
	WordGap float64
	// LineSpacing is the expected baseline distance as a multiple of the
	// font size; larger gaps become blank lines.
	LineSpacing float64
	// MaxBlankLines caps the blank lines inserted for one vertical gap.
	MaxBlankLines int
	// MaxColumns caps the column a run can start at.
	MaxColumns int
	// Page is the visible page area. Glyphs whose origin lies outside it
	// are not rendered. The zero Box keeps every glyph.
	Page Box
}

// Box is a rectangle in PDF user space, lower-left to upper-right.
type Box struct {
	LLX, LLY, URX, URY float64
}

func (b Box) empty() bool {
	return !(b.URX > b.LLX && b.URY > b.LLY)
}

func (b Box) contains(x, y float64) bool {
	return x >= b.LLX && x <= b.URX && y >= b.LLY && y <= b.URY
}

const (
	defaultLineTolerance = 0.3
	defaultWordGap       = 0.15
	defaultLineSpacing   = 1.2
	defaultFontSize      = 12.0
	defaultMaxColumns    = 400
)

func (o Options) withDefaults() Options {
	if o.LineTolerance <= 0 {
		o.LineTolerance = defaultLineTolerance
	}
	if o.WordGap <= 0 {
		o.WordGap = defaultWordGap
	}
	if o.LineSpacing <= 0 {
		o.LineSpacing = defaultLineSpacing
	}
	if o.MaxBlankLines <= 0 {
		o.MaxBlankLines = DefaultMaxBlankLines
	}
	if o.MaxColumns <= 0 {
		o.MaxColumns = defaultMaxColumns
	}
	return o
}

type line struct {
	y      float64
	glyphs []Glyph
}

type run struct {
	x    float64
	end  float64
	text strings.Builder
}

// Render lays out glyphs as text. The result is normalized; a page with no
// visible glyphs renders as "".
func Render(glyphs []Glyph, opts Options) string {
	opts = opts.withDefaults()

	gs := make([]Glyph, 0, len(glyphs))
	minX := math.Inf(1)
	for _, g := range glyphs {
		if g.S == "" || !finite(g.X) || !finite(g.Y) {
			continue
		}
		if !opts.Page.empty() && !opts.Page.contains(g.X, g.Y) {
			continue
		}
		g.FontSize = math.Abs(g.FontSize)
		g.W = math.Abs(g.W)
		if !finite(g.W) {
			g.W = 0
		}
		if !finite(g.FontSize) {
			g.FontSize = 0
		}
		gs = append(gs, g)
		minX = math.Min(minX, g.X)
	}
	if len(gs) == 0 {
		return ""
	}

	size := medianFontSize(gs)
	cell := cellWidth(gs, size)
	lines := groupLines(gs, opts.LineTolerance, size)

	var b strings.Builder
	for i, ln := range lines {
		if i > 0 {
			b.WriteByte('\n')
			gap := lines[i-1].y - ln.y
			for n := blankLines(gap, size*opts.LineSpacing, opts.MaxBlankLines); n > 0; n-- {
				b.WriteByte('\n')
			}
		}
		writeLine(&b, splitRuns(ln.glyphs, opts.WordGap, size), minX, cell, opts.MaxColumns)
	}
	return normalize(b.String(), opts.MaxBlankLines)
}

// groupLines clusters glyphs by baseline, top of the page first. Within a
// line glyphs are ordered by x; ties keep content stream order.
func groupLines(gs []Glyph, tolerance, size float64) []line {
	sorted := make([]Glyph, len(gs))
	copy(sorted, gs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var lines []line
	for _, g := range sorted {
		fs := g.FontSize
		if fs == 0 {
			fs = size
		}
		if n := len(lines); n > 0 && math.Abs(lines[n-1].y-g.Y) <= tolerance*fs {
			lines[n-1].glyphs = append(lines[n-1].glyphs, g)
			continue
		}
		lines = append(lines, line{y: g.Y, glyphs: []Glyph{g}})
	}
	for i := range lines {
		ln := lines[i].glyphs
		sort.SliceStable(ln, func(a, b int) bool { return ln[a].X < ln[b].X })
	}
	return lines
}

// splitRuns joins touching glyphs of one line into runs. A horizontal gap
// wider than wordGap font sizes starts a new run.
func splitRuns(gs []Glyph, wordGap, size float64) []*run {
	var runs []*run
	var cur *run
	for _, g := range gs {
		fs := g.FontSize
		if fs == 0 {
			fs = size
		}
		if cur == nil || g.X-cur.end > wordGap*fs {
			cur = &run{x: g.X, end: g.X}
			runs = append(runs, cur)
		}
		cur.text.WriteString(g.S)
		cur.end = math.Max(cur.end, g.X+g.W)
	}
	return runs
}

// writeLine places each run at the grid column of its x, at most maxCols.
// Runs never move left of text already written and separate runs keep at
// least one space.
func writeLine(b *strings.Builder, runs []*run, minX, cell float64, maxCols int) {
	cursor := 0
	for i, r := range runs {
		col := maxCols
		if c := math.Round((r.x - minX) / cell); c < float64(maxCols) {
			col = int(c)
		}
		if i > 0 && col <= cursor {
			col = cursor + 1
		}
		if col > cursor {
			b.WriteString(strings.Repeat(" ", col-cursor))
			cursor = col
		}
		s := r.text.String()
		b.WriteString(s)
		cursor += utf8.RuneCountInString(s)
	}
}

func blankLines(gap, lineHeight float64, limit int) int {
	if lineHeight <= 0 || gap <= 0 {
		return 0
	}
	n := int(math.Round(gap/lineHeight)) - 1
	if n < 0 {
		return 0
	}
	if n > limit {
		return limit
	}
	return n
}

// cellWidth estimates the width of one character column: the median
// per-character advance of visible glyphs, or half the font size when the
// fonts carry no metrics.
func cellWidth(gs []Glyph, size float64) float64 {
	var widths []float64
	for _, g := range gs {
		if g.W <= 0 || strings.TrimFunc(g.S, unicode.IsSpace) == "" {
			continue
		}
		widths = append(widths, g.W/float64(utf8.RuneCountInString(g.S)))
	}
	if w := median(widths); w > 0 {
		return w
	}
	return size * 0.5
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func medianFontSize(gs []Glyph) float64 {
	var sizes []float64
	for _, g := range gs {
		if g.FontSize > 0 {
			sizes = append(sizes, g.FontSize)
		}
	}
	if s := median(sizes); s > 0 {
		return s
	}
	return defaultFontSize
}

func median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sort.Float64s(vs)
	mid := len(vs) / 2
	if len(vs)%2 == 1 {
		return vs[mid]
	}
	return (vs[mid-1] + vs[mid]) / 2
}
