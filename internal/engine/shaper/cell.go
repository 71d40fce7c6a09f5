package shaper

import (
	"math"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Default cell geometry.
const (
	DefaultCellRatio = 0.6
	DefaultTabWidth  = 4
)

// CellShaper lays text out on a monospace grid. Each grapheme cluster
// advances by its terminal display width times the cell width, where the
// cell width is the font size times the cell ratio. Tabs advance to the
// next tab stop.
type CellShaper struct {
	cellRatio float64
	tabWidth  int
	fontID    FontID
}

// CellOption configures a CellShaper.
type CellOption func(*CellShaper)

// WithCellRatio sets the cell width as a fraction of the font size.
func WithCellRatio(ratio float64) CellOption {
	return func(s *CellShaper) {
		if ratio > 0 && !math.IsInf(ratio, 0) {
			s.cellRatio = ratio
		}
	}
}

// WithTabWidth sets the tab width in cells.
func WithTabWidth(width int) CellOption {
	return func(s *CellShaper) {
		if width > 0 {
			s.tabWidth = width
		}
	}
}

// WithCellFontID sets the font id reported on every glyph.
func WithCellFontID(id FontID) CellOption {
	return func(s *CellShaper) {
		s.fontID = id
	}
}

// NewCellShaper creates a cell shaper.
func NewCellShaper(opts ...CellOption) *CellShaper {
	s := &CellShaper{
		cellRatio: DefaultCellRatio,
		tabWidth:  DefaultTabWidth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CellWidth returns the width of one cell at the given font size.
func (s *CellShaper) CellWidth(fontSize float64) float64 {
	return fontSize * s.cellRatio
}

// TabWidth returns the tab width in cells.
func (s *CellShaper) TabWidth() int {
	return s.tabWidth
}

// Shape implements Shaper.
func (s *CellShaper) Shape(p Params) (Layout, error) {
	if err := p.validate(); err != nil {
		return Layout{}, err
	}
	m := cellMeasurer{
		cell:     s.CellWidth(p.FontSize),
		tabWidth: s.tabWidth,
		fontID:   s.fontID,
	}
	// Baseline sits at 80% of the font size below the line top.
	return newLineBuilder(p, m, p.FontSize*0.8).layout(p.Text), nil
}

type cellMeasurer struct {
	cell     float64
	tabWidth int
	fontID   FontID
}

func (m cellMeasurer) measure(cluster string, _ rune, x float64) clusterMetrics {
	r, _ := utf8.DecodeRuneInString(cluster)
	met := clusterMetrics{glyphID: uint32(r), fontID: m.fontID}
	if r == '\t' {
		col := int(math.Round(x / m.cell))
		next := col + m.tabWidth - col%m.tabWidth
		met.advance = float64(next)*m.cell - x
		return met
	}
	met.advance = float64(runewidth.StringWidth(cluster)) * m.cell
	return met
}
