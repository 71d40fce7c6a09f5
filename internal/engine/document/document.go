package document

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/dshills/textcore/internal/engine/coord"
	"github.com/dshills/textcore/internal/engine/segment"
	"github.com/dshills/textcore/internal/engine/shaper"
)

// errNoShaper is reported when a document is built without a shaper.
var errNoShaper = errors.New("document: no shaper")

// Glyph is a positioned glyph. Start and End delimit the characters it
// covers; one glyph may cover several characters.
type Glyph struct {
	GlyphID uint32
	FontID  shaper.FontID
	X       float64
	Advance float64
	Start   coord.Offset
	End     coord.Offset
}

// Line is one visual line. Y is the top edge relative to the document
// origin. [Start, End) includes a terminating hard line break; ContentEnd
// excludes it.
type Line struct {
	Index      int
	Y          float64
	Height     float64
	Width      float64
	Glyphs     []Glyph
	Start      coord.Offset
	End        coord.Offset
	ContentEnd coord.Offset
}

// HardBreak reports whether the line ends with a hard line break.
func (l Line) HardBreak() bool {
	return l.ContentEnd < l.End
}

// Len returns the number of characters on the line, excluding a hard break.
func (l Line) Len() int {
	return int(l.ContentEnd - l.Start)
}

// Document is an immutable laid out text.
type Document struct {
	text     string
	length   coord.Offset
	params   Params
	lines    []Line
	width    float64
	height   float64
	fallback bool
}

// New shapes text with sh and builds a document. A shaping failure yields
// the fallback layout.
func New(sh shaper.Shaper, text string, p Params) *Document {
	doc, _ := build(sh, text, p)
	return doc
}

// build returns the document and the shaping error, if any. The document is
// never nil.
func build(sh shaper.Shaper, text string, p Params) (*Document, error) {
	if sh == nil {
		return fallback(text, p), errNoShaper
	}
	layout, err := sh.Shape(p.shape(text))
	if err != nil {
		return fallback(text, p), err
	}
	if len(layout.Lines) == 0 {
		return fallback(text, p), errors.New("document: shaper returned no lines")
	}

	table := byteTable(text)
	remap := func(b int) coord.Offset {
		if b < 0 {
			b = 0
		}
		if b >= len(table) {
			b = len(table) - 1
		}
		return table[b]
	}

	d := &Document{
		text:   text,
		length: table[len(table)-1],
		params: p,
		lines:  make([]Line, 0, len(layout.Lines)+1),
	}
	top := layout.Lines[0].Y
	for i, sl := range layout.Lines {
		line := Line{
			Index:  i,
			Y:      sl.Y - top,
			Height: sl.Height,
			Width:  sl.Width,
			Start:  remap(sl.ByteStart),
		}
		if len(sl.Glyphs) > 0 {
			line.Glyphs = make([]Glyph, len(sl.Glyphs))
			for j, g := range sl.Glyphs {
				line.Glyphs[j] = Glyph{
					GlyphID: g.GlyphID,
					FontID:  g.FontID,
					X:       g.X,
					Advance: g.Advance,
					Start:   remap(g.ByteStart),
					End:     remap(g.ByteEnd),
				}
			}
		}
		line.ContentEnd = remap(sl.ByteEnd - breakLen(text, sl.ByteStart, sl.ByteEnd))
		d.lines = append(d.lines, line)
	}

	// Lines are contiguous: each ends where the next starts.
	for i := range d.lines {
		end := d.length
		if i+1 < len(d.lines) {
			end = d.lines[i+1].Start
		}
		if end < d.lines[i].Start {
			end = d.lines[i].Start
		}
		d.lines[i].End = end
		d.lines[i].ContentEnd = min(max(d.lines[i].ContentEnd, d.lines[i].Start), end)
	}

	// A text ending in a hard break always has an empty last line.
	if last := d.lines[len(d.lines)-1]; last.HardBreak() {
		d.lines = append(d.lines, Line{
			Index:      len(d.lines),
			Y:          last.Y + last.Height,
			Height:     p.lineHeight(),
			Start:      d.length,
			End:        d.length,
			ContentEnd: d.length,
		})
	}

	for _, l := range d.lines {
		d.width = max(d.width, l.Width)
	}
	last := d.lines[len(d.lines)-1]
	d.height = last.Y + last.Height
	return d, nil
}

// fallback builds the single-line layout used when shaping fails.
func fallback(text string, p Params) *Document {
	n := segment.Len(text)
	h := p.lineHeight()
	w := float64(n) * p.estimate()
	return &Document{
		text:   text,
		length: n,
		params: p,
		lines: []Line{{
			Height:     h,
			Width:      w,
			End:        n,
			ContentEnd: n,
		}},
		width:    w,
		height:   h,
		fallback: true,
	}
}

// byteTable maps every byte index of text, plus len(text), to the UTF-16
// offset of the rune containing it.
func byteTable(text string) []coord.Offset {
	table := make([]coord.Offset, len(text)+1)
	var off coord.Offset
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		for j := 0; j < size; j++ {
			table[i+j] = off
		}
		off += coord.Offset(segment.RuneUnits(r))
		i += size
	}
	table[len(text)] = off
	return table
}

// breakLen returns the byte length of the hard break ending text[start:end].
func breakLen(text string, start, end int) int {
	if start < 0 || end > len(text) || start >= end {
		return 0
	}
	s := text[start:end]
	if strings.HasSuffix(s, "\r\n") {
		return 2
	}
	r, size := utf8.DecodeLastRuneInString(s)
	switch r {
	case '\n', '\r', '\v', '\f', '\u0085', '\u2028', '\u2029':
		return size
	}
	return 0
}

// Text returns the document text.
func (d *Document) Text() string { return d.text }

// Len returns the text length in UTF-16 code units.
func (d *Document) Len() coord.Offset { return d.length }

// Params returns the layout parameters the document was built with.
func (d *Document) Params() Params { return d.params }

// FontSize returns the font size.
func (d *Document) FontSize() float64 { return d.params.FontSize }

// LineHeight returns the line height.
func (d *Document) LineHeight() float64 { return d.params.LineHeight }

// FontFamily returns the font family.
func (d *Document) FontFamily() string { return d.params.FontFamily }

// MaxWidth returns the wrap width and whether wrapping is enabled.
func (d *Document) MaxWidth() (float64, bool) {
	return d.params.MaxWidth, d.params.Wrapped()
}

// Style returns the font style, or nil for the default style.
func (d *Document) Style() *shaper.Style { return d.params.Style }

// Lines returns the laid out lines. The slice must not be modified.
func (d *Document) Lines() []Line { return d.lines }

// LineCount returns the number of lines. It is at least one.
func (d *Document) LineCount() int { return len(d.lines) }

// Line returns line i, clamped to the valid range.
func (d *Document) Line(i int) Line {
	return d.lines[min(max(i, 0), len(d.lines)-1)]
}

// Width returns the width of the widest line.
func (d *Document) Width() float64 { return d.width }

// Height returns the total height of all lines.
func (d *Document) Height() float64 { return d.height }

// Fallback reports whether the document uses the estimated layout because
// shaping failed.
func (d *Document) Fallback() bool { return d.fallback }

// Slice returns the text in r, clamped to the document.
func (d *Document) Slice(r coord.Range) string {
	return segment.Slice(d.text, r.Start.Clamp(d.length), r.End.Clamp(d.length))
}
