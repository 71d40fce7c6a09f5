package shaper

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// clusterMetrics is what a measurer reports for one grapheme cluster.
type clusterMetrics struct {
	glyphID uint32
	fontID  FontID
	advance float64
	kern    float64 // applied before the cluster
}

// measurer measures one grapheme cluster placed at pen position x.
// prev is the last rune of the preceding cluster on the line, or -1.
type measurer interface {
	measure(cluster string, prev rune, x float64) clusterMetrics
}

// lineBuilder accumulates glyphs into lines, wrapping at uniseg line
// segment boundaries when a maximum width is set.
type lineBuilder struct {
	m          measurer
	wrap       bool
	maxWidth   float64
	lineHeight float64
	baseline   float64

	lines []Line
	cur   Line
	x     float64
	prev  rune
}

func newLineBuilder(p Params, m measurer, baseline float64) *lineBuilder {
	return &lineBuilder{
		m:          m,
		wrap:       p.Wrapped(),
		maxWidth:   p.MaxWidth,
		lineHeight: p.LineHeight,
		baseline:   baseline,
		prev:       -1,
	}
}

// layout shapes text into lines.
func (b *lineBuilder) layout(text string) Layout {
	pos := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var segment string
		segment, rest, _, state = uniseg.FirstLineSegmentInString(rest, state)
		b.addSegment(segment, pos)
		pos += len(segment)
		if endsWithHardBreak(segment) {
			b.breakLine(pos)
		}
	}
	b.breakLine(len(text))

	var out Layout
	out.Lines = b.lines
	for _, l := range b.lines {
		if l.Width > out.Width {
			out.Width = l.Width
		}
	}
	out.Height = float64(len(b.lines)) * b.lineHeight
	return out
}

// addSegment places one unbreakable segment, moving it to a new line first
// if its visible part would overflow.
func (b *lineBuilder) addSegment(segment string, base int) {
	if b.wrap && len(b.cur.Glyphs) > 0 {
		if b.x+b.visibleWidth(segment) > b.maxWidth {
			b.breakLine(base)
		}
	}

	state := -1
	rest := segment
	pos := base
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		start := pos
		pos += len(cluster)
		if isHardBreak(cluster) {
			continue
		}

		met := b.m.measure(cluster, b.prev, b.x)
		// A single segment wider than the line is broken between clusters.
		if b.wrap && len(b.cur.Glyphs) > 0 && !isSpace(cluster) &&
			b.x+met.kern+met.advance > b.maxWidth {
			b.breakLine(start)
			met = b.m.measure(cluster, -1, 0)
		}

		b.x += met.kern
		b.cur.Glyphs = append(b.cur.Glyphs, Glyph{
			GlyphID:   met.glyphID,
			FontID:    met.fontID,
			X:         b.x,
			Advance:   met.advance,
			ByteStart: start,
			ByteEnd:   pos,
		})
		b.x += met.advance
		if b.x > b.cur.Width {
			b.cur.Width = b.x
		}
		b.prev = lastRune(cluster)
	}
}

// visibleWidth measures segment from the current pen position, ignoring
// trailing whitespace, which is allowed to hang past the margin.
func (b *lineBuilder) visibleWidth(segment string) float64 {
	trimmed := strings.TrimRightFunc(segment, unicode.IsSpace)
	x := b.x
	prev := b.prev
	state := -1
	for len(trimmed) > 0 {
		var cluster string
		cluster, trimmed, _, state = uniseg.FirstGraphemeClusterInString(trimmed, state)
		met := b.m.measure(cluster, prev, x)
		x += met.kern + met.advance
		prev = lastRune(cluster)
	}
	return x - b.x
}

// breakLine ends the current line at byte offset end.
func (b *lineBuilder) breakLine(end int) {
	b.cur.ByteEnd = end
	b.cur.Height = b.lineHeight
	b.cur.Y = float64(len(b.lines))*b.lineHeight + b.baseline
	b.lines = append(b.lines, b.cur)
	b.cur = Line{ByteStart: end}
	b.x = 0
	b.prev = -1
}

func isHardBreak(cluster string) bool {
	switch cluster {
	case "\n", "\r", "\r\n", "\v", "\f", "\u0085", "\u2028", "\u2029":
		return true
	}
	return false
}

func endsWithHardBreak(segment string) bool {
	r, _ := utf8.DecodeLastRuneInString(segment)
	switch r {
	case '\n', '\r', '\v', '\f', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

func isSpace(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	return unicode.IsSpace(r)
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
