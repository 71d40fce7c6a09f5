package document

import (
	"math"
	"sort"

	"github.com/dshills/textcore/internal/engine/coord"
	"github.com/dshills/textcore/internal/engine/segment"
)

// HitResult is the outcome of a hit test.
type HitResult struct {
	Offset   coord.Offset
	Affinity coord.Affinity
	Line     int
}

// LineAtOffset returns the index of the line containing off. Offsets on a
// soft wrap boundary belong to the earlier line; an offset just past a hard
// break belongs to the line after it. Out of range offsets clamp.
func (d *Document) LineAtOffset(off coord.Offset) int {
	off = off.Clamp(d.length)
	i := sort.Search(len(d.lines), func(i int) bool {
		return off <= d.lines[i].End
	})
	if i >= len(d.lines) {
		return len(d.lines) - 1
	}
	if off == d.lines[i].End && d.lines[i].HardBreak() && i+1 < len(d.lines) {
		i++
	}
	return i
}

// LineAtOffsetAffinity is LineAtOffset, except that an offset on a soft
// wrap boundary with After affinity belongs to the following line.
func (d *Document) LineAtOffsetAffinity(off coord.Offset, aff coord.Affinity) int {
	i := d.LineAtOffset(off)
	off = off.Clamp(d.length)
	if aff == coord.After && i+1 < len(d.lines) && off == d.lines[i].End && d.lines[i+1].Start == off {
		i++
	}
	return i
}

// LineAtY returns the index of the line at vertical position y, clamped to
// the first and last lines.
func (d *Document) LineAtY(y float64) int {
	if math.IsNaN(y) || y < 0 {
		return 0
	}
	i := sort.Search(len(d.lines), func(i int) bool {
		l := d.lines[i]
		return y < l.Y+l.Height
	})
	if i >= len(d.lines) {
		return len(d.lines) - 1
	}
	return i
}

// OffsetToPosition converts an offset to a line and column. An offset
// inside a two-unit break such as "\r\n" is not a grapheme boundary and
// maps to the column before the break, so it does not round trip through
// PositionToOffset.
func (d *Document) OffsetToPosition(off coord.Offset) coord.Position {
	off = off.Clamp(d.length)
	l := d.lines[d.LineAtOffset(off)]
	col := min(int(off-l.Start), l.Len())
	return coord.Position{Line: l.Index, Column: max(col, 0)}
}

// PositionToOffset converts a line and column to an offset. The line
// clamps to the document and the column to the line's content.
func (d *Document) PositionToOffset(pos coord.Position) coord.Offset {
	l := d.Line(pos.Line)
	col := min(max(pos.Column, 0), l.Len())
	return l.Start + coord.Offset(col)
}

// LineStart returns the first offset of the line containing off.
func (d *Document) LineStart(off coord.Offset) coord.Offset {
	return d.lines[d.LineAtOffset(off)].Start
}

// LineEnd returns the content end of the line containing off.
func (d *Document) LineEnd(off coord.Offset) coord.Offset {
	return d.lines[d.LineAtOffset(off)].ContentEnd
}

// OffsetToPoint returns the point at the top of the line at off.
func (d *Document) OffsetToPoint(off coord.Offset) coord.Point {
	return d.OffsetToPointAffinity(off, coord.Before)
}

// OffsetToPointAffinity is OffsetToPoint with explicit affinity at soft
// wrap boundaries.
func (d *Document) OffsetToPointAffinity(off coord.Offset, aff coord.Affinity) coord.Point {
	off = off.Clamp(d.length)
	l := d.lines[d.LineAtOffsetAffinity(off, aff)]
	return coord.Point{X: d.xAt(l, off), Y: l.Y}
}

// XOnLine returns the x position of off measured on line i. Offsets
// outside the line clamp to its edges.
func (d *Document) XOnLine(i int, off coord.Offset) float64 {
	return d.xAt(d.Line(i), off)
}

// xAt interpolates within multi-character glyphs.
func (d *Document) xAt(l Line, off coord.Offset) float64 {
	if len(l.Glyphs) == 0 {
		if off <= l.Start {
			return 0
		}
		n := min(off, l.ContentEnd) - l.Start
		return min(float64(n)*d.params.estimate(), l.Width)
	}
	for _, g := range l.Glyphs {
		if off <= g.Start {
			return g.X
		}
		if off < g.End {
			frac := float64(off-g.Start) / float64(g.End-g.Start)
			return g.X + g.Advance*frac
		}
	}
	last := l.Glyphs[len(l.Glyphs)-1]
	return last.X + last.Advance
}

// PointToOffset returns the offset nearest to pt.
func (d *Document) PointToOffset(pt coord.Point) coord.Offset {
	return d.HitTest(pt).Offset
}

// HitTest resolves a point to an offset. Within a glyph the covered
// characters split its advance evenly; a point left of a character's
// midpoint lands before it with After affinity, otherwise after it with
// Before affinity.
func (d *Document) HitTest(pt coord.Point) HitResult {
	l := d.lines[d.LineAtY(pt.Y)]
	res := HitResult{Offset: l.Start, Affinity: coord.After, Line: l.Index}
	x := pt.X
	if math.IsNaN(x) {
		x = 0
	}

	if len(l.Glyphs) == 0 {
		if est := d.params.estimate(); est > 0 && x > 0 {
			n := coord.Offset(math.Round(x / est))
			res.Offset = d.snap(min(l.Start+n, l.ContentEnd))
		}
		if res.Offset > l.Start {
			res.Affinity = coord.Before
		}
		return res
	}

	if x < l.Glyphs[0].X {
		res.Offset = l.Glyphs[0].Start
		return res
	}
	for _, g := range l.Glyphs {
		if x >= g.X+g.Advance {
			continue
		}
		n := int(g.End - g.Start)
		if n <= 1 || g.Advance <= 0 {
			if n <= 0 || x < g.X+g.Advance/2 {
				res.Offset = g.Start
				return res
			}
			res.Offset, res.Affinity = g.End, coord.Before
			return res
		}
		w := g.Advance / float64(n)
		k := min(max(int((x-g.X)/w), 0), n-1)
		if x < g.X+w*(float64(k)+0.5) {
			res.Offset = d.snap(g.Start + coord.Offset(k))
			return res
		}
		res.Offset, res.Affinity = d.snap(g.Start+coord.Offset(k+1)), coord.Before
		return res
	}
	res.Offset, res.Affinity = l.ContentEnd, coord.Before
	return res
}

// snap moves an offset that splits a surrogate pair to the pair's start.
func (d *Document) snap(off coord.Offset) coord.Offset {
	if off <= 0 || off >= d.length {
		return off.Clamp(d.length)
	}
	return segment.Len(d.text[:segment.ByteIndex(d.text, off)])
}

// SelectionRects returns one rectangle per line covered by r. An empty
// range yields no rectangles.
func (d *Document) SelectionRects(r coord.Range) []coord.Rect {
	r = coord.NewRange(r.Start.Clamp(d.length), r.End.Clamp(d.length))
	if r.IsEmpty() {
		return nil
	}
	var rects []coord.Rect
	for i := d.LineAtOffset(r.Start); i < len(d.lines); i++ {
		l := d.lines[i]
		if l.Start >= r.End {
			break
		}
		s, e := max(r.Start, l.Start), min(r.End, l.End)
		if s >= e {
			continue
		}
		x0, x1 := d.xAt(l, s), d.xAt(l, e)
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		rects = append(rects, coord.Rect{X: x0, Y: l.Y, Width: x1 - x0, Height: l.Height})
	}
	return rects
}

// CaretRect returns the caret rectangle at off. A width of zero or less
// means one pixel. The caret is as tall as the font size and centered in
// the line.
func (d *Document) CaretRect(off coord.Offset, width float64) coord.Rect {
	return d.CaretRectAffinity(off, coord.Before, width)
}

// CaretRectAffinity is CaretRect with explicit affinity at soft wrap
// boundaries.
func (d *Document) CaretRectAffinity(off coord.Offset, aff coord.Affinity, width float64) coord.Rect {
	if width <= 0 || math.IsNaN(width) {
		width = 1
	}
	off = off.Clamp(d.length)
	l := d.lines[d.LineAtOffsetAffinity(off, aff)]
	h := d.params.FontSize
	if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		h = l.Height
	}
	return coord.Rect{
		X:      d.xAt(l, off),
		Y:      l.Y + (l.Height-h)/2,
		Width:  width,
		Height: h,
	}
}
