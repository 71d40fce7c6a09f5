package document

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/textcore/internal/engine/coord"
	"github.com/dshills/textcore/internal/engine/shaper"
)

// Font size 10 gives 6px cells with the cell shaper.
func testParams() Params {
	return Params{FontSize: 10, LineHeight: 20, FontFamily: "mono", MaxWidth: math.Inf(1)}
}

func newDoc(t *testing.T, text string, p Params) *Document {
	t.Helper()
	doc, err := build(shaper.NewCellShaper(), text, p)
	if err != nil {
		t.Fatalf("build(%q): %v", text, err)
	}
	return doc
}

type failingShaper struct{}

func (failingShaper) Shape(shaper.Params) (shaper.Layout, error) {
	return shaper.Layout{}, errors.New("no font")
}

func TestEmptyDocumentHasOneLine(t *testing.T) {
	doc := newDoc(t, "", testParams())
	if doc.LineCount() != 1 {
		t.Fatalf("LineCount() = %d, want 1", doc.LineCount())
	}
	l := doc.Line(0)
	if l.Start != 0 || l.End != 0 || l.Width != 0 || len(l.Glyphs) != 0 {
		t.Errorf("line = %+v", l)
	}
	if doc.Height() != 20 {
		t.Errorf("Height() = %v, want 20", doc.Height())
	}
}

func TestLinesAreContiguous(t *testing.T) {
	texts := []string{"ab\ncd", "ab\r\ncd\n", "one two three four five", "a\u2028b", "x\n\n\ny"}
	p := testParams()
	p.MaxWidth = 30
	for _, text := range texts {
		doc := newDoc(t, text, p)
		lines := doc.Lines()
		if lines[0].Start != 0 || lines[len(lines)-1].End != doc.Len() {
			t.Errorf("%q: lines do not span text: %+v", text, lines)
		}
		for i := 0; i+1 < len(lines); i++ {
			if lines[i].End != lines[i+1].Start {
				t.Errorf("%q: line %d ends at %v, next starts at %v", text, i, lines[i].End, lines[i+1].Start)
			}
			if lines[i+1].Y <= lines[i].Y {
				t.Errorf("%q: line %d not below line %d", text, i+1, i)
			}
		}
		if lines[0].Y != 0 {
			t.Errorf("%q: first line Y = %v, want 0", text, lines[0].Y)
		}
	}
}

func TestGlyphSpansUseUTF16Offsets(t *testing.T) {
	doc := newDoc(t, "\u00e9\U0001F44Dx", testParams())
	got := doc.Line(0).Glyphs
	want := []struct {
		start, end coord.Offset
		x, adv     float64
	}{
		{0, 1, 0, 6},
		{1, 3, 6, 12},
		{3, 4, 18, 6},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d glyphs, want %d", len(got), len(want))
	}
	for i, w := range want {
		g := got[i]
		if g.Start != w.start || g.End != w.end || g.X != w.x || g.Advance != w.adv {
			t.Errorf("glyph %d = %+v, want %+v", i, g, w)
		}
	}
	if doc.Len() != 4 {
		t.Errorf("Len() = %v, want 4", doc.Len())
	}
}

func TestHardBreakLines(t *testing.T) {
	doc := newDoc(t, "ab\r\ncd\n", testParams())
	if doc.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", doc.LineCount())
	}
	l0 := doc.Line(0)
	if l0.Start != 0 || l0.End != 4 || l0.ContentEnd != 2 || !l0.HardBreak() {
		t.Errorf("line 0 = %+v", l0)
	}
	last := doc.Line(2)
	if last.Start != 7 || last.End != 7 || last.Y != 40 {
		t.Errorf("last line = %+v", last)
	}
}

func TestLineAtOffset(t *testing.T) {
	doc := newDoc(t, "ab\ncd", testParams())
	tests := []struct {
		off  coord.Offset
		want int
	}{
		{0, 0}, {2, 0}, {3, 1}, {5, 1}, {99, 1}, {-4, 0},
	}
	for _, tt := range tests {
		if got := doc.LineAtOffset(tt.off); got != tt.want {
			t.Errorf("LineAtOffset(%v) = %d, want %d", tt.off, got, tt.want)
		}
	}
}

func TestSoftWrapAffinity(t *testing.T) {
	p := testParams()
	p.MaxWidth = 36
	doc := newDoc(t, "hello world", p)
	if doc.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", doc.LineCount())
	}
	if got := doc.LineAtOffset(6); got != 0 {
		t.Errorf("LineAtOffset(6) = %d, want 0", got)
	}
	if got := doc.LineAtOffsetAffinity(6, coord.After); got != 1 {
		t.Errorf("LineAtOffsetAffinity(6, After) = %d, want 1", got)
	}
	before := doc.CaretRect(6, 1)
	after := doc.CaretRectAffinity(6, coord.After, 1)
	if diff := cmp.Diff(coord.Rect{X: 36, Y: 5, Width: 1, Height: 10}, before); diff != "" {
		t.Errorf("CaretRect(6) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(coord.Rect{X: 0, Y: 25, Width: 1, Height: 10}, after); diff != "" {
		t.Errorf("CaretRectAffinity(6, After) mismatch (-want +got):\n%s", diff)
	}
}

func TestLineAtY(t *testing.T) {
	doc := newDoc(t, "a\nb\nc", testParams())
	tests := []struct {
		y    float64
		want int
	}{
		{-10, 0}, {0, 0}, {19.9, 0}, {20, 1}, {45, 2}, {500, 2}, {math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := doc.LineAtY(tt.y); got != tt.want {
			t.Errorf("LineAtY(%v) = %d, want %d", tt.y, got, tt.want)
		}
	}
}

func TestPositionRoundTrip(t *testing.T) {
	p := testParams()
	p.MaxWidth = 40
	for _, text := range []string{"", "hello", "ab\ncd\n", "one two three four", "\U0001F600 x\ny"} {
		doc := newDoc(t, text, p)
		for off := coord.Offset(0); off <= doc.Len(); off++ {
			pos := doc.OffsetToPosition(off)
			if got := doc.PositionToOffset(pos); got != off {
				t.Errorf("%q: PositionToOffset(OffsetToPosition(%v)=%v) = %v", text, off, pos, got)
			}
		}
	}
}

func TestPositionInsideCRLF(t *testing.T) {
	doc := newDoc(t, "ab\r\ncd", testParams())
	for _, off := range []coord.Offset{0, 1, 2, 4, 5, 6} {
		if got := doc.PositionToOffset(doc.OffsetToPosition(off)); got != off {
			t.Errorf("round trip of %v = %v", off, got)
		}
	}
	// Between \r and \n is not a boundary; it maps before the break.
	if got := doc.OffsetToPosition(3); got != (coord.Position{Line: 0, Column: 2}) {
		t.Errorf("OffsetToPosition(3) = %v, want (0:2)", got)
	}
}

func TestPositionClamping(t *testing.T) {
	doc := newDoc(t, "short\na longer line", testParams())
	tests := []struct {
		pos  coord.Position
		want coord.Offset
	}{
		{coord.Position{Line: 0, Column: 99}, 5},
		{coord.Position{Line: -1, Column: 2}, 2},
		{coord.Position{Line: 1, Column: 4}, 10},
		{coord.Position{Line: 9, Column: 0}, 6},
		{coord.Position{Line: 1, Column: -3}, 6},
	}
	for _, tt := range tests {
		if got := doc.PositionToOffset(tt.pos); got != tt.want {
			t.Errorf("PositionToOffset(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
	if got := doc.OffsetToPosition(100); got != (coord.Position{Line: 1, Column: 13}) {
		t.Errorf("OffsetToPosition(100) = %v", got)
	}
}

func TestOffsetToPoint(t *testing.T) {
	doc := newDoc(t, "ab\ncd", testParams())
	tests := []struct {
		off  coord.Offset
		want coord.Point
	}{
		{0, coord.Point{X: 0, Y: 0}},
		{2, coord.Point{X: 12, Y: 0}},
		{4, coord.Point{X: 6, Y: 20}},
	}
	for _, tt := range tests {
		if got := doc.OffsetToPoint(tt.off); got != tt.want {
			t.Errorf("OffsetToPoint(%v) = %v, want %v", tt.off, got, tt.want)
		}
	}
}

// ligatureShaper reports one glyph covering "fi".
type ligatureShaper struct{}

func (ligatureShaper) Shape(p shaper.Params) (shaper.Layout, error) {
	line := shaper.Line{
		Y:       8,
		Height:  p.LineHeight,
		Width:   20,
		ByteEnd: len(p.Text),
		Glyphs: []shaper.Glyph{
			{GlyphID: 1, X: 0, Advance: 12, ByteStart: 0, ByteEnd: 2},
			{GlyphID: 2, X: 12, Advance: 8, ByteStart: 2, ByteEnd: 3},
		},
	}
	return shaper.Layout{Lines: []shaper.Line{line}, Width: 20, Height: p.LineHeight}, nil
}

func TestInterpolationWithinGlyph(t *testing.T) {
	doc := New(ligatureShaper{}, "fix", testParams())
	if got := doc.OffsetToPoint(1).X; got != 6 {
		t.Errorf("x at offset 1 = %v, want 6", got)
	}
	tests := []struct {
		x    float64
		want HitResult
	}{
		{-3, HitResult{Offset: 0, Affinity: coord.After}},
		{2, HitResult{Offset: 0, Affinity: coord.After}},
		{4, HitResult{Offset: 1, Affinity: coord.Before}},
		{7, HitResult{Offset: 1, Affinity: coord.After}},
		{10, HitResult{Offset: 2, Affinity: coord.Before}},
		{13, HitResult{Offset: 2, Affinity: coord.After}},
		{17, HitResult{Offset: 3, Affinity: coord.Before}},
		{50, HitResult{Offset: 3, Affinity: coord.Before}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, doc.HitTest(coord.Point{X: tt.x, Y: 5})); diff != "" {
			t.Errorf("HitTest(x=%v) mismatch (-want +got):\n%s", tt.x, diff)
		}
	}
}

func TestHitTestLines(t *testing.T) {
	doc := newDoc(t, "hello\nworld", testParams())
	tests := []struct {
		pt   coord.Point
		want HitResult
	}{
		{coord.Point{X: 7, Y: 5}, HitResult{Offset: 1, Affinity: coord.After, Line: 0}},
		{coord.Point{X: 10, Y: 5}, HitResult{Offset: 2, Affinity: coord.Before, Line: 0}},
		{coord.Point{X: 100, Y: 5}, HitResult{Offset: 5, Affinity: coord.Before, Line: 0}},
		{coord.Point{X: 1, Y: 25}, HitResult{Offset: 6, Affinity: coord.After, Line: 1}},
		{coord.Point{X: 100, Y: 999}, HitResult{Offset: 11, Affinity: coord.Before, Line: 1}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, doc.HitTest(tt.pt)); diff != "" {
			t.Errorf("HitTest(%v) mismatch (-want +got):\n%s", tt.pt, diff)
		}
	}
	if got := doc.PointToOffset(coord.Point{X: 31, Y: 21}); got != 11 {
		t.Errorf("PointToOffset = %v, want 11", got)
	}
}

func TestHitTestDoesNotSplitSurrogates(t *testing.T) {
	doc := newDoc(t, "a\U0001F44Db", testParams())
	// The emoji glyph spans x 6..18 and two code units.
	got := doc.HitTest(coord.Point{X: 13, Y: 1})
	if got.Offset != 1 {
		t.Errorf("HitTest inside emoji = %+v, want offset 1", got)
	}
}

func TestSelectionRects(t *testing.T) {
	doc := newDoc(t, "hello", testParams())
	got := doc.SelectionRects(coord.NewRange(1, 3))
	want := []coord.Rect{{X: 6, Y: 0, Width: 12, Height: 20}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SelectionRects mismatch (-want +got):\n%s", diff)
	}
	if rects := doc.SelectionRects(coord.NewRange(2, 2)); len(rects) != 0 {
		t.Errorf("empty selection produced %v", rects)
	}
}

func TestSelectionRectsMultiLine(t *testing.T) {
	doc := newDoc(t, "ab\ncd\nef", testParams())
	got := doc.SelectionRects(coord.NewRange(7, 1))
	want := []coord.Rect{
		{X: 6, Y: 0, Width: 6, Height: 20},
		{X: 0, Y: 20, Width: 12, Height: 20},
		{X: 0, Y: 40, Width: 6, Height: 20},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SelectionRects mismatch (-want +got):\n%s", diff)
	}
	// Ending at the start of a line covers nothing on that line.
	if n := len(doc.SelectionRects(coord.NewRange(0, 6))); n != 2 {
		t.Errorf("got %d rects, want 2", n)
	}
}

func TestCaretRect(t *testing.T) {
	doc := newDoc(t, "ab\ncd", testParams())
	got := doc.CaretRect(4, 0)
	want := coord.Rect{X: 6, Y: 25, Width: 1, Height: 10}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CaretRect mismatch (-want +got):\n%s", diff)
	}
	if got := doc.CaretRect(3, 2); got.X != 0 || got.Y != 25 || got.Width != 2 {
		t.Errorf("caret after hard break = %v", got)
	}
}

func TestShapingFailureFallsBack(t *testing.T) {
	doc, err := build(failingShaper{}, "ab\ncd", testParams())
	if err == nil {
		t.Fatal("expected shaping error")
	}
	if !doc.Fallback() || doc.LineCount() != 1 {
		t.Fatalf("fallback = %v, lines = %d", doc.Fallback(), doc.LineCount())
	}
	if doc.Width() != 30 {
		t.Errorf("Width() = %v, want 30", doc.Width())
	}
	l := doc.Line(0)
	if l.Start != 0 || l.End != 5 || len(l.Glyphs) != 0 {
		t.Errorf("line = %+v", l)
	}
	if got := doc.HitTest(coord.Point{X: 13, Y: 3}); got.Offset != 2 || got.Affinity != coord.Before {
		t.Errorf("HitTest = %+v", got)
	}
	if got := doc.OffsetToPoint(3).X; got != 18 {
		t.Errorf("x at 3 = %v, want 18", got)
	}
	if got := doc.OffsetToPosition(4); got != (coord.Position{Line: 0, Column: 4}) {
		t.Errorf("OffsetToPosition(4) = %v", got)
	}

	if doc := New(nil, "xyz", testParams()); !doc.Fallback() {
		t.Error("nil shaper should fall back")
	}
}

func TestInvalidParamsFallBack(t *testing.T) {
	p := testParams()
	p.FontSize = 0
	doc := New(shaper.NewCellShaper(), "abc", p)
	if !doc.Fallback() || doc.Width() != 0 {
		t.Errorf("fallback = %v width = %v", doc.Fallback(), doc.Width())
	}
	if r := doc.CaretRect(1, 1); r.Height != 20 {
		t.Errorf("caret height = %v, want line height", r.Height)
	}
}

func TestSlice(t *testing.T) {
	doc := newDoc(t, "h\U0001F600llo", testParams())
	if got := doc.Slice(coord.NewRange(1, 3)); got != "\U0001F600" {
		t.Errorf("Slice = %q", got)
	}
	if got := doc.Slice(coord.Range{Start: 4, End: 99}); got != "lo" {
		t.Errorf("Slice = %q", got)
	}
}
