package editor

import (
	"github.com/dshills/textcore/internal/engine/coord"
	"github.com/dshills/textcore/internal/engine/selection"
)

// Mode is the granularity of a pointer selection gesture.
type Mode uint8

const (
	// ModeCaret selects by character, as for a single click.
	ModeCaret Mode = iota
	// ModeWord selects by word, as for a double click.
	ModeWord
	// ModeLine selects by visual line, as for a triple click.
	ModeLine
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeWord:
		return "word"
	case ModeLine:
		return "line"
	}
	return "caret"
}

// Gesture is an active pointer selection. [AnchorStart, AnchorEnd) is the
// granule under the initial press.
type Gesture struct {
	Mode        Mode
	AnchorStart coord.Offset
	AnchorEnd   coord.Offset
}

type gestureState struct {
	active bool
	value  Gesture
}

// Gesture returns the active gesture, if any.
func (e *Editor) Gesture() (Gesture, bool) {
	return e.gesture.value, e.gesture.active
}

// StartSelection begins a pointer gesture at pt. With extend the current
// anchor is kept and the selection grows to the granule at pt. An open
// composition is committed first.
func (e *Editor) StartSelection(pt coord.Point, mode Mode, extend bool) {
	e.CommitCurrentComposition()
	e.hasPreferred = false

	hit := e.doc.HitTest(pt)
	off := e.snapGrapheme(hit.Offset)
	g := e.granule(off, hit.Line, mode)

	anchor := g
	if extend {
		a := e.sel.Anchor()
		anchor = coord.Range{Start: a, End: a}
	}
	e.gesture = gestureState{
		active: true,
		value:  Gesture{Mode: mode, AnchorStart: anchor.Start, AnchorEnd: anchor.End},
	}
	e.sel = merge(anchor, g)
	e.affinity = hit.Affinity
}

// ExtendSelection updates the selection while dragging to pt. It does
// nothing without an active gesture.
func (e *Editor) ExtendSelection(pt coord.Point) {
	if !e.gesture.active {
		return
	}
	hit := e.doc.HitTest(pt)
	off := e.snapGrapheme(hit.Offset)
	v := e.gesture.value
	g := e.granule(off, hit.Line, v.Mode)
	e.sel = merge(coord.Range{Start: v.AnchorStart, End: v.AnchorEnd}, g).Clamp(e.doc.Len())
	e.affinity = hit.Affinity
}

// EndSelection ends the gesture. The selection is kept.
func (e *Editor) EndSelection() {
	e.gesture = gestureState{}
}

// granule returns the span of the given granularity at off.
func (e *Editor) granule(off coord.Offset, line int, mode Mode) coord.Range {
	switch mode {
	case ModeWord:
		return e.scanner().WordRange(off)
	case ModeLine:
		l := e.doc.Line(line)
		return coord.Range{Start: l.Start, End: l.End}
	}
	return coord.Range{Start: off, End: off}
}

// merge joins the anchor granule with the granule under the pointer. A
// granule wholly before the anchor selects backwards from the anchor's end
// and one wholly after it selects forwards from the anchor's start. An
// overlapping granule selects the union, reversed only when it grows the
// anchor backwards alone.
func merge(a, g coord.Range) selection.Selection {
	switch {
	case g.End <= a.Start && g.Start < a.Start:
		return selection.New(a.End, g.Start)
	case g.Start >= a.End && g.End > a.End:
		return selection.New(a.Start, g.End)
	}
	start := coord.MinOffset(a.Start, g.Start)
	end := coord.MaxOffset(a.End, g.End)
	if start < a.Start && end == a.End {
		return selection.New(end, start)
	}
	return selection.New(start, end)
}
