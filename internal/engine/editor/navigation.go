package editor

import (
	"github.com/dshills/textcore/internal/engine/coord"
	"github.com/dshills/textcore/internal/engine/selection"
)

// moveTo moves the focus, extending the selection or collapsing to a caret.
func (e *Editor) moveTo(off coord.Offset, aff coord.Affinity, extend bool) {
	e.CancelComposition()
	off = off.Clamp(e.doc.Len())
	if extend {
		e.sel = e.sel.ExtendTo(off)
	} else {
		e.sel = selection.Caret(off)
	}
	e.affinity = aff
}

// MoveLeft moves one grapheme left. Without extend, a selection first
// collapses to its start.
func (e *Editor) MoveLeft(extend bool) {
	e.hasPreferred = false
	if !extend && !e.sel.IsEmpty() {
		e.moveTo(e.sel.Start(), coord.Before, false)
		return
	}
	e.moveTo(e.scanner().PrevGrapheme(e.sel.Focus()), coord.Before, extend)
}

// MoveRight moves one grapheme right. Without extend, a selection first
// collapses to its end.
func (e *Editor) MoveRight(extend bool) {
	e.hasPreferred = false
	if !extend && !e.sel.IsEmpty() {
		e.moveTo(e.sel.End(), coord.Before, false)
		return
	}
	e.moveTo(e.scanner().NextGrapheme(e.sel.Focus()), coord.Before, extend)
}

// MoveWordLeft moves to the previous word boundary.
func (e *Editor) MoveWordLeft(extend bool) {
	e.hasPreferred = false
	from := e.sel.Focus()
	if !extend && !e.sel.IsEmpty() {
		from = e.sel.Start()
	}
	e.moveTo(e.scanner().WordBoundaryLeft(from), coord.Before, extend)
}

// MoveWordRight moves to the next word boundary.
func (e *Editor) MoveWordRight(extend bool) {
	e.hasPreferred = false
	from := e.sel.Focus()
	if !extend && !e.sel.IsEmpty() {
		from = e.sel.End()
	}
	e.moveTo(e.scanner().WordBoundaryRight(from), coord.Before, extend)
}

// MoveLineStart moves to the start of the visual line.
func (e *Editor) MoveLineStart(extend bool) {
	e.hasPreferred = false
	l := e.doc.Line(e.doc.LineAtOffsetAffinity(e.sel.Focus(), e.affinity))
	e.moveTo(l.Start, coord.After, extend)
}

// MoveLineEnd moves to the end of the visual line, before a hard break.
func (e *Editor) MoveLineEnd(extend bool) {
	e.hasPreferred = false
	l := e.doc.Line(e.doc.LineAtOffsetAffinity(e.sel.Focus(), e.affinity))
	e.moveTo(l.ContentEnd, coord.Before, extend)
}

// MoveDocumentStart moves to offset zero.
func (e *Editor) MoveDocumentStart(extend bool) {
	e.hasPreferred = false
	e.moveTo(0, coord.After, extend)
}

// MoveDocumentEnd moves to the end of the text.
func (e *Editor) MoveDocumentEnd(extend bool) {
	e.hasPreferred = false
	e.moveTo(e.doc.Len(), coord.Before, extend)
}

// MoveUp moves to the previous visual line, keeping the horizontal
// position of the first vertical move. On the first line it moves to the
// start of the text.
func (e *Editor) MoveUp(extend bool) {
	e.moveVertical(-1, extend)
}

// MoveDown moves to the next visual line, keeping the horizontal position
// of the first vertical move. On the last line it moves to the end of the
// text.
func (e *Editor) MoveDown(extend bool) {
	e.moveVertical(1, extend)
}

func (e *Editor) moveVertical(dir int, extend bool) {
	focus := e.sel.Focus()
	line := e.doc.LineAtOffsetAffinity(focus, e.affinity)
	if !e.hasPreferred {
		e.preferredX = e.doc.XOnLine(line, focus)
		e.hasPreferred = true
	}

	target := line + dir
	switch {
	case target < 0:
		e.moveTo(0, coord.After, extend)
		return
	case target >= e.doc.LineCount():
		e.moveTo(e.doc.Len(), coord.Before, extend)
		return
	}

	l := e.doc.Line(target)
	hit := e.doc.HitTest(coord.Point{X: e.preferredX, Y: l.Y + l.Height/2})
	off := e.snapGrapheme(hit.Offset)
	aff := hit.Affinity
	if off == l.Start {
		aff = coord.After
	}
	e.moveTo(off, aff, extend)
}
