package editor

import (
	"github.com/dshills/textcore/internal/engine/coord"
	"github.com/dshills/textcore/internal/engine/history"
	"github.com/dshills/textcore/internal/engine/segment"
	"github.com/dshills/textcore/internal/engine/selection"
)

// SetText replaces the whole text and puts the caret at its end.
// Setting the current text again does nothing.
func (e *Editor) SetText(text string) {
	text = e.prepare(text)
	if text == e.doc.Text() {
		return
	}
	e.apply(text, selection.Caret(segment.Len(text)), coord.Before)
}

// SetSelection sets the selection, clamped to the text. An open
// composition is cancelled.
func (e *Editor) SetSelection(sel selection.Selection) {
	e.CancelComposition()
	e.sel = sel.Clamp(e.doc.Len())
	e.affinity = coord.Before
	e.hasPreferred = false
}

// SelectAll selects the whole text.
func (e *Editor) SelectAll() {
	e.SetSelection(selection.All(e.doc.Len()))
}

// SelectedText returns the text covered by the selection.
func (e *Editor) SelectedText() string {
	return e.doc.Slice(e.sel.Range())
}

// InsertText replaces the selection with text.
func (e *Editor) InsertText(text string) {
	text = e.prepare(text)
	if text == "" && e.sel.IsEmpty() {
		return
	}
	e.replace(e.sel.Range(), text)
}

// DeleteSelection removes the selected text. A caret deletes nothing.
func (e *Editor) DeleteSelection() {
	if e.sel.IsEmpty() {
		return
	}
	e.replace(e.sel.Range(), "")
}

// DeleteBackward deletes the selection, or the grapheme before the caret.
func (e *Editor) DeleteBackward() {
	e.deleteTo(func(s *segment.Scanner, off coord.Offset) coord.Offset {
		return s.PrevGrapheme(off)
	})
}

// DeleteForward deletes the selection, or the grapheme after the caret.
func (e *Editor) DeleteForward() {
	e.deleteTo(func(s *segment.Scanner, off coord.Offset) coord.Offset {
		return s.NextGrapheme(off)
	})
}

// DeleteWordBackward deletes the selection, or back to the previous word
// boundary.
func (e *Editor) DeleteWordBackward() {
	e.deleteTo(func(s *segment.Scanner, off coord.Offset) coord.Offset {
		return s.WordBoundaryLeft(off)
	})
}

// DeleteWordForward deletes the selection, or up to the next word
// boundary.
func (e *Editor) DeleteWordForward() {
	e.deleteTo(func(s *segment.Scanner, off coord.Offset) coord.Offset {
		return s.WordBoundaryRight(off)
	})
}

// deleteTo deletes between the caret and the offset chosen by target.
// The selection takes precedence; deleting at a text boundary is a no-op.
func (e *Editor) deleteTo(target func(*segment.Scanner, coord.Offset) coord.Offset) {
	if !e.sel.IsEmpty() {
		e.DeleteSelection()
		return
	}
	off := e.sel.Focus()
	to := target(e.scanner(), off)
	if to == off {
		return
	}
	e.replace(coord.NewRange(off, to), "")
}

// Undo restores the state before the last mutation. It returns false when
// there is nothing to undo.
func (e *Editor) Undo() bool {
	return e.travel(e.hist.Undo, "undo")
}

// Redo reapplies the last undone mutation. It returns false when there is
// nothing to redo.
func (e *Editor) Redo() bool {
	return e.travel(e.hist.Redo, "redo")
}

func (e *Editor) travel(step func(history.Snapshot) (history.Snapshot, error), name string) bool {
	e.CancelComposition()
	snap, err := step(history.Snapshot{Text: e.doc.Text(), Selection: e.sel})
	if err != nil {
		e.log.Debug("%s: %v", name, err)
		return false
	}
	e.restore(snap.Text, snap.Selection)
	e.affinity = coord.Before
	e.hasPreferred = false
	e.log.Debug("%s to %d chars, selection %s", name, e.doc.Len(), e.sel)
	return true
}

// Group runs fn and records all of its mutations as one undo entry.
func (e *Editor) Group(name string, fn func()) {
	defer e.hist.GroupScope(name).End()
	fn()
}
