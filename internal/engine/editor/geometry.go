package editor

import (
	"github.com/dshills/textcore/internal/engine/coord"
	"github.com/dshills/textcore/internal/engine/document"
	"github.com/dshills/textcore/internal/engine/segment"
)

// HitTest resolves a point against the displayed document.
func (e *Editor) HitTest(pt coord.Point) document.HitResult {
	return e.DisplayDocument().HitTest(pt)
}

// CaretRect returns the caret rectangle in the displayed document. While
// composing the caret follows the composition text.
func (e *Editor) CaretRect(width float64) coord.Rect {
	return e.DisplayDocument().CaretRectAffinity(e.displayCaret(), e.affinity, width)
}

// SelectionRects returns the selection highlight, one rectangle per line.
// Nothing is highlighted while composing.
func (e *Editor) SelectionRects() []coord.Rect {
	if e.comp.active {
		return nil
	}
	return e.doc.SelectionRects(e.sel.Range())
}

// CompositionRects returns the rectangles covering the composition text in
// the displayed document.
func (e *Editor) CompositionRects() []coord.Rect {
	if !e.comp.active {
		return nil
	}
	c := e.comp.value
	return e.DisplayDocument().SelectionRects(coord.Range{Start: c.Start, End: c.Start + segment.Len(c.Text)})
}
