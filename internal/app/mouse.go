package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textcore/internal/engine/coord"
	"github.com/dshills/textcore/internal/engine/editor"
)

const wheelRows = 3

// handleMouse turns button 1 presses, drags and releases into selection
// gestures. Double and triple clicks select words and lines.
func (a *Application) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	btn := ev.Buttons()

	switch {
	case btn&tcell.WheelUp != 0:
		a.scroll(-wheelRows)
	case btn&tcell.WheelDown != 0:
		a.scroll(wheelRows)

	case btn&tcell.Button1 != 0:
		pt := a.cellToPoint(x, y)
		if a.dragging {
			a.editor.ExtendSelection(pt)
			return
		}
		if y >= a.textRows() {
			return
		}
		mode := editor.ModeCaret
		switch a.clicks.record(cell{x, y}, ev.When()) {
		case 2:
			mode = editor.ModeWord
		case 3:
			mode = editor.ModeLine
		}
		// Starting a gesture commits any composition.
		a.composing = false
		a.editor.StartSelection(pt, mode, ev.Modifiers()&tcell.ModShift != 0)
		a.dragging = true
		a.follow = true

	case a.dragging:
		a.editor.ExtendSelection(a.cellToPoint(x, y))
		a.editor.EndSelection()
		a.dragging = false
	}
}

// cellToPoint maps a screen cell to a layout point at the left edge of the
// cell and the vertical middle of the line on that row. Rows outside the
// document map above or below it.
func (a *Application) cellToPoint(x, y int) coord.Point {
	doc := a.editor.DisplayDocument()
	pt := coord.Point{X: float64(max(x, 0)) * a.cellWidth()}
	row := a.top + y
	switch {
	case row < 0:
		pt.Y = -1
	case row >= doc.LineCount():
		pt.Y = doc.Height() + 1
	default:
		line := doc.Line(row)
		pt.Y = line.Y + line.Height/2
	}
	return pt
}

// scroll moves the view without moving the caret.
func (a *Application) scroll(rows int) {
	last := a.editor.DisplayDocument().LineCount() - 1
	a.top = min(max(a.top+rows, 0), max(last, 0))
	a.follow = false
}
