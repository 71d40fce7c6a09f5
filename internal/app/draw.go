package app

import (
	"fmt"
	"math"
	"path/filepath"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/textcore/internal/engine/coord"
	"github.com/dshills/textcore/internal/engine/document"
	"github.com/dshills/textcore/internal/engine/segment"
)

var (
	styleText        = tcell.StyleDefault
	styleSelection   = tcell.StyleDefault.Reverse(true)
	styleComposition = tcell.StyleDefault.Underline(true)
	styleStatus      = tcell.StyleDefault.Reverse(true)
)

// textRows is the number of screen rows showing text. The last row holds
// the status line.
func (a *Application) textRows() int {
	if a.screen == nil {
		return 0
	}
	_, h := a.screen.Size()
	return max(h-1, 0)
}

// draw renders the display document, the caret and the status line.
func (a *Application) draw() {
	s := a.screen
	if s == nil {
		return
	}
	s.Clear()

	w, _ := s.Size()
	rows := a.textRows()
	doc := a.editor.DisplayDocument()
	if a.follow {
		a.scrollToCaret(doc, rows)
	}

	var highlight, underline coord.Range
	if comp, ok := a.editor.Composition(); ok {
		underline = coord.NewRange(comp.Start, comp.Start+segment.Len(comp.Text))
	} else {
		highlight = a.editor.Selection().Range()
	}

	cw := a.cellWidth()
	text := doc.Text()
	for row := 0; row < rows; row++ {
		i := a.top + row
		if i >= doc.LineCount() {
			break
		}
		for _, g := range doc.Line(i).Glyphs {
			style := styleText
			switch {
			case highlight.Contains(g.Start):
				style = styleSelection
			case underline.Contains(g.Start):
				style = styleComposition
			}
			drawGlyph(s, segment.Slice(text, g.Start, g.End), int(math.Round(g.X/cw)), row, cellsFor(g, cw), w, style)
		}
	}

	a.drawCaret(doc, rows, w)
	a.drawStatus()
	s.Show()
}

func cellsFor(g document.Glyph, cw float64) int {
	return int(math.Round(g.Advance / cw))
}

// drawGlyph puts one cluster at col. Control characters draw as blank
// cells so that selected tabs and line breaks stay visible.
func drawGlyph(s tcell.Screen, cluster string, col, row, cells, width int, style tcell.Style) {
	if cluster == "" || col >= width {
		return
	}
	runes := []rune(cluster)
	if unicode.IsControl(runes[0]) {
		if style == styleText {
			return
		}
		for k := range max(cells, 1) {
			if col+k < width {
				s.SetContent(col+k, row, ' ', nil, style)
			}
		}
		return
	}
	s.SetContent(col, row, runes[0], runes[1:], style)
}

// scrollToCaret adjusts the first visible line so the caret's line shows.
func (a *Application) scrollToCaret(doc *document.Document, rows int) {
	if rows <= 0 {
		return
	}
	line := a.caretLine(doc)
	switch {
	case line < a.top:
		a.top = line
	case line >= a.top+rows:
		a.top = line - rows + 1
	}
	a.top = max(a.top, 0)
}

func (a *Application) caretLine(doc *document.Document) int {
	r := a.editor.CaretRect(1)
	return doc.LineAtY(r.Y + r.Height/2)
}

func (a *Application) drawCaret(doc *document.Document, rows, width int) {
	if !a.editor.IsFocused() {
		a.screen.HideCursor()
		return
	}
	r := a.editor.CaretRect(1)
	row := a.caretLine(doc) - a.top
	col := int(math.Round(r.X / a.cellWidth()))
	if row < 0 || row >= rows || col >= width {
		a.screen.HideCursor()
		return
	}
	a.screen.ShowCursor(col, row)
}

// statusText describes the file, the caret position and any message.
func (a *Application) statusText() string {
	name := "[scratch]"
	if a.opts.File != "" {
		name = filepath.Base(a.opts.File)
	}
	if a.Modified() {
		name += " [+]"
	}

	ed := a.editor
	sel := ed.Selection()
	pos := ed.Document().OffsetToPosition(sel.Focus())
	line := fmt.Sprintf(" %s  Ln %d, Col %d", name, pos.Line+1, pos.Column+1)
	if n := sel.Len(); n > 0 {
		line += fmt.Sprintf(" (%d selected)", n)
	}
	if a.composing {
		line += "  COMPOSE"
	}
	if a.status != "" {
		line += "  " + a.status
	}
	return line
}

func (a *Application) drawStatus() {
	w, h := a.screen.Size()
	if h < 1 {
		return
	}
	y := h - 1
	x := drawString(a.screen, 0, y, w, a.statusText(), styleStatus)
	for ; x < w; x++ {
		a.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
}

// drawString writes s from column x, clipped at width, and returns the
// column after the last cell written.
func drawString(s tcell.Screen, x, y, width int, str string, style tcell.Style) int {
	for _, r := range str {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > width {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += rw
	}
	return x
}
