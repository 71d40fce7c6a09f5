package app

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textcore/internal/engine/selection"
)

// handleKey applies one key press to the editor.
func (a *Application) handleKey(ev *tcell.EventKey) error {
	a.status = ""
	a.follow = true

	if a.composing && !a.editor.IsComposing() {
		a.composing = false
	}
	if a.composing && a.composeKey(ev) {
		return nil
	}

	mod := ev.Modifiers()
	shift := mod&tcell.ModShift != 0
	word := mod&(tcell.ModCtrl|tcell.ModAlt) != 0
	ed := a.editor

	switch keyOf(ev) {
	case tcell.KeyCtrlQ:
		return ErrQuit
	case tcell.KeyCtrlS:
		if err := a.Save(); err != nil {
			a.status = err.Error()
			a.log.WithError(err).Warn("save failed")
		} else {
			a.status = "saved"
		}
	case tcell.KeyCtrlZ:
		if !ed.Undo() {
			a.status = "nothing to undo"
		}
	case tcell.KeyCtrlY:
		if !ed.Redo() {
			a.status = "nothing to redo"
		}
	case tcell.KeyCtrlA:
		ed.SelectAll()
	case tcell.KeyCtrlC:
		a.copySelection()
	case tcell.KeyCtrlX:
		if a.copySelection() {
			ed.DeleteSelection()
		}
	case tcell.KeyCtrlV:
		if a.clipboard != "" {
			a.insert(a.clipboard)
		}
	case tcell.KeyCtrlK:
		a.composing = true
		ed.BeginComposition()

	case tcell.KeyLeft:
		if word {
			ed.MoveWordLeft(shift)
		} else {
			ed.MoveLeft(shift)
		}
	case tcell.KeyRight:
		if word {
			ed.MoveWordRight(shift)
		} else {
			ed.MoveRight(shift)
		}
	case tcell.KeyUp:
		ed.MoveUp(shift)
	case tcell.KeyDown:
		ed.MoveDown(shift)
	case tcell.KeyHome:
		if mod&tcell.ModCtrl != 0 {
			ed.MoveDocumentStart(shift)
		} else {
			ed.MoveLineStart(shift)
		}
	case tcell.KeyEnd:
		if mod&tcell.ModCtrl != 0 {
			ed.MoveDocumentEnd(shift)
		} else {
			ed.MoveLineEnd(shift)
		}
	case tcell.KeyPgUp:
		for range a.pageRows() {
			ed.MoveUp(shift)
		}
	case tcell.KeyPgDn:
		for range a.pageRows() {
			ed.MoveDown(shift)
		}

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if word {
			ed.DeleteWordBackward()
		} else {
			ed.DeleteBackward()
		}
	case tcell.KeyDelete:
		if word {
			ed.DeleteWordForward()
		} else {
			ed.DeleteForward()
		}
	case tcell.KeyEnter:
		a.insert("\n")
	case tcell.KeyTab:
		a.insert("\t")
	case tcell.KeyEscape:
		sel := ed.Selection()
		if !sel.IsEmpty() {
			ed.SetSelection(selection.Caret(sel.Focus()))
		}
	case tcell.KeyRune:
		a.insert(string(ev.Rune()))
	}
	return nil
}

// composeKey handles a key while a composition is being typed. Keys it does
// not consume commit the composition first.
func (a *Application) composeKey(ev *tcell.EventKey) bool {
	ed := a.editor
	comp, _ := ed.Composition()

	switch keyOf(ev) {
	case tcell.KeyRune:
		ed.UpdateComposition(comp.Text + string(ev.Rune()))
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if r := []rune(comp.Text); len(r) > 0 {
			ed.UpdateComposition(string(r[:len(r)-1]))
		} else {
			a.cancelCompose()
		}
		return true
	case tcell.KeyEnter:
		ed.CommitCurrentComposition()
		a.composing = false
		return true
	case tcell.KeyEscape:
		a.cancelCompose()
		return true
	}

	ed.CommitCurrentComposition()
	a.composing = false
	return false
}

func (a *Application) cancelCompose() {
	a.editor.CancelComposition()
	a.composing = false
}

// insert types text over the selection and keeps the caret in view.
func (a *Application) insert(text string) {
	a.editor.InsertText(text)
	a.follow = true
}

func (a *Application) copySelection() bool {
	text := a.editor.SelectedText()
	if text == "" {
		return false
	}
	a.clipboard = text
	return true
}

func (a *Application) pageRows() int {
	if a.screen == nil {
		return 1
	}
	_, h := a.screen.Size()
	return max(h-2, 1)
}

// keyOf reports ctrl-letter presses as control keys, whichever way the
// terminal encodes them.
func keyOf(ev *tcell.EventKey) tcell.Key {
	k := ev.Key()
	if k == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 {
		if r := unicode.ToLower(ev.Rune()); r >= 'a' && r <= 'z' {
			return tcell.KeyCtrlA + tcell.Key(r-'a')
		}
	}
	return k
}
