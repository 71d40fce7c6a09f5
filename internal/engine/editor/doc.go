// Package editor implements the text editing controller.
//
// An Editor owns one document, one selection, an optional IME composition,
// an optional pointer gesture and the undo history. It is the only way to
// change any of them:
//
//	ed := editor.New(shaper.NewCellShaper(), editor.WithText("hello"))
//	ed.InsertText(" world")
//	ed.MoveWordLeft(true)
//	ed.DeleteSelection()
//	ed.Undo()
//
// Every mutation records the state before it in the history, rebuilds the
// document through the shaper, collapses the selection to the edit point
// and clears the composition and the remembered vertical column.
//
// Edits are synchronous and the Editor is not safe for concurrent use.
package editor
