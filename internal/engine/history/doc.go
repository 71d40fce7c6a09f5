// Package history provides snapshot based undo/redo for the editor.
//
// A snapshot is the complete text and selection before a mutation. The
// editor pushes one snapshot before every mutating operation; undo and redo
// swap the current state with the top of the opposite stack:
//
//	h := history.New(100)
//	h.Push(history.Snapshot{Text: text, Selection: sel})
//	// ... mutate ...
//	prev, err := h.Undo(history.Snapshot{Text: newText, Selection: newSel})
//
// # Grouping
//
// Several mutations can be recorded as one undo unit:
//
//	h.BeginGroup("paste")
//	// ... multiple edits ...
//	h.EndGroup()
//
// Only the state before the first edit of a group is kept, so undo returns
// to the state before the whole group.
package history
