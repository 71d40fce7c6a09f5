package editor

import (
	"github.com/dshills/textcore/internal/engine/coord"
	"github.com/dshills/textcore/internal/engine/document"
	"github.com/dshills/textcore/internal/engine/segment"
)

// Composition is an in-progress IME input. [Start, End) is the committed
// text it replaces; Text is shown in its place but not yet committed.
type Composition struct {
	Start coord.Offset
	End   coord.Offset
	Text  string
}

// Range returns the replaced range of the committed text.
func (c Composition) Range() coord.Range {
	return coord.Range{Start: c.Start, End: c.End}
}

// composition is the optional composition state.
type composition struct {
	active  bool
	value   Composition
	display *document.Document
}

// Composition returns the active composition, if any.
func (e *Editor) Composition() (Composition, bool) {
	return e.comp.value, e.comp.active
}

// IsComposing reports whether a composition is active.
func (e *Editor) IsComposing() bool {
	return e.comp.active
}

// BeginComposition starts a composition replacing the current selection.
// A composition already in progress is discarded.
func (e *Editor) BeginComposition() {
	if e.comp.active {
		e.log.Debug("discarding composition %q", e.comp.value.Text)
	}
	r := e.sel.Range()
	e.comp = composition{
		active: true,
		value:  Composition{Start: r.Start, End: r.End},
	}
	e.hasPreferred = false
	e.rebuildDisplay()
}

// UpdateComposition changes the composition text shown in the display. The
// committed text is unchanged. Without an active composition one is
// started first.
func (e *Editor) UpdateComposition(text string) {
	if !e.comp.active {
		e.BeginComposition()
	}
	e.comp.value.Text = e.prepare(text)
	e.rebuildDisplay()
}

// CommitComposition replaces the composition range with text as one
// mutation. Without an active composition text is inserted at the
// selection.
func (e *Editor) CommitComposition(text string) {
	if !e.comp.active {
		e.InsertText(text)
		return
	}
	r := e.comp.value.Range()
	e.log.Debug("commit composition over %s", r)
	e.replace(r, e.prepare(text))
}

// CommitCurrentComposition commits the text currently shown by the
// composition. It does nothing without an active composition.
func (e *Editor) CommitCurrentComposition() {
	if e.comp.active {
		e.CommitComposition(e.comp.value.Text)
	}
}

// CancelComposition discards the composition without changing the text.
func (e *Editor) CancelComposition() {
	if !e.comp.active {
		return
	}
	e.log.Debug("cancel composition %q", e.comp.value.Text)
	e.endComposition()
}

func (e *Editor) endComposition() {
	e.comp = composition{}
}

// rebuildDisplay lays out the text with the composition spliced in.
func (e *Editor) rebuildDisplay() {
	if !e.comp.active {
		e.comp.display = nil
		return
	}
	e.comp.display = e.builder.Build(e.DisplayText(), e.params)
}

// DisplayText returns the text as shown, with the composition text in
// place of the range it replaces.
func (e *Editor) DisplayText() string {
	if !e.comp.active {
		return e.doc.Text()
	}
	c := e.comp.value
	return segment.Splice(e.doc.Text(), c.Range(), c.Text)
}

// DisplayDocument returns the document as shown. It equals Document
// unless a composition is active.
func (e *Editor) DisplayDocument() *document.Document {
	if e.comp.active && e.comp.display != nil {
		return e.comp.display
	}
	return e.doc
}

// displayCaret returns the caret offset within the display document.
func (e *Editor) displayCaret() coord.Offset {
	if e.comp.active {
		c := e.comp.value
		return c.Start + segment.Len(c.Text)
	}
	return e.sel.Focus()
}
