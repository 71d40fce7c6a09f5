package editor

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/dshills/textcore/internal/engine/coord"
	"github.com/dshills/textcore/internal/engine/document"
	"github.com/dshills/textcore/internal/engine/history"
	"github.com/dshills/textcore/internal/engine/segment"
	"github.com/dshills/textcore/internal/engine/selection"
	"github.com/dshills/textcore/internal/engine/shaper"
	"github.com/dshills/textcore/internal/logging"
)

// Editor is the text editing controller.
type Editor struct {
	builder *document.Builder
	params  document.Params
	doc     *document.Document
	scan    *segment.Scanner
	seg     segment.GraphemeSegmenter

	sel      selection.Selection
	affinity coord.Affinity

	comp    composition
	gesture gestureState

	hist         *history.History
	preferredX   float64
	hasPreferred bool

	multiline bool
	focused   bool
	normalize bool
	normForm  norm.Form
	log       *logging.Logger

	// Creation-only settings
	initText     string
	historyLimit int
	cacheSize    int
}

// New creates an editor that lays out text with sh.
func New(sh shaper.Shaper, opts ...Option) *Editor {
	e := &Editor{
		params:       document.DefaultParams(),
		seg:          segment.Default,
		multiline:    true,
		log:          logging.Nop(),
		historyLimit: DefaultHistoryLimit,
		cacheSize:    DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithComponent("editor")
	if e.builder == nil {
		e.builder = document.NewBuilder(sh,
			document.WithCache(document.NewCache(e.cacheSize)),
			document.WithLogger(e.log))
	}
	e.hist = history.New(e.historyLimit)

	text := e.prepare(e.initText)
	e.initText = ""
	e.doc = e.builder.Build(text, e.params)
	e.sel = selection.Caret(e.doc.Len())
	return e
}

// Document returns the committed document.
func (e *Editor) Document() *document.Document { return e.doc }

// Text returns the committed text.
func (e *Editor) Text() string { return e.doc.Text() }

// Selection returns the current selection.
func (e *Editor) Selection() selection.Selection { return e.sel }

// Affinity returns the caret affinity at soft wrap boundaries.
func (e *Editor) Affinity() coord.Affinity { return e.affinity }

// Params returns the layout parameters.
func (e *Editor) Params() document.Params { return e.params }

// Multiline reports whether the editor accepts hard line breaks.
func (e *Editor) Multiline() bool { return e.multiline }

// IsFocused reports whether the host has focused the editor.
func (e *Editor) IsFocused() bool { return e.focused }

// CanUndo returns true if undo is available.
func (e *Editor) CanUndo() bool { return e.hist.CanUndo() }

// CanRedo returns true if redo is available.
func (e *Editor) CanRedo() bool { return e.hist.CanRedo() }

// UndoCount returns the number of undo entries.
func (e *Editor) UndoCount() int { return e.hist.UndoCount() }

// SetFocused records focus. Losing focus cancels an open composition and
// ends a pointer gesture.
func (e *Editor) SetFocused(focused bool) {
	e.focused = focused
	if !focused {
		e.CancelComposition()
		e.EndSelection()
	}
}

// SetParams changes the layout parameters. Text, selection and history
// are kept.
func (e *Editor) SetParams(p document.Params) {
	e.params = p
	e.doc = e.builder.Build(e.doc.Text(), p)
	e.hasPreferred = false
	e.rebuildDisplay()
}

// SetShaper switches to a new shaper with a fresh layout cache. Text,
// selection and history are kept. Editors sharing a builder stop sharing
// it.
func (e *Editor) SetShaper(sh shaper.Shaper) {
	e.builder = document.NewBuilder(sh,
		document.WithCache(document.NewCache(e.cacheSize)),
		document.WithLogger(e.log))
	e.SetParams(e.params)
}

// SetMaxWidth changes the wrap width.
func (e *Editor) SetMaxWidth(w float64) {
	p := e.params
	p.MaxWidth = w
	e.SetParams(p)
}

// SetFontSize changes the font size.
func (e *Editor) SetFontSize(size float64) {
	p := e.params
	p.FontSize = size
	e.SetParams(p)
}

// apply performs a mutation: record the previous state, rebuild the
// document, set the selection and clear transient state. Every text change
// goes through here.
func (e *Editor) apply(text string, sel selection.Selection, aff coord.Affinity) {
	e.hist.Push(history.Snapshot{Text: e.doc.Text(), Selection: e.sel})
	e.restore(text, sel)
	e.affinity = aff
	e.endComposition()
	e.hasPreferred = false
}

// restore replaces text and selection without touching history.
func (e *Editor) restore(text string, sel selection.Selection) {
	if text != e.doc.Text() {
		e.doc = e.builder.Build(text, e.params)
	}
	e.sel = sel.Clamp(e.doc.Len())
}

// replace swaps the selected text for insert and collapses the caret
// after it.
func (e *Editor) replace(r coord.Range, insert string) {
	text := segment.Splice(e.doc.Text(), r, insert)
	caret := r.Start + segment.Len(insert)
	e.apply(text, selection.Caret(caret), coord.Before)
}

// scanner returns the boundary scanner for the committed text.
func (e *Editor) scanner() *segment.Scanner {
	if e.scan == nil || e.scan.Text() != e.doc.Text() {
		e.scan = segment.NewScanner(e.seg, e.doc.Text())
	}
	return e.scan
}

// snapGrapheme moves off to the nearest grapheme boundary.
func (e *Editor) snapGrapheme(off coord.Offset) coord.Offset {
	s := e.scanner()
	off = off.Clamp(s.Len())
	if s.IsBoundary(off) {
		return off
	}
	prev, next := s.PrevGrapheme(off), s.NextGrapheme(off)
	if next-off < off-prev {
		return next
	}
	return prev
}

var lineBreaks = strings.NewReplacer(
	"\r\n", " ", "\n", " ", "\r", " ", "\v", " ", "\f", " ",
	"\u0085", " ", "\u2028", " ", "\u2029", " ",
)

// prepare normalizes incoming text and flattens line breaks for
// single-line editors.
func (e *Editor) prepare(s string) string {
	if e.normalize {
		s = e.normForm.String(s)
	}
	if !e.multiline {
		s = lineBreaks.Replace(s)
	}
	return s
}
