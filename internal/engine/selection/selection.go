// Package selection provides the anchor/focus text selection value.
package selection

import (
	"fmt"

	"github.com/dshills/textcore/internal/engine/coord"
)

// Selection is an immutable selection. The anchor is the end fixed by the
// gesture that created it; the focus is the end that moves. When they are
// equal the selection is a caret.
type Selection struct {
	anchor coord.Offset
	focus  coord.Offset
}

// New creates a selection from anchor to focus.
func New(anchor, focus coord.Offset) Selection {
	return Selection{anchor: anchor, focus: focus}
}

// Caret creates a collapsed selection at off.
func Caret(off coord.Offset) Selection {
	return New(off, off)
}

// All selects the whole text of the given length.
func All(length coord.Offset) Selection {
	return New(0, length)
}

// FromRange creates a forward selection covering r.
func FromRange(r coord.Range) Selection {
	return New(r.Start, r.End)
}

// Anchor returns the fixed end.
func (s Selection) Anchor() coord.Offset { return s.anchor }

// Focus returns the moving end, where the caret is drawn.
func (s Selection) Focus() coord.Offset { return s.focus }

// Start returns the lower bound.
func (s Selection) Start() coord.Offset {
	return coord.MinOffset(s.anchor, s.focus)
}

// End returns the upper bound.
func (s Selection) End() coord.Offset {
	return coord.MaxOffset(s.anchor, s.focus)
}

// IsEmpty returns true if the selection is a caret.
func (s Selection) IsEmpty() bool {
	return s.anchor == s.focus
}

// IsReversed returns true if the focus precedes the anchor.
func (s Selection) IsReversed() bool {
	return s.focus < s.anchor
}

// Len returns the number of selected code units.
func (s Selection) Len() int {
	return int(s.End() - s.Start())
}

// Range returns the selection as an ordered range.
func (s Selection) Range() coord.Range {
	return coord.Range{Start: s.Start(), End: s.End()}
}

// CollapseToFocus returns a caret at the focus.
func (s Selection) CollapseToFocus() Selection {
	return Caret(s.focus)
}

// CollapseToAnchor returns a caret at the anchor.
func (s Selection) CollapseToAnchor() Selection {
	return Caret(s.anchor)
}

// CollapseToStart returns a caret at the start.
func (s Selection) CollapseToStart() Selection {
	return Caret(s.Start())
}

// CollapseToEnd returns a caret at the end.
func (s Selection) CollapseToEnd() Selection {
	return Caret(s.End())
}

// ExtendTo moves the focus to off, keeping the anchor.
func (s Selection) ExtendTo(off coord.Offset) Selection {
	return New(s.anchor, off)
}

// Contains returns true if off is within [start, end).
// A caret contains nothing.
func (s Selection) Contains(off coord.Offset) bool {
	return off >= s.Start() && off < s.End()
}

// Clamp returns the selection with both ends clamped to [0, length].
func (s Selection) Clamp(length coord.Offset) Selection {
	return New(s.anchor.Clamp(length), s.focus.Clamp(length))
}

// Equal reports whether two selections have the same anchor and focus.
func (s Selection) Equal(o Selection) bool {
	return s.anchor == o.anchor && s.focus == o.focus
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Caret(%d)", s.focus)
	}
	return fmt.Sprintf("Selection(%d->%d)", s.anchor, s.focus)
}
