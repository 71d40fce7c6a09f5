// Package shaper is the boundary to the text shaping engine.
//
// The document model does not shape text itself; it calls a Shaper once per
// document build and consumes the positioned glyphs it returns. Glyph spans
// are reported in byte offsets into the UTF-8 text, and line y-coordinates
// are baseline-relative. Both are normalized by the consumer.
//
// Two implementations are provided:
//
//   - FontShaper lays text out with real OpenType fonts through
//     golang.org/x/image/font. Fonts are registered by family and style;
//     the Go Regular face is always available as the default.
//   - CellShaper lays text out on a monospace cell grid using terminal
//     display widths from github.com/mattn/go-runewidth. Its advances are
//     exact multiples of the cell width, which makes it deterministic.
//
// Both emit one glyph per extended grapheme cluster and break lines at
// the opportunities reported by github.com/rivo/uniseg. Soft wrapping is
// applied only when Params.MaxWidth is finite and positive; hard line
// breaks always start a new line.
//
// Shapers serialize their own mutable state, so a single Shaper may be
// shared by several documents.
package shaper
