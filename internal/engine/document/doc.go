// Package document builds immutable, laid out text documents from shaper
// output and answers every coordinate question about them.
//
// A Document addresses text in UTF-16 code units (coord.Offset). It is
// created once per text and parameter combination and never mutated; any
// change produces a new Document through a single call into the shaper.
//
// Coordinate spaces:
//
//   - coord.Offset: absolute position in the text
//   - coord.Position: line and column, derived from the document's lines
//   - coord.Point: pixels relative to the document origin
//
// All queries clamp out of range input. Shaping failures produce a
// single-line fallback layout with an estimated width, so queries stay total.
package document
