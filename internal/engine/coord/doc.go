// Package coord defines the three position spaces used by the text core.
//
// The spaces are deliberately distinct types:
//
//   - Offset: an absolute position in the text, counted in UTF-16 code units
//   - Position: a 0-based line/column pair, only meaningful for one document
//   - Point: a pixel coordinate relative to the document's local origin
//
// Conversions between them live on document.Document, never here; this
// package only provides the value types and their arithmetic-free helpers.
package coord
