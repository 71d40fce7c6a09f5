// Package segment provides grapheme-cluster and word boundary detection
// over raw text, addressed in UTF-16 code units.
//
// Grapheme boundaries come from a GraphemeSegmenter. Unicode implements
// UAX #29 extended grapheme clusters using github.com/rivo/uniseg;
// CodePoint is the degraded fallback that reports one boundary per code
// point, which is wrong for combining marks and multi-code-point emoji but
// never fails.
//
// Word classification is ASCII-only: a grapheme is part of a word iff it
// starts with [0-9A-Za-z]. Every other grapheme is either whitespace or
// punctuation. Non-Latin letters are therefore punctuation, which makes
// each of them its own word for navigation purposes.
//
// A Scanner computes the boundaries of one text once and answers every
// navigation query against them:
//
//	s := segment.NewScanner(segment.Unicode{}, "foo   bar-baz")
//	s.WordBoundaryRight(0) // 6
//	s.WordStart(9)         // 6
//	s.WordEnd(9)           // 9
package segment
