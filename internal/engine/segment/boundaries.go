package segment

import "github.com/dshills/textcore/internal/engine/coord"

// The functions below segment text with Default on every call. Callers
// issuing many queries against the same text should build a Scanner.

// PrevGrapheme returns the grapheme boundary strictly before off.
func PrevGrapheme(text string, off coord.Offset) coord.Offset {
	return NewScanner(Default, text).PrevGrapheme(off)
}

// NextGrapheme returns the grapheme boundary strictly after off.
func NextGrapheme(text string, off coord.Offset) coord.Offset {
	return NewScanner(Default, text).NextGrapheme(off)
}

// WordBoundaryLeft returns the target of a word-wise move left from off.
func WordBoundaryLeft(text string, off coord.Offset) coord.Offset {
	return NewScanner(Default, text).WordBoundaryLeft(off)
}

// WordBoundaryRight returns the target of a word-wise move right from off.
func WordBoundaryRight(text string, off coord.Offset) coord.Offset {
	return NewScanner(Default, text).WordBoundaryRight(off)
}

// WordStart returns the start of the word containing off.
func WordStart(text string, off coord.Offset) coord.Offset {
	return NewScanner(Default, text).WordStart(off)
}

// WordEnd returns the end of the word containing off.
func WordEnd(text string, off coord.Offset) coord.Offset {
	return NewScanner(Default, text).WordEnd(off)
}
