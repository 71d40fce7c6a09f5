package segment

import (
	"sort"
	"unicode"
	"unicode/utf16"

	"github.com/dshills/textcore/internal/engine/coord"
)

// class is the word classification of a grapheme.
type class uint8

const (
	classSpace class = iota
	classWord
	classPunct
)

// Scanner answers grapheme and word boundary queries for one text.
// A Scanner is immutable once built and may be shared.
type Scanner struct {
	text   string
	units  []uint16
	bounds []coord.Offset
}

// NewScanner segments text with seg. A nil seg uses Default.
func NewScanner(seg GraphemeSegmenter, text string) *Scanner {
	if seg == nil {
		seg = Default
	}
	return &Scanner{
		text:   text,
		units:  utf16.Encode([]rune(text)),
		bounds: seg.Boundaries(text),
	}
}

// Text returns the scanned text.
func (s *Scanner) Text() string {
	return s.text
}

// Len returns the text length in UTF-16 code units.
func (s *Scanner) Len() coord.Offset {
	return coord.Offset(len(s.units))
}

// Boundaries returns the grapheme boundaries, including 0 and Len.
func (s *Scanner) Boundaries() []coord.Offset {
	return s.bounds
}

// IsBoundary reports whether off lies on a grapheme boundary.
func (s *Scanner) IsBoundary(off coord.Offset) bool {
	i := sort.Search(len(s.bounds), func(i int) bool { return s.bounds[i] >= off })
	return i < len(s.bounds) && s.bounds[i] == off
}

// PrevGrapheme returns the nearest boundary strictly before off, or 0.
func (s *Scanner) PrevGrapheme(off coord.Offset) coord.Offset {
	off = off.Clamp(s.Len())
	i := sort.Search(len(s.bounds), func(i int) bool { return s.bounds[i] >= off })
	if i == 0 {
		return 0
	}
	return s.bounds[i-1]
}

// NextGrapheme returns the nearest boundary strictly after off, or Len.
func (s *Scanner) NextGrapheme(off coord.Offset) coord.Offset {
	off = off.Clamp(s.Len())
	i := sort.Search(len(s.bounds), func(i int) bool { return s.bounds[i] > off })
	if i == len(s.bounds) {
		return s.Len()
	}
	return s.bounds[i]
}

// runeAt decodes the code point starting at off.
func (s *Scanner) runeAt(off coord.Offset) rune {
	i := int(off)
	if i < 0 || i >= len(s.units) {
		return unicode.ReplacementChar
	}
	u := rune(s.units[i])
	if utf16.IsSurrogate(u) && i+1 < len(s.units) {
		if r := utf16.DecodeRune(u, rune(s.units[i+1])); r != unicode.ReplacementChar {
			return r
		}
	}
	return u
}

func (s *Scanner) classAt(off coord.Offset) class {
	r := s.runeAt(off)
	switch {
	case IsWordChar(r):
		return classWord
	case unicode.IsSpace(r):
		return classSpace
	}
	return classPunct
}

// IsWordChar reports whether r counts as a word character.
// Only ASCII letters and digits qualify.
func IsWordChar(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// WordBoundaryRight returns the offset reached by a word-wise move right
// from off: the run of graphemes sharing off's word/non-word class is
// skipped, then any whitespace after it. Starting inside whitespace, the
// move stops at the first non-whitespace grapheme.
func (s *Scanner) WordBoundaryRight(off coord.Offset) coord.Offset {
	n := s.Len()
	pos := off.Clamp(n)
	if pos >= n {
		return n
	}
	start := s.classAt(pos)
	startWord := start == classWord
	for pos < n {
		c := s.classAt(pos)
		if (c == classWord) != startWord {
			break
		}
		if start == classSpace && c != classSpace {
			break
		}
		pos = s.NextGrapheme(pos)
	}
	for pos < n && s.classAt(pos) == classSpace {
		pos = s.NextGrapheme(pos)
	}
	return pos
}

// WordBoundaryLeft returns the offset reached by a word-wise move left
// from off: whitespace before off is skipped, then the run of graphemes
// sharing the class of the grapheme reached.
func (s *Scanner) WordBoundaryLeft(off coord.Offset) coord.Offset {
	pos := off.Clamp(s.Len())
	for pos > 0 && s.classAt(s.PrevGrapheme(pos)) == classSpace {
		pos = s.PrevGrapheme(pos)
	}
	if pos == 0 {
		return 0
	}
	startWord := s.classAt(s.PrevGrapheme(pos)) == classWord
	for pos > 0 {
		prev := s.PrevGrapheme(pos)
		c := s.classAt(prev)
		if c == classSpace || (c == classWord) != startWord {
			break
		}
		pos = prev
	}
	return pos
}

// WordStart returns the start of the word ending at or containing off.
// If the grapheme before off is not a word character, off is returned.
func (s *Scanner) WordStart(off coord.Offset) coord.Offset {
	pos := off.Clamp(s.Len())
	for pos > 0 {
		prev := s.PrevGrapheme(pos)
		if s.classAt(prev) != classWord {
			break
		}
		pos = prev
	}
	return pos
}

// WordEnd returns the end of the word starting at or containing off.
// If the grapheme at off is not a word character, off is returned.
func (s *Scanner) WordEnd(off coord.Offset) coord.Offset {
	n := s.Len()
	pos := off.Clamp(n)
	for pos < n && s.classAt(pos) == classWord {
		pos = s.NextGrapheme(pos)
	}
	return pos
}

// WordRange returns the span selected by a word-granularity gesture at off.
// Inside or touching a word it is the word; over whitespace it is the
// whole whitespace run; over anything else it is the single grapheme.
func (s *Scanner) WordRange(off coord.Offset) coord.Range {
	n := s.Len()
	off = off.Clamp(n)
	start, end := s.WordStart(off), s.WordEnd(off)
	if start < end {
		return coord.Range{Start: start, End: end}
	}
	if n == 0 {
		return coord.Range{}
	}
	at := off
	if at == n {
		at = s.PrevGrapheme(n)
	}
	if s.classAt(at) != classSpace {
		return coord.Range{Start: at, End: s.NextGrapheme(at)}
	}
	start, end = at, at
	for start > 0 && s.classAt(s.PrevGrapheme(start)) == classSpace {
		start = s.PrevGrapheme(start)
	}
	for end < n && s.classAt(end) == classSpace {
		end = s.NextGrapheme(end)
	}
	return coord.Range{Start: start, End: end}
}
