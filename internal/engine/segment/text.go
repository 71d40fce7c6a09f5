package segment

import (
	"unicode/utf8"

	"github.com/dshills/textcore/internal/engine/coord"
)

// RuneUnits returns the number of UTF-16 code units needed for r.
func RuneUnits(r rune) int {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}
	return 1
}

// Len returns the length of s in UTF-16 code units.
func Len(s string) coord.Offset {
	n := 0
	for _, r := range s {
		n += RuneUnits(r)
	}
	return coord.Offset(n)
}

// ByteIndex converts a UTF-16 offset into a byte index into s.
// Offsets past the end clamp to len(s). An offset that falls between the
// two halves of a surrogate pair resolves to the start of that rune.
func ByteIndex(s string, off coord.Offset) int {
	if off <= 0 {
		return 0
	}
	units := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		n := RuneUnits(r)
		if units+n > int(off) {
			return i
		}
		units += n
		i += size
		if units == int(off) {
			return i
		}
	}
	return len(s)
}

// Slice returns the text between two UTF-16 offsets.
func Slice(s string, start, end coord.Offset) string {
	if end < start {
		start, end = end, start
	}
	return s[ByteIndex(s, start):ByteIndex(s, end)]
}

// Splice replaces the text in r with insert.
func Splice(s string, r coord.Range, insert string) string {
	lo := ByteIndex(s, r.Start)
	hi := ByteIndex(s, r.End)
	if hi < lo {
		lo, hi = hi, lo
	}
	return s[:lo] + insert + s[hi:]
}
