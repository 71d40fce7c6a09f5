package coord

import "fmt"

// Offset is a position in the text measured in UTF-16 code units.
// Valid offsets for a text of length n are 0..n inclusive.
type Offset int

// OffsetOf converts a raw index into an Offset, clamping negatives to 0.
func OffsetOf(n int) Offset {
	if n < 0 {
		return 0
	}
	return Offset(n)
}

// Int returns the offset as a plain int.
func (o Offset) Int() int {
	return int(o)
}

// Clamp returns o limited to [0, max].
func (o Offset) Clamp(max Offset) Offset {
	if o < 0 {
		return 0
	}
	if o > max {
		return max
	}
	return o
}

// String returns a string representation of the offset.
func (o Offset) String() string {
	return fmt.Sprintf("@%d", int(o))
}

// MinOffset returns the smaller of two offsets.
func MinOffset(a, b Offset) Offset {
	if a < b {
		return a
	}
	return b
}

// MaxOffset returns the larger of two offsets.
func MaxOffset(a, b Offset) Offset {
	if a > b {
		return a
	}
	return b
}

// Range is a half-open span of offsets: [Start, End).
type Range struct {
	Start Offset
	End   Offset
}

// NewRange creates a range, swapping the ends if they are reversed.
func NewRange(start, end Offset) Range {
	if end < start {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// Len returns the length of the range in code units.
func (r Range) Len() int {
	return int(r.End - r.Start)
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if offset is within [Start, End).
func (r Range) Contains(offset Offset) bool {
	return offset >= r.Start && offset < r.End
}

// Overlaps returns true if this range overlaps with another range.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Intersect returns the intersection of two ranges, or an empty range if
// they don't overlap.
func (r Range) Intersect(other Range) Range {
	start := MaxOffset(r.Start, other.Start)
	end := MinOffset(r.End, other.End)
	if start >= end {
		return Range{Start: start, End: start}
	}
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", int(r.Start), int(r.End))
}
