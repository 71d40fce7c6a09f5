package coord

import "fmt"

// Position is a 0-based line and column. Column is counted in UTF-16 code
// units from the start of the line.
type Position struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// Point is a pixel coordinate relative to the document origin.
type Point struct {
	X float64
	Y float64
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y)
}

// Rect is an axis-aligned rectangle in document pixels.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Affinity tells which side of a boundary offset a hit belongs to.
type Affinity uint8

const (
	// Before associates the offset with the character preceding it.
	Before Affinity = iota
	// After associates the offset with the character following it.
	After
)

// String returns the affinity name.
func (a Affinity) String() string {
	if a == After {
		return "after"
	}
	return "before"
}
