package segment

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/textcore/internal/engine/coord"
)

// GraphemeSegmenter yields the grapheme boundaries of a text.
// The returned slice is sorted, starts with 0 and ends with Len(text).
type GraphemeSegmenter interface {
	Boundaries(text string) []coord.Offset
}

// Unicode segments text into extended grapheme clusters.
type Unicode struct{}

// Boundaries implements GraphemeSegmenter.
func (Unicode) Boundaries(text string) []coord.Offset {
	bounds := make([]coord.Offset, 1, len(text)+1)
	pos := coord.Offset(0)
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		pos += Len(cluster)
		bounds = append(bounds, pos)
	}
	return bounds
}

// CodePoint reports a boundary after every code point.
type CodePoint struct{}

// Boundaries implements GraphemeSegmenter.
func (CodePoint) Boundaries(text string) []coord.Offset {
	bounds := make([]coord.Offset, 1, len(text)+1)
	pos := coord.Offset(0)
	for _, r := range text {
		pos += coord.Offset(RuneUnits(r))
		bounds = append(bounds, pos)
	}
	return bounds
}

// Default is the segmenter used by the package-level helpers.
var Default GraphemeSegmenter = Unicode{}

// ByName returns the segmenter registered under name.
// Recognized names are "unicode" (or empty) and "codepoint".
func ByName(name string) (GraphemeSegmenter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "unicode", "grapheme":
		return Unicode{}, nil
	case "codepoint", "code-point", "fallback":
		return CodePoint{}, nil
	}
	return nil, fmt.Errorf("unknown segmenter %q", name)
}
