package document

import (
	"math"

	"github.com/dshills/textcore/internal/engine/shaper"
)

// Params holds the layout parameters of a document.
type Params struct {
	FontSize   float64
	LineHeight float64
	FontFamily string
	// MaxWidth enables soft wrapping when finite and positive.
	MaxWidth float64
	Style    *shaper.Style
}

// DefaultParams returns 14px text on a 20px line without wrapping.
func DefaultParams() Params {
	return Params{
		FontSize:   14,
		LineHeight: 20,
		FontFamily: shaper.DefaultFamily,
		MaxWidth:   math.Inf(1),
	}
}

// Wrapped reports whether the parameters ask for soft wrapping.
func (p Params) Wrapped() bool {
	return p.MaxWidth > 0 && !math.IsInf(p.MaxWidth, 1)
}

// Equal reports whether two parameter sets describe the same layout.
func (p Params) Equal(o Params) bool {
	if p.FontSize != o.FontSize || p.LineHeight != o.LineHeight || p.FontFamily != o.FontFamily {
		return false
	}
	if p.Wrapped() != o.Wrapped() || (p.Wrapped() && p.MaxWidth != o.MaxWidth) {
		return false
	}
	switch {
	case p.Style == nil && o.Style == nil:
		return true
	case p.Style == nil || o.Style == nil:
		return false
	}
	return *p.Style == *o.Style
}

func (p Params) shape(text string) shaper.Params {
	sp := shaper.Params{
		Text:       text,
		FontSize:   p.FontSize,
		LineHeight: p.LineHeight,
		FontFamily: p.FontFamily,
		Style:      p.Style,
	}
	if p.Wrapped() {
		sp.MaxWidth = p.MaxWidth
	}
	return sp
}

// estimate is the per-character width used when no glyphs are available.
func (p Params) estimate() float64 {
	if p.FontSize <= 0 || math.IsNaN(p.FontSize) || math.IsInf(p.FontSize, 0) {
		return 0
	}
	return p.FontSize * 0.6
}

func (p Params) lineHeight() float64 {
	switch {
	case p.LineHeight > 0 && !math.IsInf(p.LineHeight, 0):
		return p.LineHeight
	case p.FontSize > 0 && !math.IsInf(p.FontSize, 0):
		return p.FontSize
	}
	return 0
}
