package shaper

import (
	"fmt"
	"math"
	"strings"
)

// FontID identifies a registered font face.
type FontID uint32

// Slant is the posture of a font.
type Slant uint8

const (
	SlantNormal Slant = iota
	SlantItalic
	SlantOblique
)

// ParseSlant parses a CSS font-style keyword.
func ParseSlant(s string) Slant {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "italic":
		return SlantItalic
	case "oblique":
		return SlantOblique
	}
	return SlantNormal
}

// String returns the CSS keyword for the slant.
func (s Slant) String() string {
	switch s {
	case SlantItalic:
		return "italic"
	case SlantOblique:
		return "oblique"
	}
	return "normal"
}

// Stretch is the width class of a font, 1 (ultra-condensed) through
// 9 (ultra-expanded). The zero value means normal.
type Stretch uint8

const (
	StretchUltraCondensed Stretch = iota + 1
	StretchExtraCondensed
	StretchCondensed
	StretchSemiCondensed
	StretchNormal
	StretchSemiExpanded
	StretchExpanded
	StretchExtraExpanded
	StretchUltraExpanded
)

var stretchNames = []string{
	"ultra-condensed", "extra-condensed", "condensed", "semi-condensed", "normal",
	"semi-expanded", "expanded", "extra-expanded", "ultra-expanded",
}

// ParseStretch parses a CSS font-stretch keyword. Unknown keywords are normal.
func ParseStretch(s string) Stretch {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range stretchNames {
		if name == s {
			return Stretch(i + 1)
		}
	}
	return StretchNormal
}

// String returns the CSS keyword for the stretch.
func (s Stretch) String() string {
	if s == 0 || int(s) > len(stretchNames) {
		return "normal"
	}
	return stretchNames[s-1]
}

// Style selects a face within a font family.
type Style struct {
	Weight  int // CSS weight, 100-900; 0 means 400
	Slant   Slant
	Stretch Stretch
}

func (s Style) weight() int {
	if s.Weight <= 0 {
		return 400
	}
	return s.Weight
}

func (s Style) stretch() Stretch {
	if s.Stretch == 0 {
		return StretchNormal
	}
	return s.Stretch
}

// Params describes one shaping request.
type Params struct {
	Text       string
	FontSize   float64
	LineHeight float64
	FontFamily string
	// MaxWidth enables soft wrapping when finite and positive.
	MaxWidth float64
	Style    *Style
}

// Wrapped reports whether the request asks for soft wrapping.
func (p Params) Wrapped() bool {
	return p.MaxWidth > 0 && !math.IsInf(p.MaxWidth, 1)
}

func (p Params) style() Style {
	if p.Style == nil {
		return Style{}
	}
	return *p.Style
}

// validate checks the numeric parameters.
func (p Params) validate() error {
	if p.FontSize <= 0 || math.IsNaN(p.FontSize) || math.IsInf(p.FontSize, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFontSize, p.FontSize)
	}
	if p.LineHeight <= 0 || math.IsNaN(p.LineHeight) || math.IsInf(p.LineHeight, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidLineHeight, p.LineHeight)
	}
	return nil
}

// Glyph is one shaped glyph. ByteStart and ByteEnd delimit the text bytes
// the glyph covers; one glyph may cover several characters.
type Glyph struct {
	GlyphID   uint32
	FontID    FontID
	X         float64
	Advance   float64
	ByteStart int
	ByteEnd   int
}

// Line is one laid out line. Y is the baseline position. ByteStart and
// ByteEnd delimit the text bytes of the line, including a terminating
// hard line break.
type Line struct {
	Glyphs    []Glyph
	Width     float64
	Y         float64
	Height    float64
	ByteStart int
	ByteEnd   int
}

// Layout is the result of shaping a text.
type Layout struct {
	Lines  []Line
	Width  float64
	Height float64
}

// Shaper turns text into positioned glyph lines.
type Shaper interface {
	Shape(p Params) (Layout, error)
}

// Measure returns the extent of the shaped text without building a document.
func Measure(s Shaper, p Params) (width, height float64, err error) {
	l, err := s.Shape(p)
	if err != nil {
		return 0, 0, err
	}
	return l.Width, l.Height, nil
}
