package shaper

import "errors"

// Errors returned by shaping operations.
var (
	// ErrInvalidFontSize indicates a non-positive or non-finite font size.
	ErrInvalidFontSize = errors.New("invalid font size")

	// ErrInvalidLineHeight indicates a non-positive or non-finite line height.
	ErrInvalidLineHeight = errors.New("invalid line height")

	// ErrFontNotFound indicates a font id that was never registered.
	ErrFontNotFound = errors.New("font not found")

	// ErrNoFonts indicates a font shaper with no registered fonts.
	ErrNoFonts = errors.New("no fonts registered")
)
