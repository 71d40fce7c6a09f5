package config

import (
	"github.com/dshills/textcore/internal/engine/document"
	"github.com/dshills/textcore/internal/engine/history"
	"github.com/dshills/textcore/internal/engine/shaper"
)

// Config is the complete configuration.
type Config struct {
	Font   FontConfig   `toml:"font" yaml:"font"`
	Layout LayoutConfig `toml:"layout" yaml:"layout"`
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// FontConfig selects the font.
type FontConfig struct {
	// Family is the font family name.
	Family string `toml:"family" yaml:"family"`

	// Size is the font size in pixels.
	Size float64 `toml:"size" yaml:"size"`

	// LineHeight is the line height in pixels. Zero means 1.4 times Size.
	LineHeight float64 `toml:"line_height" yaml:"line_height"`

	// Weight is the CSS font weight (100-900). Zero means 400.
	Weight int `toml:"weight" yaml:"weight"`

	// Italic selects an italic face.
	Italic bool `toml:"italic" yaml:"italic"`

	// Stretch is a CSS font-stretch keyword.
	Stretch string `toml:"stretch" yaml:"stretch"`

	// Path is a TrueType or OpenType file registered under Family.
	Path string `toml:"path" yaml:"path"`
}

// LayoutConfig controls line layout.
type LayoutConfig struct {
	// Shaper is "cell" for fixed-width terminal cells or "font" for
	// outline fonts.
	Shaper string `toml:"shaper" yaml:"shaper"`

	// MaxWidth is the wrap width in pixels. Zero disables wrapping.
	MaxWidth float64 `toml:"max_width" yaml:"max_width"`

	// Multiline allows hard line breaks.
	Multiline bool `toml:"multiline" yaml:"multiline"`

	// TabWidth is the distance between tab stops in cells or spaces.
	TabWidth int `toml:"tab_width" yaml:"tab_width"`

	// CellRatio is the cell width as a fraction of the font size.
	CellRatio float64 `toml:"cell_ratio" yaml:"cell_ratio"`
}

// EditorConfig controls editing behavior.
type EditorConfig struct {
	// HistoryLimit is the maximum number of undo entries.
	HistoryLimit int `toml:"history_limit" yaml:"history_limit"`

	// Segmentation is "unicode" for grapheme clusters or "codepoint".
	Segmentation string `toml:"segmentation" yaml:"segmentation"`

	// Normalization is "", "nfc", "nfd", "nfkc" or "nfkd".
	Normalization string `toml:"normalization" yaml:"normalization"`

	// CacheSize is the number of laid out documents kept.
	CacheSize int `toml:"cache_size" yaml:"cache_size"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `toml:"level" yaml:"level"`

	// Format is "console" or "json".
	Format string `toml:"format" yaml:"format"`

	// File is the log file. Empty means standard error.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Font: FontConfig{
			Family: shaper.DefaultFamily,
			Size:   14,
		},
		Layout: LayoutConfig{
			Shaper:    "cell",
			Multiline: true,
			TabWidth:  4,
			CellRatio: 0.6,
		},
		Editor: EditorConfig{
			HistoryLimit: history.DefaultLimit,
			Segmentation: "unicode",
			CacheSize:    document.DefaultCacheSize,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
