package config

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/dshills/textcore/internal/engine/document"
	"github.com/dshills/textcore/internal/engine/editor"
	"github.com/dshills/textcore/internal/engine/segment"
	"github.com/dshills/textcore/internal/engine/shaper"
	"github.com/dshills/textcore/internal/logging"
)

// Style returns the font style described by the font section.
func (c *Config) Style() shaper.Style {
	s := shaper.Style{
		Weight:  c.Font.Weight,
		Stretch: shaper.ParseStretch(c.Font.Stretch),
	}
	if c.Font.Italic {
		s.Slant = shaper.SlantItalic
	}
	return s
}

// Params returns the document layout parameters.
func (c *Config) Params() document.Params {
	lh := c.Font.LineHeight
	if lh <= 0 {
		lh = math.Round(c.Font.Size * 1.4)
	}
	maxWidth := c.Layout.MaxWidth
	if maxWidth <= 0 {
		maxWidth = math.Inf(1)
	}
	style := c.Style()
	return document.Params{
		FontSize:   c.Font.Size,
		LineHeight: lh,
		FontFamily: c.Font.Family,
		MaxWidth:   maxWidth,
		Style:      &style,
	}
}

// NewShaper creates the configured shaper. A font path is registered under
// the configured family.
func (c *Config) NewShaper() (shaper.Shaper, error) {
	switch c.Layout.Shaper {
	case "", "cell":
		return shaper.NewCellShaper(
			shaper.WithCellRatio(c.Layout.CellRatio),
			shaper.WithTabWidth(c.Layout.TabWidth),
		), nil
	case "font":
		fs, err := shaper.NewFontShaper()
		if err != nil {
			return nil, err
		}
		fs.SetTabWidth(c.Layout.TabWidth)
		if c.Font.Path != "" {
			data, err := os.ReadFile(c.Font.Path)
			if err != nil {
				return nil, fmt.Errorf("reading font %s: %w", c.Font.Path, err)
			}
			if _, err := fs.RegisterFont(c.Font.Family, c.Style(), data); err != nil {
				return nil, fmt.Errorf("registering font %s: %w", c.Font.Path, err)
			}
		}
		return fs, nil
	}
	return nil, fmt.Errorf("%w: unknown shaper %q", ErrValidationFailed, c.Layout.Shaper)
}

// EditorOptions returns editor options for the configuration, followed by
// extra.
func (c *Config) EditorOptions(extra ...editor.Option) ([]editor.Option, error) {
	seg, err := segment.ByName(c.Editor.Segmentation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	opts := []editor.Option{
		editor.WithParams(c.Params()),
		editor.WithMultiline(c.Layout.Multiline),
		editor.WithHistoryLimit(c.Editor.HistoryLimit),
		editor.WithSegmenter(seg),
		editor.WithCacheSize(c.Editor.CacheSize),
	}
	form, ok, err := normalization(c.Editor.Normalization)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if ok {
		opts = append(opts, editor.WithNormalization(form))
	}
	return append(opts, extra...), nil
}

// normalization parses a normalization form name. The empty name means no
// normalization.
func normalization(name string) (norm.Form, bool, error) {
	switch strings.ToLower(name) {
	case "":
		return 0, false, nil
	case "nfc":
		return norm.NFC, true, nil
	case "nfd":
		return norm.NFD, true, nil
	case "nfkc":
		return norm.NFKC, true, nil
	case "nfkd":
		return norm.NFKD, true, nil
	}
	return 0, false, fmt.Errorf("unknown normalization form %q", name)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Logger creates the configured logger. The returned closer releases the
// log file, if any.
func (c *Config) Logger() (*logging.Logger, io.Closer, error) {
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if c.Log.File != "" {
		f, err := os.OpenFile(c.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out, closer = f, f
	}
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(c.Log.Level),
		Output: out,
		JSON:   c.Log.Format == "json",
	}), closer, nil
}
