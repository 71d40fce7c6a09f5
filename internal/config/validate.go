package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/dshills/textcore/internal/engine/segment"
)

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if !positive(c.Font.Size) {
		add("font.size must be positive, got %v", c.Font.Size)
	}
	if c.Font.LineHeight < 0 || math.IsNaN(c.Font.LineHeight) || math.IsInf(c.Font.LineHeight, 0) {
		add("font.line_height must be zero or positive, got %v", c.Font.LineHeight)
	}
	if c.Font.Weight != 0 && (c.Font.Weight < 1 || c.Font.Weight > 1000) {
		add("font.weight must be between 1 and 1000, got %d", c.Font.Weight)
	}

	switch c.Layout.Shaper {
	case "cell", "font":
	default:
		add("layout.shaper must be \"cell\" or \"font\", got %q", c.Layout.Shaper)
	}
	if c.Layout.MaxWidth < 0 || math.IsNaN(c.Layout.MaxWidth) {
		add("layout.max_width must not be negative, got %v", c.Layout.MaxWidth)
	}
	if c.Layout.TabWidth < 1 {
		add("layout.tab_width must be at least 1, got %d", c.Layout.TabWidth)
	}
	if !positive(c.Layout.CellRatio) {
		add("layout.cell_ratio must be positive, got %v", c.Layout.CellRatio)
	}

	if c.Editor.HistoryLimit < 1 {
		add("editor.history_limit must be at least 1, got %d", c.Editor.HistoryLimit)
	}
	if _, err := segment.ByName(c.Editor.Segmentation); err != nil {
		add("editor.segmentation: %v", err)
	}
	if _, _, err := normalization(c.Editor.Normalization); err != nil {
		add("editor.normalization: %v", err)
	}
	if c.Editor.CacheSize < 0 {
		add("editor.cache_size must not be negative, got %d", c.Editor.CacheSize)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		add("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		add("log.format must be \"console\" or \"json\", got %q", c.Log.Format)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(problems, "; "))
	}
	return nil
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}
