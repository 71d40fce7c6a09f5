package editor

import (
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/textcore/internal/engine/document"
	"github.com/dshills/textcore/internal/engine/history"
	"github.com/dshills/textcore/internal/engine/segment"
	"github.com/dshills/textcore/internal/engine/shaper"
	"github.com/dshills/textcore/internal/logging"
)

// Default configuration values.
const (
	DefaultHistoryLimit = history.DefaultLimit
	DefaultCacheSize    = document.DefaultCacheSize
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithText sets the initial text. The caret starts at its end.
func WithText(text string) Option {
	return func(e *Editor) {
		e.initText = text
	}
}

// WithParams sets all layout parameters.
func WithParams(p document.Params) Option {
	return func(e *Editor) {
		e.params = p
	}
}

// WithFontSize sets the font size.
func WithFontSize(size float64) Option {
	return func(e *Editor) {
		if size > 0 {
			e.params.FontSize = size
		}
	}
}

// WithLineHeight sets the line height.
func WithLineHeight(h float64) Option {
	return func(e *Editor) {
		if h > 0 {
			e.params.LineHeight = h
		}
	}
}

// WithFontFamily sets the font family.
func WithFontFamily(family string) Option {
	return func(e *Editor) {
		e.params.FontFamily = family
	}
}

// WithMaxWidth sets the wrap width. Zero or +Inf disables wrapping.
func WithMaxWidth(w float64) Option {
	return func(e *Editor) {
		e.params.MaxWidth = w
	}
}

// WithStyle sets the font style.
func WithStyle(s shaper.Style) Option {
	return func(e *Editor) {
		e.params.Style = &s
	}
}

// WithMultiline allows hard line breaks in the text. Single-line editors
// replace inserted line breaks with spaces.
func WithMultiline(multiline bool) Option {
	return func(e *Editor) {
		e.multiline = multiline
	}
}

// WithHistoryLimit sets the maximum number of undo entries.
func WithHistoryLimit(limit int) Option {
	return func(e *Editor) {
		if limit > 0 {
			e.historyLimit = limit
		}
	}
}

// WithSegmenter sets the grapheme segmenter used for navigation and
// deletion.
func WithSegmenter(seg segment.GraphemeSegmenter) Option {
	return func(e *Editor) {
		if seg != nil {
			e.seg = seg
		}
	}
}

// WithNormalization normalizes inserted text to the given form.
func WithNormalization(f norm.Form) Option {
	return func(e *Editor) {
		e.normalize = true
		e.normForm = f
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithCacheSize sets the size of the layout cache. Zero disables caching.
// Ignored when WithBuilder is given.
func WithCacheSize(n int) Option {
	return func(e *Editor) {
		e.cacheSize = n
	}
}

// WithBuilder shares a document builder between editors.
func WithBuilder(b *document.Builder) Option {
	return func(e *Editor) {
		e.builder = b
	}
}
