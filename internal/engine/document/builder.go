package document

import (
	"github.com/dshills/textcore/internal/engine/shaper"
	"github.com/dshills/textcore/internal/logging"
)

// Builder builds documents with one shaper, consulting a cache first.
type Builder struct {
	shaper shaper.Shaper
	cache  *Cache
	log    *logging.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithCache sets the document cache. A nil cache disables caching.
func WithCache(c *Cache) BuilderOption {
	return func(b *Builder) {
		b.cache = c
	}
}

// WithLogger sets the logger used to report shaping failures.
func WithLogger(l *logging.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBuilder creates a builder around sh with a default sized cache.
func NewBuilder(sh shaper.Shaper, opts ...BuilderOption) *Builder {
	b := &Builder{
		shaper: sh,
		cache:  NewCache(DefaultCacheSize),
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Shaper returns the builder's shaper.
func (b *Builder) Shaper() shaper.Shaper { return b.shaper }

// Cache returns the builder's cache, which may be nil.
func (b *Builder) Cache() *Cache { return b.cache }

// Build returns the document for text laid out with p. Fallback layouts
// are not cached, so a later call retries the shaper.
func (b *Builder) Build(text string, p Params) *Document {
	if b.cache != nil {
		if doc, ok := b.cache.Get(text, p); ok {
			return doc
		}
	}
	doc, err := build(b.shaper, text, p)
	if err != nil {
		b.log.WithError(err).Warn("shaping failed, using estimated layout for %d chars", doc.Len())
		return doc
	}
	if b.cache != nil {
		if n := b.cache.Put(doc); n > 0 {
			b.log.Debug("layout cache evicted %d documents", n)
		}
	}
	return doc
}
