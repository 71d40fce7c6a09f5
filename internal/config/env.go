package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultEnvPrefix is the prefix of the environment variables read by
// ApplyEnv.
const DefaultEnvPrefix = "TEXTCORE_"

// envSetting maps one environment variable, without prefix, to a setter.
type envSetting struct {
	name string
	set  func(c *Config, v string) error
}

func envSettings() []envSetting {
	return []envSetting{
		{"FONT_FAMILY", func(c *Config, v string) error { c.Font.Family = v; return nil }},
		{"FONT_SIZE", floatSetter(func(c *Config) *float64 { return &c.Font.Size })},
		{"LINE_HEIGHT", floatSetter(func(c *Config) *float64 { return &c.Font.LineHeight })},
		{"FONT_WEIGHT", intSetter(func(c *Config) *int { return &c.Font.Weight })},
		{"FONT_ITALIC", boolSetter(func(c *Config) *bool { return &c.Font.Italic })},
		{"FONT_PATH", func(c *Config, v string) error { c.Font.Path = v; return nil }},
		{"SHAPER", func(c *Config, v string) error { c.Layout.Shaper = strings.ToLower(v); return nil }},
		{"MAX_WIDTH", floatSetter(func(c *Config) *float64 { return &c.Layout.MaxWidth })},
		{"MULTILINE", boolSetter(func(c *Config) *bool { return &c.Layout.Multiline })},
		{"TAB_WIDTH", intSetter(func(c *Config) *int { return &c.Layout.TabWidth })},
		{"HISTORY_LIMIT", intSetter(func(c *Config) *int { return &c.Editor.HistoryLimit })},
		{"SEGMENTATION", func(c *Config, v string) error { c.Editor.Segmentation = strings.ToLower(v); return nil }},
		{"NORMALIZATION", func(c *Config, v string) error { c.Editor.Normalization = strings.ToLower(v); return nil }},
		{"CACHE_SIZE", intSetter(func(c *Config) *int { return &c.Editor.CacheSize })},
		{"LOG_LEVEL", func(c *Config, v string) error { c.Log.Level = strings.ToLower(v); return nil }},
		{"LOG_FORMAT", func(c *Config, v string) error { c.Log.Format = strings.ToLower(v); return nil }},
		{"LOG_FILE", func(c *Config, v string) error { c.Log.File = v; return nil }},
	}
}

// ApplyEnv overrides settings from environment variables named prefix plus
// the setting name, for example TEXTCORE_FONT_SIZE. An empty prefix uses
// DefaultEnvPrefix. Empty values are ignored.
func (c *Config) ApplyEnv(prefix string) error {
	return c.applyEnv(prefix, os.LookupEnv)
}

func (c *Config) applyEnv(prefix string, lookup func(string) (string, bool)) error {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	for _, s := range envSettings() {
		name := prefix + s.name
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		if err := s.set(c, strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("environment variable %s: %w", name, err)
		}
	}
	return nil
}

func floatSetter(field func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}

func intSetter(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

// boolSetter accepts the spellings the shell commonly uses.
func boolSetter(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		switch strings.ToLower(v) {
		case "true", "yes", "on", "1":
			*field(c) = true
		case "false", "no", "off", "0":
			*field(c) = false
		default:
			return fmt.Errorf("invalid boolean %q", v)
		}
		return nil
	}
}
