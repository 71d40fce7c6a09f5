package config

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/textcore/internal/engine/editor"
	"github.com/dshills/textcore/internal/engine/shaper"
)

func TestDefault_Valid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestParse_TOML(t *testing.T) {
	data := `
[font]
family = "Mono"
size = 16
italic = true

[layout]
max_width = 320
multiline = false

[editor]
history_limit = 10
normalization = "nfc"
`
	cfg, err := Parse([]byte(data), FormatTOML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Default()
	want.Font.Family = "Mono"
	want.Font.Size = 16
	want.Font.Italic = true
	want.Layout.MaxWidth = 320
	want.Layout.Multiline = false
	want.Editor.HistoryLimit = 10
	want.Editor.Normalization = "nfc"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_YAML(t *testing.T) {
	data := `
font:
  size: 12
  line_height: 18
layout:
  shaper: font
  tab_width: 8
log:
  level: debug
  format: json
`
	cfg, err := Parse([]byte(data), FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Font.Size != 12 || cfg.Font.LineHeight != 18 {
		t.Errorf("font = %+v", cfg.Font)
	}
	if cfg.Layout.Shaper != "font" || cfg.Layout.TabWidth != 8 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
	// Unset sections keep their defaults.
	if cfg.Font.Family != shaper.DefaultFamily {
		t.Errorf("Font.Family = %q, want default", cfg.Font.Family)
	}
}

func TestParse_EmptyYAML(t *testing.T) {
	cfg, err := Parse(nil, FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_UnknownKey(t *testing.T) {
	data := "[font]\nsize = 12\ncolour = \"red\"\n"
	_, err := Parse([]byte(data), FormatTOML)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
	if pe.Line == 0 {
		t.Errorf("ParseError.Line = 0, want a position")
	}
	if !strings.Contains(pe.Message, "colour") {
		t.Errorf("ParseError.Message = %q, want the key name", pe.Message)
	}

	_, err = Parse([]byte("font:\n  colour: red\n"), FormatYAML)
	if !errors.As(err, &pe) {
		t.Fatalf("Parse(yaml) error = %v, want *ParseError", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("[font\nsize = 1"), FormatTOML)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
	if pe.Line == 0 {
		t.Error("ParseError.Line = 0, want a position")
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.toml", FormatTOML},
		{"dir/b.YAML", FormatYAML},
		{"c.yml", FormatYAML},
	}
	for _, tt := range tests {
		got, err := FormatForPath(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatForPath(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
		}
	}
	if _, err := FormatForPath("c.json"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("FormatForPath(json) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "textcore.toml")
	if err := os.WriteFile(path, []byte("[font]\nsize = 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Font.Size != 20 {
		t.Errorf("Font.Size = %v, want 20", cfg.Font.Size)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[font]\nsize = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("Load(bad) error = %v, want ErrValidationFailed", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Font.Family = "Mono"
	cfg.Editor.Normalization = "nfd"

	for _, format := range []string{FormatTOML, FormatYAML} {
		data, err := cfg.Encode(format)
		if err != nil {
			t.Fatalf("Encode(%s) error = %v", format, err)
		}
		got, err := Parse(data, format)
		if err != nil {
			t.Fatalf("Parse(%s) error = %v", format, err)
		}
		if diff := cmp.Diff(cfg, got); diff != "" {
			t.Errorf("%s round trip mismatch (-want +got):\n%s", format, diff)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TEXTCORE_FONT_SIZE":     "18",
		"TEXTCORE_MULTILINE":     "false",
		"TEXTCORE_SHAPER":        "FONT",
		"TEXTCORE_HISTORY_LIMIT": "5",
		"TEXTCORE_LOG_LEVEL":     "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.applyEnv("", lookup); err != nil {
		t.Fatalf("applyEnv() error = %v", err)
	}
	if cfg.Font.Size != 18 {
		t.Errorf("Font.Size = %v, want 18", cfg.Font.Size)
	}
	if cfg.Layout.Multiline {
		t.Error("Layout.Multiline = true, want false")
	}
	if cfg.Layout.Shaper != "font" {
		t.Errorf("Layout.Shaper = %q, want font", cfg.Layout.Shaper)
	}
	if cfg.Editor.HistoryLimit != 5 {
		t.Errorf("Editor.HistoryLimit = %d, want 5", cfg.Editor.HistoryLimit)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, empty value should be ignored", cfg.Log.Level)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "APP_FONT_SIZE" {
			return "big", true
		}
		return "", false
	}
	err := Default().applyEnv("APP_", lookup)
	if err == nil || !strings.Contains(err.Error(), "APP_FONT_SIZE") {
		t.Errorf("applyEnv() error = %v, want one naming APP_FONT_SIZE", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Font.Size = 0
	cfg.Layout.Shaper = "pixel"
	cfg.Editor.Segmentation = "words"
	cfg.Editor.Normalization = "nfx"
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("Validate() error = %v, want ErrValidationFailed", err)
	}
	for _, want := range []string{"font.size", "layout.shaper", "editor.segmentation", "editor.normalization", "log.format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q does not mention %s", err, want)
		}
	}
}

func TestParams(t *testing.T) {
	cfg := Default()
	cfg.Font.Weight = 700
	cfg.Font.Italic = true

	p := cfg.Params()
	if p.FontSize != 14 || p.LineHeight != 20 {
		t.Errorf("FontSize, LineHeight = %v, %v; want 14, 20", p.FontSize, p.LineHeight)
	}
	if !math.IsInf(p.MaxWidth, 1) {
		t.Errorf("MaxWidth = %v, want +Inf", p.MaxWidth)
	}
	want := shaper.Style{Weight: 700, Slant: shaper.SlantItalic, Stretch: shaper.StretchNormal}
	if p.Style == nil || *p.Style != want {
		t.Errorf("Style = %+v, want %+v", p.Style, want)
	}

	cfg.Font.LineHeight = 30
	cfg.Layout.MaxWidth = 100
	p = cfg.Params()
	if p.LineHeight != 30 || p.MaxWidth != 100 {
		t.Errorf("LineHeight, MaxWidth = %v, %v; want 30, 100", p.LineHeight, p.MaxWidth)
	}
}

func TestNewShaper(t *testing.T) {
	cfg := Default()
	cfg.Layout.TabWidth = 2
	sh, err := cfg.NewShaper()
	if err != nil {
		t.Fatalf("NewShaper() error = %v", err)
	}
	cs, ok := sh.(*shaper.CellShaper)
	if !ok {
		t.Fatalf("NewShaper() = %T, want *shaper.CellShaper", sh)
	}
	if cs.TabWidth() != 2 {
		t.Errorf("TabWidth() = %d, want 2", cs.TabWidth())
	}

	cfg.Layout.Shaper = "font"
	sh, err = cfg.NewShaper()
	if err != nil {
		t.Fatalf("NewShaper(font) error = %v", err)
	}
	if _, ok := sh.(*shaper.FontShaper); !ok {
		t.Errorf("NewShaper(font) = %T, want *shaper.FontShaper", sh)
	}

	cfg.Font.Path = filepath.Join(t.TempDir(), "missing.ttf")
	if _, err := cfg.NewShaper(); err == nil {
		t.Error("NewShaper() with missing font file succeeded")
	}
}

func TestEditorOptions(t *testing.T) {
	cfg := Default()
	cfg.Layout.Multiline = false
	cfg.Editor.Normalization = "nfc"

	opts, err := cfg.EditorOptions(editor.WithText("x"))
	if err != nil {
		t.Fatalf("EditorOptions() error = %v", err)
	}
	sh, err := cfg.NewShaper()
	if err != nil {
		t.Fatal(err)
	}
	ed := editor.New(sh, opts...)

	if ed.Multiline() {
		t.Error("Multiline() = true, want false")
	}
	if !ed.Params().Equal(cfg.Params()) {
		t.Errorf("Params() = %+v, want %+v", ed.Params(), cfg.Params())
	}
	ed.InsertText("e\u0301\nf")
	if got, want := ed.Text(), "x\u00e9 f"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	cfg.Editor.Segmentation = "words"
	if _, err := cfg.EditorOptions(); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("EditorOptions() error = %v, want ErrValidationFailed", err)
	}
}

func TestLogger_File(t *testing.T) {
	cfg := Default()
	cfg.Log.Format = "json"
	cfg.Log.File = filepath.Join(t.TempDir(), "textcore.log")

	log, closer, err := cfg.Logger()
	if err != nil {
		t.Fatalf("Logger() error = %v", err)
	}
	log.Info("started")
	log.Debug("hidden")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(cfg.Log.File)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, `"message":"started"`) {
		t.Errorf("log output %q missing message", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("log output %q contains a debug entry", out)
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "textcore.toml")
	if err := os.WriteFile(path, []byte("[font]\nsize = 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	type result struct {
		cfg *Config
		err error
	}
	results := make(chan result, 8)
	w, err := Watch(context.Background(), path, func(c *Config, err error) {
		results <- result{c, err}
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	// Unrelated files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[font]\nsize = 24\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A reload may observe the truncated file first.
	timeout := time.After(5 * time.Second)
	for {
		select {
		case r := <-results:
			if r.err == nil && r.cfg.Font.Size == 24 {
				return
			}
		case <-timeout:
			t.Fatal("no reload with the new size after write")
		}
	}
}

func TestWatch_Close(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "textcore.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := Watch(context.Background(), path, func(*Config, error) {})
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	done := make(chan struct{})
	go func() {
		w.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close() did not return")
	}
}
