package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textcore/internal/config"
	"github.com/dshills/textcore/internal/engine/editor"
	"github.com/dshills/textcore/internal/engine/shaper"
	"github.com/dshills/textcore/internal/logging"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to a TOML or YAML configuration file.
	ConfigPath string

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// Shaper overrides the configured shaper when set.
	Shaper string

	// File is the file to edit. A missing file starts empty and is
	// created on save.
	File string

	// Watch reloads the configuration file when it changes.
	Watch bool
}

// Application hosts one editor on a terminal screen.
type Application struct {
	mu sync.Mutex

	opts      Options
	cfg       *config.Config
	log       *logging.Logger
	logCloser io.Closer
	shaper    shaper.Shaper
	editor    *editor.Editor
	screen    tcell.Screen
	watcher   *config.Watcher

	clicks    *clickTracker
	dragging  bool
	pasting   bool
	paste     []rune
	composing bool
	clipboard string

	top    int
	follow bool
	saved  string
	status string
}

// New loads the configuration and creates the editor. The screen is
// attached separately with SetScreen.
func New(opts Options) (*Application, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	log, closer, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	log = log.WithComponent("app")

	sh, err := cfg.NewShaper()
	if err != nil {
		closer.Close()
		return nil, err
	}

	text := ""
	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		switch {
		case err == nil:
			text = string(data)
		case errors.Is(err, fs.ErrNotExist):
			log.Info("new file %s", opts.File)
		default:
			closer.Close()
			return nil, fmt.Errorf("reading %s: %w", opts.File, err)
		}
	}

	edOpts, err := cfg.EditorOptions(editor.WithText(text), editor.WithLogger(log))
	if err != nil {
		closer.Close()
		return nil, err
	}
	ed := editor.New(sh, edOpts...)
	ed.MoveDocumentStart(false)

	return &Application{
		opts:      opts,
		cfg:       cfg,
		log:       log,
		logCloser: closer,
		shaper:    sh,
		editor:    ed,
		clicks:    newClickTracker(defaultClickTime, 1),
		follow:    true,
		saved:     ed.Text(),
	}, nil
}

// loadConfig reads the configuration file, if any, then applies the
// environment and command line overrides.
func loadConfig(opts Options) (*config.Config, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(""); err != nil {
		return nil, err
	}
	if err := applyOverrides(cfg, opts); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyOverrides applies the command line overrides and validates the result.
// Reloaded configurations pass through it too so the flags keep winning.
func applyOverrides(cfg *config.Config, opts Options) error {
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.Shaper != "" {
		cfg.Layout.Shaper = opts.Shaper
	}
	return cfg.Validate()
}

// Editor returns the hosted editor.
func (a *Application) Editor() *editor.Editor {
	return a.editor
}

// Config returns the active configuration.
func (a *Application) Config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// Modified reports whether the text changed since it was loaded or saved.
func (a *Application) Modified() bool {
	return a.editor.Text() != a.saved
}

// SetScreen initializes the screen and attaches it to the application.
func (a *Application) SetScreen(s tcell.Screen) error {
	if err := s.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	s.EnableMouse(tcell.MouseDragEvents)
	s.EnablePaste()
	s.EnableFocus()
	a.screen = s
	a.editor.SetFocused(true)
	a.resize()
	return nil
}

// Shutdown releases the screen, the watcher and the log file. It is safe
// to call more than once.
func (a *Application) Shutdown() {
	a.mu.Lock()
	w := a.watcher
	a.watcher = nil
	a.mu.Unlock()

	// The watcher callback takes the lock, so close it first.
	if w != nil {
		w.Close()
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen != nil {
		a.screen.Fini()
		a.screen = nil
	}
	if a.logCloser != nil {
		a.logCloser.Close()
		a.logCloser = nil
	}
}

// Save writes the text to the file being edited.
func (a *Application) Save() error {
	if a.opts.File == "" {
		return errors.New("no file name")
	}
	text := a.editor.Text()
	if err := os.WriteFile(a.opts.File, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", a.opts.File, err)
	}
	a.saved = text
	a.log.Info("saved %s", a.opts.File)
	return nil
}

// cellWidth is the layout width of one terminal column.
func (a *Application) cellWidth() float64 {
	size := a.editor.Params().FontSize
	w := size * a.cfg.Layout.CellRatio
	if cs, ok := a.shaper.(*shaper.CellShaper); ok {
		w = cs.CellWidth(size)
	}
	if w <= 0 {
		return 1
	}
	return w
}

// resize rewraps the text to the screen when no fixed width is configured.
func (a *Application) resize() {
	if a.screen == nil || a.cfg.Layout.MaxWidth > 0 {
		return
	}
	w, _ := a.screen.Size()
	if w < 1 {
		return
	}
	// Leave the last column free for a caret after a full line.
	a.editor.SetMaxWidth(float64(w-1) * a.cellWidth())
}

// applyConfig swaps in a reloaded configuration. The shaper is rebuilt and
// layout settings take effect immediately while the text and history are
// kept. A configuration that fails validation leaves the old one active.
func (a *Application) applyConfig(cfg *config.Config) error {
	if err := applyOverrides(cfg, a.opts); err != nil {
		return err
	}
	sh, err := cfg.NewShaper()
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.cfg = cfg
	a.shaper = sh
	a.mu.Unlock()

	a.editor.SetShaper(sh)
	a.editor.SetParams(cfg.Params())
	a.resize()
	a.status = "configuration reloaded"
	a.log.Info("configuration reloaded")
	return nil
}
