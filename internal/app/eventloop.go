package app

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textcore/internal/config"
)

// reloadEvent carries a reloaded configuration into the event loop.
type reloadEvent struct {
	tcell.EventTime
	cfg *config.Config
	err error
}

// Run processes terminal events until the user quits, the context is
// cancelled or the screen is finalized. Quitting returns ErrQuit.
func (a *Application) Run(ctx context.Context) error {
	screen := a.screen
	if screen == nil {
		return ErrNoScreen
	}

	if a.opts.Watch && a.opts.ConfigPath != "" {
		w, err := config.Watch(ctx, a.opts.ConfigPath, a.postReload, config.WithWatchLogger(a.log))
		if err != nil {
			a.log.WithError(err).Warn("config watcher disabled")
		} else {
			a.mu.Lock()
			a.watcher = w
			a.mu.Unlock()
		}
	}

	stop := context.AfterFunc(ctx, func() {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	a.draw()
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.handleEvent(ev); err != nil {
			return err
		}
		a.draw()
	}
}

// postReload hands a reload result to the event loop. It runs on the
// watcher goroutine.
func (a *Application) postReload(cfg *config.Config, err error) {
	a.mu.Lock()
	screen := a.screen
	a.mu.Unlock()
	if screen == nil {
		return
	}
	ev := &reloadEvent{cfg: cfg, err: err}
	ev.SetEventTime(time.Now())
	_ = screen.PostEvent(ev) // best-effort; the queue may be full
}

// handleEvent dispatches one terminal event. It returns ErrQuit when the
// application should exit.
func (a *Application) handleEvent(ev tcell.Event) error {
	switch e := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
	case *tcell.EventKey:
		if a.pasting {
			a.collectPaste(e)
			return nil
		}
		return a.handleKey(e)
	case *tcell.EventPaste:
		a.handlePaste(e)
	case *tcell.EventMouse:
		a.handleMouse(e)
	case *tcell.EventFocus:
		a.editor.SetFocused(e.Focused)
		if !e.Focused {
			a.dragging = false
			a.composing = false
			a.clicks.reset()
		}
	case *reloadEvent:
		if e.err != nil {
			a.status = "config: " + e.err.Error()
			return nil
		}
		if err := a.applyConfig(e.cfg); err != nil {
			a.status = "config: " + err.Error()
			a.log.Warn("config reload rejected: %v", err)
		}
	}
	return nil
}

// handlePaste brackets pasted keys so they are inserted as one edit.
func (a *Application) handlePaste(ev *tcell.EventPaste) {
	if ev.Start() {
		a.pasting = true
		a.paste = a.paste[:0]
		return
	}
	a.pasting = false
	if len(a.paste) > 0 {
		a.insert(string(a.paste))
	}
	a.paste = a.paste[:0]
}

func (a *Application) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		a.paste = append(a.paste, ev.Rune())
	case tcell.KeyEnter, tcell.KeyCtrlJ:
		a.paste = append(a.paste, '\n')
	case tcell.KeyTab:
		a.paste = append(a.paste, '\t')
	}
}
