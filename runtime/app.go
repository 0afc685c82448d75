// Package runtime drives the event loop: one goroutine owns the
// terminal and runs the input, dispatch, layout, render, paint cycle to
// completion per frame. Producers only enqueue events; nothing else
// touches the screen.
package runtime

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/tuikit/component"
	"github.com/lixenwraith/tuikit/layout"
	"github.com/lixenwraith/tuikit/render"
	"github.com/lixenwraith/tuikit/store"
	"github.com/lixenwraith/tuikit/style"
	"github.com/lixenwraith/tuikit/terminal"
)

// QuitAction ends the run loop when returned from an input handler or
// dispatched through the store queue
type QuitAction struct{}

// View derives the component tree from the current state. It runs once
// per frame and must be pure.
type View[S any] func(S) component.Component

// Option configures an App before Run
type Option[S any] func(*App[S])

// WithTerminal substitutes the terminal, e.g. a memory-backed one in
// tests
func WithTerminal[S any](t terminal.Terminal) Option[S] {
	return func(a *App[S]) { a.term = t }
}

// WithLogger sets the runtime logger. It must never write to the
// controlling tty; log to a file or leave the default discard logger.
func WithLogger[S any](l *log.Logger) Option[S] {
	return func(a *App[S]) { a.logger = l }
}

// WithMouse enables mouse reporting for the run
func WithMouse[S any](mode terminal.MouseMode) Option[S] {
	return func(a *App[S]) { a.mouse = mode }
}

// WithBackground sets the style frames are cleared with
func WithBackground[S any](st terminal.Style) Option[S] {
	return func(a *App[S]) { a.background = st }
}

// WithFallbackInput sets the handler for events no component claimed.
// It replaces the default Tab/Shift+Tab focus cycling, which the
// handler can delegate back to via the registry.
func WithFallbackInput[S any](fn component.FallbackHandler) Option[S] {
	return func(a *App[S]) { a.fallback = fn }
}

// App owns one terminal window and the state it displays
type App[S any] struct {
	term     terminal.Terminal
	store    *store.Store[S]
	view     View[S]
	registry *component.Registry
	logger   *log.Logger

	current  *render.Buffer
	previous *render.Buffer
	resolver *style.Resolver

	mouse      terminal.MouseMode
	background terminal.Style
	fallback   component.FallbackHandler

	done chan struct{}
}

// New creates an app from initial state, reducer, and view
func New[S any](initial S, reducer store.Reducer[S], view View[S], opts ...Option[S]) *App[S] {
	a := &App[S]{
		store:    store.New(initial, reducer),
		view:     view,
		registry: component.NewRegistry(),
		logger:   log.New(io.Discard),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.term == nil {
		a.term = terminal.New()
	}
	return a
}

// Store exposes the state store for dispatching outside the input path
func (a *App[S]) Store() *store.Store[S] {
	return a.store
}

// Registry exposes the focus registry, valid during and after Run
func (a *App[S]) Registry() *component.Registry {
	return a.registry
}

// Term exposes the terminal, e.g. for posting synthetic events
func (a *App[S]) Term() terminal.Terminal {
	return a.term
}

// Quit requests shutdown from any goroutine
func (a *App[S]) Quit() {
	a.term.PostEvent(terminal.Event{Type: terminal.EventTick, Payload: QuitAction{}})
}

// Every posts fn's action through the event queue every interval until
// the returned stop function is called or the app shuts down
func (a *App[S]) Every(interval time.Duration, fn func() store.Action) (stop func()) {
	stopCh := make(chan struct{})
	Go(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				a.term.PostEvent(terminal.Event{Type: terminal.EventTick, Payload: fn()})
			case <-stopCh:
				return
			case <-a.done:
				return
			}
		}
	})
	var once sync.Once
	return func() { once.Do(func() { close(stopCh) }) }
}

// Run acquires the terminal and drives the loop until the context is
// cancelled or a QuitAction is observed. The terminal is released on
// every exit path, including panics, before the panic resumes.
func (a *App[S]) Run(ctx context.Context) (err error) {
	if err := a.term.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	registerCrashTerminal(a.term)

	defer func() {
		close(a.done)
		unregisterCrashTerminal()
		if r := recover(); r != nil {
			a.term.Fini()
			a.logger.Error("panic in run loop", "panic", r)
			panic(r)
		}
		a.term.Fini()
	}()

	if a.mouse != 0 {
		if merr := a.term.SetMouseMode(a.mouse); merr != nil {
			a.logger.Warn("mouse reporting unavailable", "err", merr)
		}
	}

	a.resolver = style.NewResolver(a.term.ColorMode())
	w, h := a.term.Size()
	a.current = render.NewBuffer(w, h)
	a.previous = render.NewBuffer(w, h)
	a.term.Clear(a.background)
	a.logger.Info("runtime started", "width", w, "height", h, "colors", a.term.ColorMode())

	// Input producer; the loop goroutine stays the sole consumer
	events := make(chan terminal.Event, 64)
	Go(func() {
		for {
			ev := a.term.PollEvent()
			select {
			case events <- ev:
			case <-a.done:
				return
			}
			if ev.Type == terminal.EventClosed {
				return
			}
		}
	})

	a.frame()

	for {
		var ev terminal.Event
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev = <-events:
		}

		// Fold everything already queued into this frame: a burst of
		// input paints once, and of a resize burst only the final
		// geometry is applied
		batch := []terminal.Event{ev}
	drain:
		for {
			select {
			case next := <-events:
				batch = append(batch, next)
			default:
				break drain
			}
		}
		batch = coalesceResizes(batch)

		for _, ev := range batch {
			if ev.Type == terminal.EventClosed {
				return nil
			}
			if a.handle(ev) {
				return nil
			}
		}

		a.frame()
	}
}

// coalesceResizes keeps only the last resize of a batch, in the slot of
// the first, so relative ordering with other events is preserved
func coalesceResizes(batch []terminal.Event) []terminal.Event {
	last := -1
	count := 0
	for i := len(batch) - 1; i >= 0; i-- {
		if batch[i].Type == terminal.EventResize {
			if last < 0 {
				last = i
			}
			count++
		}
	}
	if count <= 1 {
		return batch
	}

	final := batch[last]
	out := batch[:0]
	placed := false
	for _, ev := range batch {
		if ev.Type == terminal.EventResize {
			if !placed {
				out = append(out, final)
				placed = true
			}
			continue
		}
		out = append(out, ev)
	}
	return out
}

// handle routes one event, reporting whether shutdown was requested
func (a *App[S]) handle(ev terminal.Event) bool {
	switch ev.Type {
	case terminal.EventResize:
		a.resize(ev.Width, ev.Height)
		return false

	case terminal.EventTick:
		if _, ok := ev.Payload.(QuitAction); ok {
			return true
		}
		if ev.Payload != nil {
			return a.dispatch(ev.Payload)
		}
		return false

	case terminal.EventError:
		a.logger.Error("input error", "err", ev.Err)
		return false

	case terminal.EventKey, terminal.EventMouse, terminal.EventPaste:
		action, handled := a.registry.DispatchInput(ev)
		if !handled {
			action, handled = a.defaultInput(ev)
		}
		if handled && action != nil {
			return a.dispatch(action)
		}
		return false
	}
	return false
}

// defaultInput is the last-resort handler: focus traversal, then the
// user fallback
func (a *App[S]) defaultInput(ev terminal.Event) (store.Action, bool) {
	if ev.Type == terminal.EventKey {
		switch {
		case ev.Key == terminal.KeyTab && ev.Modifiers == 0:
			a.registry.NextFocus()
			return nil, true
		case ev.Key == terminal.KeyBacktab:
			a.registry.PrevFocus()
			return nil, true
		}
	}
	if a.fallback != nil {
		return a.fallback(ev)
	}
	return nil, false
}

func (a *App[S]) dispatch(action store.Action) bool {
	if _, ok := action.(QuitAction); ok {
		return true
	}
	a.store.Dispatch(action)
	return false
}

// resize reallocates both buffers; invalidating the previous buffer
// forces the next diff into a full repaint
func (a *App[S]) resize(w, h int) {
	a.current.Resize(w, h)
	a.previous.Resize(w, h)
	a.term.Sync()
	a.logger.Debug("resize", "width", w, "height", h)
}

// frame runs one complete cycle: view, layout, render, resolve, diff,
// paint, swap
func (a *App[S]) frame() {
	w, h := a.current.Size()
	state := a.store.State()
	root := a.view(state)

	boxes := component.ComputeLayout(root, layout.Size{W: w, H: h})
	a.registry.Rebuild(root, boxes)

	a.current.Clear(a.background)
	component.RenderTree(root, boxes, a.current)
	a.current.ResolveStyles(a.resolver)

	cmds := render.Diff(a.previous, a.current)
	a.term.Apply(cmds)

	a.previous, a.current = a.current, a.previous
}
