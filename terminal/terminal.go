package terminal

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Terminal provides screen access for the runtime. Acquisition and
// release are a scoped pair: every exit path must reach Fini (or
// EmergencyReset when unwinding), otherwise the user's shell is left in
// raw mode.
type Terminal interface {
	// Init enters raw mode, alternate screen buffer, hides cursor.
	// Failure here is fatal to the caller; no frame can be produced.
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// ColorMode returns the detected color capability tier
	ColorMode() ColorMode

	// Apply writes a batch of paint commands
	Apply(cmds []PaintCommand)

	// Clear fills the screen using the style's background
	Clear(st Style)

	// SetCursorVisible shows/hides the cursor
	SetCursorVisible(visible bool)

	// Sync invalidates output tracking; the caller should follow with a
	// full repaint
	Sync()

	// PollEvent blocks until the next input event. After Fini it
	// returns EventClosed.
	PollEvent() Event

	// PostEvent injects a synthetic event into the ordered queue.
	// Safe from any goroutine; oldest events drop when the queue fills.
	PostEvent(Event)

	// SetMouseMode enables/disables mouse event reporting.
	// Modes combine: MouseModeClick | MouseModeDrag
	SetMouseMode(mode MouseMode) error
}

// termImpl implements Terminal over the Backend interface
type termImpl struct {
	backend Backend

	output    *outputWriter
	input     *inputReader
	resizeCh  chan Event
	synthetic *eventQueue
	colorMode ColorMode

	cursorVisible atomic.Bool

	mu          sync.Mutex
	initialized bool
	finalized   bool
	mouseMode   MouseMode
}

// New creates a Terminal on the platform backend. Color capability is
// detected from the environment unless a mode is forced.
func New(colorMode ...ColorMode) Terminal {
	var c ColorMode
	if len(colorMode) == 0 {
		c = DetectColorMode()
	} else {
		c = colorMode[0]
	}
	return NewWithBackend(newBackend(), c)
}

// NewWithBackend creates a Terminal over an explicit backend, e.g. a
// MemBackend in tests.
func NewWithBackend(b Backend, mode ColorMode) Terminal {
	return &termImpl{
		backend:   b,
		output:    newOutputWriter(backendWriter{b}, mode),
		resizeCh:  make(chan Event, 1),
		synthetic: newEventQueue(),
		colorMode: mode,
	}
}

// backendWriter adapts Backend.Write to io.Writer for the buffered
// output path
type backendWriter struct {
	b Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}

	t.input = newInputReader(t.backend)

	t.backend.SetResizeHandler(func(w, h int) {
		ev := Event{Type: EventResize, Width: w, Height: h}
		// Latest size wins; drain a stale pending event rather than
		// queue a backlog
		select {
		case t.resizeCh <- ev:
		default:
			select {
			case <-t.resizeCh:
			default:
			}
			select {
			case t.resizeCh <- ev:
			default:
			}
		}
	})

	t.backend.Write(csiAltScreenEnter)
	t.backend.Write(csiCursorHide)

	// Disable auto-wrap so the bottom-right corner is writable without
	// scrolling
	t.backend.Write(csiAutoWrapOff)
	t.backend.Write(csiPasteOn)

	t.cursorVisible.Store(false)
	t.output.clear(Style{})

	t.input.start()
	t.initialized = true
	return nil
}

func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	if t.mouseMode != MouseModeNone {
		t.backend.Write(csiMouseMotionOff)
		t.backend.Write(csiMouseDragOff)
		t.backend.Write(csiMouseClickOff)
		t.backend.Write(csiMouseSGROff)
	}

	if t.input != nil {
		t.input.stop()
	}

	t.backend.Write(csiPasteOff)
	t.backend.Write(csiCursorShow)
	t.backend.Write(csiAltScreenExit)
	// Re-enable auto-wrap after leaving the alternate screen so the
	// main buffer keeps wrapping
	t.backend.Write(csiAutoWrapOn)
	t.backend.Write(csiSGR0)

	t.backend.Fini()
	t.finalized = true
}

func (t *termImpl) Size() (int, int) {
	return t.backend.Size()
}

func (t *termImpl) ColorMode() ColorMode {
	return t.colorMode
}

func (t *termImpl) Apply(cmds []PaintCommand) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.output.apply(cmds)
}

func (t *termImpl) Clear(st Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.output.clear(st)
}

func (t *termImpl) SetCursorVisible(visible bool) {
	if t.cursorVisible.Swap(visible) == visible {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	if visible {
		t.backend.Write(csiCursorShow)
	} else {
		t.backend.Write(csiCursorHide)
	}
}

func (t *termImpl) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	t.output.clear(Style{})
	t.output.invalidate()
}

func (t *termImpl) PollEvent() Event {
	if t.input == nil {
		return Event{Type: EventClosed}
	}

	// Synthetic events first so posted events keep their order relative
	// to each other
	if ev, ok := t.synthetic.pop(); ok {
		return ev
	}

	for {
		select {
		case <-t.synthetic.wake():
			if ev, ok := t.synthetic.pop(); ok {
				return ev
			}
		case ev, ok := <-t.input.events():
			if !ok {
				// Reader exited; the closed channel keeps every present
				// and future poll unblocked
				return Event{Type: EventClosed}
			}
			return ev
		case ev := <-t.resizeCh:
			return ev
		}
	}
}

func (t *termImpl) PostEvent(ev Event) {
	t.synthetic.push(ev)
}

func (t *termImpl) SetMouseMode(mode MouseMode) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}

	oldMode := t.mouseMode
	t.mouseMode = mode

	// Disable modes no longer wanted, reverse order of enable
	if oldMode&MouseModeMotion != 0 && mode&MouseModeMotion == 0 {
		t.backend.Write(csiMouseMotionOff)
	}
	if oldMode&MouseModeDrag != 0 && mode&MouseModeDrag == 0 {
		t.backend.Write(csiMouseDragOff)
	}
	if oldMode&MouseModeClick != 0 && mode&MouseModeClick == 0 {
		t.backend.Write(csiMouseClickOff)
	}
	if mode == MouseModeNone && oldMode != MouseModeNone {
		t.backend.Write(csiMouseSGROff)
	}

	if mode != MouseModeNone && oldMode == MouseModeNone {
		t.backend.Write(csiMouseSGROn)
	}
	if mode&MouseModeClick != 0 && oldMode&MouseModeClick == 0 {
		t.backend.Write(csiMouseClickOn)
	}
	if mode&MouseModeDrag != 0 && oldMode&MouseModeDrag == 0 {
		t.backend.Write(csiMouseDragOn)
	}
	if mode&MouseModeMotion != 0 && oldMode&MouseModeMotion == 0 {
		t.backend.Write(csiMouseMotionOn)
	}
	return nil
}

// EmergencyReset attempts to restore the terminal to a sane state.
// Call from panic recovery when Fini cannot run normally.
func EmergencyReset(w io.Writer) {
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseDragOff)
	w.Write(csiMouseClickOff)
	w.Write(csiMouseSGROff)
	w.Write(csiPasteOff)

	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
