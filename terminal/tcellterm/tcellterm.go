// Package tcellterm implements terminal.Terminal over a tcell Screen.
// It trades the hand-rolled unix backend for tcell's terminfo database
// and platform support, and its SimulationScreen makes full loop tests
// possible without a tty.
package tcellterm

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tuikit/terminal"
)

// Terminal adapts a tcell.Screen to the terminal.Terminal interface
type Terminal struct {
	screen tcell.Screen

	mu       sync.Mutex
	finished bool
	cursorOn bool
}

// New creates a Terminal over a fresh tcell screen
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewWithScreen wraps an existing screen, e.g. a SimulationScreen
func NewWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	t.screen.HideCursor()
	return nil
}

func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finished {
		return
	}
	t.finished = true
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

// ColorMode maps tcell's reported color count onto capability tiers
func (t *Terminal) ColorMode() terminal.ColorMode {
	colors := t.screen.Colors()
	switch {
	case colors >= 1<<24:
		return terminal.ColorModeTrueColor
	case colors >= 256:
		return terminal.ColorMode256
	case colors >= 8:
		return terminal.ColorMode16
	default:
		return terminal.ColorModeNone
	}
}

func (t *Terminal) Apply(cmds []terminal.PaintCommand) {
	for _, cmd := range cmds {
		x := cmd.X
		for _, c := range cmd.Cells {
			if c.Continuation() {
				x++
				continue
			}
			mainc, combc := splitCluster(c.Content)
			t.screen.SetContent(x, cmd.Y, mainc, combc, toTcellStyle(c.Style))
			if c.Width == 2 {
				x += 2
			} else {
				x++
			}
		}
	}
	t.screen.Show()
}

func (t *Terminal) Clear(st terminal.Style) {
	t.screen.Fill(' ', toTcellStyle(st))
	t.screen.Show()
}

func (t *Terminal) SetCursorVisible(visible bool) {
	t.mu.Lock()
	t.cursorOn = visible
	t.mu.Unlock()
	if visible {
		t.screen.ShowCursor(0, 0)
	} else {
		t.screen.HideCursor()
	}
}

func (t *Terminal) Sync() {
	t.screen.Sync()
}

func (t *Terminal) PollEvent() terminal.Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return terminal.Event{Type: terminal.EventClosed}
		}
		if out, ok := convertEvent(ev); ok {
			return out
		}
	}
}

func (t *Terminal) PostEvent(ev terminal.Event) {
	t.screen.PostEventWait(&syntheticEvent{ev: ev, at: time.Now()})
}

func (t *Terminal) SetMouseMode(mode terminal.MouseMode) error {
	if mode == 0 {
		t.screen.DisableMouse()
		return nil
	}
	var flags tcell.MouseFlags
	if mode&terminal.MouseModeClick != 0 {
		flags |= tcell.MouseButtonEvents
	}
	if mode&terminal.MouseModeDrag != 0 {
		flags |= tcell.MouseDragEvents
	}
	if mode&terminal.MouseModeMotion != 0 {
		flags |= tcell.MouseMotionEvents
	}
	t.screen.EnableMouse(flags)
	return nil
}

// syntheticEvent carries an application event through tcell's queue
type syntheticEvent struct {
	ev terminal.Event
	at time.Time
}

func (s *syntheticEvent) When() time.Time { return s.at }
