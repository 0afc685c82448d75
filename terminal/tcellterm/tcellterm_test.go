package tcellterm

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tuikit/terminal"
)

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(term.Fini)
	return term, sim
}

func TestApplyPaintsCells(t *testing.T) {
	term, sim := newSimTerminal(t)

	st := terminal.Style{Fg: terminal.ANSI(2), Attrs: terminal.AttrBold}
	term.Apply([]terminal.PaintCommand{
		{X: 1, Y: 0, Cells: []terminal.Cell{
			{Content: "h", Width: 1, Style: st},
			{Content: "i", Width: 1, Style: st},
		}},
	})

	mainc, _, style, _ := sim.GetContent(1, 0)
	if mainc != 'h' {
		t.Errorf("cell (1,0) = %q, want h", mainc)
	}
	fg, _, attrs := style.Decompose()
	if fg != tcell.PaletteColor(2) {
		t.Errorf("fg = %v", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Errorf("bold attribute lost")
	}

	mainc, _, _, _ = sim.GetContent(2, 0)
	if mainc != 'i' {
		t.Errorf("cell (2,0) = %q, want i", mainc)
	}
}

func TestApplyWideGlyph(t *testing.T) {
	term, sim := newSimTerminal(t)

	term.Apply([]terminal.PaintCommand{
		{X: 0, Y: 0, Cells: []terminal.Cell{
			{Content: "你", Width: 2, Style: terminal.Style{}},
			{Width: 0, Style: terminal.Style{}},
			{Content: "x", Width: 1, Style: terminal.Style{}},
		}},
	})

	mainc, _, _, width := sim.GetContent(0, 0)
	if mainc != '你' || width != 2 {
		t.Errorf("cell (0,0) = %q width %d, want 你 width 2", mainc, width)
	}
	mainc, _, _, _ = sim.GetContent(2, 0)
	if mainc != 'x' {
		t.Errorf("cell (2,0) = %q, want x after wide glyph", mainc)
	}
}

func TestPostEventRoundTrip(t *testing.T) {
	term, _ := newSimTerminal(t)

	term.PostEvent(terminal.Event{Type: terminal.EventTick, Payload: 42})

	ch := make(chan terminal.Event, 1)
	go func() { ch <- term.PollEvent() }()

	select {
	case ev := <-ch:
		if ev.Type != terminal.EventTick || ev.Payload.(int) != 42 {
			t.Errorf("event = %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("posted event never arrived")
	}
}

func TestKeyEventConversion(t *testing.T) {
	term, sim := newSimTerminal(t)

	ch := make(chan terminal.Event, 1)
	go func() { ch <- term.PollEvent() }()

	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)

	select {
	case ev := <-ch:
		if ev.Type != terminal.EventKey || ev.Key != terminal.KeyRune || ev.Rune != 'x' {
			t.Errorf("event = %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("key event never arrived")
	}
}

func TestSpecialKeyConversion(t *testing.T) {
	term, sim := newSimTerminal(t)

	ch := make(chan terminal.Event, 1)
	go func() { ch <- term.PollEvent() }()

	sim.InjectKey(tcell.KeyTab, 0, tcell.ModNone)

	select {
	case ev := <-ch:
		if ev.Key != terminal.KeyTab {
			t.Errorf("event = %+v, want Tab", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("key event never arrived")
	}
}

func TestFiniIsIdempotent(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	term.Fini()
	term.Fini() // second call must not panic
}
