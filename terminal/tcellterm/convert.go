package tcellterm

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tuikit/terminal"
)

// splitCluster breaks a grapheme cluster into tcell's main rune plus
// combining runes
func splitCluster(s string) (rune, []rune) {
	runes := []rune(s)
	if len(runes) == 0 {
		return ' ', nil
	}
	if len(runes) == 1 {
		return runes[0], nil
	}
	return runes[0], runes[1:]
}

func toTcellStyle(st terminal.Style) tcell.Style {
	out := tcell.StyleDefault.
		Foreground(toTcellColor(st.Fg)).
		Background(toTcellColor(st.Bg))

	if st.Attrs&terminal.AttrBold != 0 {
		out = out.Bold(true)
	}
	if st.Attrs&terminal.AttrDim != 0 {
		out = out.Dim(true)
	}
	if st.Attrs&terminal.AttrItalic != 0 {
		out = out.Italic(true)
	}
	if st.Attrs&terminal.AttrUnderline != 0 {
		out = out.Underline(true)
	}
	if st.Attrs&terminal.AttrBlink != 0 {
		out = out.Blink(true)
	}
	if st.Attrs&terminal.AttrReverse != 0 {
		out = out.Reverse(true)
	}
	return out
}

func toTcellColor(c terminal.Color) tcell.Color {
	switch c.Kind {
	case terminal.ColorANSI, terminal.Color256:
		return tcell.PaletteColor(int(c.Index))
	case terminal.ColorRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	default:
		return tcell.ColorDefault
	}
}

// convertEvent translates a tcell event; ok is false for event kinds
// the runtime does not consume
func convertEvent(ev tcell.Event) (terminal.Event, bool) {
	switch tev := ev.(type) {
	case *syntheticEvent:
		return tev.ev, true

	case *tcell.EventResize:
		w, h := tev.Size()
		return terminal.Event{Type: terminal.EventResize, Width: w, Height: h}, true

	case *tcell.EventKey:
		return convertKey(tev), true

	case *tcell.EventMouse:
		return convertMouse(tev), true

	case *tcell.EventPaste:
		// tcell delivers paste brackets as separate events with the
		// text in between; only the markers surface here, so they are
		// dropped and pasted runes arrive as key events
		return terminal.Event{}, false

	case *tcell.EventError:
		return terminal.Event{Type: terminal.EventError, Err: tev}, true
	}
	return terminal.Event{}, false
}

var tcellKeys = map[tcell.Key]terminal.Key{
	tcell.KeyEnter:      terminal.KeyEnter,
	tcell.KeyTab:        terminal.KeyTab,
	tcell.KeyBacktab:    terminal.KeyBacktab,
	tcell.KeyEsc:        terminal.KeyEscape,
	tcell.KeyBackspace2: terminal.KeyBackspace,
	tcell.KeyDelete:     terminal.KeyDelete,
	tcell.KeyUp:         terminal.KeyUp,
	tcell.KeyDown:       terminal.KeyDown,
	tcell.KeyLeft:       terminal.KeyLeft,
	tcell.KeyRight:      terminal.KeyRight,
	tcell.KeyHome:       terminal.KeyHome,
	tcell.KeyEnd:        terminal.KeyEnd,
	tcell.KeyPgUp:       terminal.KeyPageUp,
	tcell.KeyPgDn:       terminal.KeyPageDown,
	tcell.KeyInsert:     terminal.KeyInsert,
	tcell.KeyF1:         terminal.KeyF1,
	tcell.KeyF2:         terminal.KeyF2,
	tcell.KeyF3:         terminal.KeyF3,
	tcell.KeyF4:         terminal.KeyF4,
	tcell.KeyF5:         terminal.KeyF5,
	tcell.KeyF6:         terminal.KeyF6,
	tcell.KeyF7:         terminal.KeyF7,
	tcell.KeyF8:         terminal.KeyF8,
	tcell.KeyF9:         terminal.KeyF9,
	tcell.KeyF10:        terminal.KeyF10,
	tcell.KeyF11:        terminal.KeyF11,
	tcell.KeyF12:        terminal.KeyF12,
}

func convertKey(ev *tcell.EventKey) terminal.Event {
	out := terminal.Event{Type: terminal.EventKey}

	mods := ev.Modifiers()
	if mods&tcell.ModShift != 0 {
		out.Modifiers |= terminal.ModShift
	}
	if mods&tcell.ModAlt != 0 {
		out.Modifiers |= terminal.ModAlt
	}
	if mods&tcell.ModCtrl != 0 {
		out.Modifiers |= terminal.ModCtrl
	}

	key := ev.Key()
	switch {
	case key == tcell.KeyRune:
		out.Key = terminal.KeyRune
		out.Rune = ev.Rune()
		if out.Rune == ' ' {
			out.Key = terminal.KeySpace
		}

	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		// tcell overlaps control keys with their byte values
		switch key {
		case tcell.KeyCtrlI:
			out.Key = terminal.KeyTab
		case tcell.KeyCtrlM:
			out.Key = terminal.KeyEnter
		default:
			out.Key = terminal.KeyCtrlA + terminal.Key(key-tcell.KeyCtrlA)
			out.Modifiers |= terminal.ModCtrl
		}

	case key == tcell.KeyCtrlSpace:
		out.Key = terminal.KeyCtrlSpace
		out.Modifiers |= terminal.ModCtrl

	default:
		if k, ok := tcellKeys[key]; ok {
			out.Key = k
		} else {
			out.Key = terminal.KeyNone
		}
	}
	return out
}

func convertMouse(ev *tcell.EventMouse) terminal.Event {
	x, y := ev.Position()
	out := terminal.Event{Type: terminal.EventMouse, MouseX: x, MouseY: y}

	btns := ev.Buttons()
	switch {
	case btns&tcell.Button1 != 0:
		out.MouseBtn = terminal.MouseBtnLeft
		out.MouseAction = terminal.MouseActionPress
	case btns&tcell.Button2 != 0:
		out.MouseBtn = terminal.MouseBtnMiddle
		out.MouseAction = terminal.MouseActionPress
	case btns&tcell.Button3 != 0:
		out.MouseBtn = terminal.MouseBtnRight
		out.MouseAction = terminal.MouseActionPress
	case btns&tcell.WheelUp != 0:
		out.MouseBtn = terminal.MouseBtnWheelUp
		out.MouseAction = terminal.MouseActionPress
	case btns&tcell.WheelDown != 0:
		out.MouseBtn = terminal.MouseBtnWheelDown
		out.MouseAction = terminal.MouseActionPress
	default:
		out.MouseBtn = terminal.MouseBtnNone
		out.MouseAction = terminal.MouseActionRelease
	}
	return out
}
