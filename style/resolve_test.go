package style

import (
	"testing"

	"github.com/lixenwraith/tuikit/terminal"
)

var allModes = []terminal.ColorMode{
	terminal.ColorModeNone,
	terminal.ColorMode16,
	terminal.ColorMode256,
	terminal.ColorModeTrueColor,
}

// Every color kind must resolve to something representable at every
// tier; resolution never errors and never leaves a too-rich color.
func TestResolveColorTotal(t *testing.T) {
	colors := []terminal.Color{
		terminal.Default,
		terminal.ANSI(3),
		terminal.ANSI(15),
		terminal.Palette(39),
		terminal.Palette(231),
		terminal.RGB(255, 128, 0),
		terminal.RGB(0, 0, 0),
	}

	for _, mode := range allModes {
		for _, c := range colors {
			got := ResolveColor(c, mode)

			switch mode {
			case terminal.ColorModeNone:
				if got.Kind != terminal.ColorDefault {
					t.Errorf("mode %v: %+v resolved to %+v, want default", mode, c, got)
				}
			case terminal.ColorMode16:
				if got.Kind == terminal.Color256 || got.Kind == terminal.ColorRGB {
					t.Errorf("mode %v: %+v resolved to too-rich %+v", mode, c, got)
				}
			case terminal.ColorMode256:
				if got.Kind == terminal.ColorRGB {
					t.Errorf("mode %v: %+v resolved to too-rich %+v", mode, c, got)
				}
			}
		}
	}
}

// A color already within the tier passes through unchanged
func TestResolveColorIdentity(t *testing.T) {
	tests := []struct {
		color terminal.Color
		mode  terminal.ColorMode
	}{
		{terminal.ANSI(5), terminal.ColorMode16},
		{terminal.ANSI(5), terminal.ColorMode256},
		{terminal.Palette(120), terminal.ColorMode256},
		{terminal.Palette(120), terminal.ColorModeTrueColor},
		{terminal.RGB(10, 20, 30), terminal.ColorModeTrueColor},
	}

	for _, tt := range tests {
		if got := ResolveColor(tt.color, tt.mode); got != tt.color {
			t.Errorf("ResolveColor(%+v, %v) = %+v, want unchanged", tt.color, tt.mode, got)
		}
	}
}

// Resolution is deterministic: same input, same output
func TestResolveColorDeterministic(t *testing.T) {
	c := terminal.RGB(123, 45, 67)
	for _, mode := range allModes {
		first := ResolveColor(c, mode)
		for i := 0; i < 10; i++ {
			if got := ResolveColor(c, mode); got != first {
				t.Errorf("mode %v: resolution not deterministic: %+v vs %+v", mode, first, got)
			}
		}
	}
}

// Exact palette colors downgrade to themselves
func TestNearestExactMatch(t *testing.T) {
	// Palette index 39 (0,175,255) has no duplicate earlier in the
	// palette, so the exact value must map back to itself
	r, g, b := PaletteRGB(39)
	if got := Nearest256(r, g, b); got != 39 {
		t.Errorf("Nearest256(%d,%d,%d) = %d, want 39", r, g, b, got)
	}

	// Nominal ANSI red
	if got := Nearest16(205, 0, 0); got != 1 {
		t.Errorf("Nearest16(205,0,0) = %d, want 1", got)
	}
}

func TestResolveKeepsAttrs(t *testing.T) {
	st := terminal.Style{
		Fg:    terminal.RGB(200, 100, 50),
		Bg:    terminal.Palette(17),
		Attrs: terminal.AttrBold | terminal.AttrUnderline,
	}
	for _, mode := range allModes {
		got := Resolve(st, mode)
		if got.Attrs != st.Attrs {
			t.Errorf("mode %v: attrs changed from %v to %v", mode, st.Attrs, got.Attrs)
		}
	}
}

func TestResolverMemoizes(t *testing.T) {
	r := NewResolver(terminal.ColorMode16)
	st := terminal.Style{Fg: terminal.RGB(1, 2, 3)}

	first := r.Resolve(st)
	second := r.Resolve(st)
	if first != second {
		t.Errorf("memoized resolve differs: %+v vs %+v", first, second)
	}
	if first != Resolve(st, terminal.ColorMode16) {
		t.Errorf("memoized resolve disagrees with direct resolve")
	}
}
