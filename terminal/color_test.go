package terminal

import "testing"

// clearTermEnv blanks every variable the detector consults so the host
// environment cannot leak into assertions
func clearTermEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"NO_COLOR", "TERM", "COLORTERM",
		"KITTY_WINDOW_ID", "KONSOLE_VERSION", "ITERM_SESSION_ID",
		"ALACRITTY_WINDOW_ID", "WEZTERM_PANE",
	} {
		t.Setenv(v, "")
	}
}

func TestDetectColorMode(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want ColorMode
	}{
		{"no_color wins", map[string]string{"NO_COLOR": "1", "TERM": "xterm-256color", "COLORTERM": "truecolor"}, ColorModeNone},
		{"empty term", map[string]string{}, ColorModeNone},
		{"dumb term", map[string]string{"TERM": "dumb"}, ColorModeNone},
		{"colorterm truecolor", map[string]string{"TERM": "xterm", "COLORTERM": "truecolor"}, ColorModeTrueColor},
		{"colorterm 24bit", map[string]string{"TERM": "xterm", "COLORTERM": "24bit"}, ColorModeTrueColor},
		{"kitty", map[string]string{"TERM": "xterm-256color", "KITTY_WINDOW_ID": "1"}, ColorModeTrueColor},
		{"term direct", map[string]string{"TERM": "xterm-direct"}, ColorModeTrueColor},
		{"term 256color", map[string]string{"TERM": "screen-256color"}, ColorMode256},
		{"plain xterm", map[string]string{"TERM": "xterm"}, ColorMode16},
		{"plain vt100", map[string]string{"TERM": "vt100"}, ColorMode16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTermEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := DetectColorMode(); got != tt.want {
				t.Errorf("DetectColorMode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorModeOrdering(t *testing.T) {
	if !(ColorModeNone < ColorMode16 && ColorMode16 < ColorMode256 && ColorMode256 < ColorModeTrueColor) {
		t.Errorf("color modes must order weakest to strongest")
	}
}

func TestPalette256RGBRoundTrip(t *testing.T) {
	// Cube index arithmetic: 196 = 16 + 36*5 = pure red
	r, g, b := palette256RGB(196)
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("palette256RGB(196) = (%d,%d,%d), want (255,0,0)", r, g, b)
	}

	// Grayscale ramp
	r, g, b = palette256RGB(232)
	if r != 8 || g != 8 || b != 8 {
		t.Errorf("palette256RGB(232) = (%d,%d,%d), want (8,8,8)", r, g, b)
	}
}
