// Package theme loads named color themes from TOML files and watches
// them for changes. A theme maps widget roles to styles; components
// consult it instead of hardcoding colors so the whole application
// retints from one file.
package theme

import (
	"bytes"
	"fmt"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/tuikit/terminal"
)

// HexColor is a terminal color parsed from "#rrggbb" in TOML. An empty
// string keeps the terminal default.
type HexColor struct {
	terminal.Color
}

// UnmarshalText parses "#rrggbb" (and "#rgb") hex notation
func (h *HexColor) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		h.Color = terminal.Default
		return nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	h.Color = terminal.RGB(r, g, b)
	return nil
}

// Role styles of a theme. Zero-value colors mean terminal default.
type Theme struct {
	Name string `toml:"name"`

	Foreground HexColor `toml:"foreground"`
	Background HexColor `toml:"background"`

	Accent  HexColor `toml:"accent"`
	Muted   HexColor `toml:"muted"`
	Error   HexColor `toml:"error"`
	Warning HexColor `toml:"warning"`

	FocusFg HexColor `toml:"focus_fg"`
	FocusBg HexColor `toml:"focus_bg"`
}

// Default returns the built-in theme used when no file is configured
func Default() *Theme {
	return &Theme{
		Name:    "default",
		Accent:  HexColor{terminal.ANSI(6)},
		Muted:   HexColor{terminal.ANSI(8)},
		Error:   HexColor{terminal.ANSI(9)},
		Warning: HexColor{terminal.ANSI(11)},
		FocusFg: HexColor{terminal.ANSI(0)},
		FocusBg: HexColor{terminal.ANSI(14)},
	}
}

// Load reads a theme from a TOML file. Unknown keys are rejected so
// typos in role names surface as errors instead of silent defaults.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	return Parse(data)
}

// Parse decodes theme TOML
func Parse(data []byte) (*Theme, error) {
	t := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(t); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	return t, nil
}

// Base is the default style for uncolored cells
func (t *Theme) Base() terminal.Style {
	return terminal.Style{Fg: t.Foreground.Color, Bg: t.Background.Color}
}

// Focus is the style for the focused widget
func (t *Theme) Focus() terminal.Style {
	return terminal.Style{Fg: t.FocusFg.Color, Bg: t.FocusBg.Color}
}
