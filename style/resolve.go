// Package style resolves declared styles against terminal capability.
// The downgrade chain is total and deterministic: truecolor → 256-color
// → 16-color → attributes only. Components declare whatever colors they
// want; what reaches the painter is always representable on the actual
// terminal.
package style

import (
	"github.com/lixenwraith/tuikit/terminal"
)

// ResolveColor downgrades a single color to the given capability tier.
// Resolving a color already within the tier returns it unchanged.
func ResolveColor(c terminal.Color, mode terminal.ColorMode) terminal.Color {
	if c.Kind == terminal.ColorDefault {
		return c
	}
	if mode == terminal.ColorModeNone {
		return terminal.Default
	}

	switch c.Kind {
	case terminal.ColorRGB:
		switch {
		case mode >= terminal.ColorModeTrueColor:
			return c
		case mode >= terminal.ColorMode256:
			return terminal.Palette(Nearest256(c.R, c.G, c.B))
		default:
			return terminal.ANSI(Nearest16(c.R, c.G, c.B))
		}

	case terminal.Color256:
		if mode >= terminal.ColorMode256 {
			return c
		}
		r, g, b := PaletteRGB(c.Index)
		return terminal.ANSI(Nearest16(r, g, b))

	default: // ColorANSI fits every tier with color support
		return c
	}
}

// Resolve downgrades a style to the given capability tier. Attributes
// pass through except at ColorModeNone-without-attributes, which does
// not exist as a tier here: attribute support is assumed wherever the
// terminal honors SGR at all, so emphasis survives the loss of color.
func Resolve(st terminal.Style, mode terminal.ColorMode) terminal.Style {
	return terminal.Style{
		Fg:    ResolveColor(st.Fg, mode),
		Bg:    ResolveColor(st.Bg, mode),
		Attrs: st.Attrs,
	}
}

// Resolver memoizes Resolve for a fixed mode. A frame typically reuses
// a handful of styles across thousands of cells; the cache turns the
// Lab searches into map hits.
type Resolver struct {
	mode  terminal.ColorMode
	cache map[terminal.Style]terminal.Style
}

// NewResolver creates a memoizing resolver for one capability tier
func NewResolver(mode terminal.ColorMode) *Resolver {
	return &Resolver{
		mode:  mode,
		cache: make(map[terminal.Style]terminal.Style, 64),
	}
}

// Resolve returns the downgraded style, computing it at most once per
// distinct input
func (r *Resolver) Resolve(st terminal.Style) terminal.Style {
	if resolved, ok := r.cache[st]; ok {
		return resolved
	}
	resolved := Resolve(st, r.mode)
	r.cache[st] = resolved
	return resolved
}

// Mode returns the tier this resolver targets
func (r *Resolver) Mode() terminal.ColorMode {
	return r.mode
}
