package style

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Nominal RGB values for the 16 ANSI colors. Terminals theme these
// freely, but downgrade needs a fixed reference to search against.
var ansiRGB = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

// xterm color cube levels for palette indices 16-231
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// paletteRGB holds the full 256-entry xterm palette; paletteCol and
// ansiCol hold the same colors as colorful values built once, so
// nearest lookups are a linear DistanceLab scan without re-parsing.
var (
	paletteRGB [256][3]uint8
	paletteCol [256]colorful.Color
	ansiCol    [16]colorful.Color
)

func init() {
	for i := 0; i < 16; i++ {
		paletteRGB[i] = ansiRGB[i]
	}
	for i := 16; i < 232; i++ {
		n := i - 16
		paletteRGB[i] = [3]uint8{
			cubeLevels[n/36],
			cubeLevels[(n/6)%6],
			cubeLevels[n%6],
		}
	}
	for i := 232; i < 256; i++ {
		v := uint8(8 + (i-232)*10)
		paletteRGB[i] = [3]uint8{v, v, v}
	}

	for i, c := range paletteRGB {
		paletteCol[i] = colorOf(c[0], c[1], c[2])
	}
	for i, c := range ansiRGB {
		ansiCol[i] = colorOf(c[0], c[1], c[2])
	}
}

func colorOf(r, g, b uint8) colorful.Color {
	return colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

// Nearest256 returns the xterm palette index perceptually closest to
// the given RGB value (minimum CIE Lab distance; ties keep the lowest
// index).
func Nearest256(r, g, b uint8) uint8 {
	target := colorOf(r, g, b)
	best := 0
	bestDist := target.DistanceLab(paletteCol[0])
	for i := 1; i < 256; i++ {
		d := target.DistanceLab(paletteCol[i])
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}

// Nearest16 returns the ANSI color index perceptually closest to the
// given RGB value.
func Nearest16(r, g, b uint8) uint8 {
	target := colorOf(r, g, b)
	best := 0
	bestDist := target.DistanceLab(ansiCol[0])
	for i := 1; i < 16; i++ {
		d := target.DistanceLab(ansiCol[i])
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}

// PaletteRGB returns the nominal RGB value of an xterm palette index
func PaletteRGB(index uint8) (r, g, b uint8) {
	c := paletteRGB[index]
	return c[0], c[1], c[2]
}
