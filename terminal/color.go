package terminal

import (
	"os"
	"strings"
)

// ColorMode indicates terminal color capability, ordered weakest first
// so tiers compare with <.
type ColorMode uint8

const (
	ColorModeNone      ColorMode = iota // no color, attributes only
	ColorMode16                         // 16 ANSI colors
	ColorMode256                        // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// String returns the flag-friendly name of the mode.
func (m ColorMode) String() string {
	switch m {
	case ColorModeNone:
		return "none"
	case ColorMode16:
		return "16"
	case ColorMode256:
		return "256"
	default:
		return "truecolor"
	}
}

// Color cube values for the 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// grayscale ramp starts at index 232 (24 shades, luminance 8..238)
const grayscaleStart = 232

// basic16 holds nominal RGB values for the 16 ANSI colors, used only
// for the output writer's last-resort quantization. The perceptual
// downgrade in the style package has its own palette.
var basic16 = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// nearestCube maps a channel value to the nearest cube level index 0-5.
func nearestCube(v uint8) uint8 {
	best := 0
	bestDist := abs(int(v) - int(cubeValues[0]))
	for i := 1; i < 6; i++ {
		d := abs(int(v) - int(cubeValues[i]))
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}

// quantize256 finds a close 256-color palette index for an RGB value.
// Channel-distance heuristic, good enough for the writer fallback path;
// the style package does the perceptual search before cells get here.
func quantize256(r, g, b uint8) uint8 {
	gray := (int(r) + int(g) + int(b)) / 3
	maxDiff := max(abs(int(r)-gray), abs(int(g)-gray), abs(int(b)-gray))

	if maxDiff < 10 {
		if gray < 4 {
			return 16 // cube black
		}
		if gray > 243 {
			return 231 // cube white
		}
		grayIdx := uint8(grayscaleStart + (gray-8)/10)

		grayLevel := 8 + int(grayIdx-grayscaleStart)*10
		grayDist := abs(int(r)-grayLevel) + abs(int(g)-grayLevel) + abs(int(b)-grayLevel)

		cr, cg, cb := nearestCube(r), nearestCube(g), nearestCube(b)
		cubeDist := abs(int(r)-int(cubeValues[cr])) +
			abs(int(g)-int(cubeValues[cg])) +
			abs(int(b)-int(cubeValues[cb]))

		if grayDist < cubeDist {
			return grayIdx
		}
	}

	return 16 + 36*nearestCube(r) + 6*nearestCube(g) + nearestCube(b)
}

// quantize16 finds the nearest basic ANSI color by channel distance.
func quantize16(r, g, b uint8) uint8 {
	best := 0
	bestDist := 1 << 30
	for i, c := range basic16 {
		d := abs(int(r)-int(c[0])) + abs(int(g)-int(c[1])) + abs(int(b)-int(c[2]))
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}

// palette256RGB returns the nominal RGB value of an xterm palette index.
func palette256RGB(idx uint8) (uint8, uint8, uint8) {
	if idx < 16 {
		c := basic16[idx]
		return c[0], c[1], c[2]
	}
	if idx < grayscaleStart {
		i := idx - 16
		return cubeValues[i/36], cubeValues[(i/6)%6], cubeValues[i%6]
	}
	v := uint8(8 + int(idx-grayscaleStart)*10)
	return v, v, v
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	// NO_COLOR is an explicit opt-out
	if os.Getenv("NO_COLOR") != "" {
		return ColorModeNone
	}

	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return ColorModeNone
	}

	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	// Terminal-specific env vars set by modern truecolor emulators
	for _, v := range []string{
		"KITTY_WINDOW_ID",
		"KONSOLE_VERSION",
		"ITERM_SESSION_ID",
		"ALACRITTY_WINDOW_ID",
		"WEZTERM_PANE",
	} {
		if os.Getenv(v) != "" {
			return ColorModeTrueColor
		}
	}

	termLower := strings.ToLower(term)
	if strings.Contains(termLower, "truecolor") ||
		strings.Contains(termLower, "24bit") ||
		strings.Contains(termLower, "direct") {
		return ColorModeTrueColor
	}
	if strings.Contains(termLower, "256color") {
		return ColorMode256
	}

	return ColorMode16
}
