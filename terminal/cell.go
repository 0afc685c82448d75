package terminal

// ColorKind discriminates the representations a Color can hold.
type ColorKind uint8

const (
	ColorDefault ColorKind = iota // terminal default foreground/background
	ColorANSI                     // Index holds an ANSI color 0-15
	Color256                      // Index holds an xterm palette index 0-255
	ColorRGB                      // R/G/B hold a 24-bit color
)

// Color is a declared or resolved terminal color.
// The zero value is the terminal default.
type Color struct {
	Kind    ColorKind
	Index   uint8
	R, G, B uint8
}

// Default is the terminal's own default color.
var Default = Color{}

// RGB returns a 24-bit truecolor value.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// ANSI returns one of the 16 basic ANSI colors.
func ANSI(index uint8) Color {
	if index > 15 {
		index = 15
	}
	return Color{Kind: ColorANSI, Index: index}
}

// Palette returns an xterm 256-color palette entry.
func Palette(index uint8) Color {
	return Color{Kind: Color256, Index: index}
}

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
)

// Style is the visual attribute set attached to a cell: colors plus
// text attributes. Layout-affecting properties live in the layout
// package; Style is purely paint-level.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// Cell is a single grid cell: one grapheme cluster with its resolved
// style. A glyph wider than one column occupies Width cells; the cells
// after the first are continuation cells with Width 0 and empty
// Content, and are never painted independently.
type Cell struct {
	Content string
	Width   uint8
	Style   Style
}

// Continuation reports whether the cell is the tail of a wide glyph.
func (c Cell) Continuation() bool {
	return c.Width == 0 && c.Content == ""
}

// PaintCommand is one run-write: a horizontally adjacent span of cells
// starting at (X, Y). Runs are the unit of output so that a row of
// changed cells costs one cursor move.
type PaintCommand struct {
	X, Y  int
	Cells []Cell
}
