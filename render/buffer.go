// Package render owns the frame buffers and the frame differ. A Buffer
// is a grid of styled grapheme cells; two of them (current and
// previous) exist per window, and Diff between them yields the minimal
// paint commands for a flicker-free update.
package render

import (
	"github.com/lixenwraith/tuikit/style"
	"github.com/lixenwraith/tuikit/terminal"
	"github.com/lixenwraith/tuikit/text"
)

// Cell is an alias to terminal.Cell; buffers hand their cells straight
// to the output path without copying through another representation.
type Cell = terminal.Cell

// Buffer is a W×H grid of cells. Wide glyphs occupy a head cell
// (Width 2) followed by a continuation cell (Width 0); writes that
// clip either half of such a pair blank the other half so a torn
// glyph can never reach the terminal.
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a buffer of the given dimensions cleared to styled
// spaces, ready to paint on.
func NewBuffer(width, height int) *Buffer {
	b := NewLayer(width, height)
	b.Clear(terminal.Style{})
	return b
}

// NewLayer creates a buffer of zero cells. Zero cells are transparent
// to Composite, so a layer only covers what was drawn onto it.
func NewLayer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
	}
}

// Size returns the buffer dimensions
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

// Resize adjusts dimensions, reallocating only when capacity is
// insufficient. Contents are invalidated; the caller owns repainting.
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Invalidate()
}

// Clear fills every cell with a styled space using exponential copy
func (b *Buffer) Clear(st terminal.Style) {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Content: " ", Width: 1, Style: st}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Invalidate zeroes every cell. A zero cell compares unequal to any
// painted cell, so diffing against an invalidated buffer forces a full
// repaint — the state the previous buffer must be in after a resize.
func (b *Buffer) Invalidate() {
	for i := range b.cells {
		b.cells[i] = Cell{}
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// CellAt returns the cell at (x, y); ok is false out of bounds
func (b *Buffer) CellAt(x, y int) (Cell, bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[y*b.width+x], true
}

// Row returns a read view of row y, nil when out of range
func (b *Buffer) Row(y int) []Cell {
	if y < 0 || y >= b.height {
		return nil
	}
	return b.cells[y*b.width : (y+1)*b.width]
}

// Set places a single cluster of the given display width at (x, y).
// Glyph halves torn by the write are blanked in the same style.
func (b *Buffer) Set(x, y int, cluster string, width int, st terminal.Style) {
	if !b.inBounds(x, y) || width <= 0 {
		return
	}
	if width > 2 {
		width = 2
	}
	// A wide glyph at the last column has no room for its
	// continuation cell
	if width == 2 && x == b.width-1 {
		b.blankCell(x, y, st)
		return
	}

	b.clearOverlap(x, y, st)
	if width == 2 {
		b.clearOverlap(x+1, y, st)
	}

	idx := y*b.width + x
	b.cells[idx] = Cell{Content: cluster, Width: uint8(width), Style: st}
	if width == 2 {
		b.cells[idx+1] = Cell{Width: 0, Style: st} // continuation
	}
}

func (b *Buffer) blankCell(x, y int, st terminal.Style) {
	b.clearOverlap(x, y, st)
	b.cells[y*b.width+x] = Cell{Content: " ", Width: 1, Style: st}
}

// clearOverlap repairs a wide-glyph pair that the upcoming write at
// (x, y) would tear apart
func (b *Buffer) clearOverlap(x, y int, st terminal.Style) {
	idx := y*b.width + x
	c := b.cells[idx]

	if c.Width == 2 && x+1 < b.width {
		// Overwriting a head orphans its continuation
		b.cells[idx+1] = Cell{Content: " ", Width: 1, Style: st}
		return
	}
	if c.Continuation() && x > 0 {
		if head := b.cells[idx-1]; head.Width == 2 {
			b.cells[idx-1] = Cell{Content: " ", Width: 1, Style: head.Style}
		}
	}
}

// SetText writes s starting at (x, y), wrapping to the next row when a
// cluster does not fit. A wide glyph that would straddle the last
// column wraps whole to the next row; it is never split. Returns the
// position after the last cluster written.
func (b *Buffer) SetText(x, y int, s string, st terminal.Style) (int, int) {
	for _, cl := range text.Clusters(s) {
		if cl.Width == 0 {
			continue
		}
		if y >= b.height {
			break
		}
		if x+cl.Width > b.width {
			x = 0
			y++
			if y >= b.height {
				break
			}
		}
		b.Set(x, y, cl.Text, cl.Width, st)
		x += cl.Width
	}
	return x, y
}

// Fill paints the rect with styled spaces, clipped to the buffer
func (b *Buffer) Fill(x, y, w, h int, st terminal.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			if b.inBounds(col, row) {
				b.blankCell(col, row, st)
			}
		}
	}
}

// Composite overlays src onto b: per-cell last-writer-wins, no
// blending. Zero cells in src are transparent. A wide head carries its
// continuation cell with it so pairs stay intact. Mismatched
// dimensions are ignored.
func (b *Buffer) Composite(src *Buffer) {
	if src == nil || src.width != b.width || src.height != b.height {
		return
	}
	for y := 0; y < b.height; y++ {
		row := y * b.width
		for x := 0; x < b.width; x++ {
			c := src.cells[row+x]
			if c == (Cell{}) || c.Continuation() {
				continue
			}
			if c.Width == 2 && x+1 < b.width {
				b.clearOverlap(x, y, c.Style)
				b.clearOverlap(x+1, y, c.Style)
				b.cells[row+x] = c
				b.cells[row+x+1] = src.cells[row+x+1]
				x++
				continue
			}
			b.clearOverlap(x, y, c.Style)
			b.cells[row+x] = c
		}
	}
}

// ResolveStyles maps every cell's style through the resolver, bringing
// the whole frame down to the terminal's capability tier in one pass
func (b *Buffer) ResolveStyles(r *style.Resolver) {
	for i := range b.cells {
		b.cells[i].Style = r.Resolve(b.cells[i].Style)
	}
}

// CopyFrom makes b an exact copy of src, resizing as needed
func (b *Buffer) CopyFrom(src *Buffer) {
	if b.width != src.width || b.height != src.height {
		b.Resize(src.width, src.height)
	}
	copy(b.cells, src.cells)
}
