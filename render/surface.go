package render

import (
	"github.com/lixenwraith/tuikit/terminal"
	"github.com/lixenwraith/tuikit/text"
)

// Surface is a clipped, translated view of a Buffer handed to a
// component for rendering. Coordinates are local to the component's
// box; anything outside it is discarded, so a component cannot paint
// over its neighbors.
type Surface struct {
	buf  *Buffer
	x, y int
	w, h int
}

// Clip returns a surface covering the given region of the buffer,
// intersected with the buffer bounds
func (b *Buffer) Clip(x, y, w, h int) *Surface {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > b.width {
		w = b.width - x
	}
	if y+h > b.height {
		h = b.height - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Surface{buf: b, x: x, y: y, w: w, h: h}
}

// Size returns the surface dimensions
func (s *Surface) Size() (int, int) {
	return s.w, s.h
}

// Set places one cluster at local (x, y), dropped when outside the clip
func (s *Surface) Set(x, y int, cluster string, width int, st terminal.Style) {
	if x < 0 || y < 0 || y >= s.h || x+width > s.w {
		return
	}
	s.buf.Set(s.x+x, s.y+y, cluster, width, st)
}

// SetText writes s starting at local (x, y), wrapping within the clip
// width. Returns the local position after the last cluster.
func (s *Surface) SetText(x, y int, str string, st terminal.Style) (int, int) {
	for _, cl := range text.Clusters(str) {
		if cl.Width == 0 {
			continue
		}
		if y >= s.h {
			break
		}
		if x+cl.Width > s.w {
			x = 0
			y++
			if y >= s.h {
				break
			}
		}
		s.Set(x, y, cl.Text, cl.Width, st)
		x += cl.Width
	}
	return x, y
}

// Fill paints the whole surface with styled spaces
func (s *Surface) Fill(st terminal.Style) {
	s.buf.Fill(s.x, s.y, s.w, s.h, st)
}

// FillRect paints a local sub-rect with styled spaces
func (s *Surface) FillRect(x, y, w, h int, st terminal.Style) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > s.w {
		w = s.w - x
	}
	if y+h > s.h {
		h = s.h - y
	}
	s.buf.Fill(s.x+x, s.y+y, w, h, st)
}
