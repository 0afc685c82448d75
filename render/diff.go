package render

import "github.com/lixenwraith/tuikit/terminal"

// Diff compares two buffers and returns the paint commands that turn
// previous into current. Equal buffers produce no commands. Adjacent
// changed cells on a row coalesce into one command; a changed
// continuation cell pulls its head into the run so wide glyphs are
// always repainted whole. Buffers of different sizes yield a full
// repaint of current.
func Diff(previous, current *Buffer) []terminal.PaintCommand {
	if current == nil {
		return nil
	}
	if previous == nil || previous.width != current.width || previous.height != current.height {
		return fullRepaint(current)
	}

	var cmds []terminal.PaintCommand
	w := current.width

	for y := 0; y < current.height; y++ {
		prevRow := previous.cells[y*w : (y+1)*w]
		curRow := current.cells[y*w : (y+1)*w]

		x := 0
		for x < w {
			if curRow[x] == prevRow[x] {
				x++
				continue
			}

			start := x
			// A torn continuation repaints from its head
			if curRow[start].Continuation() && start > 0 {
				start--
			}

			end := x + 1
			for end < w {
				if curRow[end] != prevRow[end] {
					end++
					continue
				}
				// An unchanged continuation after a changed head still
				// belongs to the run
				if curRow[end].Continuation() && curRow[end-1].Width == 2 {
					end++
					continue
				}
				break
			}

			cells := make([]Cell, end-start)
			copy(cells, curRow[start:end])
			cmds = append(cmds, terminal.PaintCommand{X: start, Y: y, Cells: cells})
			x = end
		}
	}
	return cmds
}

// fullRepaint emits one command per row covering the whole buffer
func fullRepaint(b *Buffer) []terminal.PaintCommand {
	if b.width == 0 || b.height == 0 {
		return nil
	}
	cmds := make([]terminal.PaintCommand, 0, b.height)
	for y := 0; y < b.height; y++ {
		cells := make([]Cell, b.width)
		copy(cells, b.Row(y))
		cmds = append(cmds, terminal.PaintCommand{X: 0, Y: y, Cells: cells})
	}
	return cmds
}

// ApplyCommands replays paint commands onto a buffer. The painter model
// and the terminal agree by construction: applying Diff(prev, cur) to a
// copy of prev yields cur.
func ApplyCommands(b *Buffer, cmds []terminal.PaintCommand) {
	for _, cmd := range cmds {
		for i, c := range cmd.Cells {
			x := cmd.X + i
			if b.inBounds(x, cmd.Y) {
				b.cells[cmd.Y*b.width+x] = c
			}
		}
	}
}
