package terminal

import (
	"bufio"
	"io"
)

// outputWriter turns PaintCommands into ANSI output. It tracks cursor
// position and the last emitted style so consecutive cells sharing a
// style cost no extra SGR bytes, and renders colors down to whatever
// the active ColorMode can express.
type outputWriter struct {
	writer *bufio.Writer
	mode   ColorMode

	cursorX     int
	cursorY     int
	cursorValid bool

	lastStyle  Style
	styleValid bool
}

func newOutputWriter(w io.Writer, mode ColorMode) *outputWriter {
	return &outputWriter{
		writer: bufio.NewWriterSize(w, 131072), // 128KB, one frame fits
		mode:   mode,
	}
}

// apply writes a batch of paint commands and flushes.
// Continuation cells advance nothing; the wide glyph before them
// already moved the cursor past their columns.
func (o *outputWriter) apply(cmds []PaintCommand) {
	w := o.writer

	for _, cmd := range cmds {
		if !o.cursorValid || cmd.X != o.cursorX || cmd.Y != o.cursorY {
			writeCursorPos(w, cmd.X, cmd.Y)
			o.cursorX = cmd.X
			o.cursorY = cmd.Y
			o.cursorValid = true
		}

		for _, c := range cmd.Cells {
			if c.Width == 0 {
				continue
			}
			o.writeStyle(c.Style)
			if c.Content == "" {
				w.WriteByte(' ')
			} else {
				w.WriteString(c.Content)
			}
			o.cursorX += int(c.Width)
		}
	}

	w.Write(csiSGR0)
	o.styleValid = false
	w.Flush()
}

// clear paints the whole screen with the given style's background
func (o *outputWriter) clear(st Style) {
	w := o.writer
	w.Write(csiSGR0)
	o.writeStyleBody(st)
	w.Write(csiClear)
	o.styleValid = false
	o.cursorValid = false
	w.Flush()
}

// invalidate drops cursor and style tracking, e.g. after an external
// write moved the cursor
func (o *outputWriter) invalidate() {
	o.cursorValid = false
	o.styleValid = false
}

// writeStyle emits an SGR sequence when the style differs from the last
// one written
func (o *outputWriter) writeStyle(st Style) {
	if o.styleValid && st == o.lastStyle {
		return
	}
	o.writer.Write(csiSGR0)
	o.writeStyleBody(st)
	o.lastStyle = st
	o.styleValid = true
}

func (o *outputWriter) writeStyleBody(st Style) {
	w := o.writer

	attrs := st.Attrs
	if attrs != AttrNone {
		w.Write(csi)
		first := true
		for _, a := range [...]struct {
			bit  Attr
			code byte
		}{
			{AttrBold, '1'},
			{AttrDim, '2'},
			{AttrItalic, '3'},
			{AttrUnderline, '4'},
			{AttrBlink, '5'},
			{AttrReverse, '7'},
		} {
			if attrs&a.bit != 0 {
				if !first {
					w.WriteByte(';')
				}
				w.WriteByte(a.code)
				first = false
			}
		}
		w.WriteByte('m')
	}

	if o.mode == ColorModeNone {
		return
	}
	o.writeColor(st.Fg, false)
	o.writeColor(st.Bg, true)
}

// writeColor emits one color, downgrading representations the active
// mode cannot express. Cells normally arrive pre-resolved by the style
// package; this is the floor that keeps output valid regardless.
func (o *outputWriter) writeColor(c Color, bg bool) {
	w := o.writer

	switch c.Kind {
	case ColorDefault:
		return

	case ColorANSI:
		o.writeANSIIndex(c.Index, bg)

	case Color256:
		if o.mode >= ColorMode256 {
			w.Write(csi)
			if bg {
				w.Write(csiBg256)
			} else {
				w.Write(csiFg256)
			}
			writeInt(w, int(c.Index))
			w.WriteByte('m')
			return
		}
		r, g, b := palette256RGB(c.Index)
		o.writeANSIIndex(quantize16(r, g, b), bg)

	case ColorRGB:
		switch {
		case o.mode >= ColorModeTrueColor:
			w.Write(csi)
			if bg {
				w.Write(csiBgRGB)
			} else {
				w.Write(csiFgRGB)
			}
			writeInt(w, int(c.R))
			w.WriteByte(';')
			writeInt(w, int(c.G))
			w.WriteByte(';')
			writeInt(w, int(c.B))
			w.WriteByte('m')
		case o.mode >= ColorMode256:
			w.Write(csi)
			if bg {
				w.Write(csiBg256)
			} else {
				w.Write(csiFg256)
			}
			writeInt(w, int(quantize256(c.R, c.G, c.B)))
			w.WriteByte('m')
		default:
			o.writeANSIIndex(quantize16(c.R, c.G, c.B), bg)
		}
	}
}

// writeANSIIndex emits a basic 16-color SGR (30-37/90-97, 40-47/100-107)
func (o *outputWriter) writeANSIIndex(idx uint8, bg bool) {
	w := o.writer
	base := 30
	if idx >= 8 {
		base = 90
		idx -= 8
	}
	if bg {
		base += 10
	}
	w.Write(csi)
	writeInt(w, base+int(idx))
	w.WriteByte('m')
}
