package component

import (
	"strings"
	"testing"

	"github.com/lixenwraith/tuikit/layout"
	"github.com/lixenwraith/tuikit/render"
	"github.com/lixenwraith/tuikit/terminal"
)

func rowText(t *testing.T, buf *render.Buffer, y int) string {
	t.Helper()
	var b strings.Builder
	for _, c := range buf.Row(y) {
		if c.Continuation() {
			continue
		}
		b.WriteString(c.Content)
	}
	return b.String()
}

func TestTextMeasure(t *testing.T) {
	w := NewText("t", "hello world")

	// Unconstrained: one line
	size := w.Measure(layout.Size{W: 40, H: 10})
	if size.W != 11 || size.H != 1 {
		t.Errorf("Measure = %+v, want 11x1", size)
	}

	// Narrow: wraps at the word boundary
	size = w.Measure(layout.Size{W: 6, H: 10})
	if size.H != 2 {
		t.Errorf("Measure narrow = %+v, want 2 rows", size)
	}
}

func TestTextRenderWraps(t *testing.T) {
	w := NewText("t", "ab cd")
	buf := render.NewBuffer(3, 2)
	w.Render(buf.Clip(0, 0, 3, 2))

	if got := strings.TrimRight(rowText(t, buf, 0), " "); got != "ab" {
		t.Errorf("row 0 = %q, want ab", got)
	}
	if got := strings.TrimRight(rowText(t, buf, 1), " "); got != "cd" {
		t.Errorf("row 1 = %q, want cd", got)
	}
}

func TestBoxRenderFillsBackground(t *testing.T) {
	st := terminal.Style{Bg: terminal.ANSI(4)}
	b := NewBox("b", layout.Props{})
	b.Styling = st

	buf := render.NewBuffer(4, 2)
	b.Render(buf.Clip(0, 0, 4, 2))

	c, _ := buf.CellAt(3, 1)
	if c.Style != st {
		t.Errorf("cell style = %+v, want box background", c.Style)
	}
}

func TestComputeLayoutAndRenderTree(t *testing.T) {
	header := NewText("header", "top")
	header.Layout = layout.Props{Height: layout.Cells(1)}
	body := NewText("body", "main")
	body.Layout = layout.Props{Grow: 1}
	root := NewBox("root", layout.Props{Direction: layout.Column}, header, body)

	boxes := ComputeLayout(root, layout.Size{W: 10, H: 4})
	if boxes["header"].H != 1 || boxes["header"].Y != 0 {
		t.Errorf("header box = %+v", boxes["header"])
	}
	if boxes["body"].Y != 1 || boxes["body"].H != 3 {
		t.Errorf("body box = %+v", boxes["body"])
	}

	buf := render.NewBuffer(10, 4)
	RenderTree(root, boxes, buf)

	if got := rowText(t, buf, 0); !strings.HasPrefix(got, "top") {
		t.Errorf("row 0 = %q, want header text", got)
	}
	if got := rowText(t, buf, 1); !strings.HasPrefix(got, "main") {
		t.Errorf("row 1 = %q, want body text", got)
	}
}
