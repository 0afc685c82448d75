package render

import (
	"testing"

	"github.com/lixenwraith/tuikit/terminal"
)

func TestDiffEqualBuffersNoCommands(t *testing.T) {
	a := NewBuffer(20, 5)
	b := NewBuffer(20, 5)
	a.SetText(3, 2, "hello", terminal.Style{})
	b.SetText(3, 2, "hello", terminal.Style{})

	if cmds := Diff(a, b); len(cmds) != 0 {
		t.Errorf("equal buffers produced %d commands: %+v", len(cmds), cmds)
	}
}

func TestDiffSingleCellChange(t *testing.T) {
	prev := NewBuffer(20, 5)
	cur := NewBuffer(20, 5)
	cur.Set(7, 3, "x", 1, terminal.Style{})

	cmds := Diff(prev, cur)
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}
	cmd := cmds[0]
	if cmd.X != 7 || cmd.Y != 3 || len(cmd.Cells) != 1 {
		t.Errorf("command = %+v", cmd)
	}
	if cmd.Cells[0].Content != "x" {
		t.Errorf("command cell = %+v", cmd.Cells[0])
	}
}

// Adjacent changed cells on a row coalesce into one command
func TestDiffCoalescesRuns(t *testing.T) {
	prev := NewBuffer(20, 2)
	cur := NewBuffer(20, 2)
	cur.SetText(4, 1, "abc", terminal.Style{})

	cmds := Diff(prev, cur)
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1 coalesced run", len(cmds))
	}
	if cmds[0].X != 4 || cmds[0].Y != 1 || len(cmds[0].Cells) != 3 {
		t.Errorf("run = %+v", cmds[0])
	}
}

// Separate changes produce separate commands
func TestDiffSplitsDisjointRuns(t *testing.T) {
	prev := NewBuffer(20, 1)
	cur := NewBuffer(20, 1)
	cur.Set(1, 0, "a", 1, terminal.Style{})
	cur.Set(10, 0, "b", 1, terminal.Style{})

	cmds := Diff(prev, cur)
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(cmds))
	}
}

// A changed continuation cell pulls its head into the run
func TestDiffRepaintsWideGlyphWhole(t *testing.T) {
	prev := NewBuffer(10, 1)
	cur := NewBuffer(10, 1)

	st1 := terminal.Style{Fg: terminal.ANSI(1)}
	st2 := terminal.Style{Fg: terminal.ANSI(2)}
	prev.Set(2, 0, "你", 2, st1)
	cur.Set(2, 0, "你", 2, st2)

	cmds := Diff(prev, cur)
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}
	cmd := cmds[0]
	if cmd.X != 2 || len(cmd.Cells) != 2 {
		t.Errorf("wide repaint run = %+v, want head+continuation from x=2", cmd)
	}
	if cmd.Cells[0].Width != 2 {
		t.Errorf("run must start at the head cell, got %+v", cmd.Cells[0])
	}
}

// Applying the diff to a copy of previous reproduces current exactly
func TestDiffApplyEquivalence(t *testing.T) {
	prev := NewBuffer(30, 6)
	cur := NewBuffer(30, 6)

	prev.SetText(0, 0, "the quick brown fox", terminal.Style{})
	prev.Set(5, 3, "你", 2, terminal.Style{Fg: terminal.ANSI(3)})

	cur.SetText(0, 0, "the quick brown cat", terminal.Style{})
	cur.Set(6, 3, "好", 2, terminal.Style{Fg: terminal.ANSI(4)})
	cur.Fill(10, 4, 8, 2, terminal.Style{Bg: terminal.ANSI(5)})

	model := NewBuffer(30, 6)
	model.CopyFrom(prev)
	ApplyCommands(model, Diff(prev, cur))

	for y := 0; y < 6; y++ {
		for x := 0; x < 30; x++ {
			want, _ := cur.CellAt(x, y)
			got, _ := model.CellAt(x, y)
			if got != want {
				t.Errorf("cell (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

// Diffing against an invalidated buffer repaints every cell, the state
// after a resize
func TestDiffAfterInvalidateIsFullRepaint(t *testing.T) {
	prev := NewBuffer(10, 3)
	cur := NewBuffer(10, 3)
	prev.Invalidate()

	cmds := Diff(prev, cur)
	painted := 0
	for _, cmd := range cmds {
		painted += len(cmd.Cells)
	}
	if painted != 30 {
		t.Errorf("painted %d cells after invalidate, want all 30", painted)
	}
}

func TestDiffSizeMismatchFullRepaint(t *testing.T) {
	prev := NewBuffer(5, 2)
	cur := NewBuffer(8, 3)

	cmds := Diff(prev, cur)
	painted := 0
	for _, cmd := range cmds {
		painted += len(cmd.Cells)
	}
	if painted != 24 {
		t.Errorf("painted %d cells on size change, want all 24", painted)
	}
}

func TestResizeInvalidates(t *testing.T) {
	b := NewBuffer(5, 2)
	b.SetText(0, 0, "hello", terminal.Style{})
	b.Resize(6, 2)

	for y := 0; y < 2; y++ {
		for x := 0; x < 6; x++ {
			if c, _ := b.CellAt(x, y); c != (Cell{}) {
				t.Errorf("cell (%d,%d) = %+v, want zero after resize", x, y, c)
			}
		}
	}
}
