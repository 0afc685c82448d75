// Package layout computes bounding boxes for a component tree using a
// flex-style box model. Compute is a pure function: identical trees,
// props, and available sizes always produce identical boxes, with ties
// in space distribution broken by declaration order.
package layout

// Direction is the main axis of a flex container
type Direction uint8

const (
	Row    Direction = iota // children left to right
	Column                  // children top to bottom
)

// Spacing is padding or margin on all four sides, in cells
type Spacing struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Even returns uniform spacing on all sides
func Even(n int) Spacing {
	return Spacing{Top: n, Right: n, Bottom: n, Left: n}
}

func (s Spacing) horizontal() int { return s.Left + s.Right }
func (s Spacing) vertical() int   { return s.Top + s.Bottom }

// Dim is an optional size declaration: an absolute cell count or a
// percentage of the parent's content box. The zero value means "auto"
// (derive from content).
type Dim struct {
	Cells   int
	Percent int
}

// Cells declares an absolute size
func Cells(n int) Dim { return Dim{Cells: n} }

// Percent declares a size relative to the parent content box
func Percent(p int) Dim { return Dim{Percent: p} }

func (d Dim) isAuto() bool { return d.Cells == 0 && d.Percent == 0 }

// resolve turns the declaration into cells against the parent extent
func (d Dim) resolve(parent int) int {
	if d.Percent > 0 {
		return parent * d.Percent / 100
	}
	return d.Cells
}

// Props are the layout-affecting properties of a component. Paint-level
// attributes (colors, bold, ...) live in terminal.Style.
type Props struct {
	Direction Direction
	Grow      int
	Shrink    int
	Width     Dim
	Height    Dim
	MinWidth  int
	MinHeight int
	MaxWidth  int // 0 = unbounded
	MaxHeight int // 0 = unbounded
	Padding   Spacing
	Margin    Spacing
}

// Size is a width/height pair in cells
type Size struct {
	W, H int
}

// Rect is a resolved bounding box in terminal cell units. Never
// mutated after computation, only replaced on the next layout pass.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside the rect
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Inset shrinks the rect by the given spacing, clamping at zero size
func (r Rect) Inset(s Spacing) Rect {
	out := Rect{
		X: r.X + s.Left,
		Y: r.Y + s.Top,
		W: r.W - s.horizontal(),
		H: r.H - s.vertical(),
	}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Node is the layout view of a component tree. The component package
// adapts its Component interface to this; layout itself knows nothing
// about rendering or focus.
type Node interface {
	ID() string
	Props() Props
	Children() []Node
	// Measure returns the node's intrinsic minimum content size given
	// the available space, e.g. measured text
	Measure(avail Size) Size
}

// Compute lays out the tree within the available size and returns a
// fresh mapping of node ID to bounding box. An empty tree yields an
// empty map. No node is ever assigned negative dimensions; content
// that cannot fit is clamped to the space that exists.
func Compute(root Node, avail Size) map[string]Rect {
	boxes := make(map[string]Rect)
	if root == nil {
		return boxes
	}

	rootBox := Rect{X: 0, Y: 0, W: clampDim(avail.W), H: clampDim(avail.H)}
	arrange(root, rootBox, boxes)
	return boxes
}

func clampExtent(n, min, max int) int {
	if min > 0 && n < min {
		n = min
	}
	if max > 0 && n > max {
		n = max
	}
	return n
}

func clampDim(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// minSize computes pass 1: the intrinsic minimum of a node including
// its padding (margin belongs to the parent's arithmetic).
func minSize(n Node, avail Size) Size {
	p := n.Props()

	inner := Size{
		W: clampDim(avail.W - p.Padding.horizontal()),
		H: clampDim(avail.H - p.Padding.vertical()),
	}

	var content Size
	children := n.Children()
	if len(children) == 0 {
		content = n.Measure(inner)
	} else {
		// Sum along the main axis, max across the cross axis
		for _, child := range children {
			cm := childMin(child, inner)
			if p.Direction == Row {
				content.W += cm.W
				if cm.H > content.H {
					content.H = cm.H
				}
			} else {
				content.H += cm.H
				if cm.W > content.W {
					content.W = cm.W
				}
			}
		}
	}

	out := Size{
		W: content.W + p.Padding.horizontal(),
		H: content.H + p.Padding.vertical(),
	}
	return applyBounds(out, p, avail)
}

// childMin is a child's minimum footprint from the parent's view:
// intrinsic minimum plus margin.
func childMin(n Node, avail Size) Size {
	p := n.Props()
	m := minSize(n, avail)
	return Size{
		W: m.W + p.Margin.horizontal(),
		H: m.H + p.Margin.vertical(),
	}
}

// applyBounds resolves fixed/percent dims and min/max constraints
// against the space the parent offers
func applyBounds(s Size, p Props, parent Size) Size {
	if !p.Width.isAuto() {
		s.W = p.Width.resolve(parent.W)
	}
	if !p.Height.isAuto() {
		s.H = p.Height.resolve(parent.H)
	}
	if p.MinWidth > 0 && s.W < p.MinWidth {
		s.W = p.MinWidth
	}
	if p.MinHeight > 0 && s.H < p.MinHeight {
		s.H = p.MinHeight
	}
	if p.MaxWidth > 0 && s.W > p.MaxWidth {
		s.W = p.MaxWidth
	}
	if p.MaxHeight > 0 && s.H > p.MaxHeight {
		s.H = p.MaxHeight
	}
	return Size{W: clampDim(s.W), H: clampDim(s.H)}
}

// arrange performs pass 2: position children inside the node's box and
// recurse. box is the node's border box; children are placed in the
// content box (border box minus padding).
func arrange(n Node, box Rect, boxes map[string]Rect) {
	boxes[n.ID()] = box

	children := n.Children()
	if len(children) == 0 {
		return
	}

	p := n.Props()
	content := box.Inset(p.Padding)
	contentSize := Size{W: content.W, H: content.H}

	// Basis per child: declared main-axis size, else intrinsic minimum
	main := make([]int, len(children))
	grow := make([]int, len(children))
	shrink := make([]int, len(children))
	margins := make([]Spacing, len(children))
	used := 0

	for i, child := range children {
		cp := child.Props()
		margins[i] = cp.Margin
		grow[i] = cp.Grow
		shrink[i] = cp.Shrink

		cm := minSize(child, contentSize)
		if p.Direction == Row {
			main[i] = cm.W
			used += cm.W + cp.Margin.horizontal()
		} else {
			main[i] = cm.H
			used += cm.H + cp.Margin.vertical()
		}
	}

	limit := contentSize.W
	if p.Direction == Column {
		limit = contentSize.H
	}

	free := limit - used
	switch {
	case free > 0:
		distribute(main, grow, free)
	case free < 0:
		distribute(main, shrink, free)
		for i := range main {
			if main[i] < 0 {
				main[i] = 0
			}
		}
	}

	// Distribution can push past a child's declared bounds; clamp wins
	// over proportionality
	for i, child := range children {
		cp := child.Props()
		if p.Direction == Row {
			main[i] = clampExtent(main[i], cp.MinWidth, cp.MaxWidth)
		} else {
			main[i] = clampExtent(main[i], cp.MinHeight, cp.MaxHeight)
		}
	}

	// Walk the main axis assigning boxes in declaration order
	cursor := 0
	for i, child := range children {
		cp := child.Props()
		m := margins[i]

		var childBox Rect
		if p.Direction == Row {
			cross := clampDim(contentSize.H - m.vertical())
			childBox = Rect{
				X: content.X + cursor + m.Left,
				Y: content.Y + m.Top,
				W: clampDim(main[i]),
				H: crossExtent(cp, cross, contentSize, false),
			}
			cursor += main[i] + m.horizontal()
		} else {
			cross := clampDim(contentSize.W - m.horizontal())
			childBox = Rect{
				X: content.X + m.Left,
				Y: content.Y + cursor + m.Top,
				W: crossExtent(cp, cross, contentSize, true),
				H: clampDim(main[i]),
			}
			cursor += main[i] + m.vertical()
		}

		arrange(child, childBox, boxes)
	}
}

// crossExtent sizes the child across the container axis: stretch to the
// available cross space unless a dim or max bound says otherwise.
func crossExtent(p Props, avail int, parent Size, horizontal bool) int {
	out := avail
	if horizontal {
		if !p.Width.isAuto() {
			out = p.Width.resolve(parent.W)
		}
		if p.MaxWidth > 0 && out > p.MaxWidth {
			out = p.MaxWidth
		}
		if p.MinWidth > 0 && out < p.MinWidth {
			out = p.MinWidth
		}
	} else {
		if !p.Height.isAuto() {
			out = p.Height.resolve(parent.H)
		}
		if p.MaxHeight > 0 && out > p.MaxHeight {
			out = p.MaxHeight
		}
		if p.MinHeight > 0 && out < p.MinHeight {
			out = p.MinHeight
		}
	}
	if out > avail {
		out = avail
	}
	return clampDim(out)
}

// distribute splits delta across sizes proportionally to weights.
// Fractional remainders go to the lowest-index entries first so layout
// is repeatable. A zero weight sum leaves sizes untouched.
func distribute(sizes, weights []int, delta int) {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return
	}

	negative := delta < 0
	mag := delta
	if negative {
		mag = -mag
	}

	assigned := 0
	shares := make([]int, len(sizes))
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		shares[i] = mag * w / total
		assigned += shares[i]
	}

	// Remainder cells, one each, lowest index first
	rem := mag - assigned
	for i := 0; i < len(sizes) && rem > 0; i++ {
		if weights[i] > 0 {
			shares[i]++
			rem--
		}
	}

	for i := range sizes {
		if negative {
			sizes[i] -= shares[i]
		} else {
			sizes[i] += shares[i]
		}
	}
}
