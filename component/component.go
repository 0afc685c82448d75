// Package component defines the component model and the focus
// registry. Components form a tree rebuilt from state every frame;
// identity across frames is the FocusID, not the Go value.
package component

import (
	"github.com/lixenwraith/tuikit/layout"
	"github.com/lixenwraith/tuikit/render"
	"github.com/lixenwraith/tuikit/store"
	"github.com/lixenwraith/tuikit/terminal"
)

// FocusID names a component across frame rebuilds. IDs must be unique
// within a tree; the registry enforces first-registration-wins.
type FocusID string

// Component is one node of the UI tree
type Component interface {
	ID() FocusID
	Props() layout.Props
	Style() terminal.Style
	Children() []Component

	// Measure returns the intrinsic minimum content size within the
	// available space
	Measure(avail layout.Size) layout.Size

	// Render draws the component onto its clipped surface. The surface
	// covers exactly the component's computed box.
	Render(surface *render.Surface)

	// HandleInput reacts to an event routed to this component. The
	// returned action is dispatched when handled is true; a false
	// return lets the event fall through.
	HandleInput(ev terminal.Event) (action store.Action, handled bool)

	Focusable() bool
}

// Base carries default implementations for the optional parts of
// Component; widgets embed it and override what they need.
type Base struct{}

func (Base) Props() layout.Props                             { return layout.Props{} }
func (Base) Style() terminal.Style                           { return terminal.Style{} }
func (Base) Children() []Component                           { return nil }
func (Base) Measure(layout.Size) layout.Size                 { return layout.Size{} }
func (Base) Render(*render.Surface)                          {}
func (Base) HandleInput(terminal.Event) (store.Action, bool) { return nil, false }
func (Base) Focusable() bool                                 { return false }

// node adapts a Component to layout.Node
type node struct {
	c Component
}

func (n node) ID() string { return string(n.c.ID()) }

func (n node) Props() layout.Props { return n.c.Props() }

func (n node) Children() []layout.Node {
	children := n.c.Children()
	if len(children) == 0 {
		return nil
	}
	out := make([]layout.Node, len(children))
	for i, c := range children {
		out[i] = node{c: c}
	}
	return out
}

func (n node) Measure(avail layout.Size) layout.Size {
	return n.c.Measure(avail)
}

// ComputeLayout runs the layout solver over a component tree and
// returns each component's box keyed by FocusID
func ComputeLayout(root Component, avail layout.Size) map[FocusID]layout.Rect {
	boxes := make(map[FocusID]layout.Rect)
	if root == nil {
		return boxes
	}
	for id, box := range layout.Compute(node{c: root}, avail) {
		boxes[FocusID(id)] = box
	}
	return boxes
}

// RenderTree draws the tree onto the buffer, parents before children so
// children overdraw their container background
func RenderTree(root Component, boxes map[FocusID]layout.Rect, buf *render.Buffer) {
	if root == nil {
		return
	}
	box, ok := boxes[root.ID()]
	if ok && box.W > 0 && box.H > 0 {
		root.Render(buf.Clip(box.X, box.Y, box.W, box.H))
	}
	for _, child := range root.Children() {
		RenderTree(child, boxes, buf)
	}
}
