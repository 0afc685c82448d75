package component

import (
	"github.com/lixenwraith/tuikit/layout"
	"github.com/lixenwraith/tuikit/store"
	"github.com/lixenwraith/tuikit/terminal"
)

// FallbackHandler receives events no focused component handled
type FallbackHandler func(terminal.Event) (store.Action, bool)

// Registry tracks the live component tree and owns focus. It is
// rebuilt from the fresh tree every frame; focus survives rebuilds by
// FocusID, not by tree position.
type Registry struct {
	order    []Component
	byID     map[FocusID]Component
	boxes    map[FocusID]layout.Rect
	focused  FocusID
	fallback FallbackHandler
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byID:  make(map[FocusID]Component),
		boxes: make(map[FocusID]layout.Rect),
	}
}

// SetFallback installs the handler for events nothing else claimed
func (r *Registry) SetFallback(fn FallbackHandler) {
	r.fallback = fn
}

// Rebuild replaces the registry contents from a fresh tree in preorder
// traversal. Duplicate IDs keep the first registration; later ones are
// unreachable for focus and input. If the focused ID is gone or no
// longer focusable, focus moves to the first focusable component.
func (r *Registry) Rebuild(root Component, boxes map[FocusID]layout.Rect) {
	r.order = r.order[:0]
	clear(r.byID)
	r.boxes = boxes
	r.collect(root)

	if c, ok := r.byID[r.focused]; !ok || !c.Focusable() {
		r.focused = r.firstFocusable()
	}
}

func (r *Registry) collect(c Component) {
	if c == nil {
		return
	}
	if _, dup := r.byID[c.ID()]; !dup {
		r.byID[c.ID()] = c
		r.order = append(r.order, c)
	}
	for _, child := range c.Children() {
		r.collect(child)
	}
}

func (r *Registry) firstFocusable() FocusID {
	for _, c := range r.order {
		if c.Focusable() {
			return c.ID()
		}
	}
	return ""
}

// Focused returns the ID holding focus, empty when nothing is focusable
func (r *Registry) Focused() FocusID {
	return r.focused
}

// Focus moves focus to the given component if it exists and is
// focusable, reporting whether it did
func (r *Registry) Focus(id FocusID) bool {
	c, ok := r.byID[id]
	if !ok || !c.Focusable() {
		return false
	}
	r.focused = id
	return true
}

// Box returns the computed box of a component from the last rebuild
func (r *Registry) Box(id FocusID) (layout.Rect, bool) {
	box, ok := r.boxes[id]
	return box, ok
}

// NextFocus advances focus to the next focusable component in traversal
// order, wrapping cyclically. N components means N presses return to
// the start.
func (r *Registry) NextFocus() {
	r.moveFocus(1)
}

// PrevFocus moves focus backwards, wrapping cyclically
func (r *Registry) PrevFocus() {
	r.moveFocus(-1)
}

func (r *Registry) moveFocus(step int) {
	if len(r.order) == 0 {
		return
	}

	start := r.indexOf(r.focused)
	if start < 0 {
		r.focused = r.firstFocusable()
		return
	}

	n := len(r.order)
	for i := 1; i <= n; i++ {
		idx := ((start+step*i)%n + n) % n
		if r.order[idx].Focusable() {
			r.focused = r.order[idx].ID()
			return
		}
	}
}

func (r *Registry) indexOf(id FocusID) int {
	for i, c := range r.order {
		if c.ID() == id {
			return i
		}
	}
	return -1
}

// ComponentAt returns the deepest component whose box contains the
// point, for mouse routing. Preorder puts children after parents, so
// the last hit wins.
func (r *Registry) ComponentAt(x, y int) (Component, bool) {
	var found Component
	for _, c := range r.order {
		if box, ok := r.boxes[c.ID()]; ok && box.Contains(x, y) {
			found = c
		}
	}
	return found, found != nil
}

// DispatchInput routes an event: mouse events go to the component under
// the cursor, everything else to the focused component, with the
// fallback handler picking up whatever is left unhandled.
func (r *Registry) DispatchInput(ev terminal.Event) (store.Action, bool) {
	var target Component

	if ev.Type == terminal.EventMouse {
		if c, ok := r.ComponentAt(ev.MouseX, ev.MouseY); ok {
			target = c
		}
	} else if c, ok := r.byID[r.focused]; ok {
		target = c
	}

	if target != nil {
		if action, handled := target.HandleInput(ev); handled {
			return action, true
		}
	}
	if r.fallback != nil {
		return r.fallback(ev)
	}
	return nil, false
}
