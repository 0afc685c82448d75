package component

import (
	"github.com/lixenwraith/tuikit/layout"
	"github.com/lixenwraith/tuikit/render"
	"github.com/lixenwraith/tuikit/terminal"
	"github.com/lixenwraith/tuikit/text"
)

// Text is a static styled text widget. Content wraps at the box edge
// with whole graphemes; a wide glyph never splits across rows.
type Text struct {
	Base
	FID      FocusID
	Content  string
	Styling  terminal.Style
	Layout   layout.Props
	CanFocus bool
	OnInput  func(terminal.Event) (any, bool)
}

// NewText creates a text widget with the given identity and content
func NewText(id FocusID, content string) *Text {
	return &Text{FID: id, Content: content}
}

func (t *Text) ID() FocusID           { return t.FID }
func (t *Text) Props() layout.Props   { return t.Layout }
func (t *Text) Style() terminal.Style { return t.Styling }
func (t *Text) Focusable() bool       { return t.CanFocus }

func (t *Text) Measure(avail layout.Size) layout.Size {
	if avail.W <= 0 {
		return layout.Size{W: text.StringWidth(t.Content), H: 1}
	}
	lines := text.Wrap(t.Content, avail.W)
	w := 0
	for _, line := range lines {
		if lw := text.StringWidth(line); lw > w {
			w = lw
		}
	}
	return layout.Size{W: w, H: len(lines)}
}

func (t *Text) Render(s *render.Surface) {
	s.Fill(t.Styling)
	w, _ := s.Size()
	if w <= 0 {
		return
	}
	for y, line := range text.Wrap(t.Content, w) {
		s.SetText(0, y, line, t.Styling)
	}
}

func (t *Text) HandleInput(ev terminal.Event) (any, bool) {
	if t.OnInput == nil {
		return nil, false
	}
	return t.OnInput(ev)
}

// Box is a container widget: background fill plus child arrangement
// driven by its layout props
type Box struct {
	Base
	FID     FocusID
	Styling terminal.Style
	Layout  layout.Props
	Kids    []Component
}

// NewBox creates a container with the given identity and children
func NewBox(id FocusID, props layout.Props, children ...Component) *Box {
	return &Box{FID: id, Layout: props, Kids: children}
}

func (b *Box) ID() FocusID           { return b.FID }
func (b *Box) Props() layout.Props   { return b.Layout }
func (b *Box) Style() terminal.Style { return b.Styling }
func (b *Box) Children() []Component { return b.Kids }

func (b *Box) Render(s *render.Surface) {
	s.Fill(b.Styling)
}
