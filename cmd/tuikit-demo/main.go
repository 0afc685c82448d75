package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/lixenwraith/tuikit/component"
	"github.com/lixenwraith/tuikit/layout"
	"github.com/lixenwraith/tuikit/runtime"
	"github.com/lixenwraith/tuikit/store"
	"github.com/lixenwraith/tuikit/terminal"
	"github.com/lixenwraith/tuikit/terminal/tcellterm"
	"github.com/lixenwraith/tuikit/theme"
)

var (
	colorModeFlag = flag.String("color", "auto", "Color mode: auto, none, 16, 256, truecolor")
	backendFlag   = flag.String("backend", "native", "Terminal backend: native, tcell")
	themeFlag     = flag.String("theme", "", "Theme TOML file (optional, hot reloaded)")
	logFlag       = flag.String("log", "", "Log file (optional)")
)

type demoState struct {
	counter int
	clock   string
	theme   *theme.Theme
}

type incAction struct{ delta int }
type clockAction struct{ now time.Time }
type themeAction struct{ theme *theme.Theme }
type quitKey struct{}

func reduce(s demoState, action store.Action) demoState {
	switch a := action.(type) {
	case incAction:
		s.counter += a.delta
	case clockAction:
		s.clock = a.now.Format("15:04:05")
	case themeAction:
		s.theme = a.theme
	}
	return s
}

func view(s demoState) component.Component {
	th := s.theme

	header := component.NewText("header", " tuikit demo  (Tab cycles focus, q quits)")
	header.Styling = terminal.Style{Fg: th.Accent.Color, Attrs: terminal.AttrBold}
	header.Layout = layout.Props{Height: layout.Cells(1)}

	counter := component.NewText("counter", fmt.Sprintf("counter: %d", s.counter))
	counter.Styling = th.Base()
	counter.Layout = layout.Props{Grow: 1, Padding: layout.Even(1)}

	dec := button("dec", "[ - ]", -1, th)
	inc := button("inc", "[ + ]", +1, th)
	buttons := component.NewBox("buttons",
		layout.Props{Direction: layout.Row, Height: layout.Cells(3), Padding: layout.Even(1)},
		dec, inc)

	status := component.NewText("status", " "+s.clock)
	status.Styling = terminal.Style{Fg: th.Muted.Color}
	status.Layout = layout.Props{Height: layout.Cells(1)}

	return component.NewBox("root",
		layout.Props{Direction: layout.Column},
		header, counter, buttons, status)
}

func button(id component.FocusID, label string, delta int, th *theme.Theme) *component.Text {
	b := component.NewText(id, label)
	b.CanFocus = true
	b.Styling = terminal.Style{Fg: th.Accent.Color}
	b.Layout = layout.Props{Width: layout.Cells(7), Margin: layout.Spacing{Right: 2}}
	b.OnInput = func(ev terminal.Event) (store.Action, bool) {
		if ev.Type == terminal.EventKey && (ev.Key == terminal.KeyEnter || ev.Key == terminal.KeySpace) {
			return incAction{delta: delta}, true
		}
		if ev.Type == terminal.EventMouse && ev.MouseAction == terminal.MouseActionPress {
			return incAction{delta: delta}, true
		}
		return nil, false
	}
	return b
}

func main() {
	flag.Parse()

	logger := charmlog.New(io.Discard)
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = charmlog.New(f)
	}

	th := theme.Default()
	if *themeFlag != "" {
		loaded, err := theme.Load(*themeFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load theme: %v\n", err)
			os.Exit(1)
		}
		th = loaded
	}

	term, err := makeTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}

	app := runtime.New(
		demoState{theme: th, clock: time.Now().Format("15:04:05")},
		reduce,
		view,
		runtime.WithTerminal[demoState](term),
		runtime.WithLogger[demoState](logger),
		runtime.WithMouse[demoState](terminal.MouseModeClick),
		runtime.WithBackground[demoState](th.Base()),
		runtime.WithFallbackInput[demoState](func(ev terminal.Event) (store.Action, bool) {
			if ev.Type == terminal.EventKey {
				if ev.Rune == 'q' || ev.Key == terminal.KeyCtrlC {
					return runtime.QuitAction{}, true
				}
			}
			return nil, false
		}),
	)

	stopClock := app.Every(time.Second, func() store.Action {
		return clockAction{now: time.Now()}
	})
	defer stopClock()

	if *themeFlag != "" {
		stopWatch, werr := theme.Watch(*themeFlag,
			func(t *theme.Theme) {
				term.PostEvent(terminal.Event{Type: terminal.EventTick, Payload: themeAction{theme: t}})
			},
			func(e error) { logger.Error("theme reload", "err", e) },
		)
		if werr != nil {
			logger.Error("theme watch unavailable", "err", werr)
		} else {
			defer stopWatch()
		}
	}

	if err := app.Run(context.Background()); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		os.Exit(1)
	}
}

func makeTerminal() (terminal.Terminal, error) {
	if *backendFlag == "tcell" {
		t, err := tcellterm.New()
		if err != nil {
			return nil, err
		}
		return t, nil
	}

	var mode terminal.ColorMode
	switch *colorModeFlag {
	case "none":
		mode = terminal.ColorModeNone
	case "16":
		mode = terminal.ColorMode16
	case "256":
		mode = terminal.ColorMode256
	case "truecolor", "true", "24bit":
		mode = terminal.ColorModeTrueColor
	default:
		mode = terminal.DetectColorMode()
	}
	return terminal.New(mode), nil
}
