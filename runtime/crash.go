package runtime

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/lixenwraith/tuikit/terminal"
)

// crashTerminal is the terminal to restore when a goroutine panics
// outside the main loop's recover
var crashTerminal atomic.Pointer[terminalRef]

type terminalRef struct {
	t terminal.Terminal
}

func registerCrashTerminal(t terminal.Terminal) {
	crashTerminal.Store(&terminalRef{t: t})
}

func unregisterCrashTerminal() {
	crashTerminal.Store(nil)
}

// HandleCrash resets the terminal and prints the panic with its stack
// trace to stderr, then exits. Without the reset the raw-mode terminal
// would swallow the trace and leave the shell unusable.
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if ref := crashTerminal.Load(); ref != nil && ref.t != nil {
		ref.t.Fini()
	} else {
		terminal.EmergencyReset(os.Stdout)
	}

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mpanic: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "%s\r\n", debug.Stack())
	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery. Application
// goroutines started through Go restore the terminal before the
// process dies instead of leaving raw mode behind.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
