//go:build !unix

package terminal

import "errors"

// Non-unix platforms have no native backend; use the tcellterm package
// for a portable Terminal there.
type stubBackend struct{}

func newBackend() Backend {
	return stubBackend{}
}

func (stubBackend) Init() error {
	return errors.New("no native terminal backend on this platform")
}

func (stubBackend) Fini()                                {}
func (stubBackend) Size() (int, int)                     { return 80, 24 }
func (stubBackend) Write(p []byte) error                 { return nil }
func (stubBackend) SetResizeHandler(func(int, int))      {}
func (stubBackend) Read(<-chan struct{}) ([]byte, error) { return nil, nil }

func resetTerminalMode() {}
