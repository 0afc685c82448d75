package terminal

// Backend abstracts platform-specific terminal operations so the
// terminal package can drive a real tty or an in-memory double in tests.
type Backend interface {
	// Init acquires the terminal (raw mode on a real tty)
	Init() error

	// Fini releases whatever Init acquired. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error

	// Read blocks until input is available, the stop channel is closed,
	// or an error occurs. A nil, nil return means timeout or stop.
	Read(stopCh <-chan struct{}) ([]byte, error)

	// SetResizeHandler registers a callback for terminal resize events
	SetResizeHandler(handler func(width, height int))
}
