package terminal

import (
	"bytes"
	"sync"
)

// MemBackend is an in-memory Backend for tests and headless rendering.
// Input is fed byte-for-byte through FeedInput; output accumulates in a
// buffer; Resize invokes the registered handler like SIGWINCH would.
type MemBackend struct {
	mu      sync.Mutex
	width   int
	height  int
	out     bytes.Buffer
	inputCh chan []byte
	resize  func(int, int)
}

// NewMemBackend creates a backend reporting the given size
func NewMemBackend(width, height int) *MemBackend {
	return &MemBackend{
		width:   width,
		height:  height,
		inputCh: make(chan []byte, 64),
	}
}

func (b *MemBackend) Init() error { return nil }
func (b *MemBackend) Fini()       {}

func (b *MemBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *MemBackend) Write(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.Write(p)
	return nil
}

func (b *MemBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	select {
	case data := <-b.inputCh:
		return data, nil
	case <-stopCh:
		return nil, nil
	}
}

func (b *MemBackend) SetResizeHandler(handler func(width, height int)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resize = handler
}

// FeedInput queues raw bytes as if typed at the terminal
func (b *MemBackend) FeedInput(p []byte) {
	b.inputCh <- p
}

// Resize changes the reported size and fires the resize handler
func (b *MemBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	handler := b.resize
	b.mu.Unlock()

	if handler != nil {
		handler(width, height)
	}
}

// Output returns everything written so far
func (b *MemBackend) Output() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out.String()
}

// ResetOutput discards accumulated output
func (b *MemBackend) ResetOutput() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.Reset()
}
