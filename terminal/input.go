package terminal

import (
	"sync"
	"time"
	"unicode/utf8"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey EventType = iota
	EventMouse
	EventResize
	EventPaste
	EventTick   // synthetic timer event, Payload carries the tick value
	EventError  // read error, see Err
	EventClosed // input closed, no further events follow
)

// Event represents a terminal input event. Resize and shutdown travel
// through the same stream as keys so consumers see one ordered queue.
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier

	Width  int // EventResize
	Height int // EventResize

	MouseX      int
	MouseY      int
	MouseBtn    MouseButton
	MouseAction MouseAction

	Paste   string // EventPaste
	Err     error  // EventError
	Payload any    // EventTick and application-posted events
}

// escapeTimeout distinguishes a standalone ESC press from the start of
// an escape sequence when no continuation bytes arrive.
const escapeTimeout = 50 * time.Millisecond

// inputReader parses the raw byte stream from a Backend into Events
type inputReader struct {
	backend Backend
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool

	// Persistent buffer for stream assembly; escape sequences and UTF-8
	// runes can straddle read boundaries
	buf     []byte
	escTime time.Time
}

func newInputReader(backend Backend) *inputReader {
	return &inputReader{
		backend: backend,
		eventCh: make(chan Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		buf:     make([]byte, 0, 256),
	}
}

func (r *inputReader) start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.readLoop()
}

func (r *inputReader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	select {
	case <-r.doneCh:
	case <-time.After(100 * time.Millisecond):
		// Reader stuck on a blocking read, proceed anyway
	}
}

func (r *inputReader) events() <-chan Event {
	return r.eventCh
}

func (r *inputReader) readLoop() {
	// Closing eventCh is the shutdown signal: a send into a channel a
	// stopped consumer never drains could race the stop and get dropped,
	// but a close is observed by every pending and future receive.
	defer close(r.doneCh)
	defer close(r.eventCh)

	for {
		data, err := r.backend.Read(r.stopCh)
		if err != nil {
			r.send(Event{Type: EventError, Err: err})
			return
		}

		if len(data) == 0 {
			// Poll timeout or stop. A lone buffered ESC past its
			// grace period is a real Escape press.
			if len(r.buf) == 1 && r.buf[0] == 0x1b && time.Since(r.escTime) >= escapeTimeout {
				r.send(Event{Type: EventKey, Key: KeyEscape})
				r.buf = r.buf[:0]
			}
			select {
			case <-r.stopCh:
				return
			default:
				continue
			}
		}

		if len(r.buf) == 0 && data[0] == 0x1b {
			r.escTime = time.Now()
		}
		r.buf = append(r.buf, data...)

		consumed := r.parse(r.buf)
		if consumed > 0 {
			if consumed >= len(r.buf) {
				r.buf = r.buf[:0]
			} else {
				copy(r.buf, r.buf[consumed:])
				r.buf = r.buf[:len(r.buf)-consumed]
			}
		}
	}
}

// parse consumes as many complete events as possible and returns the
// number of bytes consumed; it stops at an incomplete trailing sequence.
func (r *inputReader) parse(data []byte) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			if b == ' ' {
				r.send(Event{Type: EventKey, Key: KeySpace, Rune: ' '})
			} else {
				r.send(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			}
			i++
			continue
		}

		if b == 0x1b {
			if i+1 >= n {
				return i // wait for more data or the escape timeout
			}
			consumed, ev, ok := r.parseEscape(data[i:])
			if consumed == 0 {
				return i
			}
			if ok {
				r.send(ev)
			}
			i += consumed
			continue
		}

		if b < 0x20 {
			if ev := parseControl(b); ev.Key != KeyNone {
				r.send(ev)
			}
			i++
			continue
		}

		if b == 0x7f {
			r.send(Event{Type: EventKey, Key: KeyBackspace})
			i++
			continue
		}

		// UTF-8 multibyte
		if !utf8.FullRune(data[i:]) {
			return i
		}
		rn, size := utf8.DecodeRune(data[i:])
		if rn == utf8.RuneError && size == 1 {
			i++ // invalid byte, skip
			continue
		}
		r.send(Event{Type: EventKey, Key: KeyRune, Rune: rn})
		i += size
	}
	return i
}

// parseEscape parses one escape sequence starting at data[0] == ESC.
// Returns bytes consumed, the event, and whether to emit it. Consumed 0
// means the sequence is incomplete.
func (r *inputReader) parseEscape(data []byte) (int, Event, bool) {
	if len(data) < 2 {
		return 0, Event{}, false
	}

	switch data[1] {
	case '[':
		return r.parseCSI(data)
	case 'O':
		if len(data) < 3 {
			return 0, Event{}, false
		}
		if key, mod, ok := lookupSS3(data[2:3]); ok {
			return 3, Event{Type: EventKey, Key: key, Modifiers: mod}, true
		}
		return 3, Event{}, false
	case 0x1b:
		// ESC ESC: emit one Escape, leave the second for the next pass
		return 1, Event{Type: EventKey, Key: KeyEscape}, true
	default:
		// Alt+key: ESC followed by a regular byte
		if data[1] >= 0x20 && data[1] < 0x7f {
			return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(data[1]), Modifiers: ModAlt}, true
		}
		return 2, Event{}, false
	}
}

// parseCSI parses ESC [ ... sequences: keys, SGR mouse, bracketed paste
func (r *inputReader) parseCSI(data []byte) (int, Event, bool) {
	// Find the final byte (0x40-0x7e)
	end := -1
	for j := 2; j < len(data); j++ {
		if data[j] >= 0x40 && data[j] <= 0x7e {
			end = j
			break
		}
		if j > 40 {
			// Malformed flood, drop what we have
			return j, Event{}, false
		}
	}
	if end < 0 {
		return 0, Event{}, false
	}

	body := data[2:end]
	final := data[end]

	// SGR mouse: ESC [ < code ; x ; y (M|m)
	if len(body) > 0 && body[0] == '<' && (final == 'M' || final == 'm') {
		code, x, y, ok := splitMouseParams(body[1:])
		if !ok {
			return end + 1, Event{}, false
		}
		btn, action := decodeSGRMouse(code, final)
		return end + 1, Event{
			Type:        EventMouse,
			MouseX:      x - 1,
			MouseY:      y - 1,
			MouseBtn:    btn,
			MouseAction: action,
		}, true
	}

	// Bracketed paste: ESC [ 200~ payload ESC [ 201~
	if string(body) == "200" && final == '~' {
		return r.parsePaste(data, end+1)
	}

	seq := data[2 : end+1]
	if key, mod, ok := lookupCSI(seq); ok {
		return end + 1, Event{Type: EventKey, Key: key, Modifiers: mod}, true
	}
	// Unknown sequence: swallow it rather than leak bytes as runes
	return end + 1, Event{}, false
}

// parsePaste scans for the paste terminator and emits the payload verbatim
func (r *inputReader) parsePaste(data []byte, start int) (int, Event, bool) {
	const terminator = "\x1b[201~"
	for j := start; j+len(terminator) <= len(data); j++ {
		if string(data[j:j+len(terminator)]) == terminator {
			return j + len(terminator), Event{Type: EventPaste, Paste: string(data[start:j])}, true
		}
	}
	return 0, Event{}, false // terminator not yet received
}

// splitMouseParams parses "code;x;y" decimal params
func splitMouseParams(b []byte) (code, x, y int, ok bool) {
	vals := [3]int{}
	idx := 0
	for _, c := range b {
		switch {
		case c >= '0' && c <= '9':
			vals[idx] = vals[idx]*10 + int(c-'0')
		case c == ';':
			idx++
			if idx > 2 {
				return 0, 0, 0, false
			}
		default:
			return 0, 0, 0, false
		}
	}
	if idx != 2 {
		return 0, 0, 0, false
	}
	return vals[0], vals[1], vals[2], true
}

// parseControl maps C0 control bytes to key events
func parseControl(b byte) Event {
	switch b {
	case 0x00:
		return Event{Type: EventKey, Key: KeyCtrlSpace}
	case 0x08:
		return Event{Type: EventKey, Key: KeyBackspace}
	case 0x09:
		return Event{Type: EventKey, Key: KeyTab}
	case 0x0a, 0x0d:
		return Event{Type: EventKey, Key: KeyEnter}
	default:
		if b >= 0x01 && b <= 0x1a {
			return Event{
				Type:      EventKey,
				Key:       KeyCtrlA + Key(b-1),
				Rune:      rune('a' + b - 1),
				Modifiers: ModCtrl,
			}
		}
		return Event{Type: EventKey, Key: KeyNone}
	}
}

func (r *inputReader) send(ev Event) {
	select {
	case r.eventCh <- ev:
	case <-r.stopCh:
	}
}
