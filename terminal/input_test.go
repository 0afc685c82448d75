package terminal

import (
	"testing"
)

// collectParse runs the parser over one chunk and drains resulting
// events
func collectParse(t *testing.T, data []byte) ([]Event, int) {
	t.Helper()
	r := newInputReader(NewMemBackend(80, 24))
	consumed := r.parse(data)

	var events []Event
	for {
		select {
		case ev := <-r.eventCh:
			events = append(events, ev)
		default:
			return events, consumed
		}
	}
}

func TestParsePrintable(t *testing.T) {
	events, consumed := collectParse(t, []byte("ab"))
	if consumed != 2 || len(events) != 2 {
		t.Fatalf("consumed=%d events=%d", consumed, len(events))
	}
	if events[0].Key != KeyRune || events[0].Rune != 'a' {
		t.Errorf("event 0 = %+v", events[0])
	}
	if events[1].Rune != 'b' {
		t.Errorf("event 1 = %+v", events[1])
	}
}

func TestParseSpace(t *testing.T) {
	events, _ := collectParse(t, []byte(" "))
	if len(events) != 1 || events[0].Key != KeySpace {
		t.Errorf("space = %+v", events)
	}
}

func TestParseUTF8(t *testing.T) {
	events, consumed := collectParse(t, []byte("你"))
	if consumed != 3 || len(events) != 1 {
		t.Fatalf("consumed=%d events=%d", consumed, len(events))
	}
	if events[0].Key != KeyRune || events[0].Rune != '你' {
		t.Errorf("event = %+v", events[0])
	}
}

func TestParseIncompleteUTF8Waits(t *testing.T) {
	// First two bytes of a three-byte sequence
	_, consumed := collectParse(t, []byte("\xe4\xbd"))
	if consumed != 0 {
		t.Errorf("consumed=%d, want 0 for incomplete rune", consumed)
	}
}

func TestParseControlKeys(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		key   Key
		mods  Modifier
	}{
		{"enter", []byte{0x0d}, KeyEnter, ModNone},
		{"tab", []byte{0x09}, KeyTab, ModNone},
		{"backspace del", []byte{0x7f}, KeyBackspace, ModNone},
		{"ctrl-c", []byte{0x03}, KeyCtrlC, ModCtrl},
		{"ctrl-space", []byte{0x00}, KeyCtrlSpace, ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, _ := collectParse(t, tt.input)
			if len(events) != 1 {
				t.Fatalf("got %d events", len(events))
			}
			if events[0].Key != tt.key || events[0].Modifiers != tt.mods {
				t.Errorf("event = %+v, want key %v mods %v", events[0], tt.key, tt.mods)
			}
		})
	}
}

func TestParseCSIKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   Key
		mods  Modifier
	}{
		{"up", "\x1b[A", KeyUp, ModNone},
		{"down", "\x1b[B", KeyDown, ModNone},
		{"shift-tab", "\x1b[Z", KeyBacktab, ModShift},
		{"delete", "\x1b[3~", KeyDelete, ModNone},
		{"page up", "\x1b[5~", KeyPageUp, ModNone},
		{"ctrl-right", "\x1b[1;5C", KeyRight, ModCtrl},
		{"shift-f5", "\x1b[15;2~", KeyF5, ModShift},
		{"ss3 f1", "\x1bOP", KeyF1, ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, _ := collectParse(t, []byte(tt.input))
			if len(events) != 1 {
				t.Fatalf("got %d events: %+v", len(events), events)
			}
			if events[0].Key != tt.key || events[0].Modifiers != tt.mods {
				t.Errorf("event = %+v, want key %v mods %v", events[0], tt.key, tt.mods)
			}
		})
	}
}

func TestParseAltKey(t *testing.T) {
	events, _ := collectParse(t, []byte("\x1bf"))
	if len(events) != 1 {
		t.Fatalf("got %d events", len(events))
	}
	ev := events[0]
	if ev.Key != KeyRune || ev.Rune != 'f' || ev.Modifiers != ModAlt {
		t.Errorf("event = %+v, want Alt+f", ev)
	}
}

func TestParseEscEsc(t *testing.T) {
	events, consumed := collectParse(t, []byte("\x1b\x1b[A"))
	if consumed != 4 {
		t.Fatalf("consumed=%d", consumed)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events: %+v", len(events), events)
	}
	if events[0].Key != KeyEscape {
		t.Errorf("first = %+v, want Escape", events[0])
	}
	if events[1].Key != KeyUp {
		t.Errorf("second = %+v, want Up", events[1])
	}
}

func TestParseIncompleteCSIWaits(t *testing.T) {
	_, consumed := collectParse(t, []byte("\x1b[1;5"))
	if consumed != 0 {
		t.Errorf("consumed=%d, want 0 for incomplete CSI", consumed)
	}
}

func TestParseSGRMouse(t *testing.T) {
	events, _ := collectParse(t, []byte("\x1b[<0;5;7M"))
	if len(events) != 1 {
		t.Fatalf("got %d events", len(events))
	}
	ev := events[0]
	if ev.Type != EventMouse {
		t.Fatalf("type = %v", ev.Type)
	}
	// SGR coordinates are 1-based on the wire
	if ev.MouseX != 4 || ev.MouseY != 6 {
		t.Errorf("position = (%d,%d), want (4,6)", ev.MouseX, ev.MouseY)
	}
	if ev.MouseBtn != MouseBtnLeft || ev.MouseAction != MouseActionPress {
		t.Errorf("button = %v action = %v", ev.MouseBtn, ev.MouseAction)
	}
}

func TestParseMouseRelease(t *testing.T) {
	events, _ := collectParse(t, []byte("\x1b[<0;1;1m"))
	if len(events) != 1 || events[0].MouseAction != MouseActionRelease {
		t.Errorf("events = %+v, want release", events)
	}
}

func TestParseWheel(t *testing.T) {
	events, _ := collectParse(t, []byte("\x1b[<64;10;10M"))
	if len(events) != 1 || events[0].MouseBtn != MouseBtnWheelUp {
		t.Errorf("events = %+v, want wheel up", events)
	}
}

func TestParseBracketedPaste(t *testing.T) {
	events, consumed := collectParse(t, []byte("\x1b[200~hello\nworld\x1b[201~"))
	if len(events) != 1 {
		t.Fatalf("got %d events: %+v", len(events), events)
	}
	ev := events[0]
	if ev.Type != EventPaste || ev.Paste != "hello\nworld" {
		t.Errorf("paste = %+v", ev)
	}
	if consumed != len("\x1b[200~hello\nworld\x1b[201~") {
		t.Errorf("consumed = %d", consumed)
	}
}

func TestParseIncompletePasteWaits(t *testing.T) {
	_, consumed := collectParse(t, []byte("\x1b[200~partial"))
	if consumed != 0 {
		t.Errorf("consumed=%d, want 0 until terminator arrives", consumed)
	}
}

func TestParseUnknownCSISwallowed(t *testing.T) {
	events, consumed := collectParse(t, []byte("\x1b[99Xq"))
	if consumed != len("\x1b[99Xq") {
		t.Errorf("consumed=%d", consumed)
	}
	// The unknown sequence is dropped; the trailing q survives
	if len(events) != 1 || events[0].Rune != 'q' {
		t.Errorf("events = %+v, want only q", events)
	}
}
