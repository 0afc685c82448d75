package terminal

import "strconv"

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete
	KeySpace

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+A..Ctrl+Z occupy a contiguous block so parseControl can
	// compute them from the byte value
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	KeyCtrlSpace
)

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

var keyNames = map[Key]string{
	KeyRune:      "Rune",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBacktab:   "Backtab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeySpace:     "Space",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyInsert:    "Insert",
	KeyCtrlSpace: "Ctrl+Space",
}

// String returns a human-readable key name
func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	if k >= KeyF1 && k <= KeyF12 {
		return "F" + strconv.Itoa(int(k-KeyF1)+1)
	}
	if k >= KeyCtrlA && k <= KeyCtrlZ {
		return "Ctrl+" + string(rune('A'+k-KeyCtrlA))
	}
	return "None"
}

type sequenceEntry struct {
	key Key
	mod Modifier
}

// csiMap and ss3Map are built at init from the compact tables below.
// xterm encodes modifiers as 1+bits(shift=1,alt=2,ctrl=4), so each
// base sequence expands to its eight modified variants.
var (
	csiMap = make(map[string]sequenceEntry)
	ss3Map = make(map[string]sequenceEntry)
)

// letter-final CSI sequences: ESC [ <final> and ESC [ 1 ; <mod> <final>
var csiLetterKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

// tilde-final CSI sequences: ESC [ <code> ~ and ESC [ <code> ; <mod> ~
var csiTildeKeys = map[string]Key{
	"1":  KeyHome,
	"2":  KeyInsert,
	"3":  KeyDelete,
	"4":  KeyEnd,
	"5":  KeyPageUp,
	"6":  KeyPageDown,
	"7":  KeyHome,
	"8":  KeyEnd,
	"11": KeyF1,
	"12": KeyF2,
	"13": KeyF3,
	"14": KeyF4,
	"15": KeyF5,
	"17": KeyF6,
	"18": KeyF7,
	"19": KeyF8,
	"20": KeyF9,
	"21": KeyF10,
	"23": KeyF11,
	"24": KeyF12,
}

// modifierFromCode decodes the xterm modifier parameter (2-8)
func modifierFromCode(code int) Modifier {
	bits := code - 1
	var m Modifier
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	return m
}

func init() {
	for final, key := range csiLetterKeys {
		csiMap[string(final)] = sequenceEntry{key, ModNone}
		for code := 2; code <= 8; code++ {
			seq := "1;" + strconv.Itoa(code) + string(final)
			csiMap[seq] = sequenceEntry{key, modifierFromCode(code)}
		}
	}
	for code, key := range csiTildeKeys {
		csiMap[code+"~"] = sequenceEntry{key, ModNone}
		for mod := 2; mod <= 8; mod++ {
			seq := code + ";" + strconv.Itoa(mod) + "~"
			csiMap[seq] = sequenceEntry{key, modifierFromCode(mod)}
		}
	}
	csiMap["Z"] = sequenceEntry{KeyBacktab, ModShift}

	for _, s := range []struct {
		seq string
		key Key
	}{
		{"A", KeyUp}, {"B", KeyDown}, {"C", KeyRight}, {"D", KeyLeft},
		{"H", KeyHome}, {"F", KeyEnd},
		{"P", KeyF1}, {"Q", KeyF2}, {"R", KeyF3}, {"S", KeyF4},
		{"M", KeyEnter}, // keypad enter in application mode
	} {
		ss3Map[s.seq] = sequenceEntry{s.key, ModNone}
	}
}

// lookupCSI resolves a CSI body (bytes between ESC [ and the final byte,
// inclusive of the final). The string([]byte) conversion inline in the
// map access does not allocate.
func lookupCSI(seq []byte) (Key, Modifier, bool) {
	if s, ok := csiMap[string(seq)]; ok {
		return s.key, s.mod, true
	}
	return KeyNone, ModNone, false
}

// lookupSS3 resolves an SS3 sequence (byte after ESC O)
func lookupSS3(seq []byte) (Key, Modifier, bool) {
	if s, ok := ss3Map[string(seq)]; ok {
		return s.key, s.mod, true
	}
	return KeyNone, ModNone, false
}
