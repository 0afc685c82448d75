package terminal

// MouseButton represents mouse button identity
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
)

// MouseAction represents the type of mouse event
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionMove
	MouseActionDrag
)

// MouseMode controls which mouse events are reported (bitmask)
type MouseMode uint8

const (
	MouseModeNone   MouseMode = 0
	MouseModeClick  MouseMode = 1 << 0 // press/release
	MouseModeDrag   MouseMode = 1 << 1 // button held + motion
	MouseModeMotion MouseMode = 1 << 2 // all motion
)

// String returns a human-readable button name
func (b MouseButton) String() string {
	switch b {
	case MouseBtnLeft:
		return "Left"
	case MouseBtnMiddle:
		return "Middle"
	case MouseBtnRight:
		return "Right"
	case MouseBtnWheelUp:
		return "WheelUp"
	case MouseBtnWheelDown:
		return "WheelDown"
	default:
		return "None"
	}
}

// decodeSGRMouse translates the button code and final byte of an SGR
// mouse report (ESC [ < code ; x ; y M/m) into button and action.
func decodeSGRMouse(code int, final byte) (MouseButton, MouseAction) {
	motion := code&32 != 0
	var btn MouseButton

	switch {
	case code&64 != 0:
		// wheel events encode direction in the low bits
		if code&1 != 0 {
			btn = MouseBtnWheelDown
		} else {
			btn = MouseBtnWheelUp
		}
		return btn, MouseActionPress
	default:
		switch code & 3 {
		case 0:
			btn = MouseBtnLeft
		case 1:
			btn = MouseBtnMiddle
		case 2:
			btn = MouseBtnRight
		case 3:
			btn = MouseBtnNone
		}
	}

	switch {
	case motion && btn != MouseBtnNone:
		return btn, MouseActionDrag
	case motion:
		return btn, MouseActionMove
	case final == 'm':
		return btn, MouseActionRelease
	default:
		return btn, MouseActionPress
	}
}
