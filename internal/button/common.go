package button

import "fmt"

// Pad is one of the capacitive touch pads.
type Pad int

const (
	PadA Pad = iota
	PadB
	PadC
)

func (p Pad) String() string {
	switch p {
	case PadA:
		return "A"
	case PadB:
		return "B"
	case PadC:
		return "C"
	}
	return fmt.Sprintf("Pad(%d)", int(p))
}

// TouchEvent is one press or release of a touch pad.
type TouchEvent struct {
	Pad     Pad
	Pressed bool
}

func (t TouchEvent) String() string {
	action := "pressed"
	if !t.Pressed {
		action = "released"
	}
	return fmt.Sprintf("Pad %v was %v", t.Pad, action)
}
