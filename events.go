package amino

// Key is a platform-independent key code. Platforms translate their own codes into these and
// drop the rest.
type Key int

const (
	KeyUnknown Key = iota
	KeyKP2
	KeyKP4
	KeyKP6
	KeyKP8
	KeyKPPlus
	KeyKPMinus
	KeyHome
	KeyF11
	KeyEscape
)

func (k Key) String() string {
	switch k {
	case KeyKP2:
		return "KP2"
	case KeyKP4:
		return "KP4"
	case KeyKP6:
		return "KP6"
	case KeyKP8:
		return "KP8"
	case KeyKPPlus:
		return "KP+"
	case KeyKPMinus:
		return "KP-"
	case KeyHome:
		return "Home"
	case KeyF11:
		return "F11"
	case KeyEscape:
		return "Escape"
	}
	return "Unknown"
}

type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// ButtonMask is the set of mouse buttons held while an event was generated.
type ButtonMask uint8

func Buttons(held ...MouseButton) ButtonMask {
	var m ButtonMask
	for _, b := range held {
		m |= 1 << b
	}
	return m
}

func (m ButtonMask) Has(b MouseButton) bool {
	return m&(1<<b) != 0
}

// Modifiers is the modifier-key context sampled once per poll pass.
type Modifiers struct {
	Shift    bool
	Ctrl     bool
	Alt      bool
	CapsLock bool
}

func (m Modifiers) None() bool {
	return !m.Shift && !m.Ctrl && !m.Alt
}

// Event is one of the event variants below. Anything else is ignored by the dispatcher.
type Event interface {
	isEvent()
}

type KeyDownEvent struct {
	Key Key
}

type MouseButtonEvent struct {
	Button  MouseButton
	Pressed bool
	X, Y    float64
}

type MouseMotionEvent struct {
	X, Y    float64
	Buttons ButtonMask
}

type MouseWheelEvent struct {
	// Delta is positive when the wheel turns away from the user.
	Delta   float64
	Buttons ButtonMask
}

type ResizeEvent struct {
	Width, Height int
}

type ExposeEvent struct{}

type QuitEvent struct{}

func (KeyDownEvent) isEvent()     {}
func (MouseButtonEvent) isEvent() {}
func (MouseMotionEvent) isEvent() {}
func (MouseWheelEvent) isEvent()  {}
func (ResizeEvent) isEvent()      {}
func (ExposeEvent) isEvent()      {}
func (QuitEvent) isEvent()        {}
