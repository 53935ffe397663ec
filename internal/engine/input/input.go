// Package input turns window-system events into camera and render-mode
// mutations.
package input

// EventType identifies a window-system event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventExpose
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Event is a window-system event stripped of backend types.
type Event struct {
	Type EventType

	// Key is the lower-case key name, e.g. "escape", "r", "=".
	Key    string
	Repeat bool

	Width  int
	Height int

	X, Y   float32
	Button MouseButton
	Wheel  float32

	// Modifier is true while ctrl or shift is held.
	Modifier bool
}

// MouseControl is the cursor state the router tracks between events.
type MouseControl struct {
	LeftButtonDown bool
	ModifierDown   bool
	LastX, LastY   float32
}

// PumpMode selects how a surface collects pending events.
type PumpMode int

const (
	// Blocking waits for at least one event.
	Blocking PumpMode = iota
	// NonBlocking returns immediately, possibly with no events.
	NonBlocking
)
