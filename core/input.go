package core

// Key identifies a keyboard key independent of the windowing backend.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEscape
)

var keyNames = map[Key]string{
	KeyUnknown: "unknown",
	KeyW:       "W",
	KeyA:       "A",
	KeyS:       "S",
	KeyD:       "D",
	KeyUp:      "Up",
	KeyDown:    "Down",
	KeyLeft:    "Left",
	KeyRight:   "Right",
	KeySpace:   "Space",
	KeyEscape:  "Escape",
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return "unknown"
}

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// Action is the transition reported for a key or button.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// Event is one discrete input or lifecycle notification delivered by the
// windowing backend during a poll cycle.
type Event interface {
	isEvent()
}

type KeyEvent struct {
	Key    Key
	Action Action
}

type MouseButtonEvent struct {
	Button MouseButton
	Action Action
}

// CursorMoveEvent carries the absolute pointer position in window pixels.
type CursorMoveEvent struct {
	X, Y float64
}

// CursorLeaveEvent is sent when the pointer leaves the window.
type CursorLeaveEvent struct{}

type ScrollEvent struct {
	XOffset, YOffset float64
}

// ResizeEvent carries the new framebuffer size.
type ResizeEvent struct {
	Width, Height int
}

// SuspendEvent is sent when the OS reclaims the window surface.
type SuspendEvent struct{}

// ResumeEvent is sent when the window surface becomes available again.
type ResumeEvent struct{}

// CloseEvent is sent when the user asks to close the window.
type CloseEvent struct{}

func (KeyEvent) isEvent()         {}
func (MouseButtonEvent) isEvent() {}
func (CursorMoveEvent) isEvent()  {}
func (CursorLeaveEvent) isEvent() {}
func (ScrollEvent) isEvent()      {}
func (ResizeEvent) isEvent()      {}
func (SuspendEvent) isEvent()     {}
func (ResumeEvent) isEvent()      {}
func (CloseEvent) isEvent()       {}
