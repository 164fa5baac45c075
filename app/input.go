package app

import (
	"glviewer/core"
	"glviewer/scene"
)

// input turns raw pointer and key events into camera updates.
type input struct {
	held   map[core.Key]bool
	locked bool

	// anchor is the last pointer position; look deltas are measured from it.
	hasAnchor        bool
	anchorX, anchorY float64
}

func newInput() input {
	return input{held: make(map[core.Key]bool)}
}

// handle applies ev and reports whether it requested exit.
func (in *input) handle(ev core.Event, cam scene.ViewProvider, w Window) bool {
	switch e := ev.(type) {
	case core.KeyEvent:
		if e.Key == core.KeyEscape && e.Action == core.Press {
			return true
		}
		if _, ok := scene.MovementForKey(e.Key); ok {
			in.held[e.Key] = e.Action != core.Release
		}

	case core.MouseButtonEvent:
		if e.Button == core.MouseLeft && e.Action == core.Press {
			in.locked = !in.locked
			in.hasAnchor = false
			w.SetCursorLocked(in.locked)
		}

	case core.CursorMoveEvent:
		if in.locked && in.hasAnchor {
			dx := float32(e.X - in.anchorX)
			// screen y grows downwards
			dy := float32(in.anchorY - e.Y)
			cam.ProcessMouseMovement(dx, dy)
		}
		in.anchorX, in.anchorY = e.X, e.Y
		in.hasAnchor = true

	case core.CursorLeaveEvent:
		in.hasAnchor = false

	case core.ScrollEvent:
		cam.ProcessScroll(float32(e.YOffset))
	}
	return false
}

// move translates the camera for every held movement key.
func (in *input) move(cam scene.ViewProvider, dt float32) {
	if dt <= 0 {
		return
	}
	for k, down := range in.held {
		if !down {
			continue
		}
		if m, ok := scene.MovementForKey(k); ok {
			cam.ProcessKeyboard(m, dt)
		}
	}
}

// release forgets held keys and the pointer anchor, e.g. when the window
// loses its surface.
func (in *input) release() {
	clear(in.held)
	in.hasAnchor = false
}
