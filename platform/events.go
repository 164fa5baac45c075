package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"glviewer/core"
)

// eventQueue collects callback events between polls.
type eventQueue struct {
	events []core.Event
}

func (q *eventQueue) push(ev core.Event) {
	q.events = append(q.events, ev)
}

func (q *eventQueue) drain() []core.Event {
	out := q.events
	q.events = nil
	return out
}

func (q *eventQueue) attach(w *glfw.Window) {
	w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		q.push(core.KeyEvent{Key: translateKey(key), Action: translateAction(action)})
	})
	w.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if b, ok := translateButton(button); ok {
			q.push(core.MouseButtonEvent{Button: b, Action: translateAction(action)})
		}
	})
	w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		q.push(core.CursorMoveEvent{X: x, Y: y})
	})
	w.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			q.push(core.CursorLeaveEvent{})
		}
	})
	w.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		q.push(core.ScrollEvent{XOffset: xoff, YOffset: yoff})
	})
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		q.push(core.ResizeEvent{Width: width, Height: height})
	})
	w.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		q.push(iconifyEvent(iconified))
	})
	w.SetCloseCallback(func(_ *glfw.Window) {
		q.push(core.CloseEvent{})
	})
}

// iconifyEvent maps minimizing to suspend and restoring to resume.
func iconifyEvent(iconified bool) core.Event {
	if iconified {
		return core.SuspendEvent{}
	}
	return core.ResumeEvent{}
}

var keys = map[glfw.Key]core.Key{
	glfw.KeyW:      core.KeyW,
	glfw.KeyA:      core.KeyA,
	glfw.KeyS:      core.KeyS,
	glfw.KeyD:      core.KeyD,
	glfw.KeyUp:     core.KeyUp,
	glfw.KeyDown:   core.KeyDown,
	glfw.KeyLeft:   core.KeyLeft,
	glfw.KeyRight:  core.KeyRight,
	glfw.KeySpace:  core.KeySpace,
	glfw.KeyEscape: core.KeyEscape,
}

func translateKey(k glfw.Key) core.Key {
	if key, ok := keys[k]; ok {
		return key
	}
	return core.KeyUnknown
}

func translateAction(a glfw.Action) core.Action {
	switch a {
	case glfw.Press:
		return core.Press
	case glfw.Repeat:
		return core.Repeat
	}
	return core.Release
}

func translateButton(b glfw.MouseButton) (core.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return core.MouseLeft, true
	case glfw.MouseButtonRight:
		return core.MouseRight, true
	case glfw.MouseButtonMiddle:
		return core.MouseMiddle, true
	}
	return 0, false
}
