package app

import (
	"fmt"

	"glviewer/core"
	"glviewer/scene"
)

// Profile is a requested graphics context version.
type Profile struct {
	Major, Minor int
	Core         bool
}

func (p Profile) String() string {
	if p.Core {
		return fmt.Sprintf("%d.%d core", p.Major, p.Minor)
	}
	return fmt.Sprintf("%d.%d", p.Major, p.Minor)
}

// Profiles is the context fallback order: the preferred modern profile,
// then two lower-capability ones.
var Profiles = []Profile{
	{Major: 4, Minor: 1, Core: true},
	{Major: 3, Minor: 3, Core: true},
	{Major: 2, Minor: 1},
}

// Platform is the windowing system.
type Platform interface {
	CreateWindow(cfg core.WindowConfig) (Window, error)
	// PollEvents returns the events queued since the last call without
	// blocking.
	PollEvents() []core.Event
	// WaitEvents blocks until at least one event is available.
	WaitEvents() []core.Event
}

// Window is an OS window that can host a graphics context.
type Window interface {
	// CreateContext creates a context with the given profile for this
	// window. It may be called again with another profile after a failure.
	CreateContext(p Profile) (Context, error)
	// CreateSurface returns the presentable back buffer of the window.
	CreateSurface() (Surface, error)
	// FramebufferSize is the drawable size in pixels.
	FramebufferSize() (width, height int)
	// SetCursorLocked hides and grabs the cursor, or releases it.
	SetCursorLocked(locked bool)
	SetTitle(title string)
	Destroy()
}

// Context is a graphics context, current on at most one thread.
type Context interface {
	MakeCurrent(s Surface) error
	MakeNotCurrent() error
	Destroy()
}

// Surface is the presentable target attached to a window.
type Surface interface {
	Resize(width, height int)
	// SetVSync requests swap-interval synchronisation.
	SetVSync(enabled bool) error
	SwapBuffers() error
	Destroy()
}

// Renderer is what the application drives each frame.
type Renderer interface {
	Draw(t float32)
	Resize(width, height int)
	Camera() scene.ViewProvider
	Destroy()
}

// RendererFactory builds the renderer once a context is current.
type RendererFactory func(viewport core.Viewport) (Renderer, error)
