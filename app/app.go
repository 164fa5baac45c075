// Package app drives the viewer lifecycle as an explicit state machine:
// Uninitialized → Resumed ⇄ Suspended → Exited.
package app

import (
	"errors"
	"fmt"
	"time"

	"glviewer/core"
)

var (
	// ErrNoContext is returned when no context profile could be created.
	ErrNoContext = errors.New("app: no graphics context profile available")
	// ErrExited is returned by transitions attempted after Exit.
	ErrExited = errors.New("app: application has exited")
)

type State int

const (
	Uninitialized State = iota
	Resumed
	Suspended
	Exited
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Resumed:
		return "resumed"
	case Suspended:
		return "suspended"
	case Exited:
		return "exited"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// App owns the window, context, surface and renderer, in that acquisition
// order. All methods must be called from the thread that owns the context.
type App struct {
	// Clock returns the current time; tests replace it.
	Clock func() time.Time

	cfg         core.Config
	platform    Platform
	newRenderer RendererFactory

	state    State
	window   Window
	ctx      Context
	surface  Surface
	current  bool
	renderer Renderer
	profile  Profile
	viewport core.Viewport

	input input
	start time.Time
	last  time.Time
}

func New(cfg core.Config, platform Platform, newRenderer RendererFactory) *App {
	return &App{
		Clock:       time.Now,
		cfg:         cfg,
		platform:    platform,
		newRenderer: newRenderer,
		viewport:    core.Viewport{Width: cfg.Window.Width, Height: cfg.Window.Height},
		input:       newInput(),
	}
}

func (a *App) State() State            { return a.state }
func (a *App) Viewport() core.Viewport { return a.viewport }
func (a *App) Profile() Profile        { return a.profile }
func (a *App) CursorLocked() bool      { return a.input.locked }
func (a *App) Renderer() Renderer      { return a.renderer }

func (a *App) setState(s State) {
	core.LogInfo("state %s -> %s", a.state, s)
	a.state = s
}

// Resume acquires whatever the current state lacks and makes the context
// current. The first resume creates the window, context and renderer; a
// resume after Suspend only recreates the surface and reuses the renderer.
func (a *App) Resume() error {
	switch a.state {
	case Resumed:
		return nil
	case Exited:
		return ErrExited
	}

	if a.window == nil {
		w, err := a.platform.CreateWindow(a.cfg.Window)
		if err != nil {
			return fmt.Errorf("create window: %w", err)
		}
		a.window = w
	}
	if a.ctx == nil {
		ctx, p, err := createContext(a.window)
		if err != nil {
			return err
		}
		a.ctx, a.profile = ctx, p
		core.LogInfo("created %s context", p)
		a.window.SetTitle(fmt.Sprintf("%s [OpenGL %s]", a.cfg.Window.Title, p))
	}

	surface, err := a.window.CreateSurface()
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}
	a.surface = surface
	if err := a.ctx.MakeCurrent(surface); err != nil {
		return fmt.Errorf("make context current: %w", err)
	}
	a.current = true

	if w, h := a.window.FramebufferSize(); w > 0 && h > 0 {
		a.viewport = core.Viewport{Width: w, Height: h}
	}

	if a.renderer == nil {
		r, err := a.newRenderer(a.viewport)
		if err != nil {
			return fmt.Errorf("create renderer: %w", err)
		}
		a.renderer = r
		a.start = a.Clock()
		a.last = a.start
	} else {
		a.renderer.Resize(a.viewport.Width, a.viewport.Height)
		// do not count the suspended time as frame delta
		a.last = a.Clock()
	}

	if a.cfg.Window.VSync {
		if err := surface.SetVSync(true); err != nil {
			core.LogWarn("vsync unavailable, continuing without it: %v", err)
		}
	}

	a.setState(Resumed)
	return nil
}

// createContext walks Profiles until one succeeds.
func createContext(w Window) (Context, Profile, error) {
	var errs []error
	for _, p := range Profiles {
		ctx, err := w.CreateContext(p)
		if err == nil {
			return ctx, p, nil
		}
		core.LogWarn("%s context unavailable: %v", p, err)
		errs = append(errs, fmt.Errorf("%s: %w", p, err))
	}
	return nil, Profile{}, fmt.Errorf("%w: %w", ErrNoContext, errors.Join(errs...))
}

// Suspend releases the surface and leaves the context not current. The
// renderer and its device objects are kept for the next Resume.
func (a *App) Suspend() error {
	switch a.state {
	case Exited:
		return ErrExited
	case Resumed:
	default:
		return nil
	}

	a.surface.Destroy()
	a.surface = nil
	a.releaseCurrent()
	a.input.release()
	a.setState(Suspended)
	return nil
}

// Resize applies a new surface size. Zero-area sizes are ignored.
func (a *App) Resize(width, height int) {
	if a.state == Exited {
		return
	}
	vp := core.Viewport{Width: width, Height: height}
	if vp.Empty() {
		core.LogDebug("ignoring resize to %dx%d", width, height)
		return
	}
	a.viewport = vp
	if a.state != Resumed {
		return
	}
	a.surface.Resize(width, height)
	a.renderer.Resize(width, height)
}

// Tick draws and presents one frame. Outside the Resumed state it does
// nothing.
func (a *App) Tick() error {
	if a.state != Resumed {
		return nil
	}
	now := a.Clock()
	dt := float32(now.Sub(a.last).Seconds())
	a.last = now

	a.input.move(a.renderer.Camera(), dt)
	a.renderer.Draw(float32(now.Sub(a.start).Seconds()))

	if err := a.surface.SwapBuffers(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

// Exit releases everything in reverse acquisition order: renderer,
// surface, context, window. It is idempotent.
func (a *App) Exit() {
	if a.state == Exited {
		return
	}
	if a.renderer != nil {
		if a.state == Resumed {
			a.renderer.Destroy()
		}
		a.renderer = nil
	}
	if a.surface != nil {
		a.surface.Destroy()
		a.surface = nil
	}
	if a.ctx != nil {
		a.releaseCurrent()
		a.ctx.Destroy()
		a.ctx = nil
	}
	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}
	a.setState(Exited)
}

func (a *App) releaseCurrent() {
	if !a.current {
		return
	}
	a.current = false
	if err := a.ctx.MakeNotCurrent(); err != nil {
		core.LogWarn("make context not current: %v", err)
	}
}

// Handle applies one platform event.
func (a *App) Handle(ev core.Event) error {
	switch e := ev.(type) {
	case core.ResumeEvent:
		return a.Resume()
	case core.SuspendEvent:
		return a.Suspend()
	case core.ResizeEvent:
		a.Resize(e.Width, e.Height)
	case core.CloseEvent:
		a.Exit()
	default:
		if a.state != Resumed {
			return nil
		}
		if a.input.handle(ev, a.renderer.Camera(), a.window) {
			a.Exit()
		}
	}
	return nil
}

// Run resumes the application and processes events and frames until it
// exits. A failed transition exits and returns the error.
func (a *App) Run() error {
	if err := a.Resume(); err != nil {
		a.Exit()
		return err
	}
	for a.state != Exited {
		var events []core.Event
		if a.state == Suspended {
			events = a.platform.WaitEvents()
		} else {
			events = a.platform.PollEvents()
		}
		for _, ev := range events {
			if err := a.Handle(ev); err != nil {
				a.Exit()
				return err
			}
		}
		if err := a.Tick(); err != nil {
			core.LogError("%v", err)
		}
	}
	return nil
}
