// Package platform implements the application windowing interfaces on GLFW.
package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"glviewer/app"
	"glviewer/core"
)

func init() {
	runtime.LockOSThread()
}

// Platform owns the GLFW library state and the event queue fed by window
// callbacks. It must only be used from the main thread.
type Platform struct {
	queue eventQueue
}

// Init initializes GLFW. Call Terminate when done.
func Init() (*Platform, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	return &Platform{}, nil
}

func (p *Platform) Terminate() {
	glfw.Terminate()
}

// CreateWindow records the window configuration. The OS window itself is
// created by CreateContext, since GLFW fixes the context version at window
// creation.
func (p *Platform) CreateWindow(cfg core.WindowConfig) (app.Window, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	return &Window{platform: p, cfg: cfg}, nil
}

func (p *Platform) PollEvents() []core.Event {
	glfw.PollEvents()
	return p.queue.drain()
}

func (p *Platform) WaitEvents() []core.Event {
	glfw.WaitEvents()
	return p.queue.drain()
}

type Window struct {
	platform *Platform
	cfg      core.WindowConfig
	handle   *glfw.Window
}

func (w *Window) CreateContext(prof app.Profile) (app.Context, error) {
	if w.handle != nil {
		w.handle.Destroy()
		w.handle = nil
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, boolToInt(w.cfg.Resizable))
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, prof.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, prof.Minor)
	glfw.WindowHint(glfw.DepthBits, 24)
	if prof.Core {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}

	width, height := w.cfg.Width, w.cfg.Height
	monitor := (*glfw.Monitor)(nil)
	if w.cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if mode := monitor.GetVideoMode(); mode != nil {
			width, height = mode.Width, mode.Height
		}
	}

	handle, err := glfw.CreateWindow(width, height, w.cfg.Title, monitor, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	w.handle = handle
	w.platform.queue.attach(handle)
	return &Context{window: w}, nil
}

// CreateSurface returns the window's default framebuffer. It requires a
// successful CreateContext.
func (w *Window) CreateSurface() (app.Surface, error) {
	if w.handle == nil {
		return nil, fmt.Errorf("window %q has no context", w.cfg.Title)
	}
	return &Surface{window: w}, nil
}

func (w *Window) FramebufferSize() (int, int) {
	if w.handle == nil {
		return w.cfg.Width, w.cfg.Height
	}
	return w.handle.GetFramebufferSize()
}

func (w *Window) SetCursorLocked(locked bool) {
	if w.handle == nil {
		return
	}
	if locked {
		w.handle.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if glfw.RawMouseMotionSupported() {
			w.handle.SetInputMode(glfw.RawMouseMotion, glfw.True)
		}
		return
	}
	w.handle.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}

func (w *Window) SetTitle(title string) {
	w.cfg.Title = title
	if w.handle != nil {
		w.handle.SetTitle(title)
	}
}

func (w *Window) Destroy() {
	if w.handle != nil {
		w.handle.Destroy()
		w.handle = nil
	}
}

// Context is the GL context GLFW created together with the window. It is
// destroyed with the window.
type Context struct {
	window *Window
}

func (c *Context) MakeCurrent(app.Surface) error {
	if c.window.handle == nil {
		return fmt.Errorf("window destroyed")
	}
	c.window.handle.MakeContextCurrent()
	return nil
}

func (c *Context) MakeNotCurrent() error {
	glfw.DetachCurrentContext()
	return nil
}

func (c *Context) Destroy() {}

// Surface presents the window's default framebuffer. GLFW resizes it
// together with the window.
type Surface struct {
	window *Window
}

func (s *Surface) Resize(width, height int) {}

// SetVSync sets the swap interval of the current context. GLFW reports
// failures by panicking, which is turned into an error here.
func (s *Surface) SetVSync(enabled bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("set swap interval: %v", r)
		}
	}()
	glfw.SwapInterval(boolToInt(enabled))
	return nil
}

func (s *Surface) SwapBuffers() error {
	if s.window.handle == nil {
		return fmt.Errorf("window destroyed")
	}
	s.window.handle.SwapBuffers()
	return nil
}

func (s *Surface) Destroy() {}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
