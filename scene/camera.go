package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"glviewer/core"
)

// Movement is a keyboard-driven camera translation.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
)

func (m Movement) String() string {
	switch m {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Movement(%d)", int(m))
}

// MovementForKey maps WASD and the arrow keys to movements.
func MovementForKey(k core.Key) (Movement, bool) {
	switch k {
	case core.KeyW, core.KeyUp:
		return Forward, true
	case core.KeyS, core.KeyDown:
		return Backward, true
	case core.KeyA, core.KeyLeft:
		return Left, true
	case core.KeyD, core.KeyRight:
		return Right, true
	}
	return 0, false
}

// UniformSetter receives per-frame camera state. *gpu.Program implements it.
type UniformSetter interface {
	SetFloat(name string, v float32)
	SetVec3(name string, v mgl32.Vec3)
	SetMat4(name string, m mgl32.Mat4)
}

// ViewProvider is a camera strategy. FPSCamera provides view and projection
// matrices; RayCamera provides the basis a fragment shader generates
// primary rays from.
type ViewProvider interface {
	// SetUniforms uploads the camera state for a viewport of the given
	// aspect ratio. The program must already be bound.
	SetUniforms(u UniformSetter, aspect float32)
	ProcessKeyboard(dir Movement, dt float32)
	ProcessMouseMovement(dx, dy float32)
	ProcessScroll(dy float32)
	Position() mgl32.Vec3
}

// MatrixProvider is implemented by cameras that can place ordinary
// geometry, such as the light marker.
type MatrixProvider interface {
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix(aspect float32) mgl32.Mat4
}

const (
	DefaultYaw         float32 = -90
	DefaultPitch       float32 = 0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45

	MinZoom  float32 = 1
	MaxZoom  float32 = 45
	MaxPitch float32 = 89
)

// WorldUp is the up axis the FPS camera's basis is derived against.
var WorldUp = mgl32.Vec3{0, 1, 0}

// FPSCamera is a yaw/pitch fly camera. Angles are in degrees.
type FPSCamera struct {
	Speed       float32
	Sensitivity float32
	Near        float32
	Far         float32

	position mgl32.Vec3
	front    mgl32.Vec3
	right    mgl32.Vec3
	up       mgl32.Vec3
	yaw      float32
	pitch    float32
	zoom     float32
}

// NewFPSCamera places a camera at position with the default speed,
// sensitivity and zoom. pitch is clamped like mouse input.
func NewFPSCamera(position mgl32.Vec3, yaw, pitch float32) *FPSCamera {
	c := &FPSCamera{
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		Near:        0.1,
		Far:         100,
		position:    position,
		yaw:         yaw,
		pitch:       mgl32.Clamp(pitch, -MaxPitch, MaxPitch),
		zoom:        DefaultZoom,
	}
	c.updateVectors()
	return c
}

// NewCamera builds the camera selected by cfg.Mode.
func NewCamera(cfg core.CameraConfig, aspect float32, imageWidth int) (ViewProvider, error) {
	switch cfg.Mode {
	case core.CameraFPS, "":
		c := NewFPSCamera(mgl32.Vec3(cfg.Position), cfg.Yaw, cfg.Pitch)
		c.Speed = cfg.Speed
		c.Sensitivity = cfg.Sensitivity
		c.Near = cfg.Near
		c.Far = cfg.Far
		c.zoom = mgl32.Clamp(cfg.Zoom, MinZoom, MaxZoom)
		return c, nil
	case core.CameraRay:
		return NewRayCamera(aspect, imageWidth), nil
	}
	return nil, fmt.Errorf("camera: unknown mode %q", cfg.Mode)
}

func (c *FPSCamera) Position() mgl32.Vec3 { return c.position }
func (c *FPSCamera) Front() mgl32.Vec3    { return c.front }
func (c *FPSCamera) Right() mgl32.Vec3    { return c.right }
func (c *FPSCamera) Up() mgl32.Vec3       { return c.up }
func (c *FPSCamera) Yaw() float32         { return c.yaw }
func (c *FPSCamera) Pitch() float32       { return c.pitch }
func (c *FPSCamera) Zoom() float32        { return c.zoom }

// ProcessKeyboard moves along front or right by Speed * dt.
func (c *FPSCamera) ProcessKeyboard(dir Movement, dt float32) {
	velocity := c.Speed * dt
	switch dir {
	case Forward:
		c.position = c.position.Add(c.front.Mul(velocity))
	case Backward:
		c.position = c.position.Sub(c.front.Mul(velocity))
	case Left:
		c.position = c.position.Sub(c.right.Mul(velocity))
	case Right:
		c.position = c.position.Add(c.right.Mul(velocity))
	}
}

// ProcessMouseMovement turns the camera by the pointer delta. Pitch stays
// within [-89, 89] so the view never flips over the poles.
func (c *FPSCamera) ProcessMouseMovement(dx, dy float32) {
	c.yaw += dx * c.Sensitivity
	c.pitch += dy * c.Sensitivity
	c.pitch = mgl32.Clamp(c.pitch, -MaxPitch, MaxPitch)
	c.updateVectors()
}

// ProcessScroll narrows the field of view on scroll up, within [1, 45].
func (c *FPSCamera) ProcessScroll(dy float32) {
	c.zoom = mgl32.Clamp(c.zoom-dy, MinZoom, MaxZoom)
}

func (c *FPSCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// ProjectionMatrix is a perspective projection with fov = zoom.
func (c *FPSCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.zoom), aspect, c.Near, c.Far)
}

func (c *FPSCamera) SetUniforms(u UniformSetter, aspect float32) {
	u.SetMat4("u_view", c.ViewMatrix())
	u.SetMat4("u_projection", c.ProjectionMatrix(aspect))
	u.SetVec3("u_view_position", c.position)
}

func (c *FPSCamera) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))
	c.front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.right = c.front.Cross(WorldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
