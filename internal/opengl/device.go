// Package opengl implements gpu.Device on the OpenGL 4.1 core profile.
package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"glviewer/internal/gpu"
)

// Info holds the driver strings reported at initialisation.
type Info struct {
	Vendor   string
	Renderer string
	Version  string
	GLSL     string
}

// Device issues gpu.Device commands straight to the current GL context.
type Device struct {
	info Info
}

// NewDevice loads the GL entry points, reads the driver strings and sets the
// fixed pipeline state: depth testing and source-alpha blending.
// Must be called after the window context is made current.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	d := &Device{info: Info{
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		GLSL:     gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return d, nil
}

// Info returns the driver strings read by NewDevice.
func (d *Device) Info() Info { return d.info }

func bufferTarget(kind gpu.BufferKind) uint32 {
	if kind == gpu.IndexBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func scalarType(t gpu.ScalarType) uint32 {
	switch t {
	case gpu.Uint32:
		return gl.UNSIGNED_INT
	case gpu.Uint8:
		return gl.UNSIGNED_BYTE
	}
	return gl.FLOAT
}

func primitive(p gpu.Primitive) uint32 {
	switch p {
	case gpu.Lines:
		return gl.LINES
	case gpu.Points:
		return gl.POINTS
	}
	return gl.TRIANGLES
}

// ── Buffers ───────────────────────────────────────────────────────────────────

func (d *Device) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (d *Device) BindBuffer(kind gpu.BufferKind, id uint32) {
	gl.BindBuffer(bufferTarget(kind), id)
}

func (d *Device) BufferData(kind gpu.BufferKind, size int, data unsafe.Pointer) {
	gl.BufferData(bufferTarget(kind), size, data, gl.STATIC_DRAW)
}

func (d *Device) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

// ── Vertex arrays ─────────────────────────────────────────────────────────────

func (d *Device) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (d *Device) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (d *Device) EnableVertexAttribArray(slot uint32) {
	gl.EnableVertexAttribArray(slot)
}

func (d *Device) VertexAttribPointer(slot uint32, count int32, typ gpu.ScalarType, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(slot, count, scalarType(typ), normalized, stride, uintptr(offset))
}

func (d *Device) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

// ── Frame ─────────────────────────────────────────────────────────────────────

func (d *Device) Viewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) Clear(mask gpu.ClearMask) {
	var bits uint32
	if mask&gpu.ClearColor != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gpu.ClearDepth != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *Device) DrawArrays(mode gpu.Primitive, count int32) {
	gl.DrawArrays(primitive(mode), 0, count)
}

func (d *Device) DrawElements(mode gpu.Primitive, count int32) {
	gl.DrawElementsWithOffset(primitive(mode), count, gl.UNSIGNED_INT, 0)
}

var _ gpu.Device = (*Device)(nil)
