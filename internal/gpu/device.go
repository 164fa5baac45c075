// Package gpu wraps graphics-API objects (buffers, vertex arrays, shader
// programs, textures) in owning Go values.
//
// Every wrapper issues its commands through a Device and binds the objects
// an operation depends on immediately before that operation, so no code in
// this package relies on whatever happened to be bound earlier. A Device and
// every object created from it must only be used from the thread that owns
// the graphics context.
package gpu

import (
	"errors"
	"unsafe"
)

// ErrResourceCreation is returned when the device cannot allocate a handle.
var ErrResourceCreation = errors.New("gpu: resource creation failed")

// BufferKind selects the binding target of a Buffer.
type BufferKind int

const (
	VertexBuffer BufferKind = iota
	IndexBuffer
)

func (k BufferKind) String() string {
	switch k {
	case VertexBuffer:
		return "vertex"
	case IndexBuffer:
		return "index"
	}
	return "unknown"
}

// Stage is a programmable pipeline stage.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

// ScalarType is the component type of a vertex attribute.
type ScalarType int

const (
	Float32 ScalarType = iota
	Uint32
	Uint8
)

// Size returns the byte size of one component.
func (t ScalarType) Size() int32 {
	switch t {
	case Float32, Uint32:
		return 4
	case Uint8:
		return 1
	}
	panic("gpu: unknown scalar type")
}

// Primitive is the assembly mode of a draw call.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
	Points
)

// ClearMask selects which framebuffer planes Clear resets.
type ClearMask int

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
)

// Device is the subset of the graphics API used by the wrappers and the
// renderer. Object handles are never zero on success; a zero return from a
// Gen/Create call means the allocation failed.
type Device interface {
	GenBuffer() uint32
	BindBuffer(kind BufferKind, id uint32)
	BufferData(kind BufferKind, size int, data unsafe.Pointer)
	DeleteBuffer(id uint32)

	GenVertexArray() uint32
	BindVertexArray(id uint32)
	EnableVertexAttribArray(slot uint32)
	VertexAttribPointer(slot uint32, count int32, typ ScalarType, normalized bool, stride int32, offset int)
	DeleteVertexArray(id uint32)

	// CompileShader creates a shader object for stage and compiles src. On
	// failure the returned log holds the compiler output.
	CompileShader(stage Stage, src string) (id uint32, ok bool, log string)
	DeleteShader(id uint32)
	// LinkProgram creates a program from the compiled stages and links it.
	LinkProgram(shaders ...uint32) (id uint32, ok bool, log string)
	UseProgram(id uint32)
	DeleteProgram(id uint32)
	UniformLocation(program uint32, name string) int32
	Uniform1i(loc int32, v int32)
	Uniform1f(loc int32, v float32)
	Uniform2f(loc int32, v0, v1 float32)
	Uniform3f(loc int32, v0, v1, v2 float32)
	Uniform4f(loc int32, v0, v1, v2, v3 float32)
	UniformMatrix4fv(loc int32, m *[16]float32)

	GenTexture() uint32
	// BindTexture activates texture unit and binds id to it.
	BindTexture(unit uint32, id uint32)
	TexImage2D(width, height int32, rgba []byte)
	DeleteTexture(id uint32)

	Viewport(width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	DrawArrays(mode Primitive, count int32)
	DrawElements(mode Primitive, count int32)
}
