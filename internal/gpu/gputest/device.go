// Package gputest provides a recording gpu.Device for tests that run without
// a graphics context.
package gputest

import (
	"fmt"
	"unsafe"

	"glviewer/internal/gpu"
)

// Call is one recorded device command.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprint(c.Name, c.Args)
}

// UniformSet is one recorded uniform upload.
type UniformSet struct {
	Program uint32
	Name    string
	Value   any
}

// Device records every command it receives and tracks enough state to
// assert on bindings, uniform uploads, and object lifetimes.
type Device struct {
	// Uniforms maps the uniform names every program exposes to locations.
	// Names not present resolve to -1.
	Uniforms map[string]int32
	// FailAlloc makes every Gen/Create call return 0.
	FailAlloc bool
	// CompileLogs makes compilation of the given stage fail with the log.
	CompileLogs map[gpu.Stage]string
	// LinkLog, when set, makes linking fail with the log.
	LinkLog string

	Calls           []Call
	LocationQueries map[string]int
	UniformSets     []UniformSet
	Live            map[uint32]string
	Deleted         map[uint32]int

	Program     uint32
	VertexArray uint32
	Buffers     map[gpu.BufferKind]uint32
	Units       map[uint32]uint32
	ViewportW   int32
	ViewportH   int32

	nextID  uint32
	locName map[int32]string
}

func NewDevice() *Device {
	return &Device{
		Uniforms:        make(map[string]int32),
		CompileLogs:     make(map[gpu.Stage]string),
		LocationQueries: make(map[string]int),
		Live:            make(map[uint32]string),
		Deleted:         make(map[uint32]int),
		Buffers:         make(map[gpu.BufferKind]uint32),
		Units:           make(map[uint32]uint32),
		locName:         make(map[int32]string),
	}
}

// WithUniforms registers names as resolvable uniforms with sequential
// locations and returns d.
func (d *Device) WithUniforms(names ...string) *Device {
	for _, n := range names {
		if _, ok := d.Uniforms[n]; ok {
			continue
		}
		loc := int32(len(d.Uniforms))
		d.Uniforms[n] = loc
		d.locName[loc] = n
	}
	return d
}

func (d *Device) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Device) alloc(kind string) uint32 {
	if d.FailAlloc {
		return 0
	}
	d.nextID++
	d.Live[d.nextID] = kind
	return d.nextID
}

func (d *Device) free(kind string, id uint32) {
	d.record("Delete"+kind, id)
	d.Deleted[id]++
	delete(d.Live, id)
}

// Count returns how many times the named command was issued.
func (d *Device) Count(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Find returns every recorded call with the given name.
func (d *Device) Find(name string) []Call {
	var out []Call
	for _, c := range d.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Sets returns every value uploaded to the named uniform.
func (d *Device) Sets(name string) []any {
	var out []any
	for _, s := range d.UniformSets {
		if s.Name == name {
			out = append(out, s.Value)
		}
	}
	return out
}

// Reset drops the recorded history but keeps object and binding state.
func (d *Device) Reset() {
	d.Calls = nil
	d.UniformSets = nil
	for k := range d.LocationQueries {
		delete(d.LocationQueries, k)
	}
}

func (d *Device) GenBuffer() uint32 {
	id := d.alloc("buffer")
	d.record("GenBuffer", id)
	return id
}

func (d *Device) BindBuffer(kind gpu.BufferKind, id uint32) {
	d.record("BindBuffer", kind, id)
	d.Buffers[kind] = id
}

func (d *Device) BufferData(kind gpu.BufferKind, size int, _ unsafe.Pointer) {
	d.record("BufferData", kind, d.Buffers[kind], size)
}

func (d *Device) DeleteBuffer(id uint32) { d.free("Buffer", id) }

func (d *Device) GenVertexArray() uint32 {
	id := d.alloc("vertex array")
	d.record("GenVertexArray", id)
	return id
}

func (d *Device) BindVertexArray(id uint32) {
	d.record("BindVertexArray", id)
	d.VertexArray = id
}

func (d *Device) EnableVertexAttribArray(slot uint32) {
	d.record("EnableVertexAttribArray", d.VertexArray, slot)
}

func (d *Device) VertexAttribPointer(slot uint32, count int32, typ gpu.ScalarType, normalized bool, stride int32, offset int) {
	d.record("VertexAttribPointer", d.VertexArray, slot, count, typ, normalized, stride, offset)
}

func (d *Device) DeleteVertexArray(id uint32) { d.free("VertexArray", id) }

func (d *Device) CompileShader(stage gpu.Stage, src string) (uint32, bool, string) {
	id := d.alloc("shader")
	d.record("CompileShader", stage, id)
	if id == 0 {
		return 0, false, ""
	}
	if log, ok := d.CompileLogs[stage]; ok {
		return id, false, log
	}
	return id, true, ""
}

func (d *Device) DeleteShader(id uint32) { d.free("Shader", id) }

func (d *Device) LinkProgram(shaders ...uint32) (uint32, bool, string) {
	id := d.alloc("program")
	d.record("LinkProgram", id, shaders)
	if id == 0 {
		return 0, false, ""
	}
	if d.LinkLog != "" {
		return id, false, d.LinkLog
	}
	return id, true, ""
}

func (d *Device) UseProgram(id uint32) {
	d.record("UseProgram", id)
	d.Program = id
}

func (d *Device) DeleteProgram(id uint32) { d.free("Program", id) }

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.record("UniformLocation", program, name)
	d.LocationQueries[name]++
	if loc, ok := d.Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) setUniform(loc int32, v any) {
	name, ok := d.locName[loc]
	if !ok {
		name = fmt.Sprintf("#%d", loc)
	}
	d.UniformSets = append(d.UniformSets, UniformSet{Program: d.Program, Name: name, Value: v})
	d.record("Uniform", name, v)
}

func (d *Device) Uniform1i(loc int32, v int32)                { d.setUniform(loc, v) }
func (d *Device) Uniform1f(loc int32, v float32)              { d.setUniform(loc, v) }
func (d *Device) Uniform2f(loc int32, v0, v1 float32)         { d.setUniform(loc, [2]float32{v0, v1}) }
func (d *Device) Uniform3f(loc int32, v0, v1, v2 float32)     { d.setUniform(loc, [3]float32{v0, v1, v2}) }
func (d *Device) Uniform4f(loc int32, v0, v1, v2, v3 float32) { d.setUniform(loc, [4]float32{v0, v1, v2, v3}) }
func (d *Device) UniformMatrix4fv(loc int32, m *[16]float32)  { d.setUniform(loc, *m) }

func (d *Device) GenTexture() uint32 {
	id := d.alloc("texture")
	d.record("GenTexture", id)
	return id
}

func (d *Device) BindTexture(unit uint32, id uint32) {
	d.record("BindTexture", unit, id)
	d.Units[unit] = id
}

func (d *Device) TexImage2D(width, height int32, rgba []byte) {
	d.record("TexImage2D", width, height, len(rgba))
}

func (d *Device) DeleteTexture(id uint32) { d.free("Texture", id) }

func (d *Device) Viewport(width, height int32) {
	d.record("Viewport", width, height)
	d.ViewportW, d.ViewportH = width, height
}

func (d *Device) ClearColor(r, g, b, a float32) { d.record("ClearColor", r, g, b, a) }
func (d *Device) Clear(mask gpu.ClearMask)      { d.record("Clear", mask) }

func (d *Device) DrawArrays(mode gpu.Primitive, count int32) {
	d.record("DrawArrays", mode, count, d.Program, d.VertexArray)
}

func (d *Device) DrawElements(mode gpu.Primitive, count int32) {
	d.record("DrawElements", mode, count, d.Program, d.VertexArray, d.Buffers[gpu.IndexBuffer])
}

var _ gpu.Device = (*Device)(nil)
