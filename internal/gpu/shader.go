package gpu

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"glviewer/core"
)

// UniformNotFound is the location reported for names the linked program
// does not expose. Uniform sets against it are dropped.
const UniformNotFound int32 = -1

// CompileError reports a shader stage that failed to compile.
type CompileError struct {
	Stage Stage
	Path  string
	Log   string
}

func (e *CompileError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s shader %q compile error: %s", e.Stage, e.Path, strings.TrimSpace(e.Log))
	}
	return fmt.Sprintf("%s shader compile error: %s", e.Stage, strings.TrimSpace(e.Log))
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "program link error: " + strings.TrimSpace(e.Log)
}

// Program is a linked vertex+fragment shader program with a lazily filled
// cache of uniform locations. The cache is not synchronized; it is only
// touched from the render thread.
type Program struct {
	dev       Device
	id        uint32
	locations map[string]int32
}

// LoadProgram reads both stage sources from disk and builds the program.
func LoadProgram(dev Device, vertexPath, fragmentPath string) (*Program, error) {
	vertSrc, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("read vertex shader %q: %w", vertexPath, err)
	}
	fragSrc, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("read fragment shader %q: %w", fragmentPath, err)
	}

	p, err := newProgram(dev, string(vertSrc), string(fragSrc), vertexPath, fragmentPath)
	if err != nil {
		return nil, err
	}
	core.LogDebug("linked program %d from %s + %s", p.id, vertexPath, fragmentPath)
	return p, nil
}

// NewProgram builds a program from in-memory sources.
func NewProgram(dev Device, vertexSrc, fragmentSrc string) (*Program, error) {
	return newProgram(dev, vertexSrc, fragmentSrc, "", "")
}

func newProgram(dev Device, vertexSrc, fragmentSrc, vertexPath, fragmentPath string) (*Program, error) {
	vert, err := compileShader(dev, VertexStage, vertexSrc, vertexPath)
	if err != nil {
		return nil, err
	}
	frag, err := compileShader(dev, FragmentStage, fragmentSrc, fragmentPath)
	if err != nil {
		dev.DeleteShader(vert)
		return nil, err
	}

	prog, ok, log := dev.LinkProgram(vert, frag)
	dev.DeleteShader(vert)
	dev.DeleteShader(frag)
	if prog == 0 {
		return nil, fmt.Errorf("program: %w", ErrResourceCreation)
	}
	if !ok {
		dev.DeleteProgram(prog)
		return nil, &LinkError{Log: log}
	}

	return &Program{
		dev:       dev,
		id:        prog,
		locations: make(map[string]int32),
	}, nil
}

func compileShader(dev Device, stage Stage, src, path string) (uint32, error) {
	id, ok, log := dev.CompileShader(stage, src)
	if id == 0 {
		return 0, fmt.Errorf("%s shader: %w", stage, ErrResourceCreation)
	}
	if !ok {
		dev.DeleteShader(id)
		return 0, &CompileError{Stage: stage, Path: path, Log: log}
	}
	return id, nil
}

// Bind makes the program current for subsequent uniform sets and draws.
func (p *Program) Bind() {
	if p.id == 0 {
		panic("gpu: bind of destroyed program")
	}
	p.dev.UseProgram(p.id)
}

func (p *Program) Unbind() {
	p.dev.UseProgram(0)
}

func (p *Program) ID() uint32 { return p.id }

// Location resolves name, querying the device only on the first request.
// Unknown names are cached as UniformNotFound and warned about once.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := p.dev.UniformLocation(p.id, name)
	if loc < 0 {
		loc = UniformNotFound
		core.LogWarn("uniform %q not found in program %d", name, p.id)
	}
	p.locations[name] = loc
	return loc
}

func (p *Program) SetInt(name string, v int32) {
	if loc := p.Location(name); loc != UniformNotFound {
		p.dev.Uniform1i(loc, v)
	}
}

func (p *Program) SetFloat(name string, v float32) {
	if loc := p.Location(name); loc != UniformNotFound {
		p.dev.Uniform1f(loc, v)
	}
}

func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	if loc := p.Location(name); loc != UniformNotFound {
		p.dev.Uniform2f(loc, v[0], v[1])
	}
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	if loc := p.Location(name); loc != UniformNotFound {
		p.dev.Uniform3f(loc, v[0], v[1], v[2])
	}
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	if loc := p.Location(name); loc != UniformNotFound {
		p.dev.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

// SetMat4 uploads m in column-major order without transposition.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.Location(name); loc != UniformNotFound {
		p.dev.UniformMatrix4fv(loc, (*[16]float32)(&m))
	}
}

// Destroy deletes the program object. Calling it again is a no-op.
func (p *Program) Destroy() {
	if p == nil || p.id == 0 {
		return
	}
	p.dev.DeleteProgram(p.id)
	p.id = 0
}
