package gpu_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glviewer/core"
	"glviewer/internal/gpu"
	"glviewer/internal/gpu/gputest"
)

const (
	testVertexSrc   = "#version 410 core\nvoid main() { gl_Position = vec4(0.0); }\n"
	testFragmentSrc = "#version 410 core\nout vec4 color;\nvoid main() { color = vec4(1.0); }\n"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	core.SetLogger(log.New(&buf))
	t.Cleanup(func() { core.SetLogger(nil) })
	return &buf
}

func writeShaders(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	vs := filepath.Join(dir, "basic.vert")
	fs := filepath.Join(dir, "basic.frag")
	require.NoError(t, os.WriteFile(vs, []byte(testVertexSrc), 0o644))
	require.NoError(t, os.WriteFile(fs, []byte(testFragmentSrc), 0o644))
	return vs, fs
}

func TestLoadProgramDeletesStages(t *testing.T) {
	dev := gputest.NewDevice()
	vs, fs := writeShaders(t)

	p, err := gpu.LoadProgram(dev, vs, fs)
	require.NoError(t, err)

	assert.NotZero(t, p.ID())
	assert.Equal(t, 2, dev.Count("CompileShader"))
	assert.Equal(t, 1, dev.Count("LinkProgram"))
	assert.Equal(t, 2, dev.Count("DeleteShader"))
	assert.Equal(t, "program", dev.Live[p.ID()])
}

func TestLoadProgramMissingFile(t *testing.T) {
	dev := gputest.NewDevice()
	vs, _ := writeShaders(t)
	missing := filepath.Join(t.TempDir(), "nope.frag")

	_, err := gpu.LoadProgram(dev, vs, missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), missing)
	assert.Zero(t, dev.Count("CompileShader"))
	assert.Zero(t, dev.Count("LinkProgram"))
}

func TestNewProgramCompileError(t *testing.T) {
	dev := gputest.NewDevice()
	dev.CompileLogs[gpu.FragmentStage] = "0:3(1): error: syntax error\n"

	_, err := gpu.NewProgram(dev, testVertexSrc, "garbage")
	var cerr *gpu.CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, gpu.FragmentStage, cerr.Stage)
	assert.Contains(t, cerr.Log, "syntax error")
	assert.Contains(t, err.Error(), "fragment")

	// both the failed stage and the already compiled vertex stage are freed
	assert.Equal(t, 2, dev.Count("DeleteShader"))
	assert.Zero(t, dev.Count("LinkProgram"))
	assert.Empty(t, dev.Live)
}

func TestNewProgramLinkError(t *testing.T) {
	dev := gputest.NewDevice()
	dev.LinkLog = "error: vertex output not consumed"

	_, err := gpu.NewProgram(dev, testVertexSrc, testFragmentSrc)
	var lerr *gpu.LinkError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, lerr.Log, "not consumed")
	assert.Equal(t, 1, dev.Count("DeleteProgram"))
	assert.Empty(t, dev.Live)
}

func TestNewProgramAllocationFailure(t *testing.T) {
	dev := gputest.NewDevice()
	dev.FailAlloc = true

	_, err := gpu.NewProgram(dev, testVertexSrc, testFragmentSrc)
	assert.ErrorIs(t, err, gpu.ErrResourceCreation)
}

func TestUniformLocationCached(t *testing.T) {
	captureLog(t)
	dev := gputest.NewDevice().WithUniforms("u_time", "u_model")
	p, err := gpu.NewProgram(dev, testVertexSrc, testFragmentSrc)
	require.NoError(t, err)
	p.Bind()

	for i := range 5 {
		p.SetFloat("u_time", float32(i))
	}
	p.SetMat4("u_model", mgl32.Ident4())
	p.SetMat4("u_model", mgl32.Translate3D(1, 2, 3))

	assert.Equal(t, 1, dev.LocationQueries["u_time"])
	assert.Equal(t, 1, dev.LocationQueries["u_model"])
	assert.Equal(t, []any{float32(0), float32(1), float32(2), float32(3), float32(4)}, dev.Sets("u_time"))

	models := dev.Sets("u_model")
	require.Len(t, models, 2)
	// column-major: translation lands in elements 12..14
	last := models[1].([16]float32)
	assert.Equal(t, []float32{1, 2, 3}, last[12:15])
}

func TestUniformNotFoundWarnsOnce(t *testing.T) {
	buf := captureLog(t)
	dev := gputest.NewDevice()
	p, err := gpu.NewProgram(dev, testVertexSrc, testFragmentSrc)
	require.NoError(t, err)
	p.Bind()

	p.SetVec3("u_missing", mgl32.Vec3{1, 2, 3})
	p.SetVec3("u_missing", mgl32.Vec3{4, 5, 6})

	assert.Equal(t, gpu.UniformNotFound, p.Location("u_missing"))
	assert.Equal(t, 1, dev.LocationQueries["u_missing"])
	assert.Empty(t, dev.UniformSets)
	assert.Equal(t, 1, strings.Count(buf.String(), "u_missing"))
}

func TestUniformSetters(t *testing.T) {
	dev := gputest.NewDevice().WithUniforms("i", "v2", "v4")
	p, err := gpu.NewProgram(dev, testVertexSrc, testFragmentSrc)
	require.NoError(t, err)
	p.Bind()

	p.SetInt("i", 3)
	p.SetVec2("v2", mgl32.Vec2{1, 2})
	p.SetVec4("v4", mgl32.Vec4{1, 2, 3, 4})

	assert.Equal(t, []any{int32(3)}, dev.Sets("i"))
	assert.Equal(t, []any{[2]float32{1, 2}}, dev.Sets("v2"))
	assert.Equal(t, []any{[4]float32{1, 2, 3, 4}}, dev.Sets("v4"))
	for _, s := range dev.UniformSets {
		assert.Equal(t, p.ID(), s.Program)
	}
}

func TestProgramDestroyOnce(t *testing.T) {
	dev := gputest.NewDevice()
	p, err := gpu.NewProgram(dev, testVertexSrc, testFragmentSrc)
	require.NoError(t, err)
	id := p.ID()

	p.Destroy()
	p.Destroy()

	assert.Equal(t, 1, dev.Deleted[id])
	assert.Panics(t, p.Bind)
}
