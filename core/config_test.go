package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 450, cfg.Window.Height)
	assert.Equal(t, CameraFPS, cfg.Camera.Mode)
	assert.Equal(t, float32(-90), cfg.Camera.Yaw)
	assert.Equal(t, float32(2.5), cfg.Camera.Speed)
	assert.Equal(t, "assets/shaders/cubes.vert", cfg.Scene.VertexShader)
	assert.Equal(t, "assets/shaders/cubes.frag", cfg.Scene.FragmentShader)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 1024
title = "test"

[camera]
mode = "ray"
speed = 5.0
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 450, cfg.Window.Height, "unset keys keep their defaults")
	assert.Equal(t, "test", cfg.Window.Title)
	assert.Equal(t, CameraRay, cfg.Camera.Mode)
	assert.Equal(t, float32(5), cfg.Camera.Speed)
	assert.Equal(t, "assets/shaders/ray.vert", cfg.Scene.VertexShader)
	assert.Equal(t, "assets/shaders/ray.frag", cfg.Scene.FragmentShader)
}

func TestLoadConfigExplicitShaders(t *testing.T) {
	path := writeConfig(t, `
[scene]
vertex_shader = "a.vert"
fragment_shader = "a.frag"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "a.vert", cfg.Scene.VertexShader)
	assert.Equal(t, "a.frag", cfg.Scene.FragmentShader)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, "[window]\nbogus = 1\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "[window]\nwidth = 0\n"))
	assert.ErrorContains(t, err, "window size")

	_, err = LoadConfig(writeConfig(t, "[camera]\nmode = \"orbit\"\n"))
	assert.ErrorContains(t, err, "orbit")
}

func TestSetCameraModeSwapsBundledShaders(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	cfg.SetCameraMode(CameraRay)
	assert.Equal(t, CameraRay, cfg.Camera.Mode)
	assert.Equal(t, "assets/shaders/ray.vert", cfg.Scene.VertexShader)
	assert.Equal(t, "assets/shaders/ray.frag", cfg.Scene.FragmentShader)

	cfg.Scene.FragmentShader = "custom.frag"
	cfg.SetCameraMode(CameraFPS)
	assert.Equal(t, "assets/shaders/ray.vert", cfg.Scene.VertexShader)
	assert.Equal(t, "custom.frag", cfg.Scene.FragmentShader)
}

func TestViewportAspect(t *testing.T) {
	assert.Equal(t, float32(2), Viewport{Width: 200, Height: 100}.Aspect())
	assert.Equal(t, float32(1), Viewport{Width: 200}.Aspect())
	assert.True(t, Viewport{Width: 0, Height: 10}.Empty())
	assert.False(t, Viewport{Width: 1, Height: 1}.Empty())
}

func TestColorFromSlice(t *testing.T) {
	assert.Equal(t, Color{0.1, 0.2, 0.3, 1}, ColorFromSlice([]float32{0.1, 0.2, 0.3}))
	assert.Equal(t, Color{0.1, 0.2, 0.3, 0.5}, ColorFromSlice([]float32{0.1, 0.2, 0.3, 0.5}))
	assert.Equal(t, ColorBlack, ColorFromSlice(nil))
}

func TestSetLogLevel(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })
	assert.NoError(t, SetLogLevel("DEBUG"))
	assert.Error(t, SetLogLevel("loud"))
}

func TestSampleConfigLoads(t *testing.T) {
	cfg, err := LoadConfig("../config.toml")
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, CameraFPS, cfg.Camera.Mode)
	assert.Len(t, cfg.Scene.Instances, 10)
	assert.Equal(t, "assets/shaders/cubes.vert", cfg.Scene.VertexShader)
}
