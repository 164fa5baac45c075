package core

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// MaxTextureUnits is the number of sampler units the renderer assigns.
const MaxTextureUnits = 16

type CameraMode string

const (
	// CameraFPS is the look-at camera driven by keyboard and mouse.
	CameraFPS CameraMode = "fps"
	// CameraRay is the static ray-generation camera consumed by the
	// fragment stage.
	CameraRay CameraMode = "ray"
)

type Config struct {
	Window WindowConfig `toml:"window"`
	Log    LogConfig    `toml:"log"`
	Camera CameraConfig `toml:"camera"`
	Scene  SceneConfig  `toml:"scene"`
}

type WindowConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Title      string `toml:"title"`
	Resizable  bool   `toml:"resizable"`
	VSync      bool   `toml:"vsync"`
	Fullscreen bool   `toml:"fullscreen"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type CameraConfig struct {
	Mode        CameraMode `toml:"mode"`
	Position    [3]float32 `toml:"position"`
	Yaw         float32    `toml:"yaw"`
	Pitch       float32    `toml:"pitch"`
	Speed       float32    `toml:"speed"`
	Sensitivity float32    `toml:"sensitivity"`
	Zoom        float32    `toml:"zoom"`
	Near        float32    `toml:"near"`
	Far         float32    `toml:"far"`
}

type SceneConfig struct {
	// Shader paths. Empty values are filled in per camera mode.
	VertexShader        string `toml:"vertex_shader"`
	FragmentShader      string `toml:"fragment_shader"`
	LightVertexShader   string `toml:"light_vertex_shader"`
	LightFragmentShader string `toml:"light_fragment_shader"`

	// Textures are bound to units 0..n-1 and exposed as texture0..textureN-1.
	Textures []string `toml:"textures"`
	// Mesh optionally replaces the built-in cube: "sphere", or a .obj,
	// .gltf or .glb file.
	Mesh string `toml:"mesh"`

	ClearColor    []float32    `toml:"clear_color"`
	Instances     [][3]float32 `toml:"instances"`
	Rotate        bool         `toml:"rotate"`
	Light         bool         `toml:"light"`
	LightPosition [3]float32   `toml:"light_position"`
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:      800,
		Height:     450,
		Title:      "GL Viewer",
		Resizable:  true,
		VSync:      true,
		Fullscreen: false,
	}
}

func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Mode:        CameraFPS,
		Position:    [3]float32{0, 0, 3},
		Yaw:         -90,
		Pitch:       0,
		Speed:       2.5,
		Sensitivity: 0.1,
		Zoom:        45,
		Near:        0.1,
		Far:         100,
	}
}

func DefaultConfig() Config {
	return Config{
		Window: DefaultWindowConfig(),
		Log:    LogConfig{Level: "info"},
		Camera: DefaultCameraConfig(),
		Scene: SceneConfig{
			Textures: []string{
				"assets/textures/checker.png",
				"assets/textures/stripes.png",
			},
			ClearColor: []float32{0.1, 0.1, 0.12, 1},
			Instances: [][3]float32{
				{0, 0, 0},
				{2, 5, -15},
				{-1.5, -2.2, -2.5},
				{-3.8, -2, -12.3},
				{2.4, -0.4, -3.5},
				{-1.7, 3, -7.5},
				{1.3, -2, -2.5},
				{1.5, 2, -2.5},
				{1.5, 0.2, -1.5},
				{-1.3, 1, -1.5},
			},
			Rotate:        true,
			Light:         true,
			LightPosition: [3]float32{1.2, 1, 2},
		},
	}
}

// LoadConfig decodes the TOML file at path over DefaultConfig. An empty path
// returns the defaults. The result is resolved and validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("open config %q: %w", path, err)
		}
		defer f.Close()

		dec := toml.NewDecoder(f).DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return cfg, fmt.Errorf("config %q: %s", path, strict.String())
			}
			return cfg, fmt.Errorf("decode config %q: %w", path, err)
		}
	}
	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// builtinShaders returns the bundled shader pair for a camera mode.
func builtinShaders(mode CameraMode) (vert, frag string) {
	if mode == CameraRay {
		return "assets/shaders/ray.vert", "assets/shaders/ray.frag"
	}
	return "assets/shaders/cubes.vert", "assets/shaders/cubes.frag"
}

// SetCameraMode switches the camera mode. If the scene shaders are the
// bundled pair of the previous mode they are swapped for the new mode's.
func (c *Config) SetCameraMode(mode CameraMode) {
	oldVert, oldFrag := builtinShaders(c.Camera.Mode)
	if c.Scene.VertexShader == oldVert && c.Scene.FragmentShader == oldFrag {
		c.Scene.VertexShader, c.Scene.FragmentShader = "", ""
	}
	c.Camera.Mode = mode
	c.Resolve()
}

// Resolve fills in the shader paths left empty for the selected camera mode.
func (c *Config) Resolve() {
	vert, frag := builtinShaders(c.Camera.Mode)
	if c.Scene.VertexShader == "" {
		c.Scene.VertexShader = vert
	}
	if c.Scene.FragmentShader == "" {
		c.Scene.FragmentShader = frag
	}
	if c.Scene.LightVertexShader == "" {
		c.Scene.LightVertexShader = "assets/shaders/light.vert"
	}
	if c.Scene.LightFragmentShader == "" {
		c.Scene.LightFragmentShader = "assets/shaders/light.frag"
	}
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Camera.Mode {
	case CameraFPS, CameraRay:
	default:
		return fmt.Errorf("unknown camera mode %q", c.Camera.Mode)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("invalid clip planes near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	if len(c.Scene.Textures) > MaxTextureUnits {
		return fmt.Errorf("%d textures exceed the %d available texture units", len(c.Scene.Textures), MaxTextureUnits)
	}
	if c.Scene.VertexShader == "" || c.Scene.FragmentShader == "" {
		return errors.New("shader paths must not be empty")
	}
	return nil
}
