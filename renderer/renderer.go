// Package renderer draws the configured scene each frame: one textured mesh
// drawn once per instance, plus an optional point light marker.
package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"glviewer/core"
	"glviewer/internal/gpu"
	"glviewer/scene"
)

const (
	// rotationSpeed is the per-second spin of each instance in degrees.
	rotationSpeed float32 = 50
	// instanceAngle staggers the resting orientation of consecutive
	// instances.
	instanceAngle float32 = 20
)

var rotationAxis = mgl32.Vec3{1, 0.3, 0.5}.Normalize()

// lightPass draws the light marker with its own program.
type lightPass struct {
	light   *scene.Light
	program *gpu.Program
	mesh    *GPUMesh
}

// Renderer owns every device object of the scene. It must be created and
// used on the thread that owns the graphics context.
type Renderer struct {
	dev      gpu.Device
	viewport core.Viewport
	clear    core.Color
	camera   scene.ViewProvider

	program   *gpu.Program
	mesh      *GPUMesh
	bounds    scene.AABB
	textures  []*gpu.Texture
	instances []mgl32.Vec3
	rotate    bool
	ray       bool
	light     *lightPass

	// stats of the last Draw
	drawCalls int
	culled    int
}

// New loads shaders, textures and geometry for cfg and sets the viewport.
// In ray mode the scene is a single fullscreen quad; instances and the
// light are ignored.
func New(dev gpu.Device, cfg core.Config, viewport core.Viewport) (*Renderer, error) {
	cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Renderer{
		dev:      dev,
		viewport: viewport,
		clear:    core.ColorFromSlice(cfg.Scene.ClearColor),
		rotate:   cfg.Scene.Rotate,
		ray:      cfg.Camera.Mode == core.CameraRay,
	}
	done := false
	defer func() {
		if !done {
			r.Destroy()
		}
	}()

	var err error
	r.camera, err = scene.NewCamera(cfg.Camera, viewport.Aspect(), viewport.Width)
	if err != nil {
		return nil, err
	}

	r.program, err = gpu.LoadProgram(dev, cfg.Scene.VertexShader, cfg.Scene.FragmentShader)
	if err != nil {
		return nil, fmt.Errorf("scene shader: %w", err)
	}

	for _, path := range cfg.Scene.Textures {
		tex, err := gpu.LoadTexture(dev, path)
		if err != nil {
			return nil, fmt.Errorf("scene texture: %w", err)
		}
		r.textures = append(r.textures, tex)
	}

	geometry, err := sceneGeometry(cfg)
	if err != nil {
		return nil, err
	}
	r.mesh, err = UploadMesh(dev, geometry)
	if err != nil {
		return nil, err
	}
	r.bounds = geometry.Bounds()

	if !r.ray {
		for _, p := range cfg.Scene.Instances {
			r.instances = append(r.instances, mgl32.Vec3(p))
		}
		if len(r.instances) == 0 {
			r.instances = []mgl32.Vec3{{0, 0, 0}}
		}
		if cfg.Scene.Light {
			r.light, err = newLightPass(dev, cfg)
			if err != nil {
				return nil, err
			}
		}
	}

	dev.ClearColor(r.clear.R, r.clear.G, r.clear.B, r.clear.A)
	r.Resize(viewport.Width, viewport.Height)

	core.LogInfo("renderer ready: mesh %q (%d), %d textures, %d instances, camera %s",
		r.mesh.Name, r.mesh.Count(), len(r.textures), len(r.instances), cfg.Camera.Mode)
	done = true
	return r, nil
}

func sceneGeometry(cfg core.Config) (*scene.Mesh, error) {
	if cfg.Camera.Mode == core.CameraRay {
		return scene.Quad(), nil
	}
	switch cfg.Scene.Mesh {
	case "", "cube":
		return scene.Cube(), nil
	case "sphere":
		return scene.Sphere(0.6, 32, 16), nil
	}
	m, err := scene.LoadMesh(cfg.Scene.Mesh)
	if err != nil {
		return nil, fmt.Errorf("scene mesh: %w", err)
	}
	return m, nil
}

func newLightPass(dev gpu.Device, cfg core.Config) (*lightPass, error) {
	lp := &lightPass{light: scene.NewLight(mgl32.Vec3(cfg.Scene.LightPosition))}

	var err error
	lp.program, err = gpu.LoadProgram(dev, cfg.Scene.LightVertexShader, cfg.Scene.LightFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("light shader: %w", err)
	}
	lp.mesh, err = UploadMesh(dev, scene.Cube())
	if err != nil {
		lp.program.Destroy()
		return nil, fmt.Errorf("light: %w", err)
	}
	return lp, nil
}

// Camera returns the active view provider for input handling.
func (r *Renderer) Camera() scene.ViewProvider { return r.camera }

// Light returns the point light, or nil when the scene has none.
func (r *Renderer) Light() *scene.Light {
	if r.light == nil {
		return nil
	}
	return r.light.light
}

func (r *Renderer) Viewport() core.Viewport { return r.viewport }

// DrawCalls reports how many draw calls the last Draw issued.
func (r *Renderer) DrawCalls() int { return r.drawCalls }

// Culled reports how many instances the last Draw skipped as outside the
// view frustum.
func (r *Renderer) Culled() int { return r.culled }

// Resize matches the device viewport to a new surface size. Zero-area
// sizes are ignored.
func (r *Renderer) Resize(width, height int) {
	vp := core.Viewport{Width: width, Height: height}
	if vp.Empty() {
		core.LogWarn("ignoring resize to %dx%d", width, height)
		return
	}
	r.viewport = vp
	r.dev.Viewport(int32(width), int32(height))
}

// ModelMatrix places instance i at pos, rotated about a fixed axis by its
// resting angle plus, when rotation is enabled, t seconds of spin.
func (r *Renderer) ModelMatrix(i int, pos mgl32.Vec3, t float32) mgl32.Mat4 {
	angle := instanceAngle * float32(i)
	if r.rotate {
		angle += rotationSpeed * t
	}
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(angle), rotationAxis))
}

// Draw renders one frame. t is the time in seconds since the session
// started and drives u_time and the instance rotation.
func (r *Renderer) Draw(t float32) {
	r.drawCalls, r.culled = 0, 0
	r.dev.Clear(gpu.ClearColor | gpu.ClearDepth)

	aspect := r.viewport.Aspect()
	p := r.program
	p.Bind()
	r.camera.SetUniforms(p, aspect)
	p.SetFloat("u_time", t)
	if r.light != nil {
		p.SetVec3("u_light_position", r.light.light.Position)
		p.SetVec3("u_light_color", r.light.light.Color)
	}
	for i, tex := range r.textures {
		p.SetInt(fmt.Sprintf("texture%d", i), int32(i))
		tex.Bind(uint32(i))
	}

	r.mesh.Bind()
	if r.ray {
		r.mesh.Draw(r.dev)
		r.drawCalls++
	} else {
		frustum, cull := r.frustum(aspect)
		for i, pos := range r.instances {
			model := r.ModelMatrix(i, pos, t)
			if cull && !r.bounds.Transform(model).Intersects(&frustum) {
				r.culled++
				continue
			}
			p.SetMat4("u_model", model)
			r.mesh.Draw(r.dev)
			r.drawCalls++
		}
	}

	if r.light != nil {
		r.drawLight(aspect)
	}
}

// frustum returns the camera's view volume. Cameras without matrices do
// not cull.
func (r *Renderer) frustum(aspect float32) (scene.Frustum, bool) {
	mp, ok := r.camera.(scene.MatrixProvider)
	if !ok {
		return scene.Frustum{}, false
	}
	return scene.FrustumFromViewProjection(mp.ProjectionMatrix(aspect).Mul4(mp.ViewMatrix())), true
}

func (r *Renderer) drawLight(aspect float32) {
	mp, ok := r.camera.(scene.MatrixProvider)
	if !ok {
		return
	}
	lp := r.light
	lp.program.Bind()
	lp.program.SetMat4("u_model", lp.light.ModelMatrix())
	lp.program.SetMat4("u_view", mp.ViewMatrix())
	lp.program.SetMat4("u_projection", mp.ProjectionMatrix(aspect))
	lp.program.SetVec3("u_light_color", lp.light.Color)
	lp.mesh.Bind()
	lp.mesh.Draw(r.dev)
	r.drawCalls++
}

// Destroy releases every device object in reverse creation order. It is
// safe to call on a partially constructed renderer and more than once.
func (r *Renderer) Destroy() {
	if r.light != nil {
		r.light.mesh.Destroy()
		r.light.program.Destroy()
		r.light = nil
	}
	r.mesh.Destroy()
	r.mesh = nil
	for i := len(r.textures) - 1; i >= 0; i-- {
		r.textures[i].Destroy()
	}
	r.textures = nil
	r.program.Destroy()
	r.program = nil
}
