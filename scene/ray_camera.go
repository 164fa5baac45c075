package scene

import "github.com/go-gl/mathgl/mgl32"

const (
	rayFocalLength    float32 = 1
	rayViewportHeight float32 = 2
)

// RayCamera describes a pinhole camera as a pixel grid in front of its
// centre. A fragment shader shoots one ray from Center through
// Pixel00 + i*DeltaU + j*DeltaV per pixel. It is fixed for its lifetime;
// build a new one to move the viewpoint.
type RayCamera struct {
	AspectRatio float32
	ImageWidth  int
	ImageHeight int
	Center      mgl32.Vec3
	Pixel00     mgl32.Vec3
	DeltaU      mgl32.Vec3
	DeltaV      mgl32.Vec3
}

// NewRayCamera derives the pixel grid for an image of imageWidth pixels at
// the given aspect ratio. The image is at least one pixel in each
// direction.
func NewRayCamera(aspect float32, imageWidth int) *RayCamera {
	if imageWidth < 1 {
		imageWidth = 1
	}
	if aspect <= 0 {
		aspect = 1
	}
	imageHeight := int(float32(imageWidth) / aspect)
	if imageHeight < 1 {
		imageHeight = 1
	}

	viewportWidth := rayViewportHeight * float32(imageWidth) / float32(imageHeight)
	center := mgl32.Vec3{0, 0, 0}

	viewportU := mgl32.Vec3{viewportWidth, 0, 0}
	viewportV := mgl32.Vec3{0, -rayViewportHeight, 0}
	deltaU := viewportU.Mul(1 / float32(imageWidth))
	deltaV := viewportV.Mul(1 / float32(imageHeight))

	upperLeft := center.
		Sub(mgl32.Vec3{0, 0, rayFocalLength}).
		Sub(viewportU.Mul(0.5)).
		Sub(viewportV.Mul(0.5))
	pixel00 := upperLeft.Add(deltaU.Add(deltaV).Mul(0.5))

	return &RayCamera{
		AspectRatio: aspect,
		ImageWidth:  imageWidth,
		ImageHeight: imageHeight,
		Center:      center,
		Pixel00:     pixel00,
		DeltaU:      deltaU,
		DeltaV:      deltaV,
	}
}

func (c *RayCamera) Position() mgl32.Vec3 { return c.Center }

// SetUniforms uploads the pixel grid. aspect is ignored; the grid was fixed
// at construction.
func (c *RayCamera) SetUniforms(u UniformSetter, _ float32) {
	u.SetVec3("u_camera.center", c.Center)
	u.SetVec3("u_camera.pixel00_loc", c.Pixel00)
	u.SetVec3("u_camera.pixel_delta_u", c.DeltaU)
	u.SetVec3("u_camera.pixel_delta_v", c.DeltaV)
	u.SetFloat("u_camera.aspect_ratio", c.AspectRatio)
	u.SetFloat("u_camera.image_width", float32(c.ImageWidth))
	u.SetFloat("u_camera.image_height", float32(c.ImageHeight))
}

func (c *RayCamera) ProcessKeyboard(Movement, float32) {}
func (c *RayCamera) ProcessMouseMovement(_, _ float32) {}
func (c *RayCamera) ProcessScroll(float32)             {}
