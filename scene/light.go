package scene

import "github.com/go-gl/mathgl/mgl32"

// DefaultLightScale is the size of the light marker cube.
const DefaultLightScale float32 = 0.2

// Light is a point light drawn as a small cube at its position.
type Light struct {
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Color    mgl32.Vec3
}

func NewLight(position mgl32.Vec3) *Light {
	s := DefaultLightScale
	return &Light{
		Position: position,
		Scale:    mgl32.Vec3{s, s, s},
		Color:    mgl32.Vec3{1, 1, 1},
	}
}

// ModelMatrix translates to the light position, then scales the marker.
func (l *Light) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(l.Position[0], l.Position[1], l.Position[2]).
		Mul4(mgl32.Scale3D(l.Scale[0], l.Scale[1], l.Scale[2]))
}
