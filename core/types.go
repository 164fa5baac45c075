package core

type Color struct {
	R, G, B, A float32
}

var ColorBlack = Color{0, 0, 0, 1}

// ColorFromSlice builds a Color from 3 or 4 components. A missing alpha
// defaults to 1. Any other length yields opaque black.
func ColorFromSlice(c []float32) Color {
	switch len(c) {
	case 3:
		return Color{c[0], c[1], c[2], 1}
	case 4:
		return Color{c[0], c[1], c[2], c[3]}
	}
	return ColorBlack
}

// Viewport is the drawable area of the surface in pixels.
type Viewport struct {
	Width, Height int
}

// Aspect returns width/height, or 1 for a degenerate viewport.
func (v Viewport) Aspect() float32 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// Empty reports whether the viewport has zero area.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}
