package scene

import "github.com/go-gl/mathgl/mgl32"

// Plane is the half-space Normal·p + D >= 0. Normal points inside.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// DistanceTo returns the signed distance from pt to the plane; positive is
// inside.
func (p Plane) DistanceTo(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view volume.
type Frustum struct {
	Planes [6]Plane // left, right, bottom, top, near, far
}

// FrustumFromViewProjection extracts normalized clip planes from a
// projection × view matrix (Gribb/Hartmann).
func FrustumFromViewProjection(vp mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := vp.Row(0), vp.Row(1), vp.Row(2), vp.Row(3)
	return Frustum{Planes: [6]Plane{
		normalizePlane(r3.Add(r0)),
		normalizePlane(r3.Sub(r0)),
		normalizePlane(r3.Add(r1)),
		normalizePlane(r3.Sub(r1)),
		normalizePlane(r3.Add(r2)),
		normalizePlane(r3.Sub(r2)),
	}}
}

func normalizePlane(v mgl32.Vec4) Plane {
	n := v.Vec3()
	l := n.Len()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Mul(1 / l), D: v[3] / l}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Intersects reports false only when the box lies completely outside one
// of the planes. For each plane the corner furthest along the normal is
// tested.
func (b AABB) Intersects(f *Frustum) bool {
	for _, p := range f.Planes {
		corner := b.Max
		for i := range 3 {
			if p.Normal[i] < 0 {
				corner[i] = b.Min[i]
			}
		}
		if p.DistanceTo(corner) < 0 {
			return false
		}
	}
	return true
}

// Transform returns the box enclosing the eight transformed corners.
func (b AABB) Transform(m mgl32.Mat4) AABB {
	var out AABB
	for i := range 8 {
		c := b.Min
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		w := mgl32.TransformCoordinate(c, m)
		if i == 0 {
			out = AABB{Min: w, Max: w}
			continue
		}
		for k := range 3 {
			out.Min[k] = min(out.Min[k], w[k])
			out.Max[k] = max(out.Max[k], w[k])
		}
	}
	return out
}

// Bounds returns the local-space box of the mesh positions. Positions with
// fewer than three components have the missing ones at zero.
func (m *Mesh) Bounds() AABB {
	stride := m.Stride()
	if stride == 0 || len(m.Layout) == 0 || len(m.Vertices) < stride {
		return AABB{}
	}
	comps := min(int(m.Layout[0]), 3)
	var box AABB
	for v := 0; v+stride <= len(m.Vertices); v += stride {
		var p mgl32.Vec3
		copy(p[:comps], m.Vertices[v:v+comps])
		if v == 0 {
			box = AABB{Min: p, Max: p}
			continue
		}
		for k := range 3 {
			box.Min[k] = min(box.Min[k], p[k])
			box.Max[k] = max(box.Max[k], p[k])
		}
	}
	return box
}
