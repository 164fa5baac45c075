package scene

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Mesh is CPU-side interleaved float geometry. Layout lists the component
// count of each attribute in vertex order, e.g. {3, 2} for position + uv.
// Indices is empty for non-indexed geometry.
type Mesh struct {
	Name     string
	Vertices []float32
	Indices  []uint32
	Layout   []int32
}

// PositionUV is the attribute layout of the built-in object geometry.
var PositionUV = []int32{3, 2}

// Stride returns how many floats make up one vertex.
func (m *Mesh) Stride() int {
	n := 0
	for _, c := range m.Layout {
		n += int(c)
	}
	return n
}

// VertexCount returns the number of whole vertices in Vertices.
func (m *Mesh) VertexCount() int {
	s := m.Stride()
	if s == 0 {
		return 0
	}
	return len(m.Vertices) / s
}

func (m *Mesh) Indexed() bool {
	return len(m.Indices) > 0
}

// Validate checks that the vertex data is a whole number of vertices and
// that every index addresses one of them.
func (m *Mesh) Validate() error {
	s := m.Stride()
	if s == 0 {
		return fmt.Errorf("mesh %q: empty layout", m.Name)
	}
	if len(m.Vertices) == 0 || len(m.Vertices)%s != 0 {
		return fmt.Errorf("mesh %q: %d floats is not a multiple of stride %d", m.Name, len(m.Vertices), s)
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("mesh %q: index %d at %d out of range (%d vertices)", m.Name, idx, i, n)
		}
	}
	return nil
}

// LoadMesh picks a loader by file extension: .obj, .gltf or .glb.
func LoadMesh(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJMesh(path)
	case ".gltf", ".glb":
		return LoadGLTFMesh(path)
	}
	return nil, fmt.Errorf("mesh %q: unsupported format", path)
}
