package renderer

import (
	"fmt"

	"glviewer/internal/gpu"
	"glviewer/scene"
)

// GPUMesh is a scene.Mesh uploaded to the device: one interleaved vertex
// buffer, an optional index buffer and the vertex array tying them to the
// attribute slots.
type GPUMesh struct {
	Name string

	vbo   *gpu.Buffer
	ibo   *gpu.Buffer
	vao   *gpu.VertexArray
	count int32
}

// UploadMesh validates m and creates its device objects.
func UploadMesh(dev gpu.Device, m *scene.Mesh) (*GPUMesh, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	gm := &GPUMesh{Name: m.Name}
	done := false
	defer func() {
		if !done {
			gm.Destroy()
		}
	}()

	var err error
	gm.vbo, err = gpu.NewVertexBuffer(dev, m.Vertices)
	if err != nil {
		return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
	}
	gm.vao, err = gpu.NewVertexArray(dev)
	if err != nil {
		return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
	}
	if err = gm.vao.AddBuffer(gm.vbo, gpu.NewVertexLayout(m.Layout...)); err != nil {
		return nil, err
	}

	gm.count = int32(m.VertexCount())
	if m.Indexed() {
		gm.ibo, err = gpu.NewIndexBuffer(dev, m.Indices)
		if err != nil {
			return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
		}
		if err = gm.vao.SetIndexBuffer(gm.ibo); err != nil {
			return nil, err
		}
		gm.count = int32(gm.ibo.Count())
	}
	gm.vao.Unbind()
	done = true
	return gm, nil
}

// Bind binds the vertex array and, for indexed meshes, the index buffer.
func (m *GPUMesh) Bind() {
	m.vao.Bind()
	if m.ibo != nil {
		m.ibo.Bind()
	}
}

// Draw issues one triangle draw call. The mesh and a program must be bound.
func (m *GPUMesh) Draw(dev gpu.Device) {
	if m.ibo != nil {
		dev.DrawElements(gpu.Triangles, m.count)
		return
	}
	dev.DrawArrays(gpu.Triangles, m.count)
}

// Count is the number of indices, or vertices for non-indexed meshes.
func (m *GPUMesh) Count() int32 { return m.count }

func (m *GPUMesh) Indexed() bool { return m.ibo != nil }

// Destroy releases the vertex array before the buffers it references.
func (m *GPUMesh) Destroy() {
	if m == nil {
		return
	}
	m.vao.Destroy()
	m.ibo.Destroy()
	m.vbo.Destroy()
}
