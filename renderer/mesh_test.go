package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glviewer/internal/gpu"
	"glviewer/internal/gpu/gputest"
	"glviewer/scene"
)

func TestUploadMeshIndexed(t *testing.T) {
	dev := gputest.NewDevice()

	m, err := UploadMesh(dev, scene.Quad())
	require.NoError(t, err)
	defer m.Destroy()

	assert.True(t, m.Indexed())
	assert.Equal(t, int32(6), m.Count())
	assert.Equal(t, "Quad", m.Name)

	ptrs := dev.Find("VertexAttribPointer")
	require.Len(t, ptrs, 1)
	assert.Equal(t, int32(8), ptrs[0].Args[5])

	// the vertex array is left unbound after setup
	assert.Zero(t, dev.VertexArray)

	m.Bind()
	m.Draw(dev)
	draws := dev.Find("DrawElements")
	require.Len(t, draws, 1)
	assert.Equal(t, []any{gpu.Triangles, int32(6), uint32(0), m.vao.ID(), m.ibo.ID()}, draws[0].Args)
}

func TestUploadMeshRejectsInvalid(t *testing.T) {
	dev := gputest.NewDevice()

	_, err := UploadMesh(dev, &scene.Mesh{Name: "broken", Vertices: []float32{1, 2}, Layout: scene.PositionUV})
	assert.Error(t, err)
	assert.Zero(t, dev.Count("GenBuffer"))
}

func TestUploadMeshAllocationFailure(t *testing.T) {
	dev := gputest.NewDevice()
	dev.FailAlloc = true

	_, err := UploadMesh(dev, scene.Cube())
	assert.ErrorIs(t, err, gpu.ErrResourceCreation)
	assert.Empty(t, dev.Live)
}

func TestGPUMeshDestroy(t *testing.T) {
	dev := gputest.NewDevice()
	m, err := UploadMesh(dev, scene.Sphere(1, 6, 3))
	require.NoError(t, err)

	m.Destroy()
	m.Destroy()

	assert.Empty(t, dev.Live)
	assert.Equal(t, 1, dev.Count("DeleteVertexArray"))
	assert.Equal(t, 2, dev.Count("DeleteBuffer"))

	var nilMesh *GPUMesh
	assert.NotPanics(t, nilMesh.Destroy)
}
