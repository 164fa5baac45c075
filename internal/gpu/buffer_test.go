package gpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glviewer/internal/gpu"
	"glviewer/internal/gpu/gputest"
)

func TestNewVertexBufferUploads(t *testing.T) {
	dev := gputest.NewDevice()
	data := []float32{-1, -1, 1, -1, 1, 1, -1, 1}

	vb, err := gpu.NewVertexBuffer(dev, data)
	require.NoError(t, err)

	assert.NotZero(t, vb.ID())
	assert.Equal(t, gpu.VertexBuffer, vb.Kind())
	assert.Equal(t, 32, vb.Size())
	assert.Equal(t, 8, vb.Count())

	uploads := dev.Find("BufferData")
	require.Len(t, uploads, 1)
	assert.Equal(t, []any{gpu.VertexBuffer, vb.ID(), 32}, uploads[0].Args)
}

func TestNewIndexBufferCount(t *testing.T) {
	dev := gputest.NewDevice()

	ib, err := gpu.NewIndexBuffer(dev, []uint32{0, 1, 2, 0, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, gpu.IndexBuffer, ib.Kind())
	assert.Equal(t, 6, ib.Count())
	assert.Equal(t, 24, ib.Size())
}

func TestNewBufferRejectsEmpty(t *testing.T) {
	dev := gputest.NewDevice()

	_, err := gpu.NewVertexBuffer(dev, nil)
	assert.Error(t, err)
	assert.Zero(t, dev.Count("GenBuffer"))
}

func TestNewBufferAllocationFailure(t *testing.T) {
	dev := gputest.NewDevice()
	dev.FailAlloc = true

	_, err := gpu.NewVertexBuffer(dev, []float32{1})
	assert.ErrorIs(t, err, gpu.ErrResourceCreation)
	assert.Zero(t, dev.Count("BufferData"))
}

func TestBufferDestroyOnce(t *testing.T) {
	dev := gputest.NewDevice()
	vb, err := gpu.NewVertexBuffer(dev, []float32{1, 2, 3})
	require.NoError(t, err)
	id := vb.ID()

	vb.Destroy()
	vb.Destroy()

	assert.Equal(t, 1, dev.Deleted[id])
	assert.NotContains(t, dev.Live, id)
	assert.Panics(t, vb.Bind)
}

func TestBufferBindUnbind(t *testing.T) {
	dev := gputest.NewDevice()
	ib, err := gpu.NewIndexBuffer(dev, []uint32{0, 1, 2})
	require.NoError(t, err)

	ib.Unbind()
	assert.Zero(t, dev.Buffers[gpu.IndexBuffer])
	ib.Bind()
	assert.Equal(t, ib.ID(), dev.Buffers[gpu.IndexBuffer])
}

func TestScalarTypeSize(t *testing.T) {
	assert.Equal(t, int32(4), gpu.Float32.Size())
	assert.Equal(t, int32(4), gpu.Uint32.Size())
	assert.Equal(t, int32(1), gpu.Uint8.Size())
	assert.Panics(t, func() { gpu.ScalarType(99).Size() })
}
