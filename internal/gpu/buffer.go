package gpu

import (
	"fmt"
	"unsafe"
)

// Buffer owns one device-side buffer object. Its contents are uploaded once
// at construction and never change. A Buffer must not be copied; pass the
// pointer and let exactly one owner call Destroy.
type Buffer struct {
	dev   Device
	id    uint32
	kind  BufferKind
	size  int
	count int
}

// NewBuffer allocates a buffer of the given kind and uploads data into it.
func NewBuffer[T any](dev Device, kind BufferKind, data []T) (*Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%s buffer: no data", kind)
	}
	id := dev.GenBuffer()
	if id == 0 {
		return nil, fmt.Errorf("%s buffer: %w", kind, ErrResourceCreation)
	}

	var zero T
	b := &Buffer{
		dev:   dev,
		id:    id,
		kind:  kind,
		size:  len(data) * int(unsafe.Sizeof(zero)),
		count: len(data),
	}
	dev.BindBuffer(kind, id)
	dev.BufferData(kind, b.size, unsafe.Pointer(&data[0]))
	return b, nil
}

// NewVertexBuffer uploads vertex data.
func NewVertexBuffer(dev Device, vertices []float32) (*Buffer, error) {
	return NewBuffer(dev, VertexBuffer, vertices)
}

// NewIndexBuffer uploads 32-bit indices.
func NewIndexBuffer(dev Device, indices []uint32) (*Buffer, error) {
	return NewBuffer(dev, IndexBuffer, indices)
}

func (b *Buffer) Bind() {
	if b.id == 0 {
		panic(fmt.Sprintf("gpu: bind of destroyed %s buffer", b.kind))
	}
	b.dev.BindBuffer(b.kind, b.id)
}

func (b *Buffer) Unbind() {
	b.dev.BindBuffer(b.kind, 0)
}

func (b *Buffer) ID() uint32       { return b.id }
func (b *Buffer) Kind() BufferKind { return b.kind }

// Size is the length of the uploaded data in bytes.
func (b *Buffer) Size() int { return b.size }

// Count is the number of elements uploaded, e.g. the index count for an
// index buffer.
func (b *Buffer) Count() int { return b.count }

// Destroy frees the device memory. Calling it again is a no-op.
func (b *Buffer) Destroy() {
	if b == nil || b.id == 0 {
		return
	}
	b.dev.DeleteBuffer(b.id)
	b.id = 0
}
