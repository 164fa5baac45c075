package gpu

import "fmt"

// VertexArray records how a vertex buffer feeds the shader's attribute
// slots, plus the index buffer used for indexed draws. It references but
// does not own the buffers attached to it.
type VertexArray struct {
	dev   Device
	id    uint32
	slots []uint32
	index *Buffer
}

func NewVertexArray(dev Device) (*VertexArray, error) {
	id := dev.GenVertexArray()
	if id == 0 {
		return nil, fmt.Errorf("vertex array: %w", ErrResourceCreation)
	}
	return &VertexArray{dev: dev, id: id}, nil
}

// AddBuffer wires vb into the attribute slots described by layout. Slot i
// receives element i at its cumulative byte offset. Calling it again with
// the same arguments reproduces the same state.
func (va *VertexArray) AddBuffer(vb *Buffer, layout *VertexLayout) error {
	if vb.Kind() != VertexBuffer {
		return fmt.Errorf("vertex array: cannot attach %s buffer as vertex source", vb.Kind())
	}
	va.Bind()
	vb.Bind()

	elements := layout.Elements()
	slots := make([]uint32, 0, len(elements))
	offset := 0
	for i, e := range elements {
		slot := uint32(i)
		va.dev.EnableVertexAttribArray(slot)
		va.dev.VertexAttribPointer(slot, e.Count, e.Type, e.Normalized, layout.Stride(), offset)
		offset += int(e.Size())
		slots = append(slots, slot)
	}
	va.slots = slots
	return nil
}

// SetIndexBuffer records ib in the vertex array's element binding.
func (va *VertexArray) SetIndexBuffer(ib *Buffer) error {
	if ib.Kind() != IndexBuffer {
		return fmt.Errorf("vertex array: %s buffer is not an index buffer", ib.Kind())
	}
	va.Bind()
	ib.Bind()
	va.index = ib
	return nil
}

// IndexBuffer returns the attached index buffer, or nil.
func (va *VertexArray) IndexBuffer() *Buffer { return va.index }

// Slots returns the attribute slots enabled by the last AddBuffer.
func (va *VertexArray) Slots() []uint32 { return va.slots }

func (va *VertexArray) Bind() {
	if va.id == 0 {
		panic("gpu: bind of destroyed vertex array")
	}
	va.dev.BindVertexArray(va.id)
}

func (va *VertexArray) Unbind() {
	va.dev.BindVertexArray(0)
}

func (va *VertexArray) ID() uint32 { return va.id }

// Destroy releases the vertex array object. Attached buffers are left to
// their owner.
func (va *VertexArray) Destroy() {
	if va == nil || va.id == 0 {
		return
	}
	va.dev.DeleteVertexArray(va.id)
	va.id = 0
	va.index = nil
}
