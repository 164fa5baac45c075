package gpu

// LayoutElement describes one vertex attribute.
type LayoutElement struct {
	Count      int32
	Type       ScalarType
	Normalized bool
}

// Size returns the byte size of the attribute.
func (e LayoutElement) Size() int32 {
	return e.Count * e.Type.Size()
}

// VertexLayout is an ordered list of attributes packed back to back in one
// interleaved buffer. Elements are only ever appended.
type VertexLayout struct {
	elements []LayoutElement
	stride   int32
}

// NewVertexLayout returns a layout of float attributes with the given
// component counts, e.g. NewVertexLayout(3, 2) for position + uv.
func NewVertexLayout(counts ...int32) *VertexLayout {
	l := &VertexLayout{}
	for _, c := range counts {
		l.Push(c)
	}
	return l
}

// Push appends a float attribute with count components.
func (l *VertexLayout) Push(count int32) {
	l.PushType(Float32, count, false)
}

// PushType appends an attribute of an arbitrary scalar type.
func (l *VertexLayout) PushType(typ ScalarType, count int32, normalized bool) {
	e := LayoutElement{Count: count, Type: typ, Normalized: normalized}
	l.elements = append(l.elements, e)
	l.stride += e.Size()
}

func (l *VertexLayout) Elements() []LayoutElement {
	return l.elements
}

// Stride is the byte distance between consecutive vertices.
func (l *VertexLayout) Stride() int32 {
	return l.stride
}

// Offset returns the byte offset of element i within a vertex.
func (l *VertexLayout) Offset(i int) int {
	off := 0
	for _, e := range l.elements[:i] {
		off += int(e.Size())
	}
	return off
}

// Floats returns how many float32 values make up one vertex. It is only
// meaningful for all-float layouts.
func (l *VertexLayout) Floats() int {
	return int(l.stride / 4)
}
