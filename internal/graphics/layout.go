package graphics

import (
	"fmt"
	"unsafe"

	"uigl/internal/graphics/glapi"
	"uigl/pkg/drawlist"
)

// Attribute describes one vertex attribute inside an interleaved vertex.
type Attribute struct {
	Name       string
	Location   uint32
	Components int32
	Type       glapi.Enum
	Normalized bool
	Offset     uintptr
}

// Size is the attribute's byte size.
func (a Attribute) Size() uintptr {
	return uintptr(a.Components) * componentSize(a.Type)
}

// VertexLayout maps an interleaved vertex struct onto shader inputs.
type VertexLayout struct {
	Stride     int32
	Attributes []Attribute
}

// UIVertexLayout is the layout of drawlist.Vertex.
var UIVertexLayout = VertexLayout{
	Stride: int32(drawlist.VertexSize),
	Attributes: []Attribute{
		{Name: "a_pos", Location: 0, Components: 2, Type: glapi.FLOAT, Offset: unsafe.Offsetof(drawlist.Vertex{}.Pos)},
		{Name: "a_uv", Location: 1, Components: 2, Type: glapi.FLOAT, Offset: unsafe.Offsetof(drawlist.Vertex{}.UV)},
		{Name: "a_color", Location: 2, Components: 4, Type: glapi.UNSIGNED_BYTE, Normalized: true, Offset: unsafe.Offsetof(drawlist.Vertex{}.Col)},
	},
}

func componentSize(t glapi.Enum) uintptr {
	switch t {
	case glapi.FLOAT:
		return 4
	case glapi.UNSIGNED_SHORT:
		return 2
	case glapi.UNSIGNED_BYTE:
		return 1
	}
	return 0
}

// Validate checks that every attribute has a known type, 1-4 components,
// fits inside the stride, and that no two attributes overlap or share a
// location.
func (l VertexLayout) Validate() error {
	if l.Stride <= 0 {
		return fmt.Errorf("vertex layout: stride %d must be positive", l.Stride)
	}
	if len(l.Attributes) == 0 {
		return fmt.Errorf("vertex layout: no attributes")
	}
	locations := make(map[uint32]string, len(l.Attributes))
	for i, a := range l.Attributes {
		if componentSize(a.Type) == 0 {
			return fmt.Errorf("vertex layout: %s: unsupported component type 0x%04X", a.Name, uint32(a.Type))
		}
		if a.Components < 1 || a.Components > 4 {
			return fmt.Errorf("vertex layout: %s: %d components, want 1-4", a.Name, a.Components)
		}
		if end := a.Offset + a.Size(); end > uintptr(l.Stride) {
			return fmt.Errorf("vertex layout: %s: ends at byte %d, past stride %d", a.Name, end, l.Stride)
		}
		if other, ok := locations[a.Location]; ok {
			return fmt.Errorf("vertex layout: %s and %s share location %d", other, a.Name, a.Location)
		}
		locations[a.Location] = a.Name
		for _, b := range l.Attributes[:i] {
			if a.Offset < b.Offset+b.Size() && b.Offset < a.Offset+a.Size() {
				return fmt.Errorf("vertex layout: %s overlaps %s", a.Name, b.Name)
			}
		}
	}
	return nil
}

// apply enables and points every attribute of the layout. The target vertex
// array and the source array buffer must be bound.
func (l VertexLayout) apply(api glapi.API) {
	for _, a := range l.Attributes {
		api.EnableVertexAttribArray(a.Location)
		api.VertexAttribPointer(a.Location, a.Components, a.Type, a.Normalized, l.Stride, a.Offset)
	}
}
