package drawlist

import "unsafe"

// Vertex is one UI vertex as laid out in the streaming vertex buffer.
type Vertex struct {
	Pos [2]float32
	UV  [2]float32
	Col [4]uint8
}

// Index is the element type of the shared index buffer.
type Index = uint16

const (
	// VertexSize is the byte stride of Vertex in GPU memory.
	VertexSize = int(unsafe.Sizeof(Vertex{}))
	// IndexSize is the byte size of one Index.
	IndexSize = int(unsafe.Sizeof(Index(0)))
)

// TextureID identifies a texture registered with the UI context.
type TextureID uint32

// ClipRect is a clipping rectangle in pixels, top-left origin.
type ClipRect struct {
	X0, Y0, X1, Y1 float32
}

// Width returns X1-X0.
func (c ClipRect) Width() float32 { return c.X1 - c.X0 }

// Height returns Y1-Y0.
func (c ClipRect) Height() float32 { return c.Y1 - c.Y0 }

// Command renders ElemCount indices, starting right after the previous
// command's indices, clipped to ClipRect.
type Command struct {
	ClipRect  ClipRect
	ElemCount uint32
}

// List holds one frame's shared vertex and index buffers and the commands
// that slice them.
type List struct {
	Vertices []Vertex
	Indices  []Index
	Commands []Command
}

// VertexBytes is the byte length of the vertex buffer.
func (l *List) VertexBytes() int { return len(l.Vertices) * VertexSize }

// IndexBytes is the byte length of the index buffer.
func (l *List) IndexBytes() int { return len(l.Indices) * IndexSize }

// ElemTotal sums ElemCount over all commands.
func (l *List) ElemTotal() uint64 {
	var n uint64
	for _, c := range l.Commands {
		n += uint64(c.ElemCount)
	}
	return n
}

// Reset truncates all buffers, keeping their backing arrays.
func (l *List) Reset() {
	l.Vertices = l.Vertices[:0]
	l.Indices = l.Indices[:0]
	l.Commands = l.Commands[:0]
}

// VertexData returns the vertex buffer as raw bytes without copying.
func (l *List) VertexData() []byte {
	if len(l.Vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&l.Vertices[0])), l.VertexBytes())
}

// IndexData returns the index buffer as raw bytes without copying.
func (l *List) IndexData() []byte {
	if len(l.Indices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&l.Indices[0])), l.IndexBytes())
}

// Size is a display size in pixels.
type Size struct {
	W, H float32
}

// Frame is everything the UI produced for one frame.
type Frame struct {
	DisplaySize Size
	List        *List
}

// Draw hands f to fn, so a plain Frame can be used as a Source.
func (f Frame) Draw(fn func(Frame) error) error {
	return fn(f)
}

// Source yields a frame's draw data to a consumer.
//
// The UI library calls fn exactly once per Draw with data that is only
// valid for the duration of the call.
type Source interface {
	Draw(fn func(Frame) error) error
}

// Atlas is an RGBA8 image, rows top to bottom, 4 bytes per pixel.
type Atlas struct {
	Width  int
	Height int
	Pixels []byte
}

// AtlasContext is the part of a UI context that hands out its font atlas
// once and learns which texture it was uploaded to.
type AtlasContext interface {
	// PrepareAtlas calls upload with the atlas pixels and returns whatever
	// upload returned.
	PrepareAtlas(upload func(Atlas) TextureID) TextureID
	// SetAtlasID registers the atlas texture for subsequent frames.
	SetAtlasID(id TextureID)
}
