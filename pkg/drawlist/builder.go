package drawlist

// Builder appends textured quads to a List, opening a new Command whenever
// the active clip rectangle changes.
type Builder struct {
	list    *List
	clips   []ClipRect
	white   [2]float32
	dropped int
}

// MaxVertices is the most vertices a 16-bit index can address.
const MaxVertices = 1 << 16

// NewBuilder returns a Builder writing into l. white is the UV of an opaque
// white texel in the atlas, used by AddRectFilled.
func NewBuilder(l *List, white [2]float32) *Builder {
	return &Builder{list: l, white: white}
}

// Begin resets the list and sets the base clip rect to the full display.
func (b *Builder) Begin(display Size) {
	b.list.Reset()
	b.dropped = 0
	b.clips = append(b.clips[:0], ClipRect{0, 0, display.W, display.H})
}

// List returns the list being built.
func (b *Builder) List() *List { return b.list }

// PushClipRect narrows the clip rect to its intersection with r.
func (b *Builder) PushClipRect(r ClipRect) {
	cur := b.clip()
	r.X0 = max(r.X0, cur.X0)
	r.Y0 = max(r.Y0, cur.Y0)
	r.X1 = max(min(r.X1, cur.X1), r.X0)
	r.Y1 = max(min(r.Y1, cur.Y1), r.Y0)
	b.clips = append(b.clips, r)
}

// PopClipRect restores the previous clip rect. The base rect is never popped.
func (b *Builder) PopClipRect() {
	if len(b.clips) > 1 {
		b.clips = b.clips[:len(b.clips)-1]
	}
}

// AddRectFilled adds a solid rectangle sampled from the white texel.
func (b *Builder) AddRectFilled(x0, y0, x1, y1 float32, col [4]uint8) {
	b.AddImageQuad(x0, y0, x1, y1, b.white[0], b.white[1], b.white[0], b.white[1], col)
}

// Dropped counts quads discarded since Begin because the list ran out of
// addressable vertices.
func (b *Builder) Dropped() int { return b.dropped }

// AddImageQuad adds a quad covering (x0,y0)-(x1,y1) textured with
// (u0,v0)-(u1,v1), as two triangles over four vertices.
func (b *Builder) AddImageQuad(x0, y0, x1, y1, u0, v0, u1, v1 float32, col [4]uint8) {
	l := b.list
	if len(l.Vertices)+4 > MaxVertices {
		b.dropped++
		return
	}
	base := Index(len(l.Vertices))
	l.Vertices = append(l.Vertices,
		Vertex{Pos: [2]float32{x0, y0}, UV: [2]float32{u0, v0}, Col: col},
		Vertex{Pos: [2]float32{x1, y0}, UV: [2]float32{u1, v0}, Col: col},
		Vertex{Pos: [2]float32{x1, y1}, UV: [2]float32{u1, v1}, Col: col},
		Vertex{Pos: [2]float32{x0, y1}, UV: [2]float32{u0, v1}, Col: col},
	)
	l.Indices = append(l.Indices, base, base+1, base+2, base, base+2, base+3)
	b.extend(6)
}

func (b *Builder) clip() ClipRect {
	if len(b.clips) == 0 {
		return ClipRect{}
	}
	return b.clips[len(b.clips)-1]
}

func (b *Builder) extend(n uint32) {
	l := b.list
	clip := b.clip()
	if k := len(l.Commands); k > 0 && l.Commands[k-1].ClipRect == clip {
		l.Commands[k-1].ElemCount += n
		return
	}
	l.Commands = append(l.Commands, Command{ClipRect: clip, ElemCount: n})
}
