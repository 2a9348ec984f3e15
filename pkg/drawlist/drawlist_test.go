package drawlist

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexLayoutIsTwentyBytes(t *testing.T) {
	assert.Equal(t, 20, VertexSize)
	assert.Equal(t, 2, IndexSize)
	assert.Equal(t, uintptr(0), unsafe.Offsetof(Vertex{}.Pos))
	assert.Equal(t, uintptr(8), unsafe.Offsetof(Vertex{}.UV))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(Vertex{}.Col))
}

func TestListByteViews(t *testing.T) {
	l := &List{
		Vertices: []Vertex{{Col: [4]uint8{1, 2, 3, 4}}, {Pos: [2]float32{1, 0}}},
		Indices:  []Index{0x0201, 1},
	}
	assert.Equal(t, 40, l.VertexBytes())
	assert.Equal(t, 4, l.IndexBytes())

	vb := l.VertexData()
	require.Len(t, vb, 40)
	assert.Equal(t, []byte{1, 2, 3, 4}, vb[16:20])

	ib := l.IndexData()
	require.Len(t, ib, 4)
	// little-endian hosts; GL reads indices in host order either way
	assert.ElementsMatch(t, []byte{0x01, 0x02}, ib[:2])

	empty := &List{}
	assert.Nil(t, empty.VertexData())
	assert.Nil(t, empty.IndexData())
}

func TestElemTotalAndReset(t *testing.T) {
	l := &List{Commands: []Command{{ElemCount: 6}, {ElemCount: 12}, {ElemCount: 0}}}
	assert.Equal(t, uint64(18), l.ElemTotal())

	l.Vertices = make([]Vertex, 3)
	l.Indices = make([]Index, 3)
	l.Reset()
	assert.Empty(t, l.Vertices)
	assert.Empty(t, l.Indices)
	assert.Empty(t, l.Commands)
	assert.Equal(t, 3, cap(l.Vertices))
}

func TestFrameIsSource(t *testing.T) {
	f := Frame{DisplaySize: Size{W: 800, H: 600}, List: &List{}}
	var src Source = f

	calls := 0
	err := src.Draw(func(got Frame) error {
		calls++
		assert.Equal(t, f.DisplaySize, got.DisplaySize)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	assert.ErrorIs(t, src.Draw(func(Frame) error { return boom }), boom)
}

func TestBuilderQuad(t *testing.T) {
	b := NewBuilder(&List{}, [2]float32{0.5, 0.5})
	b.Begin(Size{W: 800, H: 600})
	b.AddRectFilled(10, 20, 30, 40, [4]uint8{255, 255, 255, 255})

	l := b.List()
	require.Len(t, l.Vertices, 4)
	assert.Equal(t, []Index{0, 1, 2, 0, 2, 3}, l.Indices)
	require.Len(t, l.Commands, 1)
	assert.Equal(t, Command{ClipRect: ClipRect{0, 0, 800, 600}, ElemCount: 6}, l.Commands[0])
	for _, v := range l.Vertices {
		assert.Equal(t, [2]float32{0.5, 0.5}, v.UV)
	}
	assert.Equal(t, [2]float32{30, 40}, l.Vertices[2].Pos)
}

func TestBuilderMergesCommandsPerClip(t *testing.T) {
	b := NewBuilder(&List{}, [2]float32{})
	b.Begin(Size{W: 100, H: 100})
	col := [4]uint8{0, 0, 0, 255}

	b.AddRectFilled(0, 0, 1, 1, col)
	b.AddRectFilled(1, 1, 2, 2, col)
	b.PushClipRect(ClipRect{10, 10, 200, 50})
	b.AddRectFilled(0, 0, 1, 1, col)
	b.PopClipRect()
	b.AddRectFilled(0, 0, 1, 1, col)

	l := b.List()
	require.Len(t, l.Commands, 3)
	assert.Equal(t, uint32(12), l.Commands[0].ElemCount)
	assert.Equal(t, ClipRect{10, 10, 100, 50}, l.Commands[1].ClipRect)
	assert.Equal(t, uint32(6), l.Commands[1].ElemCount)
	assert.Equal(t, ClipRect{0, 0, 100, 100}, l.Commands[2].ClipRect)
	assert.Equal(t, uint64(len(l.Indices)), l.ElemTotal())
	assert.Equal(t, Index(12), l.Indices[len(l.Indices)-1]-3)
}

func TestBuilderClipNeverInverts(t *testing.T) {
	b := NewBuilder(&List{}, [2]float32{})
	b.Begin(Size{W: 100, H: 100})
	b.PushClipRect(ClipRect{150, 150, 160, 160})
	c := b.clip()
	assert.GreaterOrEqual(t, c.Width(), float32(0))
	assert.GreaterOrEqual(t, c.Height(), float32(0))

	b.PopClipRect()
	b.PopClipRect()
	assert.Equal(t, ClipRect{0, 0, 100, 100}, b.clip())
}

func TestBuilderDropsPastIndexRange(t *testing.T) {
	b := NewBuilder(&List{}, [2]float32{})
	b.Begin(Size{W: 10, H: 10})
	for i := 0; i < MaxVertices/4+3; i++ {
		b.AddRectFilled(0, 0, 1, 1, [4]uint8{})
	}
	l := b.List()
	assert.Len(t, l.Vertices, MaxVertices)
	assert.Equal(t, 3, b.Dropped())
	assert.Equal(t, Index(MaxVertices-1), l.Indices[len(l.Indices)-1])

	b.Begin(Size{W: 10, H: 10})
	assert.Zero(t, b.Dropped())
	assert.Empty(t, b.List().Vertices)
}
