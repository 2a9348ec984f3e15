package renderer

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uigl/internal/graphics"
	"uigl/internal/graphics/glapi"
	"uigl/internal/graphics/gltest"
	"uigl/pkg/drawlist"
)

type atlasContext struct{ id drawlist.TextureID }

func (c *atlasContext) PrepareAtlas(upload func(drawlist.Atlas) drawlist.TextureID) drawlist.TextureID {
	return upload(drawlist.Atlas{Width: 1, Height: 1, Pixels: []byte{255, 255, 255, 255}})
}

func (c *atlasContext) SetAtlasID(id drawlist.TextureID) { c.id = id }

func newRenderer(t *testing.T, capacity graphics.Capacity) (*Renderer, *gltest.API) {
	t.Helper()
	fake := gltest.New()
	r, err := New(fake, &atlasContext{}, capacity)
	require.NoError(t, err)
	fake.ResetCalls()
	return r, fake
}

func quadFrame(w, h float32) drawlist.Frame {
	l := &drawlist.List{}
	b := drawlist.NewBuilder(l, [2]float32{})
	b.Begin(drawlist.Size{W: w, H: h})
	b.AddRectFilled(0, 0, 10, 10, [4]uint8{255, 255, 255, 255})
	return drawlist.Frame{DisplaySize: drawlist.Size{W: w, H: h}, List: l}
}

func assertUnbound(t *testing.T, fake *gltest.API) {
	t.Helper()
	assert.Zero(t, fake.VAO, "vertex array")
	assert.Zero(t, fake.Program, "program")
	assert.Zero(t, fake.Bound2D[glapi.TEXTURE0], "texture")
	assert.False(t, fake.Enabled[glapi.SCISSOR_TEST], "scissor test")
	assert.False(t, fake.Enabled[glapi.BLEND], "blend")
}

func TestOrtho(t *testing.T) {
	m := Ortho(800, 600)
	want := mgl32.Mat4{
		2.0 / 800, 0, 0, 0,
		0, -2.0 / 600, 0, 0,
		0, 0, -1, 0,
		-1, 1, 0, 1,
	}
	assert.True(t, m.ApproxEqual(want), "got %v", m)

	corners := []struct{ in, out mgl32.Vec4 }{
		{mgl32.Vec4{0, 0, 0, 1}, mgl32.Vec4{-1, 1, 0, 1}},
		{mgl32.Vec4{800, 600, 0, 1}, mgl32.Vec4{1, -1, 0, 1}},
		{mgl32.Vec4{400, 300, 0, 1}, mgl32.Vec4{0, 0, 0, 1}},
	}
	for _, c := range corners {
		assert.True(t, m.Mul4x1(c.in).ApproxEqual(c.out), "%v -> %v", c.in, m.Mul4x1(c.in))
	}
}

func TestNewRegistersAtlas(t *testing.T) {
	fake := gltest.New()
	ctx := &atlasContext{}
	r, err := New(fake, ctx, graphics.DefaultCapacity)
	require.NoError(t, err)
	assert.NotZero(t, ctx.id)
	assert.Equal(t, ctx.id, r.AtlasID())
}

func TestNewShaderFailure(t *testing.T) {
	fake := gltest.New()
	fake.ShaderLogs[glapi.VERTEX_SHADER] = "syntax error"
	r, err := New(fake, &atlasContext{}, graphics.DefaultCapacity)
	assert.Nil(t, r)
	var se *graphics.ShaderError
	require.ErrorAs(t, err, &se)
	assert.Zero(t, fake.Live())
	assert.Empty(t, fake.Violations)
}

func TestRenderQuad(t *testing.T) {
	r, fake := newRenderer(t, graphics.DefaultCapacity)

	require.NoError(t, r.Render(quadFrame(100, 100)))

	require.Len(t, fake.Draws, 1)
	d := fake.Draws[0]
	assert.Equal(t, glapi.TRIANGLES, d.Mode)
	assert.Equal(t, int32(6), d.Count)
	assert.Equal(t, glapi.UNSIGNED_SHORT, d.Type)
	assert.Equal(t, uintptr(0), d.Offset)
	assert.Equal(t, [4]int32{0, 0, 100, 100}, d.Scissor)
	assert.NotZero(t, d.Program)
	assert.NotZero(t, d.VAO)
	assert.Equal(t, glapi.Texture(r.AtlasID()), d.Texture)

	assert.Equal(t, glapi.SRC_ALPHA, fake.BlendSrc)
	assert.Equal(t, glapi.ONE_MINUS_SRC_ALPHA, fake.BlendDst)
	assert.Equal(t, [16]float32(Ortho(100, 100)), fake.Matrices[0])
	assert.Equal(t, int32(0), fake.Ints[1])
	assertUnbound(t, fake)

	assert.Equal(t, Stats{Commands: 1, DrawCalls: 1, Vertices: 4, Indices: 6, UploadBytes: 92}, r.Stats())
}

func TestRenderCallOrder(t *testing.T) {
	r, fake := newRenderer(t, graphics.DefaultCapacity)
	require.NoError(t, r.Render(quadFrame(64, 64)))

	assert.Equal(t, []string{
		// upload
		"glBindBuffer", "glBindBuffer", "glBufferSubData", "glBufferSubData", "glBindBuffer", "glBindBuffer",
		// bind
		"glBindVertexArray", "glUseProgram", "glActiveTexture", "glBindTexture",
		"glUniformMatrix4fv", "glUniform1i",
		"glEnable", "glEnable", "glBlendFunc",
		// draw
		"glScissor", "glDrawElements",
		// restore
		"glDisable", "glDisable", "glBindTexture", "glUseProgram", "glBindVertexArray",
	}, fake.Names())
}

func TestRenderRejectsOversizedFrame(t *testing.T) {
	capacity := graphics.Capacity{VertexBytes: 3 * drawlist.VertexSize, IndexBytes: 512}
	r, fake := newRenderer(t, capacity)

	err := r.Render(quadFrame(100, 100))
	require.ErrorIs(t, err, ErrFrameTooLarge)
	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, CapacityError{What: "vertices", Need: 80, Limit: 60}, *ce)
	assert.Empty(t, fake.Calls)

	// a frame that fits still renders afterwards
	capacity = graphics.Capacity{VertexBytes: 4 * drawlist.VertexSize, IndexBytes: 6 * drawlist.IndexSize}
	r, fake = newRenderer(t, capacity)
	require.NoError(t, r.Render(quadFrame(100, 100)))
	assert.Len(t, fake.Draws, 1)
}

func TestRenderRejectsOversizedIndices(t *testing.T) {
	r, fake := newRenderer(t, graphics.Capacity{VertexBytes: 512, IndexBytes: 10})
	err := r.Render(quadFrame(100, 100))
	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "indices", ce.What)
	assert.Empty(t, fake.Calls)
}

func TestRenderRejectsCommandsPastIndices(t *testing.T) {
	r, fake := newRenderer(t, graphics.DefaultCapacity)
	f := quadFrame(100, 100)
	f.List.Commands[0].ElemCount = 7

	err := r.Render(f)
	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, CapacityError{What: "elements", Need: 7, Limit: 6}, *ce)
	assert.Empty(t, fake.Calls)
}

func TestRenderZeroDisplaySize(t *testing.T) {
	r, fake := newRenderer(t, graphics.DefaultCapacity)
	require.NoError(t, r.Render(quadFrame(100, 100)))
	fake.ResetCalls()

	require.NoError(t, r.Render(quadFrame(0, 100)))
	assert.Empty(t, fake.Calls)
	assert.Equal(t, Stats{}, r.Stats())
}

func TestRenderEmptyFrame(t *testing.T) {
	r, fake := newRenderer(t, graphics.DefaultCapacity)
	require.NoError(t, r.Render(drawlist.Frame{DisplaySize: drawlist.Size{W: 10, H: 10}}))
	assert.Empty(t, fake.Draws)
	assert.Empty(t, fake.Violations)
	assertUnbound(t, fake)
}

func TestRenderRestoresStateOnGLError(t *testing.T) {
	r, fake := newRenderer(t, graphics.DefaultCapacity)
	fake.FailOn("glDrawElements", glapi.INVALID_OPERATION)

	var glErr *glapi.Error
	func() {
		defer func() {
			rec := recover()
			require.NotNil(t, rec)
			err, ok := rec.(error)
			require.True(t, ok)
			require.ErrorAs(t, err, &glErr)
		}()
		_ = r.Render(quadFrame(100, 100))
	}()

	assert.Equal(t, "glDrawElements", glErr.Call)
	assert.Equal(t, glapi.INVALID_OPERATION, glErr.Code)
	assertUnbound(t, fake)
}

func TestRenderPropagatesSourceError(t *testing.T) {
	r, fake := newRenderer(t, graphics.DefaultCapacity)
	boom := errors.New("no frame")
	err := r.Render(sourceFunc(func(func(drawlist.Frame) error) error { return boom }))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, fake.Calls)
}

type sourceFunc func(func(drawlist.Frame) error) error

func (s sourceFunc) Draw(fn func(drawlist.Frame) error) error { return s(fn) }

func TestDispose(t *testing.T) {
	r, fake := newRenderer(t, graphics.DefaultCapacity)

	r.Dispose()
	assert.Zero(t, fake.Live())
	assert.Nil(t, r.release, "the release func is given up before it runs")
	released := len(fake.Calls)
	assert.Equal(t, 4, released)

	r.Dispose()
	assert.Len(t, fake.Calls, released)
	assert.Empty(t, fake.Violations)
	assert.Zero(t, r.AtlasID())
	assert.ErrorIs(t, r.Render(quadFrame(10, 10)), ErrDisposed)
}

func TestStatsFormatting(t *testing.T) {
	s := Stats{Commands: 2, DrawCalls: 2, Vertices: 8, Indices: 12, UploadBytes: 2048}
	assert.Equal(t, "2 draw calls, 8 vertices, 12 indices (2.0 KiB uploaded)", s.String())

	v := s.LogValue()
	require.Equal(t, slog.KindGroup, v.Kind())
	attrs := v.Group()
	require.Len(t, attrs, 5)
	assert.Equal(t, "draw_calls", attrs[1].Key)
	assert.Equal(t, int64(2), attrs[1].Value.Int64())
}
