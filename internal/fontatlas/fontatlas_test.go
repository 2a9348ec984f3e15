package fontatlas

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestDefaultBakesASCII(t *testing.T) {
	a, err := Default(16)
	require.NoError(t, err)

	assert.Equal(t, atlasWidth, a.Width)
	assert.Equal(t, 0, a.Height&(a.Height-1), "height is a power of two")
	assert.Len(t, a.Pixels, a.Width*a.Height*4)
	assert.Len(t, a.Glyphs, 95)
	assert.Greater(t, a.LineHeight, float32(0))
	assert.Greater(t, a.Ascent, float32(0))

	img := a.Image()
	assert.Equal(t, a.Width, img.Width)
	assert.Equal(t, a.Height, img.Height)
}

func TestWhiteTexel(t *testing.T) {
	a, err := Default(12)
	require.NoError(t, err)

	for y := 0; y < whiteSize; y++ {
		for x := 0; x < whiteSize; x++ {
			i := (y*a.Width + x) * 4
			assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, a.Pixels[i:i+4])
		}
	}
	assert.InDelta(t, 1/float32(a.Width), a.WhiteUV[0], 1e-9)
	assert.InDelta(t, 1/float32(a.Height), a.WhiteUV[1], 1e-9)
}

func TestGlyphMetrics(t *testing.T) {
	a, err := Default(16)
	require.NoError(t, err)

	space, ok := a.Glyph(' ')
	require.True(t, ok)
	assert.False(t, space.Visible())
	assert.Greater(t, space.Advance, float32(0))

	m, ok := a.Glyph('M')
	require.True(t, ok)
	assert.True(t, m.Visible())
	assert.Less(t, m.Y0, float32(0), "glyph rises above the baseline")
	assert.Greater(t, m.U1, m.U0)
	assert.Greater(t, m.V1, m.V0)
	assert.LessOrEqual(t, m.U1, float32(1))
	assert.LessOrEqual(t, m.V1, float32(1))

	fallback, ok := a.Glyph('é')
	require.True(t, ok)
	q, _ := a.Glyph('?')
	assert.Equal(t, q, fallback)
}

// coverage returns the alpha bytes of g's atlas region, row by row.
func coverage(a *Atlas, g Glyph) []byte {
	x0 := int(math.Round(float64(g.U0) * float64(a.Width)))
	x1 := int(math.Round(float64(g.U1) * float64(a.Width)))
	y0 := int(math.Round(float64(g.V0) * float64(a.Height)))
	y1 := int(math.Round(float64(g.V1) * float64(a.Height)))
	var out []byte
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			out = append(out, a.Pixels[(y*a.Width+x)*4+3])
		}
	}
	return out
}

func TestGlyphPixelsSurviveLaterGlyphs(t *testing.T) {
	alone, err := Bake(goregular.TTF, 16, []rune{'A'})
	require.NoError(t, err)
	followed, err := Bake(goregular.TTF, 16, []rune{'A', 'W', 'g', '~'})
	require.NoError(t, err)

	want := coverage(alone, alone.Glyphs['A'])
	require.NotEmpty(t, want)
	assert.Equal(t, want, coverage(followed, followed.Glyphs['A']))

	for _, r := range []rune{'A', 'W', 'g', '~'} {
		px := coverage(followed, followed.Glyphs[r])
		assert.True(t, slices.ContainsFunc(px, func(b byte) bool { return b > 0 }), "glyph %q has no coverage", r)
	}
}

func TestMeasure(t *testing.T) {
	a, err := Default(16)
	require.NoError(t, err)

	assert.Zero(t, a.Measure(""))
	h, _ := a.Glyph('h')
	i, _ := a.Glyph('i')
	assert.Equal(t, h.Advance+i.Advance, a.Measure("hi"))
}

func TestBakeErrors(t *testing.T) {
	_, err := Bake(goregular.TTF, 0, ASCII())
	assert.Error(t, err)

	_, err = Bake([]byte("not a font"), 16, ASCII())
	assert.ErrorContains(t, err, "parse font")
}

func TestNextPow2(t *testing.T) {
	for in, want := range map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 17: 32, 64: 64} {
		assert.Equal(t, want, nextPow2(in), "nextPow2(%d)", in)
	}
}
