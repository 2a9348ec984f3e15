package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uigl/internal/graphics/glapi"
	"uigl/internal/graphics/gltest"
	"uigl/pkg/drawlist"
)

func TestUploadAtlas(t *testing.T) {
	fake := gltest.New()
	px := []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 255, 0,
	}
	tex, err := UploadAtlas(glapi.Checked(fake), drawlist.Atlas{Width: 2, Height: 2, Pixels: px})
	require.NoError(t, err)

	obj := fake.TextureObject(tex)
	require.NotNil(t, obj)
	assert.Equal(t, px, obj.Pixels)
	assert.Equal(t, glapi.RGBA8, obj.InternalFormat)
	assert.Equal(t, int32(glapi.CLAMP_TO_EDGE), obj.Params[glapi.TEXTURE_WRAP_S])
	assert.Equal(t, int32(glapi.CLAMP_TO_EDGE), obj.Params[glapi.TEXTURE_WRAP_T])
	assert.Equal(t, int32(glapi.NEAREST), obj.Params[glapi.TEXTURE_MIN_FILTER])

	assert.Equal(t, glapi.TEXTURE0, fake.ActiveUnit)
	assert.Zero(t, fake.Bound2D[glapi.TEXTURE0])
	img := fake.Named("glTexImage2D")
	require.Len(t, img, 1)
	assert.Equal(t, []any{glapi.TEXTURE_2D, int32(0), glapi.RGBA8, int32(2), int32(2), glapi.RGBA, glapi.UNSIGNED_BYTE}, img[0].Args)
}

func TestUploadAtlasValidates(t *testing.T) {
	fake := gltest.New()
	_, err := UploadAtlas(fake, drawlist.Atlas{Width: 0, Height: 4})
	assert.ErrorContains(t, err, "invalid size")

	_, err = UploadAtlas(fake, drawlist.Atlas{Width: 2, Height: 2, Pixels: make([]byte, 15)})
	assert.ErrorContains(t, err, "want 16")
	assert.Empty(t, fake.Calls)
}
