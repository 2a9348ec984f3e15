package graphics

import (
	"fmt"

	"uigl/internal/graphics/glapi"
	"uigl/pkg/drawlist"
)

// UploadAtlas creates an RGBA8 texture from atlas with nearest filtering and
// edge clamping, and leaves texture unit 0 with nothing bound.
func UploadAtlas(api glapi.API, atlas drawlist.Atlas) (glapi.Texture, error) {
	if atlas.Width <= 0 || atlas.Height <= 0 {
		return 0, fmt.Errorf("atlas: invalid size %dx%d", atlas.Width, atlas.Height)
	}
	if want := atlas.Width * atlas.Height * 4; len(atlas.Pixels) != want {
		return 0, fmt.Errorf("atlas: %d pixel bytes for %dx%d RGBA8, want %d", len(atlas.Pixels), atlas.Width, atlas.Height, want)
	}

	texture := api.GenTexture()
	api.ActiveTexture(glapi.TEXTURE0)
	api.BindTexture(glapi.TEXTURE_2D, texture)

	api.TexParameteri(glapi.TEXTURE_2D, glapi.TEXTURE_WRAP_S, int32(glapi.CLAMP_TO_EDGE))
	api.TexParameteri(glapi.TEXTURE_2D, glapi.TEXTURE_WRAP_T, int32(glapi.CLAMP_TO_EDGE))
	api.TexParameteri(glapi.TEXTURE_2D, glapi.TEXTURE_MIN_FILTER, int32(glapi.NEAREST))
	api.TexParameteri(glapi.TEXTURE_2D, glapi.TEXTURE_MAG_FILTER, int32(glapi.NEAREST))

	api.TexImage2D(
		glapi.TEXTURE_2D,
		0,
		glapi.RGBA8,
		int32(atlas.Width),
		int32(atlas.Height),
		glapi.RGBA,
		glapi.UNSIGNED_BYTE,
		atlas.Pixels,
	)

	api.BindTexture(glapi.TEXTURE_2D, 0)
	return texture, nil
}
