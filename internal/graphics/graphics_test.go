package graphics

import (
	"uigl/internal/graphics/glapi"
	"uigl/internal/graphics/gltest"
	"uigl/pkg/drawlist"
)

// atlasContext supplies a solid white atlas and remembers the id it is
// given back.
type atlasContext struct {
	atlas    drawlist.Atlas
	prepared int
	id       drawlist.TextureID
	skip     bool
}

func whiteAtlas(w, h int) *atlasContext {
	px := make([]byte, w*h*4)
	for i := range px {
		px[i] = 0xFF
	}
	return &atlasContext{atlas: drawlist.Atlas{Width: w, Height: h, Pixels: px}}
}

func (c *atlasContext) PrepareAtlas(upload func(drawlist.Atlas) drawlist.TextureID) drawlist.TextureID {
	c.prepared++
	if c.skip {
		return 0
	}
	return upload(c.atlas)
}

func (c *atlasContext) SetAtlasID(id drawlist.TextureID) { c.id = id }

func newResources(fake *gltest.API) (*ResourceSet, error) {
	r, _, err := NewResourceSet(glapi.Checked(fake), whiteAtlas(1, 1), DefaultCapacity)
	return r, err
}

// quad is one 10x10 rect at the origin.
func quad() *drawlist.List {
	l := &drawlist.List{}
	b := drawlist.NewBuilder(l, [2]float32{})
	b.Begin(drawlist.Size{W: 100, H: 100})
	b.AddRectFilled(0, 0, 10, 10, [4]uint8{255, 255, 255, 255})
	return l
}
