// Package ui builds draw lists for immediate-mode widgets on top of a baked
// font atlas. A Context is both the atlas owner the renderer registers its
// texture with and the Source it renders each frame from.
package ui

import (
	"github.com/go-gl/mathgl/mgl32"

	"uigl/internal/fontatlas"
	"uigl/pkg/drawlist"
)

// Input is the pointer state sampled once per frame.
type Input struct {
	MouseX, MouseY float32
	LeftDown       bool
	// LeftPressed is true only on the frame the button went down.
	LeftPressed bool
}

// Inside reports whether the pointer is within the rectangle.
func (in Input) Inside(x, y, w, h float32) bool {
	return in.MouseX >= x && in.MouseX <= x+w && in.MouseY >= y && in.MouseY <= y+h
}

type Context struct {
	atlas   *fontatlas.Atlas
	texture drawlist.TextureID
	list    drawlist.List
	builder *drawlist.Builder
	display drawlist.Size
	input   Input

	activeSlider string
}

func New(atlas *fontatlas.Atlas) *Context {
	c := &Context{atlas: atlas}
	c.builder = drawlist.NewBuilder(&c.list, atlas.WhiteUV)
	return c
}

// PrepareAtlas hands the baked pixels to upload and returns its texture.
func (c *Context) PrepareAtlas(upload func(drawlist.Atlas) drawlist.TextureID) drawlist.TextureID {
	return upload(c.atlas.Image())
}

// SetAtlasID records the texture the atlas lives in.
func (c *Context) SetAtlasID(id drawlist.TextureID) { c.texture = id }

// AtlasID is the registered atlas texture, 0 before registration.
func (c *Context) AtlasID() drawlist.TextureID { return c.texture }

// NewFrame starts a frame of the given display size.
func (c *Context) NewFrame(display drawlist.Size, in Input) {
	c.display = display
	c.input = in
	if !in.LeftDown {
		c.activeSlider = ""
	}
	c.builder.Begin(display)
}

func (c *Context) Input() Input { return c.input }

func (c *Context) DisplaySize() drawlist.Size { return c.display }

// Dropped counts quads lost this frame to the 16-bit index range.
func (c *Context) Dropped() int { return c.builder.Dropped() }

// Frame returns the geometry built since NewFrame.
func (c *Context) Frame() drawlist.Frame {
	return drawlist.Frame{DisplaySize: c.display, List: &c.list}
}

// Draw yields the current frame.
func (c *Context) Draw(fn func(drawlist.Frame) error) error {
	return fn(c.Frame())
}

// PushClip restricts drawing to the rectangle until the matching PopClip.
func (c *Context) PushClip(x, y, w, h float32) {
	c.builder.PushClipRect(drawlist.ClipRect{X0: x, Y0: y, X1: x + w, Y1: y + h})
}

func (c *Context) PopClip() { c.builder.PopClipRect() }

// DrawFilledRect fills a rectangle with color at the given opacity.
func (c *Context) DrawFilledRect(x, y, w, h float32, color mgl32.Vec3, alpha float32) {
	if w <= 0 || h <= 0 {
		return
	}
	c.builder.AddRectFilled(x, y, x+w, y+h, rgba(color, alpha))
}

// DrawText draws text with its baseline at y. Unknown runes render as '?'.
func (c *Context) DrawText(text string, x, y, scale float32, color mgl32.Vec3) {
	col := rgba(color, 1)
	for _, r := range text {
		g, ok := c.atlas.Glyph(r)
		if !ok {
			continue
		}
		if g.Visible() {
			c.builder.AddImageQuad(
				x+g.X0*scale, y+g.Y0*scale, x+g.X1*scale, y+g.Y1*scale,
				g.U0, g.V0, g.U1, g.V1, col)
		}
		x += g.Advance * scale
	}
}

// MeasureText returns the width of text and the font's line height, both
// at scale.
func (c *Context) MeasureText(text string, scale float32) (float32, float32) {
	return c.atlas.Measure(text) * scale, c.atlas.LineHeight * scale
}

// Ascent is the distance from the top of a line to its baseline at scale 1.
func (c *Context) Ascent() float32 { return c.atlas.Ascent }

// DrawSlider draws a horizontal slider with value in [0,1] and returns the
// value after this frame's input. Only the slider named id follows the
// pointer while the button is held. steps > 1 snaps to evenly spaced ticks.
func (c *Context) DrawSlider(x, y, w, h, value float32, steps int, id string) float32 {
	c.DrawFilledRect(x, y, w, h, mgl32.Vec3{0.3, 0.3, 0.3}, 0.8)

	if steps > 1 {
		tickH := h * 0.6
		tickY := y + (h-tickH)*0.5
		spacing := max(steps/10, 1)
		for i := 0; i < steps; i++ {
			if i != 0 && i != steps-1 && i%spacing != 0 {
				continue
			}
			tx := x + float32(i)/float32(steps-1)*w - 1
			c.DrawFilledRect(tx, tickY, 2, tickH, mgl32.Vec3{0.9, 0.9, 0.9}, 0.18)
		}
	}

	in := c.input
	if in.LeftPressed && in.Inside(x, y, w, h) {
		c.activeSlider = id
	}
	if c.activeSlider == id && in.LeftDown && w > 0 {
		value = snap(mgl32.Clamp((in.MouseX-x)/w, 0, 1), steps)
	}

	const thumbW = 20
	thumbX := x + value*w - thumbW/2
	thumbX = mgl32.Clamp(thumbX, x, x+w-thumbW)
	c.DrawFilledRect(thumbX, y, thumbW, h, mgl32.Vec3{0.85, 0.85, 0.85}, 1)
	return value
}

func snap(v float32, steps int) float32 {
	if steps <= 1 {
		return v
	}
	denom := float32(steps - 1)
	return float32(int(v*denom+0.5)) / denom
}

func rgba(c mgl32.Vec3, alpha float32) [4]uint8 {
	v := c.Vec4(alpha)
	var out [4]uint8
	for i := range out {
		out[i] = uint8(mgl32.Clamp(v[i], 0, 1)*255 + 0.5)
	}
	return out
}

var (
	_ drawlist.AtlasContext = (*Context)(nil)
	_ drawlist.Source       = (*Context)(nil)
)
