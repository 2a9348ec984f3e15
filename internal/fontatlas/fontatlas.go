// Package fontatlas bakes a TrueType font into an RGBA8 texture atlas that
// the UI renderer samples for both text and solid fills.
package fontatlas

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"uigl/pkg/drawlist"
)

// Glyph is one baked character. X0..Y1 are the quad corners relative to
// the pen position on the baseline; U0..V1 are normalized atlas coordinates.
type Glyph struct {
	X0, Y0, X1, Y1 float32
	U0, V0, U1, V1 float32
	Advance        float32
}

// Visible reports whether the glyph covers any pixels.
func (g Glyph) Visible() bool { return g.X1 > g.X0 && g.Y1 > g.Y0 }

// Atlas holds the baked pixels and per-rune metrics.
type Atlas struct {
	Width, Height int
	Pixels        []byte // RGBA8, white with coverage in alpha
	Glyphs        map[rune]Glyph
	// WhiteUV samples a fully opaque white texel.
	WhiteUV    [2]float32
	Ascent     float32
	LineHeight float32
}

// Image returns the atlas in the form the renderer uploads.
func (a *Atlas) Image() drawlist.Atlas {
	return drawlist.Atlas{Width: a.Width, Height: a.Height, Pixels: a.Pixels}
}

// Glyph looks up r, falling back to '?' for runes that were not baked.
func (a *Atlas) Glyph(r rune) (Glyph, bool) {
	if g, ok := a.Glyphs[r]; ok {
		return g, true
	}
	g, ok := a.Glyphs['?']
	return g, ok
}

// Measure returns the advance width of s on a single line.
func (a *Atlas) Measure(s string) float32 {
	var w float32
	for _, r := range s {
		if g, ok := a.Glyph(r); ok {
			w += g.Advance
		}
	}
	return w
}

const (
	atlasWidth = 512
	padding    = 1
	// top-left block of opaque texels shared by every solid fill
	whiteSize = 2
)

// ASCII is the printable ASCII range.
func ASCII() []rune {
	runes := make([]rune, 0, 95)
	for r := rune(32); r <= 126; r++ {
		runes = append(runes, r)
	}
	return runes
}

// Default bakes the Go Regular font at size pixels over ASCII.
func Default(size float64) (*Atlas, error) {
	return Bake(goregular.TTF, size, ASCII())
}

// Bake rasterizes runes from the TrueType data ttf at size pixels.
func Bake(ttf []byte, size float64, runes []rune) (*Atlas, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size %v must be positive", size)
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	type placed struct {
		r      rune
		dr     image.Rectangle
		adv    fixed.Int26_6
		x, y   int
		hasBox bool
	}

	// First pass: pack rows left to right, the white block taking the
	// first slot of the first row. The face reuses one mask buffer for
	// every Glyph call, so only the bounds are kept here.
	items := make([]placed, 0, len(runes))
	x, y, rowH := whiteSize+padding, 0, whiteSize
	for _, r := range runes {
		dr, mask, _, adv, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		p := placed{r: r, dr: dr, adv: adv}
		gw, gh := dr.Dx(), dr.Dy()
		if mask != nil && gw > 0 && gh > 0 {
			if gw > atlasWidth {
				return nil, fmt.Errorf("glyph %q is wider than the atlas", r)
			}
			if x+gw > atlasWidth {
				x = 0
				y += rowH + padding
				rowH = 0
			}
			p.x, p.y, p.hasBox = x, y, true
			x += gw + padding
			rowH = max(rowH, gh)
		}
		items = append(items, p)
	}
	height := nextPow2(y + rowH)

	img := image.NewAlpha(image.Rect(0, 0, atlasWidth, height))
	draw.Draw(img, image.Rect(0, 0, whiteSize, whiteSize), image.Opaque, image.Point{}, draw.Src)

	fw, fh := float32(atlasWidth), float32(height)
	glyphs := make(map[rune]Glyph, len(items))
	for _, p := range items {
		g := Glyph{Advance: float32(math.Round(float64(p.adv) / 64))}
		if p.hasBox {
			// rasterize again and copy before the next call overwrites the mask
			dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, 0), p.r)
			if !ok || dr != p.dr {
				return nil, fmt.Errorf("glyph %q changed between passes", p.r)
			}
			gw, gh := dr.Dx(), dr.Dy()
			draw.Draw(img, image.Rect(p.x, p.y, p.x+gw, p.y+gh), mask, maskp, draw.Src)
			g.X0, g.Y0 = float32(p.dr.Min.X), float32(p.dr.Min.Y)
			g.X1, g.Y1 = float32(p.dr.Max.X), float32(p.dr.Max.Y)
			g.U0, g.V0 = float32(p.x)/fw, float32(p.y)/fh
			g.U1, g.V1 = float32(p.x+gw)/fw, float32(p.y+gh)/fh
		}
		glyphs[p.r] = g
	}

	m := face.Metrics()
	return &Atlas{
		Width:      atlasWidth,
		Height:     height,
		Pixels:     expandAlpha(img.Pix),
		Glyphs:     glyphs,
		WhiteUV:    [2]float32{1 / fw, 1 / fh},
		Ascent:     float32(m.Ascent.Round()),
		LineHeight: float32(m.Height.Round()),
	}, nil
}

// expandAlpha turns coverage into white RGBA texels.
func expandAlpha(alpha []byte) []byte {
	out := make([]byte, len(alpha)*4)
	for i, a := range alpha {
		o := out[i*4 : i*4+4 : i*4+4]
		o[0], o[1], o[2], o[3] = 0xFF, 0xFF, 0xFF, a
	}
	return out
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
