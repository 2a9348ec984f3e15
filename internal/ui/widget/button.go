package widget

import (
	"github.com/go-gl/mathgl/mgl32"

	"uigl/internal/ui"
)

type Button struct {
	BaseComponent
	Text      string
	OnClick   func()
	IsHovered bool

	NormalColor mgl32.Vec3
	HoverColor  mgl32.Vec3
	TextColor   mgl32.Vec3
}

func NewButton(text string, x, y, w, h float32, onClick func()) *Button {
	return &Button{
		BaseComponent: BaseComponent{X: x, Y: y, W: w, H: h},
		Text:          text,
		OnClick:       onClick,
		NormalColor:   mgl32.Vec3{0.3, 0.3, 0.3},
		HoverColor:    mgl32.Vec3{0.4, 0.4, 0.4},
		TextColor:     mgl32.Vec3{1, 1, 1},
	}
}

func (b *Button) Render(c *ui.Context) {
	b.IsHovered = c.Input().Inside(b.X, b.Y, b.W, b.H)

	color := b.NormalColor
	if b.IsHovered {
		color = b.HoverColor
	}
	c.DrawFilledRect(b.X, b.Y, b.W, b.H, color, 1)

	// Fit the label to 40% of the height, then shrink to 90% of the width.
	_, lineH := c.MeasureText(b.Text, 1)
	if lineH == 0 {
		return
	}
	scale := b.H * 0.4 / lineH
	textW, _ := c.MeasureText(b.Text, scale)
	if maxW := b.W * 0.9; textW > maxW {
		scale *= maxW / textW
		textW = maxW
	}
	_, textH := c.MeasureText(b.Text, scale)
	baseline := b.Y + (b.H-textH)/2 + c.Ascent()*scale

	c.PushClip(b.X, b.Y, b.W, b.H)
	c.DrawText(b.Text, b.X+(b.W-textW)/2, baseline, scale, b.TextColor)
	c.PopClip()
}

func (b *Button) HandleInput(in ui.Input) bool {
	if b.IsHovered && in.LeftPressed {
		if b.OnClick != nil {
			b.OnClick()
		}
		return true
	}
	return false
}
