package widget

import (
	"github.com/go-gl/mathgl/mgl32"

	"uigl/internal/ui"
)

type Toggle struct {
	BaseComponent
	Label     string
	IsOn      bool
	OnToggle  func(isOn bool)
	IsHovered bool
}

func NewToggle(label string, x, y, w, h float32, initial bool, onToggle func(isOn bool)) *Toggle {
	return &Toggle{
		BaseComponent: BaseComponent{X: x, Y: y, W: w, H: h},
		Label:         label,
		IsOn:          initial,
		OnToggle:      onToggle,
	}
}

func (t *Toggle) Render(c *ui.Context) {
	t.IsHovered = c.Input().Inside(t.X, t.Y, t.W, t.H)

	bg := mgl32.Vec3{0.5, 0.2, 0.2}
	if t.IsOn {
		bg = mgl32.Vec3{0.2, 0.5, 0.2}
	}
	if t.IsHovered {
		bg = bg.Mul(1.2)
	}
	c.DrawFilledRect(t.X, t.Y, t.W, t.H, bg, 0.85)

	// label to the right of the box, vertically centered
	if t.Label != "" {
		_, lineH := c.MeasureText(t.Label, 1)
		baseline := t.Y + (t.H-lineH)/2 + c.Ascent()
		c.DrawText(t.Label, t.X+t.W+8, baseline, 1, mgl32.Vec3{1, 1, 1})
	}
}

func (t *Toggle) HandleInput(in ui.Input) bool {
	if t.IsHovered && in.LeftPressed {
		t.IsOn = !t.IsOn
		if t.OnToggle != nil {
			t.OnToggle(t.IsOn)
		}
		return true
	}
	return false
}
