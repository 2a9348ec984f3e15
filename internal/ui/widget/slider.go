package widget

import "uigl/internal/ui"

type Slider struct {
	BaseComponent
	Value    float32 // 0.0 to 1.0
	Steps    int
	ID       string
	OnChange func(val float32)
}

func NewSlider(x, y, w, h float32, initialVal float32, steps int, id string, onChange func(val float32)) *Slider {
	return &Slider{
		BaseComponent: BaseComponent{X: x, Y: y, W: w, H: h},
		Value:         initialVal,
		Steps:         steps,
		ID:            id,
		OnChange:      onChange,
	}
}

func (s *Slider) Render(c *ui.Context) {
	v := c.DrawSlider(s.X, s.Y, s.W, s.H, s.Value, s.Steps, s.ID)
	if v != s.Value {
		s.Value = v
		if s.OnChange != nil {
			s.OnChange(v)
		}
	}
}

// HandleInput is a no-op; DrawSlider consumes the pointer.
func (s *Slider) HandleInput(in ui.Input) bool { return false }
