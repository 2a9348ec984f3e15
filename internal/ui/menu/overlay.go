package menu

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"uigl/internal/ui"
	"uigl/internal/ui/widget"
)

// Overlay is the demo's control panel: an FPS limit slider, a toggle for
// a clipped scrolling list, and a quit button.
type Overlay struct {
	fpsLimit   *widget.Slider
	showList   *widget.Toggle
	quit       *widget.Button
	shouldQuit bool
	scroll     float32

	// Status is drawn at the top of the panel.
	Status string
}

// FPS limit slider range; the far right end is uncapped.
const (
	minFPS = 30
	maxFPS = 240
)

// NewOverlay builds the panel. onLimit receives the new frame limit, 0 for
// uncapped.
func NewOverlay(limit int, onLimit func(int)) *Overlay {
	o := &Overlay{}
	o.fpsLimit = widget.NewSlider(0, 0, 200, 20, limitToSlider(limit), maxFPS-minFPS+2, "fpsLimit", func(val float32) {
		if onLimit != nil {
			onLimit(sliderToLimit(val))
		}
	})
	o.showList = widget.NewToggle("Clipped list", 0, 0, 40, 20, true, nil)
	o.quit = widget.NewButton("Quit", 0, 0, 200, 40, func() { o.shouldQuit = true })
	o.quit.NormalColor = mgl32.Vec3{0.2, 0.2, 0.2}
	o.quit.HoverColor = mgl32.Vec3{0.3, 0.3, 0.3}
	return o
}

func limitToSlider(limit int) float32 {
	if limit <= 0 || limit > maxFPS {
		return 1
	}
	v := float32(max(limit, minFPS)-minFPS) / float32(maxFPS-minFPS)
	return min(v, 0.95)
}

func sliderToLimit(v float32) int {
	if v > 0.99 {
		return 0
	}
	return int(minFPS + v*(maxFPS-minFPS) + 0.5)
}

// Update applies this frame's clicks. Call it after Render so hover state
// matches what was drawn.
func (o *Overlay) Update(in ui.Input) Action {
	o.shouldQuit = false
	o.showList.HandleInput(in)
	o.quit.HandleInput(in)
	if o.shouldQuit {
		return ActionQuit
	}
	return ActionNone
}

// Render draws the panel centered on the display.
func (o *Overlay) Render(c *ui.Context) {
	size := c.DisplaySize()
	c.DrawFilledRect(0, 0, size.W, size.H, mgl32.Vec3{0, 0, 0}, 0.35)

	centerX := size.W / 2
	white := mgl32.Vec3{1, 1, 1}
	grey := mgl32.Vec3{0.8, 0.8, 0.8}
	y := float32(40)

	if o.Status != "" {
		w, _ := c.MeasureText(o.Status, 0.8)
		c.DrawText(o.Status, centerX-w/2, y, 0.8, grey)
	}
	y += 50

	title := "FPS Limit"
	w, _ := c.MeasureText(title, 1)
	c.DrawText(title, centerX-w/2, y, 1, white)
	y += 10
	o.fpsLimit.SetPosition(centerX-100, y)
	o.fpsLimit.Render(c)
	label := "Uncapped"
	if l := sliderToLimit(o.fpsLimit.Value); l > 0 {
		label = fmt.Sprintf("%d FPS", l)
	}
	c.DrawText(label, centerX+110, y+15, 0.8, grey)
	y += 50

	o.showList.SetPosition(centerX-100, y)
	o.showList.Render(c)
	y += 40

	if o.showList.IsOn {
		o.renderList(c, centerX-150, y, 300, 120)
	}
	y += 140

	o.quit.SetPosition(centerX-100, y)
	o.quit.Render(c)
}

// renderList draws more rows than fit and clips them to the box, scrolling
// one pixel per frame.
func (o *Overlay) renderList(c *ui.Context, x, y, w, h float32) {
	c.DrawFilledRect(x, y, w, h, mgl32.Vec3{0.15, 0.15, 0.15}, 0.9)
	_, lineH := c.MeasureText("", 1)
	if lineH == 0 {
		return
	}
	const rows = 20
	o.scroll += 1
	if o.scroll >= rows*lineH {
		o.scroll = 0
	}

	c.PushClip(x, y, w, h)
	for i := 0; i < rows*2; i++ {
		ry := y + float32(i)*lineH - o.scroll
		if ry+lineH < y || ry > y+h {
			continue
		}
		c.DrawText(fmt.Sprintf("row %02d", i%rows), x+8, ry+c.Ascent(), 1, mgl32.Vec3{0.9, 0.9, 0.6})
	}
	c.PopClip()
}
