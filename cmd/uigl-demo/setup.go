package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-gl/glfw/v3.3/glfw"

	"uigl/internal/config"
	"uigl/internal/logging"
)

func setupLogger(cfg config.Log) *slog.Logger {
	level, ok := logging.ParseLevel(cfg.Level)
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if !ok {
		log.Warn("unknown log level, using info", "level", cfg.Level)
	}
	logging.SetLogger(log)
	return log
}

func setupWindow(cfg config.Window) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return window, nil
}

// pointer tracks the left button across frames and maps the cursor from
// window coordinates to framebuffer pixels.
type pointer struct {
	wasDown bool
}

func (p *pointer) sample(window *glfw.Window) (x, y float32, down, pressed bool) {
	cx, cy := window.GetCursorPos()
	ww, wh := window.GetSize()
	fw, fh := window.GetFramebufferSize()
	sx, sy := float32(1), float32(1)
	if ww > 0 && wh > 0 {
		sx, sy = float32(fw)/float32(ww), float32(fh)/float32(wh)
	}
	down = window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
	pressed = down && !p.wasDown
	p.wasDown = down
	return float32(cx) * sx, float32(cy) * sy, down, pressed
}
