// Command uigl-demo opens a window and draws an interactive overlay through
// the OpenGL UI renderer.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"uigl/internal/config"
	"uigl/internal/fontatlas"
	"uigl/internal/graphics"
	"uigl/internal/graphics/glcore"
	"uigl/internal/graphics/renderer"
	"uigl/internal/pacing"
	"uigl/internal/profiling"
	"uigl/internal/ui"
	"uigl/internal/ui/menu"
	"uigl/pkg/drawlist"
)

func init() {
	// GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := setupLogger(cfg.Log)

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Window)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	api, err := glcore.Init()
	if err != nil {
		panic(err)
	}
	log.Info("opengl context", "version", api.Version())

	atlas, err := fontatlas.Default(cfg.Renderer.FontSize)
	if err != nil {
		panic(err)
	}
	uiCtx := ui.New(atlas)

	r, err := renderer.New(api, uiCtx, graphics.Capacity{
		VertexBytes: cfg.Renderer.VertexBufferSize,
		IndexBytes:  cfg.Renderer.IndexBufferSize,
	})
	if err != nil {
		panic(err)
	}
	defer r.Dispose()

	limiter := pacing.NewLimiter(cfg.Window.FPSLimit)
	overlay := menu.NewOverlay(cfg.Window.FPSLimit, limiter.SetLimit)

	run(window, r, uiCtx, overlay, limiter, log)
}

func run(window *glfw.Window, r renderer.Backend, uiCtx *ui.Context, overlay *menu.Overlay, limiter *pacing.Limiter, log *slog.Logger) {
	var (
		ptr        pointer
		frames     int
		lastReport = time.Now()
	)
	gl.ClearColor(0.45, 0.45, 0.45, 1)

	for !window.ShouldClose() {
		profiling.ResetFrame()

		fw, fh := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fw), int32(fh))
		gl.Clear(gl.COLOR_BUFFER_BIT)

		mx, my, down, pressed := ptr.sample(window)
		in := ui.Input{MouseX: mx, MouseY: my, LeftDown: down, LeftPressed: pressed}
		uiCtx.NewFrame(drawlist.Size{W: float32(fw), H: float32(fh)}, in)
		overlay.Render(uiCtx)
		if overlay.Update(in) == menu.ActionQuit {
			window.SetShouldClose(true)
		}

		if err := r.Render(uiCtx); err != nil {
			log.Warn("frame skipped", "err", err)
		}
		if n := uiCtx.Dropped(); n > 0 {
			log.Warn("quads dropped past the index range", "count", n)
		}

		func() {
			defer profiling.Track("glfw.SwapBuffers")()
			window.SwapBuffers()
		}()
		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		limiter.Wait()

		frames++
		if elapsed := time.Since(lastReport); elapsed >= time.Second {
			fps := float64(frames) / elapsed.Seconds()
			overlay.Status = fmt.Sprintf("%.0f fps | %s", fps, r.Stats())
			log.Debug("frame", "fps", int(fps+0.5), "stats", r.Stats(), "top", profiling.TopN(3))
			frames = 0
			lastReport = time.Now()
		}
	}
}
