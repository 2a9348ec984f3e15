// Package renderer draws immediate-mode UI frames with OpenGL.
package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"uigl/internal/graphics"
	"uigl/internal/graphics/glapi"
	"uigl/internal/logging"
	"uigl/internal/profiling"
	"uigl/pkg/drawlist"
)

// Renderer owns one ResourceSet and draws frames with it.
type Renderer struct {
	api     glapi.API
	res     *graphics.ResourceSet
	release func()
	mesh    *graphics.MeshStreamer
	exec  *graphics.CommandExecutor
	stats Stats
}

// New allocates the GPU resources and uploads the atlas supplied by ctx,
// registering the texture back with ctx. Every call on api is checked; a GL
// error panics with *glapi.Error. Shader and atlas problems are returned.
func New(api glapi.API, ctx drawlist.AtlasContext, capacity graphics.Capacity) (*Renderer, error) {
	api = glapi.Checked(api)
	res, release, err := graphics.NewResourceSet(api, ctx, capacity)
	if err != nil {
		return nil, err
	}
	logging.Logger().Info("ui renderer ready",
		"vertex_bytes", capacity.VertexBytes, "index_bytes", capacity.IndexBytes)
	return &Renderer{
		api:     api,
		res:     res,
		release: release,
		mesh:    graphics.NewMeshStreamer(api, res),
		exec:    graphics.NewCommandExecutor(api),
	}, nil
}

// Ortho maps pixel space [0,w]x[0,h] (top-left origin) onto clip space,
// so (0,0) lands on (-1,1) and (w,h) on (1,-1).
func Ortho(w, h float32) mgl32.Mat4 {
	return mgl32.Ortho(0, w, h, 0, -1, 1)
}

// Render draws the frame src yields. A frame that does not fit the
// streaming buffers is rejected with a *CapacityError before any GL call.
func (r *Renderer) Render(src drawlist.Source) error {
	return src.Draw(r.renderFrame)
}

func (r *Renderer) renderFrame(f drawlist.Frame) error {
	if r.res == nil {
		return ErrDisposed
	}
	l := f.List
	if l == nil {
		l = &drawlist.List{}
	}
	if err := r.checkCapacity(l); err != nil {
		return err
	}
	w, h := f.DisplaySize.W, f.DisplaySize.H
	if w <= 0 || h <= 0 {
		// minimized window
		r.stats = Stats{}
		return nil
	}

	func() {
		defer profiling.Track("renderer.upload")()
		r.mesh.Upload(l)
	}()

	defer r.unbindState()
	r.bindState(Ortho(w, h))

	var draws int
	func() {
		defer profiling.Track("renderer.draw")()
		draws = r.exec.Issue(l.Commands, h)
	}()

	r.stats = Stats{
		Commands:    len(l.Commands),
		DrawCalls:   draws,
		Vertices:    len(l.Vertices),
		Indices:     len(l.Indices),
		UploadBytes: l.VertexBytes() + l.IndexBytes(),
	}
	return nil
}

func (r *Renderer) checkCapacity(l *drawlist.List) error {
	c := r.res.Capacity()
	if n := l.VertexBytes(); n > c.VertexBytes {
		return &CapacityError{What: "vertices", Need: n, Limit: c.VertexBytes}
	}
	if n := l.IndexBytes(); n > c.IndexBytes {
		return &CapacityError{What: "indices", Need: n, Limit: c.IndexBytes}
	}
	if n := l.ElemTotal(); n > uint64(len(l.Indices)) {
		return &CapacityError{What: "elements", Need: int(n), Limit: len(l.Indices)}
	}
	return nil
}

// bindState binds the vertex array, program and atlas, uploads the
// projection, and enables scissoring and alpha blending. Callers defer
// unbindState before calling it, so a GL panic halfway through still
// leaves no state behind.
func (r *Renderer) bindState(proj mgl32.Mat4) {
	api := r.api
	program := r.res.Program()

	api.BindVertexArray(r.res.VertexArray())
	api.UseProgram(program.ID)
	api.ActiveTexture(glapi.TEXTURE0)
	api.BindTexture(glapi.TEXTURE_2D, r.res.Atlas())

	api.UniformMatrix4fv(program.Matrix, (*[16]float32)(&proj))
	api.Uniform1i(program.Texture, 0)

	api.Enable(glapi.SCISSOR_TEST)
	api.Enable(glapi.BLEND)
	api.BlendFunc(glapi.SRC_ALPHA, glapi.ONE_MINUS_SRC_ALPHA)
}

func (r *Renderer) unbindState() {
	api := r.api
	api.Disable(glapi.SCISSOR_TEST)
	api.Disable(glapi.BLEND)
	api.BindTexture(glapi.TEXTURE_2D, 0)
	api.UseProgram(0)
	api.BindVertexArray(0)
}

// Stats describes the last rendered frame.
func (r *Renderer) Stats() Stats { return r.stats }

// AtlasID is the texture the atlas was uploaded to, or 0 after Dispose.
func (r *Renderer) AtlasID() drawlist.TextureID {
	if r.res == nil {
		return 0
	}
	return drawlist.TextureID(r.res.Atlas())
}

// Dispose releases the GPU objects. The renderer gives up its resource set
// and release func before calling it, so only the first call reaches GL.
func (r *Renderer) Dispose() {
	release := r.release
	if release == nil {
		return
	}
	r.res, r.release = nil, nil
	release()
	logging.Logger().Info("ui renderer disposed")
}

var _ Backend = (*Renderer)(nil)
