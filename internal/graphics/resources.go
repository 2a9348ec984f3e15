package graphics

import (
	"fmt"

	"uigl/internal/graphics/glapi"
	"uigl/internal/logging"
	"uigl/pkg/drawlist"
)

// Capacity is the fixed size of the streaming buffers, in bytes.
type Capacity struct {
	VertexBytes int
	IndexBytes  int
}

// DefaultCapacity is 512 KiB per buffer: 26214 vertices and 262144 indices.
var DefaultCapacity = Capacity{VertexBytes: 512 << 10, IndexBytes: 512 << 10}

// ResourceSet owns every GL object the UI renderer needs: the streaming
// vertex and index buffers, the vertex array describing them, the shader
// program and the atlas texture.
type ResourceSet struct {
	api      glapi.API
	capacity Capacity

	vbo     glapi.Buffer
	ebo     glapi.Buffer
	vao     glapi.VertexArray
	program Program
	atlas   glapi.Texture
}

// NewResourceSet allocates the buffers, vertex array, program and atlas
// texture. The atlas comes from ctx, which is told the resulting texture id.
// On a shader or atlas error everything created so far is released.
//
// The returned release func is the only way to delete the objects. It is
// handed to the creator alone, which owns calling it exactly once.
func NewResourceSet(api glapi.API, ctx drawlist.AtlasContext, capacity Capacity) (*ResourceSet, func(), error) {
	if capacity.VertexBytes <= 0 || capacity.IndexBytes <= 0 {
		return nil, nil, fmt.Errorf("resources: invalid buffer capacity %+v", capacity)
	}
	if err := UIVertexLayout.Validate(); err != nil {
		return nil, nil, err
	}

	r := &ResourceSet{api: api, capacity: capacity}
	r.initMesh()

	program, err := CompileProgram(api, UIVertexSource, UIFragmentSource)
	if err != nil {
		r.release()
		return nil, nil, fmt.Errorf("resources: %w", err)
	}
	r.program = program

	if err := r.initAtlas(ctx); err != nil {
		r.release()
		return nil, nil, fmt.Errorf("resources: %w", err)
	}

	logging.Logger().Debug("ui resources ready",
		"vbo", r.vbo, "ebo", r.ebo, "vao", r.vao, "program", r.program.ID, "atlas", r.atlas,
		"vertex_bytes", capacity.VertexBytes, "index_bytes", capacity.IndexBytes)
	return r, r.release, nil
}

func (r *ResourceSet) initMesh() {
	api := r.api
	bufs := api.GenBuffers(2)
	r.vbo, r.ebo = bufs[0], bufs[1]
	r.vao = api.GenVertexArray()

	api.BindVertexArray(r.vao)
	api.BindBuffer(glapi.ARRAY_BUFFER, r.vbo)
	api.BindBuffer(glapi.ELEMENT_ARRAY_BUFFER, r.ebo)

	api.BufferData(glapi.ARRAY_BUFFER, r.capacity.VertexBytes, nil, glapi.STREAM_DRAW)
	api.BufferData(glapi.ELEMENT_ARRAY_BUFFER, r.capacity.IndexBytes, nil, glapi.STREAM_DRAW)

	UIVertexLayout.apply(api)

	// The vertex array keeps its element buffer; unbind it first so the
	// element unbind below does not detach it.
	api.BindVertexArray(0)
	api.BindBuffer(glapi.ARRAY_BUFFER, 0)
	api.BindBuffer(glapi.ELEMENT_ARRAY_BUFFER, 0)
}

func (r *ResourceSet) initAtlas(ctx drawlist.AtlasContext) error {
	var uploadErr error
	id := ctx.PrepareAtlas(func(a drawlist.Atlas) drawlist.TextureID {
		tex, err := UploadAtlas(r.api, a)
		if err != nil {
			uploadErr = err
			return 0
		}
		r.atlas = tex
		return drawlist.TextureID(tex)
	})
	if uploadErr != nil {
		return uploadErr
	}
	if r.atlas == 0 {
		return fmt.Errorf("atlas: context never supplied atlas pixels")
	}
	ctx.SetAtlasID(id)
	return nil
}

// Capacity returns the streaming buffer sizes.
func (r *ResourceSet) Capacity() Capacity { return r.capacity }

// Program returns the linked UI program.
func (r *ResourceSet) Program() Program { return r.program }

// VertexArray returns the vertex array bound for drawing.
func (r *ResourceSet) VertexArray() glapi.VertexArray { return r.vao }

// Atlas returns the atlas texture.
func (r *ResourceSet) Atlas() glapi.Texture { return r.atlas }

// release deletes the texture, both buffers, the vertex array and the
// program, in that order. Objects a failed NewResourceSet never created have
// zero handles and are skipped.
func (r *ResourceSet) release() {
	api := r.api
	if r.atlas != 0 {
		api.DeleteTexture(r.atlas)
		r.atlas = 0
	}
	var bufs []glapi.Buffer
	for _, b := range []glapi.Buffer{r.vbo, r.ebo} {
		if b != 0 {
			bufs = append(bufs, b)
		}
	}
	if len(bufs) > 0 {
		api.DeleteBuffers(bufs...)
		r.vbo, r.ebo = 0, 0
	}
	if r.vao != 0 {
		api.DeleteVertexArray(r.vao)
		r.vao = 0
	}
	if r.program.ID != 0 {
		api.DeleteProgram(r.program.ID)
		r.program = Program{}
	}
}
