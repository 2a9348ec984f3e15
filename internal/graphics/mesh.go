package graphics

import (
	"uigl/internal/graphics/glapi"
	"uigl/pkg/drawlist"
)

// MeshStreamer replaces the contents of the streaming buffers each frame.
type MeshStreamer struct {
	api glapi.API
	vbo glapi.Buffer
	ebo glapi.Buffer
}

// NewMeshStreamer streams into the buffers owned by r.
func NewMeshStreamer(api glapi.API, r *ResourceSet) *MeshStreamer {
	return &MeshStreamer{api: api, vbo: r.vbo, ebo: r.ebo}
}

// Upload writes the list's vertices and indices at offset 0 of the
// streaming buffers and unbinds both. It must run once per frame before any
// draw call, and the list must fit the buffers' capacity; the caller checks
// that.
func (m *MeshStreamer) Upload(l *drawlist.List) {
	api := m.api
	api.BindBuffer(glapi.ARRAY_BUFFER, m.vbo)
	api.BindBuffer(glapi.ELEMENT_ARRAY_BUFFER, m.ebo)

	api.BufferSubData(glapi.ARRAY_BUFFER, 0, l.VertexData())
	api.BufferSubData(glapi.ELEMENT_ARRAY_BUFFER, 0, l.IndexData())

	api.BindBuffer(glapi.ARRAY_BUFFER, 0)
	api.BindBuffer(glapi.ELEMENT_ARRAY_BUFFER, 0)
}
