// Package glcore implements glapi.API on the go-gl OpenGL 4.1 core bindings.
//
// All calls must come from the goroutine that owns the current GL context,
// which in turn must be locked to its OS thread.
package glcore

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"uigl/internal/graphics/glapi"
)

// API forwards to the driver.
type API struct{}

// Init loads the GL function pointers for the current context and returns
// the driver-backed API. Call it after making a context current.
func Init() (*API, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	return &API{}, nil
}

// Version returns the GL_VERSION string of the current context.
func (*API) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}

func (*API) GetError() glapi.Enum { return glapi.Enum(gl.GetError()) }

func (*API) GenBuffers(n int) []glapi.Buffer {
	ids := make([]uint32, n)
	gl.GenBuffers(int32(n), &ids[0])
	out := make([]glapi.Buffer, n)
	for i, id := range ids {
		out[i] = glapi.Buffer(id)
	}
	return out
}

func (*API) BindBuffer(target glapi.Enum, b glapi.Buffer) {
	gl.BindBuffer(uint32(target), uint32(b))
}

func (*API) BufferData(target glapi.Enum, size int, data []byte, usage glapi.Enum) {
	gl.BufferData(uint32(target), size, ptr(data), uint32(usage))
}

func (*API) BufferSubData(target glapi.Enum, offset int, data []byte) {
	gl.BufferSubData(uint32(target), offset, len(data), ptr(data))
}

func (*API) DeleteBuffers(bufs ...glapi.Buffer) {
	if len(bufs) == 0 {
		return
	}
	ids := make([]uint32, len(bufs))
	for i, b := range bufs {
		ids[i] = uint32(b)
	}
	gl.DeleteBuffers(int32(len(ids)), &ids[0])
}

func (*API) GenVertexArray() glapi.VertexArray {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return glapi.VertexArray(id)
}

func (*API) BindVertexArray(va glapi.VertexArray) { gl.BindVertexArray(uint32(va)) }

func (*API) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (*API) VertexAttribPointer(index uint32, size int32, xtype glapi.Enum, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, uint32(xtype), normalized, stride, offset)
}

func (*API) DeleteVertexArray(va glapi.VertexArray) {
	id := uint32(va)
	gl.DeleteVertexArrays(1, &id)
}

func (*API) CreateShader(xtype glapi.Enum) glapi.Shader {
	return glapi.Shader(gl.CreateShader(uint32(xtype)))
}

func (*API) ShaderSource(s glapi.Shader, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(uint32(s), 1, csources, nil)
	free()
}

func (*API) CompileShader(s glapi.Shader) { gl.CompileShader(uint32(s)) }

func (*API) ShaderInfoLog(s glapi.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(s), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (*API) DeleteShader(s glapi.Shader) { gl.DeleteShader(uint32(s)) }

func (*API) CreateProgram() glapi.Program { return glapi.Program(gl.CreateProgram()) }

func (*API) AttachShader(p glapi.Program, s glapi.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (*API) LinkProgram(p glapi.Program) { gl.LinkProgram(uint32(p)) }

func (*API) ProgramInfoLog(p glapi.Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(p), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (*API) GetUniformLocation(p glapi.Program, name string) glapi.Uniform {
	return glapi.Uniform(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (*API) UseProgram(p glapi.Program) { gl.UseProgram(uint32(p)) }

func (*API) DeleteProgram(p glapi.Program) { gl.DeleteProgram(uint32(p)) }

func (*API) UniformMatrix4fv(loc glapi.Uniform, m *[16]float32) {
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

func (*API) Uniform1i(loc glapi.Uniform, v int32) { gl.Uniform1i(int32(loc), v) }

func (*API) GenTexture() glapi.Texture {
	var id uint32
	gl.GenTextures(1, &id)
	return glapi.Texture(id)
}

func (*API) ActiveTexture(unit glapi.Enum) { gl.ActiveTexture(uint32(unit)) }

func (*API) BindTexture(target glapi.Enum, t glapi.Texture) {
	gl.BindTexture(uint32(target), uint32(t))
}

func (*API) TexParameteri(target, pname glapi.Enum, param int32) {
	gl.TexParameteri(uint32(target), uint32(pname), param)
}

func (*API) TexImage2D(target glapi.Enum, level int32, internalFormat glapi.Enum, width, height int32, format, xtype glapi.Enum, pixels []byte) {
	gl.TexImage2D(uint32(target), level, int32(internalFormat), width, height, 0, uint32(format), uint32(xtype), ptr(pixels))
}

func (*API) DeleteTexture(t glapi.Texture) {
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}

func (*API) Enable(capability glapi.Enum)  { gl.Enable(uint32(capability)) }
func (*API) Disable(capability glapi.Enum) { gl.Disable(uint32(capability)) }

func (*API) BlendFunc(src, dst glapi.Enum) { gl.BlendFunc(uint32(src), uint32(dst)) }

func (*API) Scissor(x, y, width, height int32) { gl.Scissor(x, y, width, height) }

func (*API) DrawElements(mode glapi.Enum, count int32, xtype glapi.Enum, offset uintptr) {
	gl.DrawElementsWithOffset(uint32(mode), count, uint32(xtype), offset)
}

var _ glapi.API = (*API)(nil)
