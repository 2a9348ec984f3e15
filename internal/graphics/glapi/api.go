// Package glapi is the narrow OpenGL surface used by the UI renderer.
//
// Keeping every entry point behind API lets the pipeline run against the
// real driver (package glcore) or against a recording fake (package gltest),
// and lets Checked turn every call into a checked one.
package glapi

// Enum is a GL enumerant. Values are the ones defined by the GL headers.
type Enum uint32

// Handle types. Zero is never a valid object.
type (
	Buffer      uint32
	VertexArray uint32
	Shader      uint32
	Program     uint32
	Texture     uint32
	Uniform     int32
)

// NoUniform is the location GL reports for a uniform that does not exist
// (or was optimized out). Uploads to it are silently ignored by GL.
const NoUniform Uniform = -1

const (
	NO_ERROR                      Enum = 0
	INVALID_ENUM                  Enum = 0x0500
	INVALID_VALUE                 Enum = 0x0501
	INVALID_OPERATION             Enum = 0x0502
	STACK_OVERFLOW                Enum = 0x0503
	STACK_UNDERFLOW               Enum = 0x0504
	OUT_OF_MEMORY                 Enum = 0x0505
	INVALID_FRAMEBUFFER_OPERATION Enum = 0x0506

	TRIANGLES Enum = 0x0004

	SRC_ALPHA           Enum = 0x0302
	ONE_MINUS_SRC_ALPHA Enum = 0x0303

	BLEND        Enum = 0x0BE2
	SCISSOR_TEST Enum = 0x0C11
	TEXTURE_2D   Enum = 0x0DE1

	UNSIGNED_BYTE  Enum = 0x1401
	UNSIGNED_SHORT Enum = 0x1403
	FLOAT          Enum = 0x1406

	RGBA  Enum = 0x1908
	RGBA8 Enum = 0x8058

	NEAREST            Enum = 0x2600
	LINEAR             Enum = 0x2601
	TEXTURE_MAG_FILTER Enum = 0x2800
	TEXTURE_MIN_FILTER Enum = 0x2801
	TEXTURE_WRAP_S     Enum = 0x2802
	TEXTURE_WRAP_T     Enum = 0x2803
	CLAMP_TO_EDGE      Enum = 0x812F

	TEXTURE0 Enum = 0x84C0

	ARRAY_BUFFER         Enum = 0x8892
	ELEMENT_ARRAY_BUFFER Enum = 0x8893
	STREAM_DRAW          Enum = 0x88E0

	FRAGMENT_SHADER Enum = 0x8B30
	VERTEX_SHADER   Enum = 0x8B31
)

// API is the subset of OpenGL 4.1 core the renderer issues. Methods map
// one-to-one onto GL entry points; slices replace pointer+length pairs.
type API interface {
	GetError() Enum

	GenBuffers(n int) []Buffer
	BindBuffer(target Enum, b Buffer)
	BufferData(target Enum, size int, data []byte, usage Enum)
	BufferSubData(target Enum, offset int, data []byte)
	DeleteBuffers(bufs ...Buffer)

	GenVertexArray() VertexArray
	BindVertexArray(va VertexArray)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype Enum, normalized bool, stride int32, offset uintptr)
	DeleteVertexArray(va VertexArray)

	CreateShader(xtype Enum) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	ShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	ProgramInfoLog(p Program) string
	GetUniformLocation(p Program, name string) Uniform
	UseProgram(p Program)
	DeleteProgram(p Program)

	UniformMatrix4fv(loc Uniform, m *[16]float32)
	Uniform1i(loc Uniform, v int32)

	GenTexture() Texture
	ActiveTexture(unit Enum)
	BindTexture(target Enum, t Texture)
	TexParameteri(target, pname Enum, param int32)
	TexImage2D(target Enum, level int32, internalFormat Enum, width, height int32, format, xtype Enum, pixels []byte)
	DeleteTexture(t Texture)

	Enable(capability Enum)
	Disable(capability Enum)
	BlendFunc(src, dst Enum)
	Scissor(x, y, width, height int32)

	DrawElements(mode Enum, count int32, xtype Enum, offset uintptr)
}
