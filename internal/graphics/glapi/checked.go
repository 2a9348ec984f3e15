package glapi

import (
	"fmt"

	"uigl/internal/logging"
)

// Error is a nonzero glGetError code observed right after Call.
type Error struct {
	Call string
	Code Enum
}

func (e *Error) Error() string {
	return fmt.Sprintf("gl: %s: %s (0x%04X)", e.Call, ErrorName(e.Code), uint32(e.Code))
}

// ErrorName returns the GL name of an error code.
func ErrorName(code Enum) string {
	switch code {
	case NO_ERROR:
		return "GL_NO_ERROR"
	case INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case STACK_OVERFLOW:
		return "GL_STACK_OVERFLOW"
	case STACK_UNDERFLOW:
		return "GL_STACK_UNDERFLOW"
	case OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	}
	return "unknown GL error"
}

// Checked wraps api so that every call is followed by glGetError. A nonzero
// code panics with *Error: after a GL error the device state is undefined
// and the frame cannot be trusted.
//
// Wrapping an already checked API returns it unchanged.
func Checked(api API) API {
	if c, ok := api.(*checked); ok {
		return c
	}
	return &checked{api: api}
}

type checked struct {
	api API
}

func (c *checked) check(call string) {
	code := c.api.GetError()
	if code == NO_ERROR {
		return
	}
	err := &Error{Call: call, Code: code}
	logging.Logger().Error("gl call failed", "call", call, "code", ErrorName(code))
	panic(err)
}

func (c *checked) GetError() Enum { return c.api.GetError() }

func (c *checked) GenBuffers(n int) []Buffer {
	bufs := c.api.GenBuffers(n)
	c.check("glGenBuffers")
	return bufs
}

func (c *checked) BindBuffer(target Enum, b Buffer) {
	c.api.BindBuffer(target, b)
	c.check("glBindBuffer")
}

func (c *checked) BufferData(target Enum, size int, data []byte, usage Enum) {
	c.api.BufferData(target, size, data, usage)
	c.check("glBufferData")
}

func (c *checked) BufferSubData(target Enum, offset int, data []byte) {
	c.api.BufferSubData(target, offset, data)
	c.check("glBufferSubData")
}

func (c *checked) DeleteBuffers(bufs ...Buffer) {
	c.api.DeleteBuffers(bufs...)
	c.check("glDeleteBuffers")
}

func (c *checked) GenVertexArray() VertexArray {
	va := c.api.GenVertexArray()
	c.check("glGenVertexArrays")
	return va
}

func (c *checked) BindVertexArray(va VertexArray) {
	c.api.BindVertexArray(va)
	c.check("glBindVertexArray")
}

func (c *checked) EnableVertexAttribArray(index uint32) {
	c.api.EnableVertexAttribArray(index)
	c.check("glEnableVertexAttribArray")
}

func (c *checked) VertexAttribPointer(index uint32, size int32, xtype Enum, normalized bool, stride int32, offset uintptr) {
	c.api.VertexAttribPointer(index, size, xtype, normalized, stride, offset)
	c.check("glVertexAttribPointer")
}

func (c *checked) DeleteVertexArray(va VertexArray) {
	c.api.DeleteVertexArray(va)
	c.check("glDeleteVertexArrays")
}

func (c *checked) CreateShader(xtype Enum) Shader {
	s := c.api.CreateShader(xtype)
	c.check("glCreateShader")
	return s
}

func (c *checked) ShaderSource(s Shader, src string) {
	c.api.ShaderSource(s, src)
	c.check("glShaderSource")
}

func (c *checked) CompileShader(s Shader) {
	c.api.CompileShader(s)
	c.check("glCompileShader")
}

func (c *checked) ShaderInfoLog(s Shader) string {
	log := c.api.ShaderInfoLog(s)
	c.check("glGetShaderInfoLog")
	return log
}

func (c *checked) DeleteShader(s Shader) {
	c.api.DeleteShader(s)
	c.check("glDeleteShader")
}

func (c *checked) CreateProgram() Program {
	p := c.api.CreateProgram()
	c.check("glCreateProgram")
	return p
}

func (c *checked) AttachShader(p Program, s Shader) {
	c.api.AttachShader(p, s)
	c.check("glAttachShader")
}

func (c *checked) LinkProgram(p Program) {
	c.api.LinkProgram(p)
	c.check("glLinkProgram")
}

func (c *checked) ProgramInfoLog(p Program) string {
	log := c.api.ProgramInfoLog(p)
	c.check("glGetProgramInfoLog")
	return log
}

func (c *checked) GetUniformLocation(p Program, name string) Uniform {
	loc := c.api.GetUniformLocation(p, name)
	c.check("glGetUniformLocation")
	return loc
}

func (c *checked) UseProgram(p Program) {
	c.api.UseProgram(p)
	c.check("glUseProgram")
}

func (c *checked) DeleteProgram(p Program) {
	c.api.DeleteProgram(p)
	c.check("glDeleteProgram")
}

func (c *checked) UniformMatrix4fv(loc Uniform, m *[16]float32) {
	c.api.UniformMatrix4fv(loc, m)
	c.check("glUniformMatrix4fv")
}

func (c *checked) Uniform1i(loc Uniform, v int32) {
	c.api.Uniform1i(loc, v)
	c.check("glUniform1i")
}

func (c *checked) GenTexture() Texture {
	t := c.api.GenTexture()
	c.check("glGenTextures")
	return t
}

func (c *checked) ActiveTexture(unit Enum) {
	c.api.ActiveTexture(unit)
	c.check("glActiveTexture")
}

func (c *checked) BindTexture(target Enum, t Texture) {
	c.api.BindTexture(target, t)
	c.check("glBindTexture")
}

func (c *checked) TexParameteri(target, pname Enum, param int32) {
	c.api.TexParameteri(target, pname, param)
	c.check("glTexParameteri")
}

func (c *checked) TexImage2D(target Enum, level int32, internalFormat Enum, width, height int32, format, xtype Enum, pixels []byte) {
	c.api.TexImage2D(target, level, internalFormat, width, height, format, xtype, pixels)
	c.check("glTexImage2D")
}

func (c *checked) DeleteTexture(t Texture) {
	c.api.DeleteTexture(t)
	c.check("glDeleteTextures")
}

func (c *checked) Enable(capability Enum) {
	c.api.Enable(capability)
	c.check("glEnable")
}

func (c *checked) Disable(capability Enum) {
	c.api.Disable(capability)
	c.check("glDisable")
}

func (c *checked) BlendFunc(src, dst Enum) {
	c.api.BlendFunc(src, dst)
	c.check("glBlendFunc")
}

func (c *checked) Scissor(x, y, width, height int32) {
	c.api.Scissor(x, y, width, height)
	c.check("glScissor")
}

func (c *checked) DrawElements(mode Enum, count int32, xtype Enum, offset uintptr) {
	c.api.DrawElements(mode, count, xtype, offset)
	c.check("glDrawElements")
}
