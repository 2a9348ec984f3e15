// Package gltest provides a recording, state-tracking glapi.API for tests.
//
// The fake reproduces the GL core-profile error rules the renderer depends
// on (binding unknown names, attribute setup without a vertex array, draws
// without a program, out-of-range buffer writes) and records every call, so
// tests can assert both on GL state after a frame and on the exact call
// sequence that produced it.
package gltest

import (
	"fmt"
	"slices"

	"uigl/internal/graphics/glapi"
)

// Call is one recorded API call.
type Call struct {
	Name string
	Args []any
}

// Draw is one recorded glDrawElements together with the state it ran under.
type Draw struct {
	Mode    glapi.Enum
	Count   int32
	Type    glapi.Enum
	Offset  uintptr
	Scissor [4]int32
	Program glapi.Program
	VAO     glapi.VertexArray
	Texture glapi.Texture
}

// Attrib is a vertex attribute as recorded in a vertex array.
type Attrib struct {
	Size       int32
	Type       glapi.Enum
	Normalized bool
	Stride     int32
	Offset     uintptr
	Enabled    bool
	Buffer     glapi.Buffer
}

type vertexArray struct {
	element glapi.Buffer
	attribs map[uint32]*Attrib
}

// Texture is the recorded storage of a texture object.
type Texture struct {
	Width, Height  int32
	InternalFormat glapi.Enum
	Params         map[glapi.Enum]int32
	Pixels         []byte
}

// API is the fake. The zero value is not usable; call New.
type API struct {
	Calls      []Call
	Draws      []Draw
	Violations []string

	// ShaderLogs is returned by ShaderInfoLog, keyed by shader type.
	ShaderLogs map[glapi.Enum]string
	// LinkLog is returned by ProgramInfoLog.
	LinkLog string
	// Uniforms maps uniform names to locations. Unknown names get -1.
	Uniforms map[string]glapi.Uniform

	nextID  uint32
	pending glapi.Enum
	failOn  map[string]glapi.Enum

	buffers  map[glapi.Buffer][]byte
	arrays   map[glapi.VertexArray]*vertexArray
	shaders  map[glapi.Shader]glapi.Enum
	programs map[glapi.Program]bool
	textures map[glapi.Texture]*Texture
	released map[string]int

	ArrayBinding glapi.Buffer
	VAO          glapi.VertexArray
	Program      glapi.Program
	ActiveUnit   glapi.Enum
	Bound2D      map[glapi.Enum]glapi.Texture
	Enabled      map[glapi.Enum]bool
	BlendSrc     glapi.Enum
	BlendDst     glapi.Enum
	ScissorBox   [4]int32
	Matrices     map[glapi.Uniform][16]float32
	Ints         map[glapi.Uniform]int32

	// elementBinding is used while no vertex array is bound.
	elementBinding glapi.Buffer
}

// New returns a fake with uniforms u_matrix and u_texture resolvable.
func New() *API {
	return &API{
		ShaderLogs: map[glapi.Enum]string{},
		Uniforms:   map[string]glapi.Uniform{"u_matrix": 0, "u_texture": 1},
		failOn:     map[string]glapi.Enum{},
		buffers:    map[glapi.Buffer][]byte{},
		arrays:     map[glapi.VertexArray]*vertexArray{},
		shaders:    map[glapi.Shader]glapi.Enum{},
		programs:   map[glapi.Program]bool{},
		textures:   map[glapi.Texture]*Texture{},
		released:   map[string]int{},
		ActiveUnit: glapi.TEXTURE0,
		Bound2D:    map[glapi.Enum]glapi.Texture{},
		Enabled:    map[glapi.Enum]bool{},
		Matrices:   map[glapi.Uniform][16]float32{},
		Ints:       map[glapi.Uniform]int32{},
	}
}

// FailOn makes the next call named call (e.g. "glDrawElements") raise code.
func (f *API) FailOn(call string, code glapi.Enum) {
	f.failOn[call] = code
}

// ResetCalls forgets recorded calls and draws but keeps object state.
func (f *API) ResetCalls() {
	f.Calls = nil
	f.Draws = nil
}

// Count returns how many times call was recorded.
func (f *API) Count(call string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Name == call {
			n++
		}
	}
	return n
}

// Named returns the recorded calls named call, in order.
func (f *API) Named(call string) []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Name == call {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the names of all recorded calls, in order.
func (f *API) Names() []string {
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.Name
	}
	return out
}

// Released reports how many times the named object ("buffer", "vertexarray",
// "program", "texture", "shader") with the given id was deleted.
func (f *API) Released(kind string, id uint32) int {
	return f.released[fmt.Sprintf("%s:%d", kind, id)]
}

// Live returns the number of objects not yet deleted.
func (f *API) Live() int {
	return len(f.buffers) + len(f.arrays) + len(f.shaders) + len(f.programs) + len(f.textures)
}

// BufferContents returns the storage of b.
func (f *API) BufferContents(b glapi.Buffer) []byte { return f.buffers[b] }

// VertexArrayAttrib returns attribute index of va, or nil.
func (f *API) VertexArrayAttrib(va glapi.VertexArray, index uint32) *Attrib {
	if a, ok := f.arrays[va]; ok {
		return a.attribs[index]
	}
	return nil
}

// VertexArrayElements returns the element buffer captured by va.
func (f *API) VertexArrayElements(va glapi.VertexArray) glapi.Buffer {
	if a, ok := f.arrays[va]; ok {
		return a.element
	}
	return 0
}

// TextureObject returns the recorded storage of t, or nil.
func (f *API) TextureObject(t glapi.Texture) *Texture { return f.textures[t] }

func (f *API) record(name string, args ...any) {
	f.Calls = append(f.Calls, Call{Name: name, Args: args})
	if code, ok := f.failOn[name]; ok {
		delete(f.failOn, name)
		f.raise(code)
	}
}

// raise keeps the first error until GetError, like GL.
func (f *API) raise(code glapi.Enum) {
	if f.pending == glapi.NO_ERROR {
		f.pending = code
	}
}

func (f *API) id() uint32 {
	f.nextID++
	return f.nextID
}

func (f *API) release(kind string, id uint32) {
	key := fmt.Sprintf("%s:%d", kind, id)
	f.released[key]++
	if f.released[key] > 1 {
		f.Violations = append(f.Violations, "double release of "+key)
	}
}

func (f *API) GetError() glapi.Enum {
	code := f.pending
	f.pending = glapi.NO_ERROR
	return code
}

func (f *API) GenBuffers(n int) []glapi.Buffer {
	f.record("glGenBuffers", n)
	out := make([]glapi.Buffer, n)
	for i := range out {
		out[i] = glapi.Buffer(f.id())
		f.buffers[out[i]] = nil
	}
	return out
}

func (f *API) BindBuffer(target glapi.Enum, b glapi.Buffer) {
	f.record("glBindBuffer", target, b)
	if _, ok := f.buffers[b]; b != 0 && !ok {
		f.raise(glapi.INVALID_OPERATION)
		return
	}
	switch target {
	case glapi.ARRAY_BUFFER:
		f.ArrayBinding = b
	case glapi.ELEMENT_ARRAY_BUFFER:
		if va, ok := f.arrays[f.VAO]; ok {
			va.element = b
		} else {
			f.elementBinding = b
		}
	default:
		f.raise(glapi.INVALID_ENUM)
	}
}

// ElementBinding is the element array buffer binding in effect.
func (f *API) ElementBinding() glapi.Buffer {
	if va, ok := f.arrays[f.VAO]; ok {
		return va.element
	}
	return f.elementBinding
}

func (f *API) bound(target glapi.Enum) glapi.Buffer {
	if target == glapi.ARRAY_BUFFER {
		return f.ArrayBinding
	}
	return f.ElementBinding()
}

func (f *API) BufferData(target glapi.Enum, size int, data []byte, usage glapi.Enum) {
	f.record("glBufferData", target, size, usage)
	b := f.bound(target)
	if b == 0 {
		f.raise(glapi.INVALID_OPERATION)
		return
	}
	if size < 0 || (data != nil && len(data) < size) {
		f.raise(glapi.INVALID_VALUE)
		return
	}
	store := make([]byte, size)
	copy(store, data)
	f.buffers[b] = store
}

func (f *API) BufferSubData(target glapi.Enum, offset int, data []byte) {
	f.record("glBufferSubData", target, offset, len(data))
	b := f.bound(target)
	if b == 0 {
		f.raise(glapi.INVALID_OPERATION)
		return
	}
	store := f.buffers[b]
	if offset < 0 || offset+len(data) > len(store) {
		f.raise(glapi.INVALID_VALUE)
		return
	}
	copy(store[offset:], data)
}

func (f *API) DeleteBuffers(bufs ...glapi.Buffer) {
	f.record("glDeleteBuffers", slices.Clone(bufs))
	for _, b := range bufs {
		if _, ok := f.buffers[b]; !ok {
			f.Violations = append(f.Violations, fmt.Sprintf("release of unknown buffer %d", b))
		}
		delete(f.buffers, b)
		f.release("buffer", uint32(b))
	}
}

func (f *API) GenVertexArray() glapi.VertexArray {
	f.record("glGenVertexArrays")
	va := glapi.VertexArray(f.id())
	f.arrays[va] = &vertexArray{attribs: map[uint32]*Attrib{}}
	return va
}

func (f *API) BindVertexArray(va glapi.VertexArray) {
	f.record("glBindVertexArray", va)
	if _, ok := f.arrays[va]; va != 0 && !ok {
		f.raise(glapi.INVALID_OPERATION)
		return
	}
	f.VAO = va
}

func (f *API) attrib(index uint32) *Attrib {
	va, ok := f.arrays[f.VAO]
	if !ok {
		return nil
	}
	a, ok := va.attribs[index]
	if !ok {
		a = &Attrib{}
		va.attribs[index] = a
	}
	return a
}

func (f *API) EnableVertexAttribArray(index uint32) {
	f.record("glEnableVertexAttribArray", index)
	a := f.attrib(index)
	if a == nil {
		f.raise(glapi.INVALID_OPERATION)
		return
	}
	a.Enabled = true
}

func (f *API) VertexAttribPointer(index uint32, size int32, xtype glapi.Enum, normalized bool, stride int32, offset uintptr) {
	f.record("glVertexAttribPointer", index, size, xtype, normalized, stride, offset)
	a := f.attrib(index)
	if a == nil || f.ArrayBinding == 0 {
		f.raise(glapi.INVALID_OPERATION)
		return
	}
	if size < 1 || size > 4 || stride < 0 {
		f.raise(glapi.INVALID_VALUE)
		return
	}
	a.Size, a.Type, a.Normalized, a.Stride, a.Offset = size, xtype, normalized, stride, offset
	a.Buffer = f.ArrayBinding
}

func (f *API) DeleteVertexArray(va glapi.VertexArray) {
	f.record("glDeleteVertexArrays", va)
	if _, ok := f.arrays[va]; !ok {
		f.Violations = append(f.Violations, fmt.Sprintf("release of unknown vertex array %d", va))
	}
	delete(f.arrays, va)
	if f.VAO == va {
		f.VAO = 0
	}
	f.release("vertexarray", uint32(va))
}

func (f *API) CreateShader(xtype glapi.Enum) glapi.Shader {
	f.record("glCreateShader", xtype)
	if xtype != glapi.VERTEX_SHADER && xtype != glapi.FRAGMENT_SHADER {
		f.raise(glapi.INVALID_ENUM)
		return 0
	}
	s := glapi.Shader(f.id())
	f.shaders[s] = xtype
	return s
}

func (f *API) ShaderSource(s glapi.Shader, src string) {
	f.record("glShaderSource", s, src)
	if _, ok := f.shaders[s]; !ok {
		f.raise(glapi.INVALID_VALUE)
	}
}

func (f *API) CompileShader(s glapi.Shader) {
	f.record("glCompileShader", s)
	if _, ok := f.shaders[s]; !ok {
		f.raise(glapi.INVALID_VALUE)
	}
}

func (f *API) ShaderInfoLog(s glapi.Shader) string {
	f.record("glGetShaderInfoLog", s)
	return f.ShaderLogs[f.shaders[s]]
}

func (f *API) DeleteShader(s glapi.Shader) {
	f.record("glDeleteShader", s)
	delete(f.shaders, s)
	f.release("shader", uint32(s))
}

func (f *API) CreateProgram() glapi.Program {
	f.record("glCreateProgram")
	p := glapi.Program(f.id())
	f.programs[p] = false
	return p
}

func (f *API) AttachShader(p glapi.Program, s glapi.Shader) {
	f.record("glAttachShader", p, s)
	_, okp := f.programs[p]
	_, oks := f.shaders[s]
	if !okp || !oks {
		f.raise(glapi.INVALID_VALUE)
	}
}

func (f *API) LinkProgram(p glapi.Program) {
	f.record("glLinkProgram", p)
	if _, ok := f.programs[p]; !ok {
		f.raise(glapi.INVALID_VALUE)
		return
	}
	f.programs[p] = f.LinkLog == ""
}

func (f *API) ProgramInfoLog(p glapi.Program) string {
	f.record("glGetProgramInfoLog", p)
	return f.LinkLog
}

func (f *API) GetUniformLocation(p glapi.Program, name string) glapi.Uniform {
	f.record("glGetUniformLocation", p, name)
	if linked, ok := f.programs[p]; !ok || !linked {
		f.raise(glapi.INVALID_OPERATION)
		return glapi.NoUniform
	}
	if loc, ok := f.Uniforms[name]; ok {
		return loc
	}
	return glapi.NoUniform
}

func (f *API) UseProgram(p glapi.Program) {
	f.record("glUseProgram", p)
	if linked, ok := f.programs[p]; p != 0 && (!ok || !linked) {
		f.raise(glapi.INVALID_OPERATION)
		return
	}
	f.Program = p
}

func (f *API) DeleteProgram(p glapi.Program) {
	f.record("glDeleteProgram", p)
	if _, ok := f.programs[p]; !ok {
		f.Violations = append(f.Violations, fmt.Sprintf("release of unknown program %d", p))
	}
	delete(f.programs, p)
	if f.Program == p {
		f.Program = 0
	}
	f.release("program", uint32(p))
}

func (f *API) UniformMatrix4fv(loc glapi.Uniform, m *[16]float32) {
	f.record("glUniformMatrix4fv", loc, *m)
	if f.Program == 0 {
		f.raise(glapi.INVALID_OPERATION)
		return
	}
	if loc != glapi.NoUniform {
		f.Matrices[loc] = *m
	}
}

func (f *API) Uniform1i(loc glapi.Uniform, v int32) {
	f.record("glUniform1i", loc, v)
	if f.Program == 0 {
		f.raise(glapi.INVALID_OPERATION)
		return
	}
	if loc != glapi.NoUniform {
		f.Ints[loc] = v
	}
}

func (f *API) GenTexture() glapi.Texture {
	f.record("glGenTextures")
	t := glapi.Texture(f.id())
	f.textures[t] = &Texture{Params: map[glapi.Enum]int32{}}
	return t
}

func (f *API) ActiveTexture(unit glapi.Enum) {
	f.record("glActiveTexture", unit)
	if unit < glapi.TEXTURE0 || unit > glapi.TEXTURE0+31 {
		f.raise(glapi.INVALID_ENUM)
		return
	}
	f.ActiveUnit = unit
}

func (f *API) BindTexture(target glapi.Enum, t glapi.Texture) {
	f.record("glBindTexture", target, t)
	if target != glapi.TEXTURE_2D {
		f.raise(glapi.INVALID_ENUM)
		return
	}
	if _, ok := f.textures[t]; t != 0 && !ok {
		f.raise(glapi.INVALID_OPERATION)
		return
	}
	f.Bound2D[f.ActiveUnit] = t
}

func (f *API) boundTexture() *Texture {
	return f.textures[f.Bound2D[f.ActiveUnit]]
}

func (f *API) TexParameteri(target, pname glapi.Enum, param int32) {
	f.record("glTexParameteri", target, pname, param)
	tex := f.boundTexture()
	if tex == nil {
		f.raise(glapi.INVALID_OPERATION)
		return
	}
	tex.Params[pname] = param
}

func (f *API) TexImage2D(target glapi.Enum, level int32, internalFormat glapi.Enum, width, height int32, format, xtype glapi.Enum, pixels []byte) {
	f.record("glTexImage2D", target, level, internalFormat, width, height, format, xtype)
	tex := f.boundTexture()
	if tex == nil {
		f.raise(glapi.INVALID_OPERATION)
		return
	}
	if width < 0 || height < 0 {
		f.raise(glapi.INVALID_VALUE)
		return
	}
	if format == glapi.RGBA && xtype == glapi.UNSIGNED_BYTE && pixels != nil && len(pixels) < int(width*height*4) {
		f.raise(glapi.INVALID_OPERATION)
		return
	}
	tex.Width, tex.Height, tex.InternalFormat = width, height, internalFormat
	tex.Pixels = slices.Clone(pixels)
}

func (f *API) DeleteTexture(t glapi.Texture) {
	f.record("glDeleteTextures", t)
	if _, ok := f.textures[t]; !ok {
		f.Violations = append(f.Violations, fmt.Sprintf("release of unknown texture %d", t))
	}
	delete(f.textures, t)
	for unit, bound := range f.Bound2D {
		if bound == t {
			f.Bound2D[unit] = 0
		}
	}
	f.release("texture", uint32(t))
}

func (f *API) Enable(capability glapi.Enum) {
	f.record("glEnable", capability)
	f.Enabled[capability] = true
}

func (f *API) Disable(capability glapi.Enum) {
	f.record("glDisable", capability)
	f.Enabled[capability] = false
}

func (f *API) BlendFunc(src, dst glapi.Enum) {
	f.record("glBlendFunc", src, dst)
	f.BlendSrc, f.BlendDst = src, dst
}

func (f *API) Scissor(x, y, width, height int32) {
	f.record("glScissor", x, y, width, height)
	if width < 0 || height < 0 {
		f.raise(glapi.INVALID_VALUE)
		return
	}
	f.ScissorBox = [4]int32{x, y, width, height}
}

func (f *API) DrawElements(mode glapi.Enum, count int32, xtype glapi.Enum, offset uintptr) {
	f.record("glDrawElements", mode, count, xtype, offset)
	if count < 0 {
		f.raise(glapi.INVALID_VALUE)
		return
	}
	if f.Program == 0 || f.VAO == 0 {
		f.raise(glapi.INVALID_OPERATION)
		return
	}
	ebo := f.ElementBinding()
	if ebo == 0 || int(offset)+int(count)*2 > len(f.buffers[ebo]) {
		f.raise(glapi.INVALID_OPERATION)
		return
	}
	f.Draws = append(f.Draws, Draw{
		Mode:    mode,
		Count:   count,
		Type:    xtype,
		Offset:  offset,
		Scissor: f.ScissorBox,
		Program: f.Program,
		VAO:     f.VAO,
		Texture: f.Bound2D[glapi.TEXTURE0],
	})
}
