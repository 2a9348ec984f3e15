package graphics

import (
	_ "embed"
	"fmt"
	"strings"

	"uigl/internal/graphics/glapi"
	"uigl/internal/logging"
)

// Uniform names shared with shaders/ui.vert and shaders/ui.frag.
const (
	MatrixUniform  = "u_matrix"
	TextureUniform = "u_texture"
)

var (
	//go:embed shaders/ui.vert
	UIVertexSource string
	//go:embed shaders/ui.frag
	UIFragmentSource string
)

// Program is a linked shader program and the uniforms the renderer sets.
type Program struct {
	ID      glapi.Program
	Matrix  glapi.Uniform
	Texture glapi.Uniform
}

// ShaderError reports a non-empty compile or link log. Stage is "vertex",
// "fragment" or "link".
type ShaderError struct {
	Stage string
	Log   string
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("%s shader: %s", e.Stage, strings.TrimSpace(e.Log))
}

// CompileProgram compiles both stages, links them and resolves the matrix
// and texture uniforms. Any compiler or linker output, warnings included,
// is treated as failure; every object created up to that point is deleted
// before returning.
func CompileProgram(api glapi.API, vertexSrc, fragmentSrc string) (Program, error) {
	vertex, err := compileShader(api, glapi.VERTEX_SHADER, vertexSrc)
	if err != nil {
		return Program{}, err
	}
	fragment, err := compileShader(api, glapi.FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		api.DeleteShader(vertex)
		return Program{}, err
	}

	program := api.CreateProgram()
	api.AttachShader(program, vertex)
	api.AttachShader(program, fragment)
	api.LinkProgram(program)

	api.DeleteShader(vertex)
	api.DeleteShader(fragment)

	if log := api.ProgramInfoLog(program); log != "" {
		api.DeleteProgram(program)
		return Program{}, &ShaderError{Stage: "link", Log: log}
	}

	p := Program{
		ID:      program,
		Matrix:  uniform(api, program, MatrixUniform),
		Texture: uniform(api, program, TextureUniform),
	}
	logging.Logger().Debug("shader program linked", "program", p.ID, "matrix", p.Matrix, "texture", p.Texture)
	return p, nil
}

func uniform(api glapi.API, p glapi.Program, name string) glapi.Uniform {
	loc := api.GetUniformLocation(p, name)
	if loc == glapi.NoUniform {
		logging.Logger().Warn("uniform not found", "program", p, "name", name)
	}
	return loc
}

func compileShader(api glapi.API, stage glapi.Enum, source string) (glapi.Shader, error) {
	shader := api.CreateShader(stage)
	api.ShaderSource(shader, source)
	api.CompileShader(shader)

	if log := api.ShaderInfoLog(shader); log != "" {
		api.DeleteShader(shader)
		return 0, &ShaderError{Stage: stageName(stage), Log: log}
	}
	return shader, nil
}

func stageName(stage glapi.Enum) string {
	if stage == glapi.VERTEX_SHADER {
		return "vertex"
	}
	return "fragment"
}
