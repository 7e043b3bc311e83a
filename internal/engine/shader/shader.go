// Package shader provides OpenGL shader compilation and uniform access.
package shader

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Stage names a pipeline stage in a CompileError.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
	StageLink     Stage = "link"
)

// CompileError reports a failed compile or link with the driver log.
type CompileError struct {
	Name  string
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	if e.Stage == StageLink {
		return fmt.Sprintf("%s: link: %s", e.Name, e.Log)
	}
	return fmt.Sprintf("%s: %s shader: %s", e.Name, e.Stage, e.Log)
}

// Program is a linked shader program. The zero value is invalid.
type Program struct {
	name     string
	id       uint32
	uniforms map[string]int32
}

// Compile compiles and links a program from GLSL sources. On failure the
// returned Program is non-nil but invalid; check Valid before using it.
func Compile(name, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		if ce, ok := err.(*CompileError); ok {
			ce.Name = name
		}
		return invalidProgram(name), err
	}
	return &Program{name: name, id: id, uniforms: make(map[string]int32)}, nil
}

// Load reads GLSL sources from disk and compiles them. Like Compile, it
// always returns a Program.
func Load(name, vertexPath, fragmentPath string) (*Program, error) {
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return invalidProgram(name), fmt.Errorf("reading vertex shader: %w", err)
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return invalidProgram(name), fmt.Errorf("reading fragment shader: %w", err)
	}
	return Compile(name, string(vs), string(fs))
}

func invalidProgram(name string) *Program {
	return &Program{name: name, uniforms: make(map[string]int32)}
}

// Name returns the program's label.
func (p *Program) Name() string { return p.name }

// ID returns the GL program handle.
func (p *Program) ID() uint32 { return p.id }

// Valid reports whether the program linked and has not been deleted.
func (p *Program) Valid() bool { return p != nil && p.id != 0 }

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// location caches uniform lookups. Missing uniforms resolve to -1, which GL ignores.
func (p *Program) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := GetUniform(p.id, name)
	p.uniforms[name] = loc
	return loc
}

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.location(name), i)
}

func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.location(name), v)
}

func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.location(name), v)
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.location(name), v[0], v[1], v[2])
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4f(p.location(name), v[0], v[1], v[2], v[3])
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &m[0])
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Failures are returned as *CompileError.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, StageVertex)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, StageFragment)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, &CompileError{Stage: StageLink, Log: gl.GoStr(&log[0])}
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, stage Stage) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: gl.GoStr(&log[0])}
	}

	return shader, nil
}

// GetUniform returns the uniform location for the given name, or -1.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
