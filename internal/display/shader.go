// Package display provides the shader pair used by the blit quad
package display

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// shader is the minimal OpenGL program wrapper the blitter needs.
type shader struct {
	id uint32
}

// newShader creates a shader program from vertex and fragment source
func newShader(vertexSource, fragmentSource string) (*shader, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return nil, fmt.Errorf("link error: %s", log)
	}

	return &shader{id: program}, nil
}

// use activates the shader
func (s *shader) use() {
	gl.UseProgram(s.id)
}

// setInt sets an integer uniform
func (s *shader) setInt(name string, value int32) {
	gl.Uniform1i(gl.GetUniformLocation(s.id, gl.Str(name+"\x00")), value)
}

// delete cleans up the shader
func (s *shader) delete() {
	gl.DeleteProgram(s.id)
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	glshader := gl.CreateShader(shaderType)

	// Shader source must be null-terminated for OpenGL
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(glshader, 1, csources, nil)
	free()
	gl.CompileShader(glshader)

	var status int32
	gl.GetShaderiv(glshader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(glshader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(glshader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("compile error: %s", log)
	}

	return glshader, nil
}
