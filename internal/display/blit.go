// Package display provides the fullscreen blit of the CPU framebuffer
package display

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// blitter uploads the packed RGBA8 pixel plane to a texture and draws
// it over the whole window with a fullscreen quad.
type blitter struct {
	texture uint32
	quadVAO uint32
	quadVBO uint32
	shader  *shader
	texW    int
	texH    int
}

func newBlitter() (*blitter, error) {
	b := &blitter{}

	gl.GenTextures(1, &b.texture)
	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	b.createQuad()

	quadShader, err := newShader(quadVertShader, quadFragShader)
	if err != nil {
		return nil, err
	}
	b.shader = quadShader
	return b, nil
}

func (b *blitter) createQuad() {
	vertices := []float32{
		-1, -1, 0, 1,
		1, -1, 1, 1,
		1, 1, 1, 0,
		-1, -1, 0, 1,
		1, 1, 1, 0,
		-1, 1, 0, 0,
	}

	gl.GenVertexArrays(1, &b.quadVAO)
	gl.GenBuffers(1, &b.quadVBO)

	gl.BindVertexArray(b.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

// blit uploads pixels (row-major, top row first, R in the low byte)
// and draws the quad.
func (b *blitter) blit(width, height int, pixels []uint32) {
	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	if width != b.texW || height != b.texH {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
		b.texW = width
		b.texH = height
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height),
			gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	}

	b.shader.use()
	b.shader.setInt("uTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.texture)

	gl.BindVertexArray(b.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (b *blitter) cleanup() {
	if b.texture != 0 {
		gl.DeleteTextures(1, &b.texture)
	}
	if b.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &b.quadVAO)
	}
	if b.quadVBO != 0 {
		gl.DeleteBuffers(1, &b.quadVBO)
	}
	if b.shader != nil {
		b.shader.delete()
	}
}

var quadVertShader = `
#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aTexCoord;

out vec2 vTexCoord;

void main() {
    gl_Position = vec4(aPos, 0.0, 1.0);
    vTexCoord = aTexCoord;
}
`

var quadFragShader = `
#version 410 core

in vec2 vTexCoord;

uniform sampler2D uTexture;

out vec4 fragColor;

void main() {
    fragColor = vec4(texture(uTexture, vTexCoord).rgb, 1.0);
}
`
