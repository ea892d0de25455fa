// Package render provides the packed RGBA8 framebuffer
package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"raytracer/pkg/math"
)

// Framebuffer is a flat row-major plane of 32-bit packed RGBA8 pixels.
type Framebuffer struct {
	width  int
	height int
	pixels []uint32
}

// NewFramebuffer allocates a cleared framebuffer.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	f := &Framebuffer{}
	if err := f.Resize(width, height); err != nil {
		return nil, err
	}
	return f, nil
}

// Resize reallocates the pixel plane and clears it. Zero dimensions
// are rejected.
func (f *Framebuffer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrResizeZero
	}
	f.width = width
	f.height = height
	f.pixels = make([]uint32, width*height)
	return nil
}

// Width returns the framebuffer width in pixels.
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the framebuffer height in pixels.
func (f *Framebuffer) Height() int {
	return f.height
}

// Pixels returns the packed pixel plane, row-major from the top row.
func (f *Framebuffer) Pixels() []uint32 {
	return f.pixels
}

// Row returns the pixel slice of row y. Workers render disjoint rows,
// so no locking is needed.
func (f *Framebuffer) Row(y int) []uint32 {
	return f.pixels[y*f.width : (y+1)*f.width]
}

// PackRGBA maps a colour with components clamped to [0,1] onto a
// packed pixel with R in the low byte: R | G<<8 | B<<16 | A<<24.
func PackRGBA(c mgl32.Vec4) uint32 {
	r := uint32(math.Clamp(c[0], 0, 1) * 255)
	g := uint32(math.Clamp(c[1], 0, 1) * 255)
	b := uint32(math.Clamp(c[2], 0, 1) * 255)
	a := uint32(math.Clamp(c[3], 0, 1) * 255)
	return r | g<<8 | b<<16 | a<<24
}
