package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPackRGBAByteOrder(t *testing.T) {
	// R lands in the low byte, A in the high byte.
	tests := []struct {
		color mgl32.Vec4
		want  uint32
	}{
		{mgl32.Vec4{1, 0, 0, 1}, 0xFF0000FF},
		{mgl32.Vec4{0, 1, 0, 0}, 0x0000FF00},
		{mgl32.Vec4{0, 0, 1, 0}, 0x00FF0000},
		{mgl32.Vec4{0, 0, 0, 1}, 0xFF000000},
		{mgl32.Vec4{0, 0, 0, 0}, 0x00000000},
	}
	for _, tt := range tests {
		if got := PackRGBA(tt.color); got != tt.want {
			t.Errorf("PackRGBA(%v) = %#08x, want %#08x", tt.color, got, tt.want)
		}
	}
}

func TestPackRGBAClampsBeforePacking(t *testing.T) {
	over := PackRGBA(mgl32.Vec4{2.5, -1, 0.5, 1})
	if r := over & 0xFF; r != 255 {
		t.Errorf("overbright red packed to %d, want 255", r)
	}
	if g := (over >> 8) & 0xFF; g != 0 {
		t.Errorf("negative green packed to %d, want 0", g)
	}
	if b := (over >> 16) & 0xFF; b != 127 {
		t.Errorf("0.5 blue packed to %d, want floor(0.5*255)=127", b)
	}
}

func TestFramebufferResize(t *testing.T) {
	fb, err := NewFramebuffer(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(fb.Pixels()) != 12 {
		t.Fatalf("pixel count = %d, want 12", len(fb.Pixels()))
	}

	fb.Pixels()[0] = 0xDEADBEEF
	if err := fb.Resize(8, 2); err != nil {
		t.Fatal(err)
	}
	if fb.Width() != 8 || fb.Height() != 2 {
		t.Errorf("size = %dx%d, want 8x2", fb.Width(), fb.Height())
	}
	for i, p := range fb.Pixels() {
		if p != 0 {
			t.Fatalf("pixel %d not cleared after resize: %#x", i, p)
		}
	}
}

func TestFramebufferZeroDimensionRejected(t *testing.T) {
	if _, err := NewFramebuffer(0, 4); err != ErrResizeZero {
		t.Errorf("width 0: err = %v, want ErrResizeZero", err)
	}
	if _, err := NewFramebuffer(4, 0); err != ErrResizeZero {
		t.Errorf("height 0: err = %v, want ErrResizeZero", err)
	}
}

func TestFramebufferRowIsDisjoint(t *testing.T) {
	fb, err := NewFramebuffer(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	row := fb.Row(2)
	if len(row) != 4 {
		t.Fatalf("row length = %d, want 4", len(row))
	}
	row[0] = 42
	if fb.Pixels()[8] != 42 {
		t.Error("Row(2) does not alias pixels[8:12]")
	}
}
