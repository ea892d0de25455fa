package noise

import (
	"testing"
)

func TestNoise2DRange(t *testing.T) {
	n := NewSimplex(1)
	for i := 0; i < 1000; i++ {
		x := float64(i) * 0.137
		z := float64(i) * 0.291
		v := n.Noise2D(x, z)
		if v < -1.0 || v > 1.0 {
			t.Fatalf("Noise2D(%v, %v) = %v outside [-1, 1]", x, z, v)
		}
	}
}

func TestNoise2DDeterministicPerSeed(t *testing.T) {
	a := NewSimplex(42)
	b := NewSimplex(42)
	c := NewSimplex(43)

	same := true
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.73
		if a.Noise2D(x, -x) != b.Noise2D(x, -x) {
			t.Fatal("same seed produced different noise")
		}
		if a.Noise2D(x, -x) != c.Noise2D(x, -x) {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical noise")
	}
}

func TestHeightRange(t *testing.T) {
	n := NewSimplex(7)
	for i := 0; i < 200; i++ {
		x := float64(i) * 0.31
		v := n.Height(x, x*0.5, 4, 2.0, 0.5)
		if v < -1.0 || v > 1.0 {
			t.Fatalf("Height(%v) = %v outside [-1, 1]", x, v)
		}
	}
}
