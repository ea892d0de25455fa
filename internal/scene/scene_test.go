package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"raytracer/internal/bvh"
	"raytracer/internal/primitive"
	"raytracer/pkg/math"
)

func TestCubeTriangleCount(t *testing.T) {
	s := New()
	mat := s.AddMaterial(primitive.NewMaterial(mgl32.Vec4{1, 1, 1, 1}))
	s.AddShape(Shape{Kind: KindCube, Transform: math.NewTRS(), Material: mat})
	if len(s.Triangles) != 12 {
		t.Errorf("cube tessellated into %d triangles, want 12", len(s.Triangles))
	}
	if len(s.Ext) != len(s.Triangles) {
		t.Errorf("%d extensions for %d triangles", len(s.Ext), len(s.Triangles))
	}
}

func TestSphereTriangleCount(t *testing.T) {
	s := New()
	mat := s.AddMaterial(primitive.NewMaterial(mgl32.Vec4{1, 1, 1, 1}))
	s.AddShape(Shape{
		Kind:      KindSphere,
		Transform: math.NewTRS(),
		Material:  mat,
		Stacks:    6,
		Segments:  10,
	})
	// Segments * (2*Stacks - 2)
	if len(s.Triangles) != 100 {
		t.Errorf("sphere tessellated into %d triangles, want 100", len(s.Triangles))
	}
}

func TestSphereVerticesOnUnitSphere(t *testing.T) {
	s := New()
	mat := s.AddMaterial(primitive.NewMaterial(mgl32.Vec4{1, 1, 1, 1}))
	s.AddShape(Shape{
		Kind:      KindSphere,
		Transform: math.NewTRS(),
		Material:  mat,
		Stacks:    8,
		Segments:  12,
	})
	for i, tri := range s.Triangles {
		for _, p := range []mgl32.Vec3{tri.A, tri.B, tri.C} {
			if l := p.Len(); l < 0.999 || l > 1.001 {
				t.Fatalf("triangle %d vertex %v has length %v, want 1", i, p, l)
			}
		}
	}
}

func TestTerrainStaysWithinAmplitude(t *testing.T) {
	s := New()
	mat := s.AddMaterial(primitive.NewMaterial(mgl32.Vec4{1, 1, 1, 1}))
	s.AddShape(Shape{
		Kind:      KindTerrain,
		Transform: math.NewTRS(),
		Material:  mat,
		Cells:     8,
		Amplitude: 0.1,
		Seed:      7,
	})
	if len(s.Triangles) != 8*8*2 {
		t.Fatalf("terrain tessellated into %d triangles, want 128", len(s.Triangles))
	}
	for i, tri := range s.Triangles {
		for _, p := range []mgl32.Vec3{tri.A, tri.B, tri.C} {
			if p[1] < -0.11 || p[1] > 0.11 {
				t.Fatalf("triangle %d vertex %v outside amplitude", i, p)
			}
			if p[0] < -0.5 || p[0] > 0.5 || p[2] < -0.5 || p[2] > 0.5 {
				t.Fatalf("triangle %d vertex %v outside the patch", i, p)
			}
		}
	}
}

func TestTerrainDeterministicPerSeed(t *testing.T) {
	build := func(seed int64) []primitive.Triangle {
		s := New()
		mat := s.AddMaterial(primitive.NewMaterial(mgl32.Vec4{1, 1, 1, 1}))
		s.AddShape(Shape{Kind: KindTerrain, Transform: math.NewTRS(), Material: mat, Cells: 8, Seed: seed})
		return s.Triangles
	}
	a := build(42)
	b := build(42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same seed produced different terrain")
		}
	}
}

func TestTransformPlacesShape(t *testing.T) {
	s := New()
	mat := s.AddMaterial(primitive.NewMaterial(mgl32.Vec4{1, 1, 1, 1}))
	trs := math.NewTRS()
	trs.Translation = mgl32.Vec3{10, 0, 0}
	trs.Scale = mgl32.Vec3{2, 2, 2}
	s.AddShape(Shape{Kind: KindCube, Transform: trs, Material: mat})

	bounds := math.EmptyAABB()
	for _, tri := range s.Triangles {
		bounds.Grow(tri.A)
		bounds.Grow(tri.B)
		bounds.Grow(tri.C)
	}
	if bounds.Min[0] != 9 || bounds.Max[0] != 11 {
		t.Errorf("cube x extent [%v, %v], want [9, 11]", bounds.Min[0], bounds.Max[0])
	}
}

func TestDemoNames(t *testing.T) {
	for _, name := range []string{"triangle", "sphere-cube", "terrain"} {
		s, err := Demo(name)
		if err != nil {
			t.Fatalf("Demo(%q): %v", name, err)
		}
		if len(s.Triangles) == 0 {
			t.Fatalf("Demo(%q) is empty", name)
		}
	}
	if _, err := Demo("nope"); err == nil {
		t.Error("unknown demo name accepted")
	}
}

// The sphere-cube scene backs the closest-hit scenario: a ray from the
// camera position straight down +Z must hit the sphere's front face at
// depth about 2, never the cube three units behind it.
func TestSphereCubeClosestHit(t *testing.T) {
	s := SphereCube()
	store := &primitive.Store{
		Triangles: s.Triangles,
		Ext:       s.Ext,
		Materials: s.Materials,
	}
	store = store.Clone()
	nodes, err := bvh.NewBuilder().Build(store)
	if err != nil {
		t.Fatal(err)
	}

	// Nudged off the equator seam so the hit lands inside a facet.
	ray := math.NewRay(mgl32.Vec3{0, 0.05, -3}, mgl32.Vec3{0, 0, 1})
	bvh.Intersect(nodes, store.Triangles, &ray)

	if ray.Hit.Depth == math.InfDepth {
		t.Fatal("ray missed the scene")
	}
	if d := ray.Hit.Depth; d < 1.8 || d > 2.1 {
		t.Errorf("depth = %v, want about 2 (tessellated sphere front)", d)
	}
	if m := store.Ext[ray.Hit.Primitive].Material; m != 0 {
		t.Errorf("hit material %d, want the sphere's (0)", m)
	}
}
