// Package primitive provides the flat triangle and material stores
package primitive

import (
	"github.com/go-gl/mathgl/mgl32"

	"raytracer/pkg/math"
)

// Triangle holds the hot intersection data for one primitive: the
// three corner positions and the centroid the BVH builder bins on.
type Triangle struct {
	A, B, C  mgl32.Vec3
	Centroid mgl32.Vec3
}

// NewTriangle creates a triangle and precomputes its centroid.
func NewTriangle(a, b, c mgl32.Vec3) Triangle {
	return Triangle{
		A:        a,
		B:        b,
		C:        c,
		Centroid: a.Add(b).Add(c).Mul(1.0 / 3.0),
	}
}

// Bounds returns the axis-aligned box enclosing the triangle.
func (t *Triangle) Bounds() math.AABB {
	b := math.EmptyAABB()
	b.Grow(t.A)
	b.Grow(t.B)
	b.Grow(t.C)
	return b
}

// Degenerate reports whether the three vertices are collinear.
func (t *Triangle) Degenerate() bool {
	n := t.B.Sub(t.A).Cross(t.C.Sub(t.A))
	return n.Len() == 0
}

// Intersect runs the Möller-Trumbore test against the triangle and
// updates the ray's hit record when a closer intersection is found.
// Rays nearly parallel to the triangle plane are rejected.
func (t *Triangle) Intersect(r *math.Ray, prim uint32) {
	e1 := t.B.Sub(t.A)
	e2 := t.C.Sub(t.A)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if det > -1e-5 && det < 1e-5 {
		return
	}
	inv := 1 / det
	s := r.Origin.Sub(t.A)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return
	}
	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return
	}
	depth := e2.Dot(q) * inv
	if depth > 1e-4 && depth < r.Hit.Depth {
		r.Hit = math.Hit{Depth: depth, U: u, V: v, Primitive: prim}
	}
}

// Vertex carries the cold per-corner attributes kept out of the hot
// traversal path.
type Vertex struct {
	Normal    mgl32.Vec3
	Tangent   mgl32.Vec3
	Bitangent mgl32.Vec3
	Color     mgl32.Vec4
	UV        mgl32.Vec2
}

// TriangleExt holds the cold attributes for the three corners of a
// triangle plus its material link.
type TriangleExt struct {
	Vertices [3]Vertex
	Material uint32
}

// Material describes a surface. Shading in the core reads only the
// base colour; texture indices are opaque handles for the host
// (-1 when unused).
type Material struct {
	BaseColor            mgl32.Vec4
	AlbedoTex            int32
	NormalTex            int32
	MetallicRoughnessTex int32
	Metallic             float32
	Roughness            float32
}

// NewMaterial returns a material with the given base colour and no
// textures.
func NewMaterial(baseColor mgl32.Vec4) Material {
	return Material{
		BaseColor:            baseColor,
		AlbedoTex:            -1,
		NormalTex:            -1,
		MetallicRoughnessTex: -1,
		Roughness:            1,
	}
}

// Store owns the parallel triangle, extension and material arrays.
// Index i in Triangles and Ext refers to the same logical primitive;
// any reorder must go through Swap so the link survives.
type Store struct {
	Triangles []Triangle
	Ext       []TriangleExt
	Materials []Material
}

// Len returns the primitive count.
func (s *Store) Len() int {
	return len(s.Triangles)
}

// Swap exchanges primitives i and j in both parallel arrays.
func (s *Store) Swap(i, j int) {
	s.Triangles[i], s.Triangles[j] = s.Triangles[j], s.Triangles[i]
	s.Ext[i], s.Ext[j] = s.Ext[j], s.Ext[i]
}

// Clone returns a deep copy of the store. The renderer clones scene
// input so the builder can reorder primitives without the caller
// observing it.
func (s *Store) Clone() *Store {
	c := &Store{
		Triangles: make([]Triangle, len(s.Triangles)),
		Ext:       make([]TriangleExt, len(s.Ext)),
		Materials: make([]Material, len(s.Materials)),
	}
	copy(c.Triangles, s.Triangles)
	copy(c.Ext, s.Ext)
	copy(c.Materials, s.Materials)
	return c
}
