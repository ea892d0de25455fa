// Package scene provides procedural scene construction for the renderer
package scene

import (
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"

	"raytracer/internal/core/noise"
	"raytracer/internal/primitive"
	"raytracer/internal/render"
	"raytracer/pkg/math"
)

// Scene accumulates the index-aligned primitive, extension and
// material arrays the renderer ingests, plus the camera.
type Scene struct {
	Triangles []primitive.Triangle
	Ext       []primitive.TriangleExt
	Materials []primitive.Material
	Camera    render.Camera
}

// New creates an empty scene with a default camera.
func New() *Scene {
	return &Scene{
		Camera: render.NewCamera(45),
	}
}

// AddMaterial appends a material and returns its index.
func (s *Scene) AddMaterial(m primitive.Material) uint32 {
	s.Materials = append(s.Materials, m)
	return uint32(len(s.Materials) - 1)
}

// Kind selects a variant of the closed shape set. Dispatch is a switch
// on the tag; the set is small and closed, so no interface is needed.
type Kind int

const (
	KindCube Kind = iota
	KindSphere
	KindTerrain
)

// Shape is one tessellatable variant: a unit cube, a unit UV sphere or
// a noise-displaced terrain patch, placed by a TRS transform.
type Shape struct {
	Kind      Kind
	Transform math.TRS
	Material  uint32

	// Sphere tessellation
	Stacks   int
	Segments int

	// Terrain patch
	Cells     int
	Amplitude float32
	Seed      int64
}

// AddShape tessellates the shape into the scene's triangle arrays.
func (s *Scene) AddShape(sh Shape) {
	m := sh.Transform.Mat4()
	switch sh.Kind {
	case KindCube:
		s.addCube(m, sh.Material)
	case KindSphere:
		s.addSphere(m, sh)
	case KindTerrain:
		s.addTerrain(m, sh)
	}
}

// emit appends one triangle with per-corner attributes. The tangent
// frame derives from the first edge and the normal.
func (s *Scene) emit(a, b, c mgl32.Vec3, normals [3]mgl32.Vec3, uvs [3]mgl32.Vec2, material uint32) {
	tri := primitive.NewTriangle(a, b, c)
	if tri.Degenerate() {
		return
	}
	tangent := b.Sub(a).Normalize()

	var ext primitive.TriangleExt
	ext.Material = material
	for i := 0; i < 3; i++ {
		n := normals[i]
		ext.Vertices[i] = primitive.Vertex{
			Normal:    n,
			Tangent:   tangent,
			Bitangent: n.Cross(tangent),
			Color:     mgl32.Vec4{1, 1, 1, 1},
			UV:        uvs[i],
		}
	}

	s.Triangles = append(s.Triangles, tri)
	s.Ext = append(s.Ext, ext)
}

// Cube faces in a fixed order so tessellation is deterministic.
// Corners wind clockwise seen from outside; intersection is two-sided,
// and the stored normal carries the outward direction.
var cubeFaces = [6]struct {
	corners [4]mgl32.Vec3
	normal  mgl32.Vec3
}{
	{[4]mgl32.Vec3{{-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}, mgl32.Vec3{0, 1, 0}},
	{[4]mgl32.Vec3{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}}, mgl32.Vec3{0, -1, 0}},
	{[4]mgl32.Vec3{{-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, -0.5, 0.5}}, mgl32.Vec3{0, 0, 1}},
	{[4]mgl32.Vec3{{0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}, {-0.5, -0.5, -0.5}}, mgl32.Vec3{0, 0, -1}},
	{[4]mgl32.Vec3{{-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}, {-0.5, -0.5, 0.5}}, mgl32.Vec3{-1, 0, 0}},
	{[4]mgl32.Vec3{{0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {0.5, -0.5, -0.5}}, mgl32.Vec3{1, 0, 0}},
}

// Standard UV coordinates for a quad
var faceUVs = [4]mgl32.Vec2{
	{0, 0},
	{1, 0},
	{1, 1},
	{0, 1},
}

// addCube emits the 12 triangles of a unit cube centered on the origin.
func (s *Scene) addCube(m mgl32.Mat4, material uint32) {
	for _, face := range cubeFaces {
		var p [4]mgl32.Vec3
		for i, c := range face.corners {
			p[i] = math.TransformPoint(m, c)
		}
		n := math.TransformDir(m, face.normal).Normalize()
		ns := [3]mgl32.Vec3{n, n, n}
		s.emit(p[0], p[1], p[2], ns, [3]mgl32.Vec2{faceUVs[0], faceUVs[1], faceUVs[2]}, material)
		s.emit(p[0], p[2], p[3], ns, [3]mgl32.Vec2{faceUVs[0], faceUVs[2], faceUVs[3]}, material)
	}
}

// addSphere emits a unit UV sphere. Stacks*Segments bands produce
// Segments*(2*Stacks-2) triangles; the pole bands collapse one corner.
func (s *Scene) addSphere(m mgl32.Mat4, sh Shape) {
	stacks := sh.Stacks
	segments := sh.Segments
	if stacks < 2 {
		stacks = 6
	}
	if segments < 3 {
		segments = 12
	}

	point := func(stack, seg int) (mgl32.Vec3, mgl32.Vec2) {
		lat := stdmath.Pi * (float64(stack)/float64(stacks) - 0.5)
		lon := 2 * stdmath.Pi * float64(seg) / float64(segments)
		p := mgl32.Vec3{
			float32(stdmath.Cos(lat) * stdmath.Cos(lon)),
			float32(stdmath.Sin(lat)),
			float32(stdmath.Cos(lat) * stdmath.Sin(lon)),
		}
		uv := mgl32.Vec2{
			float32(seg) / float32(segments),
			float32(stack) / float32(stacks),
		}
		return p, uv
	}

	for stack := 0; stack < stacks; stack++ {
		for seg := 0; seg < segments; seg++ {
			p00, uv00 := point(stack, seg)
			p10, uv10 := point(stack, seg+1)
			p01, uv01 := point(stack+1, seg)
			p11, uv11 := point(stack+1, seg+1)

			// Normals of the unit sphere are its positions.
			emitTri := func(a, b, c mgl32.Vec3, uva, uvb, uvc mgl32.Vec2) {
				wa := math.TransformPoint(m, a)
				wb := math.TransformPoint(m, b)
				wc := math.TransformPoint(m, c)
				ns := [3]mgl32.Vec3{
					math.TransformDir(m, a).Normalize(),
					math.TransformDir(m, b).Normalize(),
					math.TransformDir(m, c).Normalize(),
				}
				s.emit(wa, wb, wc, ns, [3]mgl32.Vec2{uva, uvb, uvc}, sh.Material)
			}

			if stack > 0 {
				emitTri(p00, p01, p10, uv00, uv01, uv10)
			}
			if stack < stacks-1 {
				emitTri(p10, p01, p11, uv10, uv01, uv11)
			}
		}
	}
}

// addTerrain emits a Cells*Cells patch over [-0.5, 0.5]^2 displaced by
// layered simplex noise.
func (s *Scene) addTerrain(m mgl32.Mat4, sh Shape) {
	cells := sh.Cells
	if cells < 1 {
		cells = 16
	}
	amplitude := sh.Amplitude
	if amplitude == 0 {
		amplitude = 0.15
	}
	n := noise.NewSimplex(sh.Seed)

	height := func(ix, iz int) float32 {
		fx := float64(ix) / float64(cells) * 3
		fz := float64(iz) / float64(cells) * 3
		return amplitude * float32(n.Height(fx, fz, 4, 2.0, 0.5))
	}
	corner := func(ix, iz int) (mgl32.Vec3, mgl32.Vec2) {
		u := float32(ix) / float32(cells)
		v := float32(iz) / float32(cells)
		p := mgl32.Vec3{u - 0.5, height(ix, iz), v - 0.5}
		return p, mgl32.Vec2{u, v}
	}

	for iz := 0; iz < cells; iz++ {
		for ix := 0; ix < cells; ix++ {
			p00, uv00 := corner(ix, iz)
			p10, uv10 := corner(ix+1, iz)
			p01, uv01 := corner(ix, iz+1)
			p11, uv11 := corner(ix+1, iz+1)

			emitTri := func(a, b, c mgl32.Vec3, uva, uvb, uvc mgl32.Vec2) {
				wa := math.TransformPoint(m, a)
				wb := math.TransformPoint(m, b)
				wc := math.TransformPoint(m, c)
				fn := wb.Sub(wa).Cross(wc.Sub(wa)).Normalize()
				s.emit(wa, wb, wc, [3]mgl32.Vec3{fn, fn, fn}, [3]mgl32.Vec2{uva, uvb, uvc}, sh.Material)
			}

			emitTri(p00, p01, p10, uv00, uv01, uv10)
			emitTri(p10, p01, p11, uv10, uv01, uv11)
		}
	}
}
