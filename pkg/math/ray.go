// Package math provides the ray and hit records used by traversal
package math

import (
	"github.com/go-gl/mathgl/mgl32"
)

// InfDepth is the sentinel depth of a ray that has hit nothing.
const InfDepth float32 = 1e30

// Hit records the closest intersection found along a ray: depth along
// the ray, barycentric coordinates on the triangle, and the index of
// the triangle that was hit.
type Hit struct {
	Depth     float32
	U, V      float32
	Primitive uint32
}

// Ray is a primary ray with a precomputed reciprocal direction for the
// slab test. The hit record travels inline with the ray so traversal
// needs no shared state.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
	RDir   mgl32.Vec3
	Hit    Hit
}

// NewRay creates a ray from an origin and a unit direction. Direction
// components equal to zero yield an infinite reciprocal, which the
// slab test tolerates.
func NewRay(origin, dir mgl32.Vec3) Ray {
	return Ray{
		Origin: origin,
		Dir:    dir,
		RDir:   Reciprocal(dir),
		Hit:    Hit{Depth: InfDepth},
	}
}

// Reciprocal returns the component-wise reciprocal of v. Zero
// components map to ±Inf instead of raising an error.
func Reciprocal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{1 / v[0], 1 / v[1], 1 / v[2]}
}
