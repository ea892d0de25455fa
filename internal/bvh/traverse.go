// Package bvh provides stacked front-to-back hierarchy traversal
package bvh

import (
	"raytracer/internal/primitive"
	"raytracer/pkg/math"
)

// StackDepth is the fixed traversal stack size. The builder caps the
// tree depth below it, so overflow cannot occur on a well-formed
// hierarchy.
const StackDepth = 32

// Intersect walks the hierarchy front to back and updates the ray's
// inline hit record with the closest intersected triangle, if any.
// It reads the nodes and triangles only, so concurrent rays are safe.
func Intersect(nodes []Node, tris []primitive.Triangle, r *math.Ray) {
	if len(nodes) == 0 {
		return
	}
	if intersectAABB(&nodes[0].Bounds, r) == math.InfDepth {
		return
	}

	var stack [StackDepth]uint32
	sp := 0
	idx := uint32(0)

	for {
		node := &nodes[idx]
		if node.Leaf() {
			for i := node.Offset; i < node.Offset+node.Count; i++ {
				tris[i].Intersect(r, i)
			}
			if sp == 0 {
				return
			}
			sp--
			idx = stack[sp]
			continue
		}

		near := node.Offset
		far := near + 1
		dNear := intersectAABB(&nodes[near].Bounds, r)
		dFar := intersectAABB(&nodes[far].Bounds, r)
		if dFar < dNear {
			near, far = far, near
			dNear, dFar = dFar, dNear
		}

		if dNear == math.InfDepth {
			// Neither child can beat the current hit.
			if sp == 0 {
				return
			}
			sp--
			idx = stack[sp]
			continue
		}

		idx = near
		if dFar != math.InfDepth {
			stack[sp] = far
			sp++
		}
	}
}

// intersectAABB is the slab test. It returns the entry distance along
// the ray, or InfDepth when the ray misses the box or the box lies
// beyond the current hit depth. NaNs arising from 0*Inf fold into the
// final comparison and read as a miss; they never escape.
func intersectAABB(b *math.AABB, r *math.Ray) float32 {
	tx1 := (b.Min[0] - r.Origin[0]) * r.RDir[0]
	tx2 := (b.Max[0] - r.Origin[0]) * r.RDir[0]
	tmin := math.Min(tx1, tx2)
	tmax := math.Max(tx1, tx2)

	ty1 := (b.Min[1] - r.Origin[1]) * r.RDir[1]
	ty2 := (b.Max[1] - r.Origin[1]) * r.RDir[1]
	tmin = math.Max(tmin, math.Min(ty1, ty2))
	tmax = math.Min(tmax, math.Max(ty1, ty2))

	tz1 := (b.Min[2] - r.Origin[2]) * r.RDir[2]
	tz2 := (b.Max[2] - r.Origin[2]) * r.RDir[2]
	tmin = math.Max(tmin, math.Min(tz1, tz2))
	tmax = math.Min(tmax, math.Max(tz1, tz2))

	if tmax >= tmin && tmax > 0 && tmin < r.Hit.Depth {
		return tmin
	}
	return math.InfDepth
}

// IntersectBrute tests the ray against every triangle without the
// hierarchy. Reference path for validation.
func IntersectBrute(tris []primitive.Triangle, r *math.Ray) {
	for i := range tris {
		tris[i].Intersect(r, uint32(i))
	}
}
