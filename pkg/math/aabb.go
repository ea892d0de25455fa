// Package math provides axis-aligned bounding boxes
package math

import (
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box. Min and Max are stored as
// 4-component vectors; the w lane is unused and kept for alignment.
type AABB struct {
	Min mgl32.Vec4
	Max mgl32.Vec4
}

// EmptyAABB returns an inverted box that any Grow call will replace.
func EmptyAABB() AABB {
	const huge = stdmath.MaxFloat32
	return AABB{
		Min: mgl32.Vec4{huge, huge, huge, 0},
		Max: mgl32.Vec4{-huge, -huge, -huge, 0},
	}
}

// Grow extends the box to enclose the point p.
func (b *AABB) Grow(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = Min(b.Min[i], p[i])
		b.Max[i] = Max(b.Max[i], p[i])
	}
}

// GrowAABB extends the box to enclose another box.
func (b *AABB) GrowAABB(o AABB) {
	for i := 0; i < 3; i++ {
		b.Min[i] = Min(b.Min[i], o.Min[i])
		b.Max[i] = Max(b.Max[i], o.Max[i])
	}
}

// Contains reports whether o lies inside b component-wise.
func (b AABB) Contains(o AABB) bool {
	for i := 0; i < 3; i++ {
		if o.Min[i] < b.Min[i] || o.Max[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether p lies inside b.
func (b AABB) ContainsPoint(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Extent returns the size of the box along each axis.
func (b AABB) Extent() mgl32.Vec3 {
	return mgl32.Vec3{
		b.Max[0] - b.Min[0],
		b.Max[1] - b.Min[1],
		b.Max[2] - b.Min[2],
	}
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return mgl32.Vec3{
		(b.Min[0] + b.Max[0]) * 0.5,
		(b.Min[1] + b.Max[1]) * 0.5,
		(b.Min[2] + b.Max[2]) * 0.5,
	}
}

// SurfaceArea returns the total surface area of the box. A box that
// was never grown (min > max after float rounding) has zero area.
func (b AABB) SurfaceArea() float32 {
	e := b.Extent()
	if e[0] < 0 || e[1] < 0 || e[2] < 0 {
		return 0
	}
	return 2 * (e[0]*e[1] + e[1]*e[2] + e[2]*e[0])
}
