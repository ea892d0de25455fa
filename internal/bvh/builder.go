// Package bvh provides the bounding volume hierarchy over triangles
package bvh

import (
	"errors"
	"fmt"

	"raytracer/internal/primitive"
	"raytracer/pkg/math"
)

// Node is one record in the flattened hierarchy. Offset is overloaded:
// for a leaf (Count > 0) it is the index of the first primitive in the
// triangle array; for an internal node (Count == 0) it is the index of
// the left child, and the right child always sits at Offset+1.
type Node struct {
	Bounds math.AABB
	Offset uint32
	Count  uint32
}

// Leaf reports whether the node references primitives directly.
func (n *Node) Leaf() bool {
	return n.Count > 0
}

const (
	// DefaultBins is the number of centroid bins per axis evaluated
	// by the SAH sweep.
	DefaultBins = 8

	// maxLeafPrims is the unconditional leaf threshold.
	maxLeafPrims = 2

	// maxDepth caps the tree depth below the fixed traversal stack
	// of 32. A node at the cap stays a leaf regardless of SAH cost.
	maxDepth = 30
)

// ErrNodeOverflow reports a node pool that exceeded the 2N-1 bound.
var ErrNodeOverflow = errors.New("bvh: node count exceeds 2N-1")

// Builder constructs hierarchies with a binned surface-area-heuristic
// split policy.
type Builder struct {
	Bins int
}

// NewBuilder returns a builder with the default bin count.
func NewBuilder() *Builder {
	return &Builder{Bins: DefaultBins}
}

// Build partitions the store's triangles top-down and emits the dense
// node array. The triangle array is reordered in place; the extension
// array is permuted identically through the store. nodes[0] is the
// root.
func (b *Builder) Build(store *primitive.Store) ([]Node, error) {
	n := store.Len()
	if n == 0 {
		return nil, fmt.Errorf("bvh: cannot build over empty store")
	}
	bins := b.Bins
	if bins < 2 {
		bins = DefaultBins
	}

	nodes := make([]Node, 0, 2*n-1)
	nodes = append(nodes, Node{
		Bounds: rangeBounds(store, 0, uint32(n)),
		Offset: 0,
		Count:  uint32(n),
	})
	nodes = b.split(store, nodes, 0, 0, bins)

	if len(nodes) > 2*n-1 {
		return nil, ErrNodeOverflow
	}
	return nodes, nil
}

// split subdivides the node at index idx, appending children to the
// pool so their indices are consecutive, and recurses.
func (b *Builder) split(store *primitive.Store, nodes []Node, idx int, depth, bins int) []Node {
	first := nodes[idx].Offset
	count := nodes[idx].Count
	if count <= maxLeafPrims || depth >= maxDepth {
		return nodes
	}

	axis, plane, cost := bestSplit(store, first, count, bins)
	leafCost := nodes[idx].Bounds.SurfaceArea() * float32(count)
	if axis < 0 || cost >= leafCost {
		return nodes
	}

	mid := partition(store, first, count, axis, plane)
	if mid == first || mid == first+count {
		// All centroids landed on one side; no split helps.
		return nodes
	}

	left := Node{
		Bounds: rangeBounds(store, first, mid-first),
		Offset: first,
		Count:  mid - first,
	}
	right := Node{
		Bounds: rangeBounds(store, mid, first+count-mid),
		Offset: mid,
		Count:  first + count - mid,
	}

	leftIdx := len(nodes)
	nodes = append(nodes, left, right)
	nodes[idx].Offset = uint32(leftIdx)
	nodes[idx].Count = 0

	nodes = b.split(store, nodes, leftIdx, depth+1, bins)
	nodes = b.split(store, nodes, leftIdx+1, depth+1, bins)
	return nodes
}

// rangeBounds unions the triangle bounds of [first, first+count).
func rangeBounds(store *primitive.Store, first, count uint32) math.AABB {
	bounds := math.EmptyAABB()
	for i := first; i < first+count; i++ {
		tri := &store.Triangles[i]
		bounds.Grow(tri.A)
		bounds.Grow(tri.B)
		bounds.Grow(tri.C)
	}
	return bounds
}

// bin accumulates the bounds and primitive count of one centroid bin.
type bin struct {
	bounds math.AABB
	count  uint32
}

// bestSplit evaluates bins-1 candidate planes on each axis and returns
// the axis, centroid plane and SAH cost of the cheapest. Ties keep the
// earlier candidate: the lower axis, then the lower boundary, since
// axes and boundaries are swept in ascending order with a strict
// less-than. Returns axis -1 when no axis has centroid extent.
func bestSplit(store *primitive.Store, first, count uint32, bins int) (int, float32, float32) {
	// Bin on the centroid bounds, not the geometry bounds, so long
	// thin triangles do not smear the histogram.
	cbounds := math.EmptyAABB()
	for i := first; i < first+count; i++ {
		cbounds.Grow(store.Triangles[i].Centroid)
	}

	bestAxis := -1
	bestPlane := float32(0)
	bestCost := math.InfDepth

	for axis := 0; axis < 3; axis++ {
		cmin := cbounds.Min[axis]
		extent := cbounds.Max[axis] - cmin
		if extent <= 0 {
			continue
		}

		hist := make([]bin, bins)
		for i := range hist {
			hist[i].bounds = math.EmptyAABB()
		}
		scale := float32(bins) / extent
		for i := first; i < first+count; i++ {
			tri := &store.Triangles[i]
			slot := int((tri.Centroid[axis] - cmin) * scale)
			slot = math.ClampInt(slot, 0, bins-1)
			hist[slot].count++
			hist[slot].bounds.Grow(tri.A)
			hist[slot].bounds.Grow(tri.B)
			hist[slot].bounds.Grow(tri.C)
		}

		// Sweep the bins-1 boundaries from both ends.
		leftArea := make([]float32, bins-1)
		leftCount := make([]uint32, bins-1)
		rightArea := make([]float32, bins-1)
		rightCount := make([]uint32, bins-1)

		acc := math.EmptyAABB()
		var n uint32
		for i := 0; i < bins-1; i++ {
			acc.GrowAABB(hist[i].bounds)
			n += hist[i].count
			leftArea[i] = acc.SurfaceArea()
			leftCount[i] = n
		}
		acc = math.EmptyAABB()
		n = 0
		for i := bins - 1; i > 0; i-- {
			acc.GrowAABB(hist[i].bounds)
			n += hist[i].count
			rightArea[i-1] = acc.SurfaceArea()
			rightCount[i-1] = n
		}

		for i := 0; i < bins-1; i++ {
			if leftCount[i] == 0 || rightCount[i] == 0 {
				continue
			}
			cost := leftArea[i]*float32(leftCount[i]) + rightArea[i]*float32(rightCount[i])
			if cost < bestCost {
				bestCost = cost
				bestAxis = axis
				bestPlane = cmin + extent/float32(bins)*float32(i+1)
			}
		}
	}

	return bestAxis, bestPlane, bestCost
}

// partition reorders [first, first+count) in place around the plane on
// the given axis and returns the index of the first primitive of the
// upper half. The store permutes the extension array alongside.
func partition(store *primitive.Store, first, count uint32, axis int, plane float32) uint32 {
	i := first
	j := first + count - 1
	for i <= j {
		if store.Triangles[i].Centroid[axis] < plane {
			i++
			continue
		}
		store.Swap(int(i), int(j))
		if j == 0 {
			break
		}
		j--
	}
	return i
}

// Depth returns the maximum depth of the tree rooted at nodes[0]. The
// builder keeps it within the fixed traversal stack.
func Depth(nodes []Node) int {
	if len(nodes) == 0 {
		return 0
	}
	return nodeDepth(nodes, 0)
}

func nodeDepth(nodes []Node, idx uint32) int {
	n := &nodes[idx]
	if n.Leaf() {
		return 1
	}
	left := nodeDepth(nodes, n.Offset)
	right := nodeDepth(nodes, n.Offset+1)
	if right > left {
		left = right
	}
	return left + 1
}
