package bvh

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"raytracer/internal/primitive"
	"raytracer/pkg/math"
)

// randomStore builds n well-spread triangles with the material index
// recording each primitive's original position.
func randomStore(n int, seed int64) *primitive.Store {
	rng := math.NewSeededRNG(seed)
	s := &primitive.Store{}
	for i := 0; i < n; i++ {
		base := mgl32.Vec3{
			rng.NextFloat(-10, 10),
			rng.NextFloat(-10, 10),
			rng.NextFloat(-10, 10),
		}
		b := base.Add(mgl32.Vec3{rng.NextFloat(0.1, 1), rng.NextFloat(-0.5, 0.5), rng.NextFloat(-0.5, 0.5)})
		c := base.Add(mgl32.Vec3{rng.NextFloat(-0.5, 0.5), rng.NextFloat(0.1, 1), rng.NextFloat(-0.5, 0.5)})
		s.Triangles = append(s.Triangles, primitive.NewTriangle(base, b, c))
		var ext primitive.TriangleExt
		ext.Material = uint32(i)
		s.Ext = append(s.Ext, ext)
	}
	return s
}

// leafRanges walks the tree collecting every leaf's primitive range.
func leafRanges(t *testing.T, nodes []Node) [][2]uint32 {
	t.Helper()
	var ranges [][2]uint32
	var walk func(idx uint32)
	walk = func(idx uint32) {
		n := &nodes[idx]
		if n.Leaf() {
			ranges = append(ranges, [2]uint32{n.Offset, n.Count})
			return
		}
		walk(n.Offset)
		walk(n.Offset + 1)
	}
	walk(0)
	return ranges
}

func TestBuildPartitionsAllPrimitives(t *testing.T) {
	store := randomStore(200, 1)
	nodes, err := NewBuilder().Build(store)
	if err != nil {
		t.Fatal(err)
	}

	seen := make([]bool, store.Len())
	for _, r := range leafRanges(t, nodes) {
		for i := r[0]; i < r[0]+r[1]; i++ {
			if seen[i] {
				t.Fatalf("primitive %d referenced by two leaves", i)
			}
			seen[i] = true
		}
	}
	for i, ok := range seen {
		if !ok {
			t.Fatalf("primitive %d unreachable from the root", i)
		}
	}
}

func TestBuildParentContainsChildren(t *testing.T) {
	store := randomStore(200, 2)
	nodes, err := NewBuilder().Build(store)
	if err != nil {
		t.Fatal(err)
	}

	for i := range nodes {
		n := &nodes[i]
		if n.Leaf() {
			continue
		}
		if !n.Bounds.Contains(nodes[n.Offset].Bounds) {
			t.Errorf("node %d does not contain its left child", i)
		}
		if !n.Bounds.Contains(nodes[n.Offset+1].Bounds) {
			t.Errorf("node %d does not contain its right child", i)
		}
	}
}

func TestBuildLeavesEncloseTriangles(t *testing.T) {
	store := randomStore(100, 3)
	nodes, err := NewBuilder().Build(store)
	if err != nil {
		t.Fatal(err)
	}

	for _, r := range leafRanges(t, nodes) {
		var leaf *Node
		for i := range nodes {
			if nodes[i].Leaf() && nodes[i].Offset == r[0] && nodes[i].Count == r[1] {
				leaf = &nodes[i]
				break
			}
		}
		if leaf == nil {
			t.Fatal("leaf range without node")
		}
		for i := r[0]; i < r[0]+r[1]; i++ {
			if !leaf.Bounds.Contains(store.Triangles[i].Bounds()) {
				t.Errorf("leaf bounds do not enclose triangle %d", i)
			}
		}
	}
}

func TestBuildNodeCountBound(t *testing.T) {
	for _, n := range []int{1, 2, 3, 17, 200} {
		store := randomStore(n, int64(n))
		nodes, err := NewBuilder().Build(store)
		if err != nil {
			t.Fatal(err)
		}
		if len(nodes) > 2*n-1 {
			t.Errorf("n=%d: %d nodes exceeds 2N-1", n, len(nodes))
		}
	}
}

func TestBuildDepthWithinTraversalStack(t *testing.T) {
	store := randomStore(5000, 4)
	nodes, err := NewBuilder().Build(store)
	if err != nil {
		t.Fatal(err)
	}
	if d := Depth(nodes); d > StackDepth {
		t.Errorf("tree depth %d exceeds traversal stack %d", d, StackDepth)
	}
}

func TestBuildSingleTriangle(t *testing.T) {
	store := randomStore(1, 5)
	nodes, err := NewBuilder().Build(store)
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 {
		t.Fatalf("single triangle produced %d nodes, want 1", len(nodes))
	}
	root := nodes[0]
	if !root.Leaf() || root.Count != 1 || root.Offset != 0 {
		t.Errorf("root = %+v, want leaf over primitive 0", root)
	}
	want := store.Triangles[0].Bounds()
	if !root.Bounds.Contains(want) || !want.Contains(root.Bounds) {
		t.Errorf("root bounds %v/%v != triangle bounds %v/%v",
			root.Bounds.Min, root.Bounds.Max, want.Min, want.Max)
	}
}

func TestBuildCoincidentCentroidsStaysLeaf(t *testing.T) {
	// Four triangles sharing one centroid: no plane separates them.
	s := &primitive.Store{}
	for i := 0; i < 4; i++ {
		f := float32(i+1) * 0.25
		s.Triangles = append(s.Triangles, primitive.NewTriangle(
			mgl32.Vec3{-f, -f, 0},
			mgl32.Vec3{f, -f, 0},
			mgl32.Vec3{0, 2 * f, 0},
		))
		s.Ext = append(s.Ext, primitive.TriangleExt{})
	}
	nodes, err := NewBuilder().Build(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 || !nodes[0].Leaf() {
		t.Errorf("coincident centroids split into %d nodes", len(nodes))
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := randomStore(300, 6)
	b := randomStore(300, 6)

	nodesA, err := NewBuilder().Build(a)
	if err != nil {
		t.Fatal(err)
	}
	nodesB, err := NewBuilder().Build(b)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(nodesA, nodesB) {
		t.Error("two builds over the same input differ")
	}
	if !reflect.DeepEqual(a.Triangles, b.Triangles) {
		t.Error("two builds permuted the input differently")
	}
}

func TestBuildExtPermutedWithTriangles(t *testing.T) {
	store := randomStore(100, 7)
	// Material index i was set to the original position; after the
	// build each extension must still describe its triangle.
	original := make([]primitive.Triangle, len(store.Triangles))
	copy(original, store.Triangles)

	if _, err := NewBuilder().Build(store); err != nil {
		t.Fatal(err)
	}

	for i := range store.Triangles {
		orig := original[store.Ext[i].Material]
		if orig.A != store.Triangles[i].A {
			t.Fatalf("index %d: extension followed a different triangle", i)
		}
	}
}

func TestBuildEmptyStore(t *testing.T) {
	if _, err := NewBuilder().Build(&primitive.Store{}); err == nil {
		t.Error("expected error for empty store")
	}
}
