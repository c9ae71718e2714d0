// Package partition implements the static and dynamic bounding-volume trees
// shared by shape composition, broad-phase pair detection, and spatial
// queries. The static BVT's construction is grounded on the teacher's
// pkg/core/bvh.go median-split builder, generalized from a fixed
// []Shape payload to a generic leaf type so composite shapes, broad-phase
// proxies, and anything else with a bounding box can reuse the same tree.
package partition

import (
	"sort"

	"github.com/go-collide/collide/pkg/bv"
)

// Bounded is the capability every BVT leaf payload must have: a way to
// report its own AABB so the tree can bound it.
type Bounded interface {
	AABB() bv.AABB
}

// leafThreshold mirrors the teacher's BVH leaf size: nodes with this many
// or fewer entries become a leaf instead of splitting further.
const leafThreshold = 4

// node is an internal or leaf node of a static BVT. Kept unexported:
// callers interact with the tree through BVT's traversal/search methods,
// not by walking nodes directly, matching the teacher's BVH which also
// hides BVHNode traversal behind BVH.Hit.
type node[T Bounded] struct {
	bounds   bv.AABB
	left     *node[T]
	right    *node[T]
	leaves   []T
}

func (n *node[T]) isLeaf() bool { return n.left == nil && n.right == nil }

// BVT is a static bounding volume tree built once from a fixed set of
// leaves. Grounded on the teacher's BVH: a single median-split construction
// pass, then read-only traversal for the tree's lifetime. Used for
// compound/trimesh/polyline shape parts, where the set of sub-shapes never
// changes after construction.
type BVT[T Bounded] struct {
	root *node[T]
}

// Build constructs a BVT over leaves using recursive median-split along
// each node's longest axis, the same idiom as the teacher's buildBVH.
func Build[T Bounded](leaves []T) *BVT[T] {
	if len(leaves) == 0 {
		return &BVT[T]{}
	}
	cp := make([]T, len(leaves))
	copy(cp, leaves)
	return &BVT[T]{root: buildNode(cp)}
}

// Empty reports whether the tree has no leaves.
func (t *BVT[T]) Empty() bool { return t.root == nil }

// RootBounds returns the AABB enclosing every leaf in the tree, the zero
// value if the tree is empty.
func (t *BVT[T]) RootBounds() bv.AABB {
	if t.root == nil {
		return bv.AABB{}
	}
	return t.root.bounds
}

func buildNode[T Bounded](leaves []T) *node[T] {
	bounds := leaves[0].AABB()
	for _, l := range leaves[1:] {
		bounds = bounds.Merge(l.AABB())
	}

	if len(leaves) <= leafThreshold {
		return &node[T]{bounds: bounds, leaves: leaves}
	}

	axis := bounds.LongestAxis()
	min, max := axisValue(bounds.Min, axis), axisValue(bounds.Max, axis)
	if max <= min {
		return &node[T]{bounds: bounds, leaves: leaves}
	}
	sort.SliceStable(leaves, func(i, j int) bool {
		return axisValue(leaves[i].AABB().Center(), axis) < axisValue(leaves[j].AABB().Center(), axis)
	})
	mid := len(leaves) / 2
	left, right := leaves[:mid], leaves[mid:]

	return &node[T]{
		bounds: bounds,
		left:   buildNode(left),
		right:  buildNode(right),
	}
}

func axisValue(v [3]float64, axis int) float64 { return v[axis] }
