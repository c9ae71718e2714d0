package shape

import "github.com/go-collide/collide/pkg/partition"

// bvtHandle is the concrete BVT type backing every CompositeShape's part
// lookup. Named instead of used directly as *partition.BVT[SubShape] in
// the CompositeShape interface so that the interface's method signature
// doesn't leak the partition package's generic instantiation into every
// call site.
type bvtHandle = partition.BVT[SubShape]

// buildPartsBVT is the one place a composite shape's constructor needs to
// call to get a part-lookup tree, grounded on the teacher's
// BVH-over-shapes idiom applied to sub-shapes instead of top-level scene
// shapes.
func buildPartsBVT(parts []SubShape) *bvtHandle {
	return partition.Build(parts)
}
