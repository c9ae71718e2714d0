package partition

import (
	"testing"

	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
)

type boxLeaf struct {
	id     int
	bounds bv.AABB
}

func (b boxLeaf) AABB() bv.AABB { return b.bounds }

func makeLeaf(id int, cx, cy, cz float64) boxLeaf {
	c := mathx.Vec3{cx, cy, cz}
	half := mathx.Vec3{0.4, 0.4, 0.4}
	return boxLeaf{id: id, bounds: bv.FromCenterHalfExtents(c, half)}
}

func TestBVTBuildAndVisitAll(t *testing.T) {
	leaves := []boxLeaf{
		makeLeaf(0, 0, 0, 0),
		makeLeaf(1, 5, 0, 0),
		makeLeaf(2, 0, 5, 0),
		makeLeaf(3, 0, 0, 5),
		makeLeaf(4, 5, 5, 5),
	}
	tree := Build(leaves)

	seen := map[int]bool{}
	tree.Visit(&AABBVisitor[boxLeaf]{
		Query: bv.New(mathx.Vec3{-100, -100, -100}, mathx.Vec3{100, 100, 100}),
		Visit: func(l boxLeaf) VisitResult {
			seen[l.id] = true
			return Continue
		},
	})

	for _, l := range leaves {
		if !seen[l.id] {
			t.Errorf("leaf %d not visited", l.id)
		}
	}
}

func TestBVTPruneSkipsDisjointSubtrees(t *testing.T) {
	leaves := []boxLeaf{
		makeLeaf(0, 0, 0, 0),
		makeLeaf(1, 100, 0, 0),
	}
	tree := Build(leaves)

	seen := map[int]bool{}
	tree.Visit(&AABBVisitor[boxLeaf]{
		Query: bv.FromCenterHalfExtents(mathx.Vec3{0, 0, 0}, mathx.Vec3{1, 1, 1}),
		Visit: func(l boxLeaf) VisitResult {
			seen[l.id] = true
			return Continue
		},
	})

	if !seen[0] || seen[1] {
		t.Errorf("expected only leaf 0 visited, got %v", seen)
	}
}

type nearestOriginCost struct{}

func (nearestOriginCost) ComputeBVCost(bounds bv.AABB) (float64, bool) {
	// Lower bound: distance from origin to the closest point on the AABB.
	d := 0.0
	for axis := 0; axis < 3; axis++ {
		if bounds.Min[axis] > 0 {
			d += bounds.Min[axis] * bounds.Min[axis]
		} else if bounds.Max[axis] < 0 {
			d += bounds.Max[axis] * bounds.Max[axis]
		}
	}
	return d, true
}

func (nearestOriginCost) ComputeLeafCost(leaf boxLeaf) (float64, int, bool) {
	c := leaf.bounds.Center()
	return c.Dot(c), leaf.id, true
}

func TestBestFirstSearchFindsNearest(t *testing.T) {
	leaves := []boxLeaf{
		makeLeaf(0, 10, 10, 10),
		makeLeaf(1, 1, 0, 0),
		makeLeaf(2, -20, 0, 0),
	}
	tree := Build(leaves)

	_, result, found := BestFirstSearch[boxLeaf, int](tree, nearestOriginCost{})
	if !found {
		t.Fatal("expected to find a nearest leaf")
	}
	if result != 1 {
		t.Errorf("expected nearest leaf id 1, got %d", result)
	}
}

func TestDBVTInsertRemoveUpdate(t *testing.T) {
	tree := NewDBVT[int](0.1)

	id0 := tree.Insert(0, bv.FromCenterHalfExtents(mathx.Vec3{0, 0, 0}, mathx.Vec3{0.5, 0.5, 0.5}))
	id1 := tree.Insert(1, bv.FromCenterHalfExtents(mathx.Vec3{10, 0, 0}, mathx.Vec3{0.5, 0.5, 0.5}))
	id2 := tree.Insert(2, bv.FromCenterHalfExtents(mathx.Vec3{0, 10, 0}, mathx.Vec3{0.5, 0.5, 0.5}))

	if tree.Empty() {
		t.Fatal("tree should not be empty after inserts")
	}

	found := map[int]bool{}
	tree.VisitAABB(bv.New(mathx.Vec3{-100, -100, -100}, mathx.Vec3{100, 100, 100}), func(id LeafID, leaf int) bool {
		found[leaf] = true
		return true
	})
	for _, v := range []int{0, 1, 2} {
		if !found[v] {
			t.Errorf("expected to find leaf %d", v)
		}
	}

	tree.Remove(id1)
	found = map[int]bool{}
	tree.VisitAABB(bv.New(mathx.Vec3{-100, -100, -100}, mathx.Vec3{100, 100, 100}), func(id LeafID, leaf int) bool {
		found[leaf] = true
		return true
	})
	if found[1] {
		t.Error("leaf 1 should have been removed")
	}
	if !found[0] || !found[2] {
		t.Error("remaining leaves should still be present after removal")
	}

	// Moving leaf 0 far away should require a structural update.
	newBounds := bv.FromCenterHalfExtents(mathx.Vec3{50, 50, 50}, mathx.Vec3{0.5, 0.5, 0.5})
	changed := tree.Update(id0, newBounds)
	if !changed {
		t.Error("expected Update to report a structural change for a large motion")
	}

	// A tiny motion within the loosened margin should not trigger a
	// structural change.
	_, tightBounds, ok := tree.Leaf(id2)
	if !ok {
		t.Fatal("expected leaf 2 to still exist")
	}
	tiny := tightBounds
	tiny.Min = tiny.Min.Add(mathx.Vec3{0.001, 0, 0})
	tiny.Max = tiny.Max.Add(mathx.Vec3{0.001, 0, 0})
	if tree.Update(id2, tiny) {
		t.Error("expected a sub-margin motion not to trigger a structural update")
	}
}

type dbvtNearestOriginCost struct{}

func (dbvtNearestOriginCost) ComputeBVCost(bounds bv.AABB) (float64, bool) {
	d := 0.0
	for axis := 0; axis < 3; axis++ {
		if bounds.Min[axis] > 0 {
			d += bounds.Min[axis] * bounds.Min[axis]
		} else if bounds.Max[axis] < 0 {
			d += bounds.Max[axis] * bounds.Max[axis]
		}
	}
	return d, true
}

func (dbvtNearestOriginCost) ComputeLeafCost(leaf int) (float64, int, bool) {
	return float64(leaf * leaf), leaf, true
}

func TestDBVTBestFirstSearchFindsNearest(t *testing.T) {
	tree := NewDBVT[int](0.1)
	tree.Insert(10, bv.FromCenterHalfExtents(mathx.Vec3{10, 0, 0}, mathx.Vec3{0.5, 0.5, 0.5}))
	tree.Insert(1, bv.FromCenterHalfExtents(mathx.Vec3{1, 0, 0}, mathx.Vec3{0.5, 0.5, 0.5}))
	tree.Insert(20, bv.FromCenterHalfExtents(mathx.Vec3{-20, 0, 0}, mathx.Vec3{0.5, 0.5, 0.5}))

	_, result, found := DBVTBestFirstSearch[int, int](tree, dbvtNearestOriginCost{})
	if !found {
		t.Fatal("expected to find a nearest leaf")
	}
	if result != 1 {
		t.Errorf("expected nearest leaf 1, got %d", result)
	}
}

func TestDBVTVisitPairsFindsOverlap(t *testing.T) {
	tree := NewDBVT[int](0.0)
	tree.Insert(0, bv.FromCenterHalfExtents(mathx.Vec3{0, 0, 0}, mathx.Vec3{1, 1, 1}))
	tree.Insert(1, bv.FromCenterHalfExtents(mathx.Vec3{0.5, 0, 0}, mathx.Vec3{1, 1, 1}))
	tree.Insert(2, bv.FromCenterHalfExtents(mathx.Vec3{100, 0, 0}, mathx.Vec3{1, 1, 1}))

	pairs := map[[2]int]bool{}
	tree.VisitPairs(func(a, b LeafID, la, lb int) bool {
		if la > lb {
			la, lb = lb, la
		}
		pairs[[2]int{la, lb}] = true
		return true
	})

	if !pairs[[2]int{0, 1}] {
		t.Error("expected overlap between leaf 0 and leaf 1")
	}
	if pairs[[2]int{0, 2}] || pairs[[2]int{1, 2}] {
		t.Error("leaf 2 should not overlap with 0 or 1")
	}
}
