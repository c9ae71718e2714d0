package query

import (
	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/partition"
	"github.com/go-collide/collide/pkg/shape"
)

// CompositeAny handles any pair where at least one side is a
// shape.CompositeShape, exactly as spec.md §4.E: build the other shape's
// AABB in the composite's local frame, traverse the composite's BVT with
// a visitor that dispatches shapeAgainstShape at each candidate leaf, and
// keep the deepest contact found (composite parts can legitimately
// overlap the other shape at more than one sub-shape; only the deepest
// is reported here since Contact is a single-point result — manifold
// merging across sub-shapes is narrowphase's composite generator's job).
func CompositeAny(compositePose mathx.Isometry, composite shape.CompositeShape, otherPose mathx.Isometry, other shape.Shape) (Contact, bool) {
	tree := composite.PartsBVT()
	if tree == nil || tree.Empty() {
		return Contact{}, false
	}

	localOtherPose := compositePose.Inverse().Mul(otherPose)
	queryBounds := other.AABB(localOtherPose)

	var best Contact
	found := false
	bestDepth := mathx.Scalar(-1e300)

	visitor := &partition.AABBVisitor[shape.SubShape]{
		Query: queryBounds,
		Visit: func(sub shape.SubShape) partition.VisitResult {
			subPose := compositePose.Mul(sub.Pose)
			c, ok := shapeAgainstShape(subPose, sub.Shape, otherPose, other)
			if ok && c.Depth > bestDepth {
				bestDepth = c.Depth
				best = c
				found = true
			}
			return partition.Continue
		},
	}
	tree.Visit(visitor)

	return best, found
}

// shapeAgainstShape is CompositeAny's (and CompositeComposite's) recursive
// callback: it dispatches exactly like Contact does, routing the
// composite/composite case to the dual-tree CompositeComposite path and
// everything else to CompositeAny's single-tree traversal.
func shapeAgainstShape(m1 mathx.Isometry, g1 shape.Shape, m2 mathx.Isometry, g2 shape.Shape) (Contact, bool) {
	algo, swapped, ok := Dispatch(g1, g2)
	if !ok {
		return Contact{}, false
	}

	a1, b1, sA, sB := m1, m2, g1, g2
	if swapped {
		a1, b1, sA, sB = m2, m1, g2, g1
	}

	switch algo {
	case AlgorithmBallBall:
		c := BallBall(a1, sA.(shape.Ball), b1, sB.(shape.Ball))
		return maybeFlip(c, swapped), true
	case AlgorithmPlaneSupportMap:
		c := PlaneSupportMap(a1, sA.(shape.Plane), b1, sB.(shape.SupportMap))
		return maybeFlip(c, swapped), true
	case AlgorithmSupportMapSupportMap:
		c := SupportMapSupportMap(a1, sA.(shape.SupportMap), b1, sB.(shape.SupportMap))
		return maybeFlip(c, swapped), true
	case AlgorithmComposite:
		compA, aOK := g1.(shape.CompositeShape)
		compB, bOK := g2.(shape.CompositeShape)
		if aOK && bOK {
			return CompositeComposite(m1, compA, m2, compB)
		}
		if aOK {
			return CompositeAny(m1, compA, m2, g2)
		}
		if bOK {
			c, ok := CompositeAny(m2, compB, m1, g1)
			return maybeFlip(c, true), ok
		}
	}
	return Contact{}, false
}

// CompositeComposite handles a pair where both sides are a
// shape.CompositeShape, walking both composites' BVTs in lockstep with
// partition.VisitSimultaneous rather than re-dispatching one side's leaves
// against the other composite as a whole (that would mean re-traversing
// composite b's tree once per leaf of composite a). Candidate leaf pairs
// whose bounds overlap fall through to shapeAgainstShape exactly as
// CompositeAny's leaves do, so nested composites-of-composites still
// recurse through the same dispatch path.
func CompositeComposite(poseA mathx.Isometry, a shape.CompositeShape, poseB mathx.Isometry, b shape.CompositeShape) (Contact, bool) {
	treeA, treeB := a.PartsBVT(), b.PartsBVT()
	if treeA == nil || treeB == nil || treeA.Empty() || treeB.Empty() {
		return Contact{}, false
	}

	v := &compositeCompositeVisitor{
		poseA:   poseA,
		poseB:   poseB,
		bToA:    poseA.Inverse().Mul(poseB),
		bestDep: -1e300,
	}
	partition.VisitSimultaneous[shape.SubShape, shape.SubShape](treeA, treeB, v)
	return v.best, v.found
}

type compositeCompositeVisitor struct {
	poseA, poseB mathx.Isometry
	bToA         mathx.Isometry

	best    Contact
	found   bool
	bestDep mathx.Scalar
}

func (v *compositeCompositeVisitor) VisitInternalInternal(a, b bv.AABB) partition.VisitResult {
	if !a.Intersects(b.Transform(v.bToA)) {
		return partition.Prune
	}
	return partition.Continue
}

func (v *compositeCompositeVisitor) VisitInternalLeaf(bounds bv.AABB, leaf shape.SubShape) partition.VisitResult {
	if !bounds.Intersects(leaf.AABB().Transform(v.bToA)) {
		return partition.Prune
	}
	return partition.Continue
}

func (v *compositeCompositeVisitor) VisitLeafInternal(leaf shape.SubShape, bounds bv.AABB) partition.VisitResult {
	if !leaf.AABB().Intersects(bounds.Transform(v.bToA)) {
		return partition.Prune
	}
	return partition.Continue
}

func (v *compositeCompositeVisitor) VisitLeafLeaf(la, lb shape.SubShape) partition.VisitResult {
	if !la.AABB().Intersects(lb.AABB().Transform(v.bToA)) {
		return partition.Continue
	}
	subPoseA := v.poseA.Mul(la.Pose)
	subPoseB := v.poseB.Mul(lb.Pose)
	c, ok := shapeAgainstShape(subPoseA, la.Shape, subPoseB, lb.Shape)
	if ok && c.Depth > v.bestDep {
		v.bestDep = c.Depth
		v.best = c
		v.found = true
	}
	return partition.Continue
}

func maybeFlip(c Contact, swapped bool) Contact {
	if !swapped {
		return c
	}
	return Contact{
		WorldPointA: c.WorldPointB,
		WorldPointB: c.WorldPointA,
		Normal:      c.Normal.Mul(-1),
		Depth:       c.Depth,
	}
}
