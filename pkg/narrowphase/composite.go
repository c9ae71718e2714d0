package narrowphase

import (
	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/partition"
	"github.com/go-collide/collide/pkg/shape"
)

// CompositeGenerator handles any pair where at least one side is a
// shape.CompositeShape. When only one side is composite, it walks that
// composite's BVT for candidates overlapping the other shape's AABB. When
// both sides are composite, it walks both BVTs in lockstep instead (see
// generateComposite). Either way it delegates to a sub-generator fetched
// from the same ContactDispatcher (so a compound's ball sub-part reuses
// BallBallGenerator rather than a bespoke path), and merges the resulting
// sub-manifolds into one manifold indexed by sub-shape id, exactly as
// spec.md §4.G describes.
type CompositeGenerator struct {
	dispatcher *ContactDispatcher
}

func NewCompositeGenerator(dispatcher *ContactDispatcher) *CompositeGenerator {
	return &CompositeGenerator{dispatcher: dispatcher}
}

func (cg *CompositeGenerator) GenerateContacts(m1 mathx.Isometry, g1 shape.Shape, m2 mathx.Isometry, g2 shape.Shape, prediction mathx.Scalar, manifold *Manifold) bool {
	compA, aOK := g1.(shape.CompositeShape)
	compB, bOK := g2.(shape.CompositeShape)
	if aOK && bOK {
		return cg.generateComposite(m1, compA, m2, compB, prediction, manifold)
	}
	if aOK {
		return cg.generate(m1, compA, m2, g2, prediction, manifold, false)
	}
	if bOK {
		return cg.generate(m2, compB, m1, g1, prediction, manifold, true)
	}
	return false
}

// generateComposite handles the composite-vs-composite case by walking
// both composites' BVTs in lockstep with partition.VisitSimultaneous,
// rather than nesting a single-tree traversal of one composite inside a
// per-leaf re-dispatch against the other (which would re-walk the second
// composite's whole tree once per leaf of the first). Sub-manifolds from
// every overlapping leaf pair are merged the same way generate's single-
// tree path does, with FeatureID set to the visit order so points from
// distinct leaf pairs never alias.
func (cg *CompositeGenerator) generateComposite(poseA mathx.Isometry, a shape.CompositeShape, poseB mathx.Isometry, b shape.CompositeShape, prediction mathx.Scalar, manifold *Manifold) bool {
	treeA, treeB := a.PartsBVT(), b.PartsBVT()
	manifold.Clear()
	if treeA == nil || treeB == nil || treeA.Empty() || treeB.Empty() {
		return true
	}

	v := &compositeCompositeGenVisitor{
		cg:         cg,
		poseA:      poseA,
		poseB:      poseB,
		bToA:       poseA.Inverse().Mul(poseB),
		prediction: prediction,
		manifold:   manifold,
	}
	partition.VisitSimultaneous[shape.SubShape, shape.SubShape](treeA, treeB, v)
	return true
}

type compositeCompositeGenVisitor struct {
	cg         *CompositeGenerator
	poseA      mathx.Isometry
	poseB      mathx.Isometry
	bToA       mathx.Isometry
	prediction mathx.Scalar
	manifold   *Manifold

	pairIdx int
}

func (v *compositeCompositeGenVisitor) VisitInternalInternal(a, b bv.AABB) partition.VisitResult {
	if !a.Loosen(v.prediction).Intersects(b.Transform(v.bToA)) {
		return partition.Prune
	}
	return partition.Continue
}

func (v *compositeCompositeGenVisitor) VisitInternalLeaf(bounds bv.AABB, leaf shape.SubShape) partition.VisitResult {
	if !bounds.Loosen(v.prediction).Intersects(leaf.AABB().Transform(v.bToA)) {
		return partition.Prune
	}
	return partition.Continue
}

func (v *compositeCompositeGenVisitor) VisitLeafInternal(leaf shape.SubShape, bounds bv.AABB) partition.VisitResult {
	if !leaf.AABB().Loosen(v.prediction).Intersects(bounds.Transform(v.bToA)) {
		return partition.Prune
	}
	return partition.Continue
}

func (v *compositeCompositeGenVisitor) VisitLeafLeaf(la, lb shape.SubShape) partition.VisitResult {
	id := v.pairIdx
	v.pairIdx++

	subPoseA := v.poseA.Mul(la.Pose)
	subPoseB := v.poseB.Mul(lb.Pose)

	gen, ok := v.cg.dispatcher.Generator(uint64(id), uint64(id), la.Shape, lb.Shape)
	if !ok {
		return partition.Continue
	}

	sub := Manifold{Capacity: v.manifold.Capacity}
	if gen.GenerateContacts(subPoseA, la.Shape, subPoseB, lb.Shape, v.prediction, &sub) {
		for i := range sub.Points {
			sub.Points[i].FeatureID = id
		}
		v.manifold.Points = append(v.manifold.Points, sub.Points...)
	}
	return partition.Continue
}

func (cg *CompositeGenerator) generate(compositePose mathx.Isometry, composite shape.CompositeShape, otherPose mathx.Isometry, other shape.Shape, prediction mathx.Scalar, manifold *Manifold, swapped bool) bool {
	tree := composite.PartsBVT()
	if tree == nil || tree.Empty() {
		manifold.Clear()
		return true
	}

	localOtherPose := compositePose.Inverse().Mul(otherPose)
	queryBounds := other.AABB(localOtherPose).Loosen(prediction)

	manifold.Clear()

	subIdx := 0
	visitor := &partition.AABBVisitor[shape.SubShape]{
		Query: queryBounds,
		Visit: func(sub shape.SubShape) partition.VisitResult {
			id := subIdx
			subIdx++

			subPose := compositePose.Mul(sub.Pose)

			var sub1, sub2 shape.Shape
			var pose1, pose2 mathx.Isometry
			if swapped {
				sub1, pose1 = other, otherPose
				sub2, pose2 = sub.Shape, subPose
			} else {
				sub1, pose1 = sub.Shape, subPose
				sub2, pose2 = other, otherPose
			}

			gen, ok := cg.dispatcher.Generator(uint64(id), ^uint64(0), sub1, sub2)
			if !ok {
				return partition.Continue
			}

			subManifold := Manifold{Capacity: manifold.Capacity}
			if gen.GenerateContacts(pose1, sub1, pose2, sub2, prediction, &subManifold) {
				for i := range subManifold.Points {
					subManifold.Points[i].FeatureID = id
				}
				manifold.Points = append(manifold.Points, subManifold.Points...)
			}
			return partition.Continue
		},
	}
	tree.Visit(visitor)

	return true
}
