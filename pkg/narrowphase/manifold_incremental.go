package narrowphase

import (
	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/query"
	"github.com/go-collide/collide/pkg/shape"
)

// IncrementalManifold is spec.md §4.G's incremental strategy: each frame
// adds at most one new contact to the manifold's bounded set, keeping
// existing points whose locally-tracked position still lands near its
// last-known world position (within driftDistance, a fraction of both
// shapes' bounding radii); everything else is culled. A survivor's depth
// is not recomputed or tested against the prediction margin here; the
// only depth test is the generator's, which clears the whole manifold
// when the new contact lies beyond prediction.
type IncrementalManifold struct{}

func (im *IncrementalManifold) Update(m1 mathx.Isometry, g1 shape.SupportMap, m2 mathx.Isometry, g2 shape.SupportMap, contact query.Contact, manifold *Manifold) {
	driftDistance := driftToleranceFor(g1, m1) + driftToleranceFor(g2, m2)

	survivors := manifold.Points[:0]
	for _, p := range manifold.Points {
		worldA := m1.TransformPoint(p.LocalA)
		worldB := m2.TransformPoint(p.LocalB)

		if worldA.Sub(p.WorldA).Len() > driftDistance || worldB.Sub(p.WorldB).Len() > driftDistance {
			continue
		}

		p.WorldA, p.WorldB = worldA, worldB
		survivors = append(survivors, p)
	}
	manifold.Points = survivors

	newPoint := ContactPoint{
		LocalA:    m1.InverseTransformPoint(contact.WorldPointA),
		LocalB:    m2.InverseTransformPoint(contact.WorldPointB),
		WorldA:    contact.WorldPointA,
		WorldB:    contact.WorldPointB,
		Normal:    contact.Normal,
		Depth:     contact.Depth,
		FeatureID: len(manifold.Points),
	}

	if duplicateOf(manifold, newPoint, driftDistance) {
		return
	}

	if len(manifold.Points) < manifold.Capacity {
		manifold.Points = append(manifold.Points, newPoint)
		return
	}

	idx := manifold.shallowestIndex()
	if newPoint.Depth > manifold.Points[idx].Depth {
		manifold.Points[idx] = newPoint
	}
}

// duplicateOf reports whether a candidate point is close enough to an
// existing survivor to be the same contact rather than a genuinely new
// one, preventing the manifold from accumulating near-identical points
// every frame at a stable resting contact.
func duplicateOf(manifold *Manifold, candidate ContactPoint, tolerance mathx.Scalar) bool {
	for _, p := range manifold.Points {
		if p.WorldA.Sub(candidate.WorldA).Len() < tolerance {
			return true
		}
	}
	return false
}

// driftToleranceFor scales DriftTolerance by a shape's bounding-sphere
// radius, resolving spec.md §9's open question that the tolerance is a
// relative, not absolute, quantity.
func driftToleranceFor(s shape.SupportMap, pose mathx.Isometry) mathx.Scalar {
	sphere := s.BoundingSphere(pose)
	return sphere.Radius * DriftTolerance
}
