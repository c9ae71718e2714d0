// Package narrowphase implements the persistent contact and proximity
// layer: per-pair algorithm objects cached across frames (so a resting
// contact doesn't re-derive its manifold from scratch every update), the
// incremental and one-shot manifold-building strategies, and
// composite-shape recursion. Grounded on spec.md §4.F/§4.G's stated split
// between the stateless query dispatcher (pkg/query) and this stateful
// cache.
package narrowphase

import "github.com/go-collide/collide/pkg/mathx"

const (
	// ManifoldCapacity3D bounds how many simultaneous contact points an
	// incremental manifold keeps in 3D — four points is the minimum
	// needed to fully constrain a resting rigid body (a quad of corners),
	// matching spec.md §9's capacity note.
	ManifoldCapacity3D = 4
	// ManifoldCapacity2D is the 2D analog: two points pin an edge.
	ManifoldCapacity2D = 2
	// DriftTolerance is the fraction of a shape's bounding-sphere radius
	// an existing contact point's world position may drift from its
	// locally-tracked coordinates before it is discarded rather than
	// reused, resolving spec.md §9's "drift tolerance units" open
	// question as a relative rather than absolute quantity.
	DriftTolerance = 0.02
)

// ContactPoint is one point of a persistent manifold. LocalA/LocalB are
// expressed in each shape's own local frame at the time the point was
// created, so survival testing (manifold_incremental.go) can re-derive
// the point's current world position from the shapes' current poses and
// compare against WorldA/WorldB without re-running the full kernel.
type ContactPoint struct {
	LocalA, LocalB mathx.Vec3
	WorldA, WorldB mathx.Vec3
	Normal         mathx.Vec3
	Depth          mathx.Scalar
	// FeatureID distinguishes contact points that originate from
	// different support features (e.g. different box corners), so the
	// incremental strategy can tell "same contact, shape moved a little"
	// from "genuinely new contact."
	FeatureID int
}

// Manifold is the bounded set of contact points persisted for one
// broad-phase pair.
type Manifold struct {
	Points   []ContactPoint
	Capacity int
}

// NewManifold3D creates an empty manifold at the 3D capacity.
func NewManifold3D() *Manifold {
	return &Manifold{Capacity: ManifoldCapacity3D}
}

// NewManifold2D creates an empty manifold at the 2D capacity.
func NewManifold2D() *Manifold {
	return &Manifold{Capacity: ManifoldCapacity2D}
}

func (m *Manifold) Clear() { m.Points = m.Points[:0] }

// shallowestIndex finds the shallowest (least-penetrating) point in the
// manifold, used by the incremental strategy's capacity-eviction rule:
// discard the shallowest point to make room for a deeper new one.
func (m *Manifold) shallowestIndex() int {
	idx := 0
	shallow := m.Points[0].Depth
	for i, p := range m.Points[1:] {
		if p.Depth < shallow {
			shallow = p.Depth
			idx = i + 1
		}
	}
	return idx
}
