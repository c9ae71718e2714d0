// Package query implements the pairwise geometric query layer: a handful
// of closed-form kernels for common shape pairs, a GJK/EPA-backed kernel
// for the general convex case, and a priority dispatcher choosing among
// them. All entry points are pure functions of their arguments; the
// stateful analog that caches per-pair algorithm objects across frames is
// narrowphase.ContactDispatcher, not this package.
package query

import (
	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/shape"
)

// Algorithm identifies which kernel the dispatcher selected for a shape
// pair, exposed so callers and narrowphase's caching layer can tell
// kernels apart without re-inspecting shape kinds.
type Algorithm int

const (
	AlgorithmBallBall Algorithm = iota
	AlgorithmPlaneSupportMap
	AlgorithmSupportMapSupportMap
	AlgorithmComposite
)

// Contact is a single-point contact result: the minimal output every
// kernel below produces, used both directly (Contact query) and as the
// seed narrowphase manifold generators build from.
type Contact struct {
	// WorldPointA and WorldPointB are the witness points on each shape's
	// surface, in world space.
	WorldPointA, WorldPointB mathx.Vec3
	// Normal points from shape 1 toward shape 2.
	Normal mathx.Vec3
	// Depth is positive when overlapping, negative when separated by
	// that distance (mirrors ncollide's signed-distance convention so a
	// single field serves both contact and proximity queries).
	Depth mathx.Scalar
}

// ProximityStatus is the trichotomy a ProximityDetector reports.
type ProximityStatus int

const (
	ProximityDisjoint ProximityStatus = iota
	ProximityWithinMargin
	ProximityIntersecting
)

// Dispatch chooses the query Algorithm for a shape pair, exactly in the
// priority order spec.md §4.F lists: ball/ball, then plane/supportmap,
// then supportmap/supportmap via GJK/EPA, then composite recursion,
// otherwise unsupported. Swapped is true when g1/g2 were reordered to
// match a kernel's expected argument order (e.g. plane always passed as
// the first shape internally) — callers needing to know which physical
// shape ended up "shape A" in a Contact result should check it.
func Dispatch(g1, g2 shape.Shape) (algo Algorithm, swapped bool, ok bool) {
	_, aBall := g1.(shape.Ball)
	_, bBall := g2.(shape.Ball)
	if aBall && bBall {
		return AlgorithmBallBall, false, true
	}

	_, aPlane := g1.(shape.Plane)
	_, bPlane := g2.(shape.Plane)
	_, aSupport := g1.(shape.SupportMap)
	_, bSupport := g2.(shape.SupportMap)

	if aPlane && bSupport {
		return AlgorithmPlaneSupportMap, false, true
	}
	if bPlane && aSupport {
		return AlgorithmPlaneSupportMap, true, true
	}

	if aSupport && bSupport {
		return AlgorithmSupportMapSupportMap, false, true
	}

	_, aComposite := g1.(shape.CompositeShape)
	_, bComposite := g2.(shape.CompositeShape)
	if aComposite || bComposite {
		return AlgorithmComposite, false, true
	}

	return 0, false, false
}
