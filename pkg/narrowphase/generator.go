package narrowphase

import (
	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/query"
	"github.com/go-collide/collide/pkg/shape"
)

// ContactManifoldGenerator is the stateful dual of pkg/query's stateless
// kernels: one instance is created per active broad-phase pair and
// reused across frames, so it can carry whatever per-pair state its
// strategy needs (the last separating axis, a warm-started simplex, the
// manifold itself).
type ContactManifoldGenerator interface {
	// GenerateContacts updates manifold in place for the current poses
	// and reports whether the pair is still recognized as a contact
	// candidate (false lets the caller drop the generator).
	GenerateContacts(m1 mathx.Isometry, g1 shape.Shape, m2 mathx.Isometry, g2 shape.Shape, prediction mathx.Scalar, manifold *Manifold) bool
}

// ProximityDetector is ContactManifoldGenerator's analog for proximity
// pairs: it reports only the trichotomy, never a manifold.
type ProximityDetector interface {
	Update(m1 mathx.Isometry, g1 shape.Shape, m2 mathx.Isometry, g2 shape.Shape, margin mathx.Scalar) query.ProximityStatus
}

// pairKey identifies an unordered pair of broad-phase proxy handles.
// Handles are compared as a canonical (min, max) tuple so (a, b) and
// (b, a) hash identically.
type pairKey struct{ a, b uint64 }

func makePairKey(a, b uint64) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// ContactDispatcher is the stateful counterpart to query.Dispatch: it
// builds (or reuses) a ContactManifoldGenerator for a pair, keyed by the
// pair's proxy handles, so the same generator instance persists across
// frames for as long as the pair stays active. The broad phase tells a
// ContactDispatcher when a pair starts/ends via Forget.
type ContactDispatcher struct {
	generators map[pairKey]ContactManifoldGenerator
	pool       *ScratchPool
}

func NewContactDispatcher() *ContactDispatcher {
	return &ContactDispatcher{
		generators: make(map[pairKey]ContactManifoldGenerator),
		pool:       NewScratchPool(),
	}
}

// Generator returns the cached generator for (handleA, handleB), building
// one via query.Dispatch against (g1, g2) the first time the pair is
// seen.
func (d *ContactDispatcher) Generator(handleA, handleB uint64, g1, g2 shape.Shape) (ContactManifoldGenerator, bool) {
	key := makePairKey(handleA, handleB)
	if gen, ok := d.generators[key]; ok {
		return gen, true
	}

	algo, _, ok := query.Dispatch(g1, g2)
	if !ok {
		return nil, false
	}

	var gen ContactManifoldGenerator
	switch algo {
	case query.AlgorithmBallBall:
		gen = &BallBallGenerator{}
	case query.AlgorithmPlaneSupportMap:
		gen = &PlaneSupportMapGenerator{}
	case query.AlgorithmSupportMapSupportMap:
		gen = NewSupportMapSupportMapGenerator(d.pool)
	case query.AlgorithmComposite:
		gen = NewCompositeGenerator(d)
	default:
		return nil, false
	}

	d.generators[key] = gen
	return gen, true
}

// Forget drops the cached generator for a pair, called when the broad
// phase reports the pair has ended.
func (d *ContactDispatcher) Forget(handleA, handleB uint64) {
	delete(d.generators, makePairKey(handleA, handleB))
}
