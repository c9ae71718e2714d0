package query

import (
	"github.com/go-collide/collide/pkg/collideerr"
	"github.com/go-collide/collide/pkg/mathx"
	"github.com/go-collide/collide/pkg/shape"
)

// ContactQuery is one of pkg/query's public entry points: dispatch a
// shape pair to its kernel and report the deepest contact found, or
// collideerr.ErrUnsupportedDispatch if no kernel handles the pair.
func ContactQuery(m1 mathx.Isometry, g1 shape.Shape, m2 mathx.Isometry, g2 shape.Shape) (Contact, error) {
	c, ok := shapeAgainstShape(m1, g1, m2, g2)
	if !ok {
		return Contact{}, collideerr.ErrUnsupportedDispatch
	}
	return c, nil
}

// Distance returns the separation between two shapes (0 when touching or
// overlapping), reusing the Contact kernels and folding Depth's sign
// convention into a non-negative distance.
func Distance(m1 mathx.Isometry, g1 shape.Shape, m2 mathx.Isometry, g2 shape.Shape) (mathx.Scalar, error) {
	c, err := ContactQuery(m1, g1, m2, g2)
	if err != nil {
		return 0, err
	}
	if c.Depth >= 0 {
		return 0, nil
	}
	return -c.Depth, nil
}

// Proximity classifies a shape pair's separation against margin, exactly
// as spec.md §4.G's proximity-detector trichotomy: intersecting (overlap
// >= 0, so touching counts), within margin (separated by at most margin),
// or disjoint.
func Proximity(m1 mathx.Isometry, g1 shape.Shape, m2 mathx.Isometry, g2 shape.Shape, margin mathx.Scalar) (ProximityStatus, error) {
	c, err := ContactQuery(m1, g1, m2, g2)
	if err != nil {
		return ProximityDisjoint, err
	}
	switch {
	case c.Depth >= 0:
		return ProximityIntersecting, nil
	case -c.Depth <= margin:
		return ProximityWithinMargin, nil
	default:
		return ProximityDisjoint, nil
	}
}

// TOIResult is the outcome of a time-of-impact sweep.
type TOIResult struct {
	// TOI is the fraction of the swept motion (0 at the start pose, 1 at
	// the fully-displaced pose) at which the shapes first touch.
	TOI mathx.Scalar
	// Normal and WitnessA/WitnessB are the contact geometry at TOI.
	Normal             mathx.Vec3
	WitnessA, WitnessB mathx.Vec3
	Hit                bool
}

// TimeOfImpact performs a conservative-advancement sweep: both shapes
// translate along vel1/vel2 (no rotation, matching spec.md §4.D's TOI
// variant, which sweeps the CSO of the two shapes under their relative
// velocity), bisecting the [0, maxToi] interval against the current
// separating distance until it converges below tolerance or the
// iteration cap is hit, mirroring the GJK directional-distance loop's own
// termination style rather than introducing a separate root-finder.
func TimeOfImpact(m1 mathx.Isometry, g1 shape.SupportMap, vel1 mathx.Vec3, m2 mathx.Isometry, g2 shape.SupportMap, vel2 mathx.Vec3, maxToi mathx.Scalar) TOIResult {
	const tolerance = 1e-6
	const maxIterations = 64

	relVel := vel2.Sub(vel1)

	poseAt := func(t mathx.Scalar) (mathx.Isometry, mathx.Isometry) {
		a := m1
		a.Translation = a.Translation.Add(vel1.Mul(t))
		b := m2
		b.Translation = b.Translation.Add(vel2.Mul(t))
		return a, b
	}

	separationAt := func(t mathx.Scalar) mathx.Scalar {
		a, b := poseAt(t)
		d, _ := Distance(a, g1, b, g2)
		return d
	}

	if separationAt(0) <= 0 {
		a, b := poseAt(0)
		c, _ := ContactQuery(a, g1, b, g2)
		return TOIResult{TOI: 0, Normal: c.Normal, WitnessA: c.WorldPointA, WitnessB: c.WorldPointB, Hit: true}
	}

	if relVel.Len() < 1e-12 {
		return TOIResult{Hit: false}
	}

	// Two convex shapes translating at a constant relative velocity have a
	// separation-vs-time curve that is convex (it's the distance from the
	// origin to a rigidly-translating convex set, per spec.md §4.F): it can
	// dip below zero and climb back above it before maxToi on a crossing
	// trajectory, so checking only the endpoint misses that whole case.
	// Ternary search the unimodal minimum first, then only bisect the
	// descending half below it, where monotonicity actually holds.
	minT := minimizeSeparation(separationAt, 0, maxToi)
	if separationAt(minT) > 0 {
		return TOIResult{Hit: false}
	}

	lo, hi := mathx.Scalar(0), minT
	for i := 0; i < maxIterations && hi-lo > tolerance; i++ {
		mid := (lo + hi) / 2
		if separationAt(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}

	a, b := poseAt(hi)
	c, _ := ContactQuery(a, g1, b, g2)
	return TOIResult{TOI: hi, Normal: c.Normal, WitnessA: c.WorldPointA, WitnessB: c.WorldPointB, Hit: true}
}

// minimizeSeparation ternary-searches f over [lo, hi] for its minimizer,
// assuming f is unimodal there (true of the convex separation curve above).
func minimizeSeparation(f func(mathx.Scalar) mathx.Scalar, lo, hi mathx.Scalar) mathx.Scalar {
	const iterations = 64
	for i := 0; i < iterations; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if f(m1) < f(m2) {
			hi = m2
		} else {
			lo = m1
		}
	}
	return (lo + hi) / 2
}
