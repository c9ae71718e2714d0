// Package gjkepa implements the GJK distance/intersection algorithm and
// EPA penetration recovery used by every convex-vs-convex query that has
// no closed form. Grounded directly on akmonengine/feather's gjk and epa
// packages (other_examples/bdce12f2_akmonengine-feather__gjk-gjk.go.go and
// other_examples/ba6d09ec_akmonengine-feather__epa-epa.go.go), generalized
// from feather's fixed RigidBody pair to this module's SupportFn
// abstraction so any two SupportMap shapes (or a shape against itself, as
// EPA's degenerate-simplex path needs) can be queried.
package gjkepa

import "github.com/go-collide/collide/pkg/mathx"

// Tolerances. DefaultEpsilon and ProgressEpsilon gate GJK/EPA's
// termination tests; the iteration caps bound worst-case work per query.
// Deliberately tighter than feather's EPAConvergenceTolerance (1e-3)
// since this module is a direct geometric query library, not a
// soft-constraint physics solver trading precision for per-frame
// stability.
const (
	DefaultEpsilon          = 1e-10
	ProgressEpsilon         = 1e-10
	MaxGJKIterations        = 64
	MaxEPAIterations        = 64
	EPAConvergenceTolerance = 1e-5
	EPAMinFaceDistance      = 1e-7

	// NormalSnapThreshold clamps near-zero contact normal components to
	// exactly zero, matching feather's epa.NormalSnapThreshold.
	NormalSnapThreshold = 1e-8

	// DegeneratePenetrationEstimate is the fallback penetration depth EPA
	// reports when GJK's terminal simplex has too few points to recover
	// real depth (single-point simplex), matching feather's
	// epa.DegeneratePenetrationEstimate.
	DegeneratePenetrationEstimate = 0.01
)

// SupportFn returns a shape's extreme point along dir, in whatever space
// the caller has already arranged both shapes' supports to share (query
// kernels typically work in one shape's local frame to avoid repeated
// world<->local transforms per GJK iteration).
type SupportFn func(dir mathx.Vec3) mathx.Vec3

// MinkowskiSupport builds the Minkowski-difference (A - B) support
// function out of two ordinary shape supports, exactly as feather's
// gjk.MinkowskiSupport does: supportA(dir) - supportB(-dir).
func MinkowskiSupport(a, b SupportFn) SupportFn {
	return func(dir mathx.Vec3) mathx.Vec3 {
		return a(dir).Sub(b(dir.Mul(-1)))
	}
}

// Simplex is the 1-4 point working set GJK builds incrementally in the
// Minkowski difference, mirroring feather's Simplex{Points[4], Count}.
type Simplex struct {
	Points [4]mathx.Vec3
	Count  int
}

// Reset empties the simplex for reuse from a pool.
func (s *Simplex) Reset() { s.Count = 0 }

// Push appends a point, growing the simplex by one vertex.
func (s *Simplex) Push(p mathx.Vec3) {
	s.Points[s.Count] = p
	s.Count++
}
