package gjkepa

import (
	"math"

	"github.com/go-collide/collide/pkg/mathx"
)

// Result is the outcome of a distance query between two convex shapes.
type Result struct {
	// Distance is the separation between the shapes (0 when touching or
	// overlapping — Distance does not report penetration depth; call EPA
	// for that).
	Distance mathx.Scalar
	// ClosestA and ClosestB are the witness points on each shape's
	// surface realizing Distance, in the same frame the caller's support
	// functions operate in.
	ClosestA, ClosestB mathx.Vec3
	// Intersecting is true when GJK found the origin inside the
	// Minkowski difference (the shapes overlap); Distance is then 0 and
	// the witness points are not meaningful on their own — the caller
	// should follow up with EPA using the terminal simplex from
	// Intersects instead.
	Intersecting bool
}

// Distance runs GJK using Johnson's subalgorithm (johnson.go) to find,
// for each iteration's simplex, the point closest to the origin and its
// supporting subset, recovering witness points on each shape from the
// simplex's barycentric weights. It terminates when a new support point
// fails to improve on the current closest distance by more than
// ProgressEpsilon, the standard GJK termination criterion: no direction
// remains that would bring the Minkowski difference boundary closer to
// the origin.
//
// supportA and supportB are kept separate, rather than pre-combined into
// a MinkowskiSupport, because Distance needs each shape's own support
// point to recover witness points; a combined support function would
// have already discarded that information.
func Distance(supportA, supportB SupportFn, initialDir mathx.Vec3) Result {
	dir := initialDir
	if mathx.NearZero(dir, 1e-8) {
		dir = mathx.Vec3{1, 0, 0}
	}

	var simplex Simplex
	var onA, onB [4]mathx.Vec3

	push := func(d mathx.Vec3) {
		a := supportA(d)
		b := supportB(d.Mul(-1))
		onA[simplex.Count] = a
		onB[simplex.Count] = b
		simplex.Push(a.Sub(b))
	}

	push(dir)
	closest := simplex.Points[0]
	bestDist := closest.Dot(closest)

	for i := 0; i < MaxGJKIterations; i++ {
		if bestDist < DefaultEpsilon {
			return Result{Intersecting: true}
		}

		searchDir := closest.Mul(-1)
		if mathx.NearZero(searchDir, 1e-12) {
			return Result{Intersecting: true}
		}

		newA := supportA(searchDir)
		newB := supportB(searchDir.Mul(-1))
		newPoint := newA.Sub(newB)

		if bestDist+newPoint.Dot(searchDir) < ProgressEpsilon*searchDir.Len() {
			return witnessResult(&simplex, onA, onB, bestDist)
		}

		onA[simplex.Count] = newA
		onB[simplex.Count] = newB
		simplex.Push(newPoint)

		newClosest, weights := ClosestPointOnSimplex(&simplex)
		compactWitness(&simplex, &onA, &onB, weights)

		closest = newClosest
		bestDist = closest.Dot(closest)

		if simplex.Count == 4 {
			return Result{Intersecting: true}
		}
	}

	return witnessResult(&simplex, onA, onB, bestDist)
}

// compactWitness keeps the per-shape witness-point arrays in lockstep
// with simplex.Points after ClosestPointOnSimplex compacts the simplex
// down to its surviving subset, by matching each surviving Minkowski
// point back to the onA/onB pair that produced it.
func compactWitness(simplex *Simplex, onA, onB *[4]mathx.Vec3, weights [4]mathx.Scalar) {
	_ = weights
	var newA, newB [4]mathx.Vec3
	var used [4]bool
	for i := 0; i < simplex.Count; i++ {
		for j := 0; j < 4; j++ {
			if used[j] {
				continue
			}
			if onA[j].Sub(onB[j]).Sub(simplex.Points[i]).Len() < 1e-9 {
				newA[i] = onA[j]
				newB[i] = onB[j]
				used[j] = true
				break
			}
		}
	}
	*onA = newA
	*onB = newB
}

func witnessResult(simplex *Simplex, onA, onB [4]mathx.Vec3, bestDist mathx.Scalar) Result {
	_, weights := ClosestPointOnSimplex(simplex)

	var wa, wb mathx.Vec3
	for i := 0; i < simplex.Count; i++ {
		wa = wa.Add(onA[i].Mul(weights[i]))
		wb = wb.Add(onB[i].Mul(weights[i]))
	}

	dist := mathx.Scalar(0)
	if bestDist > 0 {
		dist = math.Sqrt(float64(bestDist))
	}

	return Result{
		Distance: dist,
		ClosestA: wa,
		ClosestB: wb,
	}
}
