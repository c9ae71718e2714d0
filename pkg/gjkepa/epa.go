package gjkepa

import (
	"math"

	"github.com/go-collide/collide/pkg/mathx"
)

// EPAResult is the penetration recovered once GJK has proven two shapes
// overlap. Normal points from A toward B, the direction B must move to
// separate the shapes; Depth is always non-negative.
type EPAResult struct {
	Normal mathx.Vec3
	Depth  mathx.Scalar
	// PointOnA and PointOnB are witness points on each shape's surface
	// nearest the separating plane, for manifold seeding by
	// pkg/narrowphase.
	PointOnA, PointOnB mathx.Vec3
}

// face is one triangular facet of the expanding polytope: three indices
// into the polytope's point list, plus its precomputed outward normal
// and signed distance from the origin.
type face struct {
	a, b, c  int
	normal   mathx.Vec3
	distance mathx.Scalar
}

// Penetration runs the Expanding Polytope Algorithm starting from GJK's
// terminal tetrahedron (simplex, as left by Intersects when it returns
// true) to recover the minimum translation vector separating shape A
// from shape B. Ported from
// other_examples/ba6d09ec_akmonengine-feather__epa-epa.go.go's EPA/
// handleDegenerateSimplex/buildInitialFaces/findClosestFaceIndex/
// addPointAndRebuildFaces/snapNormalToAxis, generalized from a fixed
// RigidBody pair to this package's SupportFn abstraction and from a
// physics-engine ContactConstraint output to a plain normal+depth+witness
// result, leaving manifold construction to pkg/narrowphase.
func Penetration(supportA, supportB SupportFn, simplex Simplex) EPAResult {
	if simplex.Count < 4 {
		return degeneratePenetration(supportA, supportB, simplex)
	}

	points := make([]mathx.Vec3, 4)
	copy(points, simplex.Points[:4])
	faces := buildInitialFaces(points)

	for i := 0; i < MaxEPAIterations; i++ {
		if len(faces) == 0 {
			break
		}

		idx := findClosestFaceIndex(faces)
		closest := faces[idx]

		if closest.distance < EPAMinFaceDistance {
			faces = append(faces[:idx], faces[idx+1:]...)
			continue
		}

		a := supportA(closest.normal)
		b := supportB(closest.normal.Mul(-1))
		support := a.Sub(b)
		distance := support.Dot(closest.normal)

		if distance-closest.distance < EPAConvergenceTolerance {
			normal := snapNormalToAxis(closest.normal)
			pa, pb := witnessOnFace(points, closest, supportA, supportB)
			return EPAResult{Normal: normal, Depth: closest.distance, PointOnA: pa, PointOnB: pb}
		}

		points, faces = addPointAndRebuildFaces(points, faces, support, idx)
	}

	idx := findClosestFaceIndex(faces)
	closest := faces[idx]
	normal := snapNormalToAxis(closest.normal)
	pa, pb := witnessOnFace(points, closest, supportA, supportB)
	return EPAResult{Normal: normal, Depth: closest.distance, PointOnA: pa, PointOnB: pb}
}

// buildInitialFaces turns a tetrahedron's 4 points into its 4 triangular
// faces, each oriented with its normal pointing away from the
// tetrahedron's centroid (outward), matching the convention
// voronoi3d.go's tetrahedron reduction already establishes.
func buildInitialFaces(points []mathx.Vec3) []face {
	centroid := mathx.Zero3
	for _, p := range points {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(0.25)

	idxSets := [4][3]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}}
	faces := make([]face, 0, 4)
	for _, s := range idxSets {
		f := makeFace(points, s[0], s[1], s[2])
		if f.normal.Dot(points[s[0]].Sub(centroid)) < 0 {
			f = face{a: s[0], b: s[2], c: s[1]}
			f = makeFace(points, f.a, f.b, f.c)
		}
		faces = append(faces, f)
	}
	return faces
}

func makeFace(points []mathx.Vec3, a, b, c int) face {
	ab := points[b].Sub(points[a])
	ac := points[c].Sub(points[a])
	normal := ab.Cross(ac)
	normal = mathx.SafeNormalize(normal, mathx.Vec3{0, 1, 0})
	dist := normal.Dot(points[a])
	if dist < 0 {
		normal = normal.Mul(-1)
		dist = -dist
	}
	return face{a: a, b: b, c: c, normal: normal, distance: dist}
}

func findClosestFaceIndex(faces []face) int {
	best := 0
	bestDist := faces[0].distance
	for i := 1; i < len(faces); i++ {
		if faces[i].distance < bestDist {
			bestDist = faces[i].distance
			best = i
		}
	}
	return best
}

// addPointAndRebuildFaces expands the polytope with a new support point
// using the standard horizon method: every face whose outward normal
// faces the new point is removed, and the new point is fanned against
// the resulting hole's boundary edges (each surviving face contributes an
// edge to the hole only where its neighbor was removed).
func addPointAndRebuildFaces(points []mathx.Vec3, faces []face, newPoint mathx.Vec3, seedIdx int) ([]mathx.Vec3, []face) {
	_ = seedIdx
	newIdx := len(points)
	points = append(points, newPoint)

	type edge struct{ a, b int }
	edgeCount := map[edge]int{}
	addEdge := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		edgeCount[edge{a, b}]++
	}

	kept := make([]face, 0, len(faces))
	for _, f := range faces {
		if f.normal.Dot(newPoint.Sub(points[f.a])) > 0 {
			addEdge(f.a, f.b)
			addEdge(f.b, f.c)
			addEdge(f.c, f.a)
		} else {
			kept = append(kept, f)
		}
	}

	horizon := make([]edge, 0)
	for e, count := range edgeCount {
		if count == 1 {
			horizon = append(horizon, e)
		}
	}

	for _, e := range horizon {
		kept = append(kept, makeFace(points, e.a, e.b, newIdx))
	}

	return points, kept
}

func witnessOnFace(points []mathx.Vec3, f face, supportA, supportB SupportFn) (mathx.Vec3, mathx.Vec3) {
	pa := supportA(f.normal)
	pb := supportB(f.normal.Mul(-1))
	return pa, pb
}

// degeneratePenetration estimates penetration when GJK terminated with
// fewer than 4 simplex points: ported from feather's
// handleDegenerateSimplex, generalized to the SupportFn pair.
func degeneratePenetration(supportA, supportB SupportFn, simplex Simplex) EPAResult {
	if simplex.Count >= 2 {
		a := simplex.Points[0]
		b := simplex.Points[1]

		distA := math.Sqrt(a.Dot(a))
		distB := math.Sqrt(b.Dot(b))

		var penetration mathx.Scalar
		var normal mathx.Vec3
		if distA < distB {
			penetration = distA
			normal = mathx.SafeNormalize(a, mathx.Vec3{0, 1, 0})
		} else {
			penetration = distB
			normal = mathx.SafeNormalize(b, mathx.Vec3{0, 1, 0})
		}

		pa := supportA(normal)
		pb := supportB(normal.Mul(-1))
		return EPAResult{Normal: normal, Depth: penetration, PointOnA: pa, PointOnB: pb}
	}

	normal := mathx.Vec3{0, 1, 0}
	pa := supportA(normal)
	pb := supportB(normal.Mul(-1))
	return EPAResult{Normal: normal, Depth: DegeneratePenetrationEstimate, PointOnA: pa, PointOnB: pb}
}

// snapNormalToAxis clamps near-zero components of a contact normal to
// exactly zero and renormalizes, stabilizing axis-aligned contacts (box
// resting flat on a plane) against floating-point noise in the tangent
// directions.
func snapNormalToAxis(normal mathx.Vec3) mathx.Vec3 {
	const threshold = NormalSnapThreshold

	x, y, z := normal[0], normal[1], normal[2]
	if math.Abs(x) < threshold {
		x = 0
	}
	if math.Abs(y) < threshold {
		y = 0
	}
	if math.Abs(z) < threshold {
		z = 0
	}

	clamped := mathx.Vec3{x, y, z}
	length := math.Sqrt(clamped.Dot(clamped))
	if length > 1e-8 {
		return clamped.Mul(1.0 / length)
	}
	return mathx.Vec3{0, 1, 0}
}
