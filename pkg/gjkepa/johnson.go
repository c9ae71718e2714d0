package gjkepa

import "github.com/go-collide/collide/pkg/mathx"

// johnsonResult holds one candidate subset's closest point, its
// barycentric weights, and which original simplex indices it spans. This
// is Johnson's distance subalgorithm, the classical alternative to the
// pure-Voronoi reduction in voronoi3d.go: where the Voronoi path only
// needs a boolean containment result, this one recovers the actual
// closest point and barycentric weights, which GJK-distance queries
// (pkg/query's SupportMapSupportMap distance kernel) and EPA's initial
// polytope seeding both need.
type johnsonResult struct {
	closest mathx.Vec3
	weights [4]mathx.Scalar
	count   int
	indices [4]int
}

// ClosestPointOnSimplex reduces simplex to the sub-simplex closest to the
// origin and returns that point together with its barycentric weights
// over the surviving points. It mutates simplex in place, compacting it
// down to the surviving subset, mirroring how feather's GJK loop discards
// points that fall outside the current Voronoi region.
func ClosestPointOnSimplex(simplex *Simplex) (mathx.Vec3, [4]mathx.Scalar) {
	best := bestSubset(simplex)

	var compacted Simplex
	var weights [4]mathx.Scalar
	for i := 0; i < best.count; i++ {
		compacted.Points[i] = simplex.Points[best.indices[i]]
		weights[i] = best.weights[i]
	}
	compacted.Count = best.count
	*simplex = compacted

	return best.closest, weights
}

// bestSubset tries every non-empty subset of simplex's points (at most 15
// for a tetrahedron) and returns the one whose affine combination is both
// a valid convex combination (all weights non-negative, Johnson's
// criterion) and closest to the origin. Exhaustive subset search is
// acceptable here: four points is a small enough constant that clarity
// beats a hand-rolled incremental Johnson state machine.
func bestSubset(simplex *Simplex) johnsonResult {
	n := simplex.Count
	var best johnsonResult
	bestDist := maxFloat

	for mask := 1; mask < (1 << n); mask++ {
		var indices [4]int
		count := 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				indices[count] = i
				count++
			}
		}

		weights, ok := affineWeights(simplex, indices[:count])
		if !ok {
			continue
		}

		point := mathx.Zero3
		for k := 0; k < count; k++ {
			point = point.Add(simplex.Points[indices[k]].Mul(weights[k]))
		}

		dist := point.Dot(point)
		if dist < bestDist {
			bestDist = dist
			best = johnsonResult{closest: point, count: count}
			for k := 0; k < count; k++ {
				best.indices[k] = indices[k]
				best.weights[k] = weights[k]
			}
		}
	}

	if best.count == 0 {
		best.closest = simplex.Points[0]
		best.weights[0] = 1
		best.indices[0] = 0
		best.count = 1
	}

	return best
}

// affineWeights computes the barycentric weights of the point in the
// affine hull of the given point indices that is closest to the origin,
// rejecting the subset (ok=false) if any weight would be negative — the
// closest point on that subset's hull then lies outside the subset's
// actual convex span, so a smaller subset must be tried instead.
//
// The closest point X = p0 + sum_i t_i*(p_i - p0) is found by requiring
// the residual X (measured from the origin) be orthogonal to every edge
// vector d_i = p_i - p0, giving a small linear system in t:
//
//	sum_j (d_i . d_j) t_j = -d_i . p0
func affineWeights(simplex *Simplex, indices []int) ([]mathx.Scalar, bool) {
	k := len(indices)
	p0 := simplex.Points[indices[0]]

	if k == 1 {
		return []mathx.Scalar{1}, true
	}

	m := k - 1
	d := make([]mathx.Vec3, m)
	for i := 0; i < m; i++ {
		d[i] = simplex.Points[indices[i+1]].Sub(p0)
	}

	var gram [3][3]mathx.Scalar
	var rhs [3]mathx.Scalar
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			gram[i][j] = d[i].Dot(d[j])
		}
		rhs[i] = -d[i].Dot(p0)
	}

	t, ok := solveSmallLinear(m, gram, rhs)
	if !ok {
		return nil, false
	}

	weights := make([]mathx.Scalar, k)
	sum := mathx.Scalar(0)
	for i := 0; i < m; i++ {
		weights[i+1] = t[i]
		sum += t[i]
	}
	weights[0] = 1 - sum

	for _, w := range weights {
		if w < -1e-9 {
			return nil, false
		}
	}
	return weights, true
}

// solveSmallLinear solves the n x n system a*x = b (n <= 3) by Gaussian
// elimination with partial pivoting, reporting failure if a is singular
// to within tolerance (a degenerate simplex, e.g. three collinear points
// spanning a "triangle" subset).
func solveSmallLinear(n int, a [3][3]mathx.Scalar, b [3]mathx.Scalar) ([3]mathx.Scalar, bool) {
	var x [3]mathx.Scalar
	if n == 0 {
		return x, true
	}

	var m [3][4]mathx.Scalar
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m[i][j] = a[i][j]
		}
		m[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		best := abs(m[col][col])
		for row := col + 1; row < n; row++ {
			if v := abs(m[row][col]); v > best {
				best = v
				pivot = row
			}
		}
		if best < 1e-12 {
			return x, false
		}
		m[col], m[pivot] = m[pivot], m[col]

		for row := col + 1; row < n; row++ {
			factor := m[row][col] / m[col][col]
			for c := col; c <= n; c++ {
				m[row][c] -= factor * m[col][c]
			}
		}
	}

	for row := n - 1; row >= 0; row-- {
		sum := m[row][n]
		for c := row + 1; c < n; c++ {
			sum -= m[row][c] * x[c]
		}
		x[row] = sum / m[row][row]
	}

	return x, true
}

func abs(v mathx.Scalar) mathx.Scalar {
	if v < 0 {
		return -v
	}
	return v
}

const maxFloat = 1.0e300
