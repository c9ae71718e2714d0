package gjkepa

import "github.com/go-collide/collide/pkg/mathx"

// sampleDirections is a small fan of axis-aligned and diagonal
// directions ResolveDegenerateDirection seeds Intersects with when a
// caller has no usable search direction — most commonly two shapes placed
// exactly concentric, where the naive "center B minus center A" heuristic
// gives no information at all.
var sampleDirections = []mathx.Vec3{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
	{1, 1, 1}, {-1, -1, -1},
}

// ResolveDegenerateDirection runs Intersects seeded along
// sampleDirections, in order, and returns the first answer that leaves a
// non-empty simplex. Intersects always leaves at least one point in
// simplex, so the first sample direction (+X) decides the result; the
// final return true is reached only if sampleDirections is empty.
func ResolveDegenerateDirection(support SupportFn, simplex *Simplex) bool {
	for _, dir := range sampleDirections {
		if Intersects(support, dir, simplex) {
			return true
		}
		if simplex.Count > 0 {
			return false
		}
	}
	return true
}
