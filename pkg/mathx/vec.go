// Package mathx is the vector and transform substrate shared by every
// geometry, partitioning, and query package in this module. It wraps
// github.com/go-gl/mathgl/mgl64 rather than rolling its own vector math so
// that rotation (quaternions), determinants, and matrix inversion all come
// from a maintained library instead of bespoke arithmetic.
package mathx

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Scalar is the floating point type used throughout the module. Every
// query, tolerance, and shape parameter is expressed in this type.
type Scalar = float64

// Vec2 and Vec3 are aliases for mgl64's vector types. 2D shapes are
// represented by embedding their coordinates into the XY plane of a Vec3
// (Z held at zero) rather than maintaining a parallel 2D pipeline.
type (
	Vec2 = mgl64.Vec2
	Vec3 = mgl64.Vec3
)

// Zero3 is the additive identity, spelled out because mgl64.Vec3{} already
// reads that way but call sites are clearer naming it.
var Zero3 = Vec3{0, 0, 0}

// DefaultEpsilon is the tolerance used by degenerate-direction fallbacks
// (SafeNormalize) and by the shapes' degenerate-support checks. GJK/EPA
// termination uses pkg/gjkepa's own tolerance constants instead.
const DefaultEpsilon Scalar = 1e-10

// NearZero reports whether v is within eps of the zero vector.
func NearZero(v Vec3, eps Scalar) bool {
	return v.Dot(v) <= eps*eps
}

// SafeNormalize normalizes v, falling back to `fallback` when v's length is
// too small to normalize reliably. GJK/EPA routinely produce near-zero
// search directions at degenerate simplex configurations, and silently
// returning NaN there would corrupt every downstream computation.
func SafeNormalize(v Vec3, fallback Vec3) Vec3 {
	lenSq := v.Dot(v)
	if lenSq < DefaultEpsilon*DefaultEpsilon {
		return fallback
	}
	return v.Mul(1 / math.Sqrt(lenSq))
}
