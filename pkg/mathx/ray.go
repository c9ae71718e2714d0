package mathx

// Ray is a half-line used by ray-cast queries. Kept the same shape as the
// teacher's core.Ray (Origin/Direction/At) since there's nothing about this
// idiom that needed to change moving to mgl64-backed vectors.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// NewRay builds a ray from an origin and direction. The direction is not
// normalized; callers that need unit-length directions normalize
// themselves, since TOI parameterization is sometimes more convenient with
// an unnormalized direction (e.g. "the vector from A to B").
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: dir}
}

// At returns the point reached by travelling t units of Dir from Origin.
func (r Ray) At(t Scalar) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Transform pushes a ray by an isometry, used to move a world-space ray
// into a shape's local space before running its kernel.
func (r Ray) Transform(iso Isometry) Ray {
	return Ray{
		Origin: iso.TransformPoint(r.Origin),
		Dir:    iso.TransformVector(r.Dir),
	}
}

// InverseTransform is the dual of Transform: it moves a world-space ray
// into local space via iso's inverse.
func (r Ray) InverseTransform(iso Isometry) Ray {
	return Ray{
		Origin: iso.InverseTransformPoint(r.Origin),
		Dir:    iso.InverseTransformVector(r.Dir),
	}
}

// RayIntersection describes where and how a ray met a shape.
type RayIntersection struct {
	// TOI is the ray parameter at the hit point: hit point = ray.At(TOI).
	TOI Scalar
	// Normal is the outward surface normal at the hit point, in the same
	// space the ray was expressed in.
	Normal Vec3
	// UV carries surface parameterization when the shape supports it
	// (currently only meaningful for a handful of primitives); nil
	// otherwise.
	UV *Vec2
}
