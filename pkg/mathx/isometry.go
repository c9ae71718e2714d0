package mathx

import "github.com/go-gl/mathgl/mgl64"

// Isometry is a rigid transform: a rotation followed by a translation. Every
// shape query that needs a pose (support mapping, AABB computation,
// ray-casting) takes an Isometry rather than a raw matrix, since rigid
// transforms are the only ones this module's shapes ever undergo.
type Isometry struct {
	Rotation    mgl64.Quat
	Translation Vec3
}

// Identity is the isometry that leaves points and vectors unchanged.
var Identity = Isometry{Rotation: mgl64.QuatIdent(), Translation: Zero3}

// Translation builds an isometry that only translates, with identity
// rotation. Useful for 2D callers who only ever move shapes in the XY plane.
func Translation(t Vec3) Isometry {
	return Isometry{Rotation: mgl64.QuatIdent(), Translation: t}
}

// FromRotationTranslation builds an isometry from a quaternion and offset.
func FromRotationTranslation(rot mgl64.Quat, t Vec3) Isometry {
	return Isometry{Rotation: rot, Translation: t}
}

// TransformPoint maps a point from local shape space into world space.
func (iso Isometry) TransformPoint(p Vec3) Vec3 {
	return iso.Rotation.Rotate(p).Add(iso.Translation)
}

// InverseTransformPoint maps a point from world space back into local shape
// space. Support-mapping and ray-casting routines both work in local space,
// so every query pushes the world-space ray or point through this first.
func (iso Isometry) InverseTransformPoint(p Vec3) Vec3 {
	return iso.Rotation.Conjugate().Rotate(p.Sub(iso.Translation))
}

// TransformVector rotates a direction vector into world space, ignoring
// translation.
func (iso Isometry) TransformVector(v Vec3) Vec3 {
	return iso.Rotation.Rotate(v)
}

// InverseTransformVector rotates a direction vector from world space back
// into local space, ignoring translation.
func (iso Isometry) InverseTransformVector(v Vec3) Vec3 {
	return iso.Rotation.Conjugate().Rotate(v)
}

// RotateVector is an alias for TransformVector kept distinct because call
// sites that only care about orientation (e.g. applying a normal) read
// better naming the operation than naming the isometry method again.
func (iso Isometry) RotateVector(v Vec3) Vec3 {
	return iso.TransformVector(v)
}

// AbsoluteTransformVector rotates v into world space and takes the
// component-wise absolute value of the resulting basis application. Used by
// AABB computation: the half-extents of an oriented box, rotated, bound the
// box regardless of rotation sign, per the standard OBB-to-AABB conversion.
func (iso Isometry) AbsoluteTransformVector(v Vec3) Vec3 {
	m := iso.Rotation.Mat4()
	absRow := func(i int) Vec3 {
		return Vec3{abs(m.At(i, 0)), abs(m.At(i, 1)), abs(m.At(i, 2))}
	}
	r0, r1, r2 := absRow(0), absRow(1), absRow(2)
	return Vec3{
		r0[0]*abs(v[0]) + r0[1]*abs(v[1]) + r0[2]*abs(v[2]),
		r1[0]*abs(v[0]) + r1[1]*abs(v[1]) + r1[2]*abs(v[2]),
		r2[0]*abs(v[0]) + r2[1]*abs(v[1]) + r2[2]*abs(v[2]),
	}
}

// Inverse returns the isometry that undoes iso.
func (iso Isometry) Inverse() Isometry {
	inv := iso.Rotation.Conjugate()
	return Isometry{
		Rotation:    inv,
		Translation: inv.Rotate(iso.Translation.Mul(-1)),
	}
}

// Mul composes two isometries: (a.Mul(b)).TransformPoint(p) equals
// a.TransformPoint(b.TransformPoint(p)).
func (a Isometry) Mul(b Isometry) Isometry {
	return Isometry{
		Rotation:    a.Rotation.Mul(b.Rotation),
		Translation: a.Rotation.Rotate(b.Translation).Add(a.Translation),
	}
}

func abs(x Scalar) Scalar {
	if x < 0 {
		return -x
	}
	return x
}
