package bv

import (
	"github.com/go-collide/collide/pkg/mathx"
)

// BoundingSphere is a center+radius bounding volume, cheaper to merge and
// test than an AABB and used where the spec calls for a loosely-fitting
// volume (broad, fast rejection ahead of a tighter AABB or exact test).
type BoundingSphere struct {
	Center mathx.Vec3
	Radius float64
}

// FromAABB builds the bounding sphere circumscribing an AABB, the same
// "center plus corner distance" idiom the teacher's BVH uses to compute a
// finite-world bounding radius from its root AABB.
func FromAABB(a AABB) BoundingSphere {
	c := a.Center()
	return BoundingSphere{Center: c, Radius: a.Max.Sub(c).Len()}
}

// Merge returns the smallest sphere enclosing both s and other. When one
// sphere already contains the other the result is just the larger sphere;
// otherwise the new center lies on the line between the two centers,
// weighted so both spheres are internally tangent to the result.
func (s BoundingSphere) Merge(other BoundingSphere) BoundingSphere {
	d := other.Center.Sub(s.Center)
	dist := d.Len()

	if dist+other.Radius <= s.Radius {
		return s
	}
	if dist+s.Radius <= other.Radius {
		return other
	}

	newRadius := (dist + s.Radius + other.Radius) / 2
	if dist < 1e-12 {
		return BoundingSphere{Center: s.Center, Radius: newRadius}
	}
	newCenter := s.Center.Add(d.Mul((newRadius - s.Radius) / dist))
	return BoundingSphere{Center: newCenter, Radius: newRadius}
}

// Intersects reports whether two spheres overlap.
func (s BoundingSphere) Intersects(other BoundingSphere) bool {
	r := s.Radius + other.Radius
	d := s.Center.Sub(other.Center)
	return d.Dot(d) <= r*r
}

// Contains reports whether other lies entirely within s.
func (s BoundingSphere) Contains(other BoundingSphere) bool {
	d := s.Center.Sub(other.Center).Len()
	return d+other.Radius <= s.Radius
}

// Loosen inflates the sphere's radius by margin.
func (s BoundingSphere) Loosen(margin float64) BoundingSphere {
	return BoundingSphere{Center: s.Center, Radius: s.Radius + margin}
}

// AABB returns the tight AABB enclosing s.
func (s BoundingSphere) AABB() AABB {
	r := mathx.Vec3{s.Radius, s.Radius, s.Radius}
	return AABB{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

// DistanceToPoint returns the signed distance from p to the sphere's
// surface: negative when p is inside.
func (s BoundingSphere) DistanceToPoint(p mathx.Vec3) float64 {
	return s.Center.Sub(p).Len() - s.Radius
}
