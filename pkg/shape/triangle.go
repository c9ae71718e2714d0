package shape

import (
	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
)

// Triangle is a degenerate (zero-thickness) convex shape defined by three
// local-space vertices, the basic building block TriMesh composites.
type Triangle struct {
	A, B, C mathx.Vec3
}

func NewTriangle(a, b, c mathx.Vec3) Triangle { return Triangle{A: a, B: b, C: c} }

func (Triangle) Kind() Kind { return KindTriangle }

func (t Triangle) AABB(pose mathx.Isometry) bv.AABB {
	return bv.FromPoints(pose.TransformPoint(t.A), pose.TransformPoint(t.B), pose.TransformPoint(t.C))
}

func (t Triangle) BoundingSphere(pose mathx.Isometry) bv.BoundingSphere {
	return bv.FromAABB(t.AABB(pose))
}

func (t Triangle) LocalSupportPoint(dir mathx.Vec3) mathx.Vec3 {
	best, bestDot := t.A, t.A.Dot(dir)
	if d := t.B.Dot(dir); d > bestDot {
		best, bestDot = t.B, d
	}
	if d := t.C.Dot(dir); d > bestDot {
		best, bestDot = t.C, d
	}
	return best
}

func (t Triangle) SupportPoint(pose mathx.Isometry, dir mathx.Vec3) mathx.Vec3 {
	local := pose.InverseTransformVector(dir)
	return pose.TransformPoint(t.LocalSupportPoint(local))
}

// Normal returns the triangle's outward face normal in local space,
// following the A,B,C winding order.
func (t Triangle) Normal() mathx.Vec3 {
	return mathx.SafeNormalize(t.B.Sub(t.A).Cross(t.C.Sub(t.A)), mathx.Vec3{0, 1, 0})
}

func (t Triangle) ProjectPoint(pose mathx.Isometry, p mathx.Vec3, _ bool) (mathx.Vec3, bool) {
	local := pose.InverseTransformPoint(p)
	return pose.TransformPoint(closestPointOnTriangle(local, t.A, t.B, t.C)), false
}

// closestPointOnTriangle is the standard barycentric-region closest-point
// test (Ericson, "Real-Time Collision Detection" 5.1.5), used both here
// and by narrow-phase triangle generators.
func closestPointOnTriangle(p, a, b, c mathx.Vec3) mathx.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}
