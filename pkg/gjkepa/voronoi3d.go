package gjkepa

import "github.com/go-collide/collide/pkg/mathx"

// Intersects runs the boolean GJK loop: build a simplex of Minkowski-
// difference support points, reducing it toward the origin one Voronoi
// region at a time, until either the origin is enclosed (intersection)
// or a support point fails to pass the origin in the search direction
// (separation proven). Ported near-verbatim from
// other_examples/bdce12f2_akmonengine-feather__gjk-gjk.go.go's GJK/
// containsOrigin/line/triangle/tetrahedron, generalized from a fixed
// RigidBody pair to an arbitrary Minkowski support function, and from a
// fixed internal direction heuristic to one supplied by the caller (the
// vector from one shape's reference point to the other's, in whatever
// space support already operates in).
//
// When it returns true after a full tetrahedron step, simplex holds a
// 4-point tetrahedron enclosing the origin, the seed EPA needs to recover
// penetration depth. It also returns true with fewer points: 1 when the
// first support point is the origin, 2 when the origin lies on the
// current segment. Penetration handles those through
// degeneratePenetration.
func Intersects(support SupportFn, initialDir mathx.Vec3, simplex *Simplex) bool {
	simplex.Reset()

	direction := initialDir
	if mathx.NearZero(direction, 1e-8) {
		direction = mathx.Vec3{1, 0, 0}
	}

	simplex.Points[0] = support(direction)
	simplex.Count = 1

	direction = simplex.Points[0].Mul(-1)
	if mathx.NearZero(direction, 1e-16) {
		return true
	}

	for i := 0; i < MaxGJKIterations; i++ {
		newPoint := support(direction)

		if newPoint.Dot(direction) <= 0 {
			return false
		}

		simplex.Push(newPoint)

		if containsOrigin(simplex, &direction) {
			return true
		}
	}

	return false
}

func containsOrigin(simplex *Simplex, direction *mathx.Vec3) bool {
	switch simplex.Count {
	case 2:
		return voronoiLine(simplex, direction)
	case 3:
		return voronoiTriangle(simplex, direction)
	case 4:
		return voronoiTetrahedron(simplex, direction)
	}
	return false
}

func voronoiLine(simplex *Simplex, direction *mathx.Vec3) bool {
	a := simplex.Points[1]
	b := simplex.Points[0]
	ab := b.Sub(a)
	ao := a.Mul(-1)

	if ab.Dot(ab) < 1e-8 {
		if ao.Dot(ao) < 1e-8 {
			return true
		}
		simplex.Points[0] = a
		simplex.Count = 1
		*direction = ao
		return false
	}

	if ab.Dot(ao) <= 0 {
		simplex.Points[0] = a
		simplex.Count = 1
		*direction = ao
		return false
	}

	abPerp := ab.Cross(ao).Cross(ab)
	if abPerp.Dot(abPerp) < 1e-8 {
		return true
	}

	*direction = abPerp
	return false
}

func voronoiTriangle(simplex *Simplex, direction *mathx.Vec3) bool {
	a := simplex.Points[2]
	b := simplex.Points[1]
	c := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)

	abc := ab.Cross(ac)

	if abc.Dot(abc) < 1e-10 {
		simplex.Points[0] = b
		simplex.Points[1] = a
		simplex.Count = 2
		return voronoiLine(simplex, direction)
	}

	abPerp := ab.Cross(abc)
	if abPerp.Dot(ao) > 0 {
		simplex.Points[0] = b
		simplex.Points[1] = a
		simplex.Count = 2
		*direction = ab.Cross(ao).Cross(ab)
		return false
	}

	acPerp := abc.Cross(ac)
	if acPerp.Dot(ao) > 0 {
		simplex.Points[0] = c
		simplex.Points[1] = a
		simplex.Count = 2
		*direction = ac.Cross(ao).Cross(ac)
		return false
	}

	if abc.Dot(ao) > 0 {
		*direction = abc
	} else {
		simplex.Points[0] = a
		simplex.Points[1] = c
		simplex.Points[2] = b
		simplex.Count = 3
		*direction = abc.Mul(-1)
	}

	return false
}

func voronoiTetrahedron(simplex *Simplex, direction *mathx.Vec3) bool {
	a := simplex.Points[3]
	b := simplex.Points[2]
	c := simplex.Points[1]
	d := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	ao := a.Mul(-1)

	abc := ab.Cross(ac)
	if abc.Dot(ad) > 0 {
		abc = abc.Mul(-1)
	}

	acd := ac.Cross(ad)
	if acd.Dot(ab) > 0 {
		acd = acd.Mul(-1)
	}

	adb := ad.Cross(ab)
	if adb.Dot(ac) > 0 {
		adb = adb.Mul(-1)
	}

	if abc.Dot(abc) < 1e-10 || acd.Dot(acd) < 1e-10 || adb.Dot(adb) < 1e-10 {
		simplex.Points[0] = c
		simplex.Points[1] = b
		simplex.Points[2] = a
		simplex.Count = 3
		return voronoiTriangle(simplex, direction)
	}

	if abc.Dot(ao) > 0 {
		simplex.Points[0] = c
		simplex.Points[1] = b
		simplex.Points[2] = a
		simplex.Count = 3
		return voronoiTriangle(simplex, direction)
	}

	if acd.Dot(ao) > 0 {
		simplex.Points[0] = d
		simplex.Points[1] = c
		simplex.Points[2] = a
		simplex.Count = 3
		return voronoiTriangle(simplex, direction)
	}

	if adb.Dot(ao) > 0 {
		simplex.Points[0] = b
		simplex.Points[1] = d
		simplex.Points[2] = a
		simplex.Count = 3
		return voronoiTriangle(simplex, direction)
	}

	return true
}
