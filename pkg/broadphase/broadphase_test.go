package broadphase

import (
	"testing"

	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/mathx"
)

func box(cx, cy, cz float64) bv.AABB {
	return bv.FromCenterHalfExtents(mathx.Vec3{cx, cy, cz}, mathx.Vec3{0.5, 0.5, 0.5})
}

func TestBroadPhaseEmitsStartOnOverlap(t *testing.T) {
	bp := NewBroadPhase[string](0.1)
	a := bp.CreateProxy(box(0, 0, 0), "a")
	b := bp.CreateProxy(box(0.5, 0, 0), "b")

	var pairs []Pair[string]
	bp.Update(PairFilterFunc[string](func(a, b string) bool { return true }), func(p Pair[string]) {
		pairs = append(pairs, p)
	})

	if len(pairs) != 2 {
		t.Fatalf("expected a start event from each proxy's dirty pass, got %d", len(pairs))
	}
	for _, p := range pairs {
		if !p.Started {
			t.Errorf("expected Started=true, got %+v", p)
		}
	}
	_ = a
	_ = b
}

func TestBroadPhaseEmitsStopWhenProxiesSeparate(t *testing.T) {
	bp := NewBroadPhase[string](0.1)
	a := bp.CreateProxy(box(0, 0, 0), "a")
	b := bp.CreateProxy(box(0.5, 0, 0), "b")

	accept := PairFilterFunc[string](func(a, b string) bool { return true })
	bp.Update(accept, func(Pair[string]) {})

	bp.SetProxyBV(b, box(100, 0, 0))

	var stopped bool
	bp.Update(accept, func(p Pair[string]) {
		if !p.Started {
			stopped = true
		}
	})
	if !stopped {
		t.Error("expected a stop event once the proxies no longer overlap")
	}
	_ = a
}

func TestBroadPhaseRemoveEmitsStop(t *testing.T) {
	bp := NewBroadPhase[string](0.1)
	a := bp.CreateProxy(box(0, 0, 0), "a")
	b := bp.CreateProxy(box(0.3, 0, 0), "b")

	accept := PairFilterFunc[string](func(a, b string) bool { return true })
	bp.Update(accept, func(Pair[string]) {})

	var stopped bool
	bp.Remove([]ProxyHandle{a}, func(p Pair[string]) {
		stopped = true
	})
	if !stopped {
		t.Error("expected Remove to emit a stop event for the active pair")
	}

	if _, ok := bp.Data(a); ok {
		t.Error("expected removed proxy's data to be gone")
	}
	_ = b
}

type nearestLeafCost struct{}

func (nearestLeafCost) ComputeBVCost(bounds bv.AABB) (float64, bool) {
	d := 0.0
	for axis := 0; axis < 3; axis++ {
		if bounds.Min[axis] > 0 {
			d += bounds.Min[axis] * bounds.Min[axis]
		} else if bounds.Max[axis] < 0 {
			d += bounds.Max[axis] * bounds.Max[axis]
		}
	}
	return d, true
}

func (nearestLeafCost) ComputeLeafCost(data string) (float64, string, bool) {
	if data == "near" {
		return 1, data, true
	}
	return 100, data, true
}

func TestBestFirstSearchFindsNearestProxy(t *testing.T) {
	bp := NewBroadPhase[string](0.1)
	bp.CreateProxy(box(10, 0, 0), "far")
	near := bp.CreateProxy(box(1, 0, 0), "near")

	handle, data, _, found := BestFirstSearch[string, string](bp, nearestLeafCost{})
	if !found {
		t.Fatal("expected to find a nearest proxy")
	}
	if handle != near || data != "near" {
		t.Errorf("expected the nearer proxy to win, got handle %d data %q", handle, data)
	}
}

func TestGroupsCanInteract(t *testing.T) {
	a := Groups{Membership: 0b0001, Whitelist: 0b0010}
	b := Groups{Membership: 0b0010, Whitelist: 0b0001}
	if !a.CanInteract(b) {
		t.Error("expected mutual whitelist membership to permit interaction")
	}

	c := Groups{Membership: 0b0100, Whitelist: 0b0010}
	if a.CanInteract(c) {
		t.Error("expected disjoint membership/whitelist to forbid interaction")
	}

	blacklisted := Groups{Membership: 0b0010, Whitelist: 0b0001, Blacklist: 0b0001}
	if blacklisted.CanInteract(a) {
		t.Error("expected blacklist to forbid interaction even with matching whitelist")
	}
}

// TestPairFilterHalvesOverlappingGroup reproduces four mutually-overlapping
// proxies (six candidate pairs) filtered down with a parity-based rule:
// only pairs whose two uids share parity survive. Of the four uids, two
// are even and two are odd, so exactly 2 of the 6 pairs pass.
func TestPairFilterHalvesOverlappingGroup(t *testing.T) {
	bp := NewBroadPhase[int](0.1)
	bp.CreateProxy(box(0, 0, 0), 0)
	bp.CreateProxy(box(0.1, 0, 0), 1)
	bp.CreateProxy(box(0.2, 0, 0), 2)
	bp.CreateProxy(box(0.3, 0, 0), 3)

	sameParity := PairFilterFunc[int](func(a, b int) bool { return a%2 == b%2 })

	var started []Pair[int]
	bp.Update(sameParity, func(p Pair[int]) {
		if p.Started {
			started = append(started, p)
		}
	})

	if len(started) != 2 {
		t.Fatalf("expected exactly 2 surviving pairs out of 6, got %d", len(started))
	}
}

func TestCompositeFilterRequiresAll(t *testing.T) {
	alwaysTrue := PairFilterFunc[int](func(a, b int) bool { return true })
	onlyEven := PairFilterFunc[int](func(a, b int) bool { return a%2 == 0 && b%2 == 0 })

	composite := NewCompositeFilter[int](alwaysTrue, onlyEven)
	if !composite.IsPairValid(2, 4) {
		t.Error("expected two even values to pass")
	}
	if composite.IsPairValid(2, 3) {
		t.Error("expected an odd value to fail the composite filter")
	}
}
