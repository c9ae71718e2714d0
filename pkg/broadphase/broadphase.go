// Package broadphase implements the DBVT-backed broad phase: proxy
// registration, loose-AABB tracking, and candidate-pair discovery,
// exactly as spec.md §4.H.
package broadphase

import (
	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/partition"
)

// ProxyHandle identifies a registered proxy. Stable across Update calls
// for as long as the proxy lives.
type ProxyHandle uint64

// proxyData is what the broad phase stores per leaf in the DBVT: just
// the handle (so a VisitAABB candidate can be matched back to its
// proxy) and the caller-supplied opaque data payload (in practice,
// pkg/world's CollisionObjectHandle). The DBVT itself is the source of
// truth for the leaf's loosened bounds, so no AABB is duplicated here.
type proxyData[D any] struct {
	handle ProxyHandle
	data   D
}

// Pair is one candidate pair the broad phase has found, with Started
// indicating whether this is a new overlap (true) or the end of a
// previously reported one (false) — spec.md §4.H's start/stop pair
// event model.
type Pair[D any] struct {
	A, B    ProxyHandle
	DataA   D
	DataB   D
	Started bool
}

// PairFilter decides whether a candidate pair should ever be reported,
// composed (AND) across every registered filter plus group filtering
// (spec.md §3/§4.H).
type PairFilter[D any] interface {
	IsPairValid(a, b D) bool
}

// PairFilterFunc adapts a plain function to PairFilter.
type PairFilterFunc[D any] func(a, b D) bool

func (f PairFilterFunc[D]) IsPairValid(a, b D) bool { return f(a, b) }

// BroadPhase is a DBVT-backed incremental broad phase generic over the
// opaque per-proxy data payload D.
type BroadPhase[D any] struct {
	tree    *partition.DBVT[proxyData[D]]
	proxies map[ProxyHandle]partition.LeafID
	nextID  ProxyHandle
	dirty   map[ProxyHandle]bool
	active  map[pairID]bool
}

type pairID struct{ a, b ProxyHandle }

func makePairID(a, b ProxyHandle) pairID {
	if a > b {
		a, b = b, a
	}
	return pairID{a, b}
}

// NewBroadPhase creates an empty broad phase. margin loosens every
// proxy's AABB by a fixed amount so small motions don't trigger a DBVT
// reinsertion every frame, matching pkg/partition.DBVT's own Margin
// field.
func NewBroadPhase[D any](margin float64) *BroadPhase[D] {
	return &BroadPhase[D]{
		tree:    partition.NewDBVT[proxyData[D]](margin),
		proxies: make(map[ProxyHandle]partition.LeafID),
		dirty:   make(map[ProxyHandle]bool),
		active:  make(map[pairID]bool),
	}
}

// CreateProxy registers a new proxy with the given tight AABB and opaque
// data, returning its handle.
func (bp *BroadPhase[D]) CreateProxy(aabb bv.AABB, data D) ProxyHandle {
	bp.nextID++
	handle := bp.nextID

	id := bp.tree.Insert(proxyData[D]{handle: handle, data: data}, aabb)
	bp.proxies[handle] = id
	bp.dirty[handle] = true
	return handle
}

// SetProxyBV requests an update to a proxy's tight AABB, applied on the
// next Update call (spec.md §4.H step 1). The DBVT only actually moves
// the leaf (and so only needs re-examining for new/lost pairs) when the
// tight AABB has escaped the leaf's current loosened bounds.
func (bp *BroadPhase[D]) SetProxyBV(handle ProxyHandle, aabb bv.AABB) {
	id, ok := bp.proxies[handle]
	if !ok {
		return
	}
	newID, changed := bp.tree.UpdateInPlace(id, aabb)
	bp.proxies[handle] = newID
	if changed {
		bp.dirty[handle] = true
	}
}

// Remove unregisters proxies, emitting an end-of-proximity pair event for
// every pair that was active and involved one of them.
func (bp *BroadPhase[D]) Remove(handles []ProxyHandle, emit func(Pair[D])) {
	removing := make(map[ProxyHandle]bool, len(handles))
	for _, h := range handles {
		removing[h] = true
	}

	for pid, ok := range bp.active {
		if !ok {
			continue
		}
		if removing[pid.a] || removing[pid.b] {
			dataA, _ := bp.Data(pid.a)
			dataB, _ := bp.Data(pid.b)
			emit(Pair[D]{A: pid.a, B: pid.b, DataA: dataA, DataB: dataB, Started: false})
			delete(bp.active, pid)
		}
	}

	for _, h := range handles {
		if id, ok := bp.proxies[h]; ok {
			bp.tree.Remove(id)
			delete(bp.proxies, h)
			delete(bp.dirty, h)
		}
	}
}

// Data returns the opaque payload registered for handle.
func (bp *BroadPhase[D]) Data(handle ProxyHandle) (D, bool) {
	var zero D
	id, ok := bp.proxies[handle]
	if !ok {
		return zero, false
	}
	leaf, _, ok := bp.tree.Leaf(id)
	if !ok {
		return zero, false
	}
	return leaf.data, true
}

// Update runs spec.md §4.H's three-step algorithm: for every proxy
// flagged dirty since the last call, re-collect its DBVT overlap
// candidates, filter them, and emit start/stop pair events for anything
// that changed.
func (bp *BroadPhase[D]) Update(filter PairFilter[D], emit func(Pair[D])) {
	for handle := range bp.dirty {
		id, ok := bp.proxies[handle]
		if !ok {
			continue
		}
		leaf, bounds, ok := bp.tree.Leaf(id)
		if !ok {
			continue
		}

		found := make(map[ProxyHandle]bool)
		bp.tree.VisitAABB(bounds, func(candidateID partition.LeafID, candidate proxyData[D]) bool {
			if candidateID == id {
				return true
			}
			if !filter.IsPairValid(leaf.data, candidate.data) {
				return true
			}
			found[candidate.handle] = true

			pid := makePairID(handle, candidate.handle)
			if !bp.active[pid] {
				bp.active[pid] = true
				emit(Pair[D]{A: handle, B: candidate.handle, DataA: leaf.data, DataB: candidate.data, Started: true})
			}
			return true
		})

		for pid := range bp.active {
			if pid.a != handle && pid.b != handle {
				continue
			}
			other := pid.b
			if other == handle {
				other = pid.a
			}
			if !found[other] {
				dataA, _ := bp.Data(pid.a)
				dataB, _ := bp.Data(pid.b)
				emit(Pair[D]{A: pid.a, B: pid.b, DataA: dataA, DataB: dataB, Started: false})
				delete(bp.active, pid)
			}
		}
	}

	bp.dirty = make(map[ProxyHandle]bool)
}
