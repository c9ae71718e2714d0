package broadphase

import (
	"github.com/go-collide/collide/pkg/bv"
	"github.com/go-collide/collide/pkg/partition"
)

// CostFn is the nearest-candidate search contract used by BestFirstSearch:
// a lower-bound cost over a bounding volume, and an exact cost+result for
// a leaf's opaque data payload. Mirrors partition.CostFn/DBVTCostFn, but
// expressed over the broad phase's own D instead of its internal
// proxyData[D] wrapper, so callers (pkg/world's ray queries) never need
// to know the broad phase wraps its leaves at all.
type CostFn[D any, R any] interface {
	ComputeBVCost(bounds bv.AABB) (cost float64, ok bool)
	ComputeLeafCost(data D) (cost float64, result R, ok bool)
}

type costFnAdapter[D any, R any] struct {
	fn CostFn[D, R]
}

func (a costFnAdapter[D, R]) ComputeBVCost(bounds bv.AABB) (float64, bool) {
	return a.fn.ComputeBVCost(bounds)
}

func (a costFnAdapter[D, R]) ComputeLeafCost(leaf proxyData[D]) (float64, R, bool) {
	return a.fn.ComputeLeafCost(leaf.data)
}

// BestFirstSearch finds the proxy minimizing fn's cost, via a best-first
// search over the broad phase's DBVT (pkg/partition.DBVTBestFirstSearch),
// used by pkg/world's FirstInterferenceWithRay instead of a linear scan
// over every registered object.
func BestFirstSearch[D any, R any](bp *BroadPhase[D], fn CostFn[D, R]) (handle ProxyHandle, data D, result R, found bool) {
	leaf, result, found := partition.DBVTBestFirstSearch[proxyData[D], R](bp.tree, costFnAdapter[D, R]{fn: fn})
	if !found {
		return 0, data, result, false
	}
	return leaf.handle, leaf.data, result, true
}
