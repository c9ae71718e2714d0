package partition

import (
	"container/heap"

	"github.com/go-collide/collide/pkg/bv"
)

// DBVTCostFn is CostFn's counterpart for a dynamic tree: the same
// lower-bound/exact-cost contract, but without requiring the leaf payload
// to implement Bounded, since a DBVT's nodes already carry their own
// bounds separately from the leaf value (see dbvtNode).
type DBVTCostFn[T any, R any] interface {
	ComputeBVCost(bounds bv.AABB) (cost float64, ok bool)
	ComputeLeafCost(leaf T) (cost float64, result R, ok bool)
}

type dbvtBestFirstItem struct {
	cost float64
	idx  int
}

type dbvtBestFirstHeap []dbvtBestFirstItem

func (h dbvtBestFirstHeap) Len() int            { return len(h) }
func (h dbvtBestFirstHeap) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h dbvtBestFirstHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *dbvtBestFirstHeap) Push(x interface{}) { *h = append(*h, x.(dbvtBestFirstItem)) }
func (h *dbvtBestFirstHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// DBVTBestFirstSearch is BestFirstSearch generalized to a dynamic tree,
// used by pkg/world's FirstInterferenceWithRay: the broad phase is
// DBVT-backed, so the "best-first search" spec.md calls for has to walk
// this tree rather than a static BVT.
func DBVTBestFirstSearch[T any, R any](d *DBVT[T], fn DBVTCostFn[T, R]) (best T, result R, found bool) {
	if d.root == noIndex {
		return best, result, false
	}

	h := &dbvtBestFirstHeap{}
	if cost, ok := fn.ComputeBVCost(d.nodes[d.root].bounds); ok {
		heap.Push(h, dbvtBestFirstItem{cost: cost, idx: d.root})
	}

	bestCost := maxFloat
	for h.Len() > 0 {
		item := heap.Pop(h).(dbvtBestFirstItem)
		if item.cost >= bestCost {
			break
		}

		n := &d.nodes[item.idx]
		if n.isLeaf() {
			if cost, r, ok := fn.ComputeLeafCost(n.leaf); ok && cost < bestCost {
				bestCost = cost
				best = n.leaf
				result = r
				found = true
			}
			continue
		}

		if cost, ok := fn.ComputeBVCost(d.nodes[n.left].bounds); ok && cost < bestCost {
			heap.Push(h, dbvtBestFirstItem{cost: cost, idx: n.left})
		}
		if cost, ok := fn.ComputeBVCost(d.nodes[n.right].bounds); ok && cost < bestCost {
			heap.Push(h, dbvtBestFirstItem{cost: cost, idx: n.right})
		}
	}

	return best, result, found
}
