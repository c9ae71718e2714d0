package partition

import (
	"container/heap"

	"github.com/go-collide/collide/pkg/bv"
)

// CostFn computes a lower-bound cost for a bounding volume and an exact
// cost+result pair for a leaf. Grounded directly on
// original_source/ncollide_entities/partitioning/bvt_cost_fn.rs's
// BVTCostFn trait (compute_bv_cost / compute_b_cost), which this ports to
// Go nearly verbatim in shape: a bound that can be computed cheaply for
// pruning, and an exact value computed only for leaves that survive
// pruning.
//
// R is the extra result payload carried alongside the best leaf found (for
// example, the closest point on a shape, alongside the distance used to
// rank candidates).
type CostFn[T Bounded, R any] interface {
	// ComputeBVCost returns a lower bound on the cost of anything inside
	// bounds, or ok=false if this subtree can never improve on the best
	// cost found so far (pruning it entirely).
	ComputeBVCost(bounds bv.AABB) (cost float64, ok bool)
	// ComputeLeafCost returns the exact cost of a leaf and any extra
	// result to report for it, or ok=false if the leaf cannot be a valid
	// candidate at all.
	ComputeLeafCost(leaf T) (cost float64, result R, ok bool)
}

type bestFirstItem[T Bounded] struct {
	cost float64
	n    *node[T]
}

type bestFirstHeap[T Bounded] []bestFirstItem[T]

func (h bestFirstHeap[T]) Len() int            { return len(h) }
func (h bestFirstHeap[T]) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h bestFirstHeap[T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *bestFirstHeap[T]) Push(x interface{}) { *h = append(*h, x.(bestFirstItem[T])) }
func (h *bestFirstHeap[T]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// BestFirstSearch finds the leaf minimizing a CostFn's cost, descending
// subtrees in order of their lower-bound cost via a min-heap (best-first
// search), the standard way to answer "nearest leaf" queries over a BVT
// without visiting every node.
func BestFirstSearch[T Bounded, R any](t *BVT[T], fn CostFn[T, R]) (best T, result R, found bool) {
	if t.root == nil {
		return best, result, false
	}

	h := &bestFirstHeap[T]{}
	if cost, ok := fn.ComputeBVCost(t.root.bounds); ok {
		heap.Push(h, bestFirstItem[T]{cost: cost, n: t.root})
	}

	bestCost := maxFloat
	for h.Len() > 0 {
		item := heap.Pop(h).(bestFirstItem[T])
		if item.cost >= bestCost {
			// Every remaining item in the heap has cost >= this one
			// (it's a min-heap), so nothing left can improve on bestCost.
			break
		}

		n := item.n
		if n.isLeaf() {
			for _, leaf := range n.leaves {
				if cost, r, ok := fn.ComputeLeafCost(leaf); ok && cost < bestCost {
					bestCost = cost
					best = leaf
					result = r
					found = true
				}
			}
			continue
		}

		if n.left != nil {
			if cost, ok := fn.ComputeBVCost(n.left.bounds); ok && cost < bestCost {
				heap.Push(h, bestFirstItem[T]{cost: cost, n: n.left})
			}
		}
		if n.right != nil {
			if cost, ok := fn.ComputeBVCost(n.right.bounds); ok && cost < bestCost {
				heap.Push(h, bestFirstItem[T]{cost: cost, n: n.right})
			}
		}
	}

	return best, result, found
}

const maxFloat = 1.7976931348623157e+308
