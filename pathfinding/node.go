package pathfinding

import "hexpath/core"

// searchNode is the transient per-cell state of one search. Nodes are
// allocated fresh for every search invocation, so algorithms are
// re-entrant and independent searches can run in parallel.
type searchNode struct {
	hex    core.Hex
	gCost  int // cost from start
	hCost  int // heuristic estimate to goal
	fCost  int // gCost + hCost
	parent *searchNode
	index  int // position in the heap, -1 when not enqueued
	closed bool
}

// nodeQueue is a binary min-heap of search nodes ordered by FCost,
// implementing container/heap. Nodes carry their heap index so an improved
// GCost can be pushed down with heap.Fix (decrease-key).
type nodeQueue []*searchNode

func (nq nodeQueue) Len() int { return len(nq) }

func (nq nodeQueue) Less(i, j int) bool {
	if nq[i].fCost != nq[j].fCost {
		return nq[i].fCost < nq[j].fCost
	}
	// Prefer nodes closer to the goal.
	if nq[i].hCost != nq[j].hCost {
		return nq[i].hCost < nq[j].hCost
	}
	// Final coordinate tie-break keeps extraction order, and therefore
	// returned paths, deterministic.
	return hexLess(nq[i].hex, nq[j].hex)
}

func (nq nodeQueue) Swap(i, j int) {
	nq[i], nq[j] = nq[j], nq[i]
	nq[i].index = i
	nq[j].index = j
}

func (nq *nodeQueue) Push(x interface{}) {
	node := x.(*searchNode)
	node.index = len(*nq)
	*nq = append(*nq, node)
}

func (nq *nodeQueue) Pop() interface{} {
	old := *nq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // avoid memory leak
	node.index = -1
	*nq = old[0 : n-1]
	return node
}

func hexLess(a, b core.Hex) bool {
	if a.Q != b.Q {
		return a.Q < b.Q
	}
	return a.R < b.R
}

// reconstruct walks parent pointers back from the goal node and returns
// the start-to-goal path.
func reconstruct(goal *searchNode) []core.Hex {
	length := 0
	for n := goal; n != nil; n = n.parent {
		length++
	}
	path := make([]core.Hex, length)
	for n := goal; n != nil; n = n.parent {
		length--
		path[length] = n.hex
	}
	return path
}

// diagnostics copies the cost-so-far and parent maps out of the node table
// when the context asked for them.
func diagnostics(res *Result, ctx *Context, nodes map[core.Hex]*searchNode) {
	if !ctx.StoreDiagnosticData {
		return
	}
	res.CostMap = make(map[core.Hex]int, len(nodes))
	res.CameFrom = make(map[core.Hex]core.Hex, len(nodes))
	for h, n := range nodes {
		res.CostMap[h] = n.gCost
		if n.parent != nil {
			res.CameFrom[h] = n.parent.hex
		}
	}
}
