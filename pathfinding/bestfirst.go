package pathfinding

import (
	"container/heap"
	"time"

	"hexpath/core"
)

// BestFirst is greedy best-first search. It has the same structure as A*
// but orders the frontier purely by the heuristic, ignoring accumulated
// cost. It expands far fewer nodes than A* on open ground but is not
// optimal and can wander around concave obstacles.
type BestFirst struct{}

// NewBestFirst creates a greedy best-first search strategy.
func NewBestFirst() *BestFirst { return &BestFirst{} }

func (b *BestFirst) Name() string { return NameBestFirst }

func (b *BestFirst) Description() string {
	return "greedy best-first search, fast but not guaranteed optimal"
}

func (b *BestFirst) SupportsConcurrentExecution() bool { return true }

// FindPath implements the Algorithm contract.
func (b *BestFirst) FindPath(g core.Grid, start, goal core.Hex, ctx *Context) *Result {
	began := time.Now()
	if res := checkEndpoints(g, start, goal, ctx); res != nil {
		res.ComputationTime = time.Since(began)
		return res
	}

	openSet := &nodeQueue{}
	heap.Init(openSet)
	nodes := make(map[core.Hex]*searchNode)

	startNode := &searchNode{hex: start, hCost: start.Distance(goal)}
	// fCost carries only the heuristic so the shared heap greedily chases
	// the goal.
	startNode.fCost = startNode.hCost
	heap.Push(openSet, startNode)
	nodes[start] = startNode

	explored := 0
	budgetPruned := false

	for openSet.Len() > 0 {
		if ctx.cancelled() {
			res := failed(ReasonCancelled, explored)
			res.ComputationTime = time.Since(began)
			return res
		}
		explored++
		if explored > ctx.MaxSearchNodes {
			res := failed(ReasonNodeLimit, explored)
			res.ComputationTime = time.Since(began)
			return res
		}

		current := heap.Pop(openSet).(*searchNode)
		if current.hex == goal {
			res := &Result{
				Success:       true,
				Path:          reconstruct(current),
				TotalCost:     current.gCost,
				NodesExplored: explored,
			}
			diagnostics(res, ctx, nodes)
			res.ComputationTime = time.Since(began)
			return res
		}
		current.closed = true

		for _, neighbor := range g.Neighbors(current.hex) {
			if _, seen := nodes[neighbor]; seen {
				continue
			}
			cell, ok := g.CellAt(neighbor)
			if !ok || ctx.blocked(cell) {
				continue
			}
			gCost := current.gCost + ctx.stepCost(cell)
			if ctx.MaxMovementPoints >= 0 && gCost > ctx.MaxMovementPoints {
				budgetPruned = true
				continue
			}
			node := &searchNode{
				hex:    neighbor,
				gCost:  gCost,
				hCost:  neighbor.Distance(goal),
				parent: current,
			}
			node.fCost = node.hCost
			heap.Push(openSet, node)
			nodes[neighbor] = node
		}
	}

	reason := ReasonUnreachable
	if budgetPruned {
		reason = ReasonBudgetExceeded
	}
	res := failed(reason, explored)
	diagnostics(res, ctx, nodes)
	res.ComputationTime = time.Since(began)
	return res
}
