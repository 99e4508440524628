package pathfinding

import (
	"container/heap"
	"time"

	"hexpath/core"
)

// AStar is heuristic best-first search using the hex-grid distance, which
// is admissible and consistent for per-step costs >= 1, so returned paths
// are cost-optimal.
type AStar struct{}

// NewAStar creates an A* search strategy.
func NewAStar() *AStar { return &AStar{} }

func (a *AStar) Name() string { return NameAStar }

func (a *AStar) Description() string {
	return "A* search, optimal paths via the hex-distance heuristic"
}

func (a *AStar) SupportsConcurrentExecution() bool { return true }

// FindPath implements the Algorithm contract.
func (a *AStar) FindPath(g core.Grid, start, goal core.Hex, ctx *Context) *Result {
	began := time.Now()
	if res := checkEndpoints(g, start, goal, ctx); res != nil {
		res.ComputationTime = time.Since(began)
		return res
	}

	openSet := &nodeQueue{}
	heap.Init(openSet)
	nodes := make(map[core.Hex]*searchNode)

	startNode := &searchNode{hex: start, hCost: start.Distance(goal)}
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
			if existing, ok := nodes[neighbor]; ok && existing.closed {
				continue
			}
			cell, ok := g.CellAt(neighbor)
			if !ok || ctx.blocked(cell) {
				continue
			}

			tentative := current.gCost + ctx.stepCost(cell)
			if ctx.MaxMovementPoints >= 0 && tentative > ctx.MaxMovementPoints {
				budgetPruned = true
				continue
			}

			existing, ok := nodes[neighbor]
			if !ok {
				node := &searchNode{
					hex:    neighbor,
					gCost:  tentative,
					hCost:  neighbor.Distance(goal),
					parent: current,
				}
				node.fCost = node.gCost + node.hCost
				heap.Push(openSet, node)
				nodes[neighbor] = node
			} else if tentative < existing.gCost {
				existing.gCost = tentative
				existing.fCost = existing.gCost + existing.hCost
				existing.parent = current
				heap.Fix(openSet, existing.index)
			}
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
