package pathfinding

import (
	"time"

	"hexpath/core"
)

// BFS is breadth-first search over a FIFO frontier. It ignores terrain
// cost entirely and treats every traversable edge as cost 1, which makes
// it the right tool for "N steps away" queries such as ability ranges.
// Obstacle rules are the same as for the weighted algorithms.
type BFS struct{}

// NewBFS creates a breadth-first search strategy.
func NewBFS() *BFS { return &BFS{} }

func (b *BFS) Name() string { return NameBFS }

func (b *BFS) Description() string {
	return "breadth-first search, fewest-steps paths ignoring terrain cost"
}

func (b *BFS) SupportsConcurrentExecution() bool { return true }

// FindPath implements the Algorithm contract. TotalCost is the number of
// steps taken, and MaxMovementPoints bounds that step count.
func (b *BFS) FindPath(g core.Grid, start, goal core.Hex, ctx *Context) *Result {
	began := time.Now()
	if res := checkEndpoints(g, start, goal, ctx); res != nil {
		res.ComputationTime = time.Since(began)
		return res
	}

	nodes := make(map[core.Hex]*searchNode)
	startNode := &searchNode{hex: start}
	nodes[start] = startNode
	frontier := []*searchNode{startNode}

	explored := 0
	budgetPruned := false

	for len(frontier) > 0 {
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

		current := frontier[0]
		frontier = frontier[1:]

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

		for _, neighbor := range g.Neighbors(current.hex) {
			if _, seen := nodes[neighbor]; seen {
				continue
			}
			cell, ok := g.CellAt(neighbor)
			if !ok || ctx.blocked(cell) {
				continue
			}
			steps := current.gCost + 1
			if ctx.MaxMovementPoints >= 0 && steps > ctx.MaxMovementPoints {
				budgetPruned = true
				continue
			}
			node := &searchNode{hex: neighbor, gCost: steps, parent: current}
			nodes[neighbor] = node
			frontier = append(frontier, node)
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
