package pathfinding

import (
	"container/heap"
	"time"

	"hexpath/core"
)

// Dijkstra is uniform-cost search: A* with a zero heuristic. FindPath stops
// at the goal; Solve runs to exhaustion and answers distance and path
// queries for every reached cell without re-searching.
type Dijkstra struct{}

// NewDijkstra creates a Dijkstra search strategy.
func NewDijkstra() *Dijkstra { return &Dijkstra{} }

func (d *Dijkstra) Name() string { return NameDijkstra }

func (d *Dijkstra) Description() string {
	return "Dijkstra uniform-cost search, optimal paths and one-to-all cost fields"
}

func (d *Dijkstra) SupportsConcurrentExecution() bool { return true }

// FindPath implements the Algorithm contract.
func (d *Dijkstra) FindPath(g core.Grid, start, goal core.Hex, ctx *Context) *Result {
	began := time.Now()
	if res := checkEndpoints(g, start, goal, ctx); res != nil {
		res.ComputationTime = time.Since(began)
		return res
	}
	res := d.search(g, start, &goal, ctx).result(goal, ctx)
	res.ComputationTime = time.Since(began)
	return res
}

// DijkstraResult is the one-to-all cost field produced by Solve.
type DijkstraResult struct {
	Source        core.Hex
	Cost          map[core.Hex]int
	CameFrom      map[core.Hex]core.Hex
	NodesExplored int
	// BudgetPruned reports whether any cell was skipped because entering
	// it would exceed the movement budget.
	BudgetPruned bool
}

// CostTo returns the minimal cost from the source to the cell.
func (r *DijkstraResult) CostTo(h core.Hex) (int, bool) {
	c, ok := r.Cost[h]
	return c, ok
}

// PathTo extracts the source-to-cell path from the parent pointers.
func (r *DijkstraResult) PathTo(h core.Hex) ([]core.Hex, bool) {
	if _, ok := r.Cost[h]; !ok {
		return nil, false
	}
	length := 1
	for at := h; at != r.Source; at = r.CameFrom[at] {
		length++
	}
	path := make([]core.Hex, length)
	for at := h; ; at = r.CameFrom[at] {
		length--
		path[length] = at
		if at == r.Source {
			break
		}
	}
	return path, true
}

// Solve expands the whole searchable region around source, bounded by the
// context's movement and node budgets.
func (d *Dijkstra) Solve(g core.Grid, source core.Hex, ctx *Context) *DijkstraResult {
	if g == nil {
		return &DijkstraResult{Source: source, Cost: map[core.Hex]int{}, CameFrom: map[core.Hex]core.Hex{}}
	}
	if _, ok := g.CellAt(source); !ok {
		return &DijkstraResult{Source: source, Cost: map[core.Hex]int{}, CameFrom: map[core.Hex]core.Hex{}}
	}
	st := d.search(g, source, nil, ctx)
	out := &DijkstraResult{
		Source:        source,
		Cost:          make(map[core.Hex]int, len(st.nodes)),
		CameFrom:      make(map[core.Hex]core.Hex, len(st.nodes)),
		NodesExplored: st.explored,
		BudgetPruned:  st.budgetPruned,
	}
	for h, n := range st.nodes {
		out.Cost[h] = n.gCost
		if n.parent != nil {
			out.CameFrom[h] = n.parent.hex
		}
	}
	return out
}

// dijkstraState is the raw outcome of the cost-ordered expansion.
type dijkstraState struct {
	nodes        map[core.Hex]*searchNode
	explored     int
	budgetPruned bool
	hitNodeLimit bool
	cancelled    bool
	goalNode     *searchNode
}

// search runs cost-ordered expansion from start. With a goal it stops when
// the goal is finalized; with goal == nil it runs to exhaustion.
func (d *Dijkstra) search(g core.Grid, start core.Hex, goal *core.Hex, ctx *Context) *dijkstraState {
	st := &dijkstraState{nodes: make(map[core.Hex]*searchNode)}

	openSet := &nodeQueue{}
	heap.Init(openSet)
	startNode := &searchNode{hex: start}
	heap.Push(openSet, startNode)
	st.nodes[start] = startNode

	for openSet.Len() > 0 {
		if ctx.cancelled() {
			st.cancelled = true
			return st
		}
		st.explored++
		if st.explored > ctx.MaxSearchNodes {
			st.hitNodeLimit = true
			return st
		}

		current := heap.Pop(openSet).(*searchNode)
		if goal != nil && current.hex == *goal {
			st.goalNode = current
			return st
		}
		current.closed = true

		for _, neighbor := range g.Neighbors(current.hex) {
			if existing, ok := st.nodes[neighbor]; ok && existing.closed {
				continue
			}
			cell, ok := g.CellAt(neighbor)
			if !ok || ctx.blocked(cell) {
				continue
			}

			tentative := current.gCost + ctx.stepCost(cell)
			if ctx.MaxMovementPoints >= 0 && tentative > ctx.MaxMovementPoints {
				st.budgetPruned = true
				continue
			}

			existing, ok := st.nodes[neighbor]
			if !ok {
				node := &searchNode{hex: neighbor, gCost: tentative, fCost: tentative, parent: current}
				heap.Push(openSet, node)
				st.nodes[neighbor] = node
			} else if tentative < existing.gCost {
				existing.gCost = tentative
				existing.fCost = tentative
				existing.parent = current
				heap.Fix(openSet, existing.index)
			}
		}
	}
	return st
}

// result converts the expansion state into a single-goal Result.
func (st *dijkstraState) result(goal core.Hex, ctx *Context) *Result {
	switch {
	case st.cancelled:
		return failed(ReasonCancelled, st.explored)
	case st.hitNodeLimit:
		return failed(ReasonNodeLimit, st.explored)
	case st.goalNode == nil:
		reason := ReasonUnreachable
		if st.budgetPruned {
			reason = ReasonBudgetExceeded
		}
		res := failed(reason, st.explored)
		diagnostics(res, ctx, st.nodes)
		return res
	}
	res := &Result{
		Success:       true,
		Path:          reconstruct(st.goalNode),
		TotalCost:     st.goalNode.gCost,
		NodesExplored: st.explored,
	}
	diagnostics(res, ctx, st.nodes)
	return res
}
