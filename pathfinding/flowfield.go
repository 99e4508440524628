package pathfinding

import (
	"container/heap"
	"time"

	"hexpath/core"
)

// FlowField precomputes, for a single goal, a Dijkstra cost field over the
// whole searchable region and a per-cell best-neighbor pointer toward the
// goal. One flood fill then serves any number of units sharing that
// destination: extracting a unit's path is O(path length) instead of a
// full search per unit.
type FlowField struct{}

// NewFlowField creates a flow-field strategy.
func NewFlowField() *FlowField { return &FlowField{} }

func (f *FlowField) Name() string { return NameFlowField }

func (f *FlowField) Description() string {
	return "flow field, one goal-centered cost field shared by many units"
}

func (f *FlowField) SupportsConcurrentExecution() bool { return true }

// Field is a computed flow field. Cost holds each cell's minimal cost to
// the goal; Next points at the neighbor to move to from each cell.
type Field struct {
	Goal core.Hex
	Cost map[core.Hex]int
	Next map[core.Hex]core.Hex
	// NodesExplored is the size of the flood fill that built the field.
	NodesExplored int

	budgetPruned bool
	hitNodeCap   bool
}

// CostFrom returns the cost of moving from the cell to the goal.
func (f *Field) CostFrom(h core.Hex) (int, bool) {
	c, ok := f.Cost[h]
	return c, ok
}

// PathFrom follows best-neighbor pointers from the cell to the goal. It
// returns false for cells outside the generated field (unreachable within
// the field's budgets).
func (f *Field) PathFrom(h core.Hex) ([]core.Hex, bool) {
	if _, ok := f.Cost[h]; !ok {
		return nil, false
	}
	path := []core.Hex{h}
	for at := h; at != f.Goal; {
		next, ok := f.Next[at]
		if !ok {
			// Dead end: the field has no improving neighbor here.
			return nil, false
		}
		path = append(path, next)
		at = next
	}
	return path, true
}

// Build computes the field for a goal cell, bounded by the context's
// movement and node budgets. A nil field is returned when the goal is not
// on the grid or not traversable.
func (f *FlowField) Build(g core.Grid, goal core.Hex, ctx *Context) *Field {
	if g == nil {
		return nil
	}
	goalCell, ok := g.CellAt(goal)
	if !ok || ctx.blocked(goalCell) {
		return nil
	}

	field := &Field{
		Goal: goal,
		Cost: map[core.Hex]int{goal: 0},
		Next: make(map[core.Hex]core.Hex),
	}

	openSet := &nodeQueue{}
	heap.Init(openSet)
	nodes := make(map[core.Hex]*searchNode)
	goalNode := &searchNode{hex: goal}
	heap.Push(openSet, goalNode)
	nodes[goal] = goalNode

	for openSet.Len() > 0 {
		if ctx.cancelled() {
			return nil
		}
		field.NodesExplored++
		if field.NodesExplored > ctx.MaxSearchNodes {
			field.hitNodeCap = true
			break
		}

		current := heap.Pop(openSet).(*searchNode)
		current.closed = true
		// Entering the goal-ward walk from `current` costs the step out
		// of it, so the relaxation charges current's own step cost.
		currentCell, _ := g.CellAt(current.hex)
		outCost := ctx.stepCost(currentCell)

		for _, neighbor := range g.Neighbors(current.hex) {
			if existing, ok := nodes[neighbor]; ok && existing.closed {
				continue
			}
			cell, ok := g.CellAt(neighbor)
			if !ok || ctx.blocked(cell) {
				continue
			}
			tentative := current.gCost + outCost
			if ctx.MaxMovementPoints >= 0 && tentative > ctx.MaxMovementPoints {
				field.budgetPruned = true
				continue
			}

			existing, ok := nodes[neighbor]
			if !ok {
				node := &searchNode{hex: neighbor, gCost: tentative, fCost: tentative, parent: current}
				heap.Push(openSet, node)
				nodes[neighbor] = node
				field.Cost[neighbor] = tentative
				field.Next[neighbor] = current.hex
			} else if tentative < existing.gCost {
				existing.gCost = tentative
				existing.fCost = tentative
				existing.parent = current
				heap.Fix(openSet, existing.index)
				field.Cost[neighbor] = tentative
				field.Next[neighbor] = current.hex
			}
		}
	}
	return field
}

// stepOffBlockedStart handles a unit standing on a cell whose own occupancy
// or reservation kept it out of the field. The start is where the unit
// already stands, so its blocking must not strand it: the unit leaves by
// stepping onto the cheapest in-field neighbor and following the field from
// there. Ties break on coordinates so repeated queries stay deterministic.
func stepOffBlockedStart(g core.Grid, start core.Hex, field *Field, ctx *Context) ([]core.Hex, int, bool) {
	cell, ok := g.CellAt(start)
	if !ok || !ctx.blocked(cell) {
		return nil, 0, false
	}

	bestCost := -1
	var bestHex core.Hex
	for _, neighbor := range g.Neighbors(start) {
		fieldCost, ok := field.Cost[neighbor]
		if !ok {
			continue
		}
		neighborCell, ok := g.CellAt(neighbor)
		if !ok {
			continue
		}
		total := ctx.stepCost(neighborCell) + fieldCost
		if ctx.MaxMovementPoints >= 0 && total > ctx.MaxMovementPoints {
			field.budgetPruned = true
			continue
		}
		if bestCost < 0 || total < bestCost || (total == bestCost && hexLess(neighbor, bestHex)) {
			bestCost = total
			bestHex = neighbor
		}
	}
	if bestCost < 0 {
		return nil, 0, false
	}

	rest, ok := field.PathFrom(bestHex)
	if !ok {
		return nil, 0, false
	}
	return append([]core.Hex{start}, rest...), bestCost, true
}

// FindPath implements the Algorithm contract by building a field for the
// goal and reading the start cell's path out of it. Callers moving many
// units toward one goal should use Build once and PathFrom per unit
// instead.
func (f *FlowField) FindPath(g core.Grid, start, goal core.Hex, ctx *Context) *Result {
	began := time.Now()
	if res := checkEndpoints(g, start, goal, ctx); res != nil {
		res.ComputationTime = time.Since(began)
		return res
	}

	field := f.Build(g, goal, ctx)
	if field == nil {
		res := failed(ReasonCancelled, 0)
		res.ComputationTime = time.Since(began)
		return res
	}
	path, ok := field.PathFrom(start)
	cost := field.Cost[start]
	if !ok {
		path, cost, ok = stepOffBlockedStart(g, start, field, ctx)
	}
	if !ok {
		reason := ReasonUnreachable
		if field.budgetPruned {
			reason = ReasonBudgetExceeded
		} else if field.hitNodeCap {
			reason = ReasonNodeLimit
		}
		res := failed(reason, field.NodesExplored)
		res.ComputationTime = time.Since(began)
		return res
	}

	res := &Result{
		Success:       true,
		Path:          path,
		TotalCost:     cost,
		NodesExplored: field.NodesExplored,
	}
	if ctx.StoreDiagnosticData {
		res.CostMap = field.Cost
		res.CameFrom = field.Next
	}
	res.ComputationTime = time.Since(began)
	return res
}
