// Package pathfinding implements multi-algorithm search over a hexagonal
// cell graph: A*, Dijkstra, breadth-first, bidirectional A*, greedy
// best-first and flow fields, behind one shared contract, with result
// caching, movement budgets, multi-turn path splitting and cell
// reservation for multi-agent coordination.
package pathfinding

import "hexpath/core"

// Registered algorithm names.
const (
	NameAStar         = "astar"
	NameDijkstra      = "dijkstra"
	NameBFS           = "bfs"
	NameBidirectional = "bidirectional"
	NameBestFirst     = "bestfirst"
	NameFlowField     = "flowfield"
)

// Algorithm is the contract every search strategy implements.
//
// On success the returned path starts at start, ends at goal, consecutive
// entries are graph-adjacent, TotalCost is the sum of effective per-step
// costs and no path cell violates the context's obstacle rules. On failure
// Success is false, the path is empty and FailureReason is one of the
// Reason constants.
type Algorithm interface {
	FindPath(g core.Grid, start, goal core.Hex, ctx *Context) *Result

	Name() string
	Description() string
	// SupportsConcurrentExecution reports whether the algorithm touches
	// only pure grid and context data, making it safe to run off the
	// orchestrating goroutine.
	SupportsConcurrentExecution() bool
}

// checkEndpoints performs the shared precondition checks. It returns a
// non-nil result when the search is already decided: both failure cases
// and the trivial start == goal success.
func checkEndpoints(g core.Grid, start, goal core.Hex, ctx *Context) *Result {
	if g == nil {
		return failed(ReasonInvalidEndpoint, 0)
	}
	if _, ok := g.CellAt(start); !ok {
		return failed(ReasonInvalidEndpoint, 0)
	}
	goalCell, ok := g.CellAt(goal)
	if !ok {
		return failed(ReasonInvalidEndpoint, 0)
	}
	if start == goal {
		return trivial(start)
	}
	if ctx.blocked(goalCell) {
		return failed(ReasonGoalNotTraversable, 0)
	}
	return nil
}
