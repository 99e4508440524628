package pathfinding

import (
	"fmt"
	"strings"
	"time"

	"hexpath/core"
)

// Failure reasons. Search failures are expected outcomes, not Go errors:
// every public operation returns a result whose Success and FailureReason
// fully describe what happened.
const (
	ReasonInvalidEndpoint    = "start or goal is not on the grid"
	ReasonGoalNotTraversable = "goal not traversable"
	ReasonUnreachable        = "goal unreachable"
	ReasonBudgetExceeded     = "movement budget exceeded"
	ReasonNodeLimit          = "node exploration budget exceeded"
	ReasonCancelled          = "cancelled"
)

// Result is the outcome of a single search. It is immutable once returned;
// the cache hands the same instance to multiple callers.
type Result struct {
	Success bool
	// Path is the ordered cell sequence from start to goal inclusive.
	// Empty on failure.
	Path []core.Hex
	// TotalCost is the sum of effective per-step costs along Path.
	TotalCost     int
	NodesExplored int
	// ComputationTime is how long the algorithm ran, excluding cache
	// lookups.
	ComputationTime time.Duration
	FailureReason   string

	// CostMap and CameFrom are populated only when the context asked for
	// diagnostic data.
	CostMap  map[core.Hex]int
	CameFrom map[core.Hex]core.Hex
}

// failed builds a failure result.
func failed(reason string, explored int) *Result {
	return &Result{FailureReason: reason, NodesExplored: explored}
}

// trivial builds the zero-length success result for start == goal.
func trivial(start core.Hex) *Result {
	return &Result{Success: true, Path: []core.Hex{start}}
}

// Touches reports whether the path visits the given cell.
func (r *Result) Touches(h core.Hex) bool {
	for _, p := range r.Path {
		if p == h {
			return true
		}
	}
	return false
}

// String renders a one-line summary for logs and the demo command.
func (r *Result) String() string {
	if !r.Success {
		return fmt.Sprintf("no path (%s, %d nodes, %v)", r.FailureReason, r.NodesExplored, r.ComputationTime)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "path cost=%d len=%d (%d nodes, %v): ", r.TotalCost, len(r.Path), r.NodesExplored, r.ComputationTime)
	for i, h := range r.Path {
		if i > 0 {
			b.WriteString(" -> ")
		}
		b.WriteString(h.String())
	}
	return b.String()
}

// MultiTurnResult is a path segmented into per-turn moves.
type MultiTurnResult struct {
	Success       bool
	FailureReason string

	// CompletePath is the unrestricted path the segmentation was derived
	// from. Concatenating PathPerTurn (dropping the duplicated boundary
	// cell at each seam) reproduces it exactly.
	CompletePath []core.Hex
	// TotalCost sums the effective step costs along CompletePath; the
	// per-turn costs always add up to it.
	TotalCost int

	// PathPerTurn[i] is the cells visited during turn i, starting at the
	// previous turn's endpoint.
	PathPerTurn [][]core.Hex
	// CostPerTurn[i] is the movement spent in turn i. It exceeds the
	// per-turn budget only for a single step that alone costs more than
	// a full turn.
	CostPerTurn   []int
	TurnEndpoints []core.Hex
	TurnsRequired int
}

// String renders a one-line summary.
func (r *MultiTurnResult) String() string {
	if !r.Success {
		return fmt.Sprintf("no multi-turn path (%s)", r.FailureReason)
	}
	return fmt.Sprintf("multi-turn path: %d turns, cost %v, total %d",
		r.TurnsRequired, r.CostPerTurn, r.TotalCost)
}
