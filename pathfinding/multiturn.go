package pathfinding

import "hexpath/core"

// SplitPath segments an unrestricted path into turns of at most
// movementPerTurn movement each. Per-step costs are walked in order and
// accumulated into the current turn; a step that would overflow the budget
// closes the turn and opens the next one.
//
// Turns measure movement points, so TotalCost is recomputed from the
// effective step costs rather than copied from the source result: a
// fewest-steps path priced at 1 per edge still splits, and sums, by what
// the steps actually cost.
//
// A single step whose cost alone exceeds movementPerTurn still consumes
// exactly one full turn by itself: the unit spends its whole turn entering
// that cell.
func SplitPath(g core.Grid, ctx *Context, result *Result, movementPerTurn int) *MultiTurnResult {
	if movementPerTurn <= 0 {
		return &MultiTurnResult{FailureReason: "movement per turn must be positive"}
	}
	if result == nil || !result.Success {
		reason := "no path to split"
		if result != nil && result.FailureReason != "" {
			reason = result.FailureReason
		}
		return &MultiTurnResult{FailureReason: reason}
	}

	out := &MultiTurnResult{
		Success:      true,
		CompletePath: result.Path,
	}
	if len(result.Path) < 2 {
		out.TurnsRequired = 0
		return out
	}

	segment := []core.Hex{result.Path[0]}
	segmentCost := 0
	for i := 1; i < len(result.Path); i++ {
		step := result.Path[i]
		cost := 1
		if cell, ok := g.CellAt(step); ok {
			cost = ctx.stepCost(cell)
		}
		if segmentCost > 0 && segmentCost+cost > movementPerTurn {
			out.PathPerTurn = append(out.PathPerTurn, segment)
			out.CostPerTurn = append(out.CostPerTurn, segmentCost)
			out.TurnEndpoints = append(out.TurnEndpoints, segment[len(segment)-1])
			segment = []core.Hex{result.Path[i-1]}
			segmentCost = 0
		}
		segment = append(segment, step)
		segmentCost += cost
		out.TotalCost += cost
	}
	out.PathPerTurn = append(out.PathPerTurn, segment)
	out.CostPerTurn = append(out.CostPerTurn, segmentCost)
	out.TurnEndpoints = append(out.TurnEndpoints, segment[len(segment)-1])
	out.TurnsRequired = len(out.PathPerTurn)
	return out
}
