package pathfinding

import "hexpath/core"

// Observer receives fire-and-forget notifications about manager activity.
// Callbacks run synchronously on the goroutine that finalized the search;
// observers must not call back into the manager from inside a callback.
type Observer interface {
	PathFound(start, goal core.Hex, result *Result)
	PathFailed(start, goal core.Hex, result *Result)
	ReachableCellsCalculated(start core.Hex, cells []core.Hex)
}

// ObserverFuncs adapts plain functions to the Observer interface. Nil
// fields are skipped.
type ObserverFuncs struct {
	OnPathFound      func(start, goal core.Hex, result *Result)
	OnPathFailed     func(start, goal core.Hex, result *Result)
	OnReachableCells func(start core.Hex, cells []core.Hex)
}

func (o *ObserverFuncs) PathFound(start, goal core.Hex, result *Result) {
	if o.OnPathFound != nil {
		o.OnPathFound(start, goal, result)
	}
}

func (o *ObserverFuncs) PathFailed(start, goal core.Hex, result *Result) {
	if o.OnPathFailed != nil {
		o.OnPathFailed(start, goal, result)
	}
}

func (o *ObserverFuncs) ReachableCellsCalculated(start core.Hex, cells []core.Hex) {
	if o.OnReachableCells != nil {
		o.OnReachableCells(start, cells)
	}
}
