package pathfinding

import (
	"container/heap"
	"time"

	"hexpath/core"
)

// BidirectionalAStar runs two A*-style frontiers, one forward from the
// start and one backward from the goal, alternating expansions. The hex
// graph is undirected so both frontiers use the same adjacency.
//
// A discovered frontier intersection is only a candidate: the search keeps
// expanding until neither frontier's smallest remaining priority could
// improve on the best meeting cost, which is what makes the returned path
// provably optimal rather than merely the first one found.
type BidirectionalAStar struct{}

// NewBidirectionalAStar creates a bidirectional A* strategy.
func NewBidirectionalAStar() *BidirectionalAStar { return &BidirectionalAStar{} }

func (b *BidirectionalAStar) Name() string { return NameBidirectional }

func (b *BidirectionalAStar) Description() string {
	return "bidirectional A*, two frontiers meeting in the middle"
}

func (b *BidirectionalAStar) SupportsConcurrentExecution() bool { return true }

// frontier is one direction of the bidirectional search.
type frontier struct {
	open  *nodeQueue
	nodes map[core.Hex]*searchNode
	// target is what this frontier's heuristic aims at: the goal for the
	// forward frontier, the start for the backward one.
	target core.Hex
}

func newFrontier(origin, target core.Hex) *frontier {
	f := &frontier{open: &nodeQueue{}, nodes: make(map[core.Hex]*searchNode), target: target}
	heap.Init(f.open)
	node := &searchNode{hex: origin, hCost: origin.Distance(target)}
	node.fCost = node.hCost
	heap.Push(f.open, node)
	f.nodes[origin] = node
	return f
}

// minF is the smallest f-cost still on the frontier; maxInt when empty.
func (f *frontier) minF() int {
	if f.open.Len() == 0 {
		return int(^uint(0) >> 1)
	}
	return (*f.open)[0].fCost
}

// FindPath implements the Algorithm contract.
func (b *BidirectionalAStar) FindPath(g core.Grid, start, goal core.Hex, ctx *Context) *Result {
	began := time.Now()
	if res := checkEndpoints(g, start, goal, ctx); res != nil {
		res.ComputationTime = time.Since(began)
		return res
	}

	forward := newFrontier(start, goal)
	backward := newFrontier(goal, start)

	const noMeet = int(^uint(0) >> 1)
	bestCost := noMeet
	var meet core.Hex

	explored := 0
	budgetPruned := false
	expandForward := true

	for forward.open.Len() > 0 || backward.open.Len() > 0 {
		if ctx.cancelled() {
			res := failed(ReasonCancelled, explored)
			res.ComputationTime = time.Since(began)
			return res
		}
		// Optimality-proof stopping rule: no remaining node on either
		// frontier could begin a path cheaper than the best meeting.
		if bestCost != noMeet && forward.minF() >= bestCost && backward.minF() >= bestCost {
			break
		}
		explored++
		if explored > ctx.MaxSearchNodes {
			res := failed(ReasonNodeLimit, explored)
			res.ComputationTime = time.Since(began)
			return res
		}

		// Alternate frontiers, falling back to whichever still has work.
		side := forward
		other := backward
		if !expandForward || forward.open.Len() == 0 {
			side, other = backward, forward
		}
		if side.open.Len() == 0 {
			side, other = other, side
		}
		expandForward = !expandForward

		current := heap.Pop(side.open).(*searchNode)
		current.closed = true

		// A cell seen by both frontiers is a meeting candidate.
		if twin, ok := other.nodes[current.hex]; ok {
			cost := current.gCost + twin.gCost
			if ctx.MaxMovementPoints >= 0 && cost > ctx.MaxMovementPoints {
				budgetPruned = true
			} else if cost < bestCost {
				bestCost = cost
				meet = current.hex
			}
		}

		for _, neighbor := range g.Neighbors(current.hex) {
			if existing, ok := side.nodes[neighbor]; ok && existing.closed {
				continue
			}
			cell, ok := g.CellAt(neighbor)
			if !ok {
				continue
			}
			// The start cell is where the unit already stands; the
			// backward frontier may close the loop onto it even when
			// its occupancy would normally block entry.
			if neighbor != start && ctx.blocked(cell) {
				continue
			}

			// The frontier meets the shared cost model at the cell
			// being entered on the walk from start to goal: for the
			// backward frontier that is the cell stepped out of.
			stepped := cell
			if side == backward {
				curCell, _ := g.CellAt(current.hex)
				stepped = curCell
			}
			tentative := current.gCost + ctx.stepCost(stepped)
			if ctx.MaxMovementPoints >= 0 && tentative > ctx.MaxMovementPoints {
				budgetPruned = true
				continue
			}

			existing, ok := side.nodes[neighbor]
			if !ok {
				node := &searchNode{
					hex:    neighbor,
					gCost:  tentative,
					hCost:  neighbor.Distance(side.target),
					parent: current,
				}
				node.fCost = node.gCost + node.hCost
				heap.Push(side.open, node)
				side.nodes[neighbor] = node
			} else if tentative < existing.gCost {
				existing.gCost = tentative
				existing.fCost = existing.gCost + existing.hCost
				existing.parent = current
				heap.Fix(side.open, existing.index)
			}
		}
	}

	if bestCost == noMeet {
		reason := ReasonUnreachable
		if budgetPruned {
			reason = ReasonBudgetExceeded
		}
		res := failed(reason, explored)
		res.ComputationTime = time.Since(began)
		return res
	}

	res := &Result{
		Success:       true,
		Path:          joinAtMeeting(forward.nodes[meet], backward.nodes[meet]),
		TotalCost:     bestCost,
		NodesExplored: explored,
	}
	if ctx.StoreDiagnosticData {
		diagnostics(res, ctx, forward.nodes)
	}
	res.ComputationTime = time.Since(began)
	return res
}

// joinAtMeeting splices the two half-paths at the meeting cell. The
// forward chain reconstructs start-to-meet; the backward chain
// reconstructs goal-to-meet and is walked in reverse.
func joinAtMeeting(fwd, bwd *searchNode) []core.Hex {
	path := reconstruct(fwd)
	tail := reconstruct(bwd) // goal ... meet
	for i := len(tail) - 2; i >= 0; i-- {
		path = append(path, tail[i])
	}
	return path
}
