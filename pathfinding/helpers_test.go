package pathfinding

import (
	"testing"

	"hexpath/core"
	"hexpath/hexgrid"
)

// allAlgorithms returns one instance of each stock strategy.
func allAlgorithms() []Algorithm {
	return []Algorithm{
		NewAStar(),
		NewDijkstra(),
		NewBFS(),
		NewBidirectionalAStar(),
		NewBestFirst(),
		NewFlowField(),
	}
}

// assertValidPath checks the shared postconditions: endpoints, pairwise
// adjacency and the context's obstacle rules.
func assertValidPath(t *testing.T, g core.Grid, res *Result, start, goal core.Hex, ctx *Context) {
	t.Helper()
	if !res.Success {
		t.Fatalf("expected success, got failure: %s", res.FailureReason)
	}
	if len(res.Path) == 0 {
		t.Fatal("successful result has empty path")
	}
	if res.Path[0] != start {
		t.Errorf("path starts at %v, want %v", res.Path[0], start)
	}
	if res.Path[len(res.Path)-1] != goal {
		t.Errorf("path ends at %v, want %v", res.Path[len(res.Path)-1], goal)
	}
	for i := 1; i < len(res.Path); i++ {
		if res.Path[i-1].Distance(res.Path[i]) != 1 {
			t.Errorf("path not adjacent at %d: %v -> %v", i, res.Path[i-1], res.Path[i])
		}
		cell, ok := g.CellAt(res.Path[i])
		if !ok {
			t.Errorf("path cell %v not on grid", res.Path[i])
			continue
		}
		if ctx.blocked(cell) {
			t.Errorf("path enters blocked cell %v", res.Path[i])
		}
	}
}

// assertWeightedCost checks that TotalCost matches the terrain-weighted
// sum of per-step costs. BFS is exempt: it charges 1 per edge.
func assertWeightedCost(t *testing.T, g core.Grid, res *Result, ctx *Context) {
	t.Helper()
	if got := ctx.pathCost(g, res.Path); got != res.TotalCost {
		t.Errorf("TotalCost = %d, but step costs sum to %d", res.TotalCost, got)
	}
}

// bruteForceCost computes the true minimal path cost by exhaustive
// relaxation (Bellman-Ford over the whole map). Only for small test grids.
func bruteForceCost(m *hexgrid.Map, start, goal core.Hex, ctx *Context) (int, bool) {
	const inf = int(^uint(0) >> 1)
	dist := map[core.Hex]int{start: 0}
	for h := range m.Tiles {
		if h != start {
			dist[h] = inf
		}
	}
	for range m.Tiles {
		changed := false
		for h := range m.Tiles {
			if dist[h] == inf {
				continue
			}
			for _, n := range m.Neighbors(h) {
				cell, _ := m.CellAt(n)
				if ctx.blocked(cell) {
					continue
				}
				if nd := dist[h] + ctx.stepCost(cell); nd < dist[n] {
					dist[n] = nd
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	if dist[goal] == inf {
		return 0, false
	}
	return dist[goal], true
}

// lineMap builds a 1-row map of the given length, optionally with per-cell
// costs.
func lineMap(length int, costs ...int) *hexgrid.Map {
	m := hexgrid.NewParallelogram(length, 1)
	for i, c := range costs {
		m.Tile(core.Hex{Q: i, R: 0}).Cost = c
	}
	return m
}
