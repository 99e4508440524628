package pathfinding

import (
	"reflect"
	"testing"

	"hexpath/core"
	"hexpath/hexgrid"
)

// fixtures shared by the cross-algorithm property tests.
var contractFixtures = []struct {
	name        string
	grid        string
	start, goal core.Hex
}{
	{
		name:  "open field",
		grid:  "......\n......\n......\n......",
		start: core.Hex{Q: 0, R: 0},
		goal:  core.Hex{Q: 5, R: 3},
	},
	{
		name:  "wall with gap",
		grid:  "...X..\n...X..\n......\n...X..",
		start: core.Hex{Q: 0, R: 1},
		goal:  core.Hex{Q: 5, R: 1},
	},
	{
		name:  "varied terrain",
		grid:  ".23...\n.4.2..\n..3...\n......",
		start: core.Hex{Q: 0, R: 0},
		goal:  core.Hex{Q: 5, R: 2},
	},
	{
		name:  "concave pocket",
		grid:  "......\n.XXX..\n.X....\n.XXX..\n......",
		start: core.Hex{Q: 2, R: 2},
		goal:  core.Hex{Q: 0, R: 4},
	},
}

// Every algorithm must return a valid path on solvable queries.
func TestAllAlgorithmsReturnValidPaths(t *testing.T) {
	for _, fx := range contractFixtures {
		t.Run(fx.name, func(t *testing.T) {
			for _, algo := range allAlgorithms() {
				t.Run(algo.Name(), func(t *testing.T) {
					m := hexgrid.MustParse(fx.grid)
					ctx := NewContext()
					res := algo.FindPath(m, fx.start, fx.goal, ctx)
					assertValidPath(t, m, res, fx.start, fx.goal, ctx)
					if algo.Name() != NameBFS {
						assertWeightedCost(t, m, res, ctx)
					}
				})
			}
		})
	}
}

// A*, Dijkstra, bidirectional A* and the flow field must all return the
// true minimum cost, verified against exhaustive relaxation.
func TestOptimalAlgorithmsMatchBruteForce(t *testing.T) {
	optimal := []Algorithm{NewAStar(), NewDijkstra(), NewBidirectionalAStar(), NewFlowField()}
	for _, fx := range contractFixtures {
		t.Run(fx.name, func(t *testing.T) {
			m := hexgrid.MustParse(fx.grid)
			ctx := NewContext()
			want, ok := bruteForceCost(m, fx.start, fx.goal, ctx)
			if !ok {
				t.Fatal("fixture is unsolvable")
			}
			for _, algo := range optimal {
				res := algo.FindPath(m, fx.start, fx.goal, ctx)
				if !res.Success {
					t.Errorf("%s failed: %s", algo.Name(), res.FailureReason)
					continue
				}
				if res.TotalCost != want {
					t.Errorf("%s cost = %d, want %d", algo.Name(), res.TotalCost, want)
				}
			}
		})
	}
}

// The same query on an unchanged grid must give identical results.
func TestAllAlgorithmsDeterministic(t *testing.T) {
	for _, fx := range contractFixtures {
		for _, algo := range allAlgorithms() {
			t.Run(fx.name+"/"+algo.Name(), func(t *testing.T) {
				m := hexgrid.MustParse(fx.grid)
				ctx := NewContext()
				first := algo.FindPath(m, fx.start, fx.goal, ctx)
				second := algo.FindPath(m, fx.start, fx.goal, ctx)
				if first.Success != second.Success {
					t.Fatalf("success differs between runs")
				}
				if !reflect.DeepEqual(first.Path, second.Path) {
					t.Errorf("paths differ:\n%v\n%v", first.Path, second.Path)
				}
				if first.TotalCost != second.TotalCost {
					t.Errorf("costs differ: %d vs %d", first.TotalCost, second.TotalCost)
				}
			})
		}
	}
}

// Best-first may be suboptimal but never invalid, and never better than
// the optimum.
func TestBestFirstWithinContract(t *testing.T) {
	for _, fx := range contractFixtures {
		t.Run(fx.name, func(t *testing.T) {
			m := hexgrid.MustParse(fx.grid)
			ctx := NewContext()
			res := NewBestFirst().FindPath(m, fx.start, fx.goal, ctx)
			assertValidPath(t, m, res, fx.start, fx.goal, ctx)
			optimum, _ := bruteForceCost(m, fx.start, fx.goal, ctx)
			if res.TotalCost < optimum {
				t.Errorf("best-first cost %d beats the optimum %d", res.TotalCost, optimum)
			}
		})
	}
}

func TestAlgorithmMetadata(t *testing.T) {
	seen := make(map[string]bool)
	for _, algo := range allAlgorithms() {
		if algo.Name() == "" || algo.Description() == "" {
			t.Errorf("%T missing metadata", algo)
		}
		if seen[algo.Name()] {
			t.Errorf("duplicate algorithm name %q", algo.Name())
		}
		seen[algo.Name()] = true
		if !algo.SupportsConcurrentExecution() {
			t.Errorf("%s touches only pure data and should be concurrency-safe", algo.Name())
		}
	}
}
