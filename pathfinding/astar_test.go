package pathfinding

import (
	"strings"
	"testing"

	"hexpath/core"
	"hexpath/hexgrid"
)

func TestAStarStraightRow(t *testing.T) {
	// 5-cell row: the path must contain all 5 cells at cost 4.
	m := hexgrid.NewParallelogram(5, 5)
	ctx := NewContext()
	res := NewAStar().FindPath(m, core.Hex{Q: 0, R: 0}, core.Hex{Q: 4, R: 0}, ctx)

	assertValidPath(t, m, res, core.Hex{Q: 0, R: 0}, core.Hex{Q: 4, R: 0}, ctx)
	if len(res.Path) != 5 {
		t.Errorf("path length = %d, want 5", len(res.Path))
	}
	if res.TotalCost != 4 {
		t.Errorf("TotalCost = %d, want 4", res.TotalCost)
	}
}

func TestAStarUnreachable(t *testing.T) {
	// Single row with a wall in the middle and no way around.
	m := hexgrid.MustParse(`..X..`)
	res := NewAStar().FindPath(m, core.Hex{Q: 0, R: 0}, core.Hex{Q: 4, R: 0}, NewContext())

	if res.Success {
		t.Fatal("expected failure")
	}
	if len(res.Path) != 0 {
		t.Errorf("failed result has non-empty path: %v", res.Path)
	}
	if !strings.Contains(res.FailureReason, "unreachable") {
		t.Errorf("FailureReason = %q, want it to mention unreachable", res.FailureReason)
	}
}

func TestAStarRoutesAroundObstacles(t *testing.T) {
	tests := []struct {
		name        string
		grid        string
		start, goal core.Hex
		wantCost    int
	}{
		{
			name: "wall with gap below",
			grid: `
.X...
.X...
.....`,
			start:    core.Hex{Q: 0, R: 0},
			goal:     core.Hex{Q: 2, R: 0},
			wantCost: 5,
		},
		{
			name: "cheap detour around expensive terrain",
			grid: `
.99.
....`,
			start:    core.Hex{Q: 0, R: 0},
			goal:     core.Hex{Q: 3, R: 0},
			wantCost: 4,
		},
		{
			name: "expensive direct when detour is longer still",
			grid: `.2.`,
			start:    core.Hex{Q: 0, R: 0},
			goal:     core.Hex{Q: 2, R: 0},
			wantCost: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := hexgrid.MustParse(tt.grid)
			ctx := NewContext()
			res := NewAStar().FindPath(m, tt.start, tt.goal, ctx)
			assertValidPath(t, m, res, tt.start, tt.goal, ctx)
			if res.TotalCost != tt.wantCost {
				t.Errorf("TotalCost = %d, want %d", res.TotalCost, tt.wantCost)
			}
		})
	}
}

func TestAStarEndpointErrors(t *testing.T) {
	m := hexgrid.MustParse(`...X`)
	a := NewAStar()

	res := a.FindPath(m, core.Hex{Q: 0, R: 0}, core.Hex{Q: 9, R: 9}, NewContext())
	if res.Success || res.FailureReason != ReasonInvalidEndpoint {
		t.Errorf("off-grid goal: got %q", res.FailureReason)
	}

	res = a.FindPath(m, core.Hex{Q: 9, R: 9}, core.Hex{Q: 1, R: 0}, NewContext())
	if res.Success || res.FailureReason != ReasonInvalidEndpoint {
		t.Errorf("off-grid start: got %q", res.FailureReason)
	}

	res = a.FindPath(m, core.Hex{Q: 0, R: 0}, core.Hex{Q: 3, R: 0}, NewContext())
	if res.Success || res.FailureReason != ReasonGoalNotTraversable {
		t.Errorf("walled goal: got %q", res.FailureReason)
	}

	res = a.FindPath(m, core.Hex{Q: 1, R: 0}, core.Hex{Q: 1, R: 0}, NewContext())
	if !res.Success || len(res.Path) != 1 || res.TotalCost != 0 {
		t.Errorf("start == goal should be a trivial success, got %v", res)
	}
}

func TestAStarMovementBudget(t *testing.T) {
	m := lineMap(6)
	start, goal := core.Hex{Q: 0, R: 0}, core.Hex{Q: 5, R: 0}

	ctx := NewContext()
	ctx.MaxMovementPoints = 5
	res := NewAStar().FindPath(m, start, goal, ctx)
	assertValidPath(t, m, res, start, goal, ctx)
	if res.TotalCost > ctx.MaxMovementPoints {
		t.Errorf("TotalCost %d exceeds budget %d", res.TotalCost, ctx.MaxMovementPoints)
	}

	ctx = NewContext()
	ctx.MaxMovementPoints = 4
	res = NewAStar().FindPath(m, start, goal, ctx)
	if res.Success {
		t.Fatal("expected failure under tight budget")
	}
	if res.FailureReason != ReasonBudgetExceeded {
		t.Errorf("FailureReason = %q, want %q", res.FailureReason, ReasonBudgetExceeded)
	}
}

func TestAStarNodeLimit(t *testing.T) {
	m := hexgrid.NewParallelogram(20, 20)
	ctx := NewContext()
	ctx.MaxSearchNodes = 3
	res := NewAStar().FindPath(m, core.Hex{Q: 0, R: 0}, core.Hex{Q: 19, R: 19}, ctx)
	if res.Success || res.FailureReason != ReasonNodeLimit {
		t.Errorf("got %q, want %q", res.FailureReason, ReasonNodeLimit)
	}
}

func TestAStarObstacleRules(t *testing.T) {
	tests := []struct {
		name      string
		grid      string
		configure func(*Context)
		wantPath  bool
	}{
		{"ally blocks by default", `.o.`, nil, false},
		{"ally pass-through", `.o.`, func(c *Context) { c.AllowMoveThroughAllies = true }, true},
		{"enemy blocks by default", `.e.`, nil, false},
		{"enemy pass-through", `.e.`, func(c *Context) { c.AllowMoveThroughEnemies = true }, true},
		{"reserved blocks", `.r.`, nil, false},
		{"fog ignored by default", `.~.`, nil, true},
		{"fog blocks when required", `.~.`, func(c *Context) { c.RequireExplored = true }, false},
		{
			"dynamic obstacle blocks",
			`...`,
			func(c *Context) {
				c.DynamicObstacles = map[core.Hex]struct{}{{Q: 1, R: 0}: {}}
			},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := hexgrid.MustParse(tt.grid)
			ctx := NewContext()
			if tt.configure != nil {
				tt.configure(ctx)
			}
			res := NewAStar().FindPath(m, core.Hex{Q: 0, R: 0}, core.Hex{Q: 2, R: 0}, ctx)
			if res.Success != tt.wantPath {
				t.Errorf("Success = %v, want %v (%s)", res.Success, tt.wantPath, res.FailureReason)
			}
			if res.Success {
				assertValidPath(t, m, res, core.Hex{Q: 0, R: 0}, core.Hex{Q: 2, R: 0}, ctx)
			}
		})
	}
}

func TestAStarTerrainMultiplier(t *testing.T) {
	m := lineMap(3)
	m.Tile(core.Hex{Q: 1, R: 0}).Label = "swamp"

	ctx := NewContext()
	ctx.TerrainCostMultipliers = map[string]float64{"swamp": 3.0}
	res := NewAStar().FindPath(m, core.Hex{Q: 0, R: 0}, core.Hex{Q: 2, R: 0}, ctx)
	assertValidPath(t, m, res, core.Hex{Q: 0, R: 0}, core.Hex{Q: 2, R: 0}, ctx)
	if res.TotalCost != 4 {
		t.Errorf("TotalCost = %d, want 4 (swamp step tripled)", res.TotalCost)
	}

	// Multipliers round to nearest and never drop a step below 1.
	ctx = NewContext()
	ctx.TerrainCostMultipliers = map[string]float64{"swamp": 0.1}
	res = NewAStar().FindPath(m, core.Hex{Q: 0, R: 0}, core.Hex{Q: 2, R: 0}, ctx)
	if res.TotalCost != 2 {
		t.Errorf("TotalCost = %d, want 2 (floor of 1 per step)", res.TotalCost)
	}
}

func TestAStarDiagnostics(t *testing.T) {
	m := hexgrid.NewParallelogram(4, 4)
	ctx := NewContext()
	ctx.StoreDiagnosticData = true
	res := NewAStar().FindPath(m, core.Hex{Q: 0, R: 0}, core.Hex{Q: 3, R: 0}, ctx)
	if res.CostMap == nil || res.CameFrom == nil {
		t.Fatal("diagnostic maps missing")
	}
	// Every path cell after the start must have a recorded parent chain.
	for _, h := range res.Path[1:] {
		if _, ok := res.CameFrom[h]; !ok {
			t.Errorf("no parent recorded for path cell %v", h)
		}
	}

	ctx = NewContext()
	res = NewAStar().FindPath(m, core.Hex{Q: 0, R: 0}, core.Hex{Q: 3, R: 0}, ctx)
	if res.CostMap != nil || res.CameFrom != nil {
		t.Error("diagnostic maps present without StoreDiagnosticData")
	}
}

func TestAStarCancellation(t *testing.T) {
	m := hexgrid.NewParallelogram(10, 10)
	cancel := make(chan struct{})
	close(cancel)
	ctx := NewContext()
	ctx.Cancel = cancel
	res := NewAStar().FindPath(m, core.Hex{Q: 0, R: 0}, core.Hex{Q: 9, R: 9}, ctx)
	if res.Success || res.FailureReason != ReasonCancelled {
		t.Errorf("got %q, want %q", res.FailureReason, ReasonCancelled)
	}
}
