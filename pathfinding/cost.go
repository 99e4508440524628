package pathfinding

import "hexpath/core"

// blocked is the obstacle predicate: whether the cell may not be entered
// under this context. A cell blocks when it is unwalkable, reserved, listed
// as a dynamic obstacle, unexplored under fog-of-war enforcement, or
// occupied without a matching pass-through permission.
func (c *Context) blocked(cell core.Cell) bool {
	if !cell.IsWalkable() {
		return true
	}
	if cell.IsReserved() {
		return true
	}
	if c.RequireExplored && !cell.IsExplored() {
		return true
	}
	if c.DynamicObstacles != nil {
		if _, ok := c.DynamicObstacles[cell.Coord()]; ok {
			return true
		}
	}
	switch cell.Occupant() {
	case core.OccupantAlly:
		return !c.AllowMoveThroughAllies
	case core.OccupantEnemy:
		return !c.AllowMoveThroughEnemies
	}
	return false
}

// stepCost is the effective cost of entering the cell: its base movement
// cost scaled by the terrain multiplier, rounded to the nearest integer,
// never below 1.
func (c *Context) stepCost(cell core.Cell) int {
	cost := cell.MovementCost()
	if c.TerrainCostMultipliers != nil {
		if mult, ok := c.TerrainCostMultipliers[cell.Terrain()]; ok {
			cost = int(float64(cost)*mult + 0.5)
		}
	}
	if cost < 1 {
		cost = 1
	}
	return cost
}

// pathCost sums the effective step costs along a path (the start cell is
// free; a unit already stands there).
func (c *Context) pathCost(g core.Grid, path []core.Hex) int {
	total := 0
	for _, h := range path[1:] {
		cell, ok := g.CellAt(h)
		if !ok {
			continue
		}
		total += c.stepCost(cell)
	}
	return total
}
