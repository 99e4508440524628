package core

// Occupant identifies what, if anything, stands on a cell. The engine only
// distinguishes allied from hostile occupants; everything else about units
// lives outside this package.
type Occupant int

const (
	OccupantNone Occupant = iota
	OccupantAlly
	OccupantEnemy
)

// String returns the string representation of an Occupant.
func (o Occupant) String() string {
	switch o {
	case OccupantNone:
		return "none"
	case OccupantAlly:
		return "ally"
	case OccupantEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Cell is the engine's read/write view of a single grid cell. The grid and
// its cells are owned by the caller; the engine reads the query surface
// during searches and writes only the three marker flags.
type Cell interface {
	Coord() Hex

	IsWalkable() bool
	// MovementCost is the base cost to enter the cell, >= 1 for any
	// walkable cell. Terrain multipliers are applied on top of it.
	MovementCost() int
	IsExplored() bool
	IsOccupied() bool
	Occupant() Occupant
	IsReserved() bool
	// Terrain is a free-form label used to look up cost multipliers.
	Terrain() string

	// Write-back surface. SetPath and SetReachable mark search results for
	// display; SetReserved is the multi-agent coordination side channel.
	SetPath(bool)
	SetReachable(bool)
	SetReserved(bool)
}

// Grid is the cell graph the engine searches over. Implementations must
// return neighbors in an order that is stable for the duration of a search.
type Grid interface {
	// CellAt returns the cell at the coordinate, or false if the
	// coordinate is not part of the grid.
	CellAt(Hex) (Cell, bool)
	// Neighbors returns the up-to-6 adjacent coordinates that exist on
	// the grid.
	Neighbors(Hex) []Hex
}
