// Package hexgrid provides an in-memory hex map implementing the core grid
// interfaces. The pathfinding engine only depends on those interfaces; this
// package exists for tests, the demo commands, and callers without their own
// grid layer.
package hexgrid

import (
	"fmt"
	"strings"

	"hexpath/core"
)

// Tile is a single concrete cell.
type Tile struct {
	coord    core.Hex
	Walkable bool
	Cost     int
	Label    string // terrain label for cost multipliers
	Explored bool
	Occupied core.Occupant
	Reserved bool

	// Result markers written back by the engine.
	Path      bool
	Reachable bool
}

// Coord returns the tile's grid coordinate.
func (t *Tile) Coord() core.Hex { return t.coord }

func (t *Tile) IsWalkable() bool        { return t.Walkable }
func (t *Tile) MovementCost() int       { return t.Cost }
func (t *Tile) IsExplored() bool        { return t.Explored }
func (t *Tile) IsOccupied() bool        { return t.Occupied != core.OccupantNone }
func (t *Tile) Occupant() core.Occupant { return t.Occupied }
func (t *Tile) IsReserved() bool        { return t.Reserved }
func (t *Tile) Terrain() string         { return t.Label }

func (t *Tile) SetPath(v bool)      { t.Path = v }
func (t *Tile) SetReachable(v bool) { t.Reachable = v }
func (t *Tile) SetReserved(v bool)  { t.Reserved = v }

// Map is a sparse hex map keyed by axial coordinate.
type Map struct {
	Tiles map[core.Hex]*Tile
}

// NewParallelogram builds a width×height map covering q in [0,width) and
// r in [0,height), all cells walkable with cost 1 and explored.
func NewParallelogram(width, height int) *Map {
	m := &Map{Tiles: make(map[core.Hex]*Tile, width*height)}
	for q := 0; q < width; q++ {
		for r := 0; r < height; r++ {
			m.put(core.Hex{Q: q, R: r})
		}
	}
	return m
}

// NewHexagon builds a radially symmetric map of the given radius centered
// on the origin, all cells walkable with cost 1 and explored.
func NewHexagon(radius int) *Map {
	m := &Map{Tiles: make(map[core.Hex]*Tile)}
	for q := -radius; q <= radius; q++ {
		r1 := maxInt(-radius, -q-radius)
		r2 := minInt(radius, -q+radius)
		for r := r1; r <= r2; r++ {
			m.put(core.Hex{Q: q, R: r})
		}
	}
	return m
}

func (m *Map) put(h core.Hex) *Tile {
	t := &Tile{coord: h, Walkable: true, Cost: 1, Explored: true}
	m.Tiles[h] = t
	return t
}

// CellAt returns the cell at the coordinate, or false if there is none.
func (m *Map) CellAt(h core.Hex) (core.Cell, bool) {
	t, ok := m.Tiles[h]
	if !ok {
		return nil, false
	}
	return t, true
}

// Tile returns the concrete tile at the coordinate, or nil.
func (m *Map) Tile(h core.Hex) *Tile {
	return m.Tiles[h]
}

// Neighbors returns the adjacent coordinates that exist on the map, in
// fixed direction order.
func (m *Map) Neighbors(h core.Hex) []core.Hex {
	out := make([]core.Hex, 0, 6)
	for _, n := range h.Neighbors() {
		if _, ok := m.Tiles[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// ClearMarks resets the path and reachable markers on every tile.
func (m *Map) ClearMarks() {
	for _, t := range m.Tiles {
		t.Path = false
		t.Reachable = false
	}
}

// Reveal marks every tile explored.
func (m *Map) Reveal() {
	for _, t := range m.Tiles {
		t.Explored = true
	}
}

// Parse builds a map from an ASCII sketch. Rows map to r, columns to q.
// Legend:
//
//	.    walkable, cost 1
//	X    wall
//	2-9  walkable, cost N
//	~    walkable but unexplored
//	o    walkable, allied occupant
//	e    walkable, hostile occupant
//	r    walkable, reserved
//
// Leading and trailing blank lines are ignored so fixtures can be written
// as raw string literals.
func Parse(s string) (*Map, error) {
	m := &Map{Tiles: make(map[core.Hex]*Tile)}
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	for r, line := range lines {
		for q, ch := range strings.TrimRight(line, " ") {
			t := m.put(core.Hex{Q: q, R: r})
			switch {
			case ch == '.':
			case ch == 'X':
				t.Walkable = false
			case ch >= '2' && ch <= '9':
				t.Cost = int(ch - '0')
			case ch == '~':
				t.Explored = false
			case ch == 'o':
				t.Occupied = core.OccupantAlly
			case ch == 'e':
				t.Occupied = core.OccupantEnemy
			case ch == 'r':
				t.Reserved = true
			default:
				return nil, fmt.Errorf("hexgrid: unknown map character %q at row %d col %d", ch, r, q)
			}
		}
	}
	return m, nil
}

// MustParse is Parse for test fixtures; it panics on malformed input.
func MustParse(s string) *Map {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
