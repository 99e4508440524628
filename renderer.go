package main

import (
	"fmt"
	"sort"
	"strings"

	"hexpath/core"
	"hexpath/hexgrid"
)

// renderMap draws the map as skewed text rows: row r is indented by r so
// the axial q/r lattice reads as a hex grid. One glyph per cell, two
// columns apart.
//
//	S . . 3 .
//	 . X * . .
//	  . . * G .
func renderMap(m *hexgrid.Map, start, goal *core.Hex) string {
	if len(m.Tiles) == 0 {
		return ""
	}

	minQ, maxQ, minR, maxR := bounds(m)

	var b strings.Builder
	for r := minR; r <= maxR; r++ {
		b.WriteString(strings.Repeat(" ", r-minR))
		for q := minQ; q <= maxQ; q++ {
			h := core.Hex{Q: q, R: r}
			t := m.Tile(h)
			if t == nil {
				b.WriteString("  ")
				continue
			}
			b.WriteRune(glyph(t, h, start, goal))
			b.WriteByte(' ')
		}
		b.WriteString("\n")
	}
	return b.String()
}

// glyph picks one rune per cell, most significant state first.
func glyph(t *hexgrid.Tile, h core.Hex, start, goal *core.Hex) rune {
	switch {
	case start != nil && h == *start:
		return 'S'
	case goal != nil && h == *goal:
		return 'G'
	case !t.Walkable:
		return 'X'
	case t.Path:
		return '*'
	case t.Occupied == core.OccupantAlly:
		return 'o'
	case t.Occupied == core.OccupantEnemy:
		return 'e'
	case t.Reserved:
		return 'r'
	case t.Reachable:
		return '+'
	case !t.Explored:
		return '~'
	case t.Cost > 1 && t.Cost <= 9:
		return rune('0' + t.Cost)
	default:
		return '.'
	}
}

func bounds(m *hexgrid.Map) (minQ, maxQ, minR, maxR int) {
	first := true
	for h := range m.Tiles {
		if first {
			minQ, maxQ, minR, maxR = h.Q, h.Q, h.R, h.R
			first = false
			continue
		}
		if h.Q < minQ {
			minQ = h.Q
		}
		if h.Q > maxQ {
			maxQ = h.Q
		}
		if h.R < minR {
			minR = h.R
		}
		if h.R > maxR {
			maxR = h.R
		}
	}
	return
}

// formatHexes renders a coordinate list compactly for CLI output.
func formatHexes(hexes []core.Hex) string {
	parts := make([]string, len(hexes))
	for i, h := range hexes {
		parts[i] = h.String()
	}
	return strings.Join(parts, " ")
}

// formatByTurn renders a turn-bucketed cell map in turn order.
func formatByTurn(byTurn map[int][]core.Hex) string {
	turns := make([]int, 0, len(byTurn))
	for t := range byTurn {
		turns = append(turns, t)
	}
	sort.Ints(turns)

	var b strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&b, "turn %d: %s\n", t, formatHexes(byTurn[t]))
	}
	return b.String()
}
