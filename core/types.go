// Package core contains the fundamental types shared by the hexpath engine:
// axial hex coordinates and the grid boundary interfaces.
package core

import "fmt"

// Hex is an axial hex-grid coordinate (pointy-top orientation).
// The implied cube coordinate is (Q, R, -Q-R).
type Hex struct {
	Q, R int
}

// NeighborDirections lists the 6 axial offsets to adjacent hexes.
// The order is fixed; neighbor enumeration must stay stable within a search.
var NeighborDirections = [6]Hex{
	{Q: 1, R: 0}, {Q: 1, R: -1}, {Q: 0, R: -1},
	{Q: -1, R: 0}, {Q: -1, R: 1}, {Q: 0, R: 1},
}

// Add returns the component-wise sum of two hexes.
func (h Hex) Add(other Hex) Hex {
	return Hex{Q: h.Q + other.Q, R: h.R + other.R}
}

// Subtract returns the component-wise difference of two hexes.
func (h Hex) Subtract(other Hex) Hex {
	return Hex{Q: h.Q - other.Q, R: h.R - other.R}
}

// Scale multiplies a hex vector by a scalar.
func (h Hex) Scale(factor int) Hex {
	return Hex{Q: h.Q * factor, R: h.R * factor}
}

// Neighbors returns the 6 adjacent coordinates in fixed direction order.
// Callers holding a sparse map must filter for cells that actually exist.
func (h Hex) Neighbors() [6]Hex {
	var out [6]Hex
	for i, d := range NeighborDirections {
		out[i] = h.Add(d)
	}
	return out
}

// Distance returns the hex-grid distance between two coordinates using the
// cube formula (|dq| + |dr| + |dq+dr|) / 2. This is the number of steps a
// unit needs on an unobstructed uniform-cost grid, which makes it an
// admissible and consistent A* heuristic.
func (h Hex) Distance(to Hex) int {
	dq := h.Q - to.Q
	dr := h.R - to.R
	return (abs(dq) + abs(dr) + abs(dq+dr)) / 2
}

// Lerp linearly interpolates between two hexes and rounds to the nearest
// valid coordinate.
func (h Hex) Lerp(to Hex, t float64) Hex {
	q := float64(h.Q)*(1-t) + float64(to.Q)*t
	r := float64(h.R)*(1-t) + float64(to.R)*t
	return axialRound(q, r)
}

// LineTo returns the hexes on the straight line from h to end, inclusive.
func (h Hex) LineTo(end Hex) []Hex {
	n := h.Distance(end)
	results := make([]Hex, 0, n+1)
	for i := 0; i <= n; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		results = append(results, h.Lerp(end, t))
	}
	return results
}

// String returns the coordinate as "(q,r)".
func (h Hex) String() string {
	return fmt.Sprintf("(%d,%d)", h.Q, h.R)
}

// axialRound rounds fractional axial coordinates to the nearest hex,
// fixing the component with the largest rounding error so that Q+R+S
// stays zero.
func axialRound(q, r float64) Hex {
	s := -q - r
	rq := roundf(q)
	rr := roundf(r)
	rs := roundf(s)

	dq := absf(rq - q)
	dr := absf(rr - r)
	ds := absf(rs - s)

	if dq > dr && dq > ds {
		rq = -rr - rs
	} else if dr > ds {
		rr = -rq - rs
	}
	return Hex{Q: int(rq), R: int(rr)}
}

func roundf(f float64) float64 {
	if f < 0 {
		return float64(int(f - 0.5))
	}
	return float64(int(f + 0.5))
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
