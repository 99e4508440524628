package pathfinding

import (
	"fmt"

	"hexpath/core"
)

// cacheInvalidator is the slice of the manager the reservation layer needs.
type cacheInvalidator interface {
	InvalidateCache(cells ...core.Hex)
}

// Reservations marks cells temporarily unusable for other searches, the
// side channel that keeps concurrently planned units from walking through
// each other. Reservation is advisory: this layer only flips the flag and
// keeps the path cache honest; who reserves what, and for how long, is the
// caller's policy.
//
// Reservations assumes a single writer at a time, consistent with a
// turn-based game loop; it provides no locking of its own.
type Reservations struct {
	grid    core.Grid
	invalid cacheInvalidator
	held    map[core.Hex]struct{}
}

// NewReservations creates a reservation layer over the grid. The
// invalidator is typically the Manager sharing that grid.
func NewReservations(grid core.Grid, invalid cacheInvalidator) *Reservations {
	return &Reservations{
		grid:    grid,
		invalid: invalid,
		held:    make(map[core.Hex]struct{}),
	}
}

// Reserve flags the cells as reserved and invalidates any cached path
// touching them. Unknown coordinates are reported and nothing is changed.
func (r *Reservations) Reserve(cells ...core.Hex) error {
	for _, h := range cells {
		if _, ok := r.grid.CellAt(h); !ok {
			return fmt.Errorf("pathfinding: cannot reserve %v: not on the grid", h)
		}
	}
	for _, h := range cells {
		cell, _ := r.grid.CellAt(h)
		cell.SetReserved(true)
		r.held[h] = struct{}{}
	}
	if r.invalid != nil && len(cells) > 0 {
		r.invalid.InvalidateCache(cells...)
	}
	return nil
}

// Release clears the reservation on the cells and invalidates cached paths
// that were planned around them.
func (r *Reservations) Release(cells ...core.Hex) {
	released := cells[:0:0]
	for _, h := range cells {
		if _, ok := r.held[h]; !ok {
			continue
		}
		if cell, ok := r.grid.CellAt(h); ok {
			cell.SetReserved(false)
		}
		delete(r.held, h)
		released = append(released, h)
	}
	if r.invalid != nil && len(released) > 0 {
		r.invalid.InvalidateCache(released...)
	}
}

// ReleaseAll clears every reservation held by this layer.
func (r *Reservations) ReleaseAll() {
	if len(r.held) == 0 {
		return
	}
	cells := make([]core.Hex, 0, len(r.held))
	for h := range r.held {
		cells = append(cells, h)
	}
	r.Release(cells...)
}

// Held returns the currently reserved cells in sorted order.
func (r *Reservations) Held() []core.Hex {
	cells := make([]core.Hex, 0, len(r.held))
	for h := range r.held {
		cells = append(cells, h)
	}
	sortHexes(cells)
	return cells
}
