package pathfinding

import (
	"reflect"
	"strings"
	"testing"

	"hexpath/core"
	"hexpath/hexgrid"
)

func TestReservationsBlockPaths(t *testing.T) {
	m := hexgrid.NewParallelogram(5, 1)
	mgr := NewManager(m)
	res := NewReservations(m, mgr)

	before := mgr.FindPath(core.Hex{Q: 0, R: 0}, core.Hex{Q: 4, R: 0}, nil)
	if !before.Success {
		t.Fatalf("open row not searchable: %s", before.FailureReason)
	}

	if err := res.Reserve(core.Hex{Q: 2, R: 0}); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	after := mgr.FindPath(core.Hex{Q: 0, R: 0}, core.Hex{Q: 4, R: 0}, nil)
	if after.Success {
		t.Error("path crosses a reserved cell, and the cached result survived the reservation")
	}

	res.Release(core.Hex{Q: 2, R: 0})
	restored := mgr.FindPath(core.Hex{Q: 0, R: 0}, core.Hex{Q: 4, R: 0}, nil)
	if !restored.Success {
		t.Errorf("release did not reopen the row: %s", restored.FailureReason)
	}
	if restored == before {
		t.Error("stale pre-reservation result returned after release")
	}
}

func TestReservationsValidateBeforeMutating(t *testing.T) {
	m := hexgrid.NewParallelogram(3, 1)
	res := NewReservations(m, nil)

	err := res.Reserve(core.Hex{Q: 1, R: 0}, core.Hex{Q: 9, R: 9})
	if err == nil || !strings.Contains(err.Error(), "not on the grid") {
		t.Fatalf("err = %v", err)
	}
	if m.Tile(core.Hex{Q: 1, R: 0}).Reserved {
		t.Error("partial reservation applied despite the error")
	}
	if len(res.Held()) != 0 {
		t.Errorf("held = %v", res.Held())
	}
}

func TestReservationsHeldAndReleaseAll(t *testing.T) {
	m := hexgrid.NewParallelogram(4, 4)
	res := NewReservations(m, nil)

	cells := []core.Hex{{Q: 2, R: 1}, {Q: 0, R: 3}, {Q: 1, R: 1}}
	if err := res.Reserve(cells...); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	want := []core.Hex{{Q: 0, R: 3}, {Q: 1, R: 1}, {Q: 2, R: 1}}
	if got := res.Held(); !reflect.DeepEqual(got, want) {
		t.Errorf("Held() = %v, want %v", got, want)
	}

	// Releasing a cell this layer never reserved is a no-op.
	m.Tile(core.Hex{Q: 3, R: 3}).Reserved = true
	res.Release(core.Hex{Q: 3, R: 3})
	if !m.Tile(core.Hex{Q: 3, R: 3}).Reserved {
		t.Error("released a reservation held elsewhere")
	}

	res.ReleaseAll()
	if held := res.Held(); len(held) != 0 {
		t.Errorf("held after ReleaseAll = %v", held)
	}
	for _, h := range cells {
		if m.Tile(h).Reserved {
			t.Errorf("cell %v still flagged", h)
		}
	}
}
