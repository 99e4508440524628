package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"hexpath/core"
	"hexpath/hexgrid"
	"hexpath/pathfinding"
)

// viewerBudget is the movement allowance used for the reachability overlay.
const viewerBudget = 6

// algorithmKeys maps the number row to registered algorithms.
var algorithmKeys = map[rune]string{
	'1': pathfinding.NameAStar,
	'2': pathfinding.NameDijkstra,
	'3': pathfinding.NameBFS,
	'4': pathfinding.NameBidirectional,
	'5': pathfinding.NameBestFirst,
	'6': pathfinding.NameFlowField,
}

// viewer is the interactive map explorer: move a cursor over the grid, place
// start and goal, toggle terrain, and watch each algorithm's path.
type viewer struct {
	screen tcell.Screen
	m      *hexgrid.Map
	mgr    *pathfinding.Manager

	cursor      core.Hex
	start, goal *core.Hex
	status      string
}

// runViewer owns the terminal for the lifetime of the session.
func runViewer(m *hexgrid.Map, mgr *pathfinding.Manager) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v := &viewer{
		screen: screen,
		m:      m,
		mgr:    mgr,
		status: "s: start  g: goal  x: wall  v: reserve  b: reachable  c: clear  1-6: algorithm  q: quit",
	}
	// Start the cursor on any existing tile.
	for h := range m.Tiles {
		if v.m.Tile(v.cursor) == nil || hexBefore(h, v.cursor) {
			v.cursor = h
		}
	}

	for {
		v.draw()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
		}
	}
}

func hexBefore(a, b core.Hex) bool {
	if a.R != b.R {
		return a.R < b.R
	}
	return a.Q < b.Q
}

// handleKey applies one key event; true means quit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		v.moveCursor(core.Hex{Q: -1, R: 0})
		return false
	case tcell.KeyRight:
		v.moveCursor(core.Hex{Q: 1, R: 0})
		return false
	case tcell.KeyUp:
		v.moveCursor(core.Hex{Q: 0, R: -1})
		return false
	case tcell.KeyDown:
		v.moveCursor(core.Hex{Q: 0, R: 1})
		return false
	}
	if ev.Key() != tcell.KeyRune {
		return false
	}

	switch r := ev.Rune(); r {
	case 'q':
		return true
	case 'h':
		v.moveCursor(core.Hex{Q: -1, R: 0})
	case 'l':
		v.moveCursor(core.Hex{Q: 1, R: 0})
	case 'k':
		v.moveCursor(core.Hex{Q: 0, R: -1})
	case 'j':
		v.moveCursor(core.Hex{Q: 0, R: 1})
	case 's':
		h := v.cursor
		v.start = &h
		v.search()
	case 'g':
		h := v.cursor
		v.goal = &h
		v.search()
	case 'x':
		if t := v.m.Tile(v.cursor); t != nil {
			t.Walkable = !t.Walkable
			v.mgr.InvalidateCache(v.cursor)
			v.search()
		}
	case 'v':
		if t := v.m.Tile(v.cursor); t != nil {
			t.Reserved = !t.Reserved
			v.mgr.InvalidateCache(v.cursor)
			v.search()
		}
	case 'b':
		v.m.ClearMarks()
		cells := v.mgr.ReachableCells(v.cursor, viewerBudget)
		v.status = fmt.Sprintf("%d cells within %d movement of %v", len(cells), viewerBudget, v.cursor)
	case 'c':
		v.m.ClearMarks()
		v.start, v.goal = nil, nil
		v.status = "cleared"
	default:
		if name, ok := algorithmKeys[r]; ok {
			if err := v.mgr.SetAlgorithm(name); err == nil {
				v.search()
			}
		}
	}
	return false
}

func (v *viewer) moveCursor(d core.Hex) {
	next := v.cursor.Add(d)
	if v.m.Tile(next) != nil {
		v.cursor = next
	}
}

// search reruns the active algorithm when both endpoints are placed and
// refreshes the path overlay.
func (v *viewer) search() {
	v.m.ClearMarks()
	if v.start == nil || v.goal == nil {
		v.status = fmt.Sprintf("algorithm: %s", v.mgr.ActiveAlgorithm())
		return
	}
	res := v.mgr.FindPath(*v.start, *v.goal, nil)
	if res.Success {
		v.mgr.MarkPath(res, true)
	}
	v.status = fmt.Sprintf("%s: %v", v.mgr.ActiveAlgorithm(), res)
}

func (v *viewer) draw() {
	v.screen.Clear()

	minQ, _, minR, _ := bounds(v.m)
	for h, t := range v.m.Tiles {
		// Skew rows so the axial lattice reads as hexes.
		x := 2*(h.Q-minQ) + (h.R - minR)
		y := h.R - minR

		ch := glyph(t, h, v.start, v.goal)
		style := cellStyle(t, ch)
		if h == v.cursor {
			style = style.Reverse(true)
		}
		v.screen.SetContent(x, y, ch, nil, style)
	}

	_, height := v.screen.Size()
	for i, r := range v.status {
		v.screen.SetContent(i, height-1, r, nil, tcell.StyleDefault)
	}
	v.screen.Show()
}

func cellStyle(t *hexgrid.Tile, ch rune) tcell.Style {
	switch {
	case ch == 'S':
		return tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	case ch == 'G':
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case !t.Walkable:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case t.Path:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case t.Reachable:
		return tcell.StyleDefault.Foreground(tcell.ColorTeal)
	case t.Reserved:
		return tcell.StyleDefault.Foreground(tcell.ColorPurple)
	case t.Occupied != core.OccupantNone:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	default:
		return tcell.StyleDefault
	}
}
