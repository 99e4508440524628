package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"hexpath/core"
	"hexpath/hexgrid"
	"hexpath/pathfinding"
)

func main() {
	var (
		interactive = flag.Bool("i", false, "Interactive TUI viewer")
		mapFile     = flag.String("map", "", "Load the map from an ASCII sketch file")
		width       = flag.Int("width", 12, "Generated map width (ignored with -map or -radius)")
		height      = flag.Int("height", 8, "Generated map height (ignored with -map or -radius)")
		radius      = flag.Int("radius", 0, "Generate a hexagonal map of this radius instead")

		algo      = flag.String("algo", pathfinding.NameAStar, "Algorithm: astar, dijkstra, bfs, bidirectional, bestfirst, flowfield")
		startFlag = flag.String("start", "", "Start coordinate as q,r")
		goalFlag  = flag.String("goal", "", "Goal coordinate as q,r")
		budget    = flag.Int("budget", pathfinding.Unlimited, "Movement point budget (-1 = unlimited)")
		maxNodes  = flag.Int("max-nodes", pathfinding.DefaultMaxSearchNodes, "Node exploration cap")

		movement  = flag.Int("movement", 0, "Movement per turn: split the path into turns")
		reachable = flag.Int("reachable", 0, "Show cells reachable within this many movement points instead of a path (with -movement: that many turns, bucketed)")
		compare   = flag.Bool("compare", false, "Run every algorithm for the query and compare")
		stats     = flag.Bool("stats", false, "Print manager statistics after the run")
		help      = flag.Bool("help", false, "Show help")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Tactical pathfinding over hex grids.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -start 0,0 -goal 11,7                 # A* across a generated map\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -map arena.txt -start 0,0 -goal 9,4   # map from an ASCII sketch\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -algo dijkstra -budget 12 -start 0,0 -goal 11,7\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -start 0,0 -goal 11,7 -movement 4     # split into turns\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -start 5,3 -reachable 6               # reachable cells\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -start 5,3 -movement 4 -reachable 3   # reachable per turn\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -start 0,0 -goal 11,7 -compare        # all algorithms\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i                                    # interactive viewer\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nMap sketch legend: . floor, X wall, 2-9 cost, ~ fog, o ally, e enemy, r reserved\n")
	}

	flag.Parse()
	if *help {
		flag.Usage()
		os.Exit(0)
	}

	m, err := buildMap(*mapFile, *width, *height, *radius)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mgr := pathfinding.NewManager(m)
	if err := mgr.SetAlgorithm(*algo); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Available: %s\n", strings.Join(mgr.Algorithms(), ", "))
		os.Exit(1)
	}

	if *interactive {
		if err := runViewer(m, mgr); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	start, err := parseHex(*startFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -start: %v\n", err)
		os.Exit(1)
	}

	ctx := pathfinding.NewContext()
	ctx.MaxMovementPoints = *budget
	ctx.MaxSearchNodes = *maxNodes

	if *reachable > 0 {
		if *movement > 0 {
			byTurn := mgr.MultiTurnReachableCells(start, *movement, *reachable)
			fmt.Print(renderMap(m, &start, nil))
			fmt.Print(formatByTurn(byTurn))
			return
		}
		cells := mgr.ReachableCells(start, *reachable)
		fmt.Print(renderMap(m, &start, nil))
		fmt.Printf("%d cells reachable within %d movement from %v: %s\n",
			len(cells), *reachable, start, formatHexes(cells))
		return
	}

	goal, err := parseHex(*goalFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -goal: %v\n", err)
		os.Exit(1)
	}

	if *compare {
		runComparison(mgr, start, goal, ctx)
		return
	}

	if *movement > 0 {
		split := mgr.FindMultiTurnPath(start, goal, *movement, ctx)
		if split.Success {
			mgr.MarkPath(&pathfinding.Result{Path: split.CompletePath}, true)
			fmt.Print(renderMap(m, &start, &goal))
		}
		fmt.Println(split)
	} else {
		res := mgr.FindPath(start, goal, ctx)
		if res.Success {
			mgr.MarkPath(res, true)
			fmt.Print(renderMap(m, &start, &goal))
		}
		fmt.Println(res)
		if !res.Success {
			os.Exit(1)
		}
	}

	if *stats {
		fmt.Println(mgr)
	}
}

// buildMap loads the sketch file when given, otherwise generates a map.
func buildMap(mapFile string, width, height, radius int) (*hexgrid.Map, error) {
	if mapFile != "" {
		data, err := os.ReadFile(mapFile)
		if err != nil {
			return nil, fmt.Errorf("reading map file: %w", err)
		}
		m, err := hexgrid.Parse(string(data))
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	if radius > 0 {
		return hexgrid.NewHexagon(radius), nil
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("map dimensions must be positive")
	}
	return hexgrid.NewParallelogram(width, height), nil
}

// parseHex reads a "q,r" coordinate pair.
func parseHex(s string) (core.Hex, error) {
	var h core.Hex
	if s == "" {
		return h, fmt.Errorf("coordinate required (q,r)")
	}
	if _, err := fmt.Sscanf(s, "%d,%d", &h.Q, &h.R); err != nil {
		return h, fmt.Errorf("malformed coordinate %q, want q,r", s)
	}
	return h, nil
}

// runComparison runs every registered algorithm for the same query and
// prints a result line per algorithm.
func runComparison(mgr *pathfinding.Manager, start, goal core.Hex, ctx *pathfinding.Context) {
	uncached := ctx.Clone()
	uncached.UseCaching = false

	for _, name := range mgr.Algorithms() {
		if err := mgr.SetAlgorithm(name); err != nil {
			continue
		}
		res := mgr.FindPath(start, goal, uncached)
		fmt.Printf("%-14s %s\n", name, res)
	}
}
