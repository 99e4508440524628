package pathfinding

import (
	"container/heap"
	"fmt"
	"sort"
	"sync"
	"time"

	"hexpath/core"
)

// Default cache sizing for a tactical map. Entries go stale quickly as
// units move, so the TTL is short.
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 5 * time.Second
)

// Statistics is a snapshot of the manager's running counters.
type Statistics struct {
	PathsFound        int64
	PathsFailed       int64
	CacheHits         int64
	TotalSearchTime   time.Duration
	AverageSearchTime time.Duration
}

// String renders the counters on one line.
func (s Statistics) String() string {
	return fmt.Sprintf("paths=%d failed=%d cacheHits=%d avg=%v total=%v",
		s.PathsFound, s.PathsFailed, s.CacheHits, s.AverageSearchTime, s.TotalSearchTime)
}

// Manager orchestrates searches over one grid: it owns the algorithm
// registry, the result cache, the reachability queries, multi-turn
// splitting and the statistics counters.
//
// A Manager is an explicitly constructed service object; create one per
// grid (or per test) and hand references to callers. Cache and statistics
// writes are serialized internally, so FindPathAsync results may be
// finalized from worker goroutines safely.
type Manager struct {
	grid core.Grid

	mu         sync.Mutex
	algorithms map[string]Algorithm
	active     Algorithm
	observers  []Observer

	pathsFound  int64
	pathsFailed int64
	cacheHits   int64
	searchTime  time.Duration
	searches    int64

	cache *ResultCache
}

// NewManager creates a manager for the grid with all six stock algorithms
// registered and A* active.
func NewManager(grid core.Grid) *Manager {
	m := &Manager{
		grid:       grid,
		algorithms: make(map[string]Algorithm),
		cache:      NewResultCache(DefaultCacheSize, DefaultCacheTTL),
	}
	for _, a := range []Algorithm{
		NewAStar(),
		NewDijkstra(),
		NewBFS(),
		NewBidirectionalAStar(),
		NewBestFirst(),
		NewFlowField(),
	} {
		m.algorithms[a.Name()] = a
	}
	m.active = m.algorithms[NameAStar]
	return m
}

// Register adds (or replaces) an algorithm in the registry.
func (m *Manager) Register(a Algorithm) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.algorithms[a.Name()] = a
}

// Algorithms lists the registered algorithm names in sorted order.
func (m *Manager) Algorithms() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.algorithms))
	for name := range m.algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActiveAlgorithm returns the name of the currently selected algorithm.
func (m *Manager) ActiveAlgorithm() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active.Name()
}

// SetAlgorithm selects the active algorithm by name. An unknown name is
// reported as an error and the previous algorithm stays in effect.
// Switching clears the cache: different algorithms may legitimately return
// different, equally valid paths for the same query.
func (m *Manager) SetAlgorithm(name string) error {
	m.mu.Lock()
	a, ok := m.algorithms[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("pathfinding: unknown algorithm %q", name)
	}
	changed := m.active != a
	m.active = a
	m.mu.Unlock()

	if changed {
		m.cache.Clear()
	}
	return nil
}

// FindPath runs the active algorithm for the query, consulting the cache
// first when the context allows it. A nil context means defaults.
func (m *Manager) FindPath(start, goal core.Hex, ctx *Context) *Result {
	if ctx == nil {
		ctx = NewContext()
	}

	if ctx.UseCaching {
		if cached, ok := m.cache.Get(start, goal); ok {
			m.mu.Lock()
			m.cacheHits++
			m.mu.Unlock()
			return cached
		}
	}

	m.mu.Lock()
	algo := m.active
	m.mu.Unlock()

	res := algo.FindPath(m.grid, start, goal, ctx)
	m.finalize(start, goal, ctx, res)
	return res
}

// FindPathAsync runs the query off the calling goroutine when the active
// algorithm declares itself safe for that, delivering the result on the
// returned channel. Algorithms not flagged concurrency-safe run
// synchronously before the channel is returned. Cache and statistics
// writes are serialized either way.
func (m *Manager) FindPathAsync(start, goal core.Hex, ctx *Context) <-chan *Result {
	if ctx == nil {
		ctx = NewContext()
	}
	out := make(chan *Result, 1)

	if ctx.UseCaching {
		if cached, ok := m.cache.Get(start, goal); ok {
			m.mu.Lock()
			m.cacheHits++
			m.mu.Unlock()
			out <- cached
			return out
		}
	}

	m.mu.Lock()
	algo := m.active
	m.mu.Unlock()

	run := func() {
		res := algo.FindPath(m.grid, start, goal, ctx)
		m.finalize(start, goal, ctx, res)
		out <- res
	}
	if algo.SupportsConcurrentExecution() {
		go run()
	} else {
		run()
	}
	return out
}

// finalize applies the post-search bookkeeping: statistics, cache write on
// success, observer notification.
func (m *Manager) finalize(start, goal core.Hex, ctx *Context, res *Result) {
	m.mu.Lock()
	m.searches++
	m.searchTime += res.ComputationTime
	if res.Success {
		m.pathsFound++
	} else {
		m.pathsFailed++
	}
	observers := make([]Observer, len(m.observers))
	copy(observers, m.observers)
	m.mu.Unlock()

	if res.Success && ctx.UseCaching {
		m.cache.Put(start, goal, res)
	}

	for _, o := range observers {
		if res.Success {
			o.PathFound(start, goal, res)
		} else {
			o.PathFailed(start, goal, res)
		}
	}
}

// ReachableCells floods outward from start and returns every other cell
// reachable within the movement allowance, marking each with SetReachable.
// The flood is cost-ordered so "within the allowance" is true for terrain
// costs, not just step counts.
func (m *Manager) ReachableCells(start core.Hex, maxMovement int) []core.Hex {
	return m.reachable(start, maxMovement, nil)
}

// MultiTurnReachableCells buckets reachable cells by the turn on which a
// unit moving movementPerTurn per turn can first stand on them: turn t
// holds cells whose minimal cost is in ((t-1)*movementPerTurn,
// t*movementPerTurn]. The start cell itself is not listed.
func (m *Manager) MultiTurnReachableCells(start core.Hex, movementPerTurn, maxTurns int) map[int][]core.Hex {
	out := make(map[int][]core.Hex)
	if movementPerTurn <= 0 || maxTurns <= 0 {
		return out
	}
	m.reachable(start, movementPerTurn*maxTurns, func(h core.Hex, cost int) {
		turn := (cost + movementPerTurn - 1) / movementPerTurn
		out[turn] = append(out[turn], h)
	})
	for _, cells := range out {
		sortHexes(cells)
	}
	return out
}

// reachable is the budgeted flood fill behind both reachability queries.
func (m *Manager) reachable(start core.Hex, maxMovement int, visit func(core.Hex, int)) []core.Hex {
	if m.grid == nil || maxMovement < 0 {
		return nil
	}
	if _, ok := m.grid.CellAt(start); !ok {
		return nil
	}
	ctx := NewContext()

	openSet := &nodeQueue{}
	heap.Init(openSet)
	nodes := make(map[core.Hex]*searchNode)
	startNode := &searchNode{hex: start}
	heap.Push(openSet, startNode)
	nodes[start] = startNode

	var cells []core.Hex
	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*searchNode)
		current.closed = true
		if current.hex != start {
			cells = append(cells, current.hex)
			if cell, ok := m.grid.CellAt(current.hex); ok {
				cell.SetReachable(true)
			}
			if visit != nil {
				visit(current.hex, current.gCost)
			}
		}

		for _, neighbor := range m.grid.Neighbors(current.hex) {
			if existing, ok := nodes[neighbor]; ok && existing.closed {
				continue
			}
			cell, ok := m.grid.CellAt(neighbor)
			if !ok || ctx.blocked(cell) {
				continue
			}
			tentative := current.gCost + ctx.stepCost(cell)
			if tentative > maxMovement {
				continue
			}
			existing, ok := nodes[neighbor]
			if !ok {
				node := &searchNode{hex: neighbor, gCost: tentative, fCost: tentative, parent: current}
				heap.Push(openSet, node)
				nodes[neighbor] = node
			} else if tentative < existing.gCost {
				existing.gCost = tentative
				existing.fCost = tentative
				existing.parent = current
				heap.Fix(openSet, existing.index)
			}
		}
	}
	sortHexes(cells)

	m.mu.Lock()
	observers := make([]Observer, len(m.observers))
	copy(observers, m.observers)
	m.mu.Unlock()
	for _, o := range observers {
		o.ReachableCellsCalculated(start, cells)
	}
	return cells
}

// FindMultiTurnPath finds the unrestricted path for the query and splits
// it into per-turn segments of at most movementPerTurn movement.
func (m *Manager) FindMultiTurnPath(start, goal core.Hex, movementPerTurn int, ctx *Context) *MultiTurnResult {
	if movementPerTurn <= 0 {
		return &MultiTurnResult{FailureReason: "movement per turn must be positive"}
	}
	if ctx == nil {
		ctx = NewContext()
	}
	unrestricted := ctx.Clone()
	unrestricted.MaxMovementPoints = Unlimited

	res := m.FindPath(start, goal, unrestricted)
	return SplitPath(m.grid, unrestricted, res, movementPerTurn)
}

// MarkPath writes the IsPath marker for every cell of a successful result;
// on = false clears the same cells.
func (m *Manager) MarkPath(res *Result, on bool) {
	if res == nil || m.grid == nil {
		return
	}
	for _, h := range res.Path {
		if cell, ok := m.grid.CellAt(h); ok {
			cell.SetPath(on)
		}
	}
}

// InvalidateCache drops cached results touching the given cells, or every
// cached result when called with no arguments. It is always safe to call.
func (m *Manager) InvalidateCache(cells ...core.Hex) {
	m.cache.Invalidate(cells...)
}

// AddObserver subscribes an observer to path and reachability events.
func (m *Manager) AddObserver(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
}

// RemoveObserver unsubscribes a previously added observer.
func (m *Manager) RemoveObserver(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.observers {
		if existing == o {
			m.observers = append(m.observers[:i], m.observers[i+1:]...)
			return
		}
	}
}

// Statistics returns a snapshot of the running counters.
func (m *Manager) Statistics() Statistics {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Statistics{
		PathsFound:      m.pathsFound,
		PathsFailed:     m.pathsFailed,
		CacheHits:       m.cacheHits,
		TotalSearchTime: m.searchTime,
	}
	if m.searches > 0 {
		s.AverageSearchTime = m.searchTime / time.Duration(m.searches)
	}
	return s
}

// String renders the statistics and cache state.
func (m *Manager) String() string {
	return fmt.Sprintf("Manager[%s, algorithm=%s, %s]", m.Statistics(), m.ActiveAlgorithm(), m.cache)
}

func sortHexes(hexes []core.Hex) {
	sort.Slice(hexes, func(i, j int) bool { return hexLess(hexes[i], hexes[j]) })
}
