package pathfinding

import "hexpath/core"

// Unlimited disables a budget field.
const Unlimited = -1

// DefaultMaxSearchNodes caps node expansion when the caller does not set a
// limit, so a bad query cannot spin on a huge map.
const DefaultMaxSearchNodes = 50000

// Context is the per-search configuration bundle. It is read-only for the
// duration of a search: the engine never mutates it, and callers must not
// change it while a search that received it is running. Clone exists for
// callers that want to tweak a shared baseline.
type Context struct {
	// MaxMovementPoints is the movement budget. Paths whose total cost
	// exceeds it are rejected. Unlimited (-1) disables the check.
	MaxMovementPoints int
	// MaxSearchNodes caps how many nodes a search may expand before it
	// gives up.
	MaxSearchNodes int

	// RequireExplored excludes cells not yet revealed by fog of war.
	RequireExplored bool
	// AllowMoveThroughAllies permits paths through ally-occupied cells.
	AllowMoveThroughAllies bool
	// AllowMoveThroughEnemies permits paths through enemy-occupied cells.
	AllowMoveThroughEnemies bool

	// DynamicObstacles are cells treated as impassable for this search
	// only, regardless of their grid state.
	DynamicObstacles map[core.Hex]struct{}
	// TerrainCostMultipliers scales the movement cost of cells by terrain
	// label. Unlisted labels default to 1.0.
	TerrainCostMultipliers map[string]float64

	// UseCaching lets the manager store and reuse this search's result.
	UseCaching bool
	// StoreDiagnosticData attaches the cost-so-far and parent-pointer
	// maps to the result.
	StoreDiagnosticData bool

	// Cancel aborts the search cooperatively when closed. The search
	// checks it once per node expansion and fails with ReasonCancelled.
	Cancel <-chan struct{}
}

// NewContext returns a context with default settings: unlimited movement,
// the default node cap, caching enabled and all traversal restrictions on.
func NewContext() *Context {
	return &Context{
		MaxMovementPoints: Unlimited,
		MaxSearchNodes:    DefaultMaxSearchNodes,
		UseCaching:        true,
	}
}

// Clone returns an independent copy. The obstacle set and multiplier map
// are copied so the clone can be modified freely.
func (c *Context) Clone() *Context {
	out := *c
	if c.DynamicObstacles != nil {
		out.DynamicObstacles = make(map[core.Hex]struct{}, len(c.DynamicObstacles))
		for h := range c.DynamicObstacles {
			out.DynamicObstacles[h] = struct{}{}
		}
	}
	if c.TerrainCostMultipliers != nil {
		out.TerrainCostMultipliers = make(map[string]float64, len(c.TerrainCostMultipliers))
		for k, v := range c.TerrainCostMultipliers {
			out.TerrainCostMultipliers[k] = v
		}
	}
	return &out
}

// cancelled reports whether the context's cancel channel has been closed.
func (c *Context) cancelled() bool {
	if c.Cancel == nil {
		return false
	}
	select {
	case <-c.Cancel:
		return true
	default:
		return false
	}
}
