package records

import "sync/atomic"

// Generation numbers list reloads so that only the newest result is
// applied. Safe for concurrent use.
type Generation struct {
	n atomic.Uint64
}

// Next starts a new reload and returns its number.
func (g *Generation) Next() uint64 {
	return g.n.Add(1)
}

func (g *Generation) Current() uint64 {
	return g.n.Load()
}

func (g *Generation) IsCurrent(n uint64) bool {
	return g.n.Load() == n
}
