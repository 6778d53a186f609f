package control

import "sync"

// Cell holds the session's State behind a read-write lock. The detection
// loop is the only writer; the render loop and the dashboard handlers read
// snapshots. Readers never see a half-applied frame: Update runs the whole
// mutation under the write lock.
type Cell struct {
	mu    sync.RWMutex
	state State
}

// NewCell returns a cell seeded with the given state.
func NewCell(initial State) *Cell {
	return &Cell{state: initial}
}

// Update applies fn to the state under the write lock. fn must not block.
func (c *Cell) Update(fn func(*State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
}

// Snapshot returns a copy of the current state.
func (c *Cell) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}
