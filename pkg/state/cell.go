package state

import "sync"

// Cell is a write-once slot-index holder embedded in model entities: the
// "interior mutability" pattern where entities are built once, then physics
// modules assign their slot indices into these cells during construction,
// after which they are stable for the life of the run. A second assignment
// is a construction-time bug, not a runtime one, and is reported as such.
type Cell struct {
	mu     sync.Mutex
	idx    int
	set    bool
}

// NewCell returns an unassigned cell.
func NewCell() Cell { return Cell{idx: -1} }

// Assign binds the slot index. Returns false if the cell was already set.
func (c *Cell) Assign(idx int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.set {
		return false
	}
	c.idx = idx
	c.set = true
	return true
}

// Slot returns the assigned index and whether it was ever assigned.
func (c *Cell) Slot() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idx, c.set
}

// MustSlot returns the assigned index, panicking if unassigned. Only call
// this after header finalization has validated that all required cells are
// set; it is a programming-error guard, not user-facing validation.
func (c *Cell) MustSlot() int {
	idx, set := c.Slot()
	if !set {
		panic("state: read of unassigned slot cell")
	}
	return idx
}
