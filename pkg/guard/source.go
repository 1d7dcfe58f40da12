package guard

import "sync"

// Source supplies the actor's current held permissions. Snapshot is read
// synchronously at each decision; implementations must be safe for
// concurrent use and must return a slice the caller may read freely.
type Source interface {
	Snapshot() []string
}

// Static is a fixed held-permission set. Suitable when the actor's
// permissions are known once at startup.
type Static []string

// Snapshot returns the permission set as-is.
func (s Static) Snapshot() []string { return s }

// SourceFunc adapts a function to the Source interface, for hosts that
// already track permissions elsewhere (a session object, a store).
type SourceFunc func() []string

// Snapshot calls the wrapped function.
func (f SourceFunc) Snapshot() []string { return f() }

// Cell is a swappable held-permission set: an observable value whose
// current contents are read at decision time. Set replaces the whole set;
// there is no merging and no change notification.
type Cell struct {
	mu    sync.RWMutex
	perms []string
}

// NewCell creates a Cell holding a copy of perms.
func NewCell(perms []string) *Cell {
	c := &Cell{}
	c.Set(perms)
	return c
}

// Set replaces the held set with a copy of perms. Last write wins.
func (c *Cell) Set(perms []string) {
	copied := make([]string, len(perms))
	copy(copied, perms)

	c.mu.Lock()
	c.perms = copied
	c.mu.Unlock()
}

// Snapshot returns the current held set. The returned slice is never
// mutated by a later Set.
func (c *Cell) Snapshot() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.perms
}
