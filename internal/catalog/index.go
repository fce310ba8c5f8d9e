package catalog

import (
	"sync"
	"time"
)

// Index provides thread-safe in-memory lookup of the platform catalog.
// It is seeded with the built-in defaults and may be replaced wholesale
// by the catalog reloader.
type Index struct {
	mu         sync.RWMutex
	order      []Platform
	byName     map[string]Platform
	lastReload time.Time
}

// NewIndex creates an index seeded with the built-in defaults.
func NewIndex() *Index {
	idx := &Index{}
	idx.Update(Defaults())
	return idx
}

// Update replaces all platforms in the index, preserving the given order.
func (idx *Index) Update(platforms []Platform) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.order = make([]Platform, len(platforms))
	copy(idx.order, platforms)
	idx.byName = make(map[string]Platform, len(platforms))
	for _, p := range platforms {
		idx.byName[p.Name] = p
	}
	idx.lastReload = time.Now()
}

// Get retrieves a platform descriptor by display name.
func (idx *Index) Get(name string) (Platform, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	p, ok := idx.byName[name]
	return p, ok
}

// All returns all platforms in catalog order.
func (idx *Index) All() []Platform {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]Platform, len(idx.order))
	copy(out, idx.order)
	return out
}

// Count returns the number of platforms in the index.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.order)
}

// LastReload returns the timestamp of the last catalog update.
func (idx *Index) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
