package fractal

import (
	"fmt"
	"slices"
	"sync"
)

// entry pairs a registry name with its implementation.
type entry[F any] struct {
	name string
	fn   F
}

// registry is an ordered name -> implementation table. Index 0 is the
// fallback for unknown names and out-of-range handles. Registration takes the
// write lock; renders resolve their functions once under the read lock, so a
// registration never changes a render that is already running.
type registry[F any] struct {
	kind  string
	mu    sync.RWMutex
	names []string
	funcs []F
	index map[string]int
}

func newRegistry[F any](kind string, entries []entry[F]) *registry[F] {
	r := &registry[F]{kind: kind, index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if _, err := r.register(e.name, e.fn); err != nil {
			panic(err)
		}
	}
	return r
}

func (r *registry[F]) register(name string, fn F) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name == "" {
		return 0, fmt.Errorf("register %s: empty name", r.kind)
	}
	if _, ok := r.index[name]; ok {
		return 0, fmt.Errorf("register %s %q: %w", r.kind, name, ErrDuplicateName)
	}
	id := len(r.names)
	r.names = append(r.names, name)
	r.funcs = append(r.funcs, fn)
	r.index[name] = id
	return id, nil
}

// lookup returns the implementation for id, or the fallback.
func (r *registry[F]) lookup(id int) F {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id < 0 || id >= len(r.funcs) {
		id = 0
	}
	return r.funcs[id]
}

// parse returns the id registered under name, or the fallback id 0.
func (r *registry[F]) parse(name string) int {
	id, _ := r.find(name)
	return id
}

func (r *registry[F]) find(name string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.index[name]
	return id, ok
}

// name returns the registered name for id, or the fallback name.
func (r *registry[F]) name(id int) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id < 0 || id >= len(r.names) {
		id = 0
	}
	return r.names[id]
}

// list returns the registered names in registration order.
func (r *registry[F]) list() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.names)
}
