package binding

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry tracks active widgets by id so one widget can act on its
// siblings, e.g. closing every other open popover. Safe for concurrent use.
type Registry[T any] struct {
	mu      sync.RWMutex
	members map[string]T
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{members: make(map[string]T)}
}

// Add registers member under id; ids are unique.
func (r *Registry[T]) Add(id string, member T) error {
	if id == "" {
		return errors.New("binding: empty registry id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.members[id]; exists {
		return fmt.Errorf("binding: %q already registered", id)
	}
	r.members[id] = member
	return nil
}

// Remove unregisters id and reports whether it was present.
func (r *Registry[T]) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.members[id]; !exists {
		return false
	}
	delete(r.members, id)
	return true
}

func (r *Registry[T]) Get(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	member, ok := r.members[id]
	return member, ok
}

func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Broadcast calls fn for every member in id order. fn runs without the
// registry lock held, so it may Add or Remove.
func (r *Registry[T]) Broadcast(fn func(id string, member T)) {
	r.BroadcastExcept("", fn)
}

// BroadcastExcept is Broadcast skipping the member registered as except.
func (r *Registry[T]) BroadcastExcept(except string, fn func(id string, member T)) {
	type entry struct {
		id     string
		member T
	}

	r.mu.RLock()
	snapshot := make([]entry, 0, len(r.members))
	for id, member := range r.members {
		if id == except {
			continue
		}
		snapshot = append(snapshot, entry{id: id, member: member})
	}
	r.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].id < snapshot[j].id })
	for _, e := range snapshot {
		fn(e.id, e.member)
	}
}
