package dispatcher

import (
	"sort"
	"sync"

	"github.com/mikmak/psga/internal/action"
)

// Registry maps event names to actions. Each name holds exactly one action;
// registering a name again replaces the previous action.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]*action.Action
}

// NewRegistry creates a new action registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]*action.Action),
	}
}

// Register binds name to a and returns the action it replaced, if any.
func (r *Registry) Register(name string, a *action.Action) *action.Action {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.actions[name]
	r.actions[name] = a
	return prev
}

// Unregister removes the binding for name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.actions, name)
}

// Get returns the action bound to name, or nil.
func (r *Registry) Get(name string) *action.Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.actions[name]
}

// Has returns true if an action is bound to name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.actions[name]
	return ok
}

// List returns all registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered names.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}

// Clear removes all registered names.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = make(map[string]*action.Action)
}
