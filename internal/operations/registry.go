package operations

import (
	"fmt"
	"sync"
)

// Registry holds the steps of one aggregation run in execution order.
//
// Order is the only thing that links the steps: each one rewrites the table
// the previous one left behind, so NewGradebookRegistry registers them as
// drop, normalize, prune, one aggregate step per assignment group, and
// finally reduce. Aggregate steps must follow normalization because they
// select columns by the category captured there, and reduction must come
// last so that assessment columns are never folded into an assignment count.
type Registry struct {
	mu    sync.RWMutex
	steps map[string]Step
	order []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		steps: make(map[string]Step),
		order: make([]string, 0),
	}
}

// Register appends step to the run. IDs must be unique; aggregate steps get
// theirs from AggregateStageID so two groups with the same label collide here
// instead of silently running twice.
func (r *Registry) Register(step Step) error {
	if step == nil {
		return fmt.Errorf("cannot register nil step")
	}

	id := step.ID()
	if id == "" {
		return fmt.Errorf("step %q has an empty ID", step.Name())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.steps[id]; exists {
		return fmt.Errorf("step %s already registered at position %d", id, r.position(id))
	}

	r.steps[id] = step
	r.order = append(r.order, id)
	return nil
}

// position returns the zero-based run position of id, or -1. The caller
// holds the lock.
func (r *Registry) position(id string) int {
	for i, existing := range r.order {
		if existing == id {
			return i
		}
	}
	return -1
}

// Get returns the step registered under id
func (r *Registry) Get(id string) (Step, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	step, exists := r.steps[id]
	if !exists {
		return nil, fmt.Errorf("step %s not found", id)
	}
	return step, nil
}

// Has reports whether id is part of the run
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.steps[id]
	return exists
}

// List returns the steps in run order
func (r *Registry) List() []Step {
	r.mu.RLock()
	defer r.mu.RUnlock()

	steps := make([]Step, 0, len(r.order))
	for _, id := range r.order {
		steps = append(steps, r.steps[id])
	}
	return steps
}

// ListIDs returns the step IDs in run order
func (r *Registry) ListIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Count returns the number of steps in the run
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
