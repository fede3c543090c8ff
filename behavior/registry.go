package behavior

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mlange-42/ark/ecs"
)

// ErrUnknownBehavior is returned when instantiating a behavior ID the registry
// has never seen. This indicates drift between the decision tiers' vocabulary
// and the catalog and must never be swallowed into a no-op.
var ErrUnknownBehavior = errors.New("behavior: unknown behavior id")

// ErrDuplicateBehavior is returned when a behavior ID is registered twice.
var ErrDuplicateBehavior = errors.New("behavior: behavior id already registered")

// Registry is the append-only behavior catalog. All registration happens at
// startup; duplicate registration is an error, never a silent replacement.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a behavior factory under the given ID.
func (r *Registry) Register(id string, factory Factory) error {
	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateBehavior, id)
	}
	if factory == nil {
		return fmt.Errorf("behavior: nil factory for %q", id)
	}
	r.factories[id] = factory
	return nil
}

// MustRegister is Register for startup wiring; a failure there is a
// programming error.
func (r *Registry) MustRegister(id string, factory Factory) {
	if err := r.Register(id, factory); err != nil {
		panic(err)
	}
}

// Instantiate creates a behavior instance for the given agent.
func (r *Registry) Instantiate(id string, owner ecs.Entity, params Params) (Instance, error) {
	factory, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBehavior, id)
	}
	return factory(owner, params)
}

// Known reports whether an ID is registered. Implements decision.Vocabulary.
func (r *Registry) Known(id string) bool {
	_, ok := r.factories[id]
	return ok
}

// IDs returns the registered behavior IDs in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
