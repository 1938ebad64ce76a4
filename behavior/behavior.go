package behavior

import (
	"fmt"
	"slices"
	"sync"

	"github.com/syssam/weave"
	"github.com/syssam/weave/schema"
)

// Behavior is a configured extension attached to one table.
type Behavior interface {
	// Name returns the behavior name, e.g. "timestampable".
	Name() string
	// Parameters returns the resolved configuration.
	Parameters() Params
	// AugmentSchema adds the behavior's derived columns to t. It must be
	// idempotent and must never replace a column that already exists.
	AugmentSchema(t *schema.Table) error
	// Contribute returns the code for hook h. An empty contribution means
	// the behavior has nothing to add at h.
	Contribute(h HookPoint, t *Target) (Contribution, error)
}

// Factory creates a behavior for the named table from the parameter
// overrides of its schema definition.
type Factory func(table string, overrides map[string]string) (Behavior, error)

// Registry maps behavior names to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name, replacing any previous one.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Names returns the registered behavior names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New creates the named behavior for table.
func (r *Registry) New(name, table string, overrides map[string]string) (Behavior, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, weave.NewSchemaError(table, "", fmt.Sprintf("unknown behavior %q", name), nil)
	}
	return f(table, overrides)
}
