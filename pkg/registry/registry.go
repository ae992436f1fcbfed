// Package registry maps flow object kinds to their behavior: the validation
// rules a kind must satisfy and the way it forwards tokens.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/aretw0/bpmnflow/pkg/flowobject"
)

// Behavior is what a concrete node kind adds on top of a plain flow object.
type Behavior struct {
	// Rules are applied, in order, when the kind is validated. A kind may have none.
	Rules []flowobject.Rule
	// Forward overrides token forwarding. Nil selects flowobject.DefaultForwarder.
	Forward flowobject.Forwarder
}

// Registry manages the known node kinds.
type Registry struct {
	mu    sync.RWMutex
	kinds map[domain.Kind]Behavior
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[domain.Kind]Behavior),
	}
}

// Register adds a kind to the registry.
// If the kind is already registered, it is overwritten.
func (r *Registry) Register(kind domain.Kind, b Behavior) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[kind] = b
}

// Lookup returns the behavior registered for kind.
func (r *Registry) Lookup(kind domain.Kind) (Behavior, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.kinds[kind]
	return b, ok
}

// Kinds lists the registered kinds in lexical order.
func (r *Registry) Kinds() []domain.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Kind, 0, len(r.kinds))
	for k := range r.kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewNode binds fo to the behavior of its kind.
// Returns an error wrapping domain.ErrUnknownKind if the kind is not registered.
func (r *Registry) NewNode(fo *domain.FlowObject) (*Node, error) {
	b, ok := r.Lookup(fo.Kind())
	if !ok {
		return nil, fmt.Errorf("flow object %q of kind %q: %w", fo.ID(), fo.Kind(), domain.ErrUnknownKind)
	}
	return &Node{
		Base:  flowobject.NewBase(fo, b.Forward),
		rules: b.Rules,
	}, nil
}
