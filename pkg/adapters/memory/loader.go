package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/bpmnflow/pkg/domain"
)

// Loader implements ports.DefinitionLoader using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	mu          sync.RWMutex
	definitions map[string][]byte
}

// NewLoader creates a new Loader with the provided raw descriptions (YAML or JSON).
func NewLoader(data map[string]string) *Loader {
	definitions := make(map[string][]byte, len(data))
	for k, v := range data {
		definitions[k] = []byte(v)
	}
	return &Loader{
		definitions: definitions,
	}
}

// GetDefinition retrieves the raw description of a process definition by ID.
func (l *Loader) GetDefinition(_ context.Context, id string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	content, ok := l.definitions[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrDefinitionNotFound)
	}
	return append([]byte(nil), content...), nil
}

// ListDefinitions returns all available definition IDs.
func (l *Loader) ListDefinitions(_ context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := make([]string, 0, len(l.definitions))
	for k := range l.definitions {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
