package memory

import "context"

// Store implements ports.DefinitionStore in memory.
type Store struct {
	*Loader
}

// NewStore creates a new empty in-memory store.
func NewStore() *Store {
	return &Store{Loader: NewLoader(nil)}
}

// SaveDefinition stores a copy of raw under id.
func (s *Store) SaveDefinition(_ context.Context, id string, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.definitions[id] = append([]byte(nil), raw...)
	return nil
}

// DeleteDefinition removes id.
func (s *Store) DeleteDefinition(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.definitions, id)
	return nil
}
