package ports

import "context"

// DefinitionLoader defines how the engine retrieves raw process descriptions.
// This allows the storage layer (files, memory, Redis) to be decoupled from parsing.
type DefinitionLoader interface {
	// GetDefinition retrieves the raw description (YAML or JSON) of a process definition.
	// Unknown ids yield an error wrapping domain.ErrDefinitionNotFound.
	GetDefinition(ctx context.Context, id string) ([]byte, error)

	// ListDefinitions returns the ids of every available process definition, sorted.
	ListDefinitions(ctx context.Context) ([]string, error)
}
