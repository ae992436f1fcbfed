package ports

import "context"

// DefinitionStore is a DefinitionLoader that can also be written to.
type DefinitionStore interface {
	DefinitionLoader

	// SaveDefinition stores (or replaces) the raw description under id.
	SaveDefinition(ctx context.Context, id string, raw []byte) error

	// DeleteDefinition removes the description. Deleting an unknown id is not an error.
	DeleteDefinition(ctx context.Context, id string) error
}
