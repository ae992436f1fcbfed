package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDefinitionLoaderContract verifies that a DefinitionLoader serves exactly setupData.
func RunDefinitionLoaderContract(t *testing.T, loader DefinitionLoader, setupData map[string][]byte) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get", func(t *testing.T) {
		for id, want := range setupData {
			got, err := loader.GetDefinition(ctx, id)
			require.NoError(t, err, "GetDefinition(%s)", id)
			assert.Equal(t, string(want), string(got))
		}
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := loader.GetDefinition(ctx, "non-existent-definition")
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
	})

	t.Run("List", func(t *testing.T) {
		ids, err := loader.ListDefinitions(ctx)
		require.NoError(t, err)
		assert.Len(t, ids, len(setupData))
		for id := range setupData {
			assert.Contains(t, ids, id)
		}
		assert.IsNonDecreasing(t, ids)
	})
}

// RunDefinitionStoreContract runs the write path of a DefinitionStore and then
// checks the loader contract against what was written.
func RunDefinitionStoreContract(t *testing.T, store DefinitionStore) {
	t.Helper()
	ctx := context.Background()
	suffix := time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		id := "contract-" + suffix
		raw := []byte("id: " + id + "\n")
		require.NoError(t, store.SaveDefinition(ctx, id, raw))

		loaded, err := store.GetDefinition(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, string(raw), string(loaded))

		require.NoError(t, store.DeleteDefinition(ctx, id))
	})

	t.Run("Delete", func(t *testing.T) {
		id := "contract-delete-" + suffix
		require.NoError(t, store.SaveDefinition(ctx, id, []byte("id: x")))
		require.NoError(t, store.DeleteDefinition(ctx, id))

		_, err := store.GetDefinition(ctx, id)
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound, "Get after Delete should return ErrDefinitionNotFound")

		assert.NoError(t, store.DeleteDefinition(ctx, id), "deleting twice is not an error")
	})

	t.Run("Loader", func(t *testing.T) {
		data := map[string][]byte{
			"contract-a-" + suffix: []byte("id: a"),
			"contract-b-" + suffix: []byte("id: b"),
		}
		for id, raw := range data {
			require.NoError(t, store.SaveDefinition(ctx, id, raw))
		}
		defer func() {
			for id := range data {
				_ = store.DeleteDefinition(ctx, id)
			}
		}()
		RunDefinitionLoaderContract(t, store, data)
	})
}
