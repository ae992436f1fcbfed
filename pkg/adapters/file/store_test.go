package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/bpmnflow/pkg/adapters/file"
	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/aretw0/bpmnflow/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.DefinitionStore = (*file.Store)(nil)

func TestStore_Contract(t *testing.T) {
	ports.RunDefinitionStoreContract(t, file.New(t.TempDir()))
}

func TestStore_ReadsEveryExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("id: a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("id: b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.json"), []byte(`{"id":"c"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.yaml"), 0755))

	ports.RunDefinitionLoaderContract(t, file.New(dir), map[string][]byte{
		"a": []byte("id: a"),
		"b": []byte("id: b"),
		"c": []byte(`{"id":"c"}`),
	})
}

func TestStore_MissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "nope"))

	ids, err := store.ListDefinitions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = store.GetDefinition(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
}

func TestStore_RejectsPathIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "..", "../etc/passwd", `a\b`} {
		assert.Error(t, store.SaveDefinition(ctx, id, []byte("x")), "id %q", id)
		_, err := store.GetDefinition(ctx, id)
		assert.Error(t, err, "id %q", id)
	}
}
