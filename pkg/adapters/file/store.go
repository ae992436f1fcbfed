package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/bpmnflow/pkg/domain"
)

// Extensions are the file suffixes recognized as process descriptions, in lookup order.
var Extensions = []string{".yaml", ".yml", ".json"}

// Store implements ports.DefinitionStore using the local filesystem.
// Each process definition is one file in BasePath; its id is the file name without extension.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to the current directory.
func New(basePath string) *Store {
	if basePath == "" {
		basePath = "."
	}
	return &Store{BasePath: basePath}
}

// GetDefinition reads the first <id><ext> file found for Extensions.
func (s *Store) GetDefinition(_ context.Context, id string) ([]byte, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	for _, ext := range Extensions {
		data, err := os.ReadFile(filepath.Join(s.BasePath, id+ext))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read definition %s: %w", id, err)
		}
	}
	return nil, fmt.Errorf("%s: %w", id, domain.ErrDefinitionNotFound)
}

// ListDefinitions returns the ids of every recognized file in BasePath.
func (s *Store) ListDefinitions(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}

	seen := make(map[string]bool)
	ids := []string{}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "tmp-") {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !isExtension(ext) {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ext)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// SaveDefinition writes raw to <id>.yaml atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) SaveDefinition(_ context.Context, id string, raw []byte) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure definition directory: %w", err)
	}

	destPath := filepath.Join(s.BasePath, id+".yaml")

	// Same directory as the destination so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+id+"-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(raw); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename definition file: %w", err)
	}
	return nil
}

// DeleteDefinition removes every file stored for id.
func (s *Store) DeleteDefinition(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	for _, ext := range Extensions {
		err := os.Remove(filepath.Join(s.BasePath, id+ext))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to delete definition %s: %w", id, err)
		}
	}
	return nil
}

func checkID(id string) error {
	if id == "" {
		return fmt.Errorf("definition id cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("invalid definition id %q", id)
	}
	return nil
}

func isExtension(ext string) bool {
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
