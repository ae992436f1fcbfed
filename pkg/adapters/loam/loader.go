package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/bpmnflow/internal/compiler"
	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/aretw0/loam"
)

// Extensions are the document types served as process descriptions.
// Other documents in the repository (READMEs, notes) are ignored.
var Extensions = []string{".yaml", ".yml", ".json"}

// Loader adapts a Loam repository to the ports.DefinitionLoader interface.
type Loader struct {
	Repo   *loam.TypedRepository[compiler.Document]
	parser *compiler.Parser
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[compiler.Document]) *Loader {
	return &Loader{
		Repo:   repo,
		parser: compiler.NewParser(),
	}
}

// Open initializes a read-only Loam repository over dir.
// Strict mode keeps numbers as json.Number instead of float64.
func Open(dir string) (*Loader, error) {
	repo, err := loam.Init(dir,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[compiler.Document](repo)), nil
}

// GetDefinition loads the document stored under id and re-encodes it as a YAML
// process description. The file name is the id when the document has none.
func (l *Loader) GetDefinition(ctx context.Context, id string) ([]byte, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return nil, l.getError(ctx, id, err)
	}

	data := doc.Data
	if data.ID == "" {
		data.ID = trimExtension(doc.ID)
	}
	return l.parser.Encode(&data)
}

// getError separates a missing document from one Loam failed to read.
func (l *Loader) getError(ctx context.Context, id string, cause error) error {
	ids, err := l.ListDefinitions(ctx)
	if err == nil && !contains(ids, id) {
		return fmt.Errorf("%s: %w", id, domain.ErrDefinitionNotFound)
	}
	return fmt.Errorf("loam get failed for %s: %w", id, cause)
}

// ListDefinitions lists the ids of every process description, sorted.
// Two files that only differ by extension are reported as a collision.
func (l *Loader) ListDefinitions(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		if !served(doc.ID) {
			continue
		}
		id := trimExtension(doc.ID)
		if existing, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func served(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func contains(ids []string, id string) bool {
	i := sort.SearchStrings(ids, id)
	return i < len(ids) && ids[i] == id
}

func trimExtension(id string) string {
	return filepath.ToSlash(strings.TrimSuffix(id, filepath.Ext(id)))
}
