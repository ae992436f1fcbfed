package bpmnflow

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/bpmnflow/internal/compiler"
	"github.com/aretw0/bpmnflow/internal/logging"
	loamAdapter "github.com/aretw0/bpmnflow/pkg/adapters/loam"
	"github.com/aretw0/bpmnflow/pkg/definition"
	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/aretw0/bpmnflow/pkg/observability"
	"github.com/aretw0/bpmnflow/pkg/ports"
	"github.com/aretw0/bpmnflow/pkg/registry"
	"github.com/aretw0/bpmnflow/pkg/runtime"
	"github.com/aretw0/bpmnflow/pkg/validation"
)

// Engine is the high-level entry point for the bpmnflow library.
// It loads process descriptions, validates them and runs token-driven instances.
type Engine struct {
	loader      ports.DefinitionLoader
	parser      *compiler.Parser
	registry    *registry.Registry
	metrics     *observability.Metrics
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	concurrency int
	maxSteps    int
	Name        string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom DefinitionLoader, bypassing the default directory loader.
func WithLoader(l ports.DefinitionLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRegistry replaces the default per-kind behavior registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = reg
	}
}

// WithMetrics enables prometheus counters for validations and tokens.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLifecycleHooks registers observability hooks on every process started by the engine.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithConcurrency bounds how many flow objects are validated in parallel.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// WithMaxSteps bounds the number of tokens a single Run may consume.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		e.maxSteps = n
	}
}

// New initializes a new Engine.
// By default, it reads process descriptions from the directory at dir through a
// read-only Loam repository.
// If WithLoader option is provided, dir can be empty and is only used as a label.
func New(dir string, opts ...Option) (*Engine, error) {
	eng := &Engine{
		parser: compiler.NewParser(),
	}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if dir == "" {
			return nil, fmt.Errorf("dir is required when no custom loader is provided")
		}
		absPath, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(absPath)

		loader, err := loamAdapter.Open(absPath)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
	} else if dir != "" {
		eng.Name = filepath.Base(dir)
	}

	if eng.registry == nil {
		eng.registry = registry.Default()
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("repository", eng.Name)
	}

	return eng, nil
}

// Definitions lists the ids known to the loader.
func (e *Engine) Definitions(ctx context.Context) ([]string, error) {
	return e.loader.ListDefinitions(ctx)
}

// Definition loads and compiles the process definition stored under id.
func (e *Engine) Definition(ctx context.Context, id string) (*definition.ProcessDefinition, error) {
	raw, err := e.loader.GetDefinition(ctx, id)
	if err != nil {
		return nil, err
	}
	def, err := e.parser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("definition %s: %w", id, err)
	}
	return def, nil
}

// Parse compiles a raw YAML or JSON process description without touching the loader.
func (e *Engine) Parse(raw []byte) (*definition.ProcessDefinition, error) {
	return e.parser.Parse(raw)
}

// Validate loads the definition stored under id and validates it.
// See ValidateDefinition for the meaning of a non-nil report returned with an error.
func (e *Engine) Validate(ctx context.Context, id string) (*Report, error) {
	def, err := e.Definition(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.ValidateDefinition(ctx, def)
}

// ValidateRaw compiles and validates a raw process description.
func (e *Engine) ValidateRaw(ctx context.Context, raw []byte) (*Report, error) {
	def, err := e.Parse(raw)
	if err != nil {
		return nil, err
	}
	return e.ValidateDefinition(ctx, def)
}

// ValidateDefinition runs every registered rule over def.
//
// Flow objects that cannot be checked (an unregistered kind) do not stop the
// others: the report still carries every finding, lists them in NodeErrors, and
// is returned together with the joined error.
func (e *Engine) ValidateDefinition(ctx context.Context, def *definition.ProcessDefinition) (*Report, error) {
	opts := []validation.Option{
		validation.WithLogger(e.logger),
		validation.WithMetrics(e.metrics),
	}
	if e.concurrency > 0 {
		opts = append(opts, validation.WithConcurrency(e.concurrency))
	}
	queue, err := validation.Validate(ctx, def, e.registry, opts...)
	report := newReport(def, queue)
	if err != nil {
		report.NodeErrors = nodeErrors(err)
		return report, err
	}
	return report, nil
}

// ValidateAll validates every definition known to the loader, in listing order.
// Definitions that fail to load or compile are reported through Report.LoadError;
// partially checked ones keep their findings next to Report.NodeErrors.
func (e *Engine) ValidateAll(ctx context.Context) ([]*Report, error) {
	ids, err := e.loader.ListDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	reports := make([]*Report, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		report, err := e.Validate(ctx, id)
		if err != nil {
			e.logger.Warn("definition could not be fully validated", "definition", id, "error", err)
		}
		if report == nil {
			report = &Report{DefinitionID: id, LoadError: err.Error()}
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// NewProcess creates a process instance for the definition stored under id.
// Extra runtime options are applied after the engine defaults.
func (e *Engine) NewProcess(ctx context.Context, id string, opts ...runtime.Option) (*runtime.Process, error) {
	def, err := e.Definition(ctx, id)
	if err != nil {
		return nil, err
	}
	base := []runtime.Option{
		runtime.WithLogger(e.logger.With("definition", def.ID)),
		runtime.WithLifecycleHooks(e.hooks),
		runtime.WithMetrics(e.metrics),
	}
	if e.maxSteps > 0 {
		base = append(base, runtime.WithMaxSteps(e.maxSteps))
	}
	return runtime.NewProcess(def, e.registry, append(base, opts...)...)
}

// Run starts a process on every start event of the definition and drains it.
func (e *Engine) Run(ctx context.Context, id string, data any, opts ...runtime.Option) (*runtime.Process, error) {
	p, err := e.NewProcess(ctx, id, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Start(ctx, data); err != nil {
		return p, err
	}
	return p, p.Run(ctx)
}

// Loader returns the underlying DefinitionLoader used by the engine.
func (e *Engine) Loader() ports.DefinitionLoader {
	return e.loader
}

// Registry returns the behavior registry used for validation and forwarding.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}
