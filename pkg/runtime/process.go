package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/bpmnflow/internal/logging"
	"github.com/aretw0/bpmnflow/pkg/definition"
	"github.com/aretw0/bpmnflow/pkg/domain"
	"github.com/aretw0/bpmnflow/pkg/observability"
	"github.com/aretw0/bpmnflow/pkg/ports"
	"github.com/aretw0/bpmnflow/pkg/registry"
	"github.com/gofrs/uuid/v5"
)

// DefaultMaxSteps bounds Run on cyclic definitions.
const DefaultMaxSteps = 10_000

// ErrStepLimit is returned by Run when the step budget is exhausted.
var ErrStepLimit = errors.New("process step limit reached")

// ErrNotFinalized is returned when a process is created from a definition still under construction.
var ErrNotFinalized = errors.New("process definition is not finalized")

// Process is a running instance of a finalized process definition.
type Process struct {
	ID string

	def      *definition.ProcessDefinition
	nodes    map[string]*registry.Node
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	metrics  *observability.Metrics
	maxSteps int

	mu        sync.Mutex
	queue     []Token
	completed []Token
	emitted   int
	steps     int
	runCtx    context.Context
}

var _ ports.ExecutionContext = (*Process)(nil)

// Option defines a functional option for configuring a Process.
type Option func(*Process)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Process) {
		p.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Process) {
		p.hooks = hooks
	}
}

// WithMetrics records token traffic in Prometheus collectors.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Process) {
		p.metrics = m
	}
}

// WithMaxSteps overrides DefaultMaxSteps. Values below 1 are ignored.
func WithMaxSteps(n int) Option {
	return func(p *Process) {
		if n > 0 {
			p.maxSteps = n
		}
	}
}

// WithID sets the process instance id instead of a random UUID.
func WithID(id string) Option {
	return func(p *Process) {
		p.ID = id
	}
}

// NewProcess creates an idle process instance. Every flow object must have a registered kind.
func NewProcess(def *definition.ProcessDefinition, reg *registry.Registry, opts ...Option) (*Process, error) {
	if !def.Finalized() {
		return nil, ErrNotFinalized
	}

	p := &Process{
		ID:       newID(),
		def:      def,
		nodes:    make(map[string]*registry.Node),
		logger:   logging.NewNop(),
		maxSteps: DefaultMaxSteps,
		runCtx:   context.Background(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("process_id", p.ID, "definition", def.ID)

	for _, fo := range def.FlowObjects() {
		node, err := reg.NewNode(fo)
		if err != nil {
			return nil, err
		}
		p.nodes[fo.ID()] = node
	}
	return p, nil
}

// OutgoingFlows resolves outgoing flows from the definition.
func (p *Process) OutgoingFlows(fo *domain.FlowObject) []*domain.SequenceFlow {
	return p.def.OutgoingFlows(fo)
}

// EmitTokenAlong queues a new token for the target of flow.
func (p *Process) EmitTokenAlong(flow *domain.SequenceFlow, data any) {
	tok := Token{
		ID:             newID(),
		SequenceFlowID: flow.ID,
		FlowObjectID:   flow.TargetRef,
		Data:           data,
	}

	p.mu.Lock()
	p.queue = append(p.queue, tok)
	p.emitted++
	ctx := p.runCtx
	p.mu.Unlock()

	if node, ok := p.nodes[flow.SourceRef]; ok {
		p.metrics.TokenEmitted(node.FlowObject().Kind())
	}
	if p.hooks.OnTokenEmitted != nil {
		p.hooks.OnTokenEmitted(ctx, &domain.TokenEvent{
			EventBase:      p.event(domain.EventTokenEmitted),
			TokenID:        tok.ID,
			SequenceFlowID: flow.ID,
			FlowObjectID:   flow.TargetRef,
		})
	}
	p.logger.Debug("token emitted", "token_id", tok.ID, "sequence_flow_id", flow.ID, "from", flow.SourceRef, "to", flow.TargetRef)
}

// Start puts a token carrying data on every start event of the definition.
func (p *Process) Start(ctx context.Context, data any) error {
	starts := p.def.StartEvents()
	if len(starts) == 0 {
		return fmt.Errorf("process definition %q has no %s", p.def.ID, domain.KindStartEvent)
	}
	for _, fo := range starts {
		if err := p.StartAt(ctx, fo.ID(), data); err != nil {
			return err
		}
	}
	return nil
}

// StartAt puts a token carrying data on the given flow object.
func (p *Process) StartAt(ctx context.Context, flowObjectID string, data any) error {
	if _, ok := p.nodes[flowObjectID]; !ok {
		return fmt.Errorf("start at %q: %w", flowObjectID, domain.ErrFlowObjectNotFound)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, Token{ID: newID(), FlowObjectID: flowObjectID, Data: data})
	return nil
}

// Step delivers the oldest queued token to its flow object.
// A token is completed when its flow object emits nothing, either because it has
// no outgoing flows or because its Forwarder chose none.
// It returns false when the queue is empty.
func (p *Process) Step(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	p.mu.Lock()
	if len(p.queue) == 0 {
		p.mu.Unlock()
		return false, nil
	}
	if p.steps >= p.maxSteps {
		p.mu.Unlock()
		return false, fmt.Errorf("%w after %d steps", ErrStepLimit, p.steps)
	}
	tok := p.queue[0]
	p.queue = p.queue[1:]
	p.steps++
	p.runCtx = ctx
	before := p.emitted
	p.mu.Unlock()

	node := p.nodes[tok.FlowObjectID]
	fo := node.FlowObject()

	if p.hooks.OnNodeEnter != nil {
		p.hooks.OnNodeEnter(ctx, &domain.NodeEvent{
			EventBase:    p.event(domain.EventNodeEnter),
			FlowObjectID: fo.ID(),
			Kind:         fo.Kind(),
			TokenID:      tok.ID,
		})
	}
	p.logger.Debug("node enter", "flow_object_id", fo.ID(), "kind", fo.Kind(), "token_id", tok.ID)

	node.Forward(p, tok.Data)

	p.mu.Lock()
	emitted := p.emitted - before
	p.mu.Unlock()
	if emitted == 0 {
		p.complete(ctx, tok)
	}
	return true, nil
}

// Run steps until no token is left, the step limit is reached or ctx is done.
func (p *Process) Run(ctx context.Context) error {
	for {
		more, err := p.Step(ctx)
		if err != nil {
			p.logger.Warn("process stopped", "error", err)
			return err
		}
		if !more {
			p.logger.Info("process finished", "steps", p.Steps(), "completed", len(p.Completed()))
			return nil
		}
	}
}

// Pending returns a copy of the queued tokens.
func (p *Process) Pending() []Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Token(nil), p.queue...)
}

// Completed returns the tokens consumed by flow objects that emitted nothing.
func (p *Process) Completed() []Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Token(nil), p.completed...)
}

// Steps returns the number of tokens delivered so far.
func (p *Process) Steps() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.steps
}

// Done reports whether no token is left.
func (p *Process) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue) == 0
}

func (p *Process) complete(ctx context.Context, tok Token) {
	p.mu.Lock()
	p.completed = append(p.completed, tok)
	p.mu.Unlock()

	p.metrics.TokenCompleted()
	if p.hooks.OnTokenCompleted != nil {
		p.hooks.OnTokenCompleted(ctx, &domain.TokenEvent{
			EventBase:    p.event(domain.EventTokenCompleted),
			TokenID:      tok.ID,
			FlowObjectID: tok.FlowObjectID,
		})
	}
}

func (p *Process) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, ProcessID: p.ID}
}

func newID() string {
	id, _ := uuid.NewV4()
	return id.String()
}
