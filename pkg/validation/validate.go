package validation

import (
	"context"
	"errors"
	"log/slog"
	"runtime"

	"github.com/aretw0/bpmnflow/internal/logging"
	"github.com/aretw0/bpmnflow/pkg/definition"
	"github.com/aretw0/bpmnflow/pkg/observability"
	"github.com/aretw0/bpmnflow/pkg/registry"
	"golang.org/x/sync/errgroup"
)

type options struct {
	concurrency int
	logger      *slog.Logger
	metrics     *observability.Metrics
	queue       *ErrorQueue
}

// Option configures Validate.
type Option func(*options)

// WithConcurrency bounds the number of flow objects validated in parallel.
// Values below 1 validate sequentially.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records the findings in Prometheus collectors.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithQueue appends findings to an existing queue instead of a fresh one.
func WithQueue(q *ErrorQueue) Option {
	return func(o *options) {
		o.queue = q
	}
}

// Validate applies the registered rules of every flow object in def.
//
// Structural findings end up in the returned queue. The error is reserved for
// problems that prevent checking a flow object at all (an unregistered kind)
// and for context cancellation; those flow objects are skipped while the rest
// are still validated.
func Validate(ctx context.Context, def *definition.ProcessDefinition, reg *registry.Registry, opts ...Option) (*ErrorQueue, error) {
	o := &options{
		concurrency: runtime.GOMAXPROCS(0),
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	queue := o.queue
	if queue == nil {
		queue = NewErrorQueue()
	}
	before := queue.Len()

	objects := def.FlowObjects()
	nodeErrs := make([]error, len(objects))

	g := new(errgroup.Group)
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	} else {
		g.SetLimit(1)
	}
	for i, fo := range objects {
		if err := ctx.Err(); err != nil {
			nodeErrs[i] = err
			break
		}
		g.Go(func() error {
			node, err := reg.NewNode(fo)
			if err != nil {
				nodeErrs[i] = err
				return nil
			}
			node.Validate(def, queue)
			return nil
		})
	}
	_ = g.Wait()

	err := errors.Join(nodeErrs...)
	found := queue.Errors()[before:]
	o.metrics.Validated(found)
	o.logger.Debug("process definition validated",
		"definition", def.ID,
		"flow_objects", len(objects),
		"findings", len(found),
	)
	if err != nil {
		o.logger.Warn("process definition partially validated", "definition", def.ID, "error", err)
	}
	return queue, err
}
