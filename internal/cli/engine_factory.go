package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/bpmnflow"
	"github.com/aretw0/bpmnflow/pkg/adapters/file"
	"github.com/aretw0/bpmnflow/pkg/adapters/redis"
	"github.com/aretw0/bpmnflow/pkg/observability"
	"github.com/aretw0/bpmnflow/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Options are the persistent CLI settings shared by every command.
type Options struct {
	Dir       string
	RedisAddr string
	RedisDB   int
	Debug     bool
}

// Setup is an engine plus the resources the CLI must release or expose.
// Store writes to the same place the engine reads from.
type Setup struct {
	Engine   *bpmnflow.Engine
	Store    ports.DefinitionStore
	Registry *prometheus.Registry
	close    func() error
}

// Close releases the definition store connection, if any.
func (s *Setup) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// NewEngine initializes an engine with standard CLI conventions:
// definitions come from Redis when an address is given, from Dir otherwise
// (read through Loam, written through the file store), and metrics are
// registered on a fresh registry.
func NewEngine(opts Options, logger *slog.Logger) (*Setup, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	engineOpts := []bpmnflow.Option{
		bpmnflow.WithLogger(logger),
		bpmnflow.WithMetrics(observability.NewMetrics(reg)),
	}
	if opts.Debug {
		engineOpts = append(engineOpts, bpmnflow.WithLifecycleHooks(observability.LoggingHooks(logger)))
	}

	setup := &Setup{Registry: reg}
	dir := opts.Dir
	if opts.RedisAddr != "" {
		store := redis.New(opts.RedisAddr, "", opts.RedisDB)
		engineOpts = append(engineOpts, bpmnflow.WithLoader(store))
		setup.Store = store
		setup.close = store.Close
		dir = ""
	} else {
		setup.Store = file.New(dir)
	}

	engine, err := bpmnflow.New(dir, engineOpts...)
	if err != nil {
		_ = setup.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	setup.Engine = engine
	return setup, nil
}
