/*
Package runtime provides a small token-driven process instance.

A Process is the ExecutionContext collaborator of the flow-object core: flow
objects ask it for their outgoing sequence flows and hand it tokens to emit. The
Process only queues those tokens; it does not decide routing, which stays with
the forwarder of each node kind.

	proc, _ := runtime.NewProcess(def, registry.Default(), runtime.WithLogger(logger))
	_ = proc.Start(ctx, map[string]any{"order": 42})
	if err := proc.Run(ctx); err != nil {
	    // step limit reached or context cancelled
	}
	for _, tok := range proc.Completed() {
	    fmt.Println(tok.FlowObjectID)
	}
*/
package runtime
