/*
Package observability provides tools for monitoring the bpmnflow engine.

It bundles the Prometheus collectors fed by validation and by the token runtime,
and adapters that turn runtime lifecycle hooks into structured log lines.
*/
package observability
