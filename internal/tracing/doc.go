// Package tracing sets up the OpenTelemetry tracer provider used by the CLI.
// Spans for each git invocation are written to a writer as JSON when tracing is on.
package tracing
