// Package observe provides observability primitives for external task
// execution.
//
// It is a pure instrumentation library: no execution, no transport, no I/O
// beyond exporter setup. Consumers wire the observer into guarded calls,
// batch runs, and job runners.
package observe
