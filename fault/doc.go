// Package fault classifies errors from remote providers.
//
// Every error crossing a guarded-call boundary is sorted into a small
// set of classes that the execution layers key their decisions on:
// retry policies retry Transient errors, fallback chains advance on
// RequestShape errors, and Config errors fail the enclosing job
// without touching a circuit breaker.
package fault
