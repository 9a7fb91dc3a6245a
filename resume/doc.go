// Package resume makes per-item processing idempotent and crash-safe.
//
// A Processor wraps an item worker with a completion check against a
// durable marker and persists every item's outcome the moment it
// settles. A crash mid-batch therefore loses at most the in-flight
// items: completed items carry their marker in the store and are
// skipped on the next pass unless reprocessing is forced.
//
// The marker must live on the item's own persisted state, never in an
// in-memory set, so resumability survives process restarts.
package resume
