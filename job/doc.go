// Package job tracks the lifecycle of asynchronous work records.
//
// A job record moves through a small state machine: PENDING at
// creation, RUNNING once picked up, then COMPLETED or FAILED. The
// Runner is the outermost wrapper around a job's work: it performs the
// transitions, captures a single-line error summary on failure, and
// guarantees a record never ends a run still RUNNING.
package job
