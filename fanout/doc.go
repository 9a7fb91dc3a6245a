// Package fanout runs a batch of independent work items with a fixed
// cap on how many execute concurrently.
//
// Each item's failure is caught and recorded in the batch outcome; one
// bad item never cancels or reorders its siblings. Whether a partial
// failure fails the whole batch is an explicit per-call policy, since
// pipelines legitimately differ: quality gating wants best-effort
// counts, transcript collection wants the batch to fail loudly.
package fanout
