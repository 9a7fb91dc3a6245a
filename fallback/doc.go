// Package fallback tries generation requests against an ordered list
// of provider configurations.
//
// The chain advances only when a provider rejects the request payload
// itself (a request-shape error): the same semantic request is rebuilt
// for the next configuration. Transient failures never advance the
// chain; they are the retry policy's job, applied to the current
// configuration only. The chain owns no state between invocations and
// always starts at the primary.
//
// One generation unit moves through submit, then fixed-interval
// polling under a wall-clock budget, then exactly one terminal
// outcome: the provider's success, the provider's failure, or the
// budget running out.
package fallback
