// Package resilience guards calls to unreliable external services.
//
// The package provides the building blocks that every remote call in a
// pipeline is wrapped with, exactly once, at one layer:
//
//   - Circuit Breaker: a per-dependency failure counter that sheds load
//     to a consistently-failing service for a cooldown window. Breakers
//     live in a Registry keyed by a dependency string such as
//     "assemblyai:ad-transcripts", so failures on one dependency never
//     open a breaker for another.
//
//   - Retry: bounded retries with exponential backoff and jitter,
//     driven by a caller-supplied classifier deciding which errors are
//     worth a second attempt.
//
//   - Timeout: races one unit of work against a deadline. The guard
//     gives up waiting; it cannot abort a request whose transport
//     ignores context cancellation.
//
//   - Guard: the composition of the three. Checks the breaker, runs
//     the timed call under the retry policy, and reports the overall
//     outcome back to the breaker.
//
// # Usage
//
//	reg := resilience.NewRegistry(resilience.BreakerConfig{
//	    FailureThreshold: 5,
//	    Cooldown:         30 * time.Second,
//	})
//
//	guard := resilience.NewGuard(resilience.GuardConfig{
//	    Key:      "assemblyai:ad-transcripts",
//	    Registry: reg,
//	    Timeout:  90 * time.Second,
//	    Retry:    resilience.RetryPolicy{Retries: 2, BaseDelay: 500 * time.Millisecond},
//	})
//
//	err := guard.Do(ctx, func(ctx context.Context) error {
//	    return submitTranscript(ctx, mediaURL)
//	})
package resilience
