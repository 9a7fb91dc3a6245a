// Package health reports the operational state of the task execution
// pipeline.
//
// A Checker is any component that can report its health status. The
// Status type represents the health state: Healthy, Degraded, or
// Unhealthy. BreakerChecker surfaces open circuit breakers, so a
// pipeline whose providers are being shed reports Degraded before the
// first job fails outright.
//
// Use Aggregator to combine multiple checks into one composite view:
//
//	agg := health.NewAggregator()
//	agg.Register("breakers", health.NewBreakerChecker(registry))
//	agg.Register("store", storeChecker)
//
//	results := agg.CheckAll(ctx)
//	overall := agg.OverallStatus(results)
package health
