// Package secret provides a small, dependency-light credential
// resolution layer for provider API keys.
//
// It supports:
//   - Strict environment expansion (see ExpandEnvStrict)
//   - Required credential lookup (see Require)
//   - Pluggable secret providers (see Provider + Registry)
//   - Resolving secret references in configuration values (see Resolver)
//
// References use the prefix "secretref:":
//   - Full value:  secretref:env:KLING_API_KEY
//   - Inline use:  Bearer secretref:env:KLING_API_KEY
//
// Missing credentials classify as configuration faults: they are never
// retried and never counted against a circuit breaker.
package secret
