// Package provider defines the surface a remote provider adapter must
// expose and the normalization helpers shared by all adapters.
//
// Providers report task status as free-form strings ("queued",
// "transcribing", "SUCCEEDED"). Adapters translate them into the
// canonical state set through an explicit StatusMap, never through
// substring heuristics; a status missing from the map is a loud
// configuration error rather than a silent failure, because "provider
// says failed" and "provider said something we don't understand" are
// different problems.
package provider
