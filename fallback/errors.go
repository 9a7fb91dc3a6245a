package fallback

import "errors"

// Sentinel errors for fallback chains.
var (
	// ErrNoConfigs is returned when a chain is built with no
	// provider configurations.
	ErrNoConfigs = errors.New("fallback: chain requires at least one provider configuration")

	// ErrInvalidConfig is returned when a configuration is missing
	// its adapter, model, or build function.
	ErrInvalidConfig = errors.New("fallback: provider configuration is incomplete")

	// ErrNoEligibleConfigs is returned when every configuration in
	// the chain requires image input the request does not carry.
	ErrNoEligibleConfigs = errors.New("fallback: no configuration accepts a request without reference images")
)
