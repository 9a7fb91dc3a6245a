package secret

import (
	"context"

	"github.com/creativemill/taskops/fault"
)

// Provider resolves secrets by reference string.
//
// Implementations must be safe for concurrent use and must not log secret values.
type Provider interface {
	Name() string
	Resolve(ctx context.Context, ref string) (string, error)
	Close() error
}

// EnvProvider resolves references against the process environment.
// The reference is the variable name: secretref:env:KLING_API_KEY.
type EnvProvider struct{}

func (EnvProvider) Name() string { return "env" }

func (EnvProvider) Resolve(_ context.Context, ref string) (string, error) {
	return Require(ref)
}

func (EnvProvider) Close() error { return nil }

// StaticProvider resolves references from a fixed map, for tests and
// for credentials injected at construction time.
type StaticProvider struct {
	// ProviderName defaults to "static".
	ProviderName string
	Values       map[string]string
}

func (p StaticProvider) Name() string {
	if p.ProviderName != "" {
		return p.ProviderName
	}
	return "static"
}

func (p StaticProvider) Resolve(_ context.Context, ref string) (string, error) {
	val, ok := p.Values[ref]
	if !ok {
		return "", fault.Newf(fault.Config, "secret", "no value for reference %q", ref)
	}
	return val, nil
}

func (p StaticProvider) Close() error { return nil }

var (
	_ Provider = EnvProvider{}
	_ Provider = StaticProvider{}
)
