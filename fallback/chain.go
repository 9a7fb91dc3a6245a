package fallback

import (
	"context"
	"time"

	"github.com/creativemill/taskops/fault"
	"github.com/creativemill/taskops/provider"
	"github.com/creativemill/taskops/resilience"
)

// Image is one visual reference for a generation request, ordered by
// composition priority.
type Image struct {
	// Role describes how the image conditions the generation,
	// e.g. "character" or "product".
	Role string
	URL  string
}

// Request is the provider-independent description of one generation
// unit. Each ProviderConfig reshapes it into that provider's payload.
type Request struct {
	Prompt      string
	Images      []Image
	DurationSec int
}

// ProviderConfig is one element of a fallback chain.
type ProviderConfig struct {
	// Adapter is the provider integration this configuration targets.
	Adapter provider.Adapter

	// Model is the provider's model identifier.
	Model string

	// NeedsImageInput marks configurations whose payload requires at
	// least one reference image. They are skipped outright for
	// requests with none, branching on item state rather than waiting
	// for the provider to reject.
	NeedsImageInput bool

	// Build reshapes the request for this provider.
	Build func(req Request) (provider.Input, error)
}

func (pc ProviderConfig) key() string {
	return pc.Adapter.Name() + ":" + pc.Model
}

// ChainConfig configures a Chain.
type ChainConfig struct {
	// Configs is the ordered list of configurations; the first
	// eligible one is the primary. Required.
	Configs []ProviderConfig

	// Registry supplies circuit breakers, one per provider:model key.
	// A private registry is created when nil.
	Registry *resilience.Registry

	// CallTimeout bounds each submit and each poll call.
	// Default: 30 seconds
	CallTimeout time.Duration

	// Retry governs retries of transient failures within one
	// configuration.
	Retry resilience.RetryPolicy

	// Poll drives the polling phase.
	Poll PollerConfig
}

// Result is a completed generation.
type Result struct {
	// Provider and Model identify the configuration that produced it.
	Provider string
	Model    string
	// TaskID is the provider's task identifier.
	TaskID string
	// Output is the provider's result payload.
	Output map[string]any
}

// Chain executes generation requests with ordered provider fallback.
type Chain struct {
	cfg    ChainConfig
	poller *Poller
	guards map[string]*resilience.Guard
}

// NewChain creates a Chain, applying defaults.
func NewChain(cfg ChainConfig) (*Chain, error) {
	if len(cfg.Configs) == 0 {
		return nil, ErrNoConfigs
	}
	for _, pc := range cfg.Configs {
		if pc.Adapter == nil || pc.Model == "" || pc.Build == nil {
			return nil, ErrInvalidConfig
		}
	}
	if cfg.Registry == nil {
		cfg.Registry = resilience.NewRegistry(resilience.BreakerConfig{})
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 30 * time.Second
	}

	guards := make(map[string]*resilience.Guard, len(cfg.Configs))
	for _, pc := range cfg.Configs {
		key := pc.key()
		if _, ok := guards[key]; ok {
			continue
		}
		guards[key] = resilience.NewGuard(resilience.GuardConfig{
			Key:      key,
			Registry: cfg.Registry,
			Timeout:  cfg.CallTimeout,
			Retry:    cfg.Retry,
		})
	}

	return &Chain{cfg: cfg, poller: NewPoller(cfg.Poll), guards: guards}, nil
}

// Generate runs req through the chain and returns the first
// configuration's result that completes.
//
// A request-shape rejection moves on to the next configuration; any
// other failure (transient after retries, provider-reported failure,
// exhausted poll budget) surfaces immediately. After the chain is
// exhausted the last configuration's error is returned.
func (c *Chain) Generate(ctx context.Context, req Request) (Result, error) {
	eligible := c.eligible(req)
	if len(eligible) == 0 {
		return Result{}, fault.New(fault.Config, "fallback", ErrNoEligibleConfigs)
	}

	var lastErr error
	for _, pc := range eligible {
		res, err := c.attempt(ctx, pc, req)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if !fault.IsRequestShape(err) {
			return Result{}, err
		}
	}
	return Result{}, lastErr
}

// eligible filters configurations against the request's state: with no
// reference images, image-conditioned configurations are skipped and
// the chain starts directly at the first text-only configuration.
func (c *Chain) eligible(req Request) []ProviderConfig {
	if len(req.Images) > 0 {
		return c.cfg.Configs
	}
	eligible := make([]ProviderConfig, 0, len(c.cfg.Configs))
	for _, pc := range c.cfg.Configs {
		if !pc.NeedsImageInput {
			eligible = append(eligible, pc)
		}
	}
	return eligible
}

func (c *Chain) attempt(ctx context.Context, pc ProviderConfig, req Request) (Result, error) {
	in, err := pc.Build(req)
	if err != nil {
		// The request cannot be shaped for this provider at all;
		// that is the chain's cue to move on, same as a 400.
		return Result{}, fault.New(fault.RequestShape, pc.key(), err)
	}

	guard := c.guards[pc.key()]

	var taskID string
	err = guard.Do(ctx, func(ctx context.Context) error {
		id, err := pc.Adapter.Submit(ctx, in)
		taskID = id
		return err
	})
	if err != nil {
		return Result{}, err
	}

	pr, err := c.poller.Wait(ctx, pc.key()+"/"+taskID, func(ctx context.Context) (provider.PollResult, error) {
		var out provider.PollResult
		err := guard.Do(ctx, func(ctx context.Context) error {
			r, err := pc.Adapter.Poll(ctx, taskID)
			out = r
			return err
		})
		return out, err
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Provider: pc.Adapter.Name(),
		Model:    pc.Model,
		TaskID:   taskID,
		Output:   pr.Output,
	}, nil
}
