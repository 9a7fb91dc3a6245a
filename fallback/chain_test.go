package fallback

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/creativemill/taskops/fault"
	"github.com/creativemill/taskops/provider"
	"github.com/creativemill/taskops/resilience"
)

type fakeAdapter struct {
	name   string
	submit func(ctx context.Context, in provider.Input) (string, error)
	poll   func(ctx context.Context, taskID string) (provider.PollResult, error)
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Submit(ctx context.Context, in provider.Input) (string, error) {
	return f.submit(ctx, in)
}

func (f *fakeAdapter) Poll(ctx context.Context, taskID string) (provider.PollResult, error) {
	if f.poll == nil {
		return provider.PollResult{State: provider.StateSucceeded}, nil
	}
	return f.poll(ctx, taskID)
}

func (f *fakeAdapter) FetchBatch(ctx context.Context, datasetID string) ([]provider.BatchItem, error) {
	return nil, errors.New("not supported")
}

func succeedingAdapter(name string) *fakeAdapter {
	return &fakeAdapter{
		name: name,
		submit: func(ctx context.Context, in provider.Input) (string, error) {
			return "task-1", nil
		},
	}
}

func passthroughBuild(req Request) (provider.Input, error) {
	return provider.Input{Payload: map[string]any{"prompt": req.Prompt}}, nil
}

func fastChain(t *testing.T, configs ...ProviderConfig) *Chain {
	t.Helper()
	c, err := NewChain(ChainConfig{
		Configs:     configs,
		CallTimeout: time.Second,
		Retry:       resilience.RetryPolicy{Retries: -1, BaseDelay: time.Millisecond},
		Poll:        PollerConfig{Interval: 2 * time.Millisecond, Budget: 200 * time.Millisecond},
	})
	if err != nil {
		t.Fatalf("NewChain() = %v", err)
	}
	return c
}

func TestChain_PrimarySucceeds(t *testing.T) {
	primary := succeedingAdapter("kling")
	secondaryCalled := false

	c := fastChain(t,
		ProviderConfig{Adapter: primary, Model: "v1.6-image", Build: passthroughBuild},
		ProviderConfig{Adapter: &fakeAdapter{name: "runway", submit: func(ctx context.Context, in provider.Input) (string, error) {
			secondaryCalled = true
			return "", errors.New("should not run")
		}}, Model: "gen3", Build: passthroughBuild},
	)

	res, err := c.Generate(context.Background(), Request{Prompt: "opening shot"})
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	if res.Provider != "kling" || res.Model != "v1.6-image" || res.TaskID != "task-1" {
		t.Errorf("Result = %+v, want primary's result", res)
	}
	if secondaryCalled {
		t.Error("secondary configuration ran although the primary succeeded")
	}
}

func TestChain_AdvancesOnRequestShapeOnly(t *testing.T) {
	primary := &fakeAdapter{name: "kling", submit: func(ctx context.Context, in provider.Input) (string, error) {
		return "", fault.Newf(fault.RequestShape, "kling.submit", "unsupported field image_list")
	}}
	secondary := succeedingAdapter("runway")

	c := fastChain(t,
		ProviderConfig{Adapter: primary, Model: "v1.6", Build: passthroughBuild},
		ProviderConfig{Adapter: secondary, Model: "gen3", Build: passthroughBuild},
	)

	res, err := c.Generate(context.Background(), Request{Prompt: "scene"})
	if err != nil {
		t.Fatalf("Generate() = %v, want fallback success", err)
	}
	if res.Provider != "runway" {
		t.Errorf("Result.Provider = %q, want runway", res.Provider)
	}
}

func TestChain_TransientDoesNotAdvance(t *testing.T) {
	var primaryCalls, secondaryCalls atomic.Int64
	primary := &fakeAdapter{name: "kling", submit: func(ctx context.Context, in provider.Input) (string, error) {
		primaryCalls.Add(1)
		return "", fault.Newf(fault.Transient, "kling.submit", "503 upstream")
	}}
	secondary := &fakeAdapter{name: "runway", submit: func(ctx context.Context, in provider.Input) (string, error) {
		secondaryCalls.Add(1)
		return "task-2", nil
	}}

	c := fastChain(t,
		ProviderConfig{Adapter: primary, Model: "v1.6", Build: passthroughBuild},
		ProviderConfig{Adapter: secondary, Model: "gen3", Build: passthroughBuild},
	)

	_, err := c.Generate(context.Background(), Request{Prompt: "scene"})
	if err == nil {
		t.Fatal("Generate() = nil, want transient error to surface")
	}
	if fault.ClassOf(err) != fault.Transient {
		t.Errorf("error class = %v, want Transient", fault.ClassOf(err))
	}
	if secondaryCalls.Load() != 0 {
		t.Error("transient failure must not advance the chain")
	}
}

func TestChain_ExhaustedSurfacesLastError(t *testing.T) {
	first := &fakeAdapter{name: "kling", submit: func(ctx context.Context, in provider.Input) (string, error) {
		return "", fault.Newf(fault.RequestShape, "kling.submit", "bad shape A")
	}}
	second := &fakeAdapter{name: "runway", submit: func(ctx context.Context, in provider.Input) (string, error) {
		return "", fault.Newf(fault.RequestShape, "runway.submit", "bad shape B")
	}}

	c := fastChain(t,
		ProviderConfig{Adapter: first, Model: "a", Build: passthroughBuild},
		ProviderConfig{Adapter: second, Model: "b", Build: passthroughBuild},
	)

	_, err := c.Generate(context.Background(), Request{Prompt: "scene"})
	if err == nil {
		t.Fatal("Generate() = nil, want last configuration's error")
	}
	if !strings.Contains(err.Error(), "bad shape B") {
		t.Errorf("error = %q, want the last configuration's message", err)
	}
}

func TestChain_NoImagesSkipsImageConditionedConfig(t *testing.T) {
	imageCalled := false
	imageCfg := ProviderConfig{
		Adapter: &fakeAdapter{name: "kling", submit: func(ctx context.Context, in provider.Input) (string, error) {
			imageCalled = true
			return "task-1", nil
		}},
		Model:           "v1.6-image",
		NeedsImageInput: true,
		Build:           passthroughBuild,
	}
	textCfg := ProviderConfig{Adapter: succeedingAdapter("kling"), Model: "v1.6-text", Build: passthroughBuild}

	c := fastChain(t, imageCfg, textCfg)

	res, err := c.Generate(context.Background(), Request{Prompt: "no references"})
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	if imageCalled {
		t.Error("image-conditioned configuration ran for a request with zero reference images")
	}
	if res.Model != "v1.6-text" {
		t.Errorf("Result.Model = %q, want v1.6-text", res.Model)
	}
}

func TestChain_WithImagesUsesImageConditionedConfig(t *testing.T) {
	imageCfg := ProviderConfig{Adapter: succeedingAdapter("kling"), Model: "v1.6-image", NeedsImageInput: true, Build: passthroughBuild}
	textCfg := ProviderConfig{Adapter: succeedingAdapter("kling"), Model: "v1.6-text", Build: passthroughBuild}

	c := fastChain(t, imageCfg, textCfg)

	res, err := c.Generate(context.Background(), Request{
		Prompt: "product shot",
		Images: []Image{{Role: "product", URL: "https://cdn.example.com/p.png"}},
	})
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	if res.Model != "v1.6-image" {
		t.Errorf("Result.Model = %q, want the image-conditioned primary", res.Model)
	}
}

func TestChain_AllConfigsNeedImages(t *testing.T) {
	c := fastChain(t, ProviderConfig{Adapter: succeedingAdapter("kling"), Model: "v1.6-image", NeedsImageInput: true, Build: passthroughBuild})

	_, err := c.Generate(context.Background(), Request{Prompt: "no refs"})
	if !errors.Is(err, ErrNoEligibleConfigs) {
		t.Errorf("Generate() = %v, want ErrNoEligibleConfigs", err)
	}
	if !fault.IsConfig(err) {
		t.Error("no-eligible-configs should classify as a config error")
	}
}

func TestChain_BuildFailureAdvances(t *testing.T) {
	broken := ProviderConfig{
		Adapter: succeedingAdapter("kling"),
		Model:   "v1.6",
		Build: func(req Request) (provider.Input, error) {
			return provider.Input{}, errors.New("cannot express 15s duration")
		},
	}
	working := ProviderConfig{Adapter: succeedingAdapter("runway"), Model: "gen3", Build: passthroughBuild}

	c := fastChain(t, broken, working)

	res, err := c.Generate(context.Background(), Request{Prompt: "scene"})
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}
	if res.Provider != "runway" {
		t.Errorf("Result.Provider = %q, want runway", res.Provider)
	}
}

func TestChain_ValidatesConfiguration(t *testing.T) {
	if _, err := NewChain(ChainConfig{}); !errors.Is(err, ErrNoConfigs) {
		t.Errorf("NewChain(empty) = %v, want ErrNoConfigs", err)
	}

	_, err := NewChain(ChainConfig{Configs: []ProviderConfig{{Model: "x"}}})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewChain(incomplete) = %v, want ErrInvalidConfig", err)
	}
}
