package resilience

import (
	"sort"
	"sync"
	"time"
)

// Registry holds one breaker per dependency key, created lazily on
// first use and kept for the registry's lifetime.
//
// A registry is an explicit value so tests and pipelines can inject an
// isolated instance instead of sharing process-global breaker state.
type Registry struct {
	cfg BreakerConfig

	mu       sync.Mutex
	breakers map[string]*Breaker
}

// NewRegistry creates a registry applying defaults to cfg.
func NewRegistry(cfg BreakerConfig) *Registry {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}

	return &Registry{
		cfg:      cfg,
		breakers: make(map[string]*Breaker),
	}
}

// Breaker returns the breaker for key, creating it on first use.
func (r *Registry) Breaker(key string) *Breaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.breakers[key]
	if !ok {
		b = newBreaker(key, r.cfg)
		r.breakers[key] = b
	}
	return b
}

// Keys returns the dependency keys seen so far, sorted.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.breakers))
	for k := range r.breakers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns the current status of every breaker, sorted by key.
func (r *Registry) Snapshot() []Status {
	r.mu.Lock()
	breakers := make([]*Breaker, 0, len(r.breakers))
	for _, b := range r.breakers {
		breakers = append(breakers, b)
	}
	r.mu.Unlock()

	statuses := make([]Status, 0, len(breakers))
	for _, b := range breakers {
		statuses = append(statuses, b.Status())
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Key < statuses[j].Key })
	return statuses
}
