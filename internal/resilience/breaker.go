// Package resilience isolates failing collectors so one bad source cannot
// degrade every feed computation it participates in.
package resilience

import (
	"sync"
	"time"

	"github.com/rotisserie/eris"
)

// ErrBreakerOpen is returned when a call is short-circuited because the
// collector's breaker is open.
var ErrBreakerOpen = eris.New("collector breaker is open")

// BreakerConfig controls per-collector breaker behavior.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures before the
	// breaker opens. Default: 5.
	FailureThreshold int

	// Cooldown is how long the breaker stays open before allowing a probe
	// call through. Default: 30s.
	Cooldown time.Duration
}

// DefaultBreakerConfig returns sensible defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		Cooldown:         30 * time.Second,
	}
}

// Breaker tracks consecutive failures for a single collector. While open,
// Allow rejects calls until the cooldown has elapsed; the first call after
// the cooldown is a probe whose outcome decides whether the breaker closes.
type Breaker struct {
	cfg BreakerConfig

	mu       sync.Mutex
	failures int
	openedAt time.Time
	open     bool
	nowFunc  func() time.Time
}

// NewBreaker creates a breaker with the given config.
func NewBreaker(cfg BreakerConfig) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	return &Breaker{cfg: cfg, nowFunc: time.Now}
}

// Allow reports whether a call may proceed. While open and inside the
// cooldown it returns ErrBreakerOpen; after the cooldown one probe call is
// let through.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return nil
	}
	if b.nowFunc().Sub(b.openedAt) >= b.cfg.Cooldown {
		// Probe call. The breaker stays open until Record sees a success.
		return nil
	}
	return ErrBreakerOpen
}

// Record feeds a call outcome back into the breaker.
func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.failures = 0
		b.open = false
		return
	}

	b.failures++
	if b.failures >= b.cfg.FailureThreshold || b.open {
		b.open = true
		b.openedAt = b.nowFunc()
	}
}

// Open reports whether the breaker is currently open.
func (b *Breaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// CollectorBreakers manages one breaker per collector name.
type CollectorBreakers struct {
	mu       sync.RWMutex
	breakers map[string]*Breaker
	cfg      BreakerConfig
}

// NewCollectorBreakers creates a registry of per-collector breakers.
func NewCollectorBreakers(cfg BreakerConfig) *CollectorBreakers {
	return &CollectorBreakers{
		breakers: make(map[string]*Breaker),
		cfg:      cfg,
	}
}

// Get returns the breaker for the named collector, creating one if needed.
func (cb *CollectorBreakers) Get(name string) *Breaker {
	cb.mu.RLock()
	b, ok := cb.breakers[name]
	cb.mu.RUnlock()
	if ok {
		return b
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if b, ok = cb.breakers[name]; ok {
		return b
	}
	b = NewBreaker(cb.cfg)
	cb.breakers[name] = b
	return b
}

// OpenCollectors returns the names of collectors whose breaker is open.
func (cb *CollectorBreakers) OpenCollectors() []string {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	var open []string
	for name, b := range cb.breakers {
		if b.Open() {
			open = append(open, name)
		}
	}
	return open
}
