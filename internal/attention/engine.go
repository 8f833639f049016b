package attention

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teamdeck/attention-engine/internal/config"
	"github.com/teamdeck/attention-engine/internal/model"
	"github.com/teamdeck/attention-engine/internal/resilience"
	"github.com/teamdeck/attention-engine/internal/scorer"
	"github.com/teamdeck/attention-engine/internal/store"
)

// DefaultWindowHours is the feed lookback when the caller does not specify one.
const DefaultWindowHours = 24

// Engine computes a user's attention feed from scratch on every call. The
// only durable state it touches is the overlay store, read-only on this path.
type Engine struct {
	collectors []Collector
	overlay    store.OverlayStore
	scoring    config.ScoringConfig
	timeout    time.Duration
	breakers   *resilience.CollectorBreakers

	// nowFunc allows test injection of time.
	nowFunc func() time.Time
}

// NewEngine creates an Engine over the given collectors and overlay store.
func NewEngine(collectors []Collector, overlay store.OverlayStore, scoring config.ScoringConfig, cfg config.CollectorsConfig) *Engine {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Engine{
		collectors: collectors,
		overlay:    overlay,
		scoring:    scoring,
		timeout:    timeout,
		breakers: resilience.NewCollectorBreakers(resilience.BreakerConfig{
			FailureThreshold: cfg.BreakerThreshold,
			Cooldown:         time.Duration(cfg.BreakerCooldownS) * time.Second,
		}),
		nowFunc: time.Now,
	}
}

// WithNow overrides the engine clock. Used by tests and offline computation
// where deterministic output matters.
func (e *Engine) WithNow(fn func() time.Time) *Engine {
	e.nowFunc = fn
	return e
}

// Compute runs the full pipeline for one user: scatter collectors, score,
// filter through overlay state, deduplicate, and assemble sections.
//
// A failing or timed-out collector degrades to an empty contribution; an
// overlay store failure aborts the computation, since without overlay state
// dismissal permanence cannot be honored.
func (e *Engine) Compute(ctx context.Context, userID string, windowHours int) (*model.Feed, error) {
	if windowHours <= 0 {
		windowHours = DefaultWindowHours
	}
	now := e.nowFunc()
	windowStart := now.Add(-time.Duration(windowHours) * time.Hour)
	log := zap.L().With(zap.String("user_id", userID))

	drafts, err := e.scatter(ctx, userID, windowStart, log)
	if err != nil {
		return nil, err
	}

	for i := range drafts {
		drafts[i].EnsureID()
		scorer.Apply(&drafts[i], userID, now, e.scoring)
	}

	states, err := e.overlay.GetOverlay(ctx, userID)
	if err != nil {
		return nil, eris.Wrap(err, "attention: read overlay")
	}

	visible := applyOverlay(drafts, states, now)
	deduped := dedupe(visible)
	feed := assemble(deduped, now, windowHours)

	log.Debug("attention: feed computed",
		zap.Int("drafts", len(drafts)),
		zap.Int("visible", len(visible)),
		zap.Int("total", feed.Counts.Total),
	)
	return feed, nil
}

// scatter fans out one goroutine per collector and waits for all of them.
// Collector errors are isolated: each failure is logged, fed to that
// collector's breaker, and contributes an empty slice.
func (e *Engine) scatter(ctx context.Context, userID string, windowStart time.Time, log *zap.Logger) ([]model.AttentionItem, error) {
	results := make([][]model.AttentionItem, len(e.collectors))

	g, gCtx := errgroup.WithContext(ctx)
	for i, c := range e.collectors {
		g.Go(func() error {
			breaker := e.breakers.Get(c.Name())
			if err := breaker.Allow(); err != nil {
				log.Warn("attention: collector short-circuited",
					zap.String("collector", c.Name()),
				)
				return nil
			}

			callCtx, cancel := context.WithTimeout(gCtx, e.timeout)
			defer cancel()

			items, err := c.Collect(callCtx, userID, windowStart)
			breaker.Record(err)
			if err != nil {
				log.Warn("attention: collector failed",
					zap.String("collector", c.Name()),
					zap.Error(err),
				)
				return nil
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Unreachable while collector errors are swallowed; kept so a future
		// fatal path propagates instead of vanishing.
		return nil, eris.Wrap(err, "attention: scatter")
	}

	// Caller cancellation is the one failure that still aborts.
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "attention: scatter cancelled")
	}

	var drafts []model.AttentionItem
	for _, r := range results {
		drafts = append(drafts, r...)
	}
	return drafts, nil
}
