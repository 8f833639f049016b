package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/teamdeck/attention-engine/internal/attention"
	"github.com/teamdeck/attention-engine/internal/collectors"
	"github.com/teamdeck/attention-engine/internal/config"
	"github.com/teamdeck/attention-engine/internal/scorer"
	"github.com/teamdeck/attention-engine/internal/store"
)

// appEnv bundles the wired subsystems a command needs.
type appEnv struct {
	Store   store.OverlayStore
	Engine  *attention.Engine
	Scoring config.ScoringConfig
}

func (e *appEnv) Close() {
	if e.Store != nil {
		if err := e.Store.Close(); err != nil {
			zap.L().Warn("close store", zap.Error(err))
		}
	}
}

// loadScoring resolves the effective scoring config: viper defaults, then an
// optional weights file, then validation.
func loadScoring(cfg *config.Config) (config.ScoringConfig, error) {
	scoring := cfg.Scoring
	if cfg.Scoring.WeightsFile != "" {
		loaded, err := scorer.LoadWeights(cfg.Scoring.WeightsFile, scoring)
		if err != nil {
			return scoring, err
		}
		scoring = loaded
	}
	if err := scorer.ValidateConfig(scoring); err != nil {
		return scoring, err
	}
	return scoring, nil
}

// newStore opens the overlay store for the configured driver and runs
// migrations.
func newStore(ctx context.Context, cfg config.StoreConfig) (store.OverlayStore, error) {
	var (
		st  store.OverlayStore
		err error
	)
	switch cfg.Driver {
	case "sqlite", "":
		st, err = store.NewSQLite(cfg.DatabaseURL)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// initEnv wires the store, collectors, and engine. The SQL collectors need
// direct pool access, so they only run on the postgres driver; sqlite
// deployments serve overlay state but compute from static fixtures only.
func initEnv(ctx context.Context) (*appEnv, error) {
	scoring, err := loadScoring(cfg)
	if err != nil {
		return nil, err
	}

	st, err := newStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	var cs []attention.Collector
	if pg, ok := st.(*store.PostgresStore); ok {
		pool := pg.Pool()
		cs = []attention.Collector{
			collectors.NewTaskCollector(pool),
			collectors.NewProjectCollector(pool),
			collectors.NewDeliverableCollector(pool),
			collectors.NewTradeQueueCollector(pool),
			collectors.NewListSuggestionCollector(pool),
			collectors.NewNotificationCollector(pool),
			collectors.NewActivityCollector(pool),
		}
	} else {
		zap.L().Warn("sqlite driver active, SQL collectors disabled")
	}

	engine := attention.NewEngine(cs, st, scoring, cfg.Collectors)
	return &appEnv{Store: st, Engine: engine, Scoring: scoring}, nil
}
