package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/battlesim/internal/config"
	"github.com/cory-johannsen/battlesim/internal/game/combat"
	"github.com/cory-johannsen/battlesim/internal/game/dex"
	"github.com/cory-johannsen/battlesim/internal/game/dice"
	"github.com/cory-johannsen/battlesim/internal/game/move"
	"github.com/cory-johannsen/battlesim/internal/storage/postgres"
)

// app is the assembled simulator.
type app struct {
	engine   *combat.Engine
	provider dex.Provider
	source   combat.Source
	logger   *zap.Logger
	battle   config.BattleConfig
}

func newApp(engine *combat.Engine, provider dex.Provider, source combat.Source, logger *zap.Logger, battle config.BattleConfig) *app {
	return &app{engine: engine, provider: provider, source: source, logger: logger, battle: battle}
}

// provideProvider builds the creature data provider selected by cfg.Source.
// The returned cleanup releases any database pool.
//
// Postcondition: Returns a ready provider and a non-nil cleanup, or an error.
func provideProvider(ctx context.Context, cfg config.DexConfig, db config.DatabaseConfig, logger *zap.Logger) (dex.Provider, func(), error) {
	noop := func() {}
	switch cfg.Source {
	case config.DexSourceCSV, config.DexSourceYAML:
		load := dex.LoadCSVDir
		if cfg.Source == config.DexSourceYAML {
			load = dex.LoadYAMLDir
		}
		records, err := load(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		idx, err := dex.NewIndex(records)
		if err != nil {
			return nil, nil, fmt.Errorf("indexing creatures from %q: %w", cfg.Dir, err)
		}
		logger.Info("creature index loaded",
			zap.String("source", cfg.Source),
			zap.String("dir", cfg.Dir),
			zap.Int("count", idx.Len()),
		)
		return idx, noop, nil
	case config.DexSourcePostgres:
		pool, err := postgres.NewPool(ctx, db)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Health(ctx, postgres.DefaultHealthTimeout); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("connected to creature database",
			zap.String("host", db.Host),
			zap.String("database", db.Name),
		)
		return pool.Creatures(), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown dex source %q", cfg.Source)
	}
}

// provideCatalog returns the built-in move catalog, extended with the YAML moves
// in cfg.MovesDir when set.
func provideCatalog(cfg config.BattleConfig) (*move.Catalog, error) {
	if cfg.MovesDir == "" {
		return move.Default(), nil
	}
	extra, err := move.LoadDir(cfg.MovesDir)
	if err != nil {
		return nil, err
	}
	return move.Default().With(extra...)
}

// provideSource returns a seeded source when cfg.Seed is non-zero and a
// crypto/rand source otherwise, logging every draw at debug level.
func provideSource(cfg config.BattleConfig, logger *zap.Logger) combat.Source {
	var src dice.Source
	if cfg.Seed != 0 {
		src = dice.NewSeededSource(cfg.Seed)
	} else {
		src = dice.NewCryptoSource()
	}
	return dice.NewLoggedSource(src, logger)
}
