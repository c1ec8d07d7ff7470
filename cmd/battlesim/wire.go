//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/cory-johannsen/battlesim/internal/config"
	"github.com/cory-johannsen/battlesim/internal/game/combat"
	"github.com/cory-johannsen/battlesim/internal/game/typechart"
	"github.com/cory-johannsen/battlesim/internal/observability"
)

func initializeApp(ctx context.Context, cfg config.Config) (*app, func(), error) {
	wire.Build(
		wire.FieldsOf(new(config.Config), "Logging", "Database", "Battle", "Dex"),
		observability.NewLogger,
		typechart.Standard,
		provideCatalog,
		provideProvider,
		provideSource,
		combat.NewEngine,
		newApp,
	)
	return nil, nil, nil
}
