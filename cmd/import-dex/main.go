// Package main loads creature records from gen*.csv or YAML files and upserts
// them into the PostgreSQL creature store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/battlesim/internal/config"
	"github.com/cory-johannsen/battlesim/internal/game/dex"
	"github.com/cory-johannsen/battlesim/internal/observability"
	"github.com/cory-johannsen/battlesim/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	format := flag.String("format", config.DexSourceCSV, "source format: csv or yaml")
	sourceDir := flag.String("source", "", "directory of gen*.csv or *.yaml creature files")
	flag.Parse()

	if *sourceDir == "" {
		fmt.Fprintln(os.Stderr, "usage: import-dex [-config <file>] [-format csv|yaml] -source <dir>")
		os.Exit(1)
	}

	v := config.NewViper()
	v.SetConfigFile(*configPath)
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("reading config: %v", err)
	}
	// the import always targets the database, whatever the simulator reads from
	v.Set("dex.source", config.DexSourcePostgres)
	cfg, err := config.LoadFromViper(v)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	if err := importDir(context.Background(), cfg.Database, *format, *sourceDir, logger); err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}
}

// loadRecords reads every creature record in dir using the given format.
func loadRecords(format, dir string) ([]*dex.Record, error) {
	switch format {
	case config.DexSourceCSV:
		return dex.LoadCSVDir(dir)
	case config.DexSourceYAML:
		return dex.LoadYAMLDir(dir)
	default:
		return nil, fmt.Errorf("unknown format %q (supported: csv, yaml)", format)
	}
}

func importDir(ctx context.Context, db config.DatabaseConfig, format, dir string, logger *zap.Logger) error {
	start := time.Now()

	records, err := loadRecords(format, dir)
	if err != nil {
		return err
	}
	pool, err := postgres.NewPool(ctx, db)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Health(ctx, postgres.DefaultHealthTimeout); err != nil {
		return err
	}

	repo := pool.Creatures()
	if err := repo.UpsertAll(ctx, records); err != nil {
		return err
	}
	total, err := repo.Count(ctx)
	if err != nil {
		return err
	}

	logger.Info("import complete",
		zap.String("source", dir),
		zap.String("format", format),
		zap.Int("imported", len(records)),
		zap.Int("total", total),
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return nil
}
