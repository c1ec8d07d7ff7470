// Package main provides the battle simulator binary: it resolves two creatures
// by name, runs one battle, and prints the result as JSON on stdout. With -list,
// -type, or -gen it prints the matching creature names instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/battlesim/internal/config"
)

// options holds the command-line overrides applied on top of the config file.
type options struct {
	configPath string
	p1, p2     string
	// turns < 0 keeps battle.max_turns from the config.
	turns int
	// seed == 0 keeps battle.seed from the config.
	seed uint64

	list       bool
	typeFilter string
	gen        int
}

func (o options) listing() bool {
	return o.list || o.typeFilter != "" || o.gen > 0
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "configs/dev.yaml", "path to configuration file")
	flag.StringVar(&opts.p1, "p1", "", "first combatant name")
	flag.StringVar(&opts.p2, "p2", "", "second combatant name")
	flag.IntVar(&opts.turns, "turns", -1, "maximum turns (default: battle.max_turns)")
	flag.Uint64Var(&opts.seed, "seed", 0, "random seed for a reproducible battle (default: battle.seed)")
	flag.BoolVar(&opts.list, "list", false, "list creature names instead of battling")
	flag.StringVar(&opts.typeFilter, "type", "", "list creatures having this type")
	flag.IntVar(&opts.gen, "gen", 0, "list creatures from this generation")
	flag.Parse()

	if opts.p1 == "" && opts.p2 == "" && flag.NArg() == 2 {
		opts.p1, opts.p2 = flag.Arg(0), flag.Arg(1)
	}
	if !opts.listing() && (opts.p1 == "" || opts.p2 == "") {
		fmt.Fprintln(os.Stderr, "usage: battlesim [-config <file>] [-turns n] [-seed n] -p1 <name> -p2 <name>")
		fmt.Fprintln(os.Stderr, "       battlesim [-config <file>] -list | -type <type> | -gen <n>")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, opts, os.Stdout)
	stop()
	if err != nil {
		log.Fatalf("battlesim: %v", err)
	}
}

// run loads configuration, assembles the simulator, and writes one battle result,
// or the creature listing requested by opts, to out.
//
// Postcondition: On success exactly one JSON document has been written to out.
func run(ctx context.Context, opts options, out io.Writer) error {
	start := time.Now()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.turns >= 0 {
		cfg.Battle.MaxTurns = opts.turns
	}
	if opts.seed != 0 {
		cfg.Battle.Seed = opts.seed
	}

	a, cleanup, err := initializeApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing: %w", err)
	}
	defer cleanup()
	defer func() { _ = a.logger.Sync() }()

	if opts.listing() {
		names, err := listCreatures(a.provider, opts.typeFilter, opts.gen)
		if err != nil {
			return err
		}
		return writeJSON(out, names)
	}

	a.logger.Debug("move catalog ready", zap.Int("moves", a.engine.Catalog().Len()))
	result, err := a.engine.SimulateBattle(ctx, opts.p1, opts.p2, a.battle.MaxTurns, a.source)
	if err != nil {
		return err
	}

	if err := writeJSON(out, result); err != nil {
		return err
	}

	a.logger.Info("battlesim complete",
		zap.String("battle_id", result.BattleID),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}
