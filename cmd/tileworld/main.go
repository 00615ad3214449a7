// Package main is the entry point for tileworld.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/samdwyer/tileworld/internal/game"
	"github.com/samdwyer/tileworld/internal/gamedata"
	"github.com/samdwyer/tileworld/internal/persistence"
	"github.com/samdwyer/tileworld/internal/telemetry"
	"github.com/samdwyer/tileworld/internal/world"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.ConfigFromEnv(game.DefaultConfig(), os.Getenv)
	if err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}
	cfg.Bind(flag.CommandLine)
	list := flag.Bool("list", false, "list stored snapshots and exit")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	cfg.ResolveSeed()

	if err := run(cfg, *list); err != nil {
		fmt.Fprintln(os.Stderr, "tileworld:", err)
		os.Exit(1)
	}
}

func run(cfg game.Config, list bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Start(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	store, err := persistence.Open(ctx, cfg.Store, cfg.SaveDir, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer store.Close()

	if list {
		names, err := store.ListSnapshots(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	if err := checkTerminal(cfg); err != nil {
		return err
	}

	cat, err := gamedata.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load entity catalog: %w", err)
	}
	gen, err := newGenerator(ctx, cfg, cat, store)
	if err != nil {
		return fmt.Errorf("failed to prepare world: %w", err)
	}

	// The screen owns the terminal from here on.
	closeLog := redirectLog(cfg.Debug)
	defer closeLog()

	log.Printf("starting: seed=%g generator=%s color=%s", cfg.Seed, gen.Kind(), cfg.ColorMode)

	g, err := game.New(cfg, cat, gen, store)
	if err != nil {
		return fmt.Errorf("failed to initialize game: %w", err)
	}
	return g.Run(ctx)
}

// newGenerator returns the procedural world, or the stored snapshot named by
// cfg.ReplayMap. A snapshot that fails to load stops start-up before any map
// exists.
func newGenerator(ctx context.Context, cfg game.Config, cat *gamedata.Catalog, store persistence.Storage) (world.Generator, error) {
	if cfg.ReplayMap == "" {
		return world.NewProcedural(cfg.Seed, cat), nil
	}
	snap, err := store.LoadSnapshot(ctx, cfg.ReplayMap)
	if err != nil {
		return nil, err
	}
	gen, err := world.NewFromSnapshot(snap, cat)
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// checkTerminal refuses to start without a terminal large enough for the
// configured viewport.
func checkTerminal(cfg game.Config) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("tileworld needs an interactive terminal")
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("cannot read terminal size: %w", err)
	}
	minW, minH := cfg.MinSize()
	if w < minW || h < minH {
		return fmt.Errorf("terminal is %dx%d, need at least %dx%d", w, h, minW, minH)
	}
	return nil
}

// redirectLog sends log output to the debug file, or discards it.
func redirectLog(debug bool) func() {
	if !debug {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }
	}
	f, err := os.OpenFile(game.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}
}
