package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/rotasim/internal/ai"
	"github.com/udisondev/rotasim/internal/config"
	"github.com/udisondev/rotasim/internal/game/combat"
	"github.com/udisondev/rotasim/internal/game/skill"
	"github.com/udisondev/rotasim/internal/model"
	"github.com/udisondev/rotasim/internal/rng"
)

const ConfigPath = "config/rotasim.yaml"

const (
	modeAI          = "ai"
	modeInteractive = "interactive"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("ROTASIM_CONFIG"); p != "" {
		cfgPath = p
	}
	flag.StringVar(&cfgPath, "config", cfgPath, "simulation config file")
	mode := flag.String("mode", modeAI, "run mode: ai or interactive")
	flag.Parse()

	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Per-branch search logs are only worth building at debug level.
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("rotasim starting", "mode", *mode, "log_level", cfg.LogLevel)

	state, err := newCombat(cfg)
	if err != nil {
		return fmt.Errorf("setting up combat: %w", err)
	}
	slog.Info("combat ready",
		"archetype", state.Player.Archetype().Name,
		"level", state.Player.Level,
		"skills", len(state.Player.Skills),
		"opponents", len(state.Opponents),
		"depth", cfg.AI.Depth)

	switch *mode {
	case modeAI:
		err = runAI(ctx, state, cfg.AI, os.Stdout)
	case modeInteractive:
		err = runInteractive(ctx, state, os.Stdin, os.Stdout)
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// newCombat builds the initial combat state described by cfg.
func newCombat(cfg config.Simulation) (*combat.State, error) {
	archCfg, err := config.LoadArchetype(cfg.Player.Archetype)
	if err != nil {
		return nil, err
	}
	arch, err := skill.New(archCfg)
	if err != nil {
		return nil, fmt.Errorf("compiling archetype %s: %w", cfg.Player.Archetype, err)
	}

	player := combat.NewPlayer(arch, cfg.Player.Level, model.Dict(cfg.Player.Stats))
	player.Target = cfg.Player.Target
	for i, ic := range cfg.Items {
		item, err := ic.Item()
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		player.Equip(item)
	}
	player.Restore()

	roster, err := config.LoadRoster(cfg.Roster)
	if err != nil {
		return nil, err
	}
	opponents, err := combat.NewRoster(roster)
	if err != nil {
		return nil, fmt.Errorf("building roster %s: %w", cfg.Roster, err)
	}

	state, err := combat.New(player, opponents, rng.NewPCG(cfg.Seed))
	if err != nil {
		return nil, err
	}
	state.Options.ZeroCritGlancingMana = cfg.Combat.ZeroCritGlancingMana
	return state, nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
