package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/udisondev/rotasim/internal/ai"
	"github.com/udisondev/rotasim/internal/config"
	"github.com/udisondev/rotasim/internal/game/combat"
	"github.com/udisondev/rotasim/internal/report"
	"github.com/udisondev/rotasim/internal/session"
)

// pollInterval is one UI frame.
const pollInterval = 16 * time.Millisecond

// runAI lets the search pick every skill until the combat ends,
// printing the rotation as it grows.
func runAI(ctx context.Context, initial *combat.State, cfg config.AIConfig, out io.Writer) error {
	d := ai.NewDispatcher(cfg.Depth, cfg.Workers)
	h := session.New(initial)

	if err := d.Start(h.Current()); err != nil {
		return fmt.Errorf("starting search: %w", err)
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case <-ticker.C:
		}

		res, ok := d.Poll()
		if !ok {
			continue
		}
		if res.Err != nil {
			return fmt.Errorf("searching turn %d: %w", h.Current().Turn, res.Err)
		}

		status := combat.StatusLost
		if res.SkillName != "" {
			h.Push(res.State, res.SkillName)
			fmt.Fprintf(out, "%s ➡ ", res.SkillName)
			status = res.State.Status()
		}
		if status == combat.StatusInProgress && cfg.MaxTurns > 0 && h.Depth() >= cfg.MaxTurns {
			slog.Info("turn limit reached", "turns", h.Depth())
			status = combat.StatusLost
		}

		if status != combat.StatusInProgress {
			fmt.Fprintln(out)
			fmt.Fprintln(out, report.Outcome(status))
			slog.Info("rotation finished", "status", status, "turns", h.Depth())
			return nil
		}

		if err := d.Start(res.State); err != nil {
			return fmt.Errorf("starting search: %w", err)
		}
	}
}
