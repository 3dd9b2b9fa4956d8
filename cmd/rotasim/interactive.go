package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/udisondev/rotasim/internal/game/combat"
	"github.com/udisondev/rotasim/internal/report"
	"github.com/udisondev/rotasim/internal/session"
)

const interactiveHelp = `commands:
  <skill name or #>  play a skill
  back               undo the last turn
  status             show the combat state
  rotation           show the skills played so far
  quit               exit`

// runInteractive plays skills read from in, one command per line.
// It returns ctx.Err() as soon as ctx is done, even while waiting for input.
func runInteractive(ctx context.Context, initial *combat.State, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h := session.New(initial)
	if err := show(out, h.Current()); err != nil {
		return err
	}
	fmt.Fprintln(out, interactiveHelp)

	var readErr error
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr = sc.Err()
	}()

	for {
		fmt.Fprint(out, "> ")

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				if readErr != nil {
					return fmt.Errorf("reading commands: %w", readErr)
				}
				return nil
			}
			line = l
		}

		cmd := strings.TrimSpace(line)
		switch strings.ToLower(cmd) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, interactiveHelp)
		case "status":
			if err := show(out, h.Current()); err != nil {
				return err
			}
		case "rotation":
			fmt.Fprintln(out, report.Rotation(h.Rotation()))
		case "back":
			if !h.Rollback() {
				fmt.Fprintln(out, "nothing to undo")
				continue
			}
			if err := show(out, h.Current()); err != nil {
				return err
			}
		default:
			if err := play(out, h, cmd); err != nil {
				return err
			}
		}
	}
}

// play resolves cmd to a skill and advances the combat with it.
// Unknown or unusable skills are reported to the user, not returned.
func play(out io.Writer, h *session.History, cmd string) error {
	cur := h.Current()
	if status := cur.Status(); status != combat.StatusInProgress {
		fmt.Fprintf(out, "%s, type back or quit\n", report.Outcome(status))
		return nil
	}

	i := skillIndex(&cur.Player, cmd)
	if i == combat.NoSkill {
		fmt.Fprintf(out, "unknown skill %q\n", cmd)
		return nil
	}
	if !cur.Player.CanUse(i) {
		fmt.Fprintf(out, "%s is not available\n", cur.Player.Skills[i].Name)
		return nil
	}
	if err := h.Play(i); err != nil {
		return err
	}

	next := h.Current()
	if err := show(out, next); err != nil {
		return err
	}
	if status := next.Status(); status != combat.StatusInProgress {
		fmt.Fprintln(out, report.Outcome(status))
	}
	return nil
}

// skillIndex accepts a skill number or a case-insensitive name.
func skillIndex(p *combat.Player, cmd string) int {
	if n, err := strconv.Atoi(cmd); err == nil {
		if n >= 0 && n < len(p.Skills) {
			return n
		}
		return combat.NoSkill
	}
	for i := range p.Skills {
		if strings.EqualFold(p.Skills[i].Name, cmd) {
			return i
		}
	}
	return combat.NoSkill
}

func show(out io.Writer, s *combat.State) error {
	if err := report.State(out, s); err != nil {
		return fmt.Errorf("rendering state: %w", err)
	}
	fmt.Fprintln(out)
	if err := report.Skills(out, &s.Player); err != nil {
		return fmt.Errorf("rendering skills: %w", err)
	}
	return nil
}
