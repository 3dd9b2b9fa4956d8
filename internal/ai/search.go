package ai

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/rotasim/internal/game/combat"
)

// ErrInvalidDepth is returned for a search depth below 1.
var ErrInvalidDepth = errors.New("search depth must be at least 1")

// Search returns the best value reachable from s within depth player turns.
// It stops early on the first winning branch; otherwise the first maximum wins.
// A state without usable skills is Lost.
func Search(s *combat.State, depth int) (EvalValue, error) {
	if depth <= 0 {
		return Evaluate(s), nil
	}

	best := Lost
	for _, i := range s.Player.AvailableSkills() {
		v, err := branch(s, i, depth)
		if err != nil {
			return Lost, err
		}
		if v.IsWon() {
			return v, nil
		}
		if v.Compare(best) > 0 {
			best = v
		}
	}
	return best, nil
}

// branch plays skill i on a fork of s keyed by i and searches the rest of the tree.
func branch(s *combat.State, i, depth int) (EvalValue, error) {
	next := s.Fork(uint64(i))
	next.Player.SelectSkill(i)
	if err := next.AdvanceTurn(); err != nil {
		return Lost, fmt.Errorf("playing %s: %w", s.Player.Skills[i].Name, err)
	}
	return Search(next, depth-1)
}

// BestSkill searches every usable root skill concurrently and returns the best one.
// workers bounds concurrency; 0 runs one goroutine per candidate.
// Ties go to the candidate that comes first in the skill list. With no usable
// skill the result is {NoSkill, Lost}.
func BestSkill(s *combat.State, depth, workers int) (SkillEval, error) {
	if depth < 1 {
		return SkillEval{Index: NoSkill, Eval: Lost}, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}

	candidates := s.Player.AvailableSkills()
	if len(candidates) == 0 {
		return SkillEval{Index: NoSkill, Eval: Lost}, nil
	}

	results := make([]EvalValue, len(candidates))

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for k, i := range candidates {
		g.Go(func() error {
			v, err := branch(s, i, depth)
			if err != nil {
				return err
			}
			results[k] = v

			if IsDebugEnabled() {
				slog.Debug("root branch evaluated", "skill", s.Player.Skills[i].Name, "eval", v)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SkillEval{Index: NoSkill, Eval: Lost}, fmt.Errorf("searching depth %d: %w", depth, err)
	}

	best := SkillEval{Index: candidates[0], Eval: results[0]}
	for k := 1; k < len(candidates); k++ {
		if results[k].Compare(best.Eval) > 0 {
			best = SkillEval{Index: candidates[k], Eval: results[k]}
		}
	}
	return best, nil
}
