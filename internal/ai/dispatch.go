package ai

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/udisondev/rotasim/internal/game/combat"
)

// ErrSearchInFlight is returned by Start while a previous result has not been polled.
var ErrSearchInFlight = errors.New("search already in flight")

// commitStream keys the random stream of the committed turn. Root branches
// are keyed by skill index, so the committed turn never replays their rolls.
const commitStream = math.MaxUint64

// Result is a finished search: the state after the chosen skill was played.
// SkillName is empty when no skill was usable; State is then the searched
// state itself and Eval is Lost.
type Result struct {
	State     *combat.State
	SkillName string
	Eval      EvalValue
	Err       error
}

// Dispatcher runs one search at a time in the background and hands the
// result to a polling caller.
type Dispatcher struct {
	depth   int
	workers int

	results chan Result
	busy    atomic.Bool
}

// NewDispatcher creates a dispatcher searching depth turns ahead with at most
// workers concurrent root branches (0 means unbounded).
func NewDispatcher(depth, workers int) *Dispatcher {
	return &Dispatcher{
		depth:   depth,
		workers: workers,
		results: make(chan Result, 1),
	}
}

// Start searches a snapshot of s in a new goroutine. s is not modified
// and may be used while the search runs.
func (d *Dispatcher) Start(s *combat.State) error {
	if d.depth < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDepth, d.depth)
	}
	if !d.busy.CompareAndSwap(false, true) {
		return ErrSearchInFlight
	}

	snapshot := s.Clone()
	go func() {
		d.results <- d.run(snapshot)
	}()
	return nil
}

// Poll returns the finished result without blocking.
// false means the search is still running or none was started.
func (d *Dispatcher) Poll() (Result, bool) {
	select {
	case r := <-d.results:
		d.busy.Store(false)
		return r, true
	default:
		return Result{}, false
	}
}

// Busy reports whether a search is running or its result is unpolled.
func (d *Dispatcher) Busy() bool {
	return d.busy.Load()
}

func (d *Dispatcher) run(s *combat.State) Result {
	start := time.Now()
	slog.Info("search started",
		"turn", s.Turn,
		"depth", d.depth,
		"candidates", len(s.Player.AvailableSkills()))

	best, err := BestSkill(s, d.depth, d.workers)
	if err != nil {
		return Result{Err: err}
	}
	if best.Index == NoSkill {
		slog.Info("search finished without a usable skill", "duration", time.Since(start))
		return Result{State: s, Eval: Lost}
	}

	name := s.Player.Skills[best.Index].Name
	next := s.Fork(commitStream)
	next.Player.SelectSkill(best.Index)
	if err := next.AdvanceTurn(); err != nil {
		return Result{Err: fmt.Errorf("committing %s: %w", name, err)}
	}

	slog.Info("search finished",
		"skill", name,
		"eval", best.Eval,
		"duration", time.Since(start))

	return Result{State: next, SkillName: name, Eval: best.Eval}
}
