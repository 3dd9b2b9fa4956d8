package session

import (
	"fmt"
	"sync"

	"github.com/udisondev/rotasim/internal/game/combat"
)

// History is an in-memory undo stack of combat states.
// Every entry is an independent clone; the bottom entry is never dropped.
type History struct {
	mu     sync.RWMutex
	states []*combat.State
	skills []string
}

// New starts a history at initial.
func New(initial *combat.State) *History {
	return &History{states: []*combat.State{initial.Clone()}}
}

// Current returns the latest state. Callers must not modify it; use Play or Push.
func (h *History) Current() *combat.State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.states[len(h.states)-1]
}

// Play advances a clone of the current state with skill i and pushes it.
// On error the history is unchanged.
func (h *History) Play(i int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	cur := h.states[len(h.states)-1]
	next := cur.Clone()
	next.Player.SelectSkill(i)
	if err := next.AdvanceTurn(); err != nil {
		return fmt.Errorf("playing skill %d: %w", i, err)
	}

	h.states = append(h.states, next)
	h.skills = append(h.skills, cur.Player.Skills[i].Name)
	return nil
}

// Push records a state reached elsewhere, e.g. by a background search.
func (h *History) Push(s *combat.State, skill string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.states = append(h.states, s)
	h.skills = append(h.skills, skill)
}

// Rollback drops the latest state. It reports false at the initial state.
func (h *History) Rollback() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.states) == 1 {
		return false
	}
	h.states[len(h.states)-1] = nil
	h.states = h.states[:len(h.states)-1]
	h.skills = h.skills[:len(h.skills)-1]
	return true
}

// Depth returns the number of turns played since the initial state.
func (h *History) Depth() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.states) - 1
}

// Rotation returns the skills played so far, oldest first.
func (h *History) Rotation() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.skills...)
}
