package combat

import (
	"errors"
	"fmt"

	"github.com/udisondev/rotasim/internal/game/skill"
	"github.com/udisondev/rotasim/internal/model"
	"github.com/udisondev/rotasim/internal/rng"
)

var (
	// ErrNoSkillSelected is returned when a turn is advanced without a selected skill.
	ErrNoSkillSelected = errors.New("no skill selected")
	// ErrSkillUnavailable is returned when the selected skill is on cooldown or unaffordable.
	ErrSkillUnavailable = errors.New("skill unavailable")
	// ErrNoOpponents is returned when combat is started against an empty roster.
	ErrNoOpponents = errors.New("no opponents")
)

// Status is the outcome of a combat state.
type Status uint8

const (
	StatusInProgress Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "in progress"
	}
}

// State is a complete, independently clonable combat snapshot.
type State struct {
	Player    Player
	Opponents []Opponent
	Turn      int

	// Rand is copied by Clone, so clones replay the same random stream.
	// Fork gives the copy a stream of its own.
	Rand rng.Source

	Options model.AttackOptions
}

// New starts combat: the player's archetype entry effects land once on the
// targeted opponent.
func New(player Player, opponents []Opponent, src rng.Source) (*State, error) {
	if len(opponents) == 0 {
		return nil, ErrNoOpponents
	}
	if player.Target < 0 || player.Target >= len(opponents) {
		return nil, fmt.Errorf("%w: target %d of %d opponents", skill.ErrInvalidTarget, player.Target, len(opponents))
	}

	s := &State{
		Player:    player,
		Opponents: opponents,
		Turn:      1,
		Rand:      src,
	}

	target := &s.Opponents[player.Target].Entity
	for _, eff := range player.Archetype().EntryEffects(&s.Player.Entity) {
		target.AddEffect(s.Rand, eff)
	}

	return s, nil
}

// AdvanceTurn runs one turn with the selected skill. On error the state is unchanged.
func (s *State) AdvanceTurn() error {
	i, err := s.ValidateTurn()
	if err != nil {
		return err
	}

	s.Turn++

	s.Player.TickEffects(s.Rand)
	s.Player.UseSkill(i)
	cast := skill.Cast{
		Caster:    &s.Player.Entity,
		Opponents: s.opponentRefs(),
		Target:    s.Player.Target,
		Stacks:    &s.Player.Stacks,
		Rand:      s.Rand,
		Options:   s.Options,
	}
	if err := s.Player.Archetype().Execute(i, cast); err != nil {
		return fmt.Errorf("turn %d: %w", s.Turn, err)
	}
	s.Player.ClearSelection()
	s.Player.DecayCooldowns()

	for j := range s.Opponents {
		o := &s.Opponents[j]
		o.TickEffects(s.Rand)
		o.act(s.Rand, &s.Player, s.Options)
	}

	return nil
}

func (s *State) opponentRefs() []*model.Entity {
	refs := make([]*model.Entity, len(s.Opponents))
	for j := range s.Opponents {
		refs[j] = &s.Opponents[j].Entity
	}
	return refs
}

// Status reports whether the player has won, lost or is still fighting.
func (s *State) Status() Status {
	if s.Player.Dead() {
		return StatusLost
	}
	for j := range s.Opponents {
		if !s.Opponents[j].Dead() {
			return StatusInProgress
		}
	}
	return StatusWon
}

// Clone returns a deep copy sharing no mutable data with s.
func (s *State) Clone() *State {
	out := &State{
		Player:    s.Player.Clone(),
		Opponents: make([]Opponent, len(s.Opponents)),
		Turn:      s.Turn,
		Options:   s.Options,
	}
	for j := range s.Opponents {
		out.Opponents[j] = s.Opponents[j].Clone()
	}
	if s.Rand != nil {
		out.Rand = s.Rand.Clone()
	}
	return out
}

// Fork returns a deep copy like Clone whose random stream is derived from
// s.Rand and key instead of replaying it. s is not modified.
func (s *State) Fork(key uint64) *State {
	out := s.Clone()
	if s.Rand != nil {
		out.Rand = s.Rand.Fork(key)
	}
	return out
}
