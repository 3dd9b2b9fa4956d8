package combat

import (
	"fmt"

	"github.com/udisondev/rotasim/internal/game/skill"
)

// ValidateTurn checks that the turn can be advanced and returns the selected skill.
//
// Checks:
//   - A skill is selected
//   - The skill exists in the archetype script
//   - The skill is off cooldown and affordable
//   - The targeted opponent exists
func (s *State) ValidateTurn() (int, error) {
	// 1. Selection
	i, ok := s.Player.Selected()
	if !ok {
		return NoSkill, ErrNoSkillSelected
	}

	// 2. Script
	def, err := s.Player.Archetype().Def(i)
	if err != nil {
		return NoSkill, err
	}

	// 3. Cooldown and mana
	if !s.Player.CanUse(i) {
		sk := s.Player.Skills[i]
		return NoSkill, fmt.Errorf("%w: %s (cooldown %d, mana %d/%d)",
			ErrSkillUnavailable, def.Name, sk.CurrentCooldown, s.Player.MP, sk.Mana)
	}

	// 4. Target
	if s.Player.Target < 0 || s.Player.Target >= len(s.Opponents) {
		return NoSkill, fmt.Errorf("%w: target %d of %d opponents", skill.ErrInvalidTarget, s.Player.Target, len(s.Opponents))
	}

	return i, nil
}
