package model

// Skill is a player ability with a mana cost and a turn-based cooldown.
type Skill struct {
	Name            string
	Mana            int
	Cooldown        int
	CurrentCooldown int
}

// NewSkill creates a skill that is ready to use.
func NewSkill(name string, mana, cooldown int) Skill {
	return Skill{Name: name, Mana: mana, Cooldown: cooldown}
}

// Ready reports whether the cooldown has elapsed.
func (s *Skill) Ready() bool {
	return s.CurrentCooldown <= 0
}

// Trigger puts the skill on cooldown. The extra turn accounts for the
// decay that happens at the end of the turn the skill was used in.
func (s *Skill) Trigger() {
	s.CurrentCooldown = s.Cooldown + 1
}

// Decay lowers the remaining cooldown by one turn, floored at zero.
func (s *Skill) Decay() {
	s.CurrentCooldown = max(s.CurrentCooldown-1, 0)
}
