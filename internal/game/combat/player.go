package combat

import (
	"slices"

	"github.com/udisondev/rotasim/internal/game/skill"
	"github.com/udisondev/rotasim/internal/model"
)

// NoSkill marks an empty skill selection.
const NoSkill = -1

// Player is the player character: an entity driven by an archetype script.
type Player struct {
	model.Entity

	Skills []model.Skill

	// Current is the selected skill index, or NoSkill.
	Current int

	// Target is the index of the targeted opponent.
	Target int

	// Stacks accumulate from skills and scale the archetype's hit damage.
	Stacks int

	archetype *skill.Archetype
}

// NewPlayer creates a level-scaled player for arch with the given base stats.
func NewPlayer(arch *skill.Archetype, level int, stats model.Dict) Player {
	p := Player{
		Entity: model.NewEntity("Player", model.RolePlayer, level,
			100+(level-1)*20,
			100+(level-1)*5,
			arch.Damage, arch.DamageType, arch.Element),
		Skills:    arch.Skills(),
		Current:   NoSkill,
		archetype: arch,
	}

	if len(stats) > 0 {
		p.RecalculateStatBonuses(stats)
		p.Bonuses.Merge(stats)
	}
	p.Restore()

	return p
}

// Archetype returns the script the player runs.
func (p *Player) Archetype() *skill.Archetype {
	return p.archetype
}

// Restore refills HP and MP, e.g. after equipping gear.
func (p *Player) Restore() {
	p.HP = p.MaxHP
	p.MP = p.MaxMP
}

// CanUse reports whether skill i is off cooldown and affordable.
func (p *Player) CanUse(i int) bool {
	if i < 0 || i >= len(p.Skills) {
		return false
	}
	s := &p.Skills[i]
	return s.Ready() && p.MP >= s.Mana
}

// AvailableSkills returns the indices of usable skills in skill-list order.
func (p *Player) AvailableSkills() []int {
	var out []int
	for i := range p.Skills {
		if p.CanUse(i) {
			out = append(out, i)
		}
	}
	return out
}

// SelectSkill selects skill i for the next turn.
func (p *Player) SelectSkill(i int) {
	p.Current = i
}

// Selected returns the selected skill index.
func (p *Player) Selected() (int, bool) {
	return p.Current, p.Current != NoSkill
}

// ClearSelection drops the selected skill.
func (p *Player) ClearSelection() {
	p.Current = NoSkill
}

// UseSkill pays for skill i and puts it on cooldown.
func (p *Player) UseSkill(i int) {
	s := &p.Skills[i]
	s.Trigger()
	p.MP -= s.Mana
}

// DecayCooldowns lowers every cooldown by one turn.
func (p *Player) DecayCooldowns() {
	for i := range p.Skills {
		p.Skills[i].Decay()
	}
}

// SkillIndex returns the index of the skill named name, or -1.
func (p *Player) SkillIndex(name string) int {
	return slices.IndexFunc(p.Skills, func(s model.Skill) bool { return s.Name == name })
}

// Clone returns a deep copy. The archetype script is shared.
func (p *Player) Clone() Player {
	out := *p
	out.Entity = p.Entity.Clone()
	out.Skills = slices.Clone(p.Skills)
	return out
}
