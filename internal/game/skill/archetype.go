package skill

import (
	"errors"
	"fmt"

	"github.com/udisondev/rotasim/internal/config"
	"github.com/udisondev/rotasim/internal/model"
)

var (
	// ErrUnknownSkill is returned when a skill index is outside the archetype's skill list.
	ErrUnknownSkill = errors.New("unknown skill")
	// ErrInvalidTarget is returned when the targeted opponent does not exist.
	ErrInvalidTarget = errors.New("invalid target")
)

// Target selects who a skill's hits land on.
type Target uint8

const (
	TargetSingle Target = iota
	TargetAll
)

func parseTarget(s string) (Target, error) {
	switch s {
	case "", "single":
		return TargetSingle, nil
	case "all":
		return TargetAll, nil
	default:
		return 0, fmt.Errorf("unknown target %q", s)
	}
}

// Def is a compiled skill: its cost and the ordered steps it runs.
type Def struct {
	Name     string
	Mana     int
	Cooldown int
	Target   Target

	steps []step
}

// Archetype is an immutable, compiled archetype script. It is shared by
// every clone of the player that uses it.
type Archetype struct {
	Name       string
	Element    string
	Damage     model.DamageRange
	DamageType model.DamageType
	StackBonus float64

	onEntry []EffectSpec
	defs    []Def
}

// New compiles an archetype config.
func New(cfg config.Archetype) (*Archetype, error) {
	dmgType, err := model.ParseDamageType(cfg.DamageType)
	if err != nil {
		return nil, fmt.Errorf("archetype %q: %w", cfg.Name, err)
	}
	onEntry, err := newEffectSpecs(cfg.OnEntry)
	if err != nil {
		return nil, fmt.Errorf("archetype %q: on_entry: %w", cfg.Name, err)
	}

	a := &Archetype{
		Name:       cfg.Name,
		Element:    cfg.Element,
		Damage:     cfg.Damage,
		DamageType: dmgType,
		StackBonus: cfg.StackBonus,
		onEntry:    onEntry,
		defs:       make([]Def, 0, len(cfg.Skills)),
	}
	if a.Element == "" {
		a.Element = model.ElementNull
	}

	seen := make(map[string]struct{}, len(cfg.Skills))
	for _, sc := range cfg.Skills {
		if _, dup := seen[sc.Name]; dup {
			return nil, fmt.Errorf("archetype %q: duplicate skill %q", cfg.Name, sc.Name)
		}
		seen[sc.Name] = struct{}{}

		def, err := compile(sc)
		if err != nil {
			return nil, fmt.Errorf("archetype %q: skill %q: %w", cfg.Name, sc.Name, err)
		}
		a.defs = append(a.defs, def)
	}

	return a, nil
}

// Len returns the number of skills.
func (a *Archetype) Len() int {
	return len(a.defs)
}

// Def returns the skill definition at index i.
func (a *Archetype) Def(i int) (*Def, error) {
	if i < 0 || i >= len(a.defs) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrUnknownSkill, i, len(a.defs))
	}
	return &a.defs[i], nil
}

// Skills returns fresh, ready-to-use runtime skills in script order.
func (a *Archetype) Skills() []model.Skill {
	out := make([]model.Skill, len(a.defs))
	for i, d := range a.defs {
		out[i] = model.NewSkill(d.Name, d.Mana, d.Cooldown)
	}
	return out
}

// EntryEffects builds the effects applied to the targeted opponent at combat start.
func (a *Archetype) EntryEffects(caster *model.Entity) []model.Effect {
	return buildEffects(a.onEntry, caster)
}
