package config

import (
	"fmt"

	"github.com/udisondev/rotasim/internal/model"
)

// Archetype is a player archetype skill script.
type Archetype struct {
	Name       string            `yaml:"name"`
	Element    string            `yaml:"element"`
	Damage     model.DamageRange `yaml:"damage"`
	DamageType string            `yaml:"damage_type"`

	// StackBonus is the damage multiplier added per accumulated stack.
	StackBonus float64 `yaml:"stack_bonus"`

	// OnEntry effects land on the targeted opponent when combat starts.
	OnEntry []EffectConfig `yaml:"on_entry"`

	Skills []SkillConfig `yaml:"skills"`
}

// SkillConfig describes one skill. Parts run in field order:
// cleanse, heal, mana gain, stacks, self effects, opening, hits.
type SkillConfig struct {
	Name     string `yaml:"name"`
	Mana     int    `yaml:"mana"`
	Cooldown int    `yaml:"cooldown"`

	// Target is "single" (default) or "all".
	Target string `yaml:"target"`

	Cleanse     *CleanseConfig `yaml:"cleanse"`
	Heal        *HealConfig    `yaml:"heal"`
	ManaGain    int            `yaml:"mana_gain"`
	Stacks      int            `yaml:"stacks"`
	SelfEffects []EffectConfig `yaml:"self_effects"`
	Opening     *OpeningConfig `yaml:"opening"`
	Hits        *HitsConfig    `yaml:"hits"`
}

// CleanseConfig removes the caster's effects except those named in Keep.
type CleanseConfig struct {
	Keep []string `yaml:"keep"`
}

// HealConfig heals the caster by a fraction of max HP.
type HealConfig struct {
	Fraction float64 `yaml:"fraction"`
	Element  string  `yaml:"element"`

	// HoT, if set, also heals the same amount every turn for its duration.
	HoT *HoTConfig `yaml:"hot"`
}

type HoTConfig struct {
	Name     string `yaml:"name"`
	Duration int    `yaml:"duration"`
}

// OpeningConfig grants extra hits when the target carries the marker effect.
// By default the hits carry the skill's hit bonuses and effects. With
// inherit: false they carry only Bonuses, Before and After listed here.
type OpeningConfig struct {
	Effect     string  `yaml:"effect"`
	Hits       int     `yaml:"hits"`
	Multiplier float64 `yaml:"multiplier"`

	Inherit *bool          `yaml:"inherit"`
	Bonuses model.Dict     `yaml:"bonuses"`
	Before  []EffectConfig `yaml:"before"`
	After   []EffectConfig `yaml:"after"`
}

// InheritsHits reports whether the opening reuses the skill's hit bonuses and effects.
func (o OpeningConfig) InheritsHits() bool {
	return o.Inherit == nil || *o.Inherit
}

// HitsConfig splits Multiplier × base damage across Count hits.
type HitsConfig struct {
	Count      int            `yaml:"count"`
	Multiplier float64        `yaml:"multiplier"`
	Bonuses    model.Dict     `yaml:"bonuses"`
	Before     []EffectConfig `yaml:"before"`
	After      []EffectConfig `yaml:"after"`
	Mana       bool           `yaml:"mana"`
}

// EffectConfig describes a timed effect.
type EffectConfig struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Duration    int        `yaml:"duration"`
	Bonuses     model.Dict `yaml:"bonuses"`
	Resists     model.Dict `yaml:"resists"`
	DoT         *DoTConfig `yaml:"dot"`
	Stun        string     `yaml:"stun"`
	DeathProof  bool       `yaml:"death_proof"`
}

// DoTConfig is either a fixed damage range or, with StatScaled, derived from
// the caster's base damage and mainstat and divided by Divisor.
type DoTConfig struct {
	Damage     *model.DamageRange `yaml:"damage"`
	Element    string             `yaml:"element"`
	StatScaled bool               `yaml:"stat_scaled"`
	Divisor    float64            `yaml:"divisor"`
}

// Roster lists the opponents of an encounter in turn order.
type Roster struct {
	Opponents []OpponentConfig `yaml:"opponents"`
}

// OpponentConfig describes one opponent.
type OpponentConfig struct {
	Name string `yaml:"name"`

	// Kind is "dummy" or "striker".
	Kind  string `yaml:"kind"`
	Level int    `yaml:"level"`
	MaxHP int    `yaml:"max_hp"`
	MaxMP int    `yaml:"max_mp"`

	Damage     model.DamageRange `yaml:"damage"`
	DamageType string            `yaml:"damage_type"`
	Element    string            `yaml:"element"`

	Bonuses model.Dict `yaml:"bonuses"`
	Resists model.Dict `yaml:"resists"`
}

// ItemConfig describes a piece of gear.
type ItemConfig struct {
	Name    string     `yaml:"name"`
	Slot    string     `yaml:"slot"`
	Level   int        `yaml:"level"`
	Bonuses model.Dict `yaml:"bonuses"`
	Resists model.Dict `yaml:"resists"`

	// Damage and DamageType only apply to weapons.
	Damage     *model.DamageRange `yaml:"damage"`
	DamageType string             `yaml:"damage_type"`
}

// Item converts the config into a model item.
func (c ItemConfig) Item() (model.Item, error) {
	slot, err := model.ParseSlot(c.Slot)
	if err != nil {
		return model.Item{}, fmt.Errorf("item %q: %w", c.Name, err)
	}
	dmgType, err := model.ParseDamageType(c.DamageType)
	if err != nil {
		return model.Item{}, fmt.Errorf("item %q: %w", c.Name, err)
	}
	if c.Damage != nil && slot != model.SlotWeapon {
		return model.Item{}, fmt.Errorf("item %q: only weapons carry damage, slot is %s", c.Name, slot)
	}

	return model.Item{
		Name:       c.Name,
		Slot:       slot,
		Level:      c.Level,
		Bonuses:    c.Bonuses.Clone(),
		Resists:    c.Resists.Clone(),
		Damage:     c.Damage,
		DamageType: dmgType,
	}, nil
}

// LoadArchetype reads an archetype skill script.
func LoadArchetype(path string) (Archetype, error) {
	var a Archetype
	if err := loadYAML(path, &a); err != nil {
		return a, fmt.Errorf("loading archetype: %w", err)
	}
	if len(a.Skills) == 0 {
		return a, fmt.Errorf("loading archetype %s: no skills", path)
	}
	return a, nil
}

// LoadRoster reads an opponent roster.
func LoadRoster(path string) (Roster, error) {
	var r Roster
	if err := loadYAML(path, &r); err != nil {
		return r, fmt.Errorf("loading roster: %w", err)
	}
	if len(r.Opponents) == 0 {
		return r, fmt.Errorf("loading roster %s: no opponents", path)
	}
	return r, nil
}
