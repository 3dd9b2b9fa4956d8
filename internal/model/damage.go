package model

import (
	"fmt"

	"github.com/udisondev/rotasim/internal/rng"
)

// DamageRange is a closed interval of damage. Min > Max is allowed;
// negated ranges represent healing.
type DamageRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Static returns the degenerate range [v, v].
func Static(v float64) DamageRange {
	return DamageRange{Min: v, Max: v}
}

// Resolve draws a value uniformly from the range.
func (r DamageRange) Resolve(src rng.Source) float64 {
	return rng.Uniform(src, r.Min, r.Max)
}

func (r DamageRange) Add(o DamageRange) DamageRange {
	return DamageRange{Min: r.Min + o.Min, Max: r.Max + o.Max}
}

func (r DamageRange) AddScalar(v float64) DamageRange {
	return DamageRange{Min: r.Min + v, Max: r.Max + v}
}

func (r DamageRange) Mul(v float64) DamageRange {
	return DamageRange{Min: r.Min * v, Max: r.Max * v}
}

func (r DamageRange) Div(v float64) DamageRange {
	return DamageRange{Min: r.Min / v, Max: r.Max / v}
}

func (r DamageRange) Neg() DamageRange {
	return r.Mul(-1)
}

// IsHealing reports whether the range only restores health.
func (r DamageRange) IsHealing() bool {
	return r.Max < 0
}

// DamageType selects the mainstat, defense and glancing categories of an attack.
type DamageType uint8

const (
	DamageMelee DamageType = iota
	DamagePierce
	DamageMagic
	DamageConstant
)

// DefenseKey returns the bonus key rolled against for a miss.
func (t DamageType) DefenseKey() string {
	switch t {
	case DamageMelee:
		return "melee_def"
	case DamagePierce:
		return "pierce_def"
	case DamageMagic:
		return "magic_def"
	default:
		return "constant_def"
	}
}

// GlancingKey returns the block/parry/dodge bonus key rolled against for a glancing hit.
func (t DamageType) GlancingKey() string {
	switch t {
	case DamageMelee:
		return "block"
	case DamagePierce:
		return "parry"
	case DamageMagic:
		return "dodge"
	default:
		return "constant_bpd"
	}
}

func (t DamageType) String() string {
	switch t {
	case DamageMelee:
		return "melee"
	case DamagePierce:
		return "pierce"
	case DamageMagic:
		return "magic"
	case DamageConstant:
		return "constant"
	default:
		return fmt.Sprintf("DamageType(%d)", uint8(t))
	}
}

// ParseDamageType parses the lower-case name used in data files.
func ParseDamageType(s string) (DamageType, error) {
	switch s {
	case "melee", "":
		return DamageMelee, nil
	case "pierce":
		return DamagePierce, nil
	case "magic":
		return DamageMagic, nil
	case "constant":
		return DamageConstant, nil
	default:
		return 0, fmt.Errorf("unknown damage type %q", s)
	}
}
