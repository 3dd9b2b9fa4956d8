package model

import "fmt"

// StunKind marks an effect as a stun.
type StunKind uint8

const (
	StunNone StunKind = iota
	// StunNormal succeeds with probability 1 - immobility/100.
	StunNormal
	// StunAutomatic always succeeds.
	StunAutomatic
)

// ParseStunKind parses the lower-case name used in data files.
func ParseStunKind(s string) (StunKind, error) {
	switch s {
	case "", "none":
		return StunNone, nil
	case "normal":
		return StunNormal, nil
	case "automatic":
		return StunAutomatic, nil
	default:
		return StunNone, fmt.Errorf("unknown stun kind %q", s)
	}
}

// DoT is a per-turn damage payload. A negative range heals (HoT).
type DoT struct {
	Damage  DamageRange
	Element string
}

// Effect is a timed buff or debuff on an entity.
// Two effects are the same effect when their names match; re-applying
// an effect replaces the previous instance.
type Effect struct {
	Name        string
	Description string
	Duration    int

	Bonuses Dict // nil when the effect grants no bonuses
	Resists Dict // nil when the effect grants no resistances

	DoT        *DoT
	Stun       StunKind
	DeathProof bool
}

// Clone returns a deep copy of e.
func (e Effect) Clone() Effect {
	out := e
	if e.Bonuses != nil {
		out.Bonuses = e.Bonuses.Clone()
	}
	if e.Resists != nil {
		out.Resists = e.Resists.Clone()
	}
	if e.DoT != nil {
		dot := *e.DoT
		out.DoT = &dot
	}
	return out
}

func cloneEffects(effects []Effect) []Effect {
	if effects == nil {
		return nil
	}
	out := make([]Effect, len(effects))
	for i := range effects {
		out[i] = effects[i].Clone()
	}
	return out
}
