package model

import (
	"maps"
	"slices"
)

// Well-known attribute keys.
const (
	StatSTR = "STR"
	StatDEX = "DEX"
	StatINT = "INT"
	StatCHA = "CHA"
	StatLUK = "LUK"
	StatEND = "END"
	StatWIS = "WIS"

	KeyBonus             = "bonus"
	KeyBoost             = "boost"
	KeyCrit              = "crit"
	KeyCritModifier      = "crit_modifier"
	KeyCritModifierBonus = "crit_modifier_bonus"

	ResistAll        = "all"
	ResistHealth     = "health"
	ResistImmobility = "immobility"

	// ElementNull is the untyped element; "all" resistance does not apply to it.
	ElementNull = "null"
)

// BaseCritModifier is the damage multiplier of a critical hit before bonuses.
const BaseCritModifier = 1.75

// Stats lists the primary stats in display order.
var Stats = []string{StatSTR, StatDEX, StatINT, StatCHA, StatLUK, StatEND, StatWIS}

// Dict is a sparse attribute map used for bonuses and resistances.
// Absent keys read as a key-specific default (see DefaultValue).
type Dict map[string]float64

// DefaultValue returns the value an absent key reads as.
func DefaultValue(key string) float64 {
	if key == KeyCritModifier {
		return BaseCritModifier
	}
	return 0
}

// Get returns the value for key, or its default if absent.
func (d Dict) Get(key string) float64 {
	if v, ok := d[key]; ok {
		return v
	}
	return DefaultValue(key)
}

// Set stores value under key.
func (d Dict) Set(key string, value float64) {
	d[key] = value
}

// Add adds delta to key. Adding zero never inserts the key.
func (d Dict) Add(key string, delta float64) {
	if delta == 0 {
		return
	}
	d[key] = d.Get(key) + delta
}

// Merge adds every key of other.
func (d Dict) Merge(other Dict) {
	for k, v := range other {
		d.Add(k, v)
	}
}

// Unmerge subtracts every key of other.
func (d Dict) Unmerge(other Dict) {
	for k, v := range other {
		d.Add(k, -v)
	}
}

// Combine returns a new Dict holding d merged with other. Neither operand changes.
func (d Dict) Combine(other Dict) Dict {
	out := d.Clone()
	out.Merge(other)
	return out
}

// Neg returns a new Dict with every value negated.
func (d Dict) Neg() Dict {
	out := make(Dict, len(d))
	for k, v := range d {
		out[k] = -v
	}
	return out
}

// Clone returns a copy of d. A nil Dict clones to an empty, writable one.
func (d Dict) Clone() Dict {
	out := make(Dict, len(d))
	maps.Copy(out, d)
	return out
}

// Keys returns the present keys in sorted order.
func (d Dict) Keys() []string {
	return slices.Sorted(maps.Keys(d))
}

// MainStat returns the primary stat that scales damage of the given type.
func (d Dict) MainStat(t DamageType) float64 {
	switch t {
	case DamageMelee:
		return d.Get(StatSTR)
	case DamagePierce:
		return d.Get(StatDEX)
	case DamageMagic:
		return d.Get(StatINT)
	default:
		return 0
	}
}
