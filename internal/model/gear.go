package model

import "fmt"

// Slot is an equipment slot.
type Slot uint8

const (
	SlotWeapon Slot = iota
	SlotHelm
	SlotCape
	SlotNecklace
	SlotBelt
	SlotRing
	SlotBracer
)

// Slots lists all equipment slots in display order.
var Slots = []Slot{SlotWeapon, SlotHelm, SlotCape, SlotNecklace, SlotBelt, SlotRing, SlotBracer}

var slotNames = [...]string{"Weapon", "Helm", "Cape", "Necklace", "Belt", "Ring", "Bracer"}

func (s Slot) String() string {
	if int(s) < len(slotNames) {
		return slotNames[s]
	}
	return fmt.Sprintf("Slot(%d)", uint8(s))
}

// ParseSlot parses a slot name (case-sensitive, as displayed).
func ParseSlot(s string) (Slot, error) {
	for i, name := range slotNames {
		if name == s {
			return Slot(i), nil
		}
	}
	return 0, fmt.Errorf("unknown slot %q", s)
}

// Item is a piece of gear. Its bonuses and resistances count as gear-sourced,
// which is where the crit and "all" resistance caps apply.
type Item struct {
	Name  string
	Slot  Slot
	Level int

	Bonuses Dict
	Resists Dict

	// Damage, when set on a weapon, replaces the wearer's base damage
	// range and type while equipped.
	Damage     *DamageRange
	DamageType DamageType
}

func (it *Item) armsWearer() bool {
	return it.Slot == SlotWeapon && it.Damage != nil
}
