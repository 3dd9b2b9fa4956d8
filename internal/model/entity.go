package model

import (
	"log/slog"
	"maps"
	"math"
	"slices"

	"github.com/udisondev/rotasim/internal/rng"
)

// Role distinguishes the player from opponents where stat rules differ.
type Role uint8

const (
	RolePlayer Role = iota
	RoleOpponent
)

func (r Role) String() string {
	if r == RolePlayer {
		return "player"
	}
	return "opponent"
}

const (
	// missDivisor and glancingDivisor turn a defense-minus-bonus difference into a probability.
	missDivisor     = 151.0
	glancingDivisor = 151.0
	// critDivisor: crit rolls are 0-200 inclusive.
	critDivisor = 201.0

	gearCritCap      = 100.0
	gearAllResistCap = 80.0

	glancingModifier = 0.05
)

// defenseKeys are the miss-check bonuses derived from LUK.
var defenseKeys = [...]string{"melee_def", "pierce_def", "magic_def"}

// Entity is the combat state shared by the player and opponents.
//
// HP and MP are not clamped: they may go negative, and an entity is
// defeated once HP <= 0. Bonuses and Resists are derived from the effect
// list and must only be changed through AddEffect/RemoveEffect (or Equip
// for the gear maps) so that stat recalculation stays consistent.
type Entity struct {
	MaxHP int
	HP    int
	MaxMP int
	MP    int

	Name  string
	Level int
	Role  Role

	Damage     DamageRange
	DamageType DamageType
	Element    string

	// Bonuses/resistances from base stats, effects and the like.
	Bonuses Dict
	Resists Dict

	// Bonuses/resistances from gear.
	GearBonuses Dict
	GearResists Dict

	Effects []Effect
	Items   map[Slot]Item

	// Number of stuns currently active on the entity.
	stuns int

	// Base damage to restore when an armed weapon is unequipped.
	bareDamage     DamageRange
	bareDamageType DamageType
}

// NewEntity creates an entity at full health and mana.
func NewEntity(name string, role Role, level, maxHP, maxMP int, dmg DamageRange, dmgType DamageType, elem string) Entity {
	return Entity{
		MaxHP:       maxHP,
		HP:          maxHP,
		MaxMP:       maxMP,
		MP:          maxMP,
		Name:        name,
		Level:       level,
		Role:        role,
		Damage:      dmg,
		DamageType:  dmgType,
		Element:     elem,
		Bonuses:     Dict{},
		Resists:     Dict{},
		GearBonuses: Dict{},
		GearResists: Dict{},
		Items:       map[Slot]Item{},
	}
}

// Clone returns a deep copy of e.
func (e *Entity) Clone() Entity {
	out := *e
	out.Bonuses = e.Bonuses.Clone()
	out.Resists = e.Resists.Clone()
	out.GearBonuses = e.GearBonuses.Clone()
	out.GearResists = e.GearResists.Clone()
	out.Effects = cloneEffects(e.Effects)
	out.Items = maps.Clone(e.Items)
	if out.Items == nil {
		out.Items = map[Slot]Item{}
	}
	return out
}

// Dead reports whether the entity has been defeated.
func (e *Entity) Dead() bool {
	return e.HP <= 0
}

// IsStunned reports whether at least one stun is active.
func (e *Entity) IsStunned() bool {
	return e.stuns > 0
}

// Resist returns the total resistance to elem.
// Every element except "null" also receives "all"; the gear part of "all" is capped at 80.
func (e *Entity) Resist(elem string) float64 {
	r := e.Resists.Get(elem) + e.GearResists[elem]
	if elem != ElementNull {
		r += e.Resists.Get(ResistAll) + min(e.GearResists[ResistAll], gearAllResistCap)
	}
	return r
}

// Bonus returns the total bonus for key. Gear can only give 100 crit.
func (e *Entity) Bonus(key string) float64 {
	gear := e.GearBonuses[key]
	if key == KeyCrit {
		gear = min(gear, gearCritCap)
	}
	return e.Bonuses.Get(key) + gear
}

// MainStat returns the total of the stat that scales damage of type t.
func (e *Entity) MainStat(t DamageType) float64 {
	return e.Bonuses.MainStat(t) + e.GearBonuses.MainStat(t)
}

// RecalculateStatBonuses updates the secondary attributes derived from
// END, WIS and LUK for a pending change of diff. Call it before diff is
// merged into (or unmerged from) the bonus maps: the current stat values
// are read as the old ones.
//
// Secondary stats only change when a stat crosses an integer multiple of
// its divisor, so applying diff and then diff.Neg() restores everything.
func (e *Entity) RecalculateStatBonuses(diff Dict) {
	step := func(stat string, divisor float64) float64 {
		old := e.Bonuses.Get(stat) + e.GearBonuses[stat]
		return math.Floor((old+diff.Get(stat))/divisor) - math.Floor(old/divisor)
	}

	e.MaxHP += int(diff.Get(StatEND)) * 5
	e.MaxMP += int(diff.Get(StatWIS)) * 5

	e.Bonuses.Add(KeyCrit, step(StatLUK, 10))

	defDiff := step(StatLUK, 20)
	for _, key := range defenseKeys {
		e.Bonuses.Add(key, defDiff)
	}
	e.Bonuses.Add(KeyBonus, step(StatWIS, 10))

	if e.Role == RolePlayer {
		e.Resists.Add(ResistImmobility, step(StatEND, 5))
	}
	e.Resists.Add(ResistHealth, step(StatWIS, -5))
}

// EffectIndex returns the index of the effect named name, or -1.
func (e *Entity) EffectIndex(name string) int {
	return slices.IndexFunc(e.Effects, func(eff Effect) bool { return eff.Name == name })
}

// HasEffect reports whether an effect named name is active.
func (e *Entity) HasEffect(name string) bool {
	return e.EffectIndex(name) >= 0
}

// AddEffect applies eff, replacing any active effect with the same name.
// Returns false if eff is a stun that was resisted; in that case nothing
// of eff is applied.
func (e *Entity) AddEffect(src rng.Source, eff Effect) bool {
	if i := e.EffectIndex(eff.Name); i >= 0 {
		e.RemoveEffect(i)
	}

	switch eff.Stun {
	case StunNormal:
		if !rng.Chance(src, 1-e.Resist(ResistImmobility)/100) {
			slog.Debug("stun resisted", "target", e.Name, "effect", eff.Name)
			return false
		}
		e.stuns++
	case StunAutomatic:
		e.stuns++
	}

	if eff.Bonuses != nil {
		e.RecalculateStatBonuses(eff.Bonuses)
		e.Bonuses.Merge(eff.Bonuses)
	}
	if eff.Resists != nil {
		e.Resists.Merge(eff.Resists)
	}

	e.Effects = append(e.Effects, eff)
	return true
}

// RemoveEffect removes the effect at index i and rolls back its deltas.
func (e *Entity) RemoveEffect(i int) {
	eff := e.Effects[i]
	e.Effects = slices.Delete(e.Effects, i, i+1)

	if eff.Stun != StunNone {
		e.stuns--
	}
	if eff.Bonuses != nil {
		e.RecalculateStatBonuses(eff.Bonuses.Neg())
		e.Bonuses.Unmerge(eff.Bonuses)
	}
	if eff.Resists != nil {
		e.Resists.Unmerge(eff.Resists)
	}
}

// TickEffects advances every effect by one turn.
// DoT/HoT payloads of all effects land first, including those expiring on
// this tick; expired effects are then removed in reverse index order.
func (e *Entity) TickEffects(src rng.Source) {
	var expired []int
	var dots []DoT

	for i := range e.Effects {
		eff := &e.Effects[i]
		eff.Duration--
		if eff.Duration <= 0 {
			expired = append(expired, i)
		}
		if eff.DoT != nil {
			dots = append(dots, *eff.DoT)
		}
	}

	for _, dot := range dots {
		e.TakeDoT(src, dot)
	}

	for _, i := range slices.Backward(expired) {
		e.RemoveEffect(i)
	}
}

// TakeDoT applies one resistance-adjusted tick of dot. A healing range restores HP.
func (e *Entity) TakeDoT(src rng.Source, dot DoT) {
	dmg := dot.Damage.Resolve(src)
	dmg *= (100 - e.Resist(dot.Element)) / 100
	e.TakeDamage(int(math.Round(dmg)))
}

// TakeDamage subtracts amount from HP. While any death-proof effect is
// active, positive damage cannot take HP below 1.
func (e *Entity) TakeDamage(amount int) {
	e.HP -= amount
	if amount > 0 && e.HP < 1 && e.deathProof() {
		e.HP = 1
	}
}

func (e *Entity) deathProof() bool {
	return slices.ContainsFunc(e.Effects, func(eff Effect) bool { return eff.DeathProof })
}

// Heal restores a resistance-adjusted amount of HP (or MP).
func (e *Entity) Heal(elem string, amount float64, mp bool) {
	amount *= (100 - e.Resist(elem)) / 100
	v := int(math.Round(amount))
	if mp {
		e.MP += v
	} else {
		e.HP += v
	}
}

// Attack resolves hits against defender in order.
func (e *Entity) Attack(src rng.Source, defender *Entity, hits []Hit, opts AttackOptions) {
	for i := range hits {
		h := &hits[i]
		if h.Bonuses != nil {
			e.Bonuses.Merge(h.Bonuses)
		}
		e.resolveHit(src, defender, h, opts)
		if h.Bonuses != nil {
			e.Bonuses.Unmerge(h.Bonuses)
		}
	}
}

func (e *Entity) resolveHit(src rng.Source, defender *Entity, h *Hit, opts AttackOptions) {
	bonus := e.Bonus(KeyBonus)

	if rng.Chance(src, (defender.Bonus(e.DamageType.DefenseKey())-bonus)/missDivisor) {
		return
	}
	glancing := rng.Chance(src, (defender.Bonus(e.DamageType.GlancingKey())-bonus)/glancingDivisor)
	crit := rng.Chance(src, e.Bonus(KeyCrit)/critDivisor)

	// Glancing hits only carry effects when they also crit.
	connects := !glancing || crit

	if connects {
		for _, eff := range h.BeforeEffects {
			defender.AddEffect(src, eff.Clone())
		}
	}

	dmg := h.Damage.Resolve(src)

	// A negative mainstat rounds towards zero too.
	mainstat := e.MainStat(h.DamageType)
	if mainstat >= 0 {
		dmg += math.Floor(mainstat / 10)
	} else {
		dmg += math.Ceil(mainstat / 10)
	}

	var mod float64
	switch {
	case opts.Mana && glancing && (!crit || opts.ZeroCritGlancingMana):
		mod = 0
	case crit && !glancing:
		mod = e.Bonus(KeyCritModifierBonus) + BaseCritModifier
		mod *= 1 + e.Bonus(StatINT)/1000
	default:
		mod = 1
		if glancing && !crit {
			mod = glancingModifier
		}
		mod *= 1 + e.Bonus(StatSTR)/1000
	}
	mod *= 1 + e.Bonus(StatDEX)/4000

	dmg *= mod
	dmg *= 1 + e.Bonus(KeyBoost)/100
	dmg *= (100 - defender.Resist(h.Element)) / 100

	amount := int(math.Round(dmg))
	if opts.Mana {
		defender.MP -= amount
	} else {
		defender.TakeDamage(amount)
	}

	if connects {
		for _, eff := range h.AfterEffects {
			defender.AddEffect(src, eff.Clone())
		}
	}
}

// GenerateHits splits totalMultiplier of the base damage evenly across n hits.
func (e *Entity) GenerateHits(n int, totalMultiplier float64, bonuses Dict, before, after []Effect) []Hit {
	per := e.Damage.Mul(totalMultiplier / float64(n))
	hits := make([]Hit, n)
	for i := range hits {
		hits[i] = Hit{
			Element:       e.Element,
			DamageType:    e.DamageType,
			Damage:        per,
			Bonuses:       bonuses,
			BeforeEffects: before,
			AfterEffects:  after,
		}
	}
	return hits
}

// GenerateDoT builds a DoT of the entity's element. When statScaled is set,
// a mainstat-derived flat amount is added to dmg.
func (e *Entity) GenerateDoT(dmg DamageRange, statScaled bool) DoT {
	if statScaled {
		mainstat := max(e.MainStat(e.DamageType), 0)
		dmg = dmg.AddScalar(math.Ceil(3.125*math.Sqrt(mainstat/2.5) - 5))
	}
	return DoT{Damage: dmg, Element: e.Element}
}

// Equip puts item into its slot, replacing whatever was there.
func (e *Entity) Equip(item Item) {
	e.Unequip(item.Slot)

	if item.Bonuses != nil {
		e.RecalculateStatBonuses(item.Bonuses)
		e.GearBonuses.Merge(item.Bonuses)
	}
	if item.Resists != nil {
		e.GearResists.Merge(item.Resists)
	}
	if item.armsWearer() {
		e.bareDamage, e.bareDamageType = e.Damage, e.DamageType
		e.Damage, e.DamageType = *item.Damage, item.DamageType
	}
	if e.Items == nil {
		e.Items = map[Slot]Item{}
	}
	e.Items[item.Slot] = item
}

// Unequip removes the item in slot, if any.
func (e *Entity) Unequip(slot Slot) {
	item, ok := e.Items[slot]
	if !ok {
		return
	}
	delete(e.Items, slot)

	if item.Bonuses != nil {
		e.RecalculateStatBonuses(item.Bonuses.Neg())
		e.GearBonuses.Unmerge(item.Bonuses)
	}
	if item.Resists != nil {
		e.GearResists.Unmerge(item.Resists)
	}
	if item.armsWearer() {
		e.Damage, e.DamageType = e.bareDamage, e.bareDamageType
	}
}
