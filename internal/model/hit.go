package model

// Hit is one strike within a skill execution.
type Hit struct {
	Element    string
	DamageType DamageType
	Damage     DamageRange

	// Bonuses are merged into the attacker for the duration of this hit only.
	Bonuses Dict

	// BeforeEffects land on the defender before damage is calculated,
	// AfterEffects after it. Both are gated on the hit connecting.
	BeforeEffects []Effect
	AfterEffects  []Effect
}

// AttackOptions controls how a batch of hits is resolved.
type AttackOptions struct {
	// Mana directs damage to the defender's MP instead of HP.
	Mana bool

	// ZeroCritGlancingMana makes critical glancing mana hits deal no damage,
	// like non-critical glancing mana hits always do.
	ZeroCritGlancingMana bool
}

// Scale returns copies of hits with their damage multiplied by m.
func Scale(hits []Hit, m float64) []Hit {
	out := make([]Hit, len(hits))
	for i, h := range hits {
		h.Damage = h.Damage.Mul(m)
		out[i] = h
	}
	return out
}
