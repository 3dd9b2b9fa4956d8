package combat

import (
	"testing"

	"github.com/udisondev/rotasim/internal/config"
	"github.com/udisondev/rotasim/internal/game/skill"
	"github.com/udisondev/rotasim/internal/model"
	"github.com/udisondev/rotasim/internal/rng"
)

// NewTestArchetype возвращает архетип с тремя навыками:
// Slash (0 маны, без перезарядки), Stun (оглушение цели) и Nuke (дорогой навык).
func NewTestArchetype(t testing.TB) *skill.Archetype {
	t.Helper()

	arch, err := skill.New(config.Archetype{
		Name:   "Tester",
		Damage: model.Static(20),
		OnEntry: []config.EffectConfig{
			{Name: "Marked", Duration: 2},
		},
		Skills: []config.SkillConfig{
			{Name: "Slash", Hits: &config.HitsConfig{Count: 1, Multiplier: 1}},
			{
				Name: "Stun", Mana: 10, Cooldown: 2,
				Hits: &config.HitsConfig{
					Count: 1, Multiplier: 0.5,
					After: []config.EffectConfig{{Name: "Dazed", Duration: 2, Stun: "automatic"}},
				},
			},
			{Name: "Nuke", Mana: 1000, Cooldown: 0, Hits: &config.HitsConfig{Count: 1, Multiplier: 100}},
		},
	})
	if err != nil {
		t.Fatalf("compiling test archetype: %v", err)
	}
	return arch
}

// NewTestOpponent создаёт противника без брони и сопротивлений.
func NewTestOpponent(name string, kind OpponentKind, hp int, dmg float64) Opponent {
	return Opponent{
		Entity: model.NewEntity(name, model.RoleOpponent, 1, hp, 50, model.Static(dmg), model.DamageMelee, model.ElementNull),
		Kind:   kind,
	}
}

// NewTestState собирает состояние боя с детерминированным источником случайности.
func NewTestState(t testing.TB, src rng.Source, opponents ...Opponent) *State {
	t.Helper()

	s, err := New(NewPlayer(NewTestArchetype(t), 1, nil), opponents, src)
	if err != nil {
		t.Fatalf("starting test combat: %v", err)
	}
	return s
}
