package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/rotasim/internal/config"
	"github.com/udisondev/rotasim/internal/model"
	"github.com/udisondev/rotasim/internal/testutil"
)

func rangePtr(r model.DamageRange) *model.DamageRange { return &r }

func testArchetypeConfig() config.Archetype {
	return config.Archetype{
		Name:       "Tester",
		Element:    "darkness",
		Damage:     model.Static(20),
		StackBonus: 0.1,
		OnEntry: []config.EffectConfig{
			{Name: "Opening", Duration: 1},
		},
		Skills: []config.SkillConfig{
			{
				Name: "Strike", Cooldown: 0,
				ManaGain: 15,
				Opening:  &config.OpeningConfig{Effect: "Opening", Hits: 2},
				Hits:     &config.HitsConfig{Count: 1, Multiplier: 1.25},
			},
			{
				Name: "Volley", Mana: 20, Cooldown: 1, Target: "all",
				Hits: &config.HitsConfig{Count: 2, Multiplier: 1},
			},
			{
				Name: "Rest", Mana: 30, Cooldown: 8,
				Cleanse: &config.CleanseConfig{Keep: []string{"Stuffed"}},
				Heal: &config.HealConfig{
					Fraction: 0.05,
					HoT:      &config.HoTConfig{Name: "Lime-Aid", Duration: 2},
				},
			},
			{
				Name: "Hoard", Mana: 40, Cooldown: 15,
				Stacks:      1,
				SelfEffects: []config.EffectConfig{{Name: "Cursed", Duration: 6}},
				Hits:        &config.HitsConfig{Count: 1, Multiplier: 2},
			},
			{
				Name: "Avast", Mana: 20, Cooldown: 5,
				Hits: &config.HitsConfig{
					Count: 1, Multiplier: 1,
					After: []config.EffectConfig{{
						Name: "Dire Straits", Duration: 4,
						DoT: &config.DoTConfig{StatScaled: true, Divisor: 2},
					}},
				},
			},
			{
				Name: "Drain", Mana: 10, Cooldown: 2,
				Hits: &config.HitsConfig{Count: 1, Multiplier: 1, Mana: true, Bonuses: model.Dict{model.KeyBoost: 100}},
			},
		},
	}
}

type fixture struct {
	arch      *Archetype
	caster    model.Entity
	opponents []model.Entity
	stacks    int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	arch, err := New(testArchetypeConfig())
	require.NoError(t, err)

	f := &fixture{
		arch:   arch,
		caster: model.NewEntity("Player", model.RolePlayer, 1, 100, 100, arch.Damage, arch.DamageType, arch.Element),
		opponents: []model.Entity{
			model.NewEntity("A", model.RoleOpponent, 1, 1000, 100, model.Static(0), model.DamageMelee, model.ElementNull),
			model.NewEntity("B", model.RoleOpponent, 1, 1000, 100, model.Static(0), model.DamageMelee, model.ElementNull),
		},
	}
	return f
}

func (f *fixture) cast(t *testing.T, i int) {
	t.Helper()

	opps := make([]*model.Entity, len(f.opponents))
	for j := range f.opponents {
		opps[j] = &f.opponents[j]
	}
	err := f.arch.Execute(i, Cast{
		Caster:    &f.caster,
		Opponents: opps,
		Stacks:    &f.stacks,
		Rand:      testutil.Hit(),
	})
	require.NoError(t, err)
}

func TestNew(t *testing.T) {
	arch, err := New(testArchetypeConfig())
	require.NoError(t, err)

	assert.Equal(t, 6, arch.Len())
	skills := arch.Skills()
	require.Len(t, skills, 6)
	assert.Equal(t, model.NewSkill("Volley", 20, 1), skills[1])

	def, err := arch.Def(1)
	require.NoError(t, err)
	assert.Equal(t, TargetAll, def.Target)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Archetype)
	}{
		{name: "damage type", mutate: func(a *config.Archetype) { a.DamageType = "laser" }},
		{name: "duplicate skill", mutate: func(a *config.Archetype) { a.Skills[1].Name = "Strike" }},
		{name: "target", mutate: func(a *config.Archetype) { a.Skills[0].Target = "self" }},
		{name: "hit count", mutate: func(a *config.Archetype) { a.Skills[0].Hits.Count = 0 }},
		{name: "stun kind", mutate: func(a *config.Archetype) { a.OnEntry[0].Stun = "sleep" }},
		{name: "effect duration", mutate: func(a *config.Archetype) { a.OnEntry[0].Duration = 0 }},
		{name: "empty dot", mutate: func(a *config.Archetype) { a.Skills[4].Hits.After[0].DoT.StatScaled = false }},
		{name: "heal fraction", mutate: func(a *config.Archetype) { a.Skills[2].Heal.Fraction = 0 }},
		{name: "opening hits", mutate: func(a *config.Archetype) { a.Skills[0].Opening.Hits = 0 }},
		{name: "opening effects without inherit false", mutate: func(a *config.Archetype) {
			a.Skills[0].Opening.After = []config.EffectConfig{{Name: "Exposed", Duration: 2}}
		}},
		{name: "opening effect duration", mutate: func(a *config.Archetype) {
			a.Skills[0].Opening.Inherit = new(bool)
			a.Skills[0].Opening.After = []config.EffectConfig{{Name: "Exposed"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testArchetypeConfig()
			tt.mutate(&cfg)

			_, err := New(cfg)
			assert.Error(t, err)
		})
	}
}

func TestExecute_UnknownSkill(t *testing.T) {
	f := newFixture(t)

	for _, i := range []int{-1, 6} {
		err := f.arch.Execute(i, Cast{Caster: &f.caster, Opponents: []*model.Entity{&f.opponents[0]}, Rand: testutil.Hit()})
		assert.ErrorIs(t, err, ErrUnknownSkill)
	}
}

func TestExecute_InvalidTarget(t *testing.T) {
	f := newFixture(t)

	err := f.arch.Execute(0, Cast{Caster: &f.caster, Opponents: []*model.Entity{&f.opponents[0]}, Target: 1, Rand: testutil.Hit()})
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestExecute_Opening(t *testing.T) {
	f := newFixture(t)
	for _, eff := range f.arch.EntryEffects(&f.caster) {
		f.opponents[0].AddEffect(testutil.Hit(), eff)
	}
	require.True(t, f.opponents[0].HasEffect("Opening"))

	f.cast(t, 0)

	// Two opening hits of 10 and the 25 damage strike.
	assert.Equal(t, 1000-45, f.opponents[0].HP)
	assert.Equal(t, 115, f.caster.MP)

	f.opponents[0].TickEffects(testutil.Hit())
	f.cast(t, 0)
	assert.Equal(t, 1000-45-25, f.opponents[0].HP)
}

func TestExecute_OpeningInherit(t *testing.T) {
	inherit := func(v bool) *bool { return &v }

	tests := []struct {
		name        string
		opening     config.OpeningConfig
		wantHP      int
		wantExposed bool
	}{
		{
			name:    "reuses hit bonuses and effects",
			opening: config.OpeningConfig{Effect: "Opening", Hits: 2},
			wantHP:  1000 - 40 - 40,
		},
		{
			name: "own effects only",
			opening: config.OpeningConfig{
				Effect: "Opening", Hits: 2, Inherit: inherit(false),
				After: []config.EffectConfig{{Name: "Exposed", Duration: 2}},
			},
			wantHP:      1000 - 20 - 40,
			wantExposed: true,
		},
		{
			name:    "bare hits",
			opening: config.OpeningConfig{Effect: "Opening", Hits: 2, Inherit: inherit(false)},
			wantHP:  1000 - 20 - 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			cfg := testArchetypeConfig()
			cfg.Skills = []config.SkillConfig{{
				Name:    "Trick",
				Opening: &tt.opening,
				Hits: &config.HitsConfig{
					Count: 1, Multiplier: 1,
					Bonuses: model.Dict{model.KeyBoost: 100},
					After:   []config.EffectConfig{{Name: "Unsteady", Duration: 3}},
				},
			}}
			arch, err := New(cfg)
			require.NoError(t, err)
			f.arch = arch
			for _, eff := range arch.EntryEffects(&f.caster) {
				f.opponents[0].AddEffect(testutil.Hit(), eff)
			}

			f.cast(t, 0)

			assert.Equal(t, tt.wantHP, f.opponents[0].HP)
			assert.Equal(t, tt.wantExposed, f.opponents[0].HasEffect("Exposed"))
			assert.True(t, f.opponents[0].HasEffect("Unsteady"))
			assert.Equal(t, 0.0, f.caster.Bonus(model.KeyBoost))
		})
	}
}

func TestExecute_TargetAll(t *testing.T) {
	f := newFixture(t)

	f.cast(t, 1)

	assert.Equal(t, 980, f.opponents[0].HP)
	assert.Equal(t, 980, f.opponents[1].HP)
}

func TestExecute_CleanseAndHeal(t *testing.T) {
	f := newFixture(t)
	src := testutil.Hit()
	f.caster.HP = 50
	f.caster.AddEffect(src, model.Effect{Name: "Planked", Duration: 3, Bonuses: model.Dict{model.KeyBoost: -50}})
	f.caster.AddEffect(src, model.Effect{Name: "Stuffed", Duration: 3})

	f.cast(t, 2)

	assert.Equal(t, 55, f.caster.HP)
	assert.Equal(t, 0.0, f.caster.Bonus(model.KeyBoost))
	require.Len(t, f.caster.Effects, 2)
	assert.Equal(t, "Stuffed", f.caster.Effects[0].Name)

	hot := f.caster.Effects[1]
	assert.Equal(t, "Lime-Aid", hot.Name)
	require.NotNil(t, hot.DoT)
	assert.Equal(t, model.Static(-5), hot.DoT.Damage)

	f.caster.TickEffects(src)
	assert.Equal(t, 60, f.caster.HP)
}

func TestExecute_StacksScaleHits(t *testing.T) {
	f := newFixture(t)

	f.cast(t, 3)
	assert.Equal(t, 1, f.stacks)
	assert.True(t, f.caster.HasEffect("Cursed"))
	assert.Equal(t, 1000-44, f.opponents[0].HP, "40 damage scaled by 1.1")

	f.cast(t, 0)
	assert.Equal(t, 1000-44-28, f.opponents[0].HP, "25 scaled by 1.1 rounds to 28")
}

func TestExecute_StatScaledDoT(t *testing.T) {
	f := newFixture(t)
	f.caster.Bonuses.Set(model.StatSTR, 250)

	f.cast(t, 4)

	i := f.opponents[0].EffectIndex("Dire Straits")
	require.GreaterOrEqual(t, i, 0)
	dot := f.opponents[0].Effects[i].DoT
	require.NotNil(t, dot)
	assert.Equal(t, model.Static(23.5), dot.Damage, "(20 + 27) / 2")
	assert.Equal(t, "darkness", dot.Element)
}

func TestExecute_ManaHits(t *testing.T) {
	f := newFixture(t)

	f.cast(t, 5)

	assert.Equal(t, 1000, f.opponents[0].HP)
	assert.Equal(t, 60, f.opponents[0].MP)
	assert.Equal(t, 0.0, f.caster.Bonus(model.KeyBoost))
}

func TestEffectSpec_BuildIsolated(t *testing.T) {
	spec, err := newEffectSpec(config.EffectConfig{
		Name: "Burn", Duration: 2,
		Bonuses: model.Dict{model.KeyBoost: 5},
		DoT:     &config.DoTConfig{Damage: rangePtr(model.Static(4)), Element: "fire"},
	})
	require.NoError(t, err)

	caster := model.NewEntity("C", model.RolePlayer, 1, 1, 1, model.Static(1), model.DamageMelee, "ice")
	a := spec.Build(&caster)
	a.Bonuses.Set(model.KeyBoost, 99)
	a.DoT.Damage = model.Static(99)

	b := spec.Build(&caster)
	assert.Equal(t, 5.0, b.Bonuses.Get(model.KeyBoost))
	assert.Equal(t, model.Static(4), b.DoT.Damage)
	assert.Equal(t, "fire", b.DoT.Element)
}
