package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/rotasim/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSimulation_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadSimulation(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultSimulation(), cfg)
	assert.Equal(t, 4, cfg.AI.Depth)
	assert.Equal(t, 90, cfg.Player.Level)
	assert.Len(t, cfg.Player.Stats, len(model.Stats))
	require.NoError(t, cfg.Validate())
}

func TestLoadSimulation_OverridesDefaults(t *testing.T) {
	path := writeFile(t, "rotasim.yaml", `
log_level: debug
seed: 42
ai:
  depth: 2
  workers: 3
combat:
  zero_crit_glancing_mana: true
player:
  level: 50
  target: 1
  stats: {STR: 100}
items:
  - name: Cutlass
    slot: Weapon
    damage: {min: 10, max: 30}
    bonuses: {crit: 5}
`)

	cfg, err := LoadSimulation(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, AIConfig{Depth: 2, Workers: 3, MaxTurns: 500}, cfg.AI)
	assert.True(t, cfg.Combat.ZeroCritGlancingMana)
	assert.Equal(t, 50, cfg.Player.Level)
	assert.Equal(t, 1, cfg.Player.Target)
	assert.Equal(t, 100.0, cfg.Player.Stats[model.StatSTR])
	assert.Equal(t, "config/archetypes/pirate.yaml", cfg.Player.Archetype, "unset keys keep defaults")
	require.Len(t, cfg.Items, 1)
	assert.Equal(t, &model.DamageRange{Min: 10, Max: 30}, cfg.Items[0].Damage)
}

func TestLoadSimulation_ParseError(t *testing.T) {
	path := writeFile(t, "broken.yaml", "ai: [depth")

	_, err := LoadSimulation(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestSimulation_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Simulation)
		errMsg string
	}{
		{"zero depth", func(s *Simulation) { s.AI.Depth = 0 }, "ai.depth"},
		{"negative workers", func(s *Simulation) { s.AI.Workers = -1 }, "ai.workers"},
		{"negative max turns", func(s *Simulation) { s.AI.MaxTurns = -1 }, "ai.max_turns"},
		{"zero level", func(s *Simulation) { s.Player.Level = 0 }, "player.level"},
		{"negative target", func(s *Simulation) { s.Player.Target = -1 }, "player.target"},
		{"unknown stat", func(s *Simulation) { s.Player.Stats["STRENGTH"] = 1 }, `unknown stat "STRENGTH"`},
		{"bad item slot", func(s *Simulation) { s.Items = []ItemConfig{{Name: "Hat", Slot: "Hat"}} }, "items[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSimulation()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSimulation_ValidateJoinsErrors(t *testing.T) {
	cfg := DefaultSimulation()
	cfg.AI.Depth = 0
	cfg.Player.Level = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ai.depth")
	assert.Contains(t, err.Error(), "player.level")
}

func TestItemConfig_Item(t *testing.T) {
	t.Run("weapon", func(t *testing.T) {
		dmg := model.DamageRange{Min: 40, Max: 60}
		item, err := ItemConfig{Name: "Blunderbuss", Slot: "Weapon", Level: 80, Damage: &dmg, DamageType: "pierce"}.Item()
		require.NoError(t, err)

		assert.Equal(t, model.SlotWeapon, item.Slot)
		assert.Equal(t, model.DamagePierce, item.DamageType)
		assert.Equal(t, &dmg, item.Damage)
	})

	t.Run("bonuses are copied", func(t *testing.T) {
		cfg := ItemConfig{Name: "Ring", Slot: "Ring", Bonuses: model.Dict{"crit": 3}}
		item, err := cfg.Item()
		require.NoError(t, err)

		item.Bonuses["crit"] = 99
		assert.Equal(t, 3.0, cfg.Bonuses["crit"])
	})

	errTests := []struct {
		name string
		cfg  ItemConfig
	}{
		{"unknown slot", ItemConfig{Name: "Boots", Slot: "Boots"}},
		{"unknown damage type", ItemConfig{Name: "Wand", Slot: "Weapon", DamageType: "holy"}},
		{"damage on armor", ItemConfig{Name: "Helm", Slot: "Helm", Damage: &model.DamageRange{Min: 1, Max: 2}}},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Item()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.cfg.Name)
		})
	}
}

func TestLoadArchetype(t *testing.T) {
	path := writeFile(t, "arch.yaml", `
name: Tester
element: fire
damage: {min: 10, max: 20}
stack_bonus: 0.1
on_entry:
  - {name: Opening, duration: 1}
skills:
  - name: Attack
    mana_gain: 15
    opening: {effect: Opening, hits: 2}
    hits: {count: 1, multiplier: 1.25}
  - name: Lunge
    opening:
      effect: Opening
      hits: 1
      inherit: false
      after: [{name: Exposed, duration: 2}]
    hits: {count: 1}
  - name: Avast
    mana: 20
    cooldown: 5
    hits:
      count: 1
      multiplier: 1
      after:
        - name: Dire Straits
          duration: 4
          dot: {stat_scaled: true, divisor: 2}
`)

	a, err := LoadArchetype(path)
	require.NoError(t, err)

	assert.Equal(t, "Tester", a.Name)
	assert.Equal(t, model.DamageRange{Min: 10, Max: 20}, a.Damage)
	assert.Equal(t, 0.1, a.StackBonus)
	require.Len(t, a.OnEntry, 1)
	require.Len(t, a.Skills, 3)

	attack := a.Skills[0]
	assert.Equal(t, 15, attack.ManaGain)
	require.NotNil(t, attack.Opening)
	assert.Equal(t, 2, attack.Opening.Hits)
	require.NotNil(t, attack.Hits)
	assert.Equal(t, 1.25, attack.Hits.Multiplier)

	assert.True(t, attack.Opening.InheritsHits(), "inherit defaults to true")

	lunge := a.Skills[1]
	require.NotNil(t, lunge.Opening)
	assert.False(t, lunge.Opening.InheritsHits())
	require.Len(t, lunge.Opening.After, 1)
	assert.Equal(t, "Exposed", lunge.Opening.After[0].Name)

	avast := a.Skills[2]
	require.Len(t, avast.Hits.After, 1)
	require.NotNil(t, avast.Hits.After[0].DoT)
	assert.True(t, avast.Hits.After[0].DoT.StatScaled)
	assert.Equal(t, 2.0, avast.Hits.After[0].DoT.Divisor)
}

func TestLoadArchetype_Errors(t *testing.T) {
	_, err := LoadArchetype(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err, "data files are required")

	_, err = LoadArchetype(writeFile(t, "empty.yaml", "name: Empty\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no skills")
}

func TestLoadRoster(t *testing.T) {
	path := writeFile(t, "roster.yaml", `
opponents:
  - name: Dummy
    max_hp: 5000
    max_mp: 50
  - name: Brute
    kind: striker
    level: 40
    max_hp: 900
    damage: {min: 5, max: 15}
    resists: {fire: 20}
`)

	r, err := LoadRoster(path)
	require.NoError(t, err)
	require.Len(t, r.Opponents, 2)

	assert.Equal(t, "Dummy", r.Opponents[0].Name)
	assert.Equal(t, 5000, r.Opponents[0].MaxHP)
	assert.Equal(t, "striker", r.Opponents[1].Kind)
	assert.Equal(t, 20.0, r.Opponents[1].Resists["fire"])
}

func TestLoadRoster_Errors(t *testing.T) {
	_, err := LoadRoster(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	_, err = LoadRoster(writeFile(t, "empty.yaml", "opponents: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no opponents")
}

func TestShippedDataFiles(t *testing.T) {
	cfg, err := LoadSimulation("../../config/rotasim.yaml")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	a, err := LoadArchetype(filepath.Join("../..", cfg.Player.Archetype))
	require.NoError(t, err)
	assert.Equal(t, "Pirate", a.Name)
	assert.Len(t, a.Skills, 15)
	for _, sc := range a.Skills {
		if sc.Name == "Trick" {
			require.NotNil(t, sc.Opening)
			assert.False(t, sc.Opening.InheritsHits(), "Trick's opening hits do not stun")
		}
	}

	r, err := LoadRoster(filepath.Join("../..", cfg.Roster))
	require.NoError(t, err)
	assert.Equal(t, 5000, r.Opponents[0].MaxHP)
}
