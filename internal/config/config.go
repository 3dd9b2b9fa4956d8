package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/rotasim/internal/model"
)

// Simulation holds all configuration for a rotasim run.
type Simulation struct {
	LogLevel string `yaml:"log_level"`

	// Seed for the combat random source. 0 seeds from the clock.
	Seed uint64 `yaml:"seed"`

	AI     AIConfig     `yaml:"ai"`
	Combat CombatConfig `yaml:"combat"`
	Player PlayerConfig `yaml:"player"`

	// Roster is the path of the opponent roster file.
	Roster string `yaml:"roster"`

	// Items are equipped on the player before combat starts.
	Items []ItemConfig `yaml:"items"`
}

// AIConfig controls the rotation search.
type AIConfig struct {
	Depth int `yaml:"depth"`

	// Workers bounds the number of root branches searched in parallel.
	// 0 means one goroutine per root candidate.
	Workers int `yaml:"workers"`

	// MaxTurns ends an automatic rotation as lost. 0 disables the limit.
	MaxTurns int `yaml:"max_turns"`
}

// CombatConfig holds attack resolution switches.
type CombatConfig struct {
	ZeroCritGlancingMana bool `yaml:"zero_crit_glancing_mana"`
}

// PlayerConfig describes the player character.
type PlayerConfig struct {
	// Archetype is the path of the archetype skill script.
	Archetype string             `yaml:"archetype"`
	Level     int                `yaml:"level"`
	Stats     map[string]float64 `yaml:"stats"`

	// Target is the roster index of the targeted opponent.
	Target int `yaml:"target"`
}

// DefaultSimulation returns Simulation config with sensible defaults.
func DefaultSimulation() Simulation {
	return Simulation{
		LogLevel: "info",
		AI: AIConfig{
			Depth:    4,
			MaxTurns: 500,
		},
		Player: PlayerConfig{
			Archetype: "config/archetypes/pirate.yaml",
			Level:     90,
			Stats: map[string]float64{
				model.StatSTR: 0,
				model.StatDEX: 0,
				model.StatINT: 0,
				model.StatCHA: 0,
				model.StatLUK: 0,
				model.StatEND: 0,
				model.StatWIS: 0,
			},
		},
		Roster: "config/rosters/dummy.yaml",
	}
}

// LoadSimulation loads simulation config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values the loaders cannot reject on their own.
func (s Simulation) Validate() error {
	var errs []error

	if s.AI.Depth < 1 {
		errs = append(errs, fmt.Errorf("ai.depth must be at least 1, got %d", s.AI.Depth))
	}
	if s.AI.Workers < 0 {
		errs = append(errs, fmt.Errorf("ai.workers must not be negative, got %d", s.AI.Workers))
	}
	if s.AI.MaxTurns < 0 {
		errs = append(errs, fmt.Errorf("ai.max_turns must not be negative, got %d", s.AI.MaxTurns))
	}
	if s.Player.Level < 1 {
		errs = append(errs, fmt.Errorf("player.level must be at least 1, got %d", s.Player.Level))
	}
	if s.Player.Target < 0 {
		errs = append(errs, fmt.Errorf("player.target must not be negative, got %d", s.Player.Target))
	}
	for name := range s.Player.Stats {
		if !slices.Contains(model.Stats, name) {
			errs = append(errs, fmt.Errorf("player.stats: unknown stat %q", name))
		}
	}
	for i, item := range s.Items {
		if _, err := item.Item(); err != nil {
			errs = append(errs, fmt.Errorf("items[%d]: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

// loadYAML reads a required data file into out.
func loadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
