package combat

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/rotasim/internal/config"
	"github.com/udisondev/rotasim/internal/model"
	"github.com/udisondev/rotasim/internal/rng"
)

// OpponentKind selects an opponent's scripted behaviour.
type OpponentKind uint8

const (
	// KindDummy never acts.
	KindDummy OpponentKind = iota
	// KindStriker makes one basic hit on the player each turn unless stunned.
	KindStriker
)

func (k OpponentKind) String() string {
	switch k {
	case KindDummy:
		return "dummy"
	case KindStriker:
		return "striker"
	default:
		return fmt.Sprintf("OpponentKind(%d)", uint8(k))
	}
}

// ParseOpponentKind parses the lower-case name used in roster files.
func ParseOpponentKind(s string) (OpponentKind, error) {
	switch s {
	case "", "dummy":
		return KindDummy, nil
	case "striker":
		return KindStriker, nil
	default:
		return 0, fmt.Errorf("unknown opponent kind %q", s)
	}
}

// Opponent is a scripted enemy.
type Opponent struct {
	model.Entity
	Kind OpponentKind
}

// NewOpponent builds an opponent from its roster entry.
func NewOpponent(cfg config.OpponentConfig) (Opponent, error) {
	kind, err := ParseOpponentKind(cfg.Kind)
	if err != nil {
		return Opponent{}, fmt.Errorf("opponent %q: %w", cfg.Name, err)
	}
	dmgType, err := model.ParseDamageType(cfg.DamageType)
	if err != nil {
		return Opponent{}, fmt.Errorf("opponent %q: %w", cfg.Name, err)
	}
	if cfg.MaxHP <= 0 {
		return Opponent{}, fmt.Errorf("opponent %q: max_hp must be positive, got %d", cfg.Name, cfg.MaxHP)
	}

	elem := cfg.Element
	if elem == "" {
		elem = model.ElementNull
	}
	level := max(cfg.Level, 1)

	o := Opponent{
		Entity: model.NewEntity(cfg.Name, model.RoleOpponent, level, cfg.MaxHP, cfg.MaxMP, cfg.Damage, dmgType, elem),
		Kind:   kind,
	}
	if len(cfg.Bonuses) > 0 {
		o.RecalculateStatBonuses(cfg.Bonuses)
		o.Bonuses.Merge(cfg.Bonuses)
		o.HP, o.MP = o.MaxHP, o.MaxMP
	}
	o.Resists.Merge(cfg.Resists)

	return o, nil
}

// NewRoster builds the opponents of a roster in turn order.
func NewRoster(cfg config.Roster) ([]Opponent, error) {
	out := make([]Opponent, 0, len(cfg.Opponents))
	for i, oc := range cfg.Opponents {
		o, err := NewOpponent(oc)
		if err != nil {
			return nil, fmt.Errorf("roster entry %d: %w", i, err)
		}
		out = append(out, o)
	}
	return out, nil
}

// Clone returns a deep copy.
func (o *Opponent) Clone() Opponent {
	return Opponent{Entity: o.Entity.Clone(), Kind: o.Kind}
}

// act runs the opponent's turn against the player.
func (o *Opponent) act(src rng.Source, player *Player, opts model.AttackOptions) {
	if o.Dead() {
		return
	}

	switch o.Kind {
	case KindDummy:
	case KindStriker:
		if o.IsStunned() {
			slog.Debug("opponent stunned", "opponent", o.Name)
			return
		}
		opts.Mana = false
		o.Attack(src, &player.Entity, o.GenerateHits(1, 1, nil, nil, nil), opts)
	}
}
