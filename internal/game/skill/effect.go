package skill

import (
	"fmt"

	"github.com/udisondev/rotasim/internal/config"
	"github.com/udisondev/rotasim/internal/model"
)

// EffectSpec is an effect template. DoT payloads that scale with the caster
// are only resolved when the effect is built for a cast.
type EffectSpec struct {
	base model.Effect
	dot  *dotSpec
}

type dotSpec struct {
	damage     *model.DamageRange
	element    string
	statScaled bool
	divisor    float64
}

func newEffectSpec(cfg config.EffectConfig) (EffectSpec, error) {
	if cfg.Name == "" {
		return EffectSpec{}, fmt.Errorf("effect without name")
	}
	if cfg.Duration < 1 {
		return EffectSpec{}, fmt.Errorf("effect %q: duration must be at least 1, got %d", cfg.Name, cfg.Duration)
	}
	stun, err := model.ParseStunKind(cfg.Stun)
	if err != nil {
		return EffectSpec{}, fmt.Errorf("effect %q: %w", cfg.Name, err)
	}

	spec := EffectSpec{
		base: model.Effect{
			Name:        cfg.Name,
			Description: cfg.Description,
			Duration:    cfg.Duration,
			Stun:        stun,
			DeathProof:  cfg.DeathProof,
		},
	}
	if len(cfg.Bonuses) > 0 {
		spec.base.Bonuses = cfg.Bonuses.Clone()
	}
	if len(cfg.Resists) > 0 {
		spec.base.Resists = cfg.Resists.Clone()
	}

	if d := cfg.DoT; d != nil {
		if d.Damage == nil && !d.StatScaled {
			return EffectSpec{}, fmt.Errorf("effect %q: dot needs damage or stat_scaled", cfg.Name)
		}
		if d.Divisor < 0 {
			return EffectSpec{}, fmt.Errorf("effect %q: negative dot divisor", cfg.Name)
		}
		spec.dot = &dotSpec{
			damage:     d.Damage,
			element:    d.Element,
			statScaled: d.StatScaled,
			divisor:    d.Divisor,
		}
		if spec.dot.divisor == 0 {
			spec.dot.divisor = 1
		}
	}

	return spec, nil
}

func newEffectSpecs(cfgs []config.EffectConfig) ([]EffectSpec, error) {
	if len(cfgs) == 0 {
		return nil, nil
	}
	specs := make([]EffectSpec, 0, len(cfgs))
	for _, c := range cfgs {
		s, err := newEffectSpec(c)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, nil
}

// Name returns the name of the built effect.
func (s *EffectSpec) Name() string {
	return s.base.Name
}

// Build returns a fresh effect for caster.
// A stat-scaled DoT without its own range starts from the caster's base damage.
func (s *EffectSpec) Build(caster *model.Entity) model.Effect {
	eff := s.base.Clone()
	if s.dot == nil {
		return eff
	}

	dmg := caster.Damage
	if s.dot.damage != nil {
		dmg = *s.dot.damage
	}
	dot := caster.GenerateDoT(dmg, s.dot.statScaled)
	dot.Damage = dot.Damage.Div(s.dot.divisor)
	if s.dot.element != "" {
		dot.Element = s.dot.element
	}
	eff.DoT = &dot
	return eff
}

func buildEffects(specs []EffectSpec, caster *model.Entity) []model.Effect {
	if len(specs) == 0 {
		return nil
	}
	out := make([]model.Effect, len(specs))
	for i := range specs {
		out[i] = specs[i].Build(caster)
	}
	return out
}
