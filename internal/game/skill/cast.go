package skill

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/rotasim/internal/config"
	"github.com/udisondev/rotasim/internal/model"
	"github.com/udisondev/rotasim/internal/rng"
)

// Cast is the combat context a skill runs in.
type Cast struct {
	Caster    *model.Entity
	Opponents []*model.Entity
	Target    int

	// Stacks is the caster's stack counter; skills may raise it.
	Stacks *int

	Rand    rng.Source
	Options model.AttackOptions
}

func (c *Cast) target() *model.Entity {
	return c.Opponents[c.Target]
}

type step func(a *Archetype, c *Cast)

// Execute runs skill i of the archetype. Cost and cooldown are the
// caller's concern.
func (a *Archetype) Execute(i int, c Cast) error {
	def, err := a.Def(i)
	if err != nil {
		return err
	}
	if c.Target < 0 || c.Target >= len(c.Opponents) {
		return fmt.Errorf("%w: index %d of %d", ErrInvalidTarget, c.Target, len(c.Opponents))
	}

	slog.Debug("skill cast", "skill", def.Name, "caster", c.Caster.Name, "target", c.target().Name)

	for _, s := range def.steps {
		s(a, &c)
	}
	return nil
}

func compile(sc config.SkillConfig) (Def, error) {
	target, err := parseTarget(sc.Target)
	if err != nil {
		return Def{}, err
	}
	if sc.Mana < 0 || sc.Cooldown < 0 {
		return Def{}, fmt.Errorf("mana and cooldown must not be negative")
	}

	def := Def{
		Name:     sc.Name,
		Mana:     sc.Mana,
		Cooldown: sc.Cooldown,
		Target:   target,
	}

	if sc.Cleanse != nil {
		def.steps = append(def.steps, cleanseStep(sc.Cleanse.Keep))
	}
	if sc.Heal != nil {
		s, err := healStep(*sc.Heal)
		if err != nil {
			return Def{}, err
		}
		def.steps = append(def.steps, s)
	}
	if sc.ManaGain != 0 {
		gain := sc.ManaGain
		def.steps = append(def.steps, func(_ *Archetype, c *Cast) {
			c.Caster.MP += gain
		})
	}
	if sc.Stacks != 0 {
		n := sc.Stacks
		def.steps = append(def.steps, func(_ *Archetype, c *Cast) {
			if c.Stacks != nil {
				*c.Stacks += n
			}
		})
	}
	if len(sc.SelfEffects) > 0 {
		specs, err := newEffectSpecs(sc.SelfEffects)
		if err != nil {
			return Def{}, fmt.Errorf("self_effects: %w", err)
		}
		def.steps = append(def.steps, func(_ *Archetype, c *Cast) {
			for _, eff := range buildEffects(specs, c.Caster) {
				c.Caster.AddEffect(c.Rand, eff)
			}
		})
	}

	var hits *hitsSpec
	if sc.Hits != nil {
		hits, err = newHitsSpec(*sc.Hits)
		if err != nil {
			return Def{}, fmt.Errorf("hits: %w", err)
		}
	}

	if sc.Opening != nil {
		s, err := openingStep(*sc.Opening, hits)
		if err != nil {
			return Def{}, err
		}
		def.steps = append(def.steps, s)
	}
	if hits != nil {
		def.steps = append(def.steps, hits.step(target))
	}

	return def, nil
}

func cleanseStep(keep []string) step {
	keep = slices.Clone(keep)
	return func(_ *Archetype, c *Cast) {
		for i, eff := range slices.Backward(c.Caster.Effects) {
			if !slices.Contains(keep, eff.Name) {
				c.Caster.RemoveEffect(i)
			}
		}
	}
}

func healStep(cfg config.HealConfig) (step, error) {
	if cfg.Fraction <= 0 {
		return nil, fmt.Errorf("heal: fraction must be positive")
	}
	elem := cfg.Element
	if elem == "" {
		elem = model.ResistHealth
	}
	hot := cfg.HoT
	if hot != nil && (hot.Name == "" || hot.Duration < 1) {
		return nil, fmt.Errorf("heal: hot needs a name and a positive duration")
	}

	return func(_ *Archetype, c *Cast) {
		amount := float64(c.Caster.MaxHP) * cfg.Fraction
		c.Caster.Heal(elem, amount, false)
		if hot != nil {
			c.Caster.AddEffect(c.Rand, model.Effect{
				Name:     hot.Name,
				Duration: hot.Duration,
				DoT:      &model.DoT{Damage: model.Static(amount).Neg(), Element: elem},
			})
		}
	}, nil
}

// openingStep makes extra hits on the target while it carries the marker.
// Unless the opening opts out, the hits reuse the skill's hit bonuses and
// effects but not its stacks.
func openingStep(cfg config.OpeningConfig, hits *hitsSpec) (step, error) {
	if cfg.Effect == "" {
		return nil, fmt.Errorf("opening: effect is required")
	}
	if cfg.Hits < 1 {
		return nil, fmt.Errorf("opening: hits must be at least 1")
	}
	mult := cfg.Multiplier
	if mult == 0 {
		mult = 1
	}

	own, err := openingHits(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.InheritsHits() {
		if own != nil {
			return nil, fmt.Errorf("opening: bonuses and effects need inherit: false")
		}
		own = hits
	}

	return func(_ *Archetype, c *Cast) {
		target := c.target()
		if !target.HasEffect(cfg.Effect) {
			return
		}
		var (
			bonuses       model.Dict
			before, after []model.Effect
		)
		if own != nil {
			bonuses = own.bonuses
			before = buildEffects(own.before, c.Caster)
			after = buildEffects(own.after, c.Caster)
		}
		slog.Debug("opening", "marker", cfg.Effect, "target", target.Name, "hits", cfg.Hits)
		c.Caster.Attack(c.Rand, target, c.Caster.GenerateHits(cfg.Hits, mult, bonuses, before, after), c.Options)
	}, nil
}

// openingHits compiles the opening's own bonuses and effects; nil when it lists none.
func openingHits(cfg config.OpeningConfig) (*hitsSpec, error) {
	if len(cfg.Bonuses) == 0 && len(cfg.Before) == 0 && len(cfg.After) == 0 {
		return nil, nil
	}
	before, err := newEffectSpecs(cfg.Before)
	if err != nil {
		return nil, fmt.Errorf("opening: before: %w", err)
	}
	after, err := newEffectSpecs(cfg.After)
	if err != nil {
		return nil, fmt.Errorf("opening: after: %w", err)
	}
	h := &hitsSpec{before: before, after: after}
	if len(cfg.Bonuses) > 0 {
		h.bonuses = cfg.Bonuses.Clone()
	}
	return h, nil
}

type hitsSpec struct {
	count      int
	multiplier float64
	bonuses    model.Dict
	before     []EffectSpec
	after      []EffectSpec
	mana       bool
}

func newHitsSpec(cfg config.HitsConfig) (*hitsSpec, error) {
	if cfg.Count < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", cfg.Count)
	}
	before, err := newEffectSpecs(cfg.Before)
	if err != nil {
		return nil, fmt.Errorf("before: %w", err)
	}
	after, err := newEffectSpecs(cfg.After)
	if err != nil {
		return nil, fmt.Errorf("after: %w", err)
	}

	h := &hitsSpec{
		count:      cfg.Count,
		multiplier: cfg.Multiplier,
		before:     before,
		after:      after,
		mana:       cfg.Mana,
	}
	if h.multiplier == 0 {
		h.multiplier = 1
	}
	if len(cfg.Bonuses) > 0 {
		h.bonuses = cfg.Bonuses.Clone()
	}
	return h, nil
}

func (h *hitsSpec) step(target Target) step {
	return func(a *Archetype, c *Cast) {
		hits := c.Caster.GenerateHits(h.count, h.multiplier, h.bonuses,
			buildEffects(h.before, c.Caster), buildEffects(h.after, c.Caster))
		if c.Stacks != nil && *c.Stacks != 0 && a.StackBonus != 0 {
			hits = model.Scale(hits, 1+float64(*c.Stacks)*a.StackBonus)
		}

		opts := c.Options
		opts.Mana = h.mana

		if target == TargetAll {
			for _, opp := range c.Opponents {
				c.Caster.Attack(c.Rand, opp, hits, opts)
			}
			return
		}
		c.Caster.Attack(c.Rand, c.target(), hits, opts)
	}
}
