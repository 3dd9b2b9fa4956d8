// Package report renders combat state as plain text for the terminal.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/udisondev/rotasim/internal/game/combat"
	"github.com/udisondev/rotasim/internal/model"
)

var titler = cases.Title(language.English, cases.NoLower)

// TitleCase turns an attribute key into a label: "melee_def" becomes "Melee Def".
// Upper-case keys such as "STR" keep their case.
func TitleCase(key string) string {
	return titler.String(strings.ReplaceAll(key, "_", " "))
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Dict writes d as a two-column table sorted by key.
func Dict(w io.Writer, d model.Dict, indent string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range d.Keys() {
		fmt.Fprintf(tw, "%s%s:\t%s\n", indent, TitleCase(k), formatValue(d[k]))
	}
	return tw.Flush()
}

// HP formats current and max HP; the percentage is rounded up.
func HP(e *model.Entity) string {
	return fmt.Sprintf("HP %d / %d (%d%%)", e.HP, e.MaxHP, int(math.Ceil(100*float64(e.HP)/float64(max(e.MaxHP, 1)))))
}

// MP formats current and max MP; the percentage is truncated.
func MP(e *model.Entity) string {
	return fmt.Sprintf("MP %d / %d (%d%%)", e.MP, e.MaxMP, 100*e.MP/max(e.MaxMP, 1))
}

// Effect writes one effect with its details.
func Effect(w io.Writer, eff *model.Effect, indent string) error {
	fmt.Fprintf(w, "%s%s (%d turns left)\n", indent, eff.Name, eff.Duration)
	inner := indent + "  "

	if len(eff.Bonuses) > 0 {
		fmt.Fprintf(w, "%sBonuses:\n", inner)
		if err := Dict(w, eff.Bonuses, inner+"  "); err != nil {
			return err
		}
	}
	if len(eff.Resists) > 0 {
		fmt.Fprintf(w, "%sResists:\n", inner)
		if err := Dict(w, eff.Resists, inner+"  "); err != nil {
			return err
		}
	}
	if dot := eff.DoT; dot != nil {
		r, kind := dot.Damage, "DoT"
		if r.IsHealing() {
			r, kind = r.Neg(), "HoT"
		}
		fmt.Fprintf(w, "%s%d-%d %s %s\n", inner, int(math.Round(r.Min)), int(math.Round(r.Max)), dot.Element, kind)
	}
	if eff.Stun != model.StunNone {
		fmt.Fprintf(w, "%sStun\n", inner)
	}
	if eff.DeathProof {
		fmt.Fprintf(w, "%sDeathproof\n", inner)
	}
	if eff.Description != "" {
		fmt.Fprintf(w, "%s%s\n", inner, eff.Description)
	}
	return nil
}

// Entity writes an entity's pools, totals and effects.
func Entity(w io.Writer, e *model.Entity) error {
	fmt.Fprintf(w, "%s (level %d)\n", e.Name, e.Level)
	fmt.Fprintf(w, "  %s\n  %s\n", HP(e), MP(e))

	if bonuses := e.Bonuses.Combine(e.GearBonuses); len(bonuses) > 0 {
		fmt.Fprintln(w, "  Bonuses:")
		if err := Dict(w, bonuses, "    "); err != nil {
			return err
		}
	}
	if resists := e.Resists.Combine(e.GearResists); len(resists) > 0 {
		fmt.Fprintln(w, "  Resists:")
		if err := Dict(w, resists, "    "); err != nil {
			return err
		}
	}
	if len(e.Effects) > 0 {
		fmt.Fprintln(w, "  Effects:")
		for i := range e.Effects {
			if err := Effect(w, &e.Effects[i], "    "); err != nil {
				return err
			}
		}
	}
	return nil
}

// Skills writes the player's skill list with costs and readiness.
func Skills(w io.Writer, p *combat.Player) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSkill\tMana\tCooldown\t")
	for i := range p.Skills {
		s := &p.Skills[i]
		state := "ready"
		switch {
		case !s.Ready():
			state = fmt.Sprintf("%d turns", s.CurrentCooldown)
		case p.MP < s.Mana:
			state = "no mana"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n", i, s.Name, s.Mana, s.Cooldown, state)
	}
	return tw.Flush()
}

// State writes the turn header, the player and every opponent.
func State(w io.Writer, s *combat.State) error {
	fmt.Fprintf(w, "Turn %d\n\n", s.Turn)
	if err := Entity(w, &s.Player.Entity); err != nil {
		return err
	}
	for i := range s.Opponents {
		fmt.Fprintln(w)
		marker := ""
		if i == s.Player.Target {
			marker = "[target] "
		}
		fmt.Fprint(w, marker)
		if err := Entity(w, &s.Opponents[i].Entity); err != nil {
			return err
		}
	}
	return nil
}

// Outcome describes a finished rotation for the ai mode.
func Outcome(status combat.Status) string {
	switch status {
	case combat.StatusWon:
		return "Game Won"
	case combat.StatusLost:
		return "Game Lost (try changing the stats or increasing the AI depth)"
	default:
		return ""
	}
}

// Rotation joins played skills the way the ai mode prints them.
func Rotation(skills []string) string {
	var b strings.Builder
	for _, s := range skills {
		b.WriteString(s)
		b.WriteString(" ➡ ")
	}
	return b.String()
}
