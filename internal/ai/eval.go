package ai

import (
	"fmt"
	"math"

	"github.com/udisondev/rotasim/internal/game/combat"
)

// NoSkill is the SkillEval index meaning "no skill".
const NoSkill = -1

type evalKind uint8

// Kinds are declared in ascending order.
const (
	kindLost evalKind = iota
	kindInProgress
	kindWon
)

// EvalValue is the value of a combat state from the player's point of view.
// Won > any InProgress > Lost; InProgress values compare by score.
type EvalValue struct {
	kind  evalKind
	score float64
}

var (
	Won  = EvalValue{kind: kindWon}
	Lost = EvalValue{kind: kindLost}
)

// InProgress returns the value of an unfinished combat. Higher is better.
func InProgress(score float64) EvalValue {
	return EvalValue{kind: kindInProgress, score: score}
}

func (v EvalValue) IsWon() bool  { return v.kind == kindWon }
func (v EvalValue) IsLost() bool { return v.kind == kindLost }

// Score returns the InProgress score, or false for terminal values.
func (v EvalValue) Score() (float64, bool) {
	return v.score, v.kind == kindInProgress
}

// Compare returns -1, 0 or +1. It is a total order: scores use IEEE 754
// totalOrder, so NaN and signed zeros compare consistently.
func (v EvalValue) Compare(o EvalValue) int {
	switch {
	case v.kind < o.kind:
		return -1
	case v.kind > o.kind:
		return 1
	case v.kind != kindInProgress:
		return 0
	}

	a, b := totalOrderKey(v.score), totalOrderKey(o.score)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// totalOrderKey maps a float to an integer with the same IEEE totalOrder.
// Negative values have their magnitude bits flipped.
func totalOrderKey(f float64) int64 {
	b := int64(math.Float64bits(f))
	return b ^ int64(uint64(b>>63)>>1)
}

func (v EvalValue) String() string {
	switch v.kind {
	case kindWon:
		return "Won"
	case kindLost:
		return "Lost"
	default:
		return fmt.Sprintf("InProgress(%.2f)", v.score)
	}
}

// SkillEval pairs a root skill index with its evaluation.
type SkillEval struct {
	Index int
	Eval  EvalValue
}

// Compare orders by Eval only.
func (e SkillEval) Compare(o SkillEval) int {
	return e.Eval.Compare(o.Eval)
}

// Evaluate scores s without looking ahead.
func Evaluate(s *combat.State) EvalValue {
	if s.Player.HP <= 0 {
		return Lost
	}

	var hp, maxHP float64
	for i := range s.Opponents {
		hp += float64(s.Opponents[i].HP)
		maxHP += float64(s.Opponents[i].MaxHP)
	}
	if hp <= 0 {
		return Won
	}

	return InProgress(-100 * hp / maxHP)
}
