package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDict_GetDefaults(t *testing.T) {
	d := Dict{}

	assert.Equal(t, 0.0, d.Get("STR"))
	assert.Equal(t, BaseCritModifier, d.Get(KeyCritModifier))

	d.Set(KeyCritModifier, 2)
	assert.Equal(t, 2.0, d.Get(KeyCritModifier))
}

func TestDict_AddZeroIsNoop(t *testing.T) {
	d := Dict{}
	d.Add(KeyCritModifier, 0)
	d.Add("STR", 0)

	assert.Empty(t, d)
	assert.Equal(t, BaseCritModifier, d.Get(KeyCritModifier))
}

func TestDict_AddStartsFromDefault(t *testing.T) {
	d := Dict{}
	d.Add(KeyCritModifier, 0.25)
	d.Add("STR", 3)
	d.Add("STR", 4)

	assert.Equal(t, 2.0, d.Get(KeyCritModifier))
	assert.Equal(t, 7.0, d.Get("STR"))
}

func TestDict_CombineDoesNotMutate(t *testing.T) {
	a := Dict{"STR": 10, "boost": 5}
	b := Dict{"STR": 2, "crit": 30}

	c := a.Combine(b)

	assert.Equal(t, Dict{"STR": 12, "boost": 5, "crit": 30}, c)
	assert.Equal(t, Dict{"STR": 10, "boost": 5}, a)
	assert.Equal(t, Dict{"STR": 2, "crit": 30}, b)
}

func TestDict_Neg(t *testing.T) {
	d := Dict{"STR": 10, "bonus": -3}
	assert.Equal(t, Dict{"STR": -10, "bonus": 3}, d.Neg())
}

func TestDict_NilCloneIsWritable(t *testing.T) {
	var d Dict
	c := d.Clone()
	c.Add("STR", 1)
	assert.Equal(t, 1.0, c.Get("STR"))
}

func TestDict_KeysSorted(t *testing.T) {
	d := Dict{"WIS": 1, "DEX": 1, "boost": 1, "STR": 1}
	assert.Equal(t, []string{"DEX", "STR", "WIS", "boost"}, d.Keys())
}

func TestDict_MainStat(t *testing.T) {
	d := Dict{StatSTR: 1, StatDEX: 2, StatINT: 3}

	assert.Equal(t, 1.0, d.MainStat(DamageMelee))
	assert.Equal(t, 2.0, d.MainStat(DamagePierce))
	assert.Equal(t, 3.0, d.MainStat(DamageMagic))
	assert.Equal(t, 0.0, d.MainStat(DamageConstant))
}

var dictKeys = []string{"STR", "DEX", "INT", "LUK", "END", "WIS", "bonus", "boost", "crit", "crit_modifier", "fire", "all"}

func drawDict(rt *rapid.T, label string) Dict {
	return rapid.MapOf(
		rapid.SampledFrom(dictKeys),
		rapid.Float64Range(-500, 500),
	).Draw(rt, label)
}

func TestDict_MergeUnmergeIdentity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := drawDict(rt, "base")
		operand := drawDict(rt, "operand")

		before := base.Clone()
		base.Merge(operand)
		base.Unmerge(operand)

		for _, key := range dictKeys {
			if !assert.InDelta(rt, before.Get(key), base.Get(key), 1e-9, "key %s", key) {
				return
			}
		}
	})
}
