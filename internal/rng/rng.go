// Package rng provides the random source injected into combat resolution.
//
// Every roll in the simulator (miss, glancing, crit, stun and damage draws)
// goes through a Source. Clone replays a stream (undo snapshots); Fork
// derives a fresh one, so each search branch and the committed turn roll
// their own dice while a seeded run stays reproducible.
package rng

import (
	"math/rand/v2"
	"time"
)

// Source is a random stream owned by exactly one combat state.
// Float64 is not safe for concurrent use. Clone and Fork only read the
// source, so concurrent branches may derive their streams from a shared one.
type Source interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64

	// Clone returns a copy positioned at the same point of the stream.
	Clone() Source

	// Fork returns a new stream derived from the current position and key.
	// The same position and key always give the same stream; different keys
	// give unrelated ones. The receiver does not advance.
	Fork(key uint64) Source
}

// PCG is a seedable Source backed by math/rand/v2 PCG.
// Copying the generator value duplicates its state, which is what makes
// cloning cheap.
type PCG struct {
	gen *rand.PCG
	r   *rand.Rand

	seed  uint64
	draws uint64
}

// NewPCG creates a PCG source. A zero seed is replaced by the current time.
func NewPCG(seed uint64) *PCG {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return newPCG(seed)
}

func newPCG(seed uint64) *PCG {
	gen := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &PCG{gen: gen, r: rand.New(gen), seed: seed}
}

// Float64 implements Source.
func (p *PCG) Float64() float64 {
	p.draws++
	return p.r.Float64()
}

// Clone implements Source.
func (p *PCG) Clone() Source {
	gen := *p.gen
	return &PCG{gen: &gen, r: rand.New(&gen), seed: p.seed, draws: p.draws}
}

// Fork implements Source. The child seed mixes the parent seed, the number
// of values drawn so far and key.
func (p *PCG) Fork(key uint64) Source {
	return newPCG(splitmix64(splitmix64(splitmix64(p.seed)^p.draws) ^ key))
}

// splitmix64 is the SplitMix64 finalizer.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Chance rolls a probability. Values <= 0 never succeed, values >= 1 always do.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Uniform draws a value between a and b. The bounds may be given in either
// order; a degenerate interval always returns its single value.
func Uniform(src Source, a, b float64) float64 {
	if a == b {
		return a
	}
	return a + (b-a)*src.Float64()
}
