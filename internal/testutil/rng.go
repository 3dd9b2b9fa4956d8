package testutil

import "github.com/udisondev/rotasim/internal/rng"

// Sequence реализует rng.Source, возвращая заранее заданные значения по кругу.
// Позволяет тестам точно управлять исходом бросков (miss/glancing/crit/stun).
type Sequence struct {
	values []float64
	pos    int
}

// NewSequence creates a Sequence that cycles through values.
// An empty Sequence always returns 0.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 implements rng.Source.
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

// Clone implements rng.Source.
func (s *Sequence) Clone() rng.Source {
	return &Sequence{values: s.values, pos: s.pos}
}

// Fork implements rng.Source. Scripted rolls ignore the key: the fork
// continues from the current position, so tests keep control of every roll.
func (s *Sequence) Fork(uint64) rng.Source {
	return s.Clone()
}

// Draws returns how many values have been consumed.
func (s *Sequence) Draws() int {
	return s.pos
}

// Hit is a Sequence that never misses, glances or crits and always lands stuns:
// every roll returns a value just below 1.
func Hit() *Sequence {
	return NewSequence(0.999999)
}
