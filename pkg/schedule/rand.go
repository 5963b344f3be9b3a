// Package schedule implements the synthetic commit-event scheduler.
//
// The pipeline runs one day at a time, in strict calendar order:
//
//	calendar driver → daily activity gate → cluster planner →
//	timestamp sequencer → emitter
//
// Each stage is a small pure function over an explicit Rand source, so a
// scripted source reproduces an exact event schedule draw for draw. The
// independent working-hours gate (hours.go) shares the same vocabulary.
//
// Note: nothing in this package touches global state. Configuration and
// randomness are passed in; side effects live behind the Emitter interface.
package schedule

import "math/rand/v2"

// Rand is the narrow randomness capability threaded through the scheduler.
// Production code uses NewRand; tests inject a *Script.
type Rand interface {
	// Float64 returns a uniform draw in [0, 1).
	Float64() float64

	// IntBetween returns a uniform integer draw in [lo, hi] inclusive.
	// Requires lo <= hi.
	IntBetween(lo, hi int) int

	// Pick returns a uniform index in [0, n). Used for
	// choice-from-collection draws (commit messages).
	Pick(n int) int
}

// systemRand adapts math/rand/v2's shared generator to the Rand interface.
type systemRand struct{}

// NewRand returns the production randomness source.
func NewRand() Rand { return systemRand{} }

func (systemRand) Float64() float64 { return rand.Float64() }

func (systemRand) IntBetween(lo, hi int) int {
	return lo + rand.IntN(hi-lo+1)
}

func (systemRand) Pick(n int) int { return rand.IntN(n) }

// Script is a deterministic Rand fed from fixed queues, one per draw kind.
// Exhausted queues fall back to the smallest legal value (0.0, lo, 0), so
// a test only scripts the draws it cares about.
type Script struct {
	Floats []float64
	Ints   []int
	Picks  []int

	fi, ii, pi int
}

func (s *Script) Float64() float64 {
	if s.fi >= len(s.Floats) {
		return 0
	}
	v := s.Floats[s.fi]
	s.fi++
	return v
}

func (s *Script) IntBetween(lo, hi int) int {
	if s.ii >= len(s.Ints) {
		return lo
	}
	v := s.Ints[s.ii]
	s.ii++
	return v
}

func (s *Script) Pick(n int) int {
	if s.pi >= len(s.Picks) {
		return 0
	}
	v := s.Picks[s.pi]
	s.pi++
	return v % n
}
