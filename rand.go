package jigsaw

// Seeded pseudo-random source for edge-shape sampling.
//
// The generator is a mulberry32-style mixer over a 32-bit state. It is
// deliberately not math/rand: the same seed must reproduce the same edge
// shapes forever, across builds and across machines, because the front
// cut-lines and the back safe zones are rendered in separate passes from
// the same PuzzleSpec and have to agree exactly.

// nextState advances a 32-bit generator state and returns the new state
// together with a value in [0,1). It is a pure function; all statefulness
// lives in the Rand value that threads the state through a build.
func nextState(s uint32) (uint32, float64) {
	s += 0x6D2B79F5
	z := s
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	z ^= z >> 14
	return s, float64(z) / 4294967296.0
}

// Rand is a deterministic random stream. Each geometry build creates its
// own Rand from the spec seed, so concurrent builds never share state.
type Rand struct {
	state uint32
}

// NewRand returns a generator seeded with the given 32-bit seed.
func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Next returns the next value in [0,1).
func (r *Rand) Next() float64 {
	s, v := nextState(r.state)
	r.state = s
	return v
}

// Between returns the next value scaled into [lo,hi).
func (r *Rand) Between(lo, hi float64) float64 {
	return lo + r.Next()*(hi-lo)
}

// Sign returns -1 or +1 with equal probability.
func (r *Rand) Sign() int {
	if r.Next() < 0.5 {
		return -1
	}
	return 1
}
