package glyph

// Source is a mulberry32 pseudo-random stream.
//
// It is small, fast and has a period of 2^32, which is plenty for the handful
// of draws each glyph needs. The zero value is a valid stream seeded with 0.
type Source struct {
	state uint32
}

// NewSource returns a stream seeded with seed.
func NewSource(seed uint32) *Source {
	return &Source{state: seed}
}

// Uint32 advances the stream and returns the next 32-bit value.
func (s *Source) Uint32() uint32 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.Uint32()) / 4294967296
}

// Intn returns the next value in [0, n). It panics if n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic("glyph: invalid argument to Intn")
	}
	return int(s.Float64() * float64(n))
}
