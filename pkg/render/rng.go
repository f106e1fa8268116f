package render

// rng is a small deterministic generator (mulberry32). Shape jitter must
// not depend on math/rand's global state or on the Go release.
type rng struct {
	state uint32
}

func newRNG(seed int64) *rng {
	return &rng{state: uint32(seed) ^ uint32(seed>>32)}
}

// next returns a value in [0, 1).
func (r *rng) next() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// signed returns a value in [-1, 1).
func (r *rng) signed() float64 {
	return r.next()*2 - 1
}

// rotationFor returns the sticky-note tilt in degrees, within [-1.5, 1.5].
func rotationFor(seed int64) float64 {
	m := seed % 7
	if m < 0 {
		m += 7
	}
	return float64(m-3) * 0.5
}
