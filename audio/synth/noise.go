package synth

import "math/rand"

// noiseLoop is the continuously-present noise bed: a fixed-duration
// buffer of uniform random samples in [-1, 1], looped indefinitely.
// Generated once at graph construction from a deterministic seed.
type noiseLoop struct {
	buf []float64
	pos int
}

func newNoiseLoop(sampleRate, seconds float64, rng *rand.Rand) *noiseLoop {
	n := int(sampleRate * seconds)
	if n < 1 {
		n = 1
	}

	buf := make([]float64, n)
	for i := range buf {
		buf[i] = rng.Float64()*2 - 1
	}

	return &noiseLoop{buf: buf}
}

// fill writes the next len(dst) looped samples into dst.
func (n *noiseLoop) fill(dst []float64) {
	for i := range dst {
		dst[i] = n.buf[n.pos]
		n.pos++
		if n.pos == len(n.buf) {
			n.pos = 0
		}
	}
}
