package synth

import (
	"math"
	"math/rand"
)

// syntheticIR generates an exponentially decaying noise burst for use
// as a reverb impulse response. decayExp controls how steeply the tail
// falls off: higher values give a darker, faster-dying room.
//
// Each IR is generated once at graph construction and never per scene.
func syntheticIR(sampleRate, seconds, decayExp float64, rng *rand.Rand) []float64 {
	n := int(sampleRate * seconds)
	if n < 1 {
		n = 1
	}

	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(n)
		out[i] = (rng.Float64()*2 - 1) * math.Pow(1-t, decayExp)
	}

	return out
}
