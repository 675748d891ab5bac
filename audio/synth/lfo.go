package synth

import "math"

// lfo is a control-rate sine oscillator. It is never audible directly;
// its output modulates filter frequencies and the master swell. Values
// are sampled once per render block, which at typical block sizes is a
// few milliseconds of control resolution.
type lfo struct {
	sampleRate float64
	phase      float64
}

// next returns the oscillator value at the current block start and
// advances the phase by n samples at rateHz.
func (l *lfo) next(rateHz float64, n int) float64 {
	v := math.Sin(l.phase)

	l.phase += 2 * math.Pi * rateHz * float64(n) / l.sampleRate
	if l.phase >= 2*math.Pi {
		l.phase -= 2 * math.Pi
	}

	return v
}
