package synth

import (
	"math"
	"math/rand"
)

const (
	// Inharmonic overtone ratio: deliberately off a clean 3rd harmonic
	// so a strike rings like a bell rather than a pure tone.
	overtoneRatio = 2.98

	overtoneGainScale  = 0.3
	overtoneDecayScale = 0.6

	fundamentalDetuneCents = 5.0
	overtoneDetuneCents    = 7.5

	envelopeFloor = 0.0001
	voiceGuardSec = 0.1
)

// voice is one transient chime strike: a detuned fundamental plus an
// inharmonic overtone, each with its own exponential decay envelope.
// Voices are fire-and-forget; once created they cannot be addressed
// again and expire on their own inside the render loop.
type voice struct {
	delay int // samples until the strike begins
	age   int
	life  int // samples from strike to reclamation

	phase1, step1 float64
	phase2, step2 float64

	amp1, k1 float64 // envelope level and per-sample decay multiplier
	amp2, k2 float64
}

func newVoice(sampleRate, freq, gain, decaySeconds, delaySeconds float64, rng *rand.Rand) voice {
	f1 := freq * detune(fundamentalDetuneCents, rng)
	f2 := freq * overtoneRatio * detune(overtoneDetuneCents, rng)

	decay1 := int(decaySeconds * sampleRate)
	decay2 := int(decaySeconds * overtoneDecayScale * sampleRate)
	if decay1 < 1 {
		decay1 = 1
	}
	if decay2 < 1 {
		decay2 = 1
	}

	delay := int(delaySeconds * sampleRate)
	if delay < 0 {
		delay = 0
	}

	return voice{
		delay: delay,
		life:  decay1 + int(voiceGuardSec*sampleRate),
		step1: 2 * math.Pi * f1 / sampleRate,
		step2: 2 * math.Pi * f2 / sampleRate,
		amp1:  gain,
		k1:    decayMultiplier(gain, decay1),
		amp2:  gain * overtoneGainScale,
		k2:    decayMultiplier(gain*overtoneGainScale, decay2),
	}
}

// next renders one sample and reports whether the voice is still alive.
func (v *voice) next() (float64, bool) {
	if v.delay > 0 {
		v.delay--
		return 0, true
	}
	if v.age >= v.life {
		return 0, false
	}

	s := v.amp1*math.Sin(v.phase1) + v.amp2*math.Sin(v.phase2)

	v.phase1 += v.step1
	if v.phase1 > math.Pi {
		v.phase1 -= 2 * math.Pi
	}
	v.phase2 += v.step2
	if v.phase2 > math.Pi {
		v.phase2 -= 2 * math.Pi
	}

	v.amp1 *= v.k1
	v.amp2 *= v.k2
	v.age++

	return s, true
}

// detune returns a pitch factor within +/- the given cents.
func detune(cents float64, rng *rand.Rand) float64 {
	c := (rng.Float64()*2 - 1) * cents
	return math.Pow(2, c/1200)
}

// decayMultiplier returns the per-sample multiplier that takes an
// exponential envelope from start down to the floor over n samples.
func decayMultiplier(start float64, n int) float64 {
	if start <= envelopeFloor {
		return 1
	}
	return math.Pow(envelopeFloor/start, 1/float64(n))
}
