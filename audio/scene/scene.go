// Package scene holds the static per-scene synthesis palettes of the
// scroll timeline and the pure functions that map a normalized progress
// value onto them: the blend resolver and the parameter interpolator.
package scene

// Count is the number of scenes on the timeline.
const Count = 5

// WindConfig bundles the wind-layer synthesis parameters of one scene.
// All fields are linear unless noted. Values are immutable palette data;
// the live graph receives interpolated copies, never the table entries.
type WindConfig struct {
	// Primary "wind body" band-pass.
	BodyFreq float64 // center frequency, Hz
	BodyQ    float64
	BodyGain float64

	// Narrow "whistle" resonance.
	WhistleFreq float64 // center frequency, Hz
	WhistleQ    float64
	WhistleGain float64

	// Low-frequency rumble (low-pass).
	RumbleFreq float64 // cutoff, Hz
	RumbleGain float64

	// Gust modulation: filter sweep of the body band plus amplitude swell.
	GustRate   float64 // Hz
	GustDepth  float64 // sweep span, Hz
	SwellDepth float64 // amplitude swell amount, 0..1

	// Slow whistle pitch drift.
	DriftRate  float64 // Hz
	DriftDepth float64 // sweep span, Hz

	// Wind reverb send.
	ReverbWet float64 // 0..1
}

// ChimeConfig bundles the chime palette of one scene.
type ChimeConfig struct {
	Pitches     []float64 // allowed strike pitches, Hz (pick-set)
	Gain        float64   // base strike gain
	Decay       float64   // strike decay, seconds
	IntervalMin float64   // min inter-strike interval, seconds
	IntervalMax float64   // max inter-strike interval, seconds
	ClusterMax  int       // max simultaneous strikes per trigger
}

// DefaultWinds returns the canonical wind palettes, indexed by scene.
//
// Scene order: stillness, emergence, fracture, cascade, resolution.
func DefaultWinds() [Count]WindConfig {
	return [Count]WindConfig{
		{
			BodyFreq: 220, BodyQ: 1.2, BodyGain: 0.50,
			WhistleFreq: 880, WhistleQ: 8, WhistleGain: 0.05,
			RumbleFreq: 90, RumbleGain: 0.40,
			GustRate: 0.05, GustDepth: 60, SwellDepth: 0.12,
			DriftRate: 0.03, DriftDepth: 15,
			ReverbWet: 0.40,
		},
		{
			BodyFreq: 320, BodyQ: 1.5, BodyGain: 0.60,
			WhistleFreq: 1200, WhistleQ: 10, WhistleGain: 0.08,
			RumbleFreq: 100, RumbleGain: 0.45,
			GustRate: 0.08, GustDepth: 90, SwellDepth: 0.18,
			DriftRate: 0.05, DriftDepth: 25,
			ReverbWet: 0.45,
		},
		{
			BodyFreq: 450, BodyQ: 2.0, BodyGain: 0.70,
			WhistleFreq: 1800, WhistleQ: 12, WhistleGain: 0.12,
			RumbleFreq: 80, RumbleGain: 0.55,
			GustRate: 0.14, GustDepth: 140, SwellDepth: 0.25,
			DriftRate: 0.08, DriftDepth: 40,
			ReverbWet: 0.50,
		},
		{
			BodyFreq: 380, BodyQ: 1.8, BodyGain: 0.75,
			WhistleFreq: 1500, WhistleQ: 9, WhistleGain: 0.10,
			RumbleFreq: 70, RumbleGain: 0.60,
			GustRate: 0.20, GustDepth: 170, SwellDepth: 0.30,
			DriftRate: 0.10, DriftDepth: 50,
			ReverbWet: 0.55,
		},
		{
			BodyFreq: 260, BodyQ: 1.1, BodyGain: 0.55,
			WhistleFreq: 1000, WhistleQ: 7, WhistleGain: 0.06,
			RumbleFreq: 60, RumbleGain: 0.50,
			GustRate: 0.06, GustDepth: 70, SwellDepth: 0.15,
			DriftRate: 0.04, DriftDepth: 20,
			ReverbWet: 0.60,
		},
	}
}

// DefaultChimes returns the canonical chime palettes, indexed by scene.
func DefaultChimes() [Count]ChimeConfig {
	return [Count]ChimeConfig{
		{
			Pitches:     []float64{440, 523.25, 587.33, 659.25, 783.99},
			Gain:        0.12, Decay: 6,
			IntervalMin: 8, IntervalMax: 18, ClusterMax: 2,
		},
		{
			Pitches:     []float64{587.33, 659.25, 739.99, 880, 987.77},
			Gain:        0.14, Decay: 5,
			IntervalMin: 6, IntervalMax: 14, ClusterMax: 2,
		},
		{
			Pitches:     []float64{523.25, 622.25, 739.99, 830.61, 932.33},
			Gain:        0.18, Decay: 3.5,
			IntervalMin: 4, IntervalMax: 9, ClusterMax: 3,
		},
		{
			Pitches:     []float64{659.25, 783.99, 880, 1046.5, 1174.66},
			Gain:        0.20, Decay: 4.5,
			IntervalMin: 3, IntervalMax: 8, ClusterMax: 4,
		},
		{
			Pitches:     []float64{392, 440, 523.25, 587.33, 659.25},
			Gain:        0.12, Decay: 7,
			IntervalMin: 10, IntervalMax: 22, ClusterMax: 2,
		},
	}
}
