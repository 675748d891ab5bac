package scene

// LerpWind interpolates every field of two wind palettes linearly.
// t outside [0,1] clamps to the nearer endpoint; t == 0 and t == 1
// return the inputs exactly, with no floating drift.
//
// The function is pure and is called once per progress update.
func LerpWind(a, b WindConfig, t float64) WindConfig {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}

	return WindConfig{
		BodyFreq: lerp(a.BodyFreq, b.BodyFreq, t),
		BodyQ:    lerp(a.BodyQ, b.BodyQ, t),
		BodyGain: lerp(a.BodyGain, b.BodyGain, t),

		WhistleFreq: lerp(a.WhistleFreq, b.WhistleFreq, t),
		WhistleQ:    lerp(a.WhistleQ, b.WhistleQ, t),
		WhistleGain: lerp(a.WhistleGain, b.WhistleGain, t),

		RumbleFreq: lerp(a.RumbleFreq, b.RumbleFreq, t),
		RumbleGain: lerp(a.RumbleGain, b.RumbleGain, t),

		GustRate:   lerp(a.GustRate, b.GustRate, t),
		GustDepth:  lerp(a.GustDepth, b.GustDepth, t),
		SwellDepth: lerp(a.SwellDepth, b.SwellDepth, t),

		DriftRate:  lerp(a.DriftRate, b.DriftRate, t),
		DriftDepth: lerp(a.DriftDepth, b.DriftDepth, t),

		ReverbWet: lerp(a.ReverbWet, b.ReverbWet, t),
	}
}

func lerp(x, y, t float64) float64 {
	return x + t*(y-x)
}
