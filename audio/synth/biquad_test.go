package synth

import (
	"math"
	"testing"
)

// rmsOfFilteredSine pushes a steady sine through the section and
// measures the RMS of the settled tail.
func rmsOfFilteredSine(c Coefficients, freqHz, sampleRate float64) float64 {
	s := NewSection(c)

	n := int(sampleRate) // one second
	in := make([]float64, n)
	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range in {
		in[i] = math.Sin(step * float64(i))
	}
	s.ProcessBlockTo(out, in)

	sum := 0.0
	tail := out[n/2:]
	for _, v := range tail {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(tail)))
}

func TestBandpassSelectsCenterFrequency(t *testing.T) {
	const sr = 44100
	c := Bandpass(1000, 2, sr)

	center := rmsOfFilteredSine(c, 1000, sr)
	low := rmsOfFilteredSine(c, 100, sr)
	high := rmsOfFilteredSine(c, 10000, sr)

	if center < 4*low || center < 4*high {
		t.Fatalf("bandpass not selective: center=%v low=%v high=%v", center, low, high)
	}
}

func TestLowpassAttenuatesHighs(t *testing.T) {
	const sr = 44100
	c := Lowpass(200, defaultQ, sr)

	pass := rmsOfFilteredSine(c, 50, sr)
	stop := rmsOfFilteredSine(c, 5000, sr)

	if pass < 10*stop {
		t.Fatalf("lowpass not attenuating: pass=%v stop=%v", pass, stop)
	}
}

func TestDesignRejectsInvalidInput(t *testing.T) {
	zero := Coefficients{}
	for _, c := range []Coefficients{
		Bandpass(-10, 1, 44100),
		Bandpass(1000, 1, 0),
		Bandpass(30000, 1, 44100), // above Nyquist
		Lowpass(math.NaN(), 1, 44100),
	} {
		if c != zero {
			t.Fatalf("invalid design returned non-zero coefficients: %+v", c)
		}
	}
}

func TestDesignDefaultsBadQ(t *testing.T) {
	got := Bandpass(1000, -3, 44100)
	want := Bandpass(1000, defaultQ, 44100)
	if got != want {
		t.Fatalf("bad q not defaulted: got %+v want %+v", got, want)
	}
}

func TestSectionResetClearsState(t *testing.T) {
	s := NewSection(Lowpass(500, defaultQ, 44100))

	in := make([]float64, 64)
	out := make([]float64, 64)
	in[0] = 1
	s.ProcessBlockTo(out, in)
	first := append([]float64(nil), out...)

	s.Reset()
	s.ProcessBlockTo(out, in)
	for i := range out {
		if out[i] != first[i] {
			t.Fatalf("sample %d differs after reset: %v vs %v", i, out[i], first[i])
		}
	}
}
