package synth

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Errors specific to the convolution engine.
var (
	ErrEmptyImpulse     = errors.New("synth: empty impulse response")
	ErrInvalidBlockSize = errors.New("synth: block size must be positive")
)

// convolver implements uniformly partitioned overlap-add convolution:
// the impulse response is split into fixed-size partitions whose spectra
// are multiply-accumulated against a frequency-domain delay line of
// recent input blocks. One forward and one inverse FFT per block,
// regardless of IR length, which keeps multi-second reverb tails
// realtime-safe.
type convolver struct {
	blockSize int
	fftSize   int

	plan      *algofft.Plan[complex128]
	kernelFFT [][]complex128 // partition spectra
	history   [][]complex128 // input block spectra, ring
	histPos   int

	input []complex128 // zero-padded input / forward FFT scratch
	acc   []complex128 // frequency-domain accumulator / IFFT scratch
	tail  []float64    // overlap-add carry into the next block
}

func newConvolver(kernel []float64, blockSize int) (*convolver, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyImpulse
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}

	fftSize := nextPowerOf2(2 * blockSize)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("synth: convolver FFT plan: %w", err)
	}

	partitions := (len(kernel) + blockSize - 1) / blockSize

	c := &convolver{
		blockSize: blockSize,
		fftSize:   fftSize,
		plan:      plan,
		kernelFFT: make([][]complex128, partitions),
		history:   make([][]complex128, partitions),
		input:     make([]complex128, fftSize),
		acc:       make([]complex128, fftSize),
		tail:      make([]float64, blockSize),
	}

	for k := range c.kernelFFT {
		spec := make([]complex128, fftSize)

		start := k * blockSize
		end := min(start+blockSize, len(kernel))
		for i, v := range kernel[start:end] {
			spec[i] = complex(v, 0)
		}

		if err := plan.Forward(spec, spec); err != nil {
			return nil, fmt.Errorf("synth: convolver kernel FFT: %w", err)
		}

		c.kernelFFT[k] = spec
		c.history[k] = make([]complex128, fftSize)
	}

	return c, nil
}

// processBlockTo convolves one fixed-size block of src into dst.
// State carries between calls so the reverb tail is continuous.
func (c *convolver) processBlockTo(dst, src []float64) error {
	if len(src) != c.blockSize || len(dst) != c.blockSize {
		return fmt.Errorf("synth: convolver expects %d-sample blocks, got dst=%d src=%d",
			c.blockSize, len(dst), len(src))
	}

	clear(c.input)
	for i, v := range src {
		c.input[i] = complex(v, 0)
	}

	cur := c.history[c.histPos]
	if err := c.plan.Forward(cur, c.input); err != nil {
		return fmt.Errorf("synth: convolver forward FFT: %w", err)
	}

	// Multiply-accumulate each partition against the input block it
	// should be delayed by.
	clear(c.acc)
	parts := len(c.kernelFFT)
	for k := range parts {
		h := c.history[(c.histPos-k+parts)%parts]
		spec := c.kernelFFT[k]
		for i := range c.acc {
			c.acc[i] += h[i] * spec[i]
		}
	}

	if err := c.plan.Inverse(c.acc, c.acc); err != nil {
		return fmt.Errorf("synth: convolver inverse FFT: %w", err)
	}

	for i := range dst {
		dst[i] = real(c.acc[i]) + c.tail[i]
		c.tail[i] = real(c.acc[c.blockSize+i])
	}

	c.histPos = (c.histPos + 1) % parts

	return nil
}

// reset clears the delay line and overlap state.
func (c *convolver) reset() {
	for _, h := range c.history {
		clear(h)
	}
	clear(c.tail)
	c.histPos = 0
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
