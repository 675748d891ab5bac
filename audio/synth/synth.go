// Package synth implements the live synthesis graph of the ambient
// engine: a looped noise bed shaped by three parallel filters, slow
// control LFOs, convolution reverb sends, and transient chime voices,
// all mixed behind a ramped master gain.
//
// The graph topology is fixed at construction; only node parameters
// change afterwards, and every continuous change is applied as a short
// ramp from the parameter's current value so rapid updates never click.
package synth

// Config defines shared processing settings for the graph.
type Config struct {
	SampleRate float64
	BlockSize  int
	Seed       int64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults for realtime rendering.
func DefaultConfig() Config {
	return Config{
		SampleRate: 44100,
		BlockSize:  1024,
		Seed:       1,
	}
}

// WithSampleRate sets the rendering sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the fixed render block size in samples.
func WithBlockSize(blockSize int) Option {
	return func(cfg *Config) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithSeed sets the deterministic seed for noise, impulse responses,
// and chime detuning.
func WithSeed(seed int64) Option {
	return func(cfg *Config) {
		cfg.Seed = seed
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
