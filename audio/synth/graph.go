package synth

import (
	"fmt"
	"math/rand"
	"sync"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/guitargnarr/pattern-break-experience/audio/scene"
)

const (
	noiseLoopSeconds = 4.0

	windIRSeconds = 4.0
	windIRExp     = 3.5

	// The chime send rings longer and brighter than the wind room:
	// a struck metallic voice, not moving air.
	chimeIRSeconds = 5.0
	chimeIRExp     = 2.0
	chimeWetLevel  = 0.4

	maxVoices = 64

	minFilterFreq      = 10.0
	maxFilterFreqRatio = 0.45 // of the sample rate
)

// Graph is the live synthesis node graph. Topology is fixed at
// construction and never rebuilt; only parameters ramp. The graph is a
// DAG: noise feeds three parallel band-shaping filters into a wind bus
// with a convolution reverb send, chime voices feed an independent bus
// with its own brighter send, and both buses meet at the master gain.
//
// RenderBlock is driven from the audio output goroutine while Strike and
// the Apply/Set methods arrive from timers and progress updates; a
// single mutex serializes them.
type Graph struct {
	mu  sync.Mutex
	cfg Config
	rng *rand.Rand

	noise                 *noiseLoop
	body, whistle, rumble *Section

	bodyFreq, bodyQ, bodyGain          *Param
	whistleFreq, whistleQ, whistleGain *Param
	rumbleFreq, rumbleGain             *Param
	gustRate, gustDepth, swellDepth    *Param
	driftRate, driftDepth              *Param
	reverbWet                          *Param
	master                             *Param

	gust, drift, swell lfo

	windReverb  *convolver
	chimeReverb *convolver

	voices []voice

	// cached design inputs so coefficients are only recomputed when a
	// ramp or LFO actually moved them
	lastBodyFreq, lastBodyQ       float64
	lastWhistleFreq, lastWhistleQ float64
	lastRumbleFreq                float64

	// scratch buffers, one block each
	noiseBuf []float64
	bandBuf  []float64
	windBus  []float64
	wetBuf   []float64
	chimeBuf []float64
	gainBuf  []float64
	swellBuf []float64
}

// NewGraph constructs the full node graph with the given initial wind
// palette. The master gain starts at zero; callers ramp it up via
// SetMasterTarget.
func NewGraph(initial scene.WindConfig, opts ...Option) (*Graph, error) {
	cfg := ApplyOptions(opts...)
	rng := rand.New(rand.NewSource(cfg.Seed))

	windReverb, err := newConvolver(
		syntheticIR(cfg.SampleRate, windIRSeconds, windIRExp, rng), cfg.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("synth: wind reverb: %w", err)
	}

	chimeReverb, err := newConvolver(
		syntheticIR(cfg.SampleRate, chimeIRSeconds, chimeIRExp, rng), cfg.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("synth: chime reverb: %w", err)
	}

	sr := cfg.SampleRate
	g := &Graph{
		cfg:   cfg,
		rng:   rng,
		noise: newNoiseLoop(sr, noiseLoopSeconds, rng),

		bodyFreq: NewParam(sr, initial.BodyFreq),
		bodyQ:    NewParam(sr, initial.BodyQ),
		bodyGain: NewParam(sr, initial.BodyGain),

		whistleFreq: NewParam(sr, initial.WhistleFreq),
		whistleQ:    NewParam(sr, initial.WhistleQ),
		whistleGain: NewParam(sr, initial.WhistleGain),

		rumbleFreq: NewParam(sr, initial.RumbleFreq),
		rumbleGain: NewParam(sr, initial.RumbleGain),

		gustRate:   NewParam(sr, initial.GustRate),
		gustDepth:  NewParam(sr, initial.GustDepth),
		swellDepth: NewParam(sr, initial.SwellDepth),
		driftRate:  NewParam(sr, initial.DriftRate),
		driftDepth: NewParam(sr, initial.DriftDepth),
		reverbWet:  NewParam(sr, initial.ReverbWet),

		master: NewParam(sr, 0),

		gust:  lfo{sampleRate: sr},
		drift: lfo{sampleRate: sr},
		swell: lfo{sampleRate: sr},

		windReverb:  windReverb,
		chimeReverb: chimeReverb,

		noiseBuf: make([]float64, cfg.BlockSize),
		bandBuf:  make([]float64, cfg.BlockSize),
		windBus:  make([]float64, cfg.BlockSize),
		wetBuf:   make([]float64, cfg.BlockSize),
		chimeBuf: make([]float64, cfg.BlockSize),
		gainBuf:  make([]float64, cfg.BlockSize),
		swellBuf: make([]float64, cfg.BlockSize),
	}

	g.retuneFilters(initial.BodyFreq, initial.BodyQ,
		initial.WhistleFreq, initial.WhistleQ, initial.RumbleFreq)

	return g, nil
}

// SampleRate returns the rendering sample rate.
func (g *Graph) SampleRate() float64 { return g.cfg.SampleRate }

// BlockSize returns the fixed render block size in samples.
func (g *Graph) BlockSize() int { return g.cfg.BlockSize }

// ApplyWind ramps every wind-layer parameter toward the interpolated
// palette over rampSeconds.
func (g *Graph) ApplyWind(cfg scene.WindConfig, rampSeconds float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.bodyFreq.SetTarget(cfg.BodyFreq, rampSeconds)
	g.bodyQ.SetTarget(cfg.BodyQ, rampSeconds)
	g.bodyGain.SetTarget(cfg.BodyGain, rampSeconds)

	g.whistleFreq.SetTarget(cfg.WhistleFreq, rampSeconds)
	g.whistleQ.SetTarget(cfg.WhistleQ, rampSeconds)
	g.whistleGain.SetTarget(cfg.WhistleGain, rampSeconds)

	g.rumbleFreq.SetTarget(cfg.RumbleFreq, rampSeconds)
	g.rumbleGain.SetTarget(cfg.RumbleGain, rampSeconds)

	g.gustRate.SetTarget(cfg.GustRate, rampSeconds)
	g.gustDepth.SetTarget(cfg.GustDepth, rampSeconds)
	g.swellDepth.SetTarget(cfg.SwellDepth, rampSeconds)
	g.driftRate.SetTarget(cfg.DriftRate, rampSeconds)
	g.driftDepth.SetTarget(cfg.DriftDepth, rampSeconds)

	g.reverbWet.SetTarget(cfg.ReverbWet, rampSeconds)
}

// SetMasterTarget ramps the master gain, used both for the global
// fade level and for the start/stop envelopes. The latest scheduled
// ramp wins.
func (g *Graph) SetMasterTarget(level, rampSeconds float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.master.SetTarget(level, rampSeconds)
}

// MasterTarget returns the level the master gain is ramping toward.
func (g *Graph) MasterTarget() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.master.Target()
}

// Strike injects one fire-and-forget chime voice into the chime bus,
// optionally delayed by delaySeconds (cluster stagger). Invalid
// arguments are ignored: a strike can never fail audibly.
func (g *Graph) Strike(freq, gain, decaySeconds, delaySeconds float64) {
	if freq <= 0 || gain <= 0 || decaySeconds <= 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.voices) >= maxVoices {
		copy(g.voices, g.voices[1:])
		g.voices = g.voices[:maxVoices-1]
	}

	g.voices = append(g.voices,
		newVoice(g.cfg.SampleRate, freq, gain, decaySeconds, delaySeconds, g.rng))
}

// VoiceCount returns the number of live chime voices.
func (g *Graph) VoiceCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.voices)
}

// RenderBlock renders one fixed-size block of mono output into dst.
// len(dst) must equal BlockSize.
func (g *Graph) RenderBlock(dst []float64) error {
	if len(dst) != g.cfg.BlockSize {
		return fmt.Errorf("synth: render expects %d-sample blocks, got %d",
			g.cfg.BlockSize, len(dst))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	n := len(dst)

	// Control-rate values for this block.
	gustV := g.gust.next(g.gustRate.Value(), n)
	driftV := g.drift.next(g.driftRate.Value(), n)
	swellV := g.swell.next(g.gustRate.Value(), n)
	g.gustRate.Skip(n)
	g.driftRate.Skip(n)

	bodyF := g.bodyFreq.Value() + g.gustDepth.Value()*gustV
	bodyQ := g.bodyQ.Value()
	whistleF := g.whistleFreq.Value() + g.driftDepth.Value()*driftV
	whistleQ := g.whistleQ.Value()
	rumbleF := g.rumbleFreq.Value()
	g.bodyFreq.Skip(n)
	g.bodyQ.Skip(n)
	g.gustDepth.Skip(n)
	g.whistleFreq.Skip(n)
	g.whistleQ.Skip(n)
	g.driftDepth.Skip(n)
	g.rumbleFreq.Skip(n)

	g.retuneFilters(bodyF, bodyQ, whistleF, whistleQ, rumbleF)

	// Wind layer: three parallel band shapes into the wind bus.
	g.noise.fill(g.noiseBuf)

	g.body.ProcessBlockTo(g.bandBuf, g.noiseBuf)
	g.bodyGain.Fill(g.gainBuf)
	vecmath.MulBlock(g.windBus, g.bandBuf, g.gainBuf)

	g.whistle.ProcessBlockTo(g.bandBuf, g.noiseBuf)
	g.whistleGain.Fill(g.gainBuf)
	vecmath.MulBlockInPlace(g.bandBuf, g.gainBuf)
	vecmath.AddBlockInPlace(g.windBus, g.bandBuf)

	g.rumble.ProcessBlockTo(g.bandBuf, g.noiseBuf)
	g.rumbleGain.Fill(g.gainBuf)
	vecmath.MulBlockInPlace(g.bandBuf, g.gainBuf)
	vecmath.AddBlockInPlace(g.windBus, g.bandBuf)

	// Wind reverb send: dry path at unity plus ramped wet return.
	if err := g.windReverb.processBlockTo(g.wetBuf, g.windBus); err != nil {
		return err
	}
	g.reverbWet.Fill(g.gainBuf)
	vecmath.MulBlockInPlace(g.wetBuf, g.gainBuf)
	vecmath.AddBlockInPlace(g.windBus, g.wetBuf)

	// Chime bus: sum live voices, then the brighter chime send.
	g.renderVoices(g.chimeBuf)
	if err := g.chimeReverb.processBlockTo(g.wetBuf, g.chimeBuf); err != nil {
		return err
	}
	vecmath.ScaleBlockInPlace(g.wetBuf, chimeWetLevel)
	vecmath.AddBlockInPlace(g.chimeBuf, g.wetBuf)

	// Master: ramped gain with the gust-driven amplitude swell. The
	// swell scales with the master level so a fully-faded engine is
	// truly silent.
	factor := 1 + g.swellDepth.Value()*swellV
	if factor < 0 {
		factor = 0
	}
	g.swellDepth.Skip(n)

	g.master.Fill(g.swellBuf)
	vecmath.AddBlock(dst, g.windBus, g.chimeBuf)
	vecmath.MulBlockInPlace(dst, g.swellBuf)
	vecmath.ScaleBlockInPlace(dst, factor)

	return nil
}

// renderVoices sums all live chime voices into dst and compacts
// expired ones away.
func (g *Graph) renderVoices(dst []float64) {
	clear(dst)
	if len(g.voices) == 0 {
		return
	}

	write := 0
	for i := range g.voices {
		v := g.voices[i]
		alive := true
		for j := range dst {
			var s float64
			s, alive = v.next()
			if !alive {
				break
			}
			dst[j] += s
		}
		if alive {
			g.voices[write] = v
			write++
		}
	}
	g.voices = g.voices[:write]
}

// retuneFilters recomputes biquad coefficients for any design input
// that moved since the last block. Delay-line state is preserved so
// sweeps stay continuous.
func (g *Graph) retuneFilters(bodyF, bodyQ, whistleF, whistleQ, rumbleF float64) {
	sr := g.cfg.SampleRate
	maxF := sr * maxFilterFreqRatio

	bodyF = clampFreq(bodyF, maxF)
	whistleF = clampFreq(whistleF, maxF)
	rumbleF = clampFreq(rumbleF, maxF)

	if g.body == nil {
		g.body = NewSection(Bandpass(bodyF, bodyQ, sr))
		g.whistle = NewSection(Bandpass(whistleF, whistleQ, sr))
		g.rumble = NewSection(Lowpass(rumbleF, defaultQ, sr))
		g.lastBodyFreq, g.lastBodyQ = bodyF, bodyQ
		g.lastWhistleFreq, g.lastWhistleQ = whistleF, whistleQ
		g.lastRumbleFreq = rumbleF
		return
	}

	if bodyF != g.lastBodyFreq || bodyQ != g.lastBodyQ {
		g.body.SetCoefficients(Bandpass(bodyF, bodyQ, sr))
		g.lastBodyFreq, g.lastBodyQ = bodyF, bodyQ
	}
	if whistleF != g.lastWhistleFreq || whistleQ != g.lastWhistleQ {
		g.whistle.SetCoefficients(Bandpass(whistleF, whistleQ, sr))
		g.lastWhistleFreq, g.lastWhistleQ = whistleF, whistleQ
	}
	if rumbleF != g.lastRumbleFreq {
		g.rumble.SetCoefficients(Lowpass(rumbleF, defaultQ, sr))
		g.lastRumbleFreq = rumbleF
	}
}

func clampFreq(f, maxF float64) float64 {
	if f < minFilterFreq {
		return minFilterFreq
	}
	if f > maxF {
		return maxF
	}
	return f
}
