// Package engine exposes the public surface of the ambient audio
// engine: lifecycle control (start/stop/dispose), the per-progress
// parameter drive, and the stochastic chime scheduler. It owns the
// synthesis graph exclusively; no other component holds node references.
package engine

import (
	"log"
	"math/rand"
	"sync"

	"github.com/guitargnarr/pattern-break-experience/audio/scene"
	"github.com/guitargnarr/pattern-break-experience/audio/synth"
)

const (
	// WindRampSeconds is the canonical ramp for progress-driven wind
	// parameter updates.
	WindRampSeconds = 0.25

	startRampSeconds = 1.75
	stopRampSeconds  = 1.2
)

// Option configures a Controller.
type Option func(*Controller)

// WithTables replaces the default scene palettes. Passing tables
// explicitly keeps them injectable for tests with alternate palettes.
func WithTables(winds [scene.Count]scene.WindConfig, chimes [scene.Count]scene.ChimeConfig) Option {
	return func(c *Controller) {
		c.winds = winds
		c.chimes = chimes
	}
}

// WithSampleRate sets the rendering sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(c *Controller) {
		c.synthOpts = append(c.synthOpts, synth.WithSampleRate(sampleRate))
	}
}

// WithBlockSize sets the render block size in samples.
func WithBlockSize(blockSize int) Option {
	return func(c *Controller) {
		c.synthOpts = append(c.synthOpts, synth.WithBlockSize(blockSize))
	}
}

// WithSeed seeds the noise bed, impulse responses, chime detuning,
// and the scheduler's dice deterministically.
func WithSeed(seed int64) Option {
	return func(c *Controller) {
		c.seed = seed
		c.synthOpts = append(c.synthOpts, synth.WithSeed(seed))
	}
}

// Controller drives the ambient engine. All methods are safe for
// concurrent use and all of them are safe no-ops when graph
// construction has failed: the experience keeps running silently.
type Controller struct {
	mu sync.Mutex

	winds  [scene.Count]scene.WindConfig
	chimes [scene.Count]scene.ChimeConfig

	synthOpts []synth.Option
	synthCfg  synth.Config
	seed      int64

	graph    *synth.Graph
	sched    *chimeScheduler
	playing  bool
	disposed bool
	failed   bool

	curScene     int
	curLevel     float64
	progressSeen bool
}

// New creates a stopped controller. The synthesis graph is constructed
// lazily on the first Start so a page that never enables audio never
// pays for it.
func New(opts ...Option) *Controller {
	c := &Controller{
		winds:  scene.DefaultWinds(),
		chimes: scene.DefaultChimes(),
		seed:   1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.synthCfg = synth.ApplyOptions(c.synthOpts...)

	c.sched = newChimeScheduler(
		rand.New(rand.NewSource(c.seed+1)),
		c.schedulerConfig,
		c.schedulerLevel,
		c.schedulerStrike,
	)

	return c
}

// IsPlaying reports the current play state for UI reflection.
func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Start lazily constructs the graph if absent, ramps the master gain
// up, and (re)starts the chime scheduler. Construction failure degrades
// the controller to a permanent silent no-op instead of propagating.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.failed {
		c.mu.Unlock()
		return
	}
	c.disposed = false

	if c.graph == nil {
		g, err := synth.NewGraph(c.currentWindLocked(), c.synthOpts...)
		if err != nil {
			c.failed = true
			c.mu.Unlock()
			log.Printf("ambient audio unavailable, running silent: %v", err)
			return
		}
		c.graph = g
	}

	c.playing = true
	level := 1.0
	if c.progressSeen {
		level = c.curLevel
	}
	g := c.graph
	c.mu.Unlock()

	g.SetMasterTarget(level, startRampSeconds)
	c.sched.start()
}

// Stop ramps the master gain down and cancels the scheduler. The graph
// stays warm so a subsequent Start is fast.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.failed || !c.playing {
		c.mu.Unlock()
		return
	}
	c.playing = false
	g := c.graph
	c.mu.Unlock()

	c.sched.stop()
	if g != nil {
		g.SetMasterTarget(0, stopRampSeconds)
	}
}

// Toggle flips between Start and Stop.
func (c *Controller) Toggle() {
	if c.IsPlaying() {
		c.Stop()
	} else {
		c.Start()
	}
}

// Dispose tears the engine down: cancels the scheduler and drops the
// graph so a subsequent Start rebuilds from scratch. Safe to call
// repeatedly and after Stop.
func (c *Controller) Dispose() {
	c.mu.Lock()
	c.playing = false
	c.disposed = true
	c.graph = nil
	c.mu.Unlock()

	c.sched.stop()
}

// OnProgress recomputes the scene blend for progress and refreshes the
// scheduler's cached scene and level. While playing it also ramps every
// wind parameter and the master level onto the live graph; while
// stopped only the cache updates, so an imminent Start reflects the
// correct scene immediately.
func (c *Controller) OnProgress(progress float64) {
	sb := scene.Resolve(progress)

	c.mu.Lock()
	c.progressSeen = true
	c.curScene = sb.CurrentScene()
	c.curLevel = sb.MasterLevel

	g := c.graph
	apply := c.playing && g != nil
	var cfg scene.WindConfig
	if apply {
		cfg = scene.LerpWind(c.winds[sb.SceneA], c.winds[sb.SceneB], sb.Blend)
	}
	c.mu.Unlock()

	if apply {
		g.ApplyWind(cfg, WindRampSeconds)
		g.SetMasterTarget(sb.MasterLevel, WindRampSeconds)
	}
}

// Strike triggers one chime voice by hand, bypassing the scheduler.
// A no-op while stopped or degraded.
func (c *Controller) Strike(freq, gain, decaySeconds float64) {
	c.mu.Lock()
	g := c.graph
	playing := c.playing
	c.mu.Unlock()

	if g == nil || !playing {
		return
	}
	g.Strike(freq, gain, decaySeconds, 0)
}

// BlockSize returns the render block size in samples.
func (c *Controller) BlockSize() int { return c.synthCfg.BlockSize }

// SampleRate returns the rendering sample rate.
func (c *Controller) SampleRate() float64 { return c.synthCfg.SampleRate }

// RenderBlock renders one block of mono samples. Before the graph
// exists (or after Dispose) it yields silence; the output device can
// keep pulling across the whole lifecycle.
func (c *Controller) RenderBlock(dst []float64) error {
	c.mu.Lock()
	g := c.graph
	c.mu.Unlock()

	if g == nil {
		clear(dst)
		return nil
	}
	return g.RenderBlock(dst)
}

// currentWindLocked returns the wind palette the graph should be born
// with. Caller holds c.mu.
func (c *Controller) currentWindLocked() scene.WindConfig {
	return c.winds[c.curScene]
}

func (c *Controller) schedulerConfig() (scene.ChimeConfig, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.curScene < 0 || c.curScene >= scene.Count {
		return scene.ChimeConfig{}, false
	}
	return c.chimes[c.curScene], true
}

func (c *Controller) schedulerLevel() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.curLevel
}

func (c *Controller) schedulerStrike(freq, gain, decaySeconds, delaySeconds float64) {
	c.mu.Lock()
	g := c.graph
	c.mu.Unlock()

	if g != nil {
		g.Strike(freq, gain, decaySeconds, delaySeconds)
	}
}
