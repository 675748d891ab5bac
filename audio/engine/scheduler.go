package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/guitargnarr/pattern-break-experience/audio/scene"
)

const (
	// Below this master level chimes would be inaudible anyway; the
	// scheduler keeps rechecking instead of striking.
	audibilityThreshold = 0.05
	recheckBackoff      = 2 * time.Second

	initialDelayMinSec = 1.5
	initialDelayMaxSec = 3.5

	staggerBaseSec = 0.08
	staggerRandSec = 0.15
)

// chimeScheduler is a self-rescheduling stochastic process. There is no
// persistent state field: each tick infers idle-checking versus
// active-scheduling from the cached scene palette and master level it
// reads through the injected accessors.
//
// Cancellation uses a generation counter: stop invalidates every
// already-scheduled tick, so a timer that fires "in flight" can never
// strike or reschedule.
type chimeScheduler struct {
	mu      sync.Mutex
	rng     *rand.Rand
	timer   *time.Timer
	gen     uint64
	running bool

	config func() (scene.ChimeConfig, bool)
	level  func() float64
	strike func(freq, gain, decaySeconds, delaySeconds float64)
}

func newChimeScheduler(
	rng *rand.Rand,
	config func() (scene.ChimeConfig, bool),
	level func() float64,
	strike func(freq, gain, decaySeconds, delaySeconds float64),
) *chimeScheduler {
	return &chimeScheduler{
		rng:    rng,
		config: config,
		level:  level,
		strike: strike,
	}
}

// start cancels any prior pending tick and schedules the first one
// after a short random delay, so enabling audio never produces an
// immediate chime.
func (s *chimeScheduler) start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.running = true
	if s.timer != nil {
		s.timer.Stop()
	}

	delay := initialDelayMinSec + s.rng.Float64()*(initialDelayMaxSec-initialDelayMinSec)
	s.scheduleLocked(secondsToDuration(delay))
}

// stop cancels the pending tick and invalidates any tick already in
// flight. No strike is dispatched after stop returns.
func (s *chimeScheduler) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.running = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *chimeScheduler) scheduleLocked(d time.Duration) {
	gen := s.gen
	s.timer = time.AfterFunc(d, func() { s.tick(gen) })
}

func (s *chimeScheduler) tick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || gen != s.gen {
		return
	}
	s.scheduleLocked(s.step())
}

// step dispatches at most one strike cluster and returns the delay
// until the next tick. Caller holds s.mu.
func (s *chimeScheduler) step() time.Duration {
	cfg, ok := s.config()
	lvl := s.level()
	if !ok || len(cfg.Pitches) == 0 || lvl < audibilityThreshold {
		return recheckBackoff
	}

	clusterMax := cfg.ClusterMax
	if clusterMax < 1 {
		clusterMax = 1
	}
	cluster := 1 + s.rng.Intn(clusterMax)

	for i := range cluster {
		delay := float64(i) * (staggerBaseSec + s.rng.Float64()*staggerRandSec)
		pitch := cfg.Pitches[s.rng.Intn(len(cfg.Pitches))]
		s.strike(pitch, cfg.Gain*lvl, cfg.Decay, delay)
	}

	interval := cfg.IntervalMin + s.rng.Float64()*(cfg.IntervalMax-cfg.IntervalMin)
	return secondsToDuration(interval)
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
