package engine

import (
	"testing"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	return New(WithSampleRate(8000), WithBlockSize(256), WithSeed(3))
}

func closeTo(got, want float64) bool {
	diff := got - want
	return diff > -1e-9 && diff < 1e-9
}

func TestControllerLifecycle(t *testing.T) {
	c := newTestController(t)
	defer c.Dispose()

	if c.IsPlaying() {
		t.Fatal("playing before Start")
	}

	c.Start()
	if !c.IsPlaying() {
		t.Fatal("not playing after Start")
	}
	if c.graph == nil {
		t.Fatal("graph not built on first Start")
	}
	if got := c.graph.MasterTarget(); got != 1 {
		t.Fatalf("master target %v after Start with no progress, want 1", got)
	}

	c.Stop()
	if c.IsPlaying() {
		t.Fatal("playing after Stop")
	}
	if c.graph == nil {
		t.Fatal("Stop dropped the graph; it should stay warm")
	}
	if got := c.graph.MasterTarget(); got != 0 {
		t.Fatalf("master target %v after Stop, want 0", got)
	}
}

func TestControllerToggle(t *testing.T) {
	c := newTestController(t)
	defer c.Dispose()

	c.Toggle()
	if !c.IsPlaying() {
		t.Fatal("first Toggle did not start")
	}
	c.Toggle()
	if c.IsPlaying() {
		t.Fatal("second Toggle did not stop")
	}
}

func TestControllerStartReflectsCachedProgress(t *testing.T) {
	c := newTestController(t)
	defer c.Dispose()

	// Tail region: progress 0.92 resolves to master level 0.5. Feeding
	// it while stopped must only update the cache.
	c.OnProgress(0.92)
	if c.IsPlaying() {
		t.Fatal("OnProgress started playback")
	}

	c.Start()
	if got := c.graph.MasterTarget(); !closeTo(got, 0.5) {
		t.Fatalf("master target %v after Start at tail progress, want 0.5", got)
	}
}

func TestControllerProgressDrivesLiveGraph(t *testing.T) {
	c := newTestController(t)
	defer c.Dispose()

	c.Start()
	c.OnProgress(0.10) // stable scene 0, level 1
	if got := c.graph.MasterTarget(); got != 1 {
		t.Fatalf("master target %v in stable window, want 1", got)
	}

	c.OnProgress(0.92)
	if got := c.graph.MasterTarget(); !closeTo(got, 0.5) {
		t.Fatalf("master target %v in tail, want 0.5", got)
	}
}

func TestControllerRenderBeforeStartIsSilent(t *testing.T) {
	c := newTestController(t)
	defer c.Dispose()

	buf := make([]float64, c.BlockSize())
	buf[0] = 99
	if err := c.RenderBlock(buf); err != nil {
		t.Fatalf("RenderBlock: %v", err)
	}
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("sample %d = %v before Start, want 0", i, v)
		}
	}
}

func TestControllerDisposeRebuilds(t *testing.T) {
	c := newTestController(t)

	c.Start()
	first := c.graph

	c.Dispose()
	if c.IsPlaying() {
		t.Fatal("playing after Dispose")
	}
	if c.graph != nil {
		t.Fatal("Dispose kept the graph")
	}
	c.Dispose() // repeated disposal is safe

	c.Start()
	if c.graph == nil {
		t.Fatal("Start after Dispose did not rebuild")
	}
	if c.graph == first {
		t.Fatal("Start after Dispose reused the disposed graph")
	}
	c.Dispose()
}

func TestControllerStrikeRequiresPlayback(t *testing.T) {
	c := newTestController(t)
	defer c.Dispose()

	c.Strike(440, 0.2, 1) // no graph yet, must not panic

	c.Start()
	c.Stop()
	c.Strike(440, 0.2, 1)
	if got := c.graph.VoiceCount(); got != 0 {
		t.Fatalf("strike landed while stopped: %d voices", got)
	}

	c.Start()
	c.Strike(440, 0.2, 1)
	if got := c.graph.VoiceCount(); got != 1 {
		t.Fatalf("strike while playing: %d voices, want 1", got)
	}
}

func TestControllerSchedulerAccessors(t *testing.T) {
	c := newTestController(t)
	defer c.Dispose()

	cfg, ok := c.schedulerConfig()
	if !ok {
		t.Fatal("scheduler config unavailable for initial scene")
	}
	if len(cfg.Pitches) == 0 {
		t.Fatal("initial scene has no chime pitches")
	}

	c.OnProgress(0.92)
	if got := c.schedulerLevel(); !closeTo(got, 0.5) {
		t.Fatalf("scheduler level %v at tail progress, want 0.5", got)
	}
}
