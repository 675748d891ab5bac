package scene

import (
	"math"
	"testing"
)

func TestResolvePreRoll(t *testing.T) {
	for _, p := range []float64{0, 0.005, 0.015, 0.029} {
		sb := Resolve(p)
		if sb.SceneA != 0 || sb.SceneB != 0 || sb.Blend != 0 {
			t.Fatalf("p=%v: got %+v, want scene 0/0 blend 0", p, sb)
		}
		want := math.Min(1, p/0.03) * 0.5
		if diff := sb.MasterLevel - want; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("p=%v: level %v want %v", p, sb.MasterLevel, want)
		}
	}
}

func TestResolveStableWindows(t *testing.T) {
	for _, tc := range []struct {
		p     float64
		scene int
	}{
		{0.03, 0},
		{0.10, 0},
		{0.18, 0},
		{0.20, 1},
		{0.27, 1},
		{0.35, 1},
		{0.45, 2},
		{0.60, 3},
		{0.71, 4},
		{0.86, 4},
	} {
		sb := Resolve(tc.p)
		if sb.SceneA != tc.scene || sb.SceneB != tc.scene {
			t.Fatalf("p=%v: got scenes %d/%d, want %d", tc.p, sb.SceneA, sb.SceneB, tc.scene)
		}
		if sb.Blend != 0 {
			t.Fatalf("p=%v: blend %v, want 0 inside stable window", tc.p, sb.Blend)
		}
		if sb.MasterLevel != 1 {
			t.Fatalf("p=%v: level %v, want 1", tc.p, sb.MasterLevel)
		}
	}
}

func TestResolveTransitions(t *testing.T) {
	for _, tc := range []struct {
		p     float64
		a, b  int
		blend float64
	}{
		{0.19, 0, 1, 0.5},
		{0.185, 0, 1, 0.25},
		{0.36, 1, 2, 0.5},
		{0.53, 2, 3, 0.5},
		{0.70, 3, 4, 0.5},
	} {
		sb := Resolve(tc.p)
		if sb.SceneA != tc.a || sb.SceneB != tc.b {
			t.Fatalf("p=%v: got scenes %d/%d, want %d/%d", tc.p, sb.SceneA, sb.SceneB, tc.a, tc.b)
		}
		if diff := sb.Blend - tc.blend; diff < -1e-9 || diff > 1e-9 {
			t.Fatalf("p=%v: blend %v, want %v", tc.p, sb.Blend, tc.blend)
		}
		if sb.MasterLevel != 1 {
			t.Fatalf("p=%v: level %v, want 1", tc.p, sb.MasterLevel)
		}
	}
}

func TestResolveTailFade(t *testing.T) {
	sb := Resolve(0.92)
	if sb.SceneA != 4 || sb.SceneB != 4 {
		t.Fatalf("tail: got scenes %d/%d, want 4/4", sb.SceneA, sb.SceneB)
	}
	if diff := sb.MasterLevel - 0.5; diff < -1e-9 || diff > 1e-9 {
		t.Fatalf("tail midpoint level %v, want 0.5", sb.MasterLevel)
	}

	if lvl := Resolve(0.98).MasterLevel; lvl < -1e-12 || lvl > 1e-12 {
		t.Fatalf("tail end level %v, want 0", lvl)
	}
}

func TestResolveMalformedProgress(t *testing.T) {
	for _, p := range []float64{1.01, 1.5, 42, -0.2, math.NaN()} {
		sb := Resolve(p)
		if sb.MasterLevel != 0 {
			t.Fatalf("p=%v: level %v, want silence", p, sb.MasterLevel)
		}
		if math.IsNaN(sb.Blend) || math.IsInf(sb.Blend, 0) {
			t.Fatalf("p=%v: non-finite blend %v", p, sb.Blend)
		}
		if sb.SceneA < 0 || sb.SceneA >= Count || sb.SceneB < 0 || sb.SceneB >= Count {
			t.Fatalf("p=%v: scene indices out of range: %+v", p, sb)
		}
	}
}

func TestResolveOvershootHoldsLastScene(t *testing.T) {
	sb := Resolve(1.01)
	if sb.SceneA != 4 || sb.SceneB != 4 {
		t.Fatalf("overshoot: got scenes %d/%d, want 4/4", sb.SceneA, sb.SceneB)
	}
}

func TestCurrentSceneTieBreak(t *testing.T) {
	for _, tc := range []struct {
		sb   SceneBlend
		want int
	}{
		{SceneBlend{SceneA: 0, SceneB: 1, Blend: 0.4}, 0},
		{SceneBlend{SceneA: 0, SceneB: 1, Blend: 0.5}, 0},
		{SceneBlend{SceneA: 0, SceneB: 1, Blend: 0.51}, 1},
		{SceneBlend{SceneA: 2, SceneB: 2, Blend: 0}, 2},
	} {
		if got := tc.sb.CurrentScene(); got != tc.want {
			t.Fatalf("blend=%v: got scene %d, want %d", tc.sb.Blend, got, tc.want)
		}
	}
}

func TestTimelineCoversWithoutGaps(t *testing.T) {
	for i := 1; i < len(timeline); i++ {
		prev, cur := timeline[i-1], timeline[i]
		if cur.start > prev.end {
			t.Fatalf("gap between segment %d (end %v) and %d (start %v)", i-1, prev.end, i, cur.start)
		}
	}
}
