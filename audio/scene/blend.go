package scene

import "math"

// SceneBlend is the resolved position of a progress value on the timeline:
// the pair of scenes being mixed, how far the mix has advanced, and the
// global master level. It is recomputed from scratch on every update and
// never stored beyond the current evaluation.
type SceneBlend struct {
	SceneA      int
	SceneB      int
	Blend       float64 // 0..1, 0 inside a stable window
	MasterLevel float64 // 0..1 global loudness multiplier
}

// CurrentScene returns the scene whose palette governs discrete choices
// (chime pitch sets) at this blend position: past the transition midpoint
// the incoming scene takes over.
func (sb SceneBlend) CurrentScene() int {
	if sb.Blend > 0.5 {
		return sb.SceneB
	}
	return sb.SceneA
}

type segmentKind int

const (
	segPreRoll segmentKind = iota
	segStable
	segTransition
	segTail
)

// segment is one half-open or closed slice of the timeline. The resolver
// scans segments in order; explicit interval entries keep the boundary
// semantics independently testable instead of burying them in nested
// conditionals.
type segment struct {
	start, end float64
	kind       segmentKind
	a, b       int
}

// timeline is the canonical partition. The literals are load-bearing:
// collaborators (camera path, narrative text) share the same boundaries.
var timeline = []segment{
	{0.00, 0.03, segPreRoll, 0, 0},
	{0.03, 0.18, segStable, 0, 0},
	{0.18, 0.20, segTransition, 0, 1},
	{0.20, 0.35, segStable, 1, 1},
	{0.35, 0.37, segTransition, 1, 2},
	{0.37, 0.52, segStable, 2, 2},
	{0.52, 0.54, segTransition, 2, 3},
	{0.54, 0.69, segStable, 3, 3},
	{0.69, 0.71, segTransition, 3, 4},
	{0.71, 0.86, segStable, 4, 4},
	{0.86, 0.98, segTail, 4, 4},
}

const (
	preRollEnd  = 0.03
	preRollGain = 0.5
	tailStart   = 0.86
	tailEnd     = 0.98
)

// Resolve maps progress onto the timeline. Progress is expected in
// [0, ~1.0] but slight overshoot must not fail: anything past the tail
// resolves to the last scene at zero level. Malformed input (NaN, negative)
// resolves to silence on scene 0 rather than raising.
func Resolve(progress float64) SceneBlend {
	if math.IsNaN(progress) || progress < 0 {
		return SceneBlend{}
	}

	for _, seg := range timeline {
		switch seg.kind {
		case segPreRoll:
			if progress < seg.end {
				level := math.Min(1, progress/preRollEnd) * preRollGain
				return SceneBlend{SceneA: 0, SceneB: 0, MasterLevel: level}
			}
		case segStable:
			if progress >= seg.start && progress <= seg.end {
				return SceneBlend{SceneA: seg.a, SceneB: seg.b, MasterLevel: 1}
			}
		case segTransition:
			if progress >= seg.start && progress <= seg.end {
				blend := (progress - seg.start) / (seg.end - seg.start)
				return SceneBlend{SceneA: seg.a, SceneB: seg.b, Blend: blend, MasterLevel: 1}
			}
		case segTail:
			if progress >= seg.start && progress <= seg.end {
				level := 1 - (progress-tailStart)/(tailEnd-tailStart)
				return SceneBlend{SceneA: seg.a, SceneB: seg.b, MasterLevel: level}
			}
		}
	}

	if progress > tailEnd {
		last := timeline[len(timeline)-1]
		return SceneBlend{SceneA: last.a, SceneB: last.b}
	}

	// Unreachable under the canonical partition; kept so malformed
	// timelines stay silent instead of panicking.
	return SceneBlend{}
}
